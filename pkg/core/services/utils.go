package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
	"github.com/beyondcareer/teammatch/pkg/core/matcher/criteria"
	"github.com/beyondcareer/teammatch/pkg/core/model"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// toParticipant converts a stored participant into the engine's typed profile.
// Labels that cannot be parsed become unspecified values, which the engine reports as invalid.
func toParticipant(p db.Participant) matcher.Participant {
	return matcher.Participant{
		ID:             p.ID,
		FullName:       p.FullName,
		Email:          p.Email,
		ContactNumber:  p.ContactNumber,
		Institution:    p.Institution,
		StudyYear:      p.StudyYear,
		Level:          matcher.ParseEducationLevel(p.StudyYear),
		CoreStrengths:  p.CoreStrengths,
		PreferredRoles: p.PreferredRoles,
		CaseTypes:      p.CaseTypes,
		TeamSize:       p.TeamSize,
		Composition:    matcher.ParseCompositionPreference(p.Composition),
		Availability:   matcher.ParseAvailabilityTier(p.Availability),
		Experience:     matcher.ParseExperienceTier(p.Experience),
		SubmittedAt:    p.SubmittedAt,
	}
}

func toParticipants(stored []db.Participant) []matcher.Participant {
	participants := make([]matcher.Participant, len(stored))
	for i, p := range stored {
		participants[i] = toParticipant(p)
	}
	return participants
}

// submissionToParticipant converts a questionnaire submission into a new pending participant
func submissionToParticipant(s model.Submission, importedAt time.Time) db.Participant {
	return db.Participant{
		ID:             s.ID,
		FullName:       s.FullName,
		Email:          s.Email,
		ContactNumber:  s.ContactNumber,
		Institution:    s.Institution,
		StudyYear:      s.StudyYear,
		CoreStrengths:  s.CoreStrengths,
		PreferredRoles: s.PreferredRoles,
		CaseTypes:      s.CaseTypes,
		TeamSize:       s.TeamSize,
		Composition:    s.Composition,
		Availability:   s.Availability,
		Experience:     s.Experience,
		Status:         model.StatusPendingMatch,
		SubmittedAt:    s.SubmittedAt,
		ImportedAt:     importedAt,
	}
}

// matchingConfig builds the engine config from the application config.
// Fields left out of the YAML keep the engine defaults.
func matchingConfig(cfg *config.Config) matcher.Config {
	m := cfg.Matching

	weights := criteria.DefaultWeights
	if m.Weights != nil {
		weights = criteria.Weights{
			Skills:       m.Weights.Skills,
			Availability: m.Weights.Availability,
			CaseTypes:    m.Weights.CaseTypes,
			Institution:  m.Weights.Institution,
			Experience:   m.Weights.Experience,
		}
	}

	mc := matcher.DefaultConfig(criteria.FromWeights(weights))
	mc.MinTeamSize, mc.MaxTeamSize = m.TeamSizes()
	if m.CompatibilityThreshold != nil {
		mc.CompatibilityThreshold = *m.CompatibilityThreshold
	}
	if m.MaxIterations > 0 {
		mc.MaxIterations = m.MaxIterations
	}
	if m.PhaseMargin != nil {
		mc.PhaseMargin = *m.PhaseMargin
	}
	if m.MaxPotentialMatches != nil {
		mc.MaxPotentialMatches = *m.MaxPotentialMatches
	}
	if m.ExhaustiveSearchLimit != nil {
		mc.ExhaustiveSearchLimit = *m.ExhaustiveSearchLimit
	}
	return mc
}

// RunStore finds match runs
type RunStore interface {
	GetMatchRuns(ctx context.Context) ([]db.MatchRun, error)
}

// RosterStore loads the teams of a match run with their members
type RosterStore interface {
	RunStore
	GetParticipants(ctx context.Context) ([]db.Participant, error)
	GetTeams(ctx context.Context, runID string) ([]db.Team, error)
	GetTeamMembers(ctx context.Context, teamIDs []string) ([]db.TeamMember, error)
}

// findRun returns the run with the given ID, or the most recent run if runID is empty
func findRun(ctx context.Context, store RunStore, runID string) (*db.MatchRun, error) {
	runs, err := store.GetMatchRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match runs: %w", err)
	}

	if len(runs) == 0 {
		return nil, fmt.Errorf("no match runs found")
	}

	if runID == "" {
		return &runs[0], nil
	}

	for i := range runs {
		if runs[i].ID == runID {
			return &runs[i], nil
		}
	}

	return nil, fmt.Errorf("match run %s not found", runID)
}

// rosterTeam is a stored team with its members in position order
type rosterTeam struct {
	Team    db.Team
	Members []db.Participant
}

// loadRoster fetches every team of a run with its members
func loadRoster(ctx context.Context, store RosterStore, runID string) ([]rosterTeam, error) {
	teams, err := store.GetTeams(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	if len(teams) == 0 {
		return []rosterTeam{}, nil
	}

	teamIDs := make([]string, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}

	members, err := store.GetTeamMembers(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team members: %w", err)
	}

	participants, err := store.GetParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}

	participantsByID := make(map[string]db.Participant, len(participants))
	for _, p := range participants {
		participantsByID[p.ID] = p
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Position < members[j].Position
	})

	membersByTeam := make(map[string][]db.Participant)
	for _, member := range members {
		p, ok := participantsByID[member.ParticipantID]
		if !ok {
			return nil, fmt.Errorf("team %s references unknown participant %s", member.TeamID, member.ParticipantID)
		}
		membersByTeam[member.TeamID] = append(membersByTeam[member.TeamID], p)
	}

	roster := make([]rosterTeam, len(teams))
	for i, team := range teams {
		roster[i] = rosterTeam{Team: team, Members: membersByTeam[team.ID]}
	}
	return roster, nil
}
