package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// FormTeamsStore defines the database operations needed for forming teams
type FormTeamsStore interface {
	GetUnassignedParticipants(ctx context.Context) ([]db.Participant, error)
	InsertMatchRun(ctx context.Context, run *db.MatchRun) error
	InsertTeam(ctx context.Context, team *db.Team, memberIDs []string) error
	FinishMatchRun(ctx context.Context, runID string, teamCount, unmatchedCount int) error
}

// FormedTeam is a team produced by a run, with the profiles of its members
type FormedTeam struct {
	Team    db.Team
	Members []*matcher.Participant
}

// TeamConflict is a team that could not be saved because a member was placed by another run
type TeamConflict struct {
	Team      db.Team
	MemberIDs []string
	Err       error
}

// FormTeamsResult contains the outcome of a team formation run
type FormTeamsResult struct {
	Run        *db.MatchRun // nil on a dry run
	Teams      []FormedTeam
	Conflicts  []TeamConflict
	Unmatched  []matcher.UnmatchedRecord
	Iterations int
	Phases     []matcher.PhaseSummary
	PoolSize   int
	DryRun     bool
}

// FormTeams matches every participant still waiting for a team and saves the teams.
//
// Each team is saved in its own transaction that moves its members from pending_match to
// team_formed. If another run has already claimed one of the members, that team is skipped
// and reported as a conflict; the rest of the run is unaffected.
// With dryRun set nothing is written.
func FormTeams(
	ctx context.Context,
	database FormTeamsStore,
	cfg *config.Config,
	logger *zap.Logger,
	dryRun bool,
) (*FormTeamsResult, error) {
	logger.Debug("Starting formTeams", zap.Bool("dry_run", dryRun))

	pool, err := database.GetUnassignedParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned participants: %w", err)
	}

	logger.Debug("Fetched matching pool", zap.Int("count", len(pool)))

	matchCfg := matchingConfig(cfg)
	outcome, err := matcher.Match(toParticipants(pool), matchCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to run matching: %w", err)
	}

	for _, phase := range outcome.Phases {
		logger.Debug("Matching phase",
			zap.String("phase", phase.Phase.String()),
			zap.Int("passes", phase.Passes),
			zap.Int("teams_formed", phase.TeamsFormed),
			zap.Float64("floor", phase.Floor))
	}

	result := &FormTeamsResult{
		Unmatched:  outcome.Unmatched,
		Iterations: outcome.Iterations,
		Phases:     outcome.Phases,
		PoolSize:   len(pool),
		DryRun:     dryRun,
	}

	startedAt := time.Now()

	if dryRun {
		for i, team := range outcome.Teams {
			result.Teams = append(result.Teams, FormedTeam{
				Team:    newDBTeam("", i+1, team, startedAt),
				Members: team.Members,
			})
		}
		logger.Info("Dry run complete, nothing saved",
			zap.Int("teams", len(outcome.Teams)),
			zap.Int("unmatched", len(outcome.Unmatched)))
		return result, nil
	}

	run := &db.MatchRun{
		ID:        uuid.New().String(),
		StartedAt: startedAt,
		Threshold: matchCfg.CompatibilityThreshold,
	}

	round, ok, err := CurrentMatchingRound(cfg, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to determine matching round: %w", err)
	}
	if ok {
		run.RoundDate = round.Format("2006-01-02")
	}

	if err := database.InsertMatchRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to insert match run: %w", err)
	}

	logger.Debug("Created match run", zap.String("run_id", run.ID), zap.String("round_date", run.RoundDate))

	for _, team := range outcome.Teams {
		dbTeam := newDBTeam(run.ID, len(result.Teams)+1, team, startedAt)
		memberIDs := make([]string, len(team.Members))
		for i, member := range team.Members {
			memberIDs[i] = member.ID
		}

		err := database.InsertTeam(ctx, &dbTeam, memberIDs)
		if errors.Is(err, db.ErrParticipantAlreadyAssigned) {
			logger.Info("Skipping team, a member was placed by another run",
				zap.Strings("members", memberIDs),
				zap.Error(err))
			result.Conflicts = append(result.Conflicts, TeamConflict{Team: dbTeam, MemberIDs: memberIDs, Err: err})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert team: %w", err)
		}

		result.Teams = append(result.Teams, FormedTeam{Team: dbTeam, Members: team.Members})
	}

	run.TeamCount = len(result.Teams)
	run.UnmatchedCount = len(outcome.Unmatched)
	if err := database.FinishMatchRun(ctx, run.ID, run.TeamCount, run.UnmatchedCount); err != nil {
		return nil, fmt.Errorf("failed to finish match run: %w", err)
	}
	result.Run = run

	logger.Debug("Match run complete",
		zap.String("run_id", run.ID),
		zap.Int("teams", run.TeamCount),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Int("unmatched", run.UnmatchedCount))

	return result, nil
}

// newDBTeam builds the stored form of an engine team. Dry runs have no run ID.
func newDBTeam(runID string, number int, team *matcher.Team, createdAt time.Time) db.Team {
	id := ""
	if runID != "" {
		id = uuid.New().String()
	}
	return db.Team{
		ID:                 id,
		RunID:              runID,
		Name:               fmt.Sprintf("Team %d", number),
		Size:               team.Size,
		CompatibilityScore: team.CompatibilityScore,
		CommonCaseTypes:    team.CommonCaseTypes,
		Phase:              team.Phase.String(),
		CreatedAt:          createdAt,
	}
}
