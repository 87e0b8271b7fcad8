package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/clients/sheetsclient"
	"github.com/beyondcareer/teammatch/pkg/core/model"
	"github.com/beyondcareer/teammatch/pkg/db"
)

var errBoom = errors.New("boom")

// mockDB is an in-memory db.Database for testing
type mockDB struct {
	mu sync.Mutex

	participants []db.Participant
	runs         []db.MatchRun
	teams        []db.Team
	members      []db.TeamMember

	// IDs that InsertTeam treats as already claimed by another run
	claimed map[string]bool

	getParticipantsErr error
	insertTeamErr      error
	setNotifiedErr     error
	finishedRuns       map[string][2]int
}

var _ db.Database = (*mockDB)(nil)

func (m *mockDB) GetParticipants(ctx context.Context) ([]db.Participant, error) {
	if m.getParticipantsErr != nil {
		return nil, m.getParticipantsErr
	}
	return m.participants, nil
}

func (m *mockDB) GetParticipantsByStatus(ctx context.Context, status model.ParticipantStatus) ([]db.Participant, error) {
	var out []db.Participant
	for _, p := range m.participants {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockDB) GetUnassignedParticipants(ctx context.Context) ([]db.Participant, error) {
	if m.getParticipantsErr != nil {
		return nil, m.getParticipantsErr
	}
	return m.GetParticipantsByStatus(ctx, model.StatusPendingMatch)
}

func (m *mockDB) InsertParticipants(ctx context.Context, participants []db.Participant) (int, error) {
	existing := make(map[string]bool)
	for _, p := range m.participants {
		existing[p.ID] = true
	}

	inserted := 0
	for _, p := range participants {
		if existing[p.ID] {
			continue
		}
		existing[p.ID] = true
		m.participants = append(m.participants, p)
		inserted++
	}
	return inserted, nil
}

func (m *mockDB) InsertTeam(ctx context.Context, team *db.Team, memberIDs []string) error {
	if m.insertTeamErr != nil {
		return m.insertTeamErr
	}
	for _, id := range memberIDs {
		if m.claimed[id] {
			return fmt.Errorf("participant %s: %w", id, db.ErrParticipantAlreadyAssigned)
		}
	}

	m.teams = append(m.teams, *team)
	for i, id := range memberIDs {
		m.members = append(m.members, db.TeamMember{TeamID: team.ID, ParticipantID: id, Position: i})
		for j := range m.participants {
			if m.participants[j].ID == id {
				m.participants[j].Status = model.StatusTeamFormed
			}
		}
	}
	return nil
}

func (m *mockDB) GetTeams(ctx context.Context, runID string) ([]db.Team, error) {
	var out []db.Team
	for _, team := range m.teams {
		if team.RunID == runID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (m *mockDB) GetTeamMembers(ctx context.Context, teamIDs []string) ([]db.TeamMember, error) {
	wanted := make(map[string]bool)
	for _, id := range teamIDs {
		wanted[id] = true
	}

	var out []db.TeamMember
	for _, member := range m.members {
		if wanted[member.TeamID] {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockDB) SetTeamNotified(ctx context.Context, teamID string, datetime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setNotifiedErr != nil {
		return m.setNotifiedErr
	}
	for i := range m.teams {
		if m.teams[i].ID == teamID {
			m.teams[i].NotifiedDatetime = &datetime
			return nil
		}
	}
	return fmt.Errorf("team %s not found", teamID)
}

func (m *mockDB) InsertMatchRun(ctx context.Context, run *db.MatchRun) error {
	// Most recent first, like the real store
	m.runs = append([]db.MatchRun{*run}, m.runs...)
	return nil
}

func (m *mockDB) FinishMatchRun(ctx context.Context, runID string, teamCount, unmatchedCount int) error {
	if m.finishedRuns == nil {
		m.finishedRuns = make(map[string][2]int)
	}
	m.finishedRuns[runID] = [2]int{teamCount, unmatchedCount}
	return nil
}

func (m *mockDB) GetMatchRuns(ctx context.Context) ([]db.MatchRun, error) {
	return m.runs, nil
}

// mockSubmissionSource implements SubmissionSource for testing
type mockSubmissionSource struct {
	submissions []model.Submission
	skipped     []sheetsclient.SkippedRow
	listErr     error
}

func (m *mockSubmissionSource) ListSubmissions(cfg *config.Config) ([]model.Submission, []sheetsclient.SkippedRow, error) {
	if m.listErr != nil {
		return nil, nil, m.listErr
	}
	return m.submissions, m.skipped, nil
}

// mockPublisher implements RosterPublisher for testing
type mockPublisher struct {
	spreadsheetID string
	roster        *sheetsclient.PublishedRoster
	publishErr    error
}

func (m *mockPublisher) PublishTeams(spreadsheetID string, roster *sheetsclient.PublishedRoster) (string, error) {
	if m.publishErr != nil {
		return "", m.publishErr
	}
	m.spreadsheetID = spreadsheetID
	m.roster = roster
	return "Teams " + roster.RunID, nil
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

// mockEmailSender implements EmailSender for testing
type mockEmailSender struct {
	mu         sync.Mutex
	sentEmails []sentEmail
	failFor    map[string]bool
}

func (m *mockEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failFor[to] {
		return errBoom
	}
	m.sentEmails = append(m.sentEmails, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (m *mockEmailSender) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.sentEmails))
	for i, email := range m.sentEmails {
		out[i] = email.to
	}
	return out
}

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// participant returns a pending participant with a complete, valid profile
func participant(id string, minute int, teamSize int) db.Participant {
	return db.Participant{
		ID:            id,
		FullName:      "Person " + id,
		Email:         id + "@example.com",
		Institution:   "Monash",
		StudyYear:     "Year 2",
		CoreStrengths: []string{"Research"},
		CaseTypes:     []string{"Consulting"},
		TeamSize:      teamSize,
		Composition:   "Either",
		Availability:  "Fully available",
		Experience:    "None",
		Status:        model.StatusPendingMatch,
		SubmittedAt:   baseTime.Add(time.Duration(minute) * time.Minute),
	}
}

// complement returns a participant who scores 100 when teamed with participant(...)
func complement(id string, minute int, teamSize int) db.Participant {
	p := participant(id, minute, teamSize)
	p.Institution = "UNSW"
	p.CoreStrengths = []string{"Presenting"}
	p.Experience = "Finalist / Winner"
	return p
}

func testConfig() *config.Config {
	return &config.Config{
		TeamsSheetID:      "teams-sheet",
		NotifyConcurrency: 2,
	}
}
