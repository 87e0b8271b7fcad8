package db

import (
	"context"
	"errors"
	"time"

	"github.com/beyondcareer/teammatch/pkg/core/model"
)

// ErrParticipantAlreadyAssigned is returned when a team member is no longer pending a match,
// usually because a concurrent run placed them in a team first
var ErrParticipantAlreadyAssigned = errors.New("participant already assigned to a team")

// ParticipantStore defines the interface for participant database operations
type ParticipantStore interface {
	GetParticipants(ctx context.Context) ([]Participant, error)
	GetParticipantsByStatus(ctx context.Context, status model.ParticipantStatus) ([]Participant, error)
	GetUnassignedParticipants(ctx context.Context) ([]Participant, error)
	InsertParticipants(ctx context.Context, participants []Participant) (int, error)
}

// TeamStore defines the interface for team database operations
type TeamStore interface {
	InsertTeam(ctx context.Context, team *Team, memberIDs []string) error
	GetTeams(ctx context.Context, runID string) ([]Team, error)
	GetTeamMembers(ctx context.Context, teamIDs []string) ([]TeamMember, error)
	SetTeamNotified(ctx context.Context, teamID string, datetime time.Time) error
}

// MatchRunStore defines the interface for match run database operations
type MatchRunStore interface {
	InsertMatchRun(ctx context.Context, run *MatchRun) error
	FinishMatchRun(ctx context.Context, runID string, teamCount, unmatchedCount int) error
	GetMatchRuns(ctx context.Context) ([]MatchRun, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	ParticipantStore
	TeamStore
	MatchRunStore
}
