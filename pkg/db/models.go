package db

import (
	"time"

	"github.com/beyondcareer/teammatch/pkg/core/model"
)

// Participant represents a database participant record
type Participant struct {
	ID             string
	FullName       string
	Email          string
	ContactNumber  string
	Institution    string
	StudyYear      string
	CoreStrengths  []string
	PreferredRoles []string
	CaseTypes      []string
	TeamSize       int
	Composition    string
	Availability   string
	Experience     string
	Status         model.ParticipantStatus
	SubmittedAt    time.Time
	ImportedAt     time.Time
}

// MatchRun represents one invocation of team formation
type MatchRun struct {
	ID             string
	RoundDate      string // date of the matching round, empty if no schedule is configured
	StartedAt      time.Time
	Threshold      float64
	TeamCount      int
	UnmatchedCount int
}

// Team represents a database team record
type Team struct {
	ID                 string
	RunID              string
	Name               string
	Size               int
	CompatibilityScore float64
	CommonCaseTypes    []string
	Phase              string
	CreatedAt          time.Time
	NotifiedDatetime   *time.Time // nil until members have been emailed
}

// TeamMember links a participant to a team
type TeamMember struct {
	TeamID        string
	ParticipantID string
	Position      int
}
