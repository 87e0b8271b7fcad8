package model

import "time"

type ParticipantStatus string

const (
	StatusPendingMatch ParticipantStatus = "pending_match"
	StatusTeamFormed   ParticipantStatus = "team_formed"
)

func (s ParticipantStatus) IsValid() bool {
	return s == StatusPendingMatch || s == StatusTeamFormed
}

// Submission represents one row of the questionnaire response sheet.
// Labels are kept as the respondent chose them; they are parsed when matching.
type Submission struct {
	ID            string
	SubmittedAt   time.Time
	FullName      string
	Email         string
	ContactNumber string
	Institution   string
	StudyYear     string

	CoreStrengths  []string
	PreferredRoles []string
	CaseTypes      []string

	TeamSize     int // 0 if the answer was not a number
	Composition  string
	Availability string
	Experience   string
}
