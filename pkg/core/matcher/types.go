package matcher

import (
	"slices"
	"strings"
	"time"
)

// EducationLevel is derived from a participant's study-year label
type EducationLevel int

const (
	LevelUnknown EducationLevel = iota
	Undergraduate
	Postgraduate
)

func (l EducationLevel) String() string {
	switch l {
	case Undergraduate:
		return "Undergraduate"
	case Postgraduate:
		return "Postgraduate"
	default:
		return "Unknown"
	}
}

// CompositionPreference constrains the education level of every teammate
type CompositionPreference string

const (
	UndergradsOnly CompositionPreference = "Undergraduates only"
	PostgradsOnly  CompositionPreference = "Postgraduates only"
	EitherLevel    CompositionPreference = "Either"
)

// IsValid returns true if the preference is one of the known values
func (c CompositionPreference) IsValid() bool {
	return c == UndergradsOnly || c == PostgradsOnly || c == EitherLevel
}

// Allows returns true if a member with this preference can share a team with level
func (c CompositionPreference) Allows(level EducationLevel) bool {
	switch c {
	case UndergradsOnly:
		return level == Undergraduate
	case PostgradsOnly:
		return level == Postgraduate
	default:
		return true
	}
}

// AvailabilityTier is the self-reported availability, ordered from least to most available
type AvailabilityTier int

const (
	AvailabilityUnspecified AvailabilityTier = iota
	NotAvailable
	LightlyAvailable
	ModeratelyAvailable
	FullyAvailable
)

func (a AvailabilityTier) IsValid() bool {
	return a >= NotAvailable && a <= FullyAvailable
}

func (a AvailabilityTier) String() string {
	switch a {
	case NotAvailable:
		return "Not available"
	case LightlyAvailable:
		return "Lightly available"
	case ModeratelyAvailable:
		return "Moderately available"
	case FullyAvailable:
		return "Fully available"
	default:
		return "Unspecified"
	}
}

// ExperienceTier is the self-reported case competition experience
type ExperienceTier int

const (
	ExperienceUnspecified ExperienceTier = iota
	NoExperience
	OneToTwoCompetitions
	ThreeToFiveCompetitions
	FinalistOrWinner
)

func (e ExperienceTier) IsValid() bool {
	return e >= NoExperience && e <= FinalistOrWinner
}

func (e ExperienceTier) String() string {
	switch e {
	case NoExperience:
		return "None"
	case OneToTwoCompetitions:
		return "1-2 competitions"
	case ThreeToFiveCompetitions:
		return "3-5 competitions"
	case FinalistOrWinner:
		return "Finalist/Winner"
	default:
		return "Unspecified"
	}
}

// Participant is one questionnaire submission
type Participant struct {
	ID            string `validate:"required"`
	FullName      string
	Email         string
	ContactNumber string
	Institution   string
	StudyYear     string
	Level         EducationLevel

	// CoreStrengths are ordered, most important first
	CoreStrengths  []string `validate:"min=1,max=3,dive,required"`
	PreferredRoles []string `validate:"max=2"`
	CaseTypes      []string

	// TeamSize is the requested team size
	TeamSize    int
	Composition CompositionPreference

	Availability AvailabilityTier
	Experience   ExperienceTier

	// SubmittedAt orders the pool; ties keep input order
	SubmittedAt time.Time
}

// Team is a candidate team produced by the engine
type Team struct {
	// ID is engine-local (team-1, team-2, ...), not a durable key
	ID      string
	Size    int
	Members []*Participant

	CompatibilityScore float64

	// CommonCaseTypes are the case types shared by every member
	CommonCaseTypes []string

	// AllCaseTypes is the union of members' case types
	AllCaseTypes []string

	// PreferredTeamSizeMatch is the percentage of members whose requested size equals Size
	PreferredTeamSizeMatch float64

	// Phase the team was formed in
	Phase Phase
}

// ReasonCategory classifies why a participant was not matched
type ReasonCategory string

const (
	CategoryTeamSize               ReasonCategory = "TEAM_SIZE"
	CategoryTeamPreference         ReasonCategory = "TEAM_PREFERENCE"
	CategoryCompatibility          ReasonCategory = "COMPATIBILITY"
	CategoryAvailability           ReasonCategory = "AVAILABILITY"
	CategoryInsufficientCandidates ReasonCategory = "INSUFFICIENT_CANDIDATES"
	CategoryQualityThreshold       ReasonCategory = "QUALITY_THRESHOLD"
)

// Severity of a Reason. Higher values are more severe.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Reason is a single diagnostic finding for an unmatched participant
type Reason struct {
	Category    ReasonCategory
	Severity    Severity
	Title       string
	Description string
	Details     []string
	Suggestions []string
}

// PotentialMatch is another unmatched participant this one could have been paired with
type PotentialMatch struct {
	Participant    *Participant
	Score          float64
	BlockingIssues []string
}

// UnmatchedRecord explains why a participant was not placed in a team
type UnmatchedRecord struct {
	Participant      *Participant
	Reasons          []Reason
	PotentialMatches []PotentialMatch
	Recommendations  []string
}

// HasReason returns true if the record carries a reason in the given category
func (r *UnmatchedRecord) HasReason(category ReasonCategory) bool {
	return slices.ContainsFunc(r.Reasons, func(reason Reason) bool {
		return reason.Category == category
	})
}

// HighestSeverity returns the most severe reason level, or 0 if there are no reasons
func (r *UnmatchedRecord) HighestSeverity() Severity {
	var highest Severity
	for _, reason := range r.Reasons {
		highest = max(highest, reason.Severity)
	}
	return highest
}

// NormalizeTag lowercases and trims a free-form tag for comparison
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
