package matcher

import "strings"

// Keywords in a study-year label that mark a postgraduate student
var postgraduateKeywords = []string{
	"postgrad",
	"master",
	"mba",
	"phd",
	"doctor",
	"graduate diploma",
	"graduate certificate",
}

// Keywords in a study-year label that mark an undergraduate student
var undergraduateKeywords = []string{
	"undergrad",
	"year",
	"bachelor",
	"honours",
	"freshman",
	"sophomore",
	"junior",
	"senior",
}

// ParseEducationLevel derives the education level from a study-year label.
// "Undergrad" is checked first because it contains "grad".
func ParseEducationLevel(studyYear string) EducationLevel {
	label := NormalizeTag(studyYear)
	if label == "" {
		return LevelUnknown
	}
	if strings.Contains(label, "undergrad") {
		return Undergraduate
	}
	for _, keyword := range postgraduateKeywords {
		if strings.Contains(label, keyword) {
			return Postgraduate
		}
	}
	for _, keyword := range undergraduateKeywords {
		if strings.Contains(label, keyword) {
			return Undergraduate
		}
	}
	return LevelUnknown
}

// ParseCompositionPreference maps questionnaire wording to a CompositionPreference.
// Wording that names both levels ("undergrads or postgrads") means either.
// Unknown wording returns an invalid (empty) preference.
func ParseCompositionPreference(label string) CompositionPreference {
	normalized := NormalizeTag(label)
	undergrad := strings.Contains(normalized, "undergrad")
	postgrad := strings.Contains(normalized, "postgrad")

	switch {
	case normalized == "":
		return ""
	case strings.Contains(normalized, "either"),
		strings.Contains(normalized, "no preference"),
		strings.Contains(normalized, "any"),
		strings.Contains(normalized, "mixed"),
		undergrad && postgrad:
		return EitherLevel
	case undergrad:
		return UndergradsOnly
	case postgrad:
		return PostgradsOnly
	default:
		return ""
	}
}

// ParseAvailabilityTier maps questionnaire wording to an AvailabilityTier
func ParseAvailabilityTier(label string) AvailabilityTier {
	normalized := NormalizeTag(label)
	switch {
	case strings.HasPrefix(normalized, "not"), strings.HasPrefix(normalized, "unavailable"):
		return NotAvailable
	case strings.HasPrefix(normalized, "light"):
		return LightlyAvailable
	case strings.HasPrefix(normalized, "moderate"):
		return ModeratelyAvailable
	case strings.HasPrefix(normalized, "full"):
		return FullyAvailable
	default:
		return AvailabilityUnspecified
	}
}

// ParseExperienceTier maps questionnaire wording to an ExperienceTier
func ParseExperienceTier(label string) ExperienceTier {
	normalized := NormalizeTag(label)
	switch {
	case normalized == "":
		return ExperienceUnspecified
	case strings.Contains(normalized, "final"), strings.Contains(normalized, "winner"):
		return FinalistOrWinner
	case strings.HasPrefix(normalized, "3"):
		return ThreeToFiveCompetitions
	case strings.HasPrefix(normalized, "1"):
		return OneToTwoCompetitions
	case strings.HasPrefix(normalized, "none"), strings.HasPrefix(normalized, "no "), normalized == "no":
		return NoExperience
	default:
		return ExperienceUnspecified
	}
}
