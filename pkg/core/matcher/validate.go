package matcher

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationIssue describes one problem with a participant record
type ValidationIssue struct {
	Field    string
	Category ReasonCategory
	Message  string
}

// ValidateParticipant checks a participant record against the config.
// Returns an empty slice if the record can be matched.
func ValidateParticipant(p *Participant, cfg Config) []ValidationIssue {
	var issues []ValidationIssue

	if err := validate.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				issues = append(issues, fieldIssue(fieldErr))
			}
		} else {
			issues = append(issues, ValidationIssue{
				Field:    "Participant",
				Category: CategoryCompatibility,
				Message:  err.Error(),
			})
		}
	}

	if p.TeamSize < cfg.MinTeamSize || p.TeamSize > cfg.MaxTeamSize {
		issues = append(issues, ValidationIssue{
			Field:    "TeamSize",
			Category: CategoryTeamSize,
			Message:  fmt.Sprintf("requested team size %d is outside the supported range %d-%d", p.TeamSize, cfg.MinTeamSize, cfg.MaxTeamSize),
		})
	}

	if !p.Composition.IsValid() {
		issues = append(issues, ValidationIssue{
			Field:    "Composition",
			Category: CategoryTeamPreference,
			Message:  fmt.Sprintf("team composition preference %q is not recognised", p.Composition),
		})
	}

	if p.Level == LevelUnknown {
		issues = append(issues, ValidationIssue{
			Field:    "StudyYear",
			Category: CategoryTeamPreference,
			Message:  fmt.Sprintf("study year %q does not identify an undergraduate or postgraduate", p.StudyYear),
		})
	}

	if !p.Availability.IsValid() {
		issues = append(issues, ValidationIssue{
			Field:    "Availability",
			Category: CategoryAvailability,
			Message:  "availability is missing or not recognised",
		})
	}

	if !p.Experience.IsValid() {
		issues = append(issues, ValidationIssue{
			Field:    "Experience",
			Category: CategoryCompatibility,
			Message:  "experience level is missing or not recognised",
		})
	}

	return issues
}

// fieldIssue converts a struct tag failure into a ValidationIssue
func fieldIssue(fieldErr validator.FieldError) ValidationIssue {
	var message string
	switch fieldErr.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", fieldErr.Field())
	case "min":
		message = fmt.Sprintf("%s needs at least %s entries", fieldErr.Field(), fieldErr.Param())
	case "max":
		message = fmt.Sprintf("%s allows at most %s entries", fieldErr.Field(), fieldErr.Param())
	default:
		message = fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag())
	}
	return ValidationIssue{
		Field:    fieldErr.StructField(),
		Category: CategoryCompatibility,
		Message:  message,
	}
}
