package criteria

import (
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
)

// Weights for the compatibility criteria. They are relative; the scorer normalizes their sum.
type Weights struct {
	Skills       float64
	Availability float64
	CaseTypes    float64
	Institution  float64
	Experience   float64
}

// DefaultWeights is the documented scoring split (sums to 100)
var DefaultWeights = Weights{
	Skills:       30,
	Availability: 25,
	CaseTypes:    15,
	Institution:  10,
	Experience:   20,
}

// FromWeights builds the criteria list for the given weights
func FromWeights(w Weights) []matcher.Criterion {
	return []matcher.Criterion{
		NewSkillComplementarityCriterion(w.Skills),
		NewAvailabilityAlignmentCriterion(w.Availability),
		NewCaseOverlapCriterion(w.CaseTypes),
		NewInstitutionDiversityCriterion(w.Institution),
		NewExperienceBalanceCriterion(w.Experience),
	}
}

// Default returns the criteria with DefaultWeights
func Default() []matcher.Criterion {
	return FromWeights(DefaultWeights)
}
