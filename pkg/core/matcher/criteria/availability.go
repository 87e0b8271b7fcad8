package criteria

import (
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
)

// Affinity by spread between the most and least available members
var availabilitySpreadScores = []float64{
	0: 1.0, // identical
	1: 0.7, // adjacent
	2: 0.3,
	3: 0.0,
}

// AvailabilityAlignmentCriterion rewards teams whose members are similarly available.
//
// Evaluate:
//   - looks at the spread between the most and least available member
//   - identical tiers score 1.0, adjacent tiers 0.7, two apart 0.3, opposite ends 0
//   - any member who is not available halves the result
type AvailabilityAlignmentCriterion struct {
	weight float64
}

// NewAvailabilityAlignmentCriterion creates a new AvailabilityAlignmentCriterion with the given weight
func NewAvailabilityAlignmentCriterion(weight float64) *AvailabilityAlignmentCriterion {
	return &AvailabilityAlignmentCriterion{weight: weight}
}

func (c *AvailabilityAlignmentCriterion) Name() string {
	return "AvailabilityAlignment"
}

func (c *AvailabilityAlignmentCriterion) Evaluate(members []*matcher.Participant) float64 {
	if len(members) == 0 {
		return 0
	}

	lowest := members[0].Availability
	highest := members[0].Availability
	anyUnavailable := false

	for _, member := range members {
		lowest = min(lowest, member.Availability)
		highest = max(highest, member.Availability)
		if member.Availability == matcher.NotAvailable {
			anyUnavailable = true
		}
	}

	spread := int(highest - lowest)
	if spread >= len(availabilitySpreadScores) {
		spread = len(availabilitySpreadScores) - 1
	}

	score := availabilitySpreadScores[spread]
	if anyUnavailable {
		score /= 2
	}

	return score
}

func (c *AvailabilityAlignmentCriterion) Weight() float64 {
	return c.weight
}
