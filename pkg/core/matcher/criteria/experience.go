package criteria

import (
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
)

// Number of experience tiers a team can span
const experienceTierCount = 4

// ExperienceBalanceCriterion rewards a mix of experience levels over all-novice or all-expert teams.
//
// Evaluate:
//   - 0.5 when every member has the same experience tier
//   - rises linearly to 1.0 as the team covers as many tiers as it can
//     (min(members, 4) distinct tiers)
type ExperienceBalanceCriterion struct {
	weight float64
}

// NewExperienceBalanceCriterion creates a new ExperienceBalanceCriterion with the given weight
func NewExperienceBalanceCriterion(weight float64) *ExperienceBalanceCriterion {
	return &ExperienceBalanceCriterion{weight: weight}
}

func (c *ExperienceBalanceCriterion) Name() string {
	return "ExperienceBalance"
}

func (c *ExperienceBalanceCriterion) Evaluate(members []*matcher.Participant) float64 {
	if len(members) < 2 {
		return 0
	}

	tiers := make(map[matcher.ExperienceTier]bool)
	for _, member := range members {
		tiers[member.Experience] = true
	}

	maxDistinct := min(len(members), experienceTierCount)

	return 0.5 + 0.5*float64(len(tiers)-1)/float64(maxDistinct-1)
}

func (c *ExperienceBalanceCriterion) Weight() float64 {
	return c.weight
}
