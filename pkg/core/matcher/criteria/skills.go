package criteria

import (
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
)

// SkillComplementarityCriterion rewards teams whose core strengths do not overlap.
//
// Evaluate:
//   - distinct strengths / total strengths listed across members
//   - 1.0 when nobody shares a strength, lower as members duplicate each other
//   - 0.5 (neutral) if no member listed any strengths
type SkillComplementarityCriterion struct {
	weight float64
}

// NewSkillComplementarityCriterion creates a new SkillComplementarityCriterion with the given weight
func NewSkillComplementarityCriterion(weight float64) *SkillComplementarityCriterion {
	return &SkillComplementarityCriterion{weight: weight}
}

func (c *SkillComplementarityCriterion) Name() string {
	return "SkillComplementarity"
}

func (c *SkillComplementarityCriterion) Evaluate(members []*matcher.Participant) float64 {
	total := 0
	distinct := make(map[string]bool)

	for _, member := range members {
		for _, strength := range member.CoreStrengths {
			key := matcher.NormalizeTag(strength)
			if key == "" {
				continue
			}
			total++
			distinct[key] = true
		}
	}

	if total == 0 {
		return 0.5
	}

	return float64(len(distinct)) / float64(total)
}

func (c *SkillComplementarityCriterion) Weight() float64 {
	return c.weight
}
