package criteria

import (
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
)

// CaseOverlapCriterion rewards teams with shared case competition interests.
//
// Evaluate:
//   - average over member pairs of |A ∩ B| / min(|A|, |B|)
//   - a pair where one member listed nothing counts as 0.5 (neutral)
//   - identical interests score 1.0, disjoint interests 0
type CaseOverlapCriterion struct {
	weight float64
}

// NewCaseOverlapCriterion creates a new CaseOverlapCriterion with the given weight
func NewCaseOverlapCriterion(weight float64) *CaseOverlapCriterion {
	return &CaseOverlapCriterion{weight: weight}
}

func (c *CaseOverlapCriterion) Name() string {
	return "CaseOverlap"
}

func (c *CaseOverlapCriterion) Evaluate(members []*matcher.Participant) float64 {
	sets := make([]map[string]bool, len(members))
	for i, member := range members {
		sets[i] = tagSet(member.CaseTypes)
	}

	pairs := 0
	total := 0.0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			pairs++
			total += overlapCoefficient(sets[i], sets[j])
		}
	}

	if pairs == 0 {
		return 0
	}

	return total / float64(pairs)
}

func (c *CaseOverlapCriterion) Weight() float64 {
	return c.weight
}

// overlapCoefficient returns |a ∩ b| / min(|a|, |b|), or 0.5 if either set is empty
func overlapCoefficient(a, b map[string]bool) float64 {
	smaller := min(len(a), len(b))
	if smaller == 0 {
		return 0.5
	}

	shared := 0
	for key := range a {
		if b[key] {
			shared++
		}
	}

	return float64(shared) / float64(smaller)
}

// tagSet normalizes free-form tags into a set, dropping blanks
func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if key := matcher.NormalizeTag(tag); key != "" {
			set[key] = true
		}
	}
	return set
}
