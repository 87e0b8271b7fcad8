package criteria

import (
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
)

// InstitutionDiversityCriterion gives a small bonus to teams drawn from several institutions.
//
// Evaluate:
//   - distinct institutions / members
//   - blank institutions count as distinct (nothing to compare)
type InstitutionDiversityCriterion struct {
	weight float64
}

// NewInstitutionDiversityCriterion creates a new InstitutionDiversityCriterion with the given weight
func NewInstitutionDiversityCriterion(weight float64) *InstitutionDiversityCriterion {
	return &InstitutionDiversityCriterion{weight: weight}
}

func (c *InstitutionDiversityCriterion) Name() string {
	return "InstitutionDiversity"
}

func (c *InstitutionDiversityCriterion) Evaluate(members []*matcher.Participant) float64 {
	if len(members) == 0 {
		return 0
	}

	distinct := make(map[string]bool)
	blank := 0
	for _, member := range members {
		key := matcher.NormalizeTag(member.Institution)
		if key == "" {
			blank++
			continue
		}
		distinct[key] = true
	}

	return float64(len(distinct)+blank) / float64(len(members))
}

func (c *InstitutionDiversityCriterion) Weight() float64 {
	return c.weight
}
