package matcher

// Criterion defines the interface for compatibility scoring criteria.
// Hard constraints (team size and composition) are not criteria: they are
// enforced by the builder and never traded off against a score.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// Evaluate scores how well the members fit together on this criterion
	// Returns a value between 0.0 and 1.0 (higher is better)
	// Called with at least two members
	Evaluate(members []*Participant) float64

	// Weight returns the share of the overall score this criterion contributes
	// Weights are relative to each other; the scorer normalizes their sum to 100
	Weight() float64
}

// Scorer combines criteria into a 0-100 compatibility score
type Scorer struct {
	criteria    []Criterion
	totalWeight float64
}

// NewScorer creates a scorer from the given criteria
func NewScorer(criteria []Criterion) *Scorer {
	total := 0.0
	for _, criterion := range criteria {
		total += criterion.Weight()
	}
	return &Scorer{
		criteria:    criteria,
		totalWeight: total,
	}
}

// Score returns the weighted compatibility of the members on a 0-100 scale.
// Fewer than two members, or no weighted criteria, score 0.
func (s *Scorer) Score(members []*Participant) float64 {
	if len(members) < 2 || s.totalWeight <= 0 {
		return 0
	}

	weighted := 0.0
	for _, criterion := range s.criteria {
		value := criterion.Evaluate(members)

		// Clamp misbehaving criteria to [0, 1]
		value = min(max(value, 0), 1)

		weighted += value * criterion.Weight()
	}

	return weighted / s.totalWeight * 100
}

// Breakdown returns each criterion's unweighted value for the members, keyed by name
func (s *Scorer) Breakdown(members []*Participant) map[string]float64 {
	breakdown := make(map[string]float64, len(s.criteria))
	if len(members) < 2 {
		return breakdown
	}
	for _, criterion := range s.criteria {
		breakdown[criterion.Name()] = min(max(criterion.Evaluate(members), 0), 1)
	}
	return breakdown
}
