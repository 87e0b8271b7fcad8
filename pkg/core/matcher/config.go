package matcher

import "fmt"

// Default engine settings
const (
	DefaultMinTeamSize            = 2
	DefaultMaxTeamSize            = 4
	DefaultCompatibilityThreshold = 70.0
	DefaultMaxIterations          = 30
	DefaultPhaseMargin            = 10.0
	DefaultMaxPotentialMatches    = 3
	DefaultExhaustiveSearchLimit  = 16
)

// Config contains the configuration for a matching run
type Config struct {
	// MinTeamSize and MaxTeamSize bound both requested and formed team sizes
	MinTeamSize int
	MaxTeamSize int

	// CompatibilityThreshold is the minimum score (0-100) a team needs to be accepted
	CompatibilityThreshold float64

	// MaxIterations caps the number of greedy passes across the strict, reshuffle and
	// widened phases. The exhaustive pass always runs once more after the budget is spent,
	// so a run makes at most MaxIterations+1 passes.
	MaxIterations int

	// PhaseMargin is added to the threshold in the strict phase (and half of it in the
	// reshuffle phase), so the best teams are formed before lower-scoring ones
	PhaseMargin float64

	// MaxPotentialMatches limits how many potential matches each unmatched record lists
	MaxPotentialMatches int

	// ExhaustiveSearchLimit is the largest size bucket searched exhaustively in the
	// final phase. Larger buckets fall back to a greedy pass at the threshold.
	ExhaustiveSearchLimit int

	// Criteria used to score compatibility
	Criteria []Criterion
}

// DefaultConfig returns a Config with the default settings and the given criteria
func DefaultConfig(criteria []Criterion) Config {
	return Config{
		MinTeamSize:            DefaultMinTeamSize,
		MaxTeamSize:            DefaultMaxTeamSize,
		CompatibilityThreshold: DefaultCompatibilityThreshold,
		MaxIterations:          DefaultMaxIterations,
		PhaseMargin:            DefaultPhaseMargin,
		MaxPotentialMatches:    DefaultMaxPotentialMatches,
		ExhaustiveSearchLimit:  DefaultExhaustiveSearchLimit,
		Criteria:               criteria,
	}
}

// Validate checks the config is usable
func (c Config) Validate() error {
	if c.MinTeamSize < 2 {
		return fmt.Errorf("min team size must be at least 2, got %d", c.MinTeamSize)
	}
	if c.MaxTeamSize < c.MinTeamSize {
		return fmt.Errorf("max team size %d is below min team size %d", c.MaxTeamSize, c.MinTeamSize)
	}
	if c.CompatibilityThreshold < 0 || c.CompatibilityThreshold > 100 {
		return fmt.Errorf("compatibility threshold must be between 0 and 100, got %.1f", c.CompatibilityThreshold)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.PhaseMargin < 0 {
		return fmt.Errorf("phase margin must not be negative, got %.1f", c.PhaseMargin)
	}
	if c.MaxPotentialMatches < 0 {
		return fmt.Errorf("max potential matches must not be negative, got %d", c.MaxPotentialMatches)
	}
	if c.ExhaustiveSearchLimit < 0 {
		return fmt.Errorf("exhaustive search limit must not be negative, got %d", c.ExhaustiveSearchLimit)
	}
	if len(c.Criteria) == 0 {
		return fmt.Errorf("at least one criterion is required")
	}
	return nil
}

// floorFor returns the acceptance floor for a phase, never below the threshold
func (c Config) floorFor(phase Phase) float64 {
	var floor float64
	switch phase {
	case PhaseStrict:
		floor = c.CompatibilityThreshold + c.PhaseMargin
	case PhaseReshuffle:
		floor = c.CompatibilityThreshold + c.PhaseMargin/2
	default:
		floor = c.CompatibilityThreshold
	}
	return min(floor, 100)
}
