package matcher

// Phase is a state of the relaxation controller.
// Phases differ in attempt order and acceptance floor, never in hard constraints.
type Phase int

const (
	// PhaseStrict uses submission order and a floor above the threshold
	PhaseStrict Phase = iota

	// PhaseReshuffle tries the most constrained leads first with reversed partner order
	PhaseReshuffle

	// PhaseWidened accepts any team at or above the threshold
	PhaseWidened

	// PhaseExhaustive searches the residual pool for the best combinations
	PhaseExhaustive

	// PhaseDone is terminal
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseStrict:
		return "strict"
	case PhaseReshuffle:
		return "reshuffle"
	case PhaseWidened:
		return "widened"
	case PhaseExhaustive:
		return "exhaustive"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// controllerState is the input to the phase transition function
type controllerState struct {
	phase          Phase
	formedThisPass int
	iterationsUsed int
	maxIterations  int
	poolSize       int
	minTeamSize    int
}

// nextPhase returns the phase to run after a pass.
//
//   - The pool is too small for any team: done
//   - The exhaustive phase runs exactly once: done
//   - The iteration budget is spent: go straight to the exhaustive phase
//   - A pass formed no teams: the phase is closed, move to the next one
//   - Otherwise stay in the current phase
func nextPhase(s controllerState) Phase {
	if s.poolSize < s.minTeamSize {
		return PhaseDone
	}
	if s.phase >= PhaseExhaustive {
		return PhaseDone
	}
	if s.iterationsUsed >= s.maxIterations {
		return PhaseExhaustive
	}
	if s.formedThisPass == 0 {
		return s.phase + 1
	}
	return s.phase
}

// PhaseSummary records what a phase achieved
type PhaseSummary struct {
	Phase       Phase
	Passes      int
	TeamsFormed int
	Floor       float64
}
