package matcher

import (
	"fmt"
	"slices"
)

// Outcome represents the result of a matching run
type Outcome struct {
	// Teams formed, in the order they were accepted
	Teams []*Team

	// Unmatched participants with diagnostics, in submission order
	Unmatched []UnmatchedRecord

	// Iterations is the number of passes made across all phases
	Iterations int

	// Phases summarizes each phase that ran
	Phases []PhaseSummary
}

// MatchedCount returns the number of participants placed in teams
func (o *Outcome) MatchedCount() int {
	count := 0
	for _, team := range o.Teams {
		count += len(team.Members)
	}
	return count
}

// Match partitions participants into teams plus an unmatched residue.
//
// The run never fails because of a participant: malformed records are reported as
// unmatched with CRITICAL reasons. An error is returned only for an unusable config.
// Participants are copied; the input slice is not modified.
func Match(participants []Participant, cfg Config) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching config: %w", err)
	}

	scorer := NewScorer(cfg.Criteria)

	records := make([]*Participant, len(participants))
	for i := range participants {
		p := participants[i]
		records[i] = &p
	}

	// Submission order, input order on ties
	slices.SortStableFunc(records, func(a, b *Participant) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})

	// Split out malformed records before matching
	issues := make(map[*Participant][]ValidationIssue)
	seenIDs := make(map[string]bool)
	pool := make([]*Participant, 0, len(records))
	for _, p := range records {
		recordIssues := ValidateParticipant(p, cfg)
		if p.ID != "" && seenIDs[p.ID] {
			recordIssues = append(recordIssues, ValidationIssue{
				Field:    "ID",
				Category: CategoryCompatibility,
				Message:  fmt.Sprintf("duplicate submission for participant %s", p.ID),
			})
		}
		seenIDs[p.ID] = true

		if len(recordIssues) > 0 {
			issues[p] = recordIssues
			continue
		}
		pool = append(pool, p)
	}

	b := newBuilder(cfg, scorer, pool)
	outcome := &Outcome{
		Teams:     []*Team{},
		Unmatched: []UnmatchedRecord{},
		Phases:    []PhaseSummary{},
	}

	// Relaxation controller
	phase := PhaseStrict
	if len(b.pool) < cfg.MinTeamSize {
		phase = PhaseDone
	}
	for phase != PhaseDone {
		var formed int
		if phase == PhaseExhaustive {
			formed = b.runExhaustive()
		} else {
			formed = b.runPass(phase)
		}
		outcome.Iterations++
		outcome.Phases = recordPass(outcome.Phases, phase, formed, cfg.floorFor(phase))

		phase = nextPhase(controllerState{
			phase:          phase,
			formedThisPass: formed,
			iterationsUsed: outcome.Iterations,
			maxIterations:  cfg.MaxIterations,
			poolSize:       len(b.pool),
			minTeamSize:    cfg.MinTeamSize,
		})
	}

	outcome.Teams = b.teams

	// Residue in submission order: whatever is left in the pool plus malformed records
	remaining := make(map[*Participant]bool, len(b.pool))
	for _, p := range b.pool {
		remaining[p] = true
	}
	var residue []*Participant
	for _, p := range records {
		if remaining[p] || issues[p] != nil {
			residue = append(residue, p)
		}
	}

	outcome.Unmatched = AnalyzeUnmatched(residue, issues, cfg)

	return outcome, nil
}

// recordPass folds a pass into the per-phase summaries
func recordPass(phases []PhaseSummary, phase Phase, formed int, floor float64) []PhaseSummary {
	if n := len(phases); n > 0 && phases[n-1].Phase == phase {
		phases[n-1].Passes++
		phases[n-1].TeamsFormed += formed
		return phases
	}
	return append(phases, PhaseSummary{
		Phase:       phase,
		Passes:      1,
		TeamsFormed: formed,
		Floor:       floor,
	})
}
