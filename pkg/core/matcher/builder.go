package matcher

import (
	"fmt"
	"slices"
)

// builder holds the pool state while teams are formed
type builder struct {
	cfg    Config
	scorer *Scorer

	// pool holds unassigned valid participants in submission order
	pool []*Participant

	teams []*Team
}

func newBuilder(cfg Config, scorer *Scorer, pool []*Participant) *builder {
	return &builder{
		cfg:    cfg,
		scorer: scorer,
		pool:   pool,
		teams:  []*Team{},
	}
}

// runPass makes one greedy pass over every size bucket and returns the number of teams formed
func (b *builder) runPass(phase Phase) int {
	floor := b.cfg.floorFor(phase)
	assigned := make(map[*Participant]bool)
	formed := 0

	for _, size := range b.requestedSizes() {
		bucket := b.bucket(size)
		formed += b.greedy(b.leadOrder(phase, bucket), b.searchOrder(phase, bucket), size, floor, phase, assigned)
	}

	b.removeAssigned(assigned)
	return formed
}

// greedy tries every unassigned lead in order and accepts each team that reaches the floor
func (b *builder) greedy(leads, searchOrder []*Participant, size int, floor float64, phase Phase, assigned map[*Participant]bool) int {
	formed := 0

	for _, lead := range leads {
		if assigned[lead] {
			continue
		}

		candidates := make([]*Participant, 0, len(searchOrder))
		for _, candidate := range searchOrder {
			if candidate != lead && !assigned[candidate] {
				candidates = append(candidates, candidate)
			}
		}

		members := b.grow(lead, candidates, size)
		if members == nil {
			continue
		}

		// Below the floor the team is disbanded and its members stay in the pool
		score := b.scorer.Score(members)
		if score < floor {
			continue
		}

		b.accept(members, size, score, phase)
		for _, member := range members {
			assigned[member] = true
		}
		formed++
	}

	return formed
}

// runExhaustive searches each size bucket for the best-scoring combinations.
// Buckets larger than ExhaustiveSearchLimit get a single greedy pass at the threshold.
func (b *builder) runExhaustive() int {
	floor := b.cfg.floorFor(PhaseExhaustive)
	assigned := make(map[*Participant]bool)
	formed := 0

	for _, size := range b.requestedSizes() {
		bucket := b.bucket(size)

		if len(bucket) > b.cfg.ExhaustiveSearchLimit {
			formed += b.greedy(bucket, bucket, size, floor, PhaseExhaustive, assigned)
			continue
		}

		remaining := slices.Clone(bucket)
		for len(remaining) >= size {
			members, score := b.bestCombination(remaining, size)
			if members == nil || score < floor {
				break
			}
			b.accept(members, size, score, PhaseExhaustive)
			for _, member := range members {
				assigned[member] = true
			}
			remaining = slices.DeleteFunc(remaining, func(p *Participant) bool {
				return assigned[p]
			})
			formed++
		}
	}

	b.removeAssigned(assigned)
	return formed
}

// grow builds a team around lead by repeatedly adding the candidate that maximizes
// the team score. Returns nil if the team cannot reach size.
func (b *builder) grow(lead *Participant, candidates []*Participant, size int) []*Participant {
	if !SelfConsistent(lead) {
		return nil
	}

	team := []*Participant{lead}
	remaining := slices.Clone(candidates)

	for len(team) < size {
		bestIdx := -1
		bestScore := -1.0

		for i, candidate := range remaining {
			if !compositionAllowsWith(team, candidate) {
				continue
			}

			trial := append(slices.Clone(team), candidate)
			score := b.scorer.Score(trial)

			// Strictly greater keeps the first candidate on ties
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			return nil
		}

		team = append(team, remaining[bestIdx])
		remaining = slices.Delete(remaining, bestIdx, bestIdx+1)
	}

	return team
}

// bestCombination returns the highest-scoring composition-compatible combination of
// size members from bucket. The first combination in index order wins ties.
func (b *builder) bestCombination(bucket []*Participant, size int) ([]*Participant, float64) {
	var best []*Participant
	bestScore := -1.0

	current := make([]*Participant, 0, size)

	var search func(start int)
	search = func(start int) {
		if len(current) == size {
			score := b.scorer.Score(current)
			if score > bestScore {
				bestScore = score
				best = slices.Clone(current)
			}
			return
		}

		// Not enough participants left to complete the combination
		needed := size - len(current)
		for i := start; i <= len(bucket)-needed; i++ {
			candidate := bucket[i]
			if !compositionAllowsWith(current, candidate) {
				continue
			}
			current = append(current, candidate)
			search(i + 1)
			current = current[:len(current)-1]
		}
	}
	search(0)

	return best, bestScore
}

// requestedSizes returns the distinct requested sizes in the pool, ascending
func (b *builder) requestedSizes() []int {
	var sizes []int
	for _, p := range b.pool {
		if !slices.Contains(sizes, p.TeamSize) {
			sizes = append(sizes, p.TeamSize)
		}
	}
	slices.Sort(sizes)
	return sizes
}

// bucket returns the pool members that requested size, in pool order
func (b *builder) bucket(size int) []*Participant {
	var bucket []*Participant
	for _, p := range b.pool {
		if p.TeamSize == size {
			bucket = append(bucket, p)
		}
	}
	return bucket
}

// leadOrder returns the order in which leads are tried for a phase
func (b *builder) leadOrder(phase Phase, bucket []*Participant) []*Participant {
	if phase != PhaseReshuffle {
		return bucket
	}

	// Most constrained first: participants with the fewest composition-compatible
	// candidates get first pick before the easy ones use them up
	options := make(map[*Participant]int, len(bucket))
	for _, p := range bucket {
		for _, other := range bucket {
			if p != other && PairCompatible(p, other) {
				options[p]++
			}
		}
	}

	ordered := slices.Clone(bucket)
	slices.SortStableFunc(ordered, func(x, y *Participant) int {
		return options[x] - options[y]
	})
	return ordered
}

// searchOrder returns the order in which partners are considered for a phase
func (b *builder) searchOrder(phase Phase, bucket []*Participant) []*Participant {
	if phase != PhaseReshuffle {
		return bucket
	}
	reversed := slices.Clone(bucket)
	slices.Reverse(reversed)
	return reversed
}

// accept records a formed team
func (b *builder) accept(members []*Participant, size int, score float64, phase Phase) {
	b.teams = append(b.teams, newTeam(fmt.Sprintf("team-%d", len(b.teams)+1), members, size, score, phase))
}

// removeAssigned drops assigned participants from the pool, keeping order
func (b *builder) removeAssigned(assigned map[*Participant]bool) {
	if len(assigned) == 0 {
		return
	}
	b.pool = slices.DeleteFunc(b.pool, func(p *Participant) bool {
		return assigned[p]
	})
}

// newTeam builds a Team and its derived attributes
func newTeam(id string, members []*Participant, size int, score float64, phase Phase) *Team {
	sizeMatches := 0
	for _, member := range members {
		if member.TeamSize == size {
			sizeMatches++
		}
	}

	return &Team{
		ID:                     id,
		Size:                   size,
		Members:                slices.Clone(members),
		CompatibilityScore:     score,
		CommonCaseTypes:        commonCaseTypes(members),
		AllCaseTypes:           allCaseTypes(members),
		PreferredTeamSizeMatch: float64(sizeMatches) / float64(len(members)) * 100,
		Phase:                  phase,
	}
}

// commonCaseTypes returns case types every member listed, in the first member's order
func commonCaseTypes(members []*Participant) []string {
	common := []string{}
	if len(members) == 0 {
		return common
	}
	for _, caseType := range members[0].CaseTypes {
		key := NormalizeTag(caseType)
		shared := true
		for _, member := range members[1:] {
			if !slices.ContainsFunc(member.CaseTypes, func(c string) bool { return NormalizeTag(c) == key }) {
				shared = false
				break
			}
		}
		if shared && !slices.ContainsFunc(common, func(c string) bool { return NormalizeTag(c) == key }) {
			common = append(common, caseType)
		}
	}
	return common
}

// allCaseTypes returns the union of members' case types in first-seen order
func allCaseTypes(members []*Participant) []string {
	all := []string{}
	seen := make(map[string]bool)
	for _, member := range members {
		for _, caseType := range member.CaseTypes {
			key := NormalizeTag(caseType)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, caseType)
		}
	}
	return all
}
