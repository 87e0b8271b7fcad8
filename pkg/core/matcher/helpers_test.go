package matcher

import "time"

// mockCriterion returns a fixed value for every team
type mockCriterion struct {
	name   string
	value  float64
	weight float64
}

func (m *mockCriterion) Name() string                          { return m.name }
func (m *mockCriterion) Evaluate(members []*Participant) float64 { return m.value }
func (m *mockCriterion) Weight() float64                       { return m.weight }

// funcCriterion evaluates with a custom function
type funcCriterion struct {
	name   string
	fn     func(members []*Participant) float64
	weight float64
}

func (f *funcCriterion) Name() string                          { return f.name }
func (f *funcCriterion) Evaluate(members []*Participant) float64 { return f.fn(members) }
func (f *funcCriterion) Weight() float64                       { return f.weight }

// constantConfig returns a default config whose scorer always returns score
func constantConfig(score float64) Config {
	return DefaultConfig([]Criterion{&mockCriterion{name: "constant", value: score / 100, weight: 1}})
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// undergrad returns a valid undergraduate participant
func undergrad(id string, size int, composition CompositionPreference) Participant {
	return Participant{
		ID:            id,
		FullName:      "Student " + id,
		Institution:   "University " + id,
		StudyYear:     "2nd Year",
		Level:         Undergraduate,
		CoreStrengths: []string{"Strength " + id},
		CaseTypes:     []string{"Consulting"},
		TeamSize:      size,
		Composition:   composition,
		Availability:  FullyAvailable,
		Experience:    OneToTwoCompetitions,
	}
}

// postgrad returns a valid postgraduate participant
func postgrad(id string, size int, composition CompositionPreference) Participant {
	p := undergrad(id, size, composition)
	p.StudyYear = "Masters"
	p.Level = Postgraduate
	return p
}

// submittedInOrder stamps SubmittedAt one minute apart in slice order
func submittedInOrder(participants []Participant) []Participant {
	for i := range participants {
		participants[i].SubmittedAt = baseTime.Add(time.Duration(i) * time.Minute)
	}
	return participants
}

func ids(members []*Participant) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.ID
	}
	return out
}

func pointers(participants []Participant) []*Participant {
	out := make([]*Participant, len(participants))
	for i := range participants {
		out[i] = &participants[i]
	}
	return out
}

func teamIDs(teams []*Team) [][]string {
	out := make([][]string, len(teams))
	for i, team := range teams {
		out[i] = ids(team.Members)
	}
	return out
}

// sizeHonored returns true if every member requested exactly the given size
func sizeHonored(members []*Participant, size int) bool {
	for _, member := range members {
		if member.TeamSize != size {
			return false
		}
	}
	return true
}
