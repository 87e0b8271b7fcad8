package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeUnmatched_TeamSizeMismatch(t *testing.T) {
	cfg := constantConfig(90)
	residue := pointers([]Participant{
		undergrad("pair", 2, EitherLevel),
		undergrad("four", 4, EitherLevel),
	})

	records := AnalyzeUnmatched(residue, nil, cfg)
	require.Len(t, records, 2)

	pair := records[0]
	require.True(t, pair.HasReason(CategoryTeamSize))
	assert.Equal(t, SeverityHigh, pair.Reasons[0].Severity)
	assert.Contains(t, pair.Reasons[0].Title, "team size 2")
	assert.Contains(t, pair.Reasons[0].Description, "Insufficient candidates")
	assert.Contains(t, pair.Recommendations[0], "no other takers")

	four := records[1]
	require.True(t, four.HasReason(CategoryTeamSize))
	assert.Contains(t, four.Reasons[0].Title, "team size 4")
	assert.Contains(t, four.Recommendations, "Consider a team size of 2 (1 participants waiting)")

	require.Len(t, pair.PotentialMatches, 1)
	assert.Equal(t, "four", pair.PotentialMatches[0].Participant.ID)
	assert.Contains(t, pair.PotentialMatches[0].BlockingIssues, "Requested team sizes differ (2 vs 4)")
}

func TestAnalyzeUnmatched_SelfInconsistentPreference(t *testing.T) {
	cfg := constantConfig(90)
	residue := pointers([]Participant{
		undergrad("confused", 2, PostgradsOnly),
		postgrad("post", 2, EitherLevel),
	})

	records := AnalyzeUnmatched(residue, nil, cfg)
	require.Len(t, records, 2)

	confused := records[0]
	require.Len(t, confused.Reasons, 1)
	assert.Equal(t, CategoryTeamPreference, confused.Reasons[0].Category)
	assert.Equal(t, SeverityCritical, confused.Reasons[0].Severity)
	assert.Equal(t, SeverityCritical, confused.HighestSeverity())

	require.Len(t, confused.PotentialMatches, 1)
	assert.Contains(t, confused.PotentialMatches[0].BlockingIssues[0], "Team composition preferences conflict")
}

func TestAnalyzeUnmatched_InvalidRecordGroupsIssuesByCategory(t *testing.T) {
	cfg := constantConfig(90)
	p := Participant{ID: "broken", TeamSize: 6}
	issues := map[*Participant][]ValidationIssue{&p: ValidateParticipant(&p, cfg)}

	records := AnalyzeUnmatched([]*Participant{&p}, issues, cfg)
	require.Len(t, records, 1)

	record := records[0]
	categories := make(map[ReasonCategory]int)
	for _, reason := range record.Reasons {
		categories[reason.Category]++
		assert.Equal(t, SeverityCritical, reason.Severity)
	}
	assert.Equal(t, 1, categories[CategoryTeamSize])
	assert.Equal(t, 1, categories[CategoryTeamPreference])
	assert.Equal(t, 1, categories[CategoryAvailability])
	assert.Equal(t, 1, categories[CategoryCompatibility])
	assert.Empty(t, record.PotentialMatches, "Invalid records are not paired")
	assert.Contains(t, record.Recommendations, "Resubmit the questionnaire with a team size between 2 and 4")
}

func TestAnalyzeUnmatched_InvalidRecordsDoNotCountAsCandidates(t *testing.T) {
	cfg := constantConfig(90)
	valid := undergrad("valid", 2, EitherLevel)
	invalid := undergrad("invalid", 2, EitherLevel)
	invalid.Availability = AvailabilityUnspecified
	issues := map[*Participant][]ValidationIssue{&invalid: ValidateParticipant(&invalid, cfg)}

	records := AnalyzeUnmatched([]*Participant{&valid, &invalid}, issues, cfg)
	require.Len(t, records, 2)

	assert.True(t, records[0].HasReason(CategoryTeamSize))
	assert.Empty(t, records[0].PotentialMatches)
}

func TestAnalyzeUnmatched_QualityThresholdDetails(t *testing.T) {
	cfg := DefaultConfig([]Criterion{
		&mockCriterion{name: "beta", value: 0.5, weight: 1},
		&mockCriterion{name: "alpha", value: 0.25, weight: 1},
	})
	residue := pointers([]Participant{
		undergrad("a", 2, EitherLevel),
		undergrad("b", 2, EitherLevel),
	})

	records := AnalyzeUnmatched(residue, nil, cfg)
	require.Len(t, records, 2)

	reason := records[0].Reasons[0]
	assert.Equal(t, CategoryQualityThreshold, reason.Category)
	assert.Equal(t, SeverityMedium, reason.Severity)
	assert.Equal(t, []string{"alpha: 25%", "beta: 50%"}, reason.Details)
	assert.Contains(t, records[0].PotentialMatches[0].BlockingIssues[0], "below the threshold")
}

func TestAnalyzeUnmatched_FormableTeamIsLowSeverity(t *testing.T) {
	cfg := constantConfig(90)
	residue := pointers([]Participant{
		undergrad("a", 2, EitherLevel),
		undergrad("b", 2, EitherLevel),
	})

	records := AnalyzeUnmatched(residue, nil, cfg)

	assert.Equal(t, CategoryInsufficientCandidates, records[0].Reasons[0].Category)
	assert.Equal(t, SeverityLow, records[0].Reasons[0].Severity)
	assert.Empty(t, records[0].PotentialMatches[0].BlockingIssues)
}

func TestAnalyzeUnmatched_AvailabilityReasons(t *testing.T) {
	cfg := constantConfig(50)

	busy := undergrad("busy", 2, EitherLevel)
	busy.Availability = NotAvailable
	light := undergrad("light", 2, EitherLevel)
	light.Availability = LightlyAvailable
	full := undergrad("full", 2, EitherLevel)

	records := AnalyzeUnmatched([]*Participant{&busy, &full}, nil, cfg)
	require.True(t, records[0].HasReason(CategoryAvailability))
	assert.Equal(t, SeverityHigh, availabilityReason(t, records[0]).Severity)

	records = AnalyzeUnmatched([]*Participant{&light, &full}, nil, cfg)
	require.True(t, records[0].HasReason(CategoryAvailability))
	assert.Equal(t, SeverityLow, availabilityReason(t, records[0]).Severity)
	assert.Contains(t, records[0].PotentialMatches[0].BlockingIssues, "Availability differs (Lightly available vs Fully available)")
}

func availabilityReason(t *testing.T, record UnmatchedRecord) Reason {
	t.Helper()
	for _, reason := range record.Reasons {
		if reason.Category == CategoryAvailability {
			return reason
		}
	}
	t.Fatalf("no availability reason for %s", record.Participant.ID)
	return Reason{}
}

func TestAnalyzeUnmatched_PotentialMatchesAreRankedAndCapped(t *testing.T) {
	cfg := DefaultConfig([]Criterion{pairCriterion(map[[2]string]float64{
		{"a", "b"}: 0.4,
		{"a", "c"}: 0.9,
		{"a", "d"}: 0.6,
		{"a", "e"}: 0.8,
	})})
	cfg.MaxPotentialMatches = 2

	residue := pointers([]Participant{
		undergrad("a", 2, EitherLevel),
		undergrad("b", 2, EitherLevel),
		undergrad("c", 2, EitherLevel),
		undergrad("d", 2, EitherLevel),
		undergrad("e", 2, EitherLevel),
	})

	records := AnalyzeUnmatched(residue, nil, cfg)

	matches := records[0].PotentialMatches
	require.Len(t, matches, 2)
	assert.Equal(t, "c", matches[0].Participant.ID)
	assert.InDelta(t, 90.0, matches[0].Score, 0.0001)
	assert.Equal(t, "e", matches[1].Participant.ID)
}

func TestAnalyzeUnmatched_ReasonsSortedBySeverity(t *testing.T) {
	cfg := constantConfig(90)
	busy := undergrad("busy", 2, PostgradsOnly)
	busy.Availability = NotAvailable

	records := AnalyzeUnmatched([]*Participant{&busy}, nil, cfg)
	require.Len(t, records[0].Reasons, 2)

	assert.Equal(t, SeverityCritical, records[0].Reasons[0].Severity)
	assert.Equal(t, SeverityHigh, records[0].Reasons[1].Severity)
}

func TestAnalyzeUnmatched_IsIdempotent(t *testing.T) {
	cfg := constantConfig(60)
	residue := pointers([]Participant{
		undergrad("a", 2, EitherLevel),
		postgrad("b", 2, PostgradsOnly),
		undergrad("c", 3, UndergradsOnly),
		undergrad("d", 4, EitherLevel),
		postgrad("e", 2, EitherLevel),
	})

	first := AnalyzeUnmatched(residue, nil, cfg)
	second := AnalyzeUnmatched(residue, nil, cfg)

	assert.Equal(t, first, second)
}
