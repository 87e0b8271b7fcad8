package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
	"github.com/beyondcareer/teammatch/pkg/db"
)

func TestToParticipant(t *testing.T) {
	stored := participant("a", 0, 3)
	stored.StudyYear = "PhD"
	stored.Composition = "Postgrads only"
	stored.Availability = "Lightly available"
	stored.Experience = "3-5 competitions"

	p := toParticipant(stored)

	assert.Equal(t, "a", p.ID)
	assert.Equal(t, matcher.Postgraduate, p.Level)
	assert.Equal(t, matcher.PostgradsOnly, p.Composition)
	assert.Equal(t, matcher.LightlyAvailable, p.Availability)
	assert.Equal(t, matcher.ThreeToFiveCompetitions, p.Experience)
	assert.Equal(t, 3, p.TeamSize)
	assert.Equal(t, stored.SubmittedAt, p.SubmittedAt)
}

func TestToParticipant_UnknownLabelsAreUnspecified(t *testing.T) {
	stored := participant("a", 0, 2)
	stored.Availability = "whenever"
	stored.Composition = "surprise me"

	p := toParticipant(stored)

	assert.Equal(t, matcher.AvailabilityUnspecified, p.Availability)
	assert.False(t, p.Composition.IsValid())
}

func TestMatchingConfig_Defaults(t *testing.T) {
	mc := matchingConfig(&config.Config{})
	expected := matcher.DefaultConfig(nil)

	diff := cmp.Diff(expected, mc, cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Criteria"
	}, cmp.Ignore()))
	assert.Empty(t, diff)

	require.Len(t, mc.Criteria, 5)
	total := 0.0
	for _, c := range mc.Criteria {
		total += c.Weight()
	}
	assert.Equal(t, 100.0, total)
}

func TestMatchingConfig_Overrides(t *testing.T) {
	threshold := 55.0
	margin := 0.0
	potential := 0
	limit := 8

	mc := matchingConfig(&config.Config{
		Matching: config.MatchingConfig{
			MinTeamSize:            3,
			MaxTeamSize:            5,
			CompatibilityThreshold: &threshold,
			MaxIterations:          12,
			PhaseMargin:            &margin,
			MaxPotentialMatches:    &potential,
			ExhaustiveSearchLimit:  &limit,
			Weights:                &config.Weights{Skills: 1, Experience: 3},
		},
	})

	assert.Equal(t, 3, mc.MinTeamSize)
	assert.Equal(t, 5, mc.MaxTeamSize)
	assert.Equal(t, 55.0, mc.CompatibilityThreshold)
	assert.Equal(t, 12, mc.MaxIterations)
	assert.Equal(t, 0.0, mc.PhaseMargin, "Explicit zero overrides the default")
	assert.Equal(t, 0, mc.MaxPotentialMatches)
	assert.Equal(t, 8, mc.ExhaustiveSearchLimit)

	weights := map[string]float64{}
	for _, c := range mc.Criteria {
		weights[c.Name()] = c.Weight()
	}
	assert.Equal(t, 1.0, weights["SkillComplementarity"])
	assert.Equal(t, 0.0, weights["AvailabilityAlignment"])
	assert.Equal(t, 3.0, weights["ExperienceBalance"])
}

func TestFindRun(t *testing.T) {
	store := &mockDB{runs: []db.MatchRun{{ID: "new"}, {ID: "old"}}}

	run, err := findRun(context.Background(), store, "")
	require.NoError(t, err)
	assert.Equal(t, "new", run.ID)

	run, err = findRun(context.Background(), store, "old")
	require.NoError(t, err)
	assert.Equal(t, "old", run.ID)
}

func TestLoadRoster_UnknownParticipant(t *testing.T) {
	store := storeWithRun()
	store.members = append(store.members, db.TeamMember{TeamID: "t1", ParticipantID: "ghost", Position: 2})

	_, err := loadRoster(context.Background(), store, "run-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown participant ghost")
}
