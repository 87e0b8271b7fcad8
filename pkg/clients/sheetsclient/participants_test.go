package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionnaireHeader() []interface{} {
	return []interface{}{
		"Timestamp",
		"Full name",
		"Email address",
		"Contact number",
		"Institution",
		"Year of study",
		"Core strengths",
		"Preferred roles",
		"Case competition types",
		"Preferred team size",
		"Team composition",
		"Availability",
		"Case competition experience",
	}
}

func TestParseSubmissions(t *testing.T) {
	raw := [][]interface{}{
		questionnaireHeader(),
		{
			"3/14/2026 9:30:00",
			"Ada Lovelace",
			"Ada@Example.com",
			"0400 000 000",
			"Monash University",
			"3rd year undergraduate",
			"Research, Financial modelling,  Presenting",
			"Team leader",
			"Consulting, Finance",
			"3 people",
			"Either",
			"Fully available",
			"1-2 competitions",
		},
		{"", "Blank row"},
		{"3/15/2026 10:00:00", "Short Row", "short@example.com"},
	}

	submissions, skipped, err := ParseSubmissions(raw, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, submissions, 2)

	ada := submissions[0]
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), ada.SubmittedAt)
	assert.Equal(t, "Ada Lovelace", ada.FullName)
	assert.Equal(t, "Monash University", ada.Institution)
	assert.Equal(t, "3rd year undergraduate", ada.StudyYear)
	assert.Equal(t, []string{"Research", "Financial modelling", "Presenting"}, ada.CoreStrengths)
	assert.Equal(t, []string{"Team leader"}, ada.PreferredRoles)
	assert.Equal(t, []string{"Consulting", "Finance"}, ada.CaseTypes)
	assert.Equal(t, 3, ada.TeamSize)
	assert.Equal(t, "Either", ada.Composition)
	assert.Equal(t, "Fully available", ada.Availability)
	assert.Equal(t, "1-2 competitions", ada.Experience)
	assert.NotEmpty(t, ada.ID)

	short := submissions[1]
	assert.Equal(t, "Short Row", short.FullName)
	assert.Empty(t, short.CoreStrengths)
	assert.Equal(t, 0, short.TeamSize)
}

func TestParseSubmissions_IDsFollowEmail(t *testing.T) {
	raw := [][]interface{}{
		questionnaireHeader(),
		{"3/14/2026 9:30:00", "Ada", "ada@example.com"},
		{"3/16/2026 9:30:00", "Ada L", " ADA@example.com "},
		{"3/16/2026 9:31:00", "Grace", "grace@example.com"},
	}

	submissions, _, err := ParseSubmissions(raw, time.UTC)
	require.NoError(t, err)
	require.Len(t, submissions, 3)

	assert.Equal(t, submissions[0].ID, submissions[1].ID, "A resubmission keeps the respondent's ID")
	assert.NotEqual(t, submissions[0].ID, submissions[2].ID)
}

func TestParseSubmissions_ResponseIDColumn(t *testing.T) {
	header := append(questionnaireHeader(), "Response ID")
	row := make([]interface{}, len(header))
	for i := range row {
		row[i] = ""
	}
	row[0] = "2026-03-14 09:30:00"
	row[len(row)-1] = "resp-42"

	submissions, _, err := ParseSubmissions([][]interface{}{header, row}, time.UTC)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, "resp-42", submissions[0].ID)
}

func TestParseSubmissions_BadTimestampIsSkipped(t *testing.T) {
	raw := [][]interface{}{
		questionnaireHeader(),
		{"yesterday", "Ada", "ada@example.com"},
		{"3/14/2026 9:30:00", "Grace", "grace@example.com"},
	}

	submissions, skipped, err := ParseSubmissions(raw, time.UTC)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, "Grace", submissions[0].FullName)

	require.Len(t, skipped, 1)
	assert.Equal(t, 2, skipped[0].Row)
	assert.Contains(t, skipped[0].Reason, "unrecognised timestamp")
}

func TestParseSubmissions_MissingHeader(t *testing.T) {
	header := questionnaireHeader()[:5]

	_, _, err := ParseSubmissions([][]interface{}{header}, time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required field in header: Year of study")
}

func TestParseTeamSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"2", 2},
		{"3 people", 3},
		{"Team of 4", 4},
		{"no preference", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseTeamSize(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a , ,b,"))
	assert.Nil(t, splitList(""))
}
