package formsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/forms/v1"

	"github.com/beyondcareer/teammatch/pkg/clients/sheetsclient"
)

func questionItem(id, title string) *forms.Item {
	return &forms.Item{
		Title:        title,
		QuestionItem: &forms.QuestionItem{Question: &forms.Question{QuestionId: id}},
	}
}

func text(values ...string) forms.Answer {
	answers := make([]*forms.TextAnswer, len(values))
	for i, v := range values {
		answers[i] = &forms.TextAnswer{Value: v}
	}
	return forms.Answer{TextAnswers: &forms.TextAnswers{Answers: answers}}
}

func questionnaireForm() *forms.Form {
	return &forms.Form{
		Items: []*forms.Item{
			questionItem("q1", "Full name"),
			{Title: "About you"}, // section header
			questionItem("q2", "Contact number"),
			questionItem("q3", "Institution"),
			questionItem("q4", "Year of study"),
			questionItem("q5", "Core strengths"),
			questionItem("q6", "Preferred roles"),
			questionItem("q7", "Case competition types"),
			questionItem("q8", "Preferred team size"),
			questionItem("q9", "Team composition"),
			questionItem("q10", "Availability"),
			questionItem("q11", "Case competition experience"),
		},
	}
}

func TestResponseRows(t *testing.T) {
	responses := []*forms.FormResponse{
		{
			RespondentEmail:   "ada@example.com",
			LastSubmittedTime: "2026-03-14T09:30:00Z",
			Answers: map[string]forms.Answer{
				"q1": text("Ada Lovelace"),
				"q5": text("Research", "Presenting"),
				"q8": text("3 people"),
			},
		},
		{
			CreateTime: "2026-03-15T10:00:00Z",
			Answers:    map[string]forms.Answer{"q1": text("Grace Hopper")},
		},
	}

	rows := responseRows(questionnaireForm(), responses)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "Timestamp", header[0])
	assert.Equal(t, "Email address", header[1])
	assert.Equal(t, "Full name", header[2])
	assert.Len(t, header, 13, "Section headers are not columns")

	assert.Equal(t, "2026-03-14T09:30:00Z", rows[1][0])
	assert.Equal(t, "ada@example.com", rows[1][1])
	assert.Equal(t, "Research, Presenting", rows[1][6])

	assert.Equal(t, "2026-03-15T10:00:00Z", rows[2][0], "Falls back to the create time")
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "", rows[2][3], "Unanswered questions are blank")
}

func TestResponseRows_ParseLikeTheLinkedSheet(t *testing.T) {
	responses := []*forms.FormResponse{{
		RespondentEmail:   "Ada@Example.com",
		LastSubmittedTime: "2026-03-14T09:30:00Z",
		Answers: map[string]forms.Answer{
			"q1":  text("Ada Lovelace"),
			"q4":  text("2nd year"),
			"q5":  text("Research", "Presenting"),
			"q8":  text("3 people"),
			"q9":  text("Either"),
			"q10": text("Fully available"),
			"q11": text("None"),
		},
	}}

	submissions, skipped, err := sheetsclient.ParseSubmissions(responseRows(questionnaireForm(), responses), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, submissions, 1)

	s := submissions[0]
	assert.Equal(t, "Ada Lovelace", s.FullName)
	assert.Equal(t, "Ada@Example.com", s.Email)
	assert.Equal(t, []string{"Research", "Presenting"}, s.CoreStrengths)
	assert.Equal(t, 3, s.TeamSize)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), s.SubmittedAt.UTC())

	// Same respondent imported from the sheet gets the same ID
	sheetRows := [][]interface{}{
		{"Timestamp", "Full name", "Email address", "Contact number", "Institution", "Year of study",
			"Core strengths", "Preferred roles", "Case competition types", "Preferred team size",
			"Team composition", "Availability", "Case competition experience"},
		{"3/14/2026 9:30:00", "Ada Lovelace", "ada@example.com"},
	}
	fromSheet, _, err := sheetsclient.ParseSubmissions(sheetRows, time.UTC)
	require.NoError(t, err)
	require.Len(t, fromSheet, 1)
	assert.Equal(t, fromSheet[0].ID, s.ID)
}

func TestResponseRows_EmailQuestion(t *testing.T) {
	form := questionnaireForm()
	form.Items = append(form.Items, questionItem("q12", "Email address"))

	rows := responseRows(form, []*forms.FormResponse{{RespondentEmail: "collected@example.com"}})

	assert.Len(t, rows[0], 13, "No extra column when the form asks for the email itself")
	assert.Equal(t, "Email address", rows[0][12])
}
