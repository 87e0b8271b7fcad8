package formsclient

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/forms/v1"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/clients/sheetsclient"
	"github.com/beyondcareer/teammatch/pkg/core/model"
)

// Column titles Forms adds ahead of the questions in a linked sheet
const (
	timestampTitle = "Timestamp"
	emailTitle     = "Email address"
)

// ListSubmissions reads questionnaire responses straight from the configured form.
// Responses are laid out as the form's linked sheet would show them and parsed the same way,
// so both sources produce identical submissions and IDs.
func (c *Client) ListSubmissions(cfg *config.Config) ([]model.Submission, []sheetsclient.SkippedRow, error) {
	if cfg.QuestionnaireFormID == "" {
		return nil, nil, fmt.Errorf("questionnaireFormID is not configured")
	}

	form, err := c.service.Forms.Get(cfg.QuestionnaireFormID).Context(c.ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get form: %w", err)
	}

	var responses []*forms.FormResponse
	pageToken := ""
	for {
		call := c.service.Forms.Responses.List(cfg.QuestionnaireFormID).Context(c.ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list form responses: %w", err)
		}
		responses = append(responses, page.Responses...)

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	submissions, skipped, err := sheetsclient.ParseSubmissions(responseRows(form, responses), time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse form responses: %w", err)
	}

	return submissions, skipped, nil
}

// question is one answerable item of a form
type question struct {
	id    string
	title string
}

// formQuestions returns the form's questions in display order.
// Section headers, images and other non-question items are skipped.
func formQuestions(form *forms.Form) []question {
	var questions []question
	for _, item := range form.Items {
		if item.QuestionItem == nil || item.QuestionItem.Question == nil {
			continue
		}
		questions = append(questions, question{
			id:    item.QuestionItem.Question.QuestionId,
			title: strings.TrimSpace(item.Title),
		})
	}
	return questions
}

// responseRows renders responses as linked-sheet rows: a header row, then one row per response.
// Checkbox answers are joined with ", " as the sheet does.
func responseRows(form *forms.Form, responses []*forms.FormResponse) [][]interface{} {
	questions := formQuestions(form)

	// Forms collecting emails put the respondent's address in its own column
	collectsEmail := false
	for _, r := range responses {
		if r.RespondentEmail != "" {
			collectsEmail = true
			break
		}
	}
	for _, q := range questions {
		if strings.EqualFold(q.title, emailTitle) {
			collectsEmail = false
		}
	}

	header := []interface{}{timestampTitle}
	if collectsEmail {
		header = append(header, emailTitle)
	}
	for _, q := range questions {
		header = append(header, q.title)
	}

	rows := [][]interface{}{header}
	for _, r := range responses {
		submitted := r.LastSubmittedTime
		if submitted == "" {
			submitted = r.CreateTime
		}

		row := []interface{}{submitted}
		if collectsEmail {
			row = append(row, r.RespondentEmail)
		}
		for _, q := range questions {
			row = append(row, answerText(r.Answers, q.id))
		}
		rows = append(rows, row)
	}
	return rows
}

func answerText(answers map[string]forms.Answer, questionID string) string {
	answer, ok := answers[questionID]
	if !ok || answer.TextAnswers == nil {
		return ""
	}

	values := make([]string, 0, len(answer.TextAnswers.Answers))
	for _, text := range answer.TextAnswers.Answers {
		values = append(values, text.Value)
	}
	return strings.Join(values, ", ")
}
