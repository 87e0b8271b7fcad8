package sheetsclient

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/core/model"
)

// Expected column names in the questionnaire response sheet
var submissionFields = []string{
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

// Optional column holding a stable respondent ID. Without it IDs are derived from the email
// address, so a resubmission gets the same ID as the first submission.
const responseIDField = "Response ID"

// Layouts Google Forms writes timestamps in, depending on the sheet locale
var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var firstNumber = regexp.MustCompile(`\d+`)

// SkippedRow is a response row that could not be read
type SkippedRow struct {
	Row    int // 1-based sheet row
	Reason string
}

// ListSubmissions retrieves and parses questionnaire responses from the configured spreadsheet
func (c *Client) ListSubmissions(cfg *config.Config) ([]model.Submission, []SkippedRow, error) {
	values, err := c.GetValues(cfg.QuestionnaireSheetID, cfg.QuestionnaireTab)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get questionnaire responses: %w", err)
	}

	if len(values) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet is empty")
	}

	submissions, skipped, err := ParseSubmissions(values, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse questionnaire responses: %w", err)
	}

	return submissions, skipped, nil
}

// ParseSubmissions converts rows in the layout Google Forms writes to its linked sheet
// (a header row of question titles, then one row per response) into Submission structs.
// Timestamps without a zone are read in loc.
func ParseSubmissions(raw [][]interface{}, loc *time.Location) ([]model.Submission, []SkippedRow, error) {
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("no header row found")
	}

	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range append(submissionFields, responseIDField) {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && strings.EqualFold(strings.TrimSpace(cellStr), field) {
				index = i
				break
			}
		}
		if index == -1 {
			if field == responseIDField {
				continue
			}
			return nil, nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok || index >= len(row) {
			return ""
		}
		switch v := row[index].(type) {
		case string:
			return strings.TrimSpace(v)
		case nil:
			return ""
		default:
			return fmt.Sprint(v)
		}
	}

	submissions := make([]model.Submission, 0, len(raw)-1)
	var skipped []SkippedRow
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		timestamp := getField("Timestamp", row)
		// Skip empty rows (rows with no timestamp)
		if timestamp == "" {
			continue
		}

		submittedAt, err := parseTimestamp(timestamp, loc)
		if err != nil {
			skipped = append(skipped, SkippedRow{Row: i + 1, Reason: err.Error()})
			continue
		}

		email := getField("Email address", row)
		fullName := getField("Full name", row)
		id := getField(responseIDField, row)
		if id == "" {
			id = submissionID(email, fullName, submittedAt)
		}

		submissions = append(submissions, model.Submission{
			ID:             id,
			SubmittedAt:    submittedAt,
			FullName:       fullName,
			Email:          email,
			ContactNumber:  getField("Contact number", row),
			Institution:    getField("Institution", row),
			StudyYear:      getField("Year of study", row),
			CoreStrengths:  splitList(getField("Core strengths", row)),
			PreferredRoles: splitList(getField("Preferred roles", row)),
			CaseTypes:      splitList(getField("Case competition types", row)),
			TeamSize:       parseTeamSize(getField("Preferred team size", row)),
			Composition:    getField("Team composition", row),
			Availability:   getField("Availability", row),
			Experience:     getField("Case competition experience", row),
		})
	}

	return submissions, skipped, nil
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// submissionID derives a stable ID from the respondent's email, falling back to name and time
func submissionID(email, fullName string, submittedAt time.Time) string {
	key := "mailto:" + strings.ToLower(email)
	if email == "" {
		key = "response:" + strings.ToLower(fullName) + "@" + submittedAt.UTC().Format(time.RFC3339)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// splitList splits a checkbox answer ("Research, Modelling") into its options
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseTeamSize reads the first number in an answer such as "3 people", or 0 if there is none
func parseTeamSize(value string) int {
	match := firstNumber.FindString(value)
	if match == "" {
		return 0
	}
	size, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return size
}
