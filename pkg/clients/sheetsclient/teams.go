package sheetsclient

import (
	"fmt"
	"strings"
	"time"
)

// PublishedMember is one member of a published team
type PublishedMember struct {
	FullName    string
	Email       string
	Institution string
	StudyYear   string
}

// PublishedTeam represents a single team block in the published roster
type PublishedTeam struct {
	Name               string
	CompatibilityScore float64
	CommonCaseTypes    []string
	Members            []PublishedMember
}

// PublishedRoster represents the complete published roster for one match run
type PublishedRoster struct {
	RunID     string
	RoundDate string // Format: "2006-01-02", empty if the run had no scheduled round
	StartedAt time.Time
	Teams     []PublishedTeam
}

// PublishTeams publishes a roster to Google Sheets.
// The tab is named after the round (or the run start date) and is created if missing;
// an existing tab is overwritten so republishing a run is idempotent.
func (c *Client) PublishTeams(spreadsheetID string, roster *PublishedRoster) (string, error) {
	tabTitle := rosterTabTitle(roster)

	exists, err := c.SheetExists(spreadsheetID, tabTitle)
	if err != nil {
		return "", err
	}

	if !exists {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return "", fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.ReplaceValues(spreadsheetID, tabTitle, rosterValues(roster)); err != nil {
		return "", fmt.Errorf("failed to publish teams: %w", err)
	}

	return tabTitle, nil
}

// rosterTabTitle creates a tab title in the format "Teams Mon Mar 02 2026"
func rosterTabTitle(roster *PublishedRoster) string {
	if roundDate, err := time.Parse("2006-01-02", roster.RoundDate); err == nil {
		return "Teams " + roundDate.Format("Mon Jan 02 2006")
	}
	return "Teams " + roster.StartedAt.Format("Mon Jan 02 2006 15:04")
}

// rosterValues lays out one row per member, with the team columns filled on its first row
func rosterValues(roster *PublishedRoster) [][]interface{} {
	rows := [][]interface{}{
		{"Run", roster.RunID},
		{},
		{"Team", "Score", "Common case types", "Member", "Email", "Institution", "Year of study"},
	}

	for _, team := range roster.Teams {
		for i, member := range team.Members {
			row := []interface{}{"", "", ""}
			if i == 0 {
				row = []interface{}{
					team.Name,
					fmt.Sprintf("%.1f", team.CompatibilityScore),
					strings.Join(team.CommonCaseTypes, ", "),
				}
			}
			row = append(row, member.FullName, member.Email, member.Institution, member.StudyYear)
			rows = append(rows, row)
		}
	}

	return rows
}
