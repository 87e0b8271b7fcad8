package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/clients/sheetsclient"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// RosterPublisher writes a team roster to a spreadsheet
type RosterPublisher interface {
	PublishTeams(spreadsheetID string, roster *sheetsclient.PublishedRoster) (string, error)
}

// PublishTeamsResult describes a published roster
type PublishTeamsResult struct {
	Run       *db.MatchRun
	TabTitle  string
	TeamCount int
}

// PublishTeams publishes the teams of a match run to the teams spreadsheet.
// An empty runID publishes the most recent run.
func PublishTeams(
	ctx context.Context,
	database RosterStore,
	publisher RosterPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
) (*PublishTeamsResult, error) {
	run, err := findRun(ctx, database, runID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Publishing teams", zap.String("run_id", run.ID))

	teams, err := loadRoster(ctx, database, run.ID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("match run %s has no teams to publish", run.ID)
	}

	roster := &sheetsclient.PublishedRoster{
		RunID:     run.ID,
		RoundDate: run.RoundDate,
		StartedAt: run.StartedAt,
		Teams:     make([]sheetsclient.PublishedTeam, len(teams)),
	}
	for i, t := range teams {
		published := sheetsclient.PublishedTeam{
			Name:               t.Team.Name,
			CompatibilityScore: t.Team.CompatibilityScore,
			CommonCaseTypes:    t.Team.CommonCaseTypes,
			Members:            make([]sheetsclient.PublishedMember, len(t.Members)),
		}
		for j, member := range t.Members {
			published.Members[j] = sheetsclient.PublishedMember{
				FullName:    member.FullName,
				Email:       member.Email,
				Institution: member.Institution,
				StudyYear:   member.StudyYear,
			}
		}
		roster.Teams[i] = published
	}

	tabTitle, err := publisher.PublishTeams(cfg.TeamsSheetID, roster)
	if err != nil {
		return nil, fmt.Errorf("failed to publish teams: %w", err)
	}

	logger.Debug("Published teams", zap.String("tab", tabTitle), zap.Int("teams", len(teams)))

	return &PublishTeamsResult{
		Run:       run,
		TabTitle:  tabTitle,
		TeamCount: len(teams),
	}, nil
}
