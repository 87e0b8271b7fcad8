package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/core/services"
)

// PublishTeamsCmd creates the publishTeams command
func PublishTeamsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishTeams [run_id]",
		Short: "Publish the teams of a match run to the teams sheet (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishTeams(app.Ctx, app.Database, sheets, app.Cfg, app.Logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published %d teams from run %s to tab %q\n\n", result.TeamCount, result.Run.ID, result.TabTitle)
			return nil
		},
	}
}
