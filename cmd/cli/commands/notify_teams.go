package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/auditlog"
	"github.com/beyondcareer/teammatch/pkg/core/services"
)

// NotifyTeamsCmd creates the notifyTeams command
func NotifyTeamsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifyTeams [run_id]",
		Short: "Email every team member their teammates' details (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}
			resend, _ := cmd.Flags().GetBool("resend")

			gmail, err := app.GmailClient()
			if err != nil {
				return err
			}

			result, err := services.NotifyTeams(app.Ctx, app.Database, gmail, app.Cfg, app.Logger, runID, resend)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Notification run complete for run %s\n\n", result.Run.ID)
			fmt.Printf("Teams notified:    %d\n", result.TeamsNotified)
			fmt.Printf("Emails sent:       %d\n", result.EmailsSent)
			if result.AlreadyNotified > 0 {
				fmt.Printf("Already notified:  %d (use --resend to email them again)\n", result.AlreadyNotified)
			}

			if len(result.Failures) > 0 {
				fmt.Printf("\n⚠️  %d failures (affected teams will be retried next time):\n", len(result.Failures))
				for _, failure := range result.Failures {
					fmt.Printf("  ✗ %s %s: %v\n", failure.TeamName, failure.Email, failure.Err)
					app.Audit.Record(auditlog.Event{
						Level:   auditlog.LevelWarn,
						Action:  "notifyTeams",
						Message: failure.Err.Error(),
						Fields:  map[string]string{"team": failure.TeamName, "email": failure.Email},
					})
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("resend", false, "Email teams that were already notified")

	return cmd
}
