package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/core/services"
)

// ImportParticipantsCmd creates the importParticipants command
func ImportParticipantsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importParticipants",
		Short: "Import new questionnaire responses as participants waiting for a team",
		Long: `Import new questionnaire responses as participants waiting for a team.

Responses are read from the form's linked response sheet. Pass --from-form to read
them from the form itself (requires questionnaireFormID in the config).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromForm, err := cmd.Flags().GetBool("from-form")
			if err != nil {
				return fmt.Errorf("failed to get from-form flag: %w", err)
			}

			var source services.SubmissionSource
			if fromForm {
				source, err = app.FormsClient()
			} else {
				source, err = app.SheetsClient()
			}
			if err != nil {
				return err
			}

			result, err := services.ImportParticipants(app.Ctx, app.Database, source, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Import complete!\n\n")
			fmt.Printf("Responses read:    %d\n", result.Fetched)
			fmt.Printf("New participants:  %d\n", result.Inserted)
			fmt.Printf("Already imported:  %d\n", result.AlreadyImported)

			if len(result.Skipped) > 0 {
				fmt.Printf("\n⚠️  Skipped %d rows:\n", len(result.Skipped))
				for _, row := range result.Skipped {
					fmt.Printf("  ✗ row %d: %s\n", row.Row, row.Reason)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("from-form", false, "Read responses from the Google Form instead of its response sheet")

	return cmd
}
