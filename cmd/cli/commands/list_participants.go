package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/core/services"
)

// ListParticipantsCmd creates the listParticipants command
func ListParticipantsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listParticipants [status]",
		Short: "List participants, optionally only those with status pending_match or team_formed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var status string
			if len(args) > 0 {
				status = args[0]
			}

			participants, err := services.ListParticipants(app.Ctx, app.Database, app.Logger, status)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d participants:\n\n", len(participants))
			for _, p := range participants {
				fmt.Printf("- %s <%s> (%s) - %s, %s - size %d - %s\n",
					p.FullName,
					p.Email,
					p.ID,
					p.Institution,
					p.StudyYear,
					p.TeamSize,
					p.Status,
				)
				if len(p.CoreStrengths) > 0 {
					fmt.Printf("    strengths: %s\n", strings.Join(p.CoreStrengths, ", "))
				}
			}
			fmt.Println()

			return nil
		},
	}
}
