package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/auditlog"
	"github.com/beyondcareer/teammatch/pkg/core/services"
)

// FormTeamsCmd creates the formTeams command
func FormTeamsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formTeams",
		Short: "Match everyone waiting for a team and save the teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			verbose, _ := cmd.Flags().GetBool("verbose")

			result, err := services.FormTeams(app.Ctx, app.Database, app.Cfg, app.Logger, dryRun)
			if err != nil {
				return err
			}

			printFormTeamsResult(os.Stdout, result, verbose)

			for _, conflict := range result.Conflicts {
				app.Audit.Record(auditlog.Event{
					Level:   auditlog.LevelWarn,
					Action:  "formTeams",
					Message: "team skipped, member already placed",
					Fields:  map[string]string{"members": strings.Join(conflict.MemberIDs, ",")},
				})
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run matching without saving teams")
	cmd.Flags().BoolP("verbose", "v", false, "Explain every unmatched participant")

	return cmd
}

func printFormTeamsResult(w io.Writer, result *services.FormTeamsResult, verbose bool) {
	if result.DryRun {
		fmt.Fprintf(w, "\n✓ Dry run complete (nothing saved)\n\n")
	} else {
		fmt.Fprintf(w, "\n✓ Teams formed!\n\n")
		fmt.Fprintf(w, "Run ID:     %s\n", result.Run.ID)
		if result.Run.RoundDate != "" {
			fmt.Fprintf(w, "Round:      %s\n", result.Run.RoundDate)
		}
	}

	fmt.Fprintf(w, "Pool:       %d participants\n", result.PoolSize)
	fmt.Fprintf(w, "Teams:      %d\n", len(result.Teams))
	fmt.Fprintf(w, "Unmatched:  %d\n", len(result.Unmatched))
	fmt.Fprintf(w, "Passes:     %d\n\n", result.Iterations)

	for _, team := range result.Teams {
		fmt.Fprintf(w, "%s (score %.1f, %s phase)\n", team.Team.Name, team.Team.CompatibilityScore, team.Team.Phase)
		for _, member := range team.Members {
			fmt.Fprintf(w, "  - %s <%s> %s\n", member.FullName, member.Email, member.Institution)
		}
		if len(team.Team.CommonCaseTypes) > 0 {
			fmt.Fprintf(w, "  shared case types: %s\n", strings.Join(team.Team.CommonCaseTypes, ", "))
		}
	}

	if len(result.Conflicts) > 0 {
		fmt.Fprintf(w, "\n⚠️  %d teams were not saved because a member was placed by another run:\n", len(result.Conflicts))
		for _, conflict := range result.Conflicts {
			fmt.Fprintf(w, "  ✗ %s: %v\n", strings.Join(conflict.MemberIDs, ", "), conflict.Err)
		}
	}

	if len(result.Unmatched) > 0 {
		fmt.Fprintln(w)
		if verbose {
			printUnmatchedRecords(w, result.Unmatched)
		} else {
			printUnmatchedSummary(w, result.Unmatched)
			fmt.Fprintln(w, "Run explainUnmatched (or formTeams --verbose) for details.")
		}
	}
	fmt.Fprintln(w)
}
