package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/core/matcher"
	"github.com/beyondcareer/teammatch/pkg/core/services"
)

// ExplainUnmatchedCmd creates the explainUnmatched command
func ExplainUnmatchedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "explainUnmatched [participant_id]",
		Short: "Explain who the next run would leave without a team, and why (nothing is saved)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var participantID string
			if len(args) > 0 {
				participantID = args[0]
			}

			result, err := services.ExplainUnmatched(app.Ctx, app.Database, app.Cfg, app.Logger, participantID)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d of %d waiting participants would be matched.\n\n", result.WouldMatch, result.PoolSize)

			if len(result.Records) == 0 {
				if participantID != "" {
					fmt.Printf("%s would be placed in a team.\n\n", participantID)
				} else {
					fmt.Println("Nobody would be left unmatched.")
				}
				return nil
			}

			printUnmatchedRecords(os.Stdout, result.Records)
			return nil
		},
	}
}

// printUnmatchedSummary prints one line per unmatched participant with their most severe reason
func printUnmatchedSummary(w io.Writer, records []matcher.UnmatchedRecord) {
	fmt.Fprintf(w, "Unmatched participants:\n")
	for _, record := range records {
		summary := "no reason recorded"
		if len(record.Reasons) > 0 {
			summary = record.Reasons[0].Title
		}
		fmt.Fprintf(w, "  ✗ %s (%s) [%s] %s\n",
			displayName(record.Participant),
			record.Participant.ID,
			record.HighestSeverity(),
			summary,
		)
	}
}

// printUnmatchedRecords prints the full diagnosis for each record
func printUnmatchedRecords(w io.Writer, records []matcher.UnmatchedRecord) {
	for _, record := range records {
		fmt.Fprintf(w, "%s (%s)\n", displayName(record.Participant), record.Participant.ID)

		for _, reason := range record.Reasons {
			fmt.Fprintf(w, "  [%s] %s: %s\n", reason.Severity, reason.Category, reason.Title)
			if reason.Description != "" {
				fmt.Fprintf(w, "      %s\n", reason.Description)
			}
			for _, detail := range reason.Details {
				fmt.Fprintf(w, "      • %s\n", detail)
			}
		}

		if len(record.PotentialMatches) > 0 {
			fmt.Fprintf(w, "  Closest matches:\n")
			for _, match := range record.PotentialMatches {
				line := fmt.Sprintf("    - %s (%.1f)", displayName(match.Participant), match.Score)
				if len(match.BlockingIssues) > 0 {
					line += ": " + strings.Join(match.BlockingIssues, "; ")
				}
				fmt.Fprintln(w, line)
			}
		}

		if len(record.Recommendations) > 0 {
			fmt.Fprintf(w, "  Recommendations:\n")
			for _, recommendation := range record.Recommendations {
				fmt.Fprintf(w, "    → %s\n", recommendation)
			}
		}
		fmt.Fprintln(w)
	}
}

func displayName(p *matcher.Participant) string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.ID
}
