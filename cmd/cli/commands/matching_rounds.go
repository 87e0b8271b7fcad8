package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/core/services"
)

// MatchingRoundsCmd creates the matchingRounds command
func MatchingRoundsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "matchingRounds <count>",
		Short: "Show the next scheduled matching rounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}

			rounds, err := services.UpcomingMatchingRounds(app.Cfg, time.Now(), count)
			if err != nil {
				return err
			}

			fmt.Printf("\nUpcoming matching rounds (%s):\n", app.Cfg.MatchingRounds)
			for i, round := range rounds {
				fmt.Printf("  %2d. %s\n", i+1, round.Format("Mon 2006-01-02"))
			}
			if len(rounds) < count {
				fmt.Println("  (schedule ends)")
			}
			fmt.Println()

			return nil
		},
	}
}
