package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/beyondcareer/teammatch/pkg/auditlog"
)

// AuditLogCmd creates the auditLog command
func AuditLogCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "auditLog",
		Short: "Show commands run in this session and their outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printAuditEvents(os.Stdout, app.Audit.Recent(time.Now()))
			return nil
		},
	}
}

func printAuditEvents(w io.Writer, events []auditlog.Event) {
	if len(events) == 0 {
		fmt.Fprintf(w, "\nNo activity recorded.\n\n")
		return
	}

	fmt.Fprintf(w, "\n%d events:\n\n", len(events))
	for _, event := range events {
		line := fmt.Sprintf("%s %-5s %-18s %s",
			event.Time.Format("15:04:05"),
			strings.ToUpper(string(event.Level)),
			event.Action,
			event.Message,
		)

		keys := make([]string, 0, len(event.Fields))
		for key := range event.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			line += fmt.Sprintf(" %s=%s", key, event.Fields[key])
		}

		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}
