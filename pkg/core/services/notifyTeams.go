package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/db"
)

const defaultNotifyConcurrency = 3

// EmailSender sends a single plain text email
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NotifyTeamsStore defines the database operations needed for notifying teams
type NotifyTeamsStore interface {
	RosterStore
	SetTeamNotified(ctx context.Context, teamID string, datetime time.Time) error
}

// NotifyFailure records one email (or bookkeeping step) that did not succeed
type NotifyFailure struct {
	TeamName string
	Email    string
	Err      error
}

// NotifyTeamsResult summarises a notification run
type NotifyTeamsResult struct {
	Run             *db.MatchRun
	TeamsNotified   int
	EmailsSent      int
	AlreadyNotified int
	Failures        []NotifyFailure
}

// NotifyTeams emails every member of every team in a match run with the details of their
// teammates. An empty runID notifies the most recent run.
//
// Teams are handled concurrently. A failed email never stops the run: it is reported in
// the result, and the team is left unmarked so a later call retries it. Teams already
// notified are skipped unless resend is set.
func NotifyTeams(
	ctx context.Context,
	database NotifyTeamsStore,
	sender EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
	resend bool,
) (*NotifyTeamsResult, error) {
	run, err := findRun(ctx, database, runID)
	if err != nil {
		return nil, err
	}

	teams, err := loadRoster(ctx, database, run.ID)
	if err != nil {
		return nil, err
	}

	result := &NotifyTeamsResult{Run: run}

	var pending []rosterTeam
	for _, t := range teams {
		if t.Team.NotifiedDatetime != nil && !resend {
			result.AlreadyNotified++
			continue
		}
		pending = append(pending, t)
	}

	logger.Debug("Notifying teams",
		zap.String("run_id", run.ID),
		zap.Int("pending", len(pending)),
		zap.Int("already_notified", result.AlreadyNotified))

	concurrency := cfg.NotifyConcurrency
	if concurrency <= 0 {
		concurrency = defaultNotifyConcurrency
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, t := range pending {
		g.Go(func() error {
			sent, failures := notifyTeam(gctx, database, sender, t)

			mu.Lock()
			defer mu.Unlock()
			result.EmailsSent += sent
			result.Failures = append(result.Failures, failures...)
			if len(failures) == 0 {
				result.TeamsNotified++
			}

			for _, failure := range failures {
				logger.Info("Failed to notify team member",
					zap.String("team", failure.TeamName),
					zap.String("email", failure.Email),
					zap.Error(failure.Err))
			}
			return nil
		})
	}

	// Workers never return errors; failures are collected in the result
	_ = g.Wait()

	logger.Debug("Notification complete",
		zap.Int("teams_notified", result.TeamsNotified),
		zap.Int("emails_sent", result.EmailsSent),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

// notifyTeam emails each member of a team and marks the team notified if every email was sent
func notifyTeam(ctx context.Context, database NotifyTeamsStore, sender EmailSender, t rosterTeam) (int, []NotifyFailure) {
	sent := 0
	var failures []NotifyFailure

	for _, member := range t.Members {
		if member.Email == "" {
			failures = append(failures, NotifyFailure{
				TeamName: t.Team.Name,
				Err:      fmt.Errorf("participant %s has no email address", member.ID),
			})
			continue
		}

		subject, body := teamEmail(t, member)
		if err := sender.SendEmail(ctx, member.Email, subject, body); err != nil {
			failures = append(failures, NotifyFailure{TeamName: t.Team.Name, Email: member.Email, Err: err})
			continue
		}
		sent++
	}

	if len(failures) > 0 {
		return sent, failures
	}

	if err := database.SetTeamNotified(ctx, t.Team.ID, time.Now()); err != nil {
		failures = append(failures, NotifyFailure{
			TeamName: t.Team.Name,
			Err:      fmt.Errorf("failed to mark team notified: %w", err),
		})
	}
	return sent, failures
}

// teamEmail builds the email sent to one member of a team
func teamEmail(t rosterTeam, recipient db.Participant) (string, string) {
	subject := fmt.Sprintf("You have a case competition team: %s", t.Team.Name)

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", firstName(recipient.FullName))
	fmt.Fprintf(&body, "You have been matched into %s (compatibility %.0f/100).\n\n", t.Team.Name, t.Team.CompatibilityScore)

	body.WriteString("Your teammates:\n")
	for _, member := range t.Members {
		if member.ID == recipient.ID {
			continue
		}
		fmt.Fprintf(&body, "- %s <%s>", member.FullName, member.Email)
		if member.Institution != "" {
			fmt.Fprintf(&body, ", %s", member.Institution)
		}
		body.WriteString("\n")
	}

	if len(t.Team.CommonCaseTypes) > 0 {
		fmt.Fprintf(&body, "\nYou all listed: %s.\n", strings.Join(t.Team.CommonCaseTypes, ", "))
	}

	body.WriteString("\nPlease reach out to each other to get started. Good luck!\n")
	return subject, body.String()
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
