package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/auditlog"
	"github.com/beyondcareer/teammatch/pkg/clients/formsclient"
	"github.com/beyondcareer/teammatch/pkg/clients/gmailclient"
	"github.com/beyondcareer/teammatch/pkg/clients/sheetsclient"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	OAuthCfg *config.OAuthClientConfig
	Database db.Database
	Logger   *zap.Logger
	Audit    *auditlog.Log
	Ctx      context.Context

	// Google clients are created on first use so commands that only touch the
	// database never start the OAuth flow
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
	formsClient  *formsclient.Client
}

// SheetsClient returns the Sheets client, authenticating on first use
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, app.OAuthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}

// GmailClient returns the Gmail client. It shares the Sheets client's OAuth token.
func (app *AppContext) GmailClient() (*gmailclient.Client, error) {
	if app.gmailClient != nil {
		return app.gmailClient, nil
	}

	sheets, err := app.SheetsClient()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(app.Ctx, app.OAuthCfg, sheets.Token(), app.Cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.Logger.Debug("Gmail client initialized successfully")

	app.gmailClient = client
	return client, nil
}

// FormsClient returns the Forms client. It shares the Sheets client's OAuth token.
func (app *AppContext) FormsClient() (*formsclient.Client, error) {
	if app.formsClient != nil {
		return app.formsClient, nil
	}

	sheets, err := app.SheetsClient()
	if err != nil {
		return nil, err
	}

	client, err := formsclient.NewClient(app.Ctx, app.OAuthCfg, sheets.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create forms client: %w", err)
	}

	app.formsClient = client
	return client, nil
}

// Audited wraps a command so each run is recorded in the audit log with its outcome
func Audited(app *AppContext, cmd *cobra.Command) *cobra.Command {
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		err := run(cmd, args)

		event := auditlog.Event{
			Time:    started,
			Level:   auditlog.LevelInfo,
			Action:  cmd.Name(),
			Message: "ok",
			Fields:  map[string]string{"duration": time.Since(started).Round(time.Millisecond).String()},
		}
		if len(args) > 0 {
			event.Fields["args"] = fmt.Sprint(args)
		}
		if err != nil {
			event.Level = auditlog.LevelError
			event.Message = err.Error()
		}
		app.Audit.Record(event)

		return err
	}
	return cmd
}
