package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beyondcareer/teammatch/cmd/cli/commands"
	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/auditlog"
	"github.com/beyondcareer/teammatch/pkg/postgres"
	"github.com/beyondcareer/teammatch/pkg/utils/logging"
)

var (
	env      string
	app      = &commands.AppContext{}
	database *postgres.DB
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	app.Ctx = ctx

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Team Match CLI - Form case competition teams",
		Long:  `A CLI tool for importing questionnaire responses, forming compatible case competition teams, and explaining who could not be matched.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if database != nil {
				database.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	for _, cmd := range []*cobra.Command{
		commands.ImportParticipantsCmd(app),
		commands.ListParticipantsCmd(app),
		commands.FormTeamsCmd(app),
		commands.ExplainUnmatchedCmd(app),
		commands.PublishTeamsCmd(app),
		commands.NotifyTeamsCmd(app),
		commands.MatchingRoundsCmd(app),
	} {
		rootCmd.AddCommand(commands.Audited(app, cmd))
	}
	rootCmd.AddCommand(commands.AuditLogCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, audit log and database. Google clients are created on first use.
func initApp() error {
	var err error
	app.Env = env

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Loading OAuth client configuration")
	app.OAuthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.Logger.Debug("OAuth configuration loaded successfully")

	app.Audit = auditlog.New(app.Cfg.Audit.Capacity, app.Cfg.Audit.Retention)

	app.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running database migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
