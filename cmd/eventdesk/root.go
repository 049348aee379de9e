package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sportsevents/eventdesk/config"
	"github.com/sportsevents/eventdesk/internal/bootstrap"
)

// commandEnv carries the process-level hooks every command uses.
type commandEnv struct {
	loadConfig func() (config.AppConfig, error)

	// Global flags
	apiURL   string
	logLevel string
	format   string
}

// commandContext is what a command body sees once the app is wired.
type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	App    *bootstrap.App
	Out    io.Writer
	Format string
}

func newCommandEnv() *commandEnv {
	return &commandEnv{loadConfig: bootstrap.LoadConfig}
}

func newRootCommand(env *commandEnv) *cobra.Command {
	root := &cobra.Command{
		Use:   "eventdesk",
		Short: "eventdesk - sports event organizer and participant client",
		Long: `eventdesk signs in to the sports event platform and manages events.

Organizers create, edit and delete events and choose their participants.
Participants list the events they are registered in.

The session is persisted between invocations; run "eventdesk logout" to end it.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&env.apiURL, "api", "", "API base URL (default: EVENTDESK_API_BASE_URL)")
	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&env.format, "format", "table", "output format (table, json)")

	root.AddCommand(
		newLoginCommand(env),
		newRegisterCommand(env),
		newLogoutCommand(env),
		newWhoamiCommand(env),
		newEventsCommand(env),
		newParticipantsCommand(env),
		newNavigateCommand(env),
		newDevServerCommand(env),
	)
	return root
}

// config loads configuration and applies global flag overrides.
func (e *commandEnv) config() (config.AppConfig, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return cfg, err
	}
	if e.apiURL != "" {
		cfg.API.BaseURL = e.apiURL
	}
	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
	}
	cfg.Sanitize()
	return cfg, nil
}

// withApp wires the application for one command invocation and closes it afterwards.
func (e *commandEnv) withApp(cmd *cobra.Command, run func(c *commandContext) error) error {
	if e.format != "table" && e.format != "json" {
		return fmt.Errorf("unknown output format %q (valid options: table, json)", e.format)
	}
	cfg, err := e.config()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(&cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := bootstrap.BuildApp(ctx, bootstrap.AppDeps{Config: &cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			logger.WarnContext(ctx, "close app", "error", cerr)
		}
	}()

	return run(&commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		App:    app,
		Out:    cmd.OutOrStdout(),
		Format: e.format,
	})
}
