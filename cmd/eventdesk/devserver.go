package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sportsevents/eventdesk/internal/bootstrap"
)

func newDevServerCommand(env *commandEnv) *cobra.Command {
	var addr string
	var noSeed bool
	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run an in-memory API for local development",
		Long: `Run an in-memory implementation of the event API.

Demo accounts (password "password123"):
  olive@example.com, oscar@example.com   organizers
  pat@example.com, sam@example.com, alex@example.com   participants

State is lost when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.DevAPI.Addr = addr
			}
			if noSeed {
				cfg.DevAPI.Seed = false
			}
			logger := bootstrap.InitLogger(&cfg)

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := bootstrap.StartDevAPIServer(ctx, bootstrap.DevAPIServerConfig{Config: &cfg, Logger: logger})
			if err != nil {
				return err
			}
			if err := writef(cmd.OutOrStdout(), "Dev API listening on %s\n", srv.URL); err != nil {
				return err
			}

			<-ctx.Done()
			return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
				Context: context.WithoutCancel(parent),
				Server:  srv.Server,
				Logger:  logger,
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: DEV_API_ADDR)")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "start without demo data")
	return cmd
}
