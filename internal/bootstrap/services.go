package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sportsevents/eventdesk/config"
	"github.com/sportsevents/eventdesk/internal/adapters/authroles"
	"github.com/sportsevents/eventdesk/internal/adapters/jwtclaims"
	"github.com/sportsevents/eventdesk/internal/adapters/restapi"
	"github.com/sportsevents/eventdesk/internal/ports"
	"github.com/sportsevents/eventdesk/internal/routeguard"
	"github.com/sportsevents/eventdesk/internal/service"
)

// App holds the wired client-side services for one process.
type App struct {
	Client       *restapi.Client
	Session      *service.SessionContext
	Auth         *service.AuthService
	Events       *service.EventRepository
	Participants *service.ParticipantDirectory
	Navigator    *service.Navigator

	closers []func() error
}

// AppDeps groups dependencies for App construction.
type AppDeps struct {
	Config *config.AppConfig
	Store  ports.CredentialStore // Optional: overrides the configured backend
	Logger *slog.Logger
}

// BuildApp wires the API client, credential store and services, then restores
// any persisted session. A store that cannot be read leaves the session anonymous.
func BuildApp(ctx context.Context, deps AppDeps) (*App, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	client, err := restapi.NewClient(restapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	app := &App{Client: client}
	store := deps.Store
	if store == nil {
		handle, serr := BuildCredentialStore(ctx, StorageDeps{Config: cfg, Origin: client.Origin(), Logger: logger})
		if serr != nil {
			return nil, fmt.Errorf("open credential store: %w", serr)
		}
		store = handle.Store
		app.closers = append(app.closers, handle.Close)
	}

	roles := authroles.WireRoleMapper{}
	app.Session = service.NewSessionContext(service.SessionContextOptions{
		Store:   store,
		Decoder: jwtclaims.Decoder{},
		Policy:  service.SessionPolicy{Roles: roles, Logger: logger},
	})
	app.Auth = service.NewAuthService(service.AuthServiceOptions{API: client, Session: app.Session, Roles: roles})
	app.Events = service.NewEventRepository(service.EventRepositoryOptions{API: client, Session: app.Session, Logger: logger})

	app.Participants, err = service.NewParticipantDirectory(service.ParticipantDirectoryOptions{
		Users:  client,
		Events: app.Events,
		Filter: service.ParticipantFilter{Expr: cfg.Participants.Filter},
	})
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}
	app.Navigator = service.NewNavigator(app.Session, routeguard.DefaultTable())

	status, err := app.Session.Start(ctx)
	if err != nil {
		logger.WarnContext(ctx, "could not restore session", "error", err)
	}
	logger.DebugContext(ctx, "session started", "status", status.String())

	return app, nil
}

// Close stops the services and releases the credential backend. The stored
// credential is kept for the next process.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Events != nil {
		a.Events.Close()
	}
	if a.Session != nil {
		a.Session.Close()
	}
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
