package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sportsevents/eventdesk/config"
	"github.com/sportsevents/eventdesk/internal/adapters/devapi"
	"github.com/sportsevents/eventdesk/internal/adapters/restapi"
	"github.com/sportsevents/eventdesk/internal/devseed"
	httpx "github.com/sportsevents/eventdesk/internal/http"
)

// DevAPIServerConfig contains configuration for the local API server.
type DevAPIServerConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// DevAPIServer is a running dev API.
type DevAPIServer struct {
	API    *devapi.Server
	Server *http.Server
	URL    string // http://host:port the server listens on
}

// StartDevAPIServer builds the in-memory API, binds its listener and serves in
// the background. When seeding is enabled the demo events are created through
// the API itself once the listener is up.
func StartDevAPIServer(ctx context.Context, cfg DevAPIServerConfig) (*DevAPIServer, error) {
	if cfg.Config == nil {
		return nil, errors.New("config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	devCfg := cfg.Config.DevAPI

	apiCfg := devapi.Config{Secret: devCfg.Secret, TokenTTL: devCfg.TokenTTL, Logger: logger}
	if devCfg.Seed {
		apiCfg.Users = devseed.Users()
	}
	api, err := devapi.NewServer(apiCfg)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", devCfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", devCfg.Addr, err)
	}
	server := startServer(logger, buildHTTPHandler(logger, api), ln)
	running := &DevAPIServer{API: api, Server: server, URL: "http://" + ln.Addr().String()}

	if devCfg.Seed {
		if serr := seedDevAPI(ctx, running.URL, logger); serr != nil {
			logger.WarnContext(ctx, "dev api seeding incomplete", "error", serr)
		}
	}
	return running, nil
}

func seedDevAPI(ctx context.Context, baseURL string, logger *slog.Logger) error {
	client, err := restapi.NewClient(restapi.Config{BaseURL: baseURL, Timeout: 5 * time.Second, Logger: logger})
	if err != nil {
		return err
	}
	return devseed.Run(ctx, client, logger)
}

// buildHTTPHandler applies middleware. Order: Recover -> Logging -> API.
func buildHTTPHandler(logger *slog.Logger, api http.Handler) http.Handler {
	return httpx.Chain(api, httpx.Recover(logger), httpx.Logging(logger))
}

func startServer(logger *slog.Logger, handler http.Handler, ln net.Listener) *http.Server {
	server := &http.Server{
		Addr:         ln.Addr().String(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting dev API server", "addr", server.Addr)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("dev API server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down dev API server")
	}

	shutdownCtx, cancel := context.WithTimeout(parent, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("dev API server stopped")
	}

	return nil
}
