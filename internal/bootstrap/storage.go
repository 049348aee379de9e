package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sportsevents/eventdesk/config"
	redisstore "github.com/sportsevents/eventdesk/internal/adapters/redis"
	"github.com/sportsevents/eventdesk/internal/adapters/sqlitestore"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// StorageDeps groups dependencies for credential store construction.
type StorageDeps struct {
	Config *config.AppConfig
	Origin string // scheme://host the credential belongs to
	Logger *slog.Logger
}

// CredentialStoreHandle is a credential store plus the function releasing its backend.
type CredentialStoreHandle struct {
	Store ports.CredentialStore
	Close func() error
}

// BuildCredentialStore opens the configured credential backend.
func BuildCredentialStore(ctx context.Context, deps StorageDeps) (CredentialStoreHandle, error) {
	if deps.Config == nil {
		return CredentialStoreHandle{}, errors.New("config is required")
	}
	if deps.Origin == "" {
		return CredentialStoreHandle{}, errors.New("origin is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch deps.Config.Storage.Backend {
	case config.StorageRedis:
		client, err := ConnectRedis(RedisConnConfig{Context: ctx, Redis: deps.Config.Redis, Logger: logger})
		if err != nil {
			return CredentialStoreHandle{}, fmt.Errorf("connect redis: %w", err)
		}
		store := redisstore.NewCredentialStoreWithPrefix(client, deps.Config.Storage.RedisKeyPrefix, deps.Origin)
		return CredentialStoreHandle{Store: store, Close: client.Close}, nil

	case config.StorageSQLite, "":
		path := deps.Config.Storage.SQLitePath
		if path == "" {
			path = config.DefaultSQLitePath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return CredentialStoreHandle{}, fmt.Errorf("create storage dir: %w", err)
		}
		store, err := sqlitestore.Open(path, deps.Origin)
		if err != nil {
			return CredentialStoreHandle{}, err
		}
		logger.DebugContext(ctx, "credential store opened", "backend", "sqlite", "path", path)
		return CredentialStoreHandle{Store: store, Close: store.Close}, nil

	default:
		return CredentialStoreHandle{}, fmt.Errorf("unsupported storage backend %q", deps.Config.Storage.Backend)
	}
}
