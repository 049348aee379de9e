package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StorageBackend selects where the session credential is persisted.
type StorageBackend string

const (
	// StorageSQLite keeps the credential in a local SQLite file.
	StorageSQLite StorageBackend = "sqlite"
	// StorageRedis keeps the credential in a Redis hash.
	StorageRedis StorageBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "sqlite", "redis":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: sqlite, redis)", v)
	}
}

// StorageConfig contains credential storage configuration.
type StorageConfig struct {
	Backend StorageBackend `env:"STORAGE_BACKEND" envDefault:"sqlite"`

	// SQLitePath is the database file. Empty means the user config directory.
	SQLitePath string `env:"STORAGE_SQLITE_PATH"`

	// RedisKeyPrefix namespaces credential hashes.
	RedisKeyPrefix string `env:"STORAGE_REDIS_KEY_PREFIX" envDefault:"credential:"`
}

// Sanitize fills the default SQLite location.
func (s *StorageConfig) Sanitize() {
	s.SQLitePath = strings.TrimSpace(s.SQLitePath)
	if s.SQLitePath == "" {
		s.SQLitePath = DefaultSQLitePath()
	}
	if s.RedisKeyPrefix == "" {
		s.RedisKeyPrefix = "credential:"
	}
}

// DefaultSQLitePath returns <user config dir>/eventdesk/credentials.db,
// falling back to the working directory.
func DefaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "eventdesk.db"
	}
	return filepath.Join(dir, "eventdesk", "credentials.db")
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
