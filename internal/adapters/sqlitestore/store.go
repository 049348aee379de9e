// Package sqlitestore provides durable per-origin client storage backed by SQLite.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
)

// Keys mirror the browser client's localStorage entries.
const (
	keyToken  = "authToken"
	keyRole   = "userRole"
	keyUserID = "userId"
)

const schema = `CREATE TABLE IF NOT EXISTS local_storage (
	origin     TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (unixepoch()),
	PRIMARY KEY (origin, key)
)`

// Store keeps credential fields for one API origin in a local SQLite file.
type Store struct {
	sqlDB  *sql.DB
	origin string
}

// Open opens (creating if needed) the SQLite file at path, scoped to origin.
func Open(path, origin string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, errors.New("storage origin is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create local_storage table: %w", err)
	}

	return &Store{sqlDB: sqlDB, origin: origin}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save replaces the stored credential for the origin in one transaction.
func (s *Store) Save(ctx context.Context, cred domainauth.Credential) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	if cred.Token == "" {
		return errors.New("credential token cannot be empty")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save credential: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM local_storage WHERE origin = ?`, s.origin); err != nil {
		return fmt.Errorf("reset credential: %w", err)
	}

	fields := [][2]string{
		{keyToken, cred.Token},
		{keyRole, string(cred.Role)},
		{keyUserID, cred.UserID},
	}
	for _, f := range fields {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO local_storage (origin, key, value) VALUES (?, ?, ?)`,
			s.origin, f[0], f[1],
		); err != nil {
			return fmt.Errorf("save %s: %w", f[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save credential: %w", err)
	}
	return nil
}

// Load returns whichever credential fields are present for the origin.
func (s *Store) Load(ctx context.Context) (domainauth.CredentialFragment, error) {
	if s == nil || s.sqlDB == nil {
		return domainauth.CredentialFragment{}, errors.New("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT key, value FROM local_storage WHERE origin = ?`, s.origin)
	if err != nil {
		return domainauth.CredentialFragment{}, fmt.Errorf("load credential: %w", err)
	}
	defer rows.Close()

	var frag domainauth.CredentialFragment
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domainauth.CredentialFragment{}, fmt.Errorf("scan credential: %w", err)
		}
		switch key {
		case keyToken:
			frag.Token = value
		case keyRole:
			frag.Role = value
		case keyUserID:
			frag.UserID = value
		}
	}
	if err := rows.Err(); err != nil {
		return domainauth.CredentialFragment{}, fmt.Errorf("iterate credential: %w", err)
	}
	return frag, nil
}

// Clear removes every stored field for the origin. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM local_storage WHERE origin = ?`, s.origin); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
