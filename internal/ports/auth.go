package ports

// Package ports defines interfaces (hexagonal ports) for session and API behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
)

// CredentialStore persists the session credential in durable client storage.
// Load represents absence with empty fields; it only errors on backend failure.
type CredentialStore interface {
	Save(ctx context.Context, cred domainauth.Credential) error
	Load(ctx context.Context) (domainauth.CredentialFragment, error)
	Clear(ctx context.Context) error
}

// SessionDecoder parses a bearer token into claims without verifying it.
type SessionDecoder interface {
	Decode(token string) (domainauth.Claims, error)
}

// RoleMapper maps a wire role string onto the application's closed role set.
type RoleMapper interface {
	Map(raw string) (domainauth.Role, bool)
}

// AuthAPI is the unauthenticated part of the remote API.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
}
