package auth

// Package auth contains domain-level types for the client session.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// The string form is the backend's wire value so it can be persisted as-is.
type Role string

const (
	RoleOrganizer   Role = "Organisateur"
	RoleParticipant Role = "Participant"
)

// ParseRole maps a wire role string onto the closed Role set.
// The English spelling of the organizer role is accepted as an alias.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "organisateur", "organizer":
		return RoleOrganizer, true
	case "participant":
		return RoleParticipant, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleOrganizer || r == RoleParticipant
}

// Credential is the persisted token/role/userId triple identifying the current session.
type Credential struct {
	Token  string
	Role   Role
	UserID string
}

// CredentialFragment is whatever subset of a Credential durable storage holds.
// Empty fields mean absent.
type CredentialFragment struct {
	Token  string
	Role   string
	UserID string
}

// HasToken reports whether a token was found in storage.
func (f CredentialFragment) HasToken() bool { return f.Token != "" }

// IsEmpty reports whether nothing at all was stored.
func (f CredentialFragment) IsEmpty() bool {
	return f.Token == "" && f.Role == "" && f.UserID == ""
}

// Claims is the structured content decoded from a credential's token.
// It is never trusted: the signature is not checked client-side.
type Claims struct {
	Role      string
	Subject   string
	ExpiresAt *time.Time
}

// Expired reports whether the claims carry an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

// Status is the session state: Anonymous or Authenticated with a role.
type Status struct {
	authenticated bool
	role          Role
}

// Anonymous returns the unauthenticated status.
func Anonymous() Status { return Status{} }

// Authenticated returns an authenticated status for role.
func Authenticated(role Role) Status {
	return Status{authenticated: true, role: role}
}

// IsAuthenticated reports whether the status carries a role.
func (s Status) IsAuthenticated() bool { return s.authenticated }

// Role returns the authenticated role, or "" when anonymous.
func (s Status) Role() Role { return s.role }

func (s Status) String() string {
	if !s.authenticated {
		return "anonymous"
	}
	return "authenticated(" + string(s.role) + ")"
}
