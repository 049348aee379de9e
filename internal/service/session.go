package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// SessionPolicy carries optional collaborators for SessionContext.
type SessionPolicy struct {
	Roles  ports.RoleMapper // Optional: defaults to domainauth.ParseRole
	Logger *slog.Logger     // Optional
	Now    func() time.Time // Optional: expiry clock
}

// SessionContextOptions groups dependencies for SessionContext.
type SessionContextOptions struct {
	Store   ports.CredentialStore // Required
	Decoder ports.SessionDecoder  // Required
	Policy  SessionPolicy
}

// SessionContext is the process-wide session state derived from the credential store.
// It is constructed once, started, passed to the components that need it, and closed.
type SessionContext struct {
	store   ports.CredentialStore
	decoder ports.SessionDecoder
	roles   ports.RoleMapper
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	status domainauth.Status
	cred   domainauth.Credential
	closed bool
}

var errSessionClosed = errors.New("session closed")

type parseRoleMapper struct{}

func (parseRoleMapper) Map(raw string) (domainauth.Role, bool) { return domainauth.ParseRole(raw) }

// NewSessionContext constructs an Anonymous SessionContext.
func NewSessionContext(opts SessionContextOptions) *SessionContext {
	if opts.Store == nil {
		panic("CredentialStore is required")
	}
	if opts.Decoder == nil {
		panic("SessionDecoder is required")
	}
	roles := opts.Policy.Roles
	if roles == nil {
		roles = parseRoleMapper{}
	}
	logger := opts.Policy.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Policy.Now
	if now == nil {
		now = time.Now
	}
	return &SessionContext{
		store:   opts.Store,
		decoder: opts.Decoder,
		roles:   roles,
		logger:  logger.With("component", "session"),
		now:     now,
		status:  domainauth.Anonymous(),
	}
}

// Start derives the status from the persisted credential.
// A credential that cannot be decoded, names an unknown role or has expired
// is cleared from the store and leaves the session Anonymous. The returned
// error reports storage failures only.
func (s *SessionContext) Start(ctx context.Context) (domainauth.Status, error) {
	frag, err := s.store.Load(ctx)
	if err != nil {
		s.setAnonymous()
		return domainauth.Anonymous(), apperrors.Wrap(err, apperrors.ErrCodeInternal, "load credential")
	}
	if frag.IsEmpty() {
		s.setAnonymous()
		return domainauth.Anonymous(), nil
	}

	cred, derr := s.derive(frag)
	if derr != nil {
		s.logger.WarnContext(ctx, "discarding stored credential", "error", derr)
		s.setAnonymous()
		if cerr := s.store.Clear(ctx); cerr != nil {
			return domainauth.Anonymous(), apperrors.Wrap(cerr, apperrors.ErrCodeInternal, "clear credential")
		}
		return domainauth.Anonymous(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domainauth.Anonymous(), errSessionClosed
	}
	s.cred = cred
	s.status = domainauth.Authenticated(cred.Role)
	s.logger.DebugContext(ctx, "session restored", "role", string(cred.Role), "user_id", cred.UserID)
	return s.status, nil
}

// derive turns a stored fragment into a credential, or a decode error.
func (s *SessionContext) derive(frag domainauth.CredentialFragment) (domainauth.Credential, error) {
	if !frag.HasToken() {
		return domainauth.Credential{}, apperrors.Decode("stored credential has no token", nil)
	}
	claims, err := s.decoder.Decode(frag.Token)
	if err != nil {
		return domainauth.Credential{}, err
	}
	if claims.Expired(s.now()) {
		return domainauth.Credential{}, apperrors.Decode("token expired", nil)
	}
	raw := claims.Role
	if raw == "" {
		raw = frag.Role
	}
	role, ok := s.roles.Map(raw)
	if !ok {
		return domainauth.Credential{}, apperrors.Decode(fmt.Sprintf("unknown role %q", raw), nil)
	}
	userID := frag.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return domainauth.Credential{Token: frag.Token, Role: role, UserID: userID}, nil
}

// Establish persists cred and marks the session Authenticated(cred.Role)
// without decoding the token. If persisting fails the status is unchanged.
func (s *SessionContext) Establish(ctx context.Context, cred domainauth.Credential) error {
	if cred.Token == "" {
		return apperrors.ValidationField("token", "token is required")
	}
	if !cred.Role.Valid() {
		return apperrors.ValidationField("role", fmt.Sprintf("unknown role %q", cred.Role))
	}
	if s.isClosed() {
		return errSessionClosed
	}
	if err := s.store.Save(ctx, cred); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "save credential")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.status = domainauth.Authenticated(cred.Role)
	s.logger.InfoContext(ctx, "session established", "role", string(cred.Role), "user_id", cred.UserID)
	return nil
}

// Clear ends the session. The status is Anonymous even when the store fails.
// Calling it repeatedly is safe.
func (s *SessionContext) Clear(ctx context.Context) error {
	s.setAnonymous()
	if err := s.store.Clear(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear credential")
	}
	return nil
}

// Status returns the current session status.
func (s *SessionContext) Status() domainauth.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Credential returns the active credential, if any.
func (s *SessionContext) Credential() (domainauth.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.status.IsAuthenticated() {
		return domainauth.Credential{}, false
	}
	return s.cred, true
}

// Token returns the active token or "".
func (s *SessionContext) Token() string {
	c, _ := s.Credential()
	return c.Token
}

// UserID returns the active user id or "".
func (s *SessionContext) UserID() string {
	c, _ := s.Credential()
	return c.UserID
}

// Close drops in-memory state. The persisted credential is left alone.
func (s *SessionContext) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cred = domainauth.Credential{}
	s.status = domainauth.Anonymous()
}

func (s *SessionContext) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = domainauth.Credential{}
	s.status = domainauth.Anonymous()
}

func (s *SessionContext) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
