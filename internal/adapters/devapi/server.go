// Package devapi provides an in-memory stand-in for the event platform's REST API.
//
// It implements the same endpoints, header contract and error bodies as the
// paired backend so the client can be developed and tested without one.
// Passwords are compared in plain text; this is not an authentication server.
package devapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
)

// SeedUser is an account present when the server starts.
type SeedUser struct {
	ID       string
	FullName string
	Email    string
	Password string
	Role     domainauth.Role
}

// Config controls the dev API behavior.
type Config struct {
	Secret   string
	TokenTTL time.Duration // default 1h when zero
	Users    []SeedUser
	Logger   *slog.Logger
	Now      func() time.Time
}

// Fault is a one-shot injected failure for the next matching request.
type Fault struct {
	Method  string
	Path    string
	Status  int
	Message string
}

type userRecord struct {
	model.User
	password string
}

type eventRecord struct {
	event       model.Event
	organizerID string
}

// Server is an http.Handler serving the API from memory. Safe for concurrent use.
type Server struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
	mux    *http.ServeMux

	mu     sync.Mutex
	users  map[string]*userRecord
	events map[string]*eventRecord
	order  []string
	faults []Fault
}

// NewServer builds a dev API server from cfg.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Secret == "" {
		return nil, errors.New("dev api: Secret is required")
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    now,
		logger: logger,
		users:  make(map[string]*userRecord),
		events: make(map[string]*eventRecord),
	}
	for _, u := range cfg.Users {
		if _, err := s.addUser(u); err != nil {
			return nil, err
		}
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.Handle("GET /api/auth/users", s.requireToken(s.handleListUsers))
	mux.Handle("GET /api/events", s.requireToken(s.handleListEvents))
	mux.Handle("POST /api/events", s.requireToken(s.handleCreateEvent))
	mux.Handle("GET /api/events/participant", s.requireToken(s.handleParticipantEvents))
	mux.Handle("GET /api/events/{id}", s.requireToken(s.handleGetEvent))
	mux.Handle("PUT /api/events/{id}", s.requireToken(s.handleUpdateEvent))
	mux.Handle("DELETE /api/events/{id}", s.requireToken(s.handleDeleteEvent))
	s.mux = mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f, ok := s.takeFault(r); ok {
		s.logger.Debug("devapi injected fault",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", f.Status))
		writeMessage(w, f.Status, f.Message)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// InjectFault makes the next request matching f.Method and f.Path fail with f.Status.
func (s *Server) InjectFault(f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, f)
}

func (s *Server) takeFault(r *http.Request) (Fault, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.faults {
		if f.Method == r.Method && f.Path == r.URL.Path {
			s.faults = append(s.faults[:i], s.faults[i+1:]...)
			return f, true
		}
	}
	return Fault{}, false
}

// RemoveEvent deletes an event out of band, as another client would.
func (s *Server) RemoveEvent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false
	}
	s.deleteLocked(id)
	return true
}

// EventIDs returns the ids of all stored events in creation order.
func (s *Server) EventIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// IssueToken mints a token for an existing user, bypassing the password check.
func (s *Server) IssueToken(userID string) (string, error) {
	s.mu.Lock()
	u, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("dev api: unknown user %q", userID)
	}
	return s.mintToken(u.User)
}

func (s *Server) addUser(u SeedUser) (*userRecord, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" {
		return nil, errors.New("dev api: user email is required")
	}
	for _, existing := range s.users {
		if existing.Email == email {
			return nil, fmt.Errorf("dev api: email %q already registered", email)
		}
	}
	id := u.ID
	if id == "" {
		id = uuid.NewString()
	}
	role := u.Role
	if role == "" {
		role = domainauth.RoleParticipant
	}
	rec := &userRecord{
		User: model.User{
			ID:       id,
			FullName: u.FullName,
			Email:    email,
			Role:     string(role),
		},
		password: u.Password,
	}
	s.users[id] = rec
	return rec, nil
}

type tokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) mintToken(u model.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		ID:   u.ID,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) verifyToken(raw string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// populate resolves participant ids into user references.
func (s *Server) populate(ids []string) ([]model.ParticipantRef, error) {
	seen := make(map[string]struct{}, len(ids))
	refs := make([]model.ParticipantRef, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		u, ok := s.users[id]
		if !ok {
			return nil, fmt.Errorf("unknown participant %q", id)
		}
		refs = append(refs, u.Ref())
	}
	return refs, nil
}

func (s *Server) deleteLocked(id string) {
	delete(s.events, id)
	for i, eid := range s.order {
		if eid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// eventsLocked returns copies of events matching keep, in creation order.
func (s *Server) eventsLocked(keep func(*eventRecord) bool) []model.Event {
	out := make([]model.Event, 0, len(s.order))
	for _, id := range s.order {
		rec := s.events[id]
		if keep(rec) {
			out = append(out, *rec.event.Clone())
		}
	}
	return out
}

func hasParticipant(e model.Event, userID string) bool {
	for _, p := range e.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

func sortedUsers(m map[string]*userRecord) []model.User {
	out := make([]model.User, 0, len(m))
	for _, u := range m {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
