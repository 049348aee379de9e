// Package workflowtest wires the eventdesk client against an in-memory API
// for end-to-end tests of the session and event flows.
package workflowtest

import (
	"context"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sportsevents/eventdesk/internal/adapters/authroles"
	"github.com/sportsevents/eventdesk/internal/adapters/devapi"
	"github.com/sportsevents/eventdesk/internal/adapters/jwtclaims"
	redisstore "github.com/sportsevents/eventdesk/internal/adapters/redis"
	"github.com/sportsevents/eventdesk/internal/adapters/restapi"
	"github.com/sportsevents/eventdesk/internal/adapters/sqlitestore"
	"github.com/sportsevents/eventdesk/internal/devseed"
	"github.com/sportsevents/eventdesk/internal/ports"
	"github.com/sportsevents/eventdesk/internal/service"
	"github.com/sportsevents/eventdesk/internal/testutil"
)

// Clock is a manually advanced time source shared by the API and the client.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at start.
func NewClock(start time.Time) *Clock { return &Clock{now: start} }

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Client is one client process: a session and the services built on it.
type Client struct {
	Session      *service.SessionContext
	Auth         *service.AuthService
	Events       *service.EventRepository
	Participants *service.ParticipantDirectory
}

// Close stops the client without touching the stored credential.
func (c *Client) Close() {
	c.Events.Close()
	c.Session.Close()
}

// WorkflowTestHarness provides utilities for end-to-end workflow testing.
//
//nolint:revive // WorkflowTestHarness is intentionally verbose for clarity in test code.
type WorkflowTestHarness struct {
	t  testutil.TestingTB
	ts *httptest.Server

	API   *devapi.Server
	REST  *restapi.Client
	Store ports.CredentialStore
	Clock *Clock

	// Optional Redis components
	RedisClient *redis.Client

	sqlite *sqlitestore.Store
}

// WorkflowTestOptions configures the workflow test harness.
//
//nolint:revive // WorkflowTestOptions is intentionally verbose for clarity in test code.
type WorkflowTestOptions struct {
	// EnableRedis stores the credential in Redis instead of SQLite
	EnableRedis bool
	// StorageDir holds the SQLite file; required unless EnableRedis is set
	StorageDir string
	// TokenTTL is the lifetime of tokens the API issues
	TokenTTL time.Duration
	// Start is the initial clock time
	Start time.Time
}

// NewWorkflowTestHarness starts the API with the demo accounts and opens the credential store.
func NewWorkflowTestHarness(t testutil.TestingTB, opts WorkflowTestOptions) *WorkflowTestHarness {
	t.Helper()

	if opts.TokenTTL == 0 {
		opts.TokenTTL = time.Hour
	}
	if opts.Start.IsZero() {
		opts.Start = testutil.TestTime()
	}

	h := &WorkflowTestHarness{t: t, Clock: NewClock(opts.Start)}

	api, err := devapi.NewServer(devapi.Config{
		Secret:   testutil.TestSigningSecret,
		TokenTTL: opts.TokenTTL,
		Users:    devseed.Users(),
		Now:      h.Clock.Now,
	})
	if err != nil {
		t.Fatalf("create dev api: %v", err)
	}
	h.API = api
	h.ts = httptest.NewServer(api)

	h.REST, err = restapi.NewClient(restapi.Config{BaseURL: h.ts.URL, Timeout: 5 * time.Second})
	if err != nil {
		h.Close()
		t.Fatalf("create rest client: %v", err)
	}

	if opts.EnableRedis {
		h.setupRedis()
	} else {
		h.setupSQLite(opts.StorageDir)
	}
	return h
}

func (h *WorkflowTestHarness) setupRedis() {
	h.t.Helper()
	h.RedisClient = testutil.SetupTestRedis(h.t)
	h.Store = redisstore.NewCredentialStore(h.RedisClient, h.REST.Origin())
}

func (h *WorkflowTestHarness) setupSQLite(dir string) {
	h.t.Helper()
	if dir == "" {
		h.Close()
		h.t.Fatalf("StorageDir is required for the sqlite store")
	}
	store, err := sqlitestore.Open(testutil.TempSQLitePath(dir), h.REST.Origin())
	if err != nil {
		h.Close()
		h.t.Fatalf("open sqlite store: %v", err)
	}
	h.sqlite = store
	h.Store = store
}

// NewClient builds a client process over the shared store and starts its session,
// as a fresh launch of the application would.
func (h *WorkflowTestHarness) NewClient(ctx context.Context) *Client {
	h.t.Helper()

	roles := authroles.WireRoleMapper{}
	session := service.NewSessionContext(service.SessionContextOptions{
		Store:   h.Store,
		Decoder: jwtclaims.Decoder{},
		Policy:  service.SessionPolicy{Roles: roles, Now: h.Clock.Now},
	})
	events := service.NewEventRepository(service.EventRepositoryOptions{API: h.REST, Session: session})
	participants, err := service.NewParticipantDirectory(service.ParticipantDirectoryOptions{Users: h.REST, Events: events})
	if err != nil {
		h.t.Fatalf("create participant directory: %v", err)
	}
	c := &Client{
		Session:      session,
		Auth:         service.NewAuthService(service.AuthServiceOptions{API: h.REST, Session: session, Roles: roles}),
		Events:       events,
		Participants: participants,
	}
	if _, err := session.Start(ctx); err != nil {
		h.t.Fatalf("start session: %v", err)
	}
	return c
}

// LoginAs signs c in with a demo account.
func (h *WorkflowTestHarness) LoginAs(ctx context.Context, c *Client, email string) {
	h.t.Helper()
	if _, err := c.Auth.Login(ctx, email, devseed.DemoPassword); err != nil {
		h.t.Fatalf("login %s: %v", email, err)
	}
}

// UserID returns the id of a demo account.
func (h *WorkflowTestHarness) UserID(ctx context.Context, c *Client, email string) string {
	h.t.Helper()
	cred, ok := c.Session.Credential()
	if !ok {
		h.t.Fatalf("UserID requires a signed-in client")
	}
	users, err := h.REST.ListUsers(ctx, cred.Token)
	if err != nil {
		h.t.Fatalf("list users: %v", err)
	}
	for _, u := range users {
		if u.Email == email {
			return u.ID
		}
	}
	h.t.Fatalf("user %s not found", email)
	return ""
}

// Close cleans up all resources.
func (h *WorkflowTestHarness) Close() {
	h.t.Helper()

	if h.ts != nil {
		h.ts.Close()
	}
	if h.sqlite != nil {
		if err := h.sqlite.Close(); err != nil {
			h.t.Logf("warning: failed to close sqlite store: %v", err)
		}
	}
	if h.RedisClient != nil {
		if err := h.RedisClient.Close(); err != nil {
			h.t.Logf("warning: failed to close redis client: %v", err)
		}
	}
}

// BaseURL returns the base URL of the test HTTP server.
func (h *WorkflowTestHarness) BaseURL() string {
	return h.ts.URL
}

// WithWorkflowHarness is a helper that sets up and tears down a workflow test harness.
func WithWorkflowHarness(t testutil.TestingTB, opts WorkflowTestOptions, fn func(*WorkflowTestHarness)) {
	t.Helper()

	harness := NewWorkflowTestHarness(t, opts)
	defer harness.Close()
	fn(harness)
}
