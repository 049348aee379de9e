package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialStore = (*MemoryCredentialStore)(nil)
	_ ports.SessionDecoder  = (*StubDecoder)(nil)
	_ ports.AuthAPI         = (*MockAuthAPI)(nil)
)

// MemoryCredentialStore is an in-memory credential store for unit tests.
// Err fields inject backend failures; counters record calls.
type MemoryCredentialStore struct {
	mu   sync.Mutex
	frag domainauth.CredentialFragment

	SaveErr  error
	LoadErr  error
	ClearErr error

	SaveCalls  int
	LoadCalls  int
	ClearCalls int
}

// NewMemoryCredentialStore creates a store pre-seeded with frag.
func NewMemoryCredentialStore(frag domainauth.CredentialFragment) *MemoryCredentialStore {
	return &MemoryCredentialStore{frag: frag}
}

func (m *MemoryCredentialStore) Save(_ context.Context, cred domainauth.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.frag = domainauth.CredentialFragment{Token: cred.Token, Role: string(cred.Role), UserID: cred.UserID}
	return nil
}

func (m *MemoryCredentialStore) Load(_ context.Context) (domainauth.CredentialFragment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadErr != nil {
		return domainauth.CredentialFragment{}, m.LoadErr
	}
	return m.frag, nil
}

func (m *MemoryCredentialStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.frag = domainauth.CredentialFragment{}
	return nil
}

// Stored returns the current contents without counting as a Load.
func (m *MemoryCredentialStore) Stored() domainauth.CredentialFragment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frag
}

// StubDecoder returns canned claims, or delegates to DecodeFunc when set.
type StubDecoder struct {
	DecodeFunc func(token string) (domainauth.Claims, error)
	Claims     domainauth.Claims
	Err        error
	Calls      int
}

func (s *StubDecoder) Decode(token string) (domainauth.Claims, error) {
	s.Calls++
	if s.DecodeFunc != nil {
		return s.DecodeFunc(token)
	}
	return s.Claims, s.Err
}

// MockAuthAPI simulates the login and register endpoints.
type MockAuthAPI struct {
	LoginFunc    func(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	RegisterFunc func(ctx context.Context, req model.RegisterRequest) (model.User, error)

	LoginCalls    int
	RegisterCalls int
}

func (m *MockAuthAPI) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	m.LoginCalls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return model.LoginResponse{Token: "mock-token", Role: string(domainauth.RoleParticipant), UserID: "mock-user-1"}, nil
}

func (m *MockAuthAPI) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	m.RegisterCalls++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return model.User{ID: "mock-user-1", FullName: req.FullName, Email: req.Email, Role: string(domainauth.RoleParticipant)}, nil
}
