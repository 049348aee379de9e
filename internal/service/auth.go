package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API     ports.AuthAPI   // Required
	Session *SessionContext // Required
	Roles   ports.RoleMapper
}

// AuthService runs the login, registration and logout flows.
type AuthService struct {
	api     ports.AuthAPI
	session *SessionContext
	roles   ports.RoleMapper
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.API == nil {
		panic("AuthAPI is required")
	}
	if opts.Session == nil {
		panic("SessionContext is required")
	}
	roles := opts.Roles
	if roles == nil {
		roles = parseRoleMapper{}
	}
	return &AuthService{api: opts.API, session: opts.Session, roles: roles}
}

// Login exchanges email and password for a credential and establishes the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domainauth.Credential, error) {
	req := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := validateInput(req); err != nil {
		return domainauth.Credential{}, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return domainauth.Credential{}, fmt.Errorf("login: %w", err)
	}

	role, ok := s.roles.Map(resp.Role)
	if !ok {
		return domainauth.Credential{}, apperrors.Auth(fmt.Sprintf("unsupported role %q", resp.Role))
	}
	cred := domainauth.Credential{Token: resp.Token, Role: role, UserID: resp.UserID}
	if err := s.session.Establish(ctx, cred); err != nil {
		return domainauth.Credential{}, fmt.Errorf("establish session: %w", err)
	}
	s.session.logger.InfoContext(ctx, "logged in", slog.String("user_id", cred.UserID))
	return cred, nil
}

// Register creates a participant account. It does not sign the user in.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (model.User, error) {
	req := model.RegisterRequest{
		FullName: strings.TrimSpace(fullName),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := validateInput(req); err != nil {
		return model.User{}, err
	}
	user, err := s.api.Register(ctx, req)
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Logout ends the session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}
