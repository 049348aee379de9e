package restapi

import (
	"context"
	"net/http"

	"github.com/sportsevents/eventdesk/internal/domain/model"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
)

// Login exchanges email and password for a credential triple.
// A response without token or role is rejected as an auth failure.
func (c *Client) Login(ctx context.Context, in model.LoginRequest) (model.LoginResponse, error) {
	body, err := jsonBody(in)
	if err != nil {
		return model.LoginResponse{}, err
	}

	var out model.LoginResponse
	if err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/auth/login",
		body:        body,
		contentType: "application/json",
	}, &out); err != nil {
		return model.LoginResponse{}, err
	}
	if out.Token == "" || out.Role == "" {
		return model.LoginResponse{}, apperrors.Auth("user data or role is missing from the login response")
	}
	return out, nil
}

// Register creates an account. The backend may answer with the user at the
// top level or nested under "user".
func (c *Client) Register(ctx context.Context, in model.RegisterRequest) (model.User, error) {
	body, err := jsonBody(in)
	if err != nil {
		return model.User{}, err
	}

	var out struct {
		model.User
		Nested *model.User `json:"user"`
	}
	if err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/auth/register",
		body:        body,
		contentType: "application/json",
	}, &out); err != nil {
		return model.User{}, err
	}
	if out.Nested != nil {
		return *out.Nested, nil
	}
	return out.User, nil
}

// ListUsers returns every account; callers filter by role.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/auth/users",
		token:  token,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
