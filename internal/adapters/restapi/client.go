// Package restapi is the HTTP adapter for the event platform's REST API.
//
// Authenticated calls carry the session token in a header literally named
// `token`, not a bearer Authorization header; the paired backend reads it there.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/idna"

	apperrors "github.com/sportsevents/eventdesk/internal/errors"
)

const (
	// TokenHeader is the wire name of the credential header.
	TokenHeader = "token"

	defaultTimeout  = 15 * time.Second
	maxErrorBodyLen = 64 << 10
)

// Config captures the client's connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Client talks to the remote API. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// NewClient builds a REST client. A nil Config.Client gets a client with the
// configured timeout (15s when unset).
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	base.Scheme = strings.ToLower(base.Scheme)
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http(s), got %q", base.Scheme)
	}
	host, err := canonicalHost(base)
	if err != nil {
		return nil, err
	}
	base.Host = host

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{base: base, client: hc, logger: logger}, nil
}

// Origin returns scheme://host of the API, the scope of persisted credentials.
// The host is in lowercase ASCII (punycode) form so spellings of one host share a session.
func (c *Client) Origin() string {
	return c.base.Scheme + "://" + c.base.Host
}

// canonicalHost maps u's host to its IDNA lookup form, keeping any port.
func canonicalHost(u *url.URL) (string, error) {
	name := u.Hostname()
	if name == "" {
		return "", errors.New("api base url has no host")
	}
	if ip := net.ParseIP(name); ip == nil {
		ascii, err := idna.Lookup.ToASCII(name)
		if err != nil {
			return "", fmt.Errorf("api base url host %q: %w", name, err)
		}
		name = ascii
	}
	if port := u.Port(); port != "" {
		return net.JoinHostPort(name, port), nil
	}
	if strings.Contains(name, ":") {
		return "[" + name + "]", nil
	}
	return name, nil
}

type request struct {
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
	}
	return bytes.NewReader(b), nil
}

// do sends r and decodes a successful JSON response into out (when non-nil).
// Failures come back as *apperrors.AppError.
func (c *Client) do(ctx context.Context, r request, out any) error {
	u := *c.base
	u.Path = strings.TrimSuffix(c.base.Path, "/") + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), r.body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "create request")
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.token != "" {
		req.Header.Set(TokenHeader, r.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			slog.String("method", r.method),
			slog.String("path", r.path),
			slog.Any("error", err))
		return apperrors.Network(fmt.Sprintf("%s %s", r.method, r.path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "api",
		slog.String("method", r.method),
		slog.String("path", r.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return apperrors.Network("read response", err)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode response")
	}
	return nil
}

// statusError maps a non-2xx response, surfacing the server's message when present.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	}
	return apperrors.FromStatus(resp.StatusCode, msg)
}
