package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsevents/eventdesk/config"
	"github.com/sportsevents/eventdesk/internal/adapters/devapi"
	"github.com/sportsevents/eventdesk/internal/devseed"
	"github.com/sportsevents/eventdesk/internal/testutil"
)

type cliHarness struct {
	t   *testing.T
	cfg config.AppConfig
	api *devapi.Server
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	api, err := devapi.NewServer(devapi.Config{Secret: "cli-test", Users: devseed.Users()})
	require.NoError(t, err)
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	cfg := config.AppConfig{
		LogLevel: "error",
		API:      config.APIConfig{BaseURL: ts.URL, Timeout: 5 * time.Second},
		Storage:  config.StorageConfig{Backend: config.StorageSQLite, SQLitePath: testutil.TempSQLitePath(t.TempDir())},
	}
	return &cliHarness{t: t, cfg: cfg, api: api}
}

func (h *cliHarness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	cfg := h.cfg
	env := &commandEnv{loadConfig: func() (config.AppConfig, error) { return cfg, nil }}
	cmd := newRootCommand(env)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func (h *cliHarness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectError    bool
	}{
		{name: "help flag", args: []string{"--help"}, expectedOutput: "eventdesk signs in to the sports event platform and manages events."},
		{name: "events help", args: []string{"events", "--help"}, expectedOutput: "create"},
		{name: "invalid flag", args: []string{"--invalid-flag"}, expectedOutput: "unknown flag: --invalid-flag", expectError: true},
		{name: "login requires email", args: []string{"login"}, expectedOutput: `required flag(s) "email" not set`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand(newCommandEnv())
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			combined := buf.String()
			if err != nil {
				combined += err.Error()
			}
			assert.Contains(t, combined, tt.expectedOutput)
		})
	}
}

func TestCLI_SessionLifecycle(t *testing.T) {
	h := newCLIHarness(t)

	assert.Contains(t, h.mustRun("whoami"), "Not signed in.")
	assert.Contains(t, h.mustRun("navigate", "/OrganizerDashboard"), "redirect-login: /OrganizerDashboard -> /login")

	out, err := h.run(devseed.DemoPassword+"\n", "login", "--email", devseed.OrganizerEmail)
	require.NoError(t, err, out)
	assert.Contains(t, out, "(Organisateur)")

	assert.Contains(t, h.mustRun("whoami"), "Organisateur")
	assert.Contains(t, h.mustRun("navigate", "/OrganizerDashboard"), "allow: /OrganizerDashboard")
	assert.Contains(t, h.mustRun("navigate", "/login"), "redirect-home")

	assert.Contains(t, h.mustRun("logout"), "Signed out.")
	assert.Contains(t, h.mustRun("whoami"), "Not signed in.")
}

func TestCLI_LoginRejected(t *testing.T) {
	h := newCLIHarness(t)
	_, err := h.run("", "login", "--email", devseed.OrganizerEmail, "--password", "wrong-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password.")
}

func TestCLI_Register(t *testing.T) {
	h := newCLIHarness(t)
	out := h.mustRun("register", "--name", "New Runner", "--email", "new@example.com", "--password", "password123")
	assert.Contains(t, out, "Registered New Runner.")
	assert.Contains(t, h.mustRun("whoami"), "Not signed in.", "registration does not sign in")
}

func TestCLI_OrganizerEventFlow(t *testing.T) {
	h := newCLIHarness(t)
	h.mustRun("login", "--email", devseed.OrganizerEmail, "--password", devseed.DemoPassword)

	out := h.mustRun("--format", "json", "events", "create",
		"--title", "Trail Run", "--location", "Forest", "--date", "2030-05-01T08:30", "--max", "10")
	var created struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.NotEmpty(t, created.ID)

	list := h.mustRun("events", "list")
	assert.Contains(t, list, "Trail Run")
	assert.Contains(t, list, "0/10")

	users := h.mustRun("--format", "json", "participants")
	assert.Contains(t, users, "pat@example.com")
	assert.NotContains(t, users, devseed.OrganizerEmail)

	patID := userID(t, h, "pat@example.com")
	shown := h.mustRun("events", "update", created.ID, "--toggle", patID, "--title", "Trail Run 2")
	assert.Contains(t, shown, "Trail Run 2")
	assert.Contains(t, shown, "Pat Runner")
	assert.Contains(t, shown, "Forest", "untouched fields keep their value")

	editor := h.mustRun("participants", "--event", created.ID)
	assert.Contains(t, editor, "[x]")

	assert.Contains(t, h.mustRun("events", "delete", created.ID), "Deleted")
	_, err := h.run("", "events", "show", created.ID)
	require.Error(t, err)
}

func TestCLI_ParticipantSeesRegisteredEvents(t *testing.T) {
	h := newCLIHarness(t)
	h.mustRun("login", "--email", devseed.OrganizerEmail, "--password", devseed.DemoPassword)
	patID := userID(t, h, "pat@example.com")
	h.mustRun("events", "create", "--title", "Relay", "--location", "Track", "--date", "2030-06-01", "--max", "4", "--participant", patID)
	h.mustRun("events", "create", "--title", "Solo", "--location", "Track", "--date", "2030-06-02", "--max", "4")
	h.mustRun("logout")

	h.mustRun("login", "--email", "pat@example.com", "--password", devseed.DemoPassword)
	list := h.mustRun("events", "list")
	assert.Contains(t, list, "Relay")
	assert.NotContains(t, list, "Solo")

	_, err := h.run("", "events", "create", "--title", "X", "--location", "Y", "--date", "2030-01-01", "--max", "1")
	require.Error(t, err, "participants cannot create events")
}

func TestCLI_CreateWithImage(t *testing.T) {
	h := newCLIHarness(t)
	h.mustRun("login", "--email", devseed.OrganizerEmail, "--password", devseed.DemoPassword)

	path := filepath.Join(t.TempDir(), "poster.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	out := h.mustRun("events", "create", "--title", "Poster", "--location", "Hall", "--date", "2030-01-01", "--max", "3", "--image", path)
	assert.Contains(t, out, "/uploads/")
}

func TestCLI_InvalidInput(t *testing.T) {
	h := newCLIHarness(t)

	_, err := h.run("", "events", "list")
	require.ErrorContains(t, err, "not signed in")

	h.mustRun("login", "--email", devseed.OrganizerEmail, "--password", devseed.DemoPassword)
	_, err = h.run("", "events", "create", "--title", "No date", "--location", "Y", "--date", "tomorrow", "--max", "1")
	require.ErrorContains(t, err, "invalid date")

	_, err = h.run("", "--format", "yaml", "whoami")
	require.ErrorContains(t, err, "unknown output format")
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{"2030-05-01", "2030-05-01T08:30", "2030-05-01 08:30", "2030-05-01T08:30:00Z"} {
		d, err := parseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 2030, d.Year())
	}
	_, err := parseDate("05/01/2030")
	require.Error(t, err)
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("ignored\n"), "flag")
	require.NoError(t, err)
	assert.Equal(t, "flag", pw)

	pw, err = readPassword(strings.NewReader("from-stdin\r\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", pw)
}

func userID(t *testing.T, h *cliHarness, email string) string {
	t.Helper()
	var users []struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("--format", "json", "participants")), &users))
	for _, u := range users {
		if u.Email == email {
			return u.ID
		}
	}
	t.Fatalf("user %s not found", email)
	return ""
}
