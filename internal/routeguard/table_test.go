package routeguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
)

func TestDefaultTable_Evaluate(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name   string
		status domainauth.Status
		path   string
		want   Decision
	}{
		{name: "anonymous create event", status: anon, path: "/events/create", want: RedirectLogin},
		{name: "participant create event", status: participant, path: "/events/create", want: RedirectHome},
		{name: "organizer create event", status: organizer, path: "/events/create", want: Allow},
		{name: "organizer gallery", status: organizer, path: "/Organizer/events", want: Allow},
		{name: "participant dashboard", status: participant, path: "/OrganizerDashboard", want: RedirectHome},
		{name: "participant own events", status: participant, path: "/events/abc123", want: Allow},
		{name: "organizer participant view", status: organizer, path: "/events/abc123", want: RedirectHome},
		{name: "anonymous login", status: anon, path: "/login", want: Allow},
		{name: "anonymous register", status: anon, path: "/register", want: Allow},
		{name: "authenticated login", status: participant, path: "/login", want: RedirectHome},
		{name: "authenticated register", status: organizer, path: "/register/", want: RedirectHome},
		{name: "home is open to anonymous", status: anon, path: "/", want: Allow},
		{name: "home is open to authenticated", status: organizer, path: "/", want: Allow},
		{name: "unlisted path anonymous", status: anon, path: "/profile", want: RedirectLogin},
		{name: "unlisted path authenticated", status: participant, path: "/profile", want: Allow},
		{name: "query string ignored", status: anon, path: "/events/create?draft=1", want: RedirectLogin},
		{name: "participant lowercase dashboard", status: participant, path: "/organizerdashboard", want: RedirectHome},
		{name: "participant mixed case create", status: participant, path: "/Events/create", want: RedirectHome},
		{name: "participant uppercase gallery", status: participant, path: "/ORGANIZER/EVENTS", want: RedirectHome},
		{name: "organizer mixed case create", status: organizer, path: "/EVENTS/Create", want: Allow},
		{name: "anonymous mixed case dashboard", status: anon, path: "/organizerDashboard", want: RedirectLogin},
		{name: "organizer mixed case participant view", status: organizer, path: "/Events/abc123", want: RedirectHome},
		{name: "authenticated uppercase login", status: participant, path: "/LOGIN", want: RedirectHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Evaluate(tt.status, tt.path))
		})
	}
}

func TestTable_PolicyFor_LiteralBeatsParameter(t *testing.T) {
	table := DefaultTable()

	p := table.PolicyFor("/events/create")
	require.NotNil(t, p)
	assert.Equal(t, "/events/create", p.Pattern)

	p = table.PolicyFor("/events/delete")
	require.NotNil(t, p)
	assert.Equal(t, "/events/delete", p.Pattern)

	p = table.PolicyFor("/events/xyz")
	require.NotNil(t, p)
	assert.Equal(t, "/events/:eventId", p.Pattern)

	p = table.PolicyFor("/EVENTS/Create")
	require.NotNil(t, p)
	assert.Equal(t, "/events/create", p.Pattern)

	assert.Nil(t, table.PolicyFor("/events"))
	assert.Nil(t, table.PolicyFor("/events/a/b"))
}

func TestTable_ExplicitConfigurationOnly(t *testing.T) {
	// A path that merely looks public is still guarded unless listed.
	table := Table{Public: []string{"/login"}}
	assert.Equal(t, RedirectLogin, table.Evaluate(anon, "/public"))
	assert.Equal(t, Allow, table.Evaluate(anon, "/login"))
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "/", Target(RedirectHome))
	assert.Equal(t, "/login", Target(RedirectLogin))
	assert.Empty(t, Target(Allow))
}
