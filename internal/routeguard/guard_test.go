package routeguard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
)

var (
	organizerOnly   = &RoutePolicy{Pattern: "/events/create", AllowedRoles: []domainauth.Role{domainauth.RoleOrganizer}}
	participantOnly = &RoutePolicy{Pattern: "/events/:eventId", AllowedRoles: []domainauth.Role{domainauth.RoleParticipant}}
	anon            = domainauth.Anonymous()
	organizer       = domainauth.Authenticated(domainauth.RoleOrganizer)
	participant     = domainauth.Authenticated(domainauth.RoleParticipant)
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		status domainauth.Status
		public bool
		policy *RoutePolicy
		want   Decision
	}{
		{name: "authenticated on auth form", status: organizer, public: true, want: RedirectHome},
		{name: "authenticated on auth form with policy", status: participant, public: true, policy: participantOnly, want: RedirectHome},
		{name: "anonymous on auth form", status: anon, public: true, want: Allow},
		{name: "anonymous on protected path", status: anon, policy: organizerOnly, want: RedirectLogin},
		{name: "anonymous on unlisted path", status: anon, want: RedirectLogin},
		{name: "participant on organizer route", status: participant, policy: organizerOnly, want: RedirectHome},
		{name: "organizer on organizer route", status: organizer, policy: organizerOnly, want: Allow},
		{name: "organizer on participant route", status: organizer, policy: participantOnly, want: RedirectHome},
		{name: "no policy admits any role", status: participant, want: Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.status, tt.public, tt.policy))
		})
	}
}

func TestDecide_IsPure(t *testing.T) {
	statuses := []domainauth.Status{anon, organizer, participant}
	policies := []*RoutePolicy{nil, organizerOnly, participantOnly}

	for _, s := range statuses {
		for _, public := range []bool{true, false} {
			for _, p := range policies {
				first := Decide(s, public, p)
				for range 5 {
					assert.Equal(t, first, Decide(s, public, p), "status=%s public=%v", s, public)
				}
			}
		}
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "redirect-home", RedirectHome.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
