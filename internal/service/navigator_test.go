package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	mocks "github.com/sportsevents/eventdesk/internal/mocks/auth"
	"github.com/sportsevents/eventdesk/internal/routeguard"
)

func TestNavigator_FollowsSession(t *testing.T) {
	store := mocks.NewMemoryCredentialStore(domainauth.CredentialFragment{})
	session := NewSessionContext(SessionContextOptions{Store: store, Decoder: &mocks.StubDecoder{}})
	nav := NewNavigator(session, routeguard.DefaultTable())
	ctx := context.Background()

	d, target := nav.Navigate("/events/create")
	assert.Equal(t, routeguard.RedirectLogin, d)
	assert.Equal(t, "/login", target)

	d, target = nav.Navigate("/")
	assert.Equal(t, routeguard.Allow, d)
	assert.Equal(t, "/", target)

	require.NoError(t, session.Establish(ctx, domainauth.Credential{Token: "t", Role: domainauth.RoleParticipant, UserID: "p1"}))

	d, target = nav.Navigate("/events/create")
	assert.Equal(t, routeguard.RedirectHome, d)
	assert.Equal(t, "/", target)

	d, target = nav.Navigate("/events/e42")
	assert.Equal(t, routeguard.Allow, d)
	assert.Equal(t, "/events/e42", target)

	d, _ = nav.Navigate("/login")
	assert.Equal(t, routeguard.RedirectHome, d)

	require.NoError(t, session.Clear(ctx))
	d, _ = nav.Navigate("/events/e42")
	assert.Equal(t, routeguard.RedirectLogin, d)
}
