package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
)

func TestMemoryCredentialStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore(domainauth.CredentialFragment{})

	require.NoError(t, store.Save(ctx, domainauth.Credential{Token: "t", Role: domainauth.RoleOrganizer, UserID: "u"}))
	frag, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domainauth.CredentialFragment{Token: "t", Role: "Organisateur", UserID: "u"}, frag)

	require.NoError(t, store.Clear(ctx))
	assert.True(t, store.Stored().IsEmpty())
	assert.Equal(t, 1, store.SaveCalls)
	assert.Equal(t, 1, store.LoadCalls)
	assert.Equal(t, 1, store.ClearCalls)
}

func TestMemoryCredentialStore_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	store := NewMemoryCredentialStore(domainauth.CredentialFragment{Token: "keep"})
	store.SaveErr = boom
	store.ClearErr = boom

	assert.ErrorIs(t, store.Save(ctx, domainauth.Credential{Token: "x"}), boom)
	assert.ErrorIs(t, store.Clear(ctx), boom)
	assert.Equal(t, "keep", store.Stored().Token)
}

func TestStubDecoder(t *testing.T) {
	d := &StubDecoder{Claims: domainauth.Claims{Role: "Participant"}}
	claims, err := d.Decode("anything")
	require.NoError(t, err)
	assert.Equal(t, "Participant", claims.Role)
	assert.Equal(t, 1, d.Calls)
}

func TestMockAuthAPI_Defaults(t *testing.T) {
	api := &MockAuthAPI{}
	resp, err := api.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "mock-token", resp.Token)

	user, err := api.Register(context.Background(), model.RegisterRequest{FullName: "Ada", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FullName)
	assert.Equal(t, 1, api.LoginCalls)
	assert.Equal(t, 1, api.RegisterCalls)
}
