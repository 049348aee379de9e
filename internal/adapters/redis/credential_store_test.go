package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/testutil"
)

func TestCredentialStore_SaveAndLoad(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewCredentialStoreWithPrefix(client, "test-credential:", "http://localhost:8800")
	ctx := context.Background()

	cred := domainauth.Credential{Token: "tok-1", Role: domainauth.RoleOrganizer, UserID: "u-1"}
	require.NoError(t, store.Save(ctx, cred))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "Organisateur", got.Role)
	assert.Equal(t, "u-1", got.UserID)
}

func TestCredentialStore_LoadAbsent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewCredentialStoreWithPrefix(client, "test-credential:", "http://absent")
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestCredentialStore_ClearIsIdempotent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewCredentialStoreWithPrefix(client, "test-credential:", "http://clear")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Credential{Token: "tok", Role: domainauth.RoleParticipant, UserID: "u"}))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestCredentialStore_OriginsAreIsolated(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	a := NewCredentialStoreWithPrefix(client, "test-credential:", "http://a")
	b := NewCredentialStoreWithPrefix(client, "test-credential:", "http://b")
	t.Cleanup(func() {
		_ = a.Clear(ctx)
		_ = b.Clear(ctx)
	})

	require.NoError(t, a.Save(ctx, domainauth.Credential{Token: "a-tok", Role: domainauth.RoleParticipant}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.HasToken())
}

func TestCredentialStore_SaveRejectsEmptyToken(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewCredentialStore(client, "http://empty")
	err := store.Save(context.Background(), domainauth.Credential{Role: domainauth.RoleParticipant})
	assert.Error(t, err)
}
