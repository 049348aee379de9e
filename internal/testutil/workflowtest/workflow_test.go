package workflowtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsevents/eventdesk/internal/devseed"
	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
)

func draft(title string, participants ...string) model.EventDraft {
	return model.EventDraft{
		Title:           title,
		Location:        "Stadium",
		Date:            time.Date(2030, time.June, 1, 9, 0, 0, 0, time.UTC),
		MaxParticipants: 5,
		ParticipantIDs:  participants,
	}
}

func TestClock(t *testing.T) {
	start := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock(start)
	c.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), c.Now())
}

func TestWorkflow_SessionSurvivesRestart(t *testing.T) {
	WithWorkflowHarness(t, WorkflowTestOptions{StorageDir: t.TempDir()}, func(h *WorkflowTestHarness) {
		ctx := context.Background()

		first := h.NewClient(ctx)
		assert.False(t, first.Session.Status().IsAuthenticated())
		h.LoginAs(ctx, first, devseed.OrganizerEmail)
		first.Close()

		second := h.NewClient(ctx)
		defer second.Close()
		st := second.Session.Status()
		require.True(t, st.IsAuthenticated())
		assert.Equal(t, domainauth.RoleOrganizer, st.Role())

		_, err := second.Events.List(ctx)
		require.NoError(t, err)
	})
}

func TestWorkflow_ExpiredTokenIsDroppedAtStartup(t *testing.T) {
	WithWorkflowHarness(t, WorkflowTestOptions{StorageDir: t.TempDir(), TokenTTL: time.Minute}, func(h *WorkflowTestHarness) {
		ctx := context.Background()

		first := h.NewClient(ctx)
		h.LoginAs(ctx, first, "pat@example.com")
		first.Close()

		h.Clock.Advance(2 * time.Minute)

		second := h.NewClient(ctx)
		defer second.Close()
		assert.False(t, second.Session.Status().IsAuthenticated())

		frag, err := h.Store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, frag.IsEmpty(), "expired credential is removed")
	})
}

func TestWorkflow_RejectedTokenForcesLogout(t *testing.T) {
	WithWorkflowHarness(t, WorkflowTestOptions{StorageDir: t.TempDir(), TokenTTL: time.Minute}, func(h *WorkflowTestHarness) {
		ctx := context.Background()
		c := h.NewClient(ctx)
		defer c.Close()
		h.LoginAs(ctx, c, devseed.OrganizerEmail)

		// The session was established before expiry; only the server notices.
		h.Clock.Advance(2 * time.Minute)

		_, err := c.Events.List(ctx)
		require.Error(t, err)
		assert.True(t, apperrors.IsAuth(err))
		assert.False(t, c.Session.Status().IsAuthenticated())

		frag, err := h.Store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, frag.IsEmpty())
	})
}

func TestWorkflow_ServerSideDeletionReconciles(t *testing.T) {
	WithWorkflowHarness(t, WorkflowTestOptions{StorageDir: t.TempDir()}, func(h *WorkflowTestHarness) {
		ctx := context.Background()
		c := h.NewClient(ctx)
		defer c.Close()
		h.LoginAs(ctx, c, devseed.OrganizerEmail)

		kept, err := c.Events.Create(ctx, draft("Kept"), nil)
		require.NoError(t, err)
		gone, err := c.Events.Create(ctx, draft("Gone"), nil)
		require.NoError(t, err)
		require.Len(t, c.Events.Snapshot(), 2)

		require.True(t, h.API.RemoveEvent(gone.ID))

		_, err = c.Events.Get(ctx, gone.ID)
		assert.True(t, apperrors.IsNotFound(err))
		_, found := c.Events.Find(gone.ID)
		assert.False(t, found)

		_, err = c.Events.Update(ctx, gone.ID, draft("Gone again"), nil)
		assert.True(t, apperrors.IsNotFound(err))

		snap := c.Events.Snapshot()
		require.Len(t, snap, 1)
		assert.Equal(t, kept.ID, snap[0].ID)
	})
}

func TestWorkflow_OrganizerAndParticipant(t *testing.T) {
	WithWorkflowHarness(t, WorkflowTestOptions{StorageDir: t.TempDir()}, func(h *WorkflowTestHarness) {
		ctx := context.Background()
		org := h.NewClient(ctx)
		h.LoginAs(ctx, org, devseed.OrganizerEmail)
		patID := h.UserID(ctx, org, "pat@example.com")

		st, err := org.Participants.LoadEditor(ctx, mustCreate(ctx, t, org, draft("Relay", patID)).ID)
		require.NoError(t, err)
		assert.True(t, st.Selected.Has(patID))
		assert.Len(t, st.Candidates, 3)
		mustCreate(ctx, t, org, draft("Solo"))

		// A participant shares the same store slot, so sign the organizer out first.
		require.NoError(t, org.Auth.Logout(ctx))
		org.Close()

		pat := h.NewClient(ctx)
		defer pat.Close()
		h.LoginAs(ctx, pat, "pat@example.com")

		mine, err := pat.Events.ListForParticipant(ctx)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "Relay", mine[0].Title)

		_, err = pat.Events.Create(ctx, draft("Nope"), nil)
		assert.True(t, apperrors.IsAuth(err), "participants may not create events")
	})
}

func TestWorkflow_RedisStore(t *testing.T) {
	WithWorkflowHarness(t, WorkflowTestOptions{EnableRedis: true}, func(h *WorkflowTestHarness) {
		ctx := context.Background()
		first := h.NewClient(ctx)
		h.LoginAs(ctx, first, "sam@example.com")
		first.Close()

		second := h.NewClient(ctx)
		defer second.Close()
		assert.Equal(t, domainauth.RoleParticipant, second.Session.Status().Role())
	})
}

func mustCreate(ctx context.Context, t *testing.T, c *Client, d model.EventDraft) model.Event {
	t.Helper()
	ev, err := c.Events.Create(ctx, d, nil)
	require.NoError(t, err)
	return ev
}
