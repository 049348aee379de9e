package devseed

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsevents/eventdesk/internal/adapters/devapi"
	"github.com/sportsevents/eventdesk/internal/adapters/restapi"
	"github.com/sportsevents/eventdesk/internal/domain/model"
)

func newSeedTarget(t *testing.T, users []devapi.SeedUser) (*devapi.Server, *restapi.Client) {
	t.Helper()
	api, err := devapi.NewServer(devapi.Config{Secret: "seed-test", Users: users})
	require.NoError(t, err)
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)
	client, err := restapi.NewClient(restapi.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	return api, client
}

func TestRun_IsIdempotent(t *testing.T) {
	api, client := newSeedTarget(t, Users())
	ctx := context.Background()

	require.NoError(t, Run(ctx, client, nil))
	require.Len(t, api.EventIDs(), len(defaultEvents()))

	require.NoError(t, Run(ctx, client, nil))
	assert.Len(t, api.EventIDs(), len(defaultEvents()), "second run creates nothing")
}

func TestRun_SeedsParticipants(t *testing.T) {
	_, client := newSeedTarget(t, Users())
	ctx := context.Background()
	require.NoError(t, Run(ctx, client, nil))

	resp, err := client.Login(ctx, model.LoginRequest{Email: "pat@example.com", Password: DemoPassword})
	require.NoError(t, err)
	events, err := client.ListParticipantEvents(ctx, resp.Token, resp.UserID, resp.Role)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "City Marathon", events[0].Title)
}

func TestRun_MissingOrganizer(t *testing.T) {
	_, client := newSeedTarget(t, nil)
	err := Run(context.Background(), client, nil)
	require.ErrorContains(t, err, "login as "+OrganizerEmail)
}

func TestRun_UnknownParticipantCountsAsFailure(t *testing.T) {
	users := Users()[:3] // drops sam and alex
	api, client := newSeedTarget(t, users)

	err := Run(context.Background(), client, nil)
	require.ErrorContains(t, err, "2 seed errors")
	assert.Len(t, api.EventIDs(), 1)
}
