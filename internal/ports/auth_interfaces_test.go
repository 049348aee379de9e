package ports_test

import (
	"testing"

	"github.com/sportsevents/eventdesk/internal/adapters/authroles"
	"github.com/sportsevents/eventdesk/internal/adapters/jwtclaims"
	"github.com/sportsevents/eventdesk/internal/adapters/restapi"
	"github.com/sportsevents/eventdesk/internal/mocks"
	mockauth "github.com/sportsevents/eventdesk/internal/mocks/auth"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// This test only verifies that adapters and doubles conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.CredentialStore = (*mockauth.MemoryCredentialStore)(nil)
	var _ ports.SessionDecoder = (*mockauth.StubDecoder)(nil)
	var _ ports.AuthAPI = (*mockauth.MockAuthAPI)(nil)
	var _ ports.SessionDecoder = jwtclaims.Decoder{}
	var _ ports.RoleMapper = authroles.WireRoleMapper{}
	var _ ports.EventsAPI = (*restapi.Client)(nil)
	var _ ports.UsersAPI = (*restapi.Client)(nil)
	var _ ports.AuthAPI = (*restapi.Client)(nil)
	var _ ports.EventsAPI = (*mocks.MockEventsAPI)(nil)
	var _ ports.UsersAPI = (*mocks.MockUsersAPI)(nil)
	var _ ports.CredentialStore = (*mocks.MockCredentialStore)(nil)
}
