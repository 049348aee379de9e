// Package mocks provides gomock implementations of the eventdesk ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockEventsAPI(ctrl)
//	api.EXPECT().ListEvents(gomock.Any(), "token").Return(events, nil)
package mocks

// EventsAPI: ListEvents, ListParticipantEvents, GetEvent, CreateEvent, UpdateEvent, DeleteEvent
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=events_api_mock.go github.com/sportsevents/eventdesk/internal/ports EventsAPI

// UsersAPI: ListUsers
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=users_api_mock.go github.com/sportsevents/eventdesk/internal/ports UsersAPI

// CredentialStore: Save, Load, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_store_mock.go github.com/sportsevents/eventdesk/internal/ports CredentialStore
