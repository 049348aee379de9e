package ports

import (
	"context"
	"io"

	"github.com/sportsevents/eventdesk/internal/domain/model"
)

// ImageUpload is an optional binary image sent with a create or update.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// EventWrite is the multipart payload for create and update.
// Existing carries the current image when no new upload replaces it.
type EventWrite struct {
	Draft    model.EventDraft
	Image    *ImageUpload
	Existing *model.Image
}

// EventsAPI is the token-authenticated event surface of the remote API.
// Every call carries the session token, sent as the `token` header.
type EventsAPI interface {
	ListEvents(ctx context.Context, token string) ([]model.Event, error)
	ListParticipantEvents(ctx context.Context, token, userID string, role string) ([]model.Event, error)
	GetEvent(ctx context.Context, token, id string) (model.Event, error)
	CreateEvent(ctx context.Context, token string, in EventWrite) (model.Event, error)
	UpdateEvent(ctx context.Context, token, id string, in EventWrite) (model.Event, error)
	DeleteEvent(ctx context.Context, token, id string) error
}

// UsersAPI lists platform users.
type UsersAPI interface {
	ListUsers(ctx context.Context, token string) ([]model.User, error)
}
