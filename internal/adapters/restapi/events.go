package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sportsevents/eventdesk/internal/domain/model"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// Multipart field names. Create repeats "participants"; update repeats
// "participants[]". Both spellings are what the backend parses.
const (
	fieldParticipantsCreate = "participants"
	fieldParticipantsUpdate = "participants[]"
	fieldImage              = "image"
	fieldExistingImageURL   = "existingImageUrl"
	fieldExistingImageID    = "existingImagePublicId"
)

// ListEvents returns the caller's events, scoped server-side by role.
func (c *Client) ListEvents(ctx context.Context, token string) ([]model.Event, error) {
	var out []model.Event
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/events", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListParticipantEvents returns the events a participant is registered for.
func (c *Client) ListParticipantEvents(ctx context.Context, token, userID string, role string) ([]model.Event, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("userRole", role)

	var out []model.Event
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/events/participant",
		query:  q,
		token:  token,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent fetches one event with its participants populated.
func (c *Client) GetEvent(ctx context.Context, token, id string) (model.Event, error) {
	var out model.Event
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/events/" + url.PathEscape(id),
		token:  token,
	}, &out); err != nil {
		return model.Event{}, err
	}
	return out, nil
}

// CreateEvent submits a multipart create and returns the canonical event.
func (c *Client) CreateEvent(ctx context.Context, token string, in ports.EventWrite) (model.Event, error) {
	body, contentType, err := encodeEventWrite(in, fieldParticipantsCreate)
	if err != nil {
		return model.Event{}, err
	}

	var out model.Event
	if err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/events",
		token:       token,
		body:        body,
		contentType: contentType,
	}, &out); err != nil {
		return model.Event{}, err
	}
	return out, nil
}

// UpdateEvent submits a whole-record multipart replacement of id.
func (c *Client) UpdateEvent(ctx context.Context, token, id string, in ports.EventWrite) (model.Event, error) {
	body, contentType, err := encodeEventWrite(in, fieldParticipantsUpdate)
	if err != nil {
		return model.Event{}, err
	}

	var out model.Event
	if err := c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/api/events/" + url.PathEscape(id),
		token:       token,
		body:        body,
		contentType: contentType,
	}, &out); err != nil {
		return model.Event{}, err
	}
	return out, nil
}

// DeleteEvent removes id server-side.
func (c *Client) DeleteEvent(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/events/" + url.PathEscape(id),
		token:  token,
	}, nil)
}

// encodeEventWrite renders the draft, participant ids and image as multipart/form-data.
func encodeEventWrite(in ports.EventWrite, participantsField string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	d := in.Draft
	fields := [][2]string{
		{"title", d.Title},
		{"description", d.Description},
		{"location", d.Location},
		{"date", d.Date.UTC().Format(time.RFC3339)},
		{"maxParticipants", strconv.Itoa(d.MaxParticipants)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", apperrors.Wrapf(err, apperrors.ErrCodeInternal, "write field %s", f[0])
		}
	}
	for _, id := range d.ParticipantIDs {
		if err := w.WriteField(participantsField, id); err != nil {
			return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "write participant")
		}
	}

	switch {
	case in.Image != nil && in.Image.Content != nil:
		name := in.Image.Filename
		if name == "" {
			name = "image"
		}
		part, err := w.CreateFormFile(fieldImage, name)
		if err != nil {
			return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "create image part")
		}
		if _, err := io.Copy(part, in.Image.Content); err != nil {
			return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "copy image")
		}
	case in.Existing != nil && in.Existing.URL != "":
		if err := w.WriteField(fieldExistingImageURL, in.Existing.URL); err != nil {
			return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "write existing image")
		}
		if err := w.WriteField(fieldExistingImageID, in.Existing.PublicID); err != nil {
			return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "write existing image id")
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
