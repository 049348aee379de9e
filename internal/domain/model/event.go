// Package model defines the event and participant data types mirrored from the remote API.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Image is the stored image attached to an event.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
}

// Event is the client-side copy of a server-owned event.
type Event struct {
	ID              string           `json:"_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Location        string           `json:"location"`
	Date            time.Time        `json:"date"`
	MaxParticipants int              `json:"maxParticipants"`
	Participants    []ParticipantRef `json:"participants"`
	Image           *Image           `json:"image,omitempty"`
}

// ParticipantIDs returns the ids of the event's participants in order.
func (e *Event) ParticipantIDs() []string {
	ids := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		ids = append(ids, p.ID)
	}
	return ids
}

// Clone returns a deep copy so mirror readers never share slices with the mirror.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	out := *e
	if e.Participants != nil {
		out.Participants = append([]ParticipantRef(nil), e.Participants...)
	}
	if e.Image != nil {
		img := *e.Image
		out.Image = &img
	}
	return &out
}

// ParticipantRef is a read-only projection of a user referenced by an event.
type ParticipantRef struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UnmarshalJSON accepts either a populated user object or a bare id string;
// the backend returns the latter when participants are not populated.
func (p *ParticipantRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("participant id: %w", err)
		}
		*p = ParticipantRef{ID: id}
		return nil
	}
	type plain ParticipantRef
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("participant: %w", err)
	}
	*p = ParticipantRef(v)
	return nil
}

// EventDraft is the complete intended state of an event's editable fields.
// Update sends it as a whole-record replacement; there is no merge.
type EventDraft struct {
	Title           string    `validate:"required,max=200"`
	Description     string    `validate:"max=5000"`
	Location        string    `validate:"required"`
	Date            time.Time `validate:"required"`
	MaxParticipants int       `validate:"gte=1"`
	ParticipantIDs  []string  `validate:"dive,required"`
}

// DraftFromEvent seeds a draft with an existing event's current state.
func DraftFromEvent(e *Event) EventDraft {
	return EventDraft{
		Title:           e.Title,
		Description:     e.Description,
		Location:        e.Location,
		Date:            e.Date,
		MaxParticipants: e.MaxParticipants,
		ParticipantIDs:  e.ParticipantIDs(),
	}
}
