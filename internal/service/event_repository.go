package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// sessionHandle is what the API-facing services need from the session.
type sessionHandle interface {
	Credential() (domainauth.Credential, bool)
	Clear(ctx context.Context) error
}

// EventRepositoryOptions groups dependencies for EventRepository.
type EventRepositoryOptions struct {
	API     ports.EventsAPI // Required
	Session sessionHandle   // Required: supplies the token; cleared on auth failure
	Logger  *slog.Logger    // Optional
}

// EventRepository keeps a local mirror of the caller's events in step with the server.
//
// The mirror only changes after the server confirms an operation. Each response
// is reconciled on its own by event id, so concurrent calls may complete in any order.
// Confirmed mutations are stamped with a generation; a read that started before a
// mutation never undoes it.
type EventRepository struct {
	api     ports.EventsAPI
	session sessionHandle
	logger  *slog.Logger

	mu       sync.RWMutex
	events   []model.Event
	closed   bool
	gen      uint64
	journal  []mutation
	inflight map[uint64]int
	listedAt uint64
}

// mutation is a confirmed change; ev is nil for a removal.
type mutation struct {
	gen uint64
	id  string
	ev  *model.Event
}

// NewEventRepository constructs an EventRepository with an empty mirror.
func NewEventRepository(opts EventRepositoryOptions) *EventRepository {
	if opts.API == nil {
		panic("EventsAPI is required")
	}
	if opts.Session == nil {
		panic("session is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EventRepository{
		api:     opts.API,
		session: opts.Session,
		logger:   logger.With("component", "event_repository"),
		inflight: make(map[uint64]int),
	}
}

// List fetches the caller's events and replaces the mirror with them.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	cred, err := r.credential()
	if err != nil {
		return nil, err
	}
	start := r.beginRead()
	events, err := r.api.ListEvents(ctx, cred.Token)
	if err != nil {
		r.endRead(start)
		return nil, r.fail(ctx, "list events", "", err)
	}
	r.replace(start, events)
	return cloneEvents(events), nil
}

// ListForParticipant fetches the events the current user is registered for
// and replaces the mirror with them.
func (r *EventRepository) ListForParticipant(ctx context.Context) ([]model.Event, error) {
	cred, err := r.credential()
	if err != nil {
		return nil, err
	}
	start := r.beginRead()
	events, err := r.api.ListParticipantEvents(ctx, cred.Token, cred.UserID, string(cred.Role))
	if err != nil {
		r.endRead(start)
		return nil, r.fail(ctx, "list participant events", "", err)
	}
	r.replace(start, events)
	return cloneEvents(events), nil
}

// Get fetches one event and refreshes its mirror entry.
func (r *EventRepository) Get(ctx context.Context, id string) (model.Event, error) {
	cred, err := r.credential()
	if err != nil {
		return model.Event{}, err
	}
	start := r.beginRead()
	ev, err := r.api.GetEvent(ctx, cred.Token, id)
	if err != nil {
		r.endRead(start)
		return model.Event{}, r.fail(ctx, "get event", id, err)
	}
	if err := r.refresh(start, ev); err != nil {
		return model.Event{}, err
	}
	return *ev.Clone(), nil
}

// Create submits draft with an optional image and appends the server's event.
func (r *EventRepository) Create(ctx context.Context, draft model.EventDraft, image *ports.ImageUpload) (model.Event, error) {
	if err := validateInput(draft); err != nil {
		return model.Event{}, err
	}
	cred, err := r.credential()
	if err != nil {
		return model.Event{}, err
	}
	ev, err := r.api.CreateEvent(ctx, cred.Token, ports.EventWrite{Draft: draft, Image: image})
	if err != nil {
		return model.Event{}, r.fail(ctx, "create event", "", err)
	}
	if err := r.upsert(ev); err != nil {
		return model.Event{}, err
	}
	r.logger.InfoContext(ctx, "event created", "event_id", ev.ID)
	return *ev.Clone(), nil
}

// Update replaces every editable field of id with draft. Without a new image
// the mirrored image is re-sent so the server keeps it.
func (r *EventRepository) Update(ctx context.Context, id string, draft model.EventDraft, image *ports.ImageUpload) (model.Event, error) {
	if id == "" {
		return model.Event{}, apperrors.ValidationField("id", "event id is required")
	}
	if err := validateInput(draft); err != nil {
		return model.Event{}, err
	}
	cred, err := r.credential()
	if err != nil {
		return model.Event{}, err
	}

	in := ports.EventWrite{Draft: draft, Image: image}
	if image == nil {
		if cur, ok := r.Find(id); ok && cur.Image != nil {
			in.Existing = cur.Image
		}
	}
	ev, err := r.api.UpdateEvent(ctx, cred.Token, id, in)
	if err != nil {
		return model.Event{}, r.fail(ctx, "update event", id, err)
	}
	if err := r.upsert(ev); err != nil {
		return model.Event{}, err
	}
	r.logger.InfoContext(ctx, "event updated", "event_id", ev.ID)
	return *ev.Clone(), nil
}

// Delete removes id on the server, then from the mirror.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ValidationField("id", "event id is required")
	}
	cred, err := r.credential()
	if err != nil {
		return err
	}
	if err := r.api.DeleteEvent(ctx, cred.Token, id); err != nil {
		return r.fail(ctx, "delete event", id, err)
	}
	r.drop(id)
	r.logger.InfoContext(ctx, "event deleted", "event_id", id)
	return nil
}

// Snapshot returns a copy of the mirror.
func (r *EventRepository) Snapshot() []model.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneEvents(r.events)
}

// Find returns a copy of the mirrored event with id.
func (r *EventRepository) Find(id string) (model.Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexLocked(id); i >= 0 {
		return *r.events[i].Clone(), true
	}
	return model.Event{}, false
}

// Close stops reconciliation. Responses that arrive afterwards are returned
// to their callers but never written to the mirror.
func (r *EventRepository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.events = nil
}

func (r *EventRepository) credential() (domainauth.Credential, error) {
	cred, ok := r.session.Credential()
	if !ok || cred.Token == "" {
		return domainauth.Credential{}, apperrors.Auth("not signed in")
	}
	return cred, nil
}

// fail applies the error policy: auth failures end the session and
// not-found failures drop the stale entry. Anything else leaves the mirror alone.
func (r *EventRepository) fail(ctx context.Context, op, id string, err error) error {
	switch {
	case apperrors.IsAuth(err):
		r.logger.WarnContext(ctx, "credential rejected, ending session", "op", op)
		if cerr := r.session.Clear(ctx); cerr != nil {
			return errors.Join(err, cerr)
		}
	case apperrors.IsNotFound(err) && id != "":
		r.drop(id)
	default:
		r.logger.DebugContext(ctx, "event request failed", "op", op, "event_id", id, "error", err)
	}
	return err
}

// beginRead registers a read started at the current generation.
func (r *EventRepository) beginRead() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflight[r.gen]++
	return r.gen
}

func (r *EventRepository) endRead(start uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endReadLocked(start)
}

func (r *EventRepository) endReadLocked(start uint64) {
	if r.inflight[start]--; r.inflight[start] <= 0 {
		delete(r.inflight, start)
	}
	r.pruneLocked()
}

// pruneLocked drops journal entries no in-flight read can still need.
func (r *EventRepository) pruneLocked() {
	if len(r.inflight) == 0 {
		r.journal = nil
		return
	}
	oldest := r.gen
	for g := range r.inflight {
		oldest = min(oldest, g)
	}
	keep := r.journal[:0]
	for _, m := range r.journal {
		if m.gen > oldest {
			keep = append(keep, m)
		}
	}
	r.journal = keep
}

// replace installs a list snapshot taken at start, then replays the mutations
// confirmed since. A snapshot older than one already installed is discarded.
func (r *EventRepository) replace(start uint64, events []model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.endReadLocked(start)
	if r.closed || start < r.listedAt {
		return
	}
	r.listedAt = start
	r.events = cloneEvents(events)
	for _, m := range r.journal {
		if m.gen <= start {
			continue
		}
		if m.ev == nil {
			r.removeLocked(m.id)
		} else {
			r.putLocked(*m.ev)
		}
	}
}

// refresh applies a single-event read unless the event changed after start.
func (r *EventRepository) refresh(start uint64, ev model.Event) error {
	if ev.ID == "" {
		r.endRead(start)
		return apperrors.Internal("server returned an event without an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.endReadLocked(start)
	if r.closed {
		return nil
	}
	for _, m := range r.journal {
		if m.gen > start && m.id == ev.ID {
			return nil
		}
	}
	r.putLocked(ev)
	return nil
}

func (r *EventRepository) upsert(ev model.Event) error {
	if ev.ID == "" {
		return apperrors.Internal("server returned an event without an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.recordLocked(ev.ID, ev.Clone())
	r.putLocked(ev)
	return nil
}

func (r *EventRepository) drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.recordLocked(id, nil)
	r.removeLocked(id)
}

func (r *EventRepository) recordLocked(id string, ev *model.Event) {
	r.gen++
	if len(r.inflight) > 0 {
		r.journal = append(r.journal, mutation{gen: r.gen, id: id, ev: ev})
	}
}

func (r *EventRepository) putLocked(ev model.Event) {
	if i := r.indexLocked(ev.ID); i >= 0 {
		r.events[i] = *ev.Clone()
		return
	}
	r.events = append(r.events, *ev.Clone())
}

func (r *EventRepository) removeLocked(id string) {
	if i := r.indexLocked(id); i >= 0 {
		r.events = append(r.events[:i], r.events[i+1:]...)
	}
}

func (r *EventRepository) indexLocked(id string) int {
	for i := range r.events {
		if r.events[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneEvents(in []model.Event) []model.Event {
	out := make([]model.Event, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}
