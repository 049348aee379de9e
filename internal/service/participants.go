package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/errgroup"

	"github.com/sportsevents/eventdesk/internal/domain/model"
	"github.com/sportsevents/eventdesk/internal/domain/selection"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// DefaultParticipantFilter keeps the users eligible for event registration.
const DefaultParticipantFilter = "[?role=='Participant']"

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ParticipantFilter selects participants out of the full user list.
type ParticipantFilter struct {
	Expr      string            // Optional: defaults to DefaultParticipantFilter
	Evaluator JMESPathEvaluator // Optional
}

// ParticipantDirectoryOptions groups dependencies for ParticipantDirectory.
type ParticipantDirectoryOptions struct {
	Users  ports.UsersAPI   // Required
	Events *EventRepository // Required: event lookups and the session token
	Filter ParticipantFilter
}

// ParticipantDirectory lists registrable participants and prepares event editors.
type ParticipantDirectory struct {
	users  ports.UsersAPI
	events *EventRepository
	expr   string
	jems   JMESPathEvaluator
}

// NewParticipantDirectory constructs a directory, rejecting an invalid filter expression.
func NewParticipantDirectory(opts ParticipantDirectoryOptions) (*ParticipantDirectory, error) {
	if opts.Users == nil {
		panic("UsersAPI is required")
	}
	if opts.Events == nil {
		panic("EventRepository is required")
	}
	jems := opts.Filter.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	expr := strings.TrimSpace(opts.Filter.Expr)
	if expr == "" {
		expr = DefaultParticipantFilter
	}
	if err := jems.Validate(expr); err != nil {
		return nil, fmt.Errorf("participant filter %q: %w", expr, err)
	}
	return &ParticipantDirectory{users: opts.Users, events: opts.Events, expr: expr, jems: jems}, nil
}

// Participants returns the users the filter keeps, in server order.
func (d *ParticipantDirectory) Participants(ctx context.Context) ([]model.User, error) {
	cred, err := d.events.credential()
	if err != nil {
		return nil, err
	}
	users, err := d.users.ListUsers(ctx, cred.Token)
	if err != nil {
		return nil, d.events.fail(ctx, "list users", "", err)
	}
	return d.filter(users)
}

// filter runs the expression over the JSON form of users and decodes the result back.
func (d *ParticipantDirectory) filter(users []model.User) ([]model.User, error) {
	raw, err := json.Marshal(users)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode users")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode users")
	}

	res, err := d.jems.Evaluate(d.expr, doc)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "evaluate participant filter")
	}
	if res == nil {
		return []model.User{}, nil
	}
	out, err := json.Marshal(res)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode filter result")
	}
	filtered := []model.User{}
	if err := json.Unmarshal(out, &filtered); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "participant filter must yield a list of users")
	}
	return filtered, nil
}

// EditorState is everything an event editor needs up front.
type EditorState struct {
	Event      model.Event
	Candidates []model.User
	Selected   selection.Set
}

// LoadEditor fetches the event and the candidate participants concurrently and
// seeds the selection with the event's current participants.
func (d *ParticipantDirectory) LoadEditor(ctx context.Context, eventID string) (EditorState, error) {
	var (
		ev         model.Event
		candidates []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ev, err = d.events.Get(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = d.Participants(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return EditorState{}, err
	}
	return EditorState{
		Event:      ev,
		Candidates: candidates,
		Selected:   selection.New(ev.ParticipantIDs()...),
	}, nil
}
