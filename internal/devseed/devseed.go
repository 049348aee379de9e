// Package devseed loads demo accounts and events into a development API.
package devseed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sportsevents/eventdesk/internal/adapters/devapi"
	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
	"github.com/sportsevents/eventdesk/internal/ports"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

// OrganizerEmail is the account that owns the seeded events.
const OrganizerEmail = "olive@example.com"

// API is the remote surface the seeder drives.
type API interface {
	ports.AuthAPI
	ports.EventsAPI
	ports.UsersAPI
}

// Users returns the demo accounts to preload into the dev API.
// Organizer accounts cannot be created through registration.
func Users() []devapi.SeedUser {
	return []devapi.SeedUser{
		{FullName: "Olive Organizer", Email: OrganizerEmail, Password: DemoPassword, Role: domainauth.RoleOrganizer},
		{FullName: "Oscar Ortega", Email: "oscar@example.com", Password: DemoPassword, Role: domainauth.RoleOrganizer},
		{FullName: "Pat Runner", Email: "pat@example.com", Password: DemoPassword, Role: domainauth.RoleParticipant},
		{FullName: "Sam Swimmer", Email: "sam@example.com", Password: DemoPassword, Role: domainauth.RoleParticipant},
		{FullName: "Alex Cyclist", Email: "alex@example.com", Password: DemoPassword, Role: domainauth.RoleParticipant},
	}
}

type eventSeed struct {
	Title        string
	Description  string
	Location     string
	InDays       int
	Max          int
	Participants []string // emails
}

func defaultEvents() []eventSeed {
	return []eventSeed{
		{
			Title:        "City Marathon",
			Description:  "42km through the old town.",
			Location:     "Central Park",
			InDays:       14,
			Max:          50,
			Participants: []string{"pat@example.com", "alex@example.com"},
		},
		{
			Title:        "Open Water Swim",
			Description:  "1.5km lake crossing. Wetsuits allowed.",
			Location:     "North Lake",
			InDays:       21,
			Max:          20,
			Participants: []string{"sam@example.com"},
		},
		{
			Title:       "Gran Fondo",
			Description: "Hilly 120km ride.",
			Location:    "Velodrome",
			InDays:      30,
			Max:         2,
		},
	}
}

// Run signs in as the demo organizer and creates any missing demo events.
// Events are matched by title so repeated runs are idempotent.
func Run(ctx context.Context, api API, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	resp, err := api.Login(ctx, model.LoginRequest{Email: OrganizerEmail, Password: DemoPassword})
	if err != nil {
		return fmt.Errorf("login as %s: %w", OrganizerEmail, err)
	}

	users, err := api.ListUsers(ctx, resp.Token)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	byEmail := make(map[string]string, len(users))
	for _, u := range users {
		byEmail[u.Email] = u.ID
	}

	existing, err := api.ListEvents(ctx, resp.Token)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, e := range existing {
		titles[e.Title] = true
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	failures := 0
	for _, seed := range defaultEvents() {
		if titles[seed.Title] {
			logger.InfoContext(ctx, "event already exists", "title", seed.Title)
			continue
		}
		draft, derr := seed.draft(today, byEmail)
		if derr != nil {
			logger.ErrorContext(ctx, "failed to prepare event", "title", seed.Title, "error", derr)
			failures++
			continue
		}
		created, cerr := api.CreateEvent(ctx, resp.Token, ports.EventWrite{Draft: draft})
		if cerr != nil {
			logger.ErrorContext(ctx, "failed to create event", "title", seed.Title, "error", cerr)
			failures++
			continue
		}
		logger.InfoContext(ctx, "created event", "title", seed.Title, "id", created.ID)
	}

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func (s eventSeed) draft(today time.Time, byEmail map[string]string) (model.EventDraft, error) {
	ids := make([]string, 0, len(s.Participants))
	for _, email := range s.Participants {
		id, ok := byEmail[email]
		if !ok {
			return model.EventDraft{}, fmt.Errorf("unknown participant %s", email)
		}
		ids = append(ids, id)
	}
	return model.EventDraft{
		Title:           s.Title,
		Description:     s.Description,
		Location:        s.Location,
		Date:            today.AddDate(0, 0, s.InDays).Add(9 * time.Hour),
		MaxParticipants: s.Max,
		ParticipantIDs:  ids,
	}, nil
}
