package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
	"github.com/sportsevents/eventdesk/internal/domain/selection"
	"github.com/sportsevents/eventdesk/internal/ports"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339)", raw)
}

func newEventsCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and manage events",
	}
	cmd.AddCommand(
		newEventsListCommand(env),
		newEventsShowCommand(env),
		newEventsCreateCommand(env),
		newEventsUpdateCommand(env),
		newEventsDeleteCommand(env),
	)
	return cmd
}

func newEventsListCommand(env *commandEnv) *cobra.Command {
	var registered bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your events",
		Long: `List events visible to the signed-in user.

Organizers see the events they own. Participants see the events they are
registered in. --registered forces the participant view.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, func(c *commandContext) error {
				list := c.App.Events.List
				if registered || c.App.Session.Status().Role() == domainauth.RoleParticipant {
					list = c.App.Events.ListForParticipant
				}
				events, err := list(c.Ctx)
				if err != nil {
					return err
				}
				return printEvents(c, events)
			})
		},
	}
	cmd.Flags().BoolVar(&registered, "registered", false, "list the events you are registered in")
	return cmd
}

func newEventsShowCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, func(c *commandContext) error {
				ev, err := c.App.Events.Get(c.Ctx, args[0])
				if err != nil {
					return err
				}
				return printEvent(c, ev)
			})
		},
	}
}

// eventFlags are the editable fields shared by create and update.
type eventFlags struct {
	title        string
	description  string
	location     string
	date         string
	max          int
	participants []string
	toggle       []string
	image        string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "event title")
	fs.StringVar(&f.description, "description", "", "event description")
	fs.StringVar(&f.location, "location", "", "event location")
	fs.StringVar(&f.date, "date", "", "event date (YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339)")
	fs.IntVar(&f.max, "max", 0, "maximum number of participants")
	fs.StringSliceVar(&f.participants, "participant", nil, "participant id; repeat to set the full list")
	fs.StringSliceVar(&f.toggle, "toggle", nil, "participant id to add or remove from the current list")
	fs.StringVar(&f.image, "image", "", "path of an image to upload")
}

// apply overlays the flags the user set onto draft.
func (f *eventFlags) apply(cmd *cobra.Command, draft *model.EventDraft) error {
	fs := cmd.Flags()
	if fs.Changed("title") {
		draft.Title = f.title
	}
	if fs.Changed("description") {
		draft.Description = f.description
	}
	if fs.Changed("location") {
		draft.Location = f.location
	}
	if fs.Changed("date") {
		d, err := parseDate(f.date)
		if err != nil {
			return err
		}
		draft.Date = d
	}
	if fs.Changed("max") {
		draft.MaxParticipants = f.max
	}

	sel := selection.New(draft.ParticipantIDs...)
	if fs.Changed("participant") {
		sel = selection.New(f.participants...)
	}
	for _, id := range f.toggle {
		sel = selection.Toggle(sel, id)
	}
	draft.ParticipantIDs = sel.IDs()
	return nil
}

// openImage returns the upload for path and a function closing the file.
func (f *eventFlags) openImage() (*ports.ImageUpload, func(), error) {
	if f.image == "" {
		return nil, func() {}, nil
	}
	file, err := os.Open(f.image)
	if err != nil {
		return nil, nil, fmt.Errorf("open image: %w", err)
	}
	return &ports.ImageUpload{Filename: filepath.Base(f.image), Content: file}, func() { _ = file.Close() }, nil
}

func newEventsCreateCommand(env *commandEnv) *cobra.Command {
	var flags eventFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event (organizers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var draft model.EventDraft
			if err := flags.apply(cmd, &draft); err != nil {
				return err
			}
			image, closeImage, err := flags.openImage()
			if err != nil {
				return err
			}
			defer closeImage()

			return env.withApp(cmd, func(c *commandContext) error {
				ev, err := c.App.Events.Create(c.Ctx, draft, image)
				if err != nil {
					return err
				}
				return printEvent(c, ev)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newEventsUpdateCommand(env *commandEnv) *cobra.Command {
	var flags eventFlags
	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Edit an event (organizers)",
		Long: `Edit an event. Fields whose flags are omitted keep their current value,
and the full record is then sent as a replacement. The current image is kept
unless --image uploads a new one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, closeImage, err := flags.openImage()
			if err != nil {
				return err
			}
			defer closeImage()

			return env.withApp(cmd, func(c *commandContext) error {
				current, err := c.App.Events.Get(c.Ctx, args[0])
				if err != nil {
					return err
				}
				draft := model.DraftFromEvent(&current)
				if err := flags.apply(cmd, &draft); err != nil {
					return err
				}
				ev, err := c.App.Events.Update(c.Ctx, current.ID, draft, image)
				if err != nil {
					return err
				}
				return printEvent(c, ev)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newEventsDeleteCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event (organizers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, func(c *commandContext) error {
				if err := c.App.Events.Delete(c.Ctx, args[0]); err != nil {
					return err
				}
				return writef(c.Out, "Deleted %s.\n", args[0])
			})
		},
	}
}
