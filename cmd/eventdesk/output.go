package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sportsevents/eventdesk/internal/domain/model"
)

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEvents(c *commandContext, events []model.Event) error {
	if c.Format == "json" {
		return writeJSON(c.Out, events)
	}
	if len(events) == 0 {
		return writef(c.Out, "No events found.\n")
	}
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tTITLE\tDATE\tLOCATION\tPARTICIPANTS\n"); err != nil {
		return err
	}
	for _, e := range events {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%d/%d\n",
			e.ID, e.Title, formatDate(e.Date), e.Location, len(e.Participants), e.MaxParticipants); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printEvent(c *commandContext, e model.Event) error {
	if c.Format == "json" {
		return writeJSON(c.Out, e)
	}
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", e.ID},
		{"Title", e.Title},
		{"Description", e.Description},
		{"Location", e.Location},
		{"Date", formatDate(e.Date)},
		{"Capacity", fmt.Sprintf("%d/%d", len(e.Participants), e.MaxParticipants)},
	}
	if e.Image != nil {
		rows = append(rows, [2]string{"Image", e.Image.URL})
	}
	names := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		names = append(names, participantLabel(p))
	}
	rows = append(rows, [2]string{"Participants", strings.Join(names, ", ")})
	for _, r := range rows {
		if err := writef(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printUsers(c *commandContext, users []model.User, selected func(id string) bool) error {
	if c.Format == "json" {
		return writeJSON(c.Out, users)
	}
	if len(users) == 0 {
		return writef(c.Out, "No participants found.\n")
	}
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "\tID\tNAME\tEMAIL\n"); err != nil {
		return err
	}
	for _, u := range users {
		mark := " "
		if selected != nil && selected(u.ID) {
			mark = "x"
		}
		if err := writef(tw, "[%s]\t%s\t%s\t%s\n", mark, u.ID, u.FullName, u.Email); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func participantLabel(p model.ParticipantRef) string {
	switch {
	case p.FullName != "":
		return p.FullName
	case p.Email != "":
		return p.Email
	default:
		return p.ID
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
