package main

import (
	"github.com/spf13/cobra"
)

func newParticipantsCommand(env *commandEnv) *cobra.Command {
	var eventID string
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "List users who can be registered in events",
		Long: `List users who can be registered in events.

With --event the list marks the event's current participants.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, func(c *commandContext) error {
				if eventID == "" {
					users, err := c.App.Participants.Participants(c.Ctx)
					if err != nil {
						return err
					}
					return printUsers(c, users, nil)
				}
				st, err := c.App.Participants.LoadEditor(c.Ctx, eventID)
				if err != nil {
					return err
				}
				if c.Format != "json" {
					if err := writef(c.Out, "%s (%d/%d)\n", st.Event.Title, len(st.Selected), st.Event.MaxParticipants); err != nil {
						return err
					}
				}
				return printUsers(c, st.Candidates, st.Selected.Has)
			})
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "mark the participants of this event")
	return cmd
}
