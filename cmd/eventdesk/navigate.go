package main

import (
	"github.com/spf13/cobra"

	"github.com/sportsevents/eventdesk/internal/routeguard"
)

func newNavigateCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "navigate <path>",
		Short: "Check whether the current session may open a page",
		Long: `Evaluate the route guard for path against the current session and print
the decision and the page that would be shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, func(c *commandContext) error {
				d, target := c.App.Navigator.Navigate(args[0])
				if c.Format == "json" {
					return writeJSON(c.Out, map[string]string{"decision": d.String(), "target": target})
				}
				if d == routeguard.Allow {
					return writef(c.Out, "%s: %s\n", d, target)
				}
				return writef(c.Out, "%s: %s -> %s\n", d, args[0], target)
			})
		},
	}
}
