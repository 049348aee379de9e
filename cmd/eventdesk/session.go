package main

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// readPassword returns flagValue, or the first line of in when the flag is empty.
func readPassword(in io.Reader, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCommand(env *commandEnv) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Long: `Sign in with email and password.

The password is read from stdin when --password is omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd.InOrStdin(), password)
			if err != nil {
				return err
			}
			return env.withApp(cmd, func(c *commandContext) error {
				cred, err := c.App.Auth.Login(c.Ctx, email, pw)
				if err != nil {
					return err
				}
				if c.Format == "json" {
					return writeJSON(c.Out, map[string]string{"role": string(cred.Role), "userId": cred.UserID})
				}
				return writef(c.Out, "Signed in as %s (%s).\n", cred.UserID, cred.Role)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (default: read from stdin)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCommand(env *commandEnv) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a participant account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd.InOrStdin(), password)
			if err != nil {
				return err
			}
			return env.withApp(cmd, func(c *commandContext) error {
				user, err := c.App.Auth.Register(c.Ctx, name, email, pw)
				if err != nil {
					return err
				}
				if c.Format == "json" {
					return writeJSON(c.Out, user)
				}
				return writef(c.Out, "Registered %s. Sign in with \"eventdesk login --email %s\".\n", user.FullName, user.Email)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password, at least 8 characters (default: read from stdin)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, func(c *commandContext) error {
				if err := c.App.Auth.Logout(c.Ctx); err != nil {
					return err
				}
				return writef(c.Out, "Signed out.\n")
			})
		},
	}
}

func newWhoamiCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, func(c *commandContext) error {
				st := c.App.Session.Status()
				if c.Format == "json" {
					return writeJSON(c.Out, map[string]any{
						"authenticated": st.IsAuthenticated(),
						"role":          string(st.Role()),
						"userId":        c.App.Session.UserID(),
					})
				}
				if !st.IsAuthenticated() {
					return writef(c.Out, "Not signed in.\n")
				}
				return writef(c.Out, "Signed in as %s (%s) on %s.\n", c.App.Session.UserID(), st.Role(), c.App.Client.Origin())
			})
		},
	}
}
