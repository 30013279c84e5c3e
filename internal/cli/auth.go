package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/guard"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/validate"
)

func newLoginCommand(deps func() *Deps) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "login --name <name> --email <email>",
		Short: "Sign in (any valid name and email is accepted)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			if guard.Check(guard.Login, currentUser(d.Session)).Redirected() {
				u, _ := d.Session.User()
				d.Printer.Info(fmt.Sprintf("Already logged in as %s", u.Name))
				return nil
			}

			in, err := validate.Login(validate.LoginInput{
				Name:  strings.TrimSpace(name),
				Email: strings.TrimSpace(email),
			})
			if err != nil {
				return reportValidation(d, err)
			}
			d.Session.Login(model.User{Name: in.Name, Email: in.Email})
			d.Logger.Info("logged in", slog.String("operation", "Login"), slog.String("email", in.Email))
			d.Printer.OK("Logged in as " + in.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (at least 3 characters)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLogoutCommand(deps func() *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			if !d.Session.LoggedIn() {
				d.Printer.Info("Not logged in")
				return nil
			}
			d.Session.Logout()
			d.Printer.OK("Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(deps func() *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			u, err := requireLogin(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
}

// reportValidation prints every field message and returns a usage error.
func reportValidation(d *Deps, err error) error {
	var verr *validate.Error
	if !errors.As(err, &verr) {
		return codeError(ExitError, "%s", err)
	}
	for _, f := range verr.Fields {
		d.Printer.Fail(f.Field + ": " + f.Message)
	}
	return codeError(ExitUsage, "invalid input")
}
