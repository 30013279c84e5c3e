// Package cli is tada's command line: the bare command opens the TUI and the
// subcommands drive the same stores one action at a time.
package cli

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/auth"
	"github.com/Makepad-fr/tada/internal/guard"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Deps is what every command works on.
type Deps struct {
	Session *auth.Session
	Todos   *todos.List
	Printer *ui.Printer
	Logger  *slog.Logger
}

// Factory builds the dependencies for cmd once flags are parsed.
// configPath is the --config value, possibly empty.
type Factory func(cmd *cobra.Command, configPath string) (*Deps, error)

// NewRootCommand returns the tada command tree.
func NewRootCommand(version string, factory Factory) *cobra.Command {
	var (
		configPath string
		deps       *Deps
	)

	root := &cobra.Command{
		Use:           "tada",
		Short:         "A tiny todo list with a mock login",
		Long:          "tada keeps a todo list and a signed-in user on disk. Run it without a subcommand for the interactive UI.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			d, err := factory(cmd, configPath)
			if err != nil {
				return codeError(ExitError, "%s", err)
			}
			deps = d
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := tui.New(deps.Session, deps.Todos, deps.Printer.Theme(), deps.Logger)
			if err := tui.Run(cmd.Context(), m,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			); err != nil {
				return codeError(ExitError, "tui: %s", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $TADA_CONFIG or <user config dir>/tada/config.yaml)")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return codeError(ExitUsage, "%s\nusage: %s", err, cmd.UseLine())
	})

	get := func() *Deps { return deps }
	root.AddCommand(
		newLoginCommand(get),
		newLogoutCommand(get),
		newWhoamiCommand(get),
		newAddCommand(get),
		newListCommand(get),
		newRemoveCommand(get),
	)
	return root
}

func currentUser(s *auth.Session) *model.User {
	u, ok := s.User()
	if !ok {
		return nil
	}
	return &u
}

// requireLogin applies the todo page guard to a command.
func requireLogin(d *Deps) (model.User, error) {
	if guard.Check(guard.Todos, currentUser(d.Session)).Outcome == guard.RedirectToLogin {
		return model.User{}, codeError(ExitUsage, "not logged in; run: tada login --name <name> --email <email>")
	}
	u, _ := d.Session.User()
	return u, nil
}
