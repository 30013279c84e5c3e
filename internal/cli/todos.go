package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/validate"
)

func newAddCommand(deps func() *Deps) *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "add <title...> --due <date>",
		Short: "Add a todo (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			if _, err := requireLogin(d); err != nil {
				return err
			}
			in, err := validate.Todo(validate.TodoInput{
				Title:   strings.TrimSpace(strings.Join(args, " ")),
				DueDate: strings.TrimSpace(due),
			})
			if err != nil {
				return reportValidation(d, err)
			}
			t := todos.New(in.Title, in.DueDate)
			if err := d.Todos.Add(t); err != nil {
				d.Logger.Error("add todo failed",
					slog.String("operation", "Add"),
					slog.String("todo_id", t.ID),
					slog.Any("error", err),
				)
				return codeError(ExitError, "add: %s", err)
			}
			d.Printer.OK(fmt.Sprintf("Added %q (due %s)", t.Title, t.DueDate))
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date, e.g. 2024-01-31")
	return cmd
}

func newListCommand(deps func() *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			u, err := requireLogin(d)
			if err != nil {
				return err
			}
			items := d.Todos.Todos()
			theme := d.Printer.Theme()

			lines := []string{theme.Muted.Render(fmt.Sprintf("%d todo(s)", len(items))), ""}
			if len(items) == 0 {
				lines = append(lines, "No todos found")
			}
			for i, t := range items {
				lines = append(lines, fmt.Sprintf("%2d. %s  %s  %s",
					i+1, t.Title,
					theme.Accent.Render("due "+t.DueDate),
					theme.Muted.Render(shortID(t.ID)),
				))
			}
			lines = append(lines, "", theme.Help.Render("Tip: tada add Buy milk --due 2024-01-01"))
			d.Printer.Panel("Welcome, "+u.Name+"!", lines)
			return nil
		},
	}
}

func newRemoveCommand(deps func() *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|index>",
		Aliases: []string{"delete"},
		Short:   "Remove a todo by id or 1-based index",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			if _, err := requireLogin(d); err != nil {
				return err
			}
			if strings.TrimSpace(args[0]) == "" {
				return codeError(ExitUsage, "todo id or index must not be empty\nusage: %s", cmd.UseLine())
			}
			target := resolveTodo(d.Todos, args[0])
			t, _ := d.Todos.Find(target)
			if !d.Todos.Remove(target) {
				d.Printer.Info(fmt.Sprintf("No todo matches %q", args[0]))
				return nil
			}
			d.Printer.OK(fmt.Sprintf("Removed %q", t.Title))
			return nil
		},
	}
}

// minPrefix is the shortest id prefix rm accepts.
const minPrefix = 4

// resolveTodo maps a 1-based index to an id; anything else is taken as an
// id prefix of at least minPrefix characters when it is unambiguous, or as a
// full id.
func resolveTodo(l *todos.List, arg string) string {
	items := l.Todos()
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(items) {
		return items[n-1].ID
	}
	if len(arg) < minPrefix {
		return arg
	}
	var match string
	for _, t := range items {
		if t.ID == arg {
			return arg
		}
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return arg
			}
			match = t.ID
		}
	}
	if match != "" {
		return match
	}
	return arg
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
