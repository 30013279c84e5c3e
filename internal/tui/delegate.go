package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

// todoItem adapts model.Todo to list.Item.
type todoItem struct {
	todo model.Todo
}

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return i.todo.DueDate }
func (i todoItem) FilterValue() string { return i.todo.Title }

func toItems(todos []model.Todo) []list.Item {
	out := make([]list.Item, len(todos))
	for i, t := range todos {
		out[i] = todoItem{todo: t}
	}
	return out
}

// itemDelegate renders one todo per line: title, then due date.
type itemDelegate struct {
	styles styles
	active *bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s %s  %s", d.styles.bullet, it.todo.Title, d.styles.muted.Render("due "+it.todo.DueDate))
	prefix := "  "
	if index == m.Index() && d.active != nil && *d.active {
		prefix = d.styles.selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}
