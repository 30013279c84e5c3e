package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/guard"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/validate"
)

// Focus stops on the todo page: the two add-form inputs, then the list.
const (
	focusTitle = iota
	focusDue
	focusList
	focusStops
)

func newTodoForm() form {
	return newForm(func(v []string) error {
		_, err := validate.Todo(validate.TodoInput{Title: v[0], DueDate: v[1]})
		return err
	},
		[3]string{"Title", "title", "Buy milk"},
		[3]string{"Due date", "dueDate", "2024-01-01"},
	)
}

func (m Model) updateTodos(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.SignOut):
		m.session.Logout()
		m.flash = "Logged out"
		return m, nil
	case key.Matches(msg, keys.Back):
		return m.navigate(guard.Home)
	case msg.String() == "tab":
		return m, m.focusTodo((m.todoFocus + 1) % focusStops)
	case msg.String() == "shift+tab":
		return m, m.focusTodo((m.todoFocus + focusStops - 1) % focusStops)
	}

	if m.todoFocus == focusList {
		if key.Matches(msg, keys.Delete) {
			m.deleteSelected()
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, keys.Submit) {
		if !m.addForm.submit() {
			return m, nil
		}
		v := m.addForm.values()
		t := todos.New(v[0], v[1])
		if err := m.todos.Add(t); err != nil {
			m.logger.Error("add todo failed",
				slog.String("operation", "Add"),
				slog.String("todo_id", t.ID),
				slog.Any("error", err),
			)
			m.flash = err.Error()
			return m, nil
		}
		m.addForm.reset()
		m.refresh()
		m.list.Select(len(m.list.Items()) - 1)
		return m, m.focusTodo(focusTitle)
	}
	return m, m.addForm.update(msg)
}

func (m *Model) focusTodo(stop int) tea.Cmd {
	m.todoFocus = stop
	*m.listActive = stop == focusList
	if stop == focusList {
		return m.addForm.setFocus(-1)
	}
	return m.addForm.setFocus(stop)
}

func (m *Model) deleteSelected() {
	it, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return
	}
	if m.todos.Remove(it.todo.ID) {
		m.flash = "Deleted " + it.todo.Title
	}
	m.refresh()
}

func (m Model) viewTodos() string {
	var b strings.Builder
	name := ""
	if u, ok := m.session.User(); ok {
		name = u.Name
	}
	b.WriteString(m.styles.title.Render("Welcome, "+name+"!") + "\n\n")
	b.WriteString(m.addForm.view(m.styles))
	b.WriteString("\n")
	if len(m.list.Items()) == 0 {
		b.WriteString(m.styles.muted.Render("No todos found") + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}
	b.WriteString("\n" + m.styles.help.Render(helpLine(keys.Next, keys.Submit, keys.Delete, keys.SignOut, keys.Back)))
	return b.String()
}
