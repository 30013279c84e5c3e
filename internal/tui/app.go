// Package tui is the interactive terminal front end: a home page, a login
// form and the todo page, switched by the access guard after every update.
package tui

import (
	"context"
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/auth"
	"github.com/Makepad-fr/tada/internal/guard"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/ui"
)

// storeChangedMsg is delivered after the session or the todo list changed.
type storeChangedMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	session *auth.Session
	todos   *todos.List
	logger  *slog.Logger
	styles  styles

	page  guard.Page
	flash string

	login      form
	addForm    form
	list       list.Model
	listActive *bool
	todoFocus  int

	changes chan struct{}
	done    chan struct{}
	once    *sync.Once
	unsubs  []func()
}

// New builds the model on the given stores and subscribes to both. Call
// Close when the program is done.
func New(session *auth.Session, todoList *todos.List, theme ui.Theme, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		session:    session,
		todos:      todoList,
		logger:     logger,
		styles:     newStyles(theme),
		page:       guard.Home,
		login:      newLoginForm(),
		addForm:    newTodoForm(),
		listActive: new(bool),
		changes:    make(chan struct{}, 1),
		done:       make(chan struct{}),
		once:       new(sync.Once),
	}
	m.list = newTodoList(m.styles, m.listActive)

	notify := func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	}
	m.unsubs = append(m.unsubs,
		session.Subscribe(func(auth.State, auth.State) { notify() }),
		todoList.Subscribe(func(todos.State, todos.State) { notify() }),
	)
	m.refresh()
	return m
}

func newTodoList(s styles, active *bool) list.Model {
	l := list.New(nil, itemDelegate{styles: s, active: active}, 60, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = s.help
	return l
}

// Close unsubscribes from the stores and releases a pending waitForChange.
// It is safe to call more than once.
func (m Model) Close() {
	m.once.Do(func() {
		for _, u := range m.unsubs {
			u()
		}
		close(m.done)
	})
}

// Page returns the page currently shown.
func (m Model) Page() guard.Page { return m.page }

// waitForChange blocks until a store reports a change or the model is
// closed. It is re-armed after every delivery.
func waitForChange(ch <-chan struct{}, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return storeChangedMsg{}
		case <-done:
			return nil
		}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes, m.done)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.page
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(max(20, msg.Width-8), max(3, msg.Height-18))
	case storeChangedMsg:
		m.refresh()
		cmd = waitForChange(m.changes, m.done)
	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
		m.flash = ""
		switch m.page {
		case guard.Home:
			m, cmd = m.updateHome(msg)
		case guard.Login:
			m, cmd = m.updateLogin(msg)
		case guard.Todos:
			m, cmd = m.updateTodos(msg)
		}
	default:
		switch m.page {
		case guard.Login:
			cmd = m.login.update(msg)
		case guard.Todos:
			cmd = m.addForm.update(msg)
		}
	}

	m.page = guard.Resolve(m.page, m.user())
	if m.page != before {
		cmd = tea.Batch(cmd, m.enter(m.page))
	}
	return m, cmd
}

func (m Model) View() string {
	var body string
	switch m.page {
	case guard.Login:
		body = m.viewLogin()
	case guard.Todos:
		body = m.viewTodos()
	default:
		body = m.viewHome()
	}
	if m.flash != "" {
		body += "\n\n" + m.styles.accent.Render(m.flash)
	}
	return m.styles.frame.Render(body)
}

// navigate asks for page p; the guard may still send the user elsewhere.
func (m Model) navigate(p guard.Page) (Model, tea.Cmd) {
	m.page = p
	return m, nil
}

// enter prepares a page that just became visible.
func (m *Model) enter(p guard.Page) tea.Cmd {
	switch p {
	case guard.Login:
		m.login.reset()
		return m.login.setFocus(0)
	case guard.Todos:
		m.refresh()
		return m.focusTodo(focusTitle)
	}
	return nil
}

func (m *Model) refresh() {
	items := toItems(m.todos.Todos())
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m Model) user() *model.User {
	u, ok := m.session.User()
	if !ok {
		return nil
	}
	return &u
}

// Run starts the program on the alternate screen and blocks until it quits
// or ctx is cancelled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	defer m.Close()
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
