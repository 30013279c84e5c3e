package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/auth"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/ui"
)

type env struct {
	mem *store.Memory
}

func newEnv() *env {
	return &env{mem: store.NewMemory()}
}

// session and list read the slots afresh, as the next invocation would.
func (e *env) session() *auth.Session { return auth.New(e.mem) }
func (e *env) list() *todos.List      { return todos.Open(e.mem) }

// run executes args against fresh stores over the same memory, as separate
// process invocations would.
func (e *env) run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	factory := func(cmd *cobra.Command, configPath string) (*Deps, error) {
		return &Deps{
			Session: auth.New(e.mem),
			Todos:   todos.Open(e.mem),
			Printer: ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), "mono"),
			Logger:  logging.Discard(),
		}, nil
	}
	root := NewRootCommand("test", factory)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), ExitCode(err)
}

func (e *env) login(t *testing.T) {
	t.Helper()
	_, _, code := e.run(t, "login", "--name", "Ann", "--email", "ann@x.com")
	require.Equal(t, ExitOK, code)
}

func TestLoginLogoutWhoami(t *testing.T) {
	e := newEnv()

	_, _, code := e.run(t, "whoami")
	assert.Equal(t, ExitUsage, code)

	out, _, code := e.run(t, "login", "--name", "Ann", "--email", "ann@x.com")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Logged in as Ann")

	out, _, code = e.run(t, "whoami")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "Ann <ann@x.com>\n", out)

	out, _, code = e.run(t, "logout")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Logged out")
	assert.False(t, e.session().LoggedIn())

	out, _, code = e.run(t, "logout")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Not logged in")
}

func TestLoginWhenAlreadyLoggedIn(t *testing.T) {
	e := newEnv()
	e.login(t)

	out, _, code := e.run(t, "login", "--name", "Bob", "--email", "bob@x.com")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Already logged in as Ann")
	u, _ := e.session().User()
	assert.Equal(t, "Ann", u.Name)
}

func TestLoginValidation(t *testing.T) {
	e := newEnv()

	_, stderr, code := e.run(t, "login", "--name", "An", "--email", "nope")

	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "name: Name must be at least 3 characters long")
	assert.Contains(t, stderr, "email: Invalid email")
	assert.False(t, e.session().LoggedIn())
}

func TestTodoCommandsRequireLogin(t *testing.T) {
	e := newEnv()

	for _, args := range [][]string{
		{"ls"},
		{"add", "Buy", "milk", "--due", "2024-01-01"},
		{"rm", "1"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, _, code := e.run(t, args...)
			assert.Equal(t, ExitUsage, code)
		})
	}
	assert.Equal(t, 0, e.list().Len())
}

func TestAddListRemove(t *testing.T) {
	e := newEnv()
	e.login(t)

	out, _, code := e.run(t, "add", "Buy", "milk", "--due", "2024-01-01")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, `Added "Buy milk" (due 2024-01-01)`)

	_, _, code = e.run(t, "add", "Pay bills", "--due", "2024-02-01")
	require.Equal(t, ExitOK, code)

	out, _, code = e.run(t, "ls")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Welcome, Ann!")
	assert.Contains(t, out, "2 todo(s)")
	assert.Less(t, strings.Index(out, "Buy milk"), strings.Index(out, "Pay bills"))

	out, _, code = e.run(t, "rm", "1")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, `Removed "Buy milk"`)

	items := e.list().Todos()
	require.Len(t, items, 1)
	assert.Equal(t, "Pay bills", items[0].Title)

	_, _, code = e.run(t, "rm", items[0].ID[:8])
	require.Equal(t, ExitOK, code)
	assert.Equal(t, 0, e.list().Len())

	out, _, _ = e.run(t, "ls")
	assert.Contains(t, out, "No todos found")
}

func TestAddValidation(t *testing.T) {
	e := newEnv()
	e.login(t)

	_, stderr, code := e.run(t, "add", "Hi", "--due", "someday")

	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "title: Title must be at least 3 characters long")
	assert.Contains(t, stderr, "dueDate: Invalid date")
	assert.Equal(t, 0, e.list().Len())
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	e := newEnv()
	e.login(t)
	require.NoError(t, e.list().Add(todos.New("Buy milk", "2024-01-01")))
	before, _, _ := e.mem.Get(todos.Slot)

	out, _, code := e.run(t, "rm", "does-not-exist")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, `No todo matches "does-not-exist"`)
	after, _, _ := e.mem.Get(todos.Slot)
	assert.Equal(t, before, after)
}

func TestUsageErrors(t *testing.T) {
	e := newEnv()
	e.login(t)

	tests := [][]string{
		{"add"},
		{"rm"},
		{"rm", "a", "b"},
		{"ls", "extra"},
		{"login", "--bogus"},
		{"stray"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, _, code := e.run(t, args...)
			assert.Equal(t, ExitUsage, code)
		})
	}
}

func TestFactoryErrorIsRuntimeError(t *testing.T) {
	root := NewRootCommand("test", func(*cobra.Command, string) (*Deps, error) {
		return nil, errors.New("disk on fire")
	})
	root.SetArgs([]string{"ls"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()

	assert.Equal(t, ExitError, ExitCode(err))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestConfigFlagReachesFactory(t *testing.T) {
	var got string
	root := NewRootCommand("test", func(cmd *cobra.Command, configPath string) (*Deps, error) {
		got = configPath
		mem := store.NewMemory()
		return &Deps{
			Session: auth.New(mem),
			Todos:   todos.Open(mem),
			Printer: ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), "mono"),
			Logger:  logging.Discard(),
		}, nil
	})
	root.SetArgs([]string{"--config", "/tmp/tada.yaml", "logout"})
	root.SetOut(&bytes.Buffer{})

	require.NoError(t, root.Execute())
	assert.Equal(t, "/tmp/tada.yaml", got)
}

func TestResolveTodo(t *testing.T) {
	l := todos.Open(store.NewMemory())
	require.NoError(t, l.Add(model.Todo{ID: "abcd-1", Title: "one", DueDate: "2024-01-01"}))
	require.NoError(t, l.Add(model.Todo{ID: "abcd-2", Title: "two", DueDate: "2024-01-01"}))
	require.NoError(t, l.Add(model.Todo{ID: "wxyz", Title: "three", DueDate: "2024-01-01"}))

	assert.Equal(t, "abcd-2", resolveTodo(l, "2"))
	assert.Equal(t, "wxyz", resolveTodo(l, "wxyz"))
	assert.Equal(t, "abcd", resolveTodo(l, "abcd"), "ambiguous prefix")
	assert.Equal(t, "abcd-1", resolveTodo(l, "abcd-1"))
	assert.Equal(t, "9", resolveTodo(l, "9"))
	assert.Equal(t, "w", resolveTodo(l, "w"), "prefix too short")
	assert.Equal(t, "", resolveTodo(l, ""))
}

func TestRemoveBlankArgument(t *testing.T) {
	e := newEnv()
	e.login(t)
	require.NoError(t, e.list().Add(todos.New("Buy milk", "2024-01-01")))

	for _, arg := range []string{"", "   "} {
		_, _, code := e.run(t, "rm", arg)
		assert.Equal(t, ExitUsage, code, "arg %q", arg)
	}
	assert.Equal(t, 1, e.list().Len())
}

func TestRemoveShortPrefixIsNoop(t *testing.T) {
	e := newEnv()
	e.login(t)
	require.NoError(t, e.list().Add(model.Todo{ID: "feedbeef", Title: "Buy milk", DueDate: "2024-01-01"}))

	out, _, code := e.run(t, "rm", "fee")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "No todo matches")
	assert.Equal(t, 1, e.list().Len())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("x")))
	assert.Equal(t, ExitUsage, ExitCode(codeError(ExitUsage, "bad")))
}
