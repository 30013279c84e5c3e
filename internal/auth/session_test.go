package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

var ann = model.User{Name: "Ann", Email: "ann@x.com"}

func TestStartsLoggedOut(t *testing.T) {
	s := New(store.NewMemory())

	_, ok := s.User()
	assert.False(t, ok)
	assert.False(t, s.LoggedIn())
	assert.Nil(t, s.State().User)
}

func TestLoginThenLogout(t *testing.T) {
	s := New(store.NewMemory())

	s.Login(ann)
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, ann, got)

	s.Logout()
	_, ok = s.User()
	assert.False(t, ok)
}

func TestLoginOverwrites(t *testing.T) {
	s := New(store.NewMemory())

	s.Login(ann)
	s.Login(model.User{Name: "Bob", Email: "bob@x.com"})

	got, _ := s.User()
	assert.Equal(t, "Bob", got.Name)
}

func TestSnapshotLayout(t *testing.T) {
	mem := store.NewMemory()
	s := New(mem)

	s.Login(ann)
	raw, found, err := mem.Get(Slot)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"state":{"user":{"name":"Ann","email":"ann@x.com"}},"version":0}`, string(raw))

	s.Logout()
	raw, _, _ = mem.Get(Slot)
	assert.JSONEq(t, `{"state":{"user":null},"version":0}`, string(raw))
}

func TestSessionSurvivesRestart(t *testing.T) {
	mem := store.NewMemory()
	New(mem).Login(ann)

	got, ok := New(mem).User()
	require.True(t, ok)
	assert.Equal(t, ann, got)
}

func TestStateIsACopy(t *testing.T) {
	s := New(store.NewMemory())
	s.Login(ann)

	st := s.State()
	st.User.Name = "Eve"

	got, _ := s.User()
	assert.Equal(t, "Ann", got.Name)
}

func TestSubscribeSeesLoginAndLogout(t *testing.T) {
	s := New(store.NewMemory())

	var seen []bool
	unsubscribe := s.Subscribe(func(state, prev State) {
		seen = append(seen, state.User != nil)
	})
	s.Login(ann)
	s.Logout()
	unsubscribe()
	s.Login(ann)

	assert.Equal(t, []bool{true, false}, seen)
}
