// Package auth keeps the logged-in user. Authentication is a mock: any
// user that passes login validation is accepted.
package auth

import (
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// Slot is the storage slot the session persists to.
const Slot = "user-store"

// State is the persisted shape of the session. User is nil when logged out.
type State struct {
	User *model.User `json:"user"`
}

// Session is the user store.
type Session struct {
	store *store.Store[State]
}

// New returns a session persisted in storage under Slot.
func New(storage store.Storage, opts ...store.Option) *Session {
	return &Session{store: store.New(storage, Slot, State{}, opts...)}
}

// Login replaces the current user, whether or not someone is logged in.
func (s *Session) Login(u model.User) {
	s.store.SetState(func(State) State {
		return State{User: &u}
	})
}

// Logout clears the current user. It writes even when nobody is logged in.
func (s *Session) Logout() {
	s.store.SetState(func(State) State {
		return State{}
	})
}

// User returns the logged-in user, if any.
func (s *Session) User() (model.User, bool) {
	st := s.store.GetState()
	if st.User == nil {
		return model.User{}, false
	}
	return *st.User, true
}

// LoggedIn reports whether a user is present.
func (s *Session) LoggedIn() bool {
	_, ok := s.User()
	return ok
}

// State returns a copy of the current state.
func (s *Session) State() State {
	st := s.store.GetState()
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Subscribe registers fn for every session change.
func (s *Session) Subscribe(fn store.Listener[State]) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}
