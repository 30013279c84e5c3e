// Package todos keeps the ordered todo collection.
package todos

import (
	"errors"
	"fmt"

	"github.com/Makepad-fr/tada/internal/id"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// Slot is the storage slot the list persists to.
const Slot = "todo-store"

var (
	ErrEmptyID     = errors.New("todo id is empty")
	ErrDuplicateID = errors.New("todo id already exists")
)

// State is the persisted shape of the list, in insertion order.
type State struct {
	Todos []model.Todo `json:"todos"`
}

// List is the todo store.
type List struct {
	store *store.Store[State]
}

// New builds a todo with a freshly generated id.
func New(title, dueDate string) model.Todo {
	return model.Todo{ID: id.New(), Title: title, DueDate: dueDate}
}

// Open returns a list persisted in storage under Slot.
func Open(storage store.Storage, opts ...store.Option) *List {
	return &List{store: store.New(storage, Slot, State{Todos: []model.Todo{}}, opts...)}
}

// Add appends t. The id must be non-empty and not already present.
func (l *List) Add(t model.Todo) error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if _, ok := l.Find(t.ID); ok {
		return fmt.Errorf("add %s: %w", t.ID, ErrDuplicateID)
	}
	l.store.SetState(func(s State) State {
		next := make([]model.Todo, 0, len(s.Todos)+1)
		next = append(next, s.Todos...)
		return State{Todos: append(next, t)}
	})
	return nil
}

// Remove deletes the todo with the given id and reports whether it existed.
// An unknown id changes nothing and notifies no one.
func (l *List) Remove(todoID string) bool {
	if _, ok := l.Find(todoID); !ok {
		return false
	}
	l.store.SetState(func(s State) State {
		next := make([]model.Todo, 0, len(s.Todos))
		for _, t := range s.Todos {
			if t.ID != todoID {
				next = append(next, t)
			}
		}
		return State{Todos: next}
	})
	return true
}

// Todos returns a copy of the collection.
func (l *List) Todos() []model.Todo {
	s := l.store.GetState()
	out := make([]model.Todo, len(s.Todos))
	copy(out, s.Todos)
	return out
}

func (l *List) Len() int {
	return len(l.store.GetState().Todos)
}

func (l *List) Find(todoID string) (model.Todo, bool) {
	for _, t := range l.store.GetState().Todos {
		if t.ID == todoID {
			return t, true
		}
	}
	return model.Todo{}, false
}

// Subscribe registers fn for every list change.
func (l *List) Subscribe(fn store.Listener[State]) (unsubscribe func()) {
	return l.store.Subscribe(fn)
}
