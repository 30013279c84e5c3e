// Package store holds one piece of application state in memory, tells
// subscribers about every change and writes the whole state through to a
// durable slot after each mutation.
//
// A snapshot is stored as
//
//	{"state": <S as JSON>, "version": <n>}
//
// and read back once, lazily, on first access.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Listener is called after every state change with the new and previous
// state.
type Listener[S any] func(state, prev S)

// MigrateFunc upgrades the "state" payload of a snapshot written under an
// older (or newer) version to the store's current shape.
type MigrateFunc func(state json.RawMessage, version int) (json.RawMessage, error)

// Option configures a Store.
type Option func(*options)

type options struct {
	version int
	migrate MigrateFunc
	logger  *slog.Logger
	onError func(error)
}

// WithVersion sets the snapshot version written and expected on read.
// Defaults to 0.
func WithVersion(v int) Option {
	return func(o *options) { o.version = v }
}

// WithMigrate installs the upgrade path for snapshots whose version differs.
// Without it such snapshots are discarded.
func WithMigrate(fn MigrateFunc) Option {
	return func(o *options) { o.migrate = fn }
}

// WithLogger sets the logger used for warnings and recovered listener
// panics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithErrorHandler replaces the default warning log for *WriteError and
// *ReadError values.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

type envelope[S any] struct {
	State   S   `json:"state"`
	Version int `json:"version"`
}

type rawEnvelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

type subscription[S any] struct {
	id uint64
	fn Listener[S]
}

// Store is a write-through persisted state container.
// S must round-trip through encoding/json.
type Store[S any] struct {
	name    string
	storage Storage
	initial []byte
	opts    options

	mu        sync.Mutex
	state     S
	hydrated  bool
	listeners []subscription[S]
	nextID    uint64
}

// New creates a store persisted under slot name. initial is the state used
// when the slot is empty or unusable; it is deep-copied, so later changes to
// it have no effect.
func New[S any](storage Storage, name string, initial S, opts ...Option) *Store[S] {
	raw, err := json.Marshal(initial)
	if err != nil {
		panic(fmt.Sprintf("store %s: default state is not JSON-encodable: %v", name, err))
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store[S]{
		name:    name,
		storage: storage,
		initial: raw,
		opts:    o,
	}
	if s.opts.onError == nil {
		s.opts.onError = s.logError
	}
	return s
}

// Name returns the slot the store persists to.
func (s *Store[S]) Name() string { return s.name }

// Hydrated reports whether the slot has been read yet.
func (s *Store[S]) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// GetState returns the current state.
func (s *Store[S]) GetState() S {
	s.mu.Lock()
	err := s.hydrateLocked()
	state := s.state
	s.mu.Unlock()

	s.report(err)
	return state
}

// SetState replaces the state with update(current), writes the snapshot
// and then calls every listener. A failed write is reported but does not
// undo the change.
//
// update must not modify its argument in place; listeners receive the old
// value as prev.
func (s *Store[S]) SetState(update func(S) S) {
	next, prev, listeners, errs := s.apply(update)
	for _, err := range errs {
		s.report(err)
	}
	s.notify(listeners, next, prev)
}

func (s *Store[S]) apply(update func(S) S) (next, prev S, listeners []Listener[S], errs []error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrateLocked(); err != nil {
		errs = append(errs, err)
	}
	prev = s.state
	next = update(prev)
	s.state = next
	if err := s.persist(next); err != nil {
		errs = append(errs, err)
	}
	return next, prev, s.listenersLocked(), errs
}

// Subscribe registers fn for every later change. The returned function
// removes it and may be called more than once.
func (s *Store[S]) Subscribe(fn Listener[S]) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription[S]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Rehydrate discards the in-memory state, reads the slot again and
// notifies listeners with the result.
func (s *Store[S]) Rehydrate() {
	s.mu.Lock()
	prev := s.state
	s.hydrated = false
	err := s.hydrateLocked()
	next := s.state
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.report(err)
	s.notify(listeners, next, prev)
}

// ClearStorage deletes the slot. The in-memory state is left alone, so the
// next SetState writes it again.
func (s *Store[S]) ClearStorage() error {
	if err := s.storage.Delete(s.name); err != nil {
		return fmt.Errorf("delete slot %s: %w", s.name, err)
	}
	return nil
}

func (s *Store[S]) hydrateLocked() error {
	if s.hydrated {
		return nil
	}
	s.hydrated = true
	s.state = s.fresh()

	raw, found, err := s.storage.Get(s.name)
	if err != nil {
		return &ReadError{Slot: s.name, Err: fmt.Errorf("read slot: %w", err)}
	}
	if !found {
		return nil
	}
	state, migrated, err := s.decode(raw)
	if err != nil {
		return &ReadError{Slot: s.name, Err: err}
	}
	s.state = state
	if migrated {
		return s.persist(state)
	}
	return nil
}

func (s *Store[S]) decode(raw []byte) (state S, migrated bool, err error) {
	var snap rawEnvelope
	if err := json.Unmarshal(raw, &snap); err != nil {
		return s.fresh(), false, fmt.Errorf("decode snapshot: %w", err)
	}

	payload := snap.State
	if snap.Version != s.opts.version {
		if s.opts.migrate == nil {
			return s.fresh(), false, fmt.Errorf("snapshot version %d does not match %d and no migration is set", snap.Version, s.opts.version)
		}
		payload, err = s.opts.migrate(payload, snap.Version)
		if err != nil {
			return s.fresh(), false, fmt.Errorf("migrate from version %d: %w", snap.Version, err)
		}
		migrated = true
	}

	state = s.fresh()
	if len(payload) == 0 {
		return state, migrated, nil
	}
	if err := json.Unmarshal(payload, &state); err != nil {
		return s.fresh(), false, fmt.Errorf("decode state: %w", err)
	}
	return state, migrated, nil
}

func (s *Store[S]) persist(state S) error {
	b, err := json.Marshal(envelope[S]{State: state, Version: s.opts.version})
	if err != nil {
		return &WriteError{Slot: s.name, Err: fmt.Errorf("encode snapshot: %w", err)}
	}
	if err := s.storage.Set(s.name, b); err != nil {
		return &WriteError{Slot: s.name, Err: fmt.Errorf("write slot: %w", err)}
	}
	return nil
}

// fresh returns a deep copy of the default state.
func (s *Store[S]) fresh() S {
	var v S
	// initial came from json.Marshal of an S, so this cannot fail.
	_ = json.Unmarshal(s.initial, &v)
	return v
}

func (s *Store[S]) listenersLocked() []Listener[S] {
	out := make([]Listener[S], len(s.listeners))
	for i, sub := range s.listeners {
		out[i] = sub.fn
	}
	return out
}

func (s *Store[S]) notify(listeners []Listener[S], state, prev S) {
	for _, fn := range listeners {
		s.call(fn, state, prev)
	}
}

func (s *Store[S]) call(fn Listener[S], state, prev S) {
	defer func() {
		if r := recover(); r != nil {
			s.opts.logger.Error("store listener panicked",
				slog.String("slot", s.name),
				slog.Any("panic", r),
			)
		}
	}()
	fn(state, prev)
}

func (s *Store[S]) report(err error) {
	if err == nil {
		return
	}
	s.opts.onError(err)
}

func (s *Store[S]) logError(err error) {
	var rerr *ReadError
	if errors.As(err, &rerr) {
		s.opts.logger.Warn("discarding stored snapshot",
			slog.String("slot", s.name),
			slog.Any("error", err),
		)
		return
	}
	s.opts.logger.Warn("state change not persisted",
		slog.String("slot", s.name),
		slog.Any("error", err),
	)
}
