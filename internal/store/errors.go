package store

import "fmt"

// WriteError reports a snapshot that could not be written. The in-memory
// state it belonged to has already been applied.
type WriteError struct {
	Slot string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Slot, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a snapshot that could not be read, decoded or migrated.
// The store discards it and keeps its default state.
type ReadError struct {
	Slot string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("restore %s: %v", e.Slot, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
