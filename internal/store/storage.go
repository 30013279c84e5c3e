package store

import "sync"

// Storage is a durable key-value backend holding one snapshot per slot.
// Implementations report a missing slot as found == false, not as an error.
type Storage interface {
	Get(slot string) (value []byte, found bool, err error)
	Set(slot string, value []byte) error
	Delete(slot string) error
}

// Memory is an in-process Storage. Values are copied on the way in and out.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemory returns an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(slot string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(slot string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}
