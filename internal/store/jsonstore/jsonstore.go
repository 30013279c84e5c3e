package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSON-backed slot storage. One human-readable file per slot, rewritten
// in full on every Set. No locking; a slot has a single owner.

const fileExt = ".json"

// Dir stores each slot as <dir>/<slot>.json.
type Dir struct {
	path string
}

// Open returns slot storage rooted at dir, creating it (0700) if needed.
func Open(dir string) (*Dir, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Dir{path: filepath.Clean(dir)}, nil
}

// Path returns the root directory.
func (d *Dir) Path() string { return d.path }

func (d *Dir) slotPath(slot string) (string, error) {
	if slot == "" || strings.ContainsAny(slot, `/\`) || strings.Contains(slot, "..") {
		return "", fmt.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(d.path, slot+fileExt), nil
}

func (d *Dir) Get(slot string) ([]byte, bool, error) {
	p, err := d.slotPath(slot)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

func (d *Dir) Set(slot string, value []byte) error {
	p, err := d.slotPath(slot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, indent(value), 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (d *Dir) Delete(slot string) error {
	p, err := d.slotPath(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// indent pretty-prints valid JSON so the files stay readable; anything else
// is written as given.
func indent(value []byte) []byte {
	var v json.RawMessage
	if err := json.Unmarshal(value, &v); err != nil {
		return value
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return value
	}
	return append(b, '\n')
}
