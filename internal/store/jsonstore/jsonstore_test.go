package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/store"
)

var _ store.Storage = (*Dir)(nil)

func TestOpenCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".tada")

	d, err := Open(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, d.Path())
}

func TestOpenRejectsEmptyDir(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestGetMissingSlot(t *testing.T) {
	d, err := Open(t.TempDir())
	require.NoError(t, err)

	v, found, err := d.Get("user-store")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)
}

func TestSetGetDelete(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, d.Set("todo-store", []byte(`{"state":{"todos":[]},"version":0}`)))

	got, found, err := d.Get("todo-store")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"state":{"todos":[]},"version":0}`, string(got))

	info, err := os.Stat(filepath.Join(dir, "todo-store.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, d.Delete("todo-store"))
	_, found, err = d.Get("todo-store")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is fine.
	require.NoError(t, d.Delete("todo-store"))
}

func TestSetKeepsNonJSONVerbatim(t *testing.T) {
	d, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, d.Set("raw", []byte("not json")))
	got, _, err := d.Get("raw")
	require.NoError(t, err)
	assert.Equal(t, "not json", string(got))
}

func TestInvalidSlotNames(t *testing.T) {
	d, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, slot := range []string{"", "../escape", "a/b", `a\b`} {
		assert.Error(t, d.Set(slot, []byte("{}")), "slot %q", slot)
		_, _, err := d.Get(slot)
		assert.Error(t, err, "slot %q", slot)
	}
}

func TestStoreRoundTripThroughFiles(t *testing.T) {
	type state struct {
		Items []string `json:"items"`
	}
	dir := t.TempDir()

	d1, err := Open(dir)
	require.NoError(t, err)
	s1 := store.New(d1, "items", state{})
	s1.SetState(func(s state) state { return state{Items: []string{"a", "b"}} })

	d2, err := Open(dir)
	require.NoError(t, err)
	s2 := store.New(d2, "items", state{})

	assert.Equal(t, []string{"a", "b"}, s2.GetState().Items)
}
