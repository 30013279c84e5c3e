package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func subcommand(t *testing.T) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "tada"}
	child := &cobra.Command{Use: "ls"}
	root.AddCommand(child)
	child.SetOut(&bytes.Buffer{})
	child.SetErr(&bytes.Buffer{})
	return child
}

func closeAll(t *testing.T, closers []io.Closer) {
	t.Helper()
	for _, c := range closers {
		require.NoError(t, c.Close())
	}
}

func TestOpenStorageBackends(t *testing.T) {
	dir := t.TempDir()

	mem, err := openStorage(config.StorageConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, mem)

	files, err := openStorage(config.StorageConfig{Backend: config.BackendFile, Dir: filepath.Join(dir, "files")})
	require.NoError(t, err)
	assert.IsType(t, &jsonstore.Dir{}, files)

	db, err := openStorage(config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "nested", "tada.db")})
	require.NoError(t, err)
	require.IsType(t, &sqlitestore.DB{}, db)
	require.NoError(t, db.(*sqlitestore.DB).Close())
}

func TestBuildWiresStoresOverOneBackend(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, "storage:\n  backend: sqlite\n  dir: "+dir+"\nlog:\n  file: "+filepath.Join(dir, "tada.log")+"\n")

	deps, closers, err := build(subcommand(t), p)
	require.NoError(t, err)
	require.Len(t, closers, 2)

	deps.Session.Login(model.User{Name: "Ann", Email: "ann@x.com"})
	closeAll(t, closers)

	deps, closers, err = build(subcommand(t), p)
	require.NoError(t, err)
	defer closeAll(t, closers)
	u, ok := deps.Session.User()
	require.True(t, ok)
	assert.Equal(t, "Ann", u.Name)
	assert.FileExists(t, filepath.Join(dir, "tada.db"))
}

func TestBuildRejectsBadConfig(t *testing.T) {
	p := writeConfig(t, "storage:\n  backend: tape\n")

	_, closers, err := build(subcommand(t), p)

	assert.Error(t, err)
	assert.Empty(t, closers)
}

func TestRootCommandRunsAgainstFileBackend(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, "storage:\n  backend: file\n  dir: "+dir+"\n")

	var opened []io.Closer
	factory := func(cmd *cobra.Command, configPath string) (*cli.Deps, error) {
		deps, c, err := build(cmd, configPath)
		opened = append(opened, c...)
		return deps, err
	}

	var out bytes.Buffer
	root := cli.NewRootCommand("test", factory)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", p, "login", "--name", "Ann", "--email", "ann@x.com"})
	require.NoError(t, root.Execute())
	closeAll(t, opened)

	assert.FileExists(t, filepath.Join(dir, "user-store.json"))
}
