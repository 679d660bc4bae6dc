package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestInvocation_IntArg(t *testing.T) {
	inv := invocation{args: []string{"3", "x"}}
	all := 0

	n, err := inv.intArg(0, "n", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = inv.intArg(1, "version", nil)
	assert.EqualError(t, err, `<version> must be a number, got "x"`)

	_, err = inv.intArg(2, "n", nil)
	assert.EqualError(t, err, "missing <n>")

	n, err = inv.intArg(2, "n", &all)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCommandsDoNotOverlap(t *testing.T) {
	for name := range fileCommands {
		assert.NotContains(t, dbCommands, name)
	}
}

func TestCreateAndListMigrations(t *testing.T) {
	dir := t.TempDir()
	inv := invocation{args: []string{"add cart notes", "free text notes"}, dir: dir, log: zaptest.NewLogger(t)}

	require.NoError(t, createMigration(inv))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.FileExists(t, filepath.Join(dir, entries[0].Name()))

	require.NoError(t, listMigrations(invocation{dir: dir, log: inv.log}))
	assert.Error(t, createMigration(invocation{dir: dir, log: inv.log}))
}

func TestDropAll_RequiresConfirm(t *testing.T) {
	assert.ErrorContains(t, dropAll(nil, invocation{}), "drop cancelled")
	assert.ErrorContains(t, dropAll(nil, invocation{args: []string{"yes"}}), "drop cancelled")
}
