package command

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/message"
)

func TestProcessTableUpsertGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process.sqlite")
	table, err := OpenProcessTable(path)
	require.NoError(t, err)
	defer table.Close()

	details := message.LocalModuleDetails{
		ModuleName:        "picker",
		IPCFilePath:        "ipc:///tmp/picker.ipc",
		ProcessIdentifier:  1234,
		ApplicationStatus:  message.Running,
	}
	require.NoError(t, table.Upsert(details))

	got, err := table.Get("picker")
	require.NoError(t, err)
	assert.Equal(t, details, got)

	details.ApplicationStatus = message.Paused
	require.NoError(t, table.Upsert(details))
	got, err = table.Get("picker")
	require.NoError(t, err)
	assert.Equal(t, message.Paused, got.ApplicationStatus)

	require.NoError(t, table.Delete("picker"))
	_, err = table.Get("picker")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestProcessTableAvailableListsAllRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "process.sqlite")
	table, err := OpenProcessTable(path)
	require.NoError(t, err)
	defer table.Close()

	require.NoError(t, table.Upsert(message.LocalModuleDetails{ModuleName: "a", IPCFilePath: "ipc:///tmp/a.ipc"}))
	require.NoError(t, table.Upsert(message.LocalModuleDetails{ModuleName: "b", IPCFilePath: "ipc:///tmp/b.ipc"}))

	all, err := table.Available()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
