package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routedeck/routedeck/pkg/types"
)

// setupBackend creates an attached Backend on a temp directory, detached via
// t.Cleanup.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{DataDir: t.TempDir()}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttachDetachLifecycle(t *testing.T) {
	t.Run("attach creates the database file", func(t *testing.T) {
		dir := t.TempDir()
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: dir}))
		defer b.Detach()

		assert.FileExists(t, filepath.Join(dir, dbFileName))
	})

	t.Run("double attach fails", func(t *testing.T) {
		b := setupBackend(t)
		err := b.Attach(types.Config{DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
		require.NoError(t, b.Detach())
		assert.NoError(t, b.Detach())
	})

	t.Run("operations on a detached backend fail", func(t *testing.T) {
		b := NewBackend()
		_, err := b.ListTables("selangor")
		assert.ErrorIs(t, err, types.ErrStoreDetached)
		_, err = b.Overview()
		assert.ErrorIs(t, err, types.ErrStoreDetached)
	})

	t.Run("reattach preserves existing data", func(t *testing.T) {
		dir := t.TempDir()
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: dir}))

		table, err := b.CreateTable(types.TableParams{
			Name: "Persistent", Region: "kl", CreatedBy: "Ops",
		})
		require.NoError(t, err)
		require.NoError(t, b.Detach())

		b2 := NewBackend()
		require.NoError(t, b2.Attach(types.Config{DataDir: dir}))
		defer b2.Detach()

		got, err := b2.GetTable(table.TableID)
		require.NoError(t, err)
		assert.Equal(t, "Persistent", got.Name)
	})

	t.Run("invalid listen addr rejected", func(t *testing.T) {
		b := NewBackend()
		err := b.Attach(types.Config{DataDir: t.TempDir(), ListenAddr: "8080"})
		assert.ErrorIs(t, err, types.ErrListenAddrInvalid)
	})
}

func TestConfigNormalizedOnAttach(t *testing.T) {
	b := setupBackend(t)
	cfg := b.Config()
	assert.Equal(t, types.DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, types.DefaultRegion, cfg.DefaultRegion)
}

func TestGenerateUUID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateUUID()
		assert.Len(t, id, 36)
		assert.False(t, seen[id], "uuid collision")
		seen[id] = true
	}
}
