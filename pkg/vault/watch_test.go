package vault

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsSettledChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	var changes atomic.Int32
	w, err := NewWatcher(path,
		WithDebounce(20*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o600))
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(`{"folders": []}`), 0o600))
	}

	assert.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "vault.json"))
	require.NoError(t, err)
	assert.Error(t, w.Run(context.Background()))
}

func TestProviderReloadFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"folders": [{"id": "F1", "name": "Work"}]}`), 0o600))

	client, err := NewClient(path, Queries{})
	require.NoError(t, err)
	p, err := NewProvider(ctx, client, &memStore{}, keyTranslator{})
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, os.WriteFile(path, []byte(`{"folders": []}`), 0o600))
	require.NoError(t, p.Reload(ctx))

	folders, err := p.FilteredFolders().First(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 1, "only the no-folder entry is left")
}
