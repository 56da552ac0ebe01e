// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settings

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

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

func TestWatcher_ReportsExternalEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigName+".yaml")

	var calls atomic.Int32
	w := NewWatcher(path, 10*time.Millisecond, func(context.Context) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Give the watcher time to register before producing events.
	time.Sleep(100 * time.Millisecond)

	store := NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), sampleRecord()))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, writeFile(filepath.Join(dir, "unrelated.txt"), "x"))
	time.Sleep(400 * time.Millisecond)
	before := calls.Load()
	require.NoError(t, writeFile(filepath.Join(dir, "unrelated2.txt"), "y"))
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, before, calls.Load(), "unrelated files must not trigger")

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "s.yaml"), time.Second, func(context.Context) {})
	err := w.Run(context.Background())
	assert.Error(t, err)
}
