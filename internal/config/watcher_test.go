package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webassets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("THEME: a\n"), 0o644))

	changes := make(chan struct{}, 10)
	w, err := NewWatcher(path, 200*time.Millisecond, func() { changes <- struct{}{} })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("THEME: b\n"), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}

	select {
	case <-changes:
		t.Fatal("burst of writes should produce a single notification")
	case <-time.After(600 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
