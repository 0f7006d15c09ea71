package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "es"), 0o755))

	w, err := New(nil, dir, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)

	fired := make(chan struct{}, 10)
	w.OnChange(func() { fired <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	target := filepath.Join(dir, "docs", "es", "intro.md")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte("# v"+string(rune('0'+i))), 0o644))
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("callback did not fire")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
