package studio

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"lamina/internal/form"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping: fsnotify Windows goroutines cause goleak failures")
	}
}

func TestFormWatcher_ReloadsOnWrite(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "post.yaml")
	require.NoError(t, form.SaveFile(path, form.Fields{Header: "before"}))

	fw, err := NewFormWatcher(path)
	require.NoError(t, err)
	require.NoError(t, fw.Start(context.Background()))
	defer fw.Stop()

	require.NoError(t, form.SaveFile(path, form.Fields{Header: "after"}))

	select {
	case r := <-fw.Updates():
		require.NoError(t, r.Err)
		assert.Equal(t, "after", r.Fields.Header)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestFormWatcher_IgnoresSiblings(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "post.yaml")
	require.NoError(t, form.SaveFile(path, form.Fields{}))

	fw, err := NewFormWatcher(path)
	require.NoError(t, err)
	require.NoError(t, fw.Start(context.Background()))
	defer fw.Stop()

	require.NoError(t, form.SaveFile(filepath.Join(dir, "other.yaml"), form.Fields{Header: "x"}))

	select {
	case r := <-fw.Updates():
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestFormWatcher_StopClosesUpdates(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "post.yaml")
	fw, err := NewFormWatcher(path)
	require.NoError(t, err)
	require.NoError(t, fw.Start(context.Background()))

	fw.Stop()
	_, ok := <-fw.Updates()
	assert.False(t, ok)

	// Second stop is a no-op.
	fw.Stop()
}

func TestFormWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fw, err := NewFormWatcher(filepath.Join(t.TempDir(), "post.yaml"))
	require.NoError(t, err)
	fw.Stop()
}

func TestFormWatcher_ContextCancel(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "post.yaml")
	fw, err := NewFormWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, fw.Start(ctx))
	cancel()

	select {
	case _, ok := <-fw.Updates():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not exit on cancel")
	}
	fw.Stop()
}
