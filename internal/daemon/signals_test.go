package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeControls struct {
	reloads atomic.Int32
	stops   atomic.Int32
}

func (f *fakeControls) Reload() { f.reloads.Add(1) }
func (f *fakeControls) Stop()   { f.stops.Add(1) }

func TestHandleSignals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &fakeControls{}
	sigs := make(chan os.Signal)
	done := make(chan error, 1)
	go func() { done <- HandleSignals(ctx, c, sigs) }()

	sigs <- syscall.SIGHUP
	sigs <- syscall.SIGTERM
	sigs <- syscall.SIGINT
	sigs <- syscall.SIGHUP

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, int32(2), c.reloads.Load())
	assert.Equal(t, int32(2), c.stops.Load())
}

func TestWatchConfigReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval = 2\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &fakeControls{}
	done := make(chan error, 1)
	go func() { done <- WatchConfig(ctx, path, c) }()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o600))

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("poll_interval = 3\n"), 0o600)
		return c.reloads.Load() > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Zero(t, c.stops.Load())
}

func TestWatchConfigMissingDirectory(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "missing", "config.toml"), &fakeControls{})
	assert.Error(t, err)
}

func TestNotifySignalsBuffersEarlySignals(t *testing.T) {
	sigs, stop := NotifySignals()
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGHUP))

	select {
	case sig := <-sigs:
		assert.Equal(t, syscall.SIGHUP, sig)
	case <-time.After(2 * time.Second):
		t.Fatal("signal was not captured")
	}
}
