package pid

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"

	"codeberg.org/mutker/nvfan/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadPID returns the ID of a process that has already exited.
func deadPID(t *testing.T) int {
	t.Helper()

	cmd := exec.Command("true")
	require.NoError(t, cmd.Run())

	return cmd.Process.Pid
}

func TestWriteReadRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "nvfan.pid")

	require.NoError(t, Write(path))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), got)

	require.NoError(t, Remove(path))
	assert.NoFileExists(t, path)
	assert.NoError(t, Remove(path))
}

func TestWriteRefusesLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvfan.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0o600))

	err := Write(path)
	assert.Equal(t, errors.ErrAlreadyRunning, errors.CodeOf(err))
}

func TestWriteReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvfan.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(deadPID(t))), 0o600))

	require.NoError(t, Write(path))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), got)
}

func TestWriteReplacesMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvfan.pid")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	require.NoError(t, Write(path))
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nvfan.pid"))
	assert.Equal(t, errors.ErrNotRunning, errors.CodeOf(err))
}

func TestSignal(t *testing.T) {
	dir := t.TempDir()

	err := Signal(filepath.Join(dir, "missing.pid"), syscall.SIGHUP)
	assert.Equal(t, errors.ErrNotRunning, errors.CodeOf(err))

	stale := filepath.Join(dir, "stale.pid")
	require.NoError(t, os.WriteFile(stale, []byte(strconv.Itoa(deadPID(t))), 0o600))
	err = Signal(stale, syscall.SIGHUP)
	assert.Equal(t, errors.ErrNotRunning, errors.CodeOf(err))

	// Signal 0 only probes the process.
	self := filepath.Join(dir, "self.pid")
	require.NoError(t, Write(self))
	assert.NoError(t, Signal(self, syscall.Signal(0)))
}
