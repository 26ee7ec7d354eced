package pid

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/nvfan/internal/errors"
	"github.com/shirou/gopsutil/process"
)

const filePerm = 0o644

// Write records the current process ID at path. It fails with
// ErrAlreadyRunning if the file names a live process; a stale file is
// replaced.
func Write(path string) error {
	errFactory := errors.New()

	existing, err := Read(path)
	switch {
	case err == nil:
		if alive(existing) && existing != os.Getpid() {
			return errFactory.WithData(errors.ErrAlreadyRunning, "pid "+strconv.Itoa(existing))
		}
	case errors.HasCode(err, errors.ErrNotRunning):
		// No file, or an unreadable one: take it over.
	default:
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), filePerm); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Read returns the process ID stored at path. A missing or malformed file
// is reported as ErrNotRunning.
func Read(path string) (int, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, errFactory.WithData(errors.ErrNotRunning, path)
	}
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrInternal, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, errFactory.WithData(errors.ErrNotRunning, "malformed pid file "+path)
	}

	return pid, nil
}

// Remove deletes the PID file if it exists.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.New().Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Signal sends sig to the process recorded at path.
func Signal(path string, sig syscall.Signal) error {
	errFactory := errors.New()

	pid, err := Read(path)
	if err != nil {
		return err
	}

	if !alive(pid) {
		return errFactory.WithData(errors.ErrNotRunning, "pid "+strconv.Itoa(pid))
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	if err := proc.Signal(sig); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

func alive(pid int) bool {
	exists, err := process.PidExists(int32(pid))
	return err == nil && exists
}
