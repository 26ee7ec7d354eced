package daemon

import (
	"context"
	"path/filepath"

	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// WatchConfig requests a reload whenever the file at path is created,
// written or replaced. The parent directory is watched so that atomic
// saves, which rename a new file over the old one, are seen.
func WatchConfig(ctx context.Context, path string, c Controls) error {
	errFactory := errors.New()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	logger.Debug().Str("path", target).Msg("Watching configuration")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			logger.Info().Str("path", target).Str("op", event.Op.String()).Msg("Configuration changed")
			c.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Configuration watcher error")
		}
	}
}
