package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/nvfan/internal/logger"
)

// Controls is the part of a Daemon that external events may drive.
type Controls interface {
	Reload()
	Stop()
}

// NotifySignals starts capturing SIGTERM, SIGINT and SIGHUP. Call it before
// opening any hardware so an early stop request still goes through the
// shutdown sequence. The returned function releases the signals.
func NotifySignals() (<-chan os.Signal, func()) {
	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	return sigs, func() { signal.Stop(sigs) }
}

// HandleSignals maps SIGTERM and SIGINT to Stop and SIGHUP to Reload
// until ctx is done.
func HandleSignals(ctx context.Context, c Controls, sigs <-chan os.Signal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-sigs:
			logger.Info().Str("signal", sig.String()).Msg("Received signal")

			switch sig {
			case syscall.SIGHUP:
				c.Reload()
			case syscall.SIGTERM, syscall.SIGINT:
				c.Stop()
			}
		}
	}
}
