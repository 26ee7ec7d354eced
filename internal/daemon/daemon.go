package daemon

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/nvfan/internal/config"
	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/fan"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"codeberg.org/mutker/nvfan/internal/logger"
)

// Source supplies configuration snapshots at startup and on reload.
type Source interface {
	Load() (config.Snapshot, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (config.Snapshot, error)

func (f SourceFunc) Load() (config.Snapshot, error) {
	return f()
}

type Options struct {
	// RestoreOnExit hands fans back to driver control when profiles are
	// closed by shutdown or replaced by a reload.
	RestoreOnExit bool
}

func DefaultOptions() Options {
	return Options{RestoreOnExit: true}
}

// Daemon runs the fan control loop. Hardware is only touched from the
// goroutine calling Run or RunOnce; Reload, Stop, State and Profiles are
// safe to call from anywhere.
type Daemon struct {
	source Source
	opener gpu.Opener
	opts   Options
	token  *Token

	mu       sync.RWMutex
	profiles []*fan.Profile
	interval time.Duration
}

// New loads a snapshot and opens every profile. On failure nothing is left
// open.
func New(source Source, opener gpu.Opener, opts Options) (*Daemon, error) {
	errFactory := errors.New()

	snap, err := source.Load()
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrStartupFailed, err)
	}

	profiles, err := fan.Build(opener, snap.Profiles)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrStartupFailed, err)
	}

	logger.Info().
		Int("profiles", len(profiles)).
		Dur("interval", snap.Interval()).
		Msg("Fan control started")

	return &Daemon{
		source:   source,
		opener:   opener,
		opts:     opts,
		token:    NewToken(),
		profiles: profiles,
		interval: snap.Interval(),
	}, nil
}

// Run polls until Stop is called or ctx is cancelled, then closes every
// profile according to the restore policy.
func (d *Daemon) Run(ctx context.Context) error {
	if d.token.State() == Terminated {
		return errors.New().WithMessage(errors.ErrNotRunning, "daemon has already terminated")
	}
	defer d.shutdown(d.opts.RestoreOnExit)

	for {
		if d.stopRequested(ctx) {
			return nil
		}

		if d.token.consumeReload() {
			if err := d.reload(); err != nil {
				logger.ErrorWithCode(err).Msg("Reload failed, keeping current profiles")
			}
		}

		if !d.cycle(ctx) {
			return nil
		}

		if !d.sleep(ctx) {
			return nil
		}
	}
}

// RunOnce evaluates and applies every profile a single time, then closes
// them without restoring automatic control.
func (d *Daemon) RunOnce(ctx context.Context) error {
	if d.token.State() == Terminated {
		return errors.New().WithMessage(errors.ErrNotRunning, "daemon has already terminated")
	}
	defer d.shutdown(false)

	d.cycle(ctx)

	return nil
}

// Reload asks the loop to rebuild its profiles before the next cycle.
func (d *Daemon) Reload() {
	logger.Debug().Msg("Reload requested")
	d.token.RequestReload()
}

// Stop asks the loop to shut down at the next checkpoint.
func (d *Daemon) Stop() {
	logger.Debug().Msg("Stop requested")
	d.token.RequestStop()
}

func (d *Daemon) State() State {
	return d.token.State()
}

func (d *Daemon) Interval() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.interval
}

// Profiles returns the state of every live profile.
func (d *Daemon) Profiles() []fan.State {
	d.mu.RLock()
	defer d.mu.RUnlock()

	states := make([]fan.State, len(d.profiles))
	for i, p := range d.profiles {
		states[i] = p.State()
	}

	return states
}

func (d *Daemon) stopRequested(ctx context.Context) bool {
	if ctx.Err() != nil {
		d.token.RequestStop()
	}

	return d.token.Stopping()
}

// cycle steps every profile once. It returns false if a stop request cut
// the cycle short.
func (d *Daemon) cycle(ctx context.Context) bool {
	for i, p := range d.profiles {
		if i > 0 && d.stopRequested(ctx) {
			logger.Debug().Int("remaining", len(d.profiles)-i).Msg("Cycle abandoned")
			return false
		}
		d.step(p)
	}

	return true
}

// step runs one profile. Errors are logged and confined to the profile.
func (d *Daemon) step(p *fan.Profile) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := p.ID()

	target, temperature, err := p.Target()
	if err != nil {
		logger.ErrorWithCode(err).Int("gpu", id.GPU).Int("fan", id.Fan).Msg("Failed to read temperature")
		return
	}

	if !p.ShouldApply(target) {
		logger.Debug().
			Int("gpu", id.GPU).
			Int("fan", id.Fan).
			Float64("temperature", temperature).
			Float64("target", target).
			Bool("applied", false).
			Msg("Fan speed within hysteresis")
		return
	}

	if err := p.Apply(target, temperature); err != nil {
		logger.ErrorWithCode(err).Int("gpu", id.GPU).Int("fan", id.Fan).Msg("Failed to set fan speed")
		return
	}

	logger.Info().
		Int("gpu", id.GPU).
		Int("fan", id.Fan).
		Float64("temperature", temperature).
		Float64("target", p.State().LastSpeed).
		Bool("applied", true).
		Msg("Fan speed updated")
}

// sleep waits for the poll interval. It returns false if the loop should
// exit instead of starting another cycle.
func (d *Daemon) sleep(ctx context.Context) bool {
	timer := time.NewTimer(d.Interval())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.token.RequestStop()
		return false
	case <-d.token.Wake():
		return !d.token.Stopping()
	case <-timer.C:
		return true
	}
}

// reload swaps in a freshly built profile set. If anything fails the
// current profiles and interval stay as they are.
func (d *Daemon) reload() error {
	errFactory := errors.New()

	snap, err := d.source.Load()
	if err != nil {
		return errFactory.Wrap(errors.ErrReloadFailed, err)
	}

	next, err := fan.Build(d.opener, snap.Profiles)
	if err != nil {
		return errFactory.Wrap(errors.ErrReloadFailed, err)
	}

	d.mu.Lock()
	old := d.profiles
	d.profiles = next
	d.interval = snap.Interval()
	d.mu.Unlock()

	_ = fan.CloseAll(old, d.opts.RestoreOnExit)

	logger.Info().
		Int("profiles", len(next)).
		Dur("interval", snap.Interval()).
		Msg("Configuration reloaded")

	return nil
}

func (d *Daemon) shutdown(restore bool) {
	d.mu.Lock()
	profiles := d.profiles
	d.profiles = nil
	d.mu.Unlock()

	if err := fan.CloseAll(profiles, restore); err != nil {
		logger.ErrorWithCode(errors.New().Wrap(errors.ErrShutdownFailed, err)).Msg("Shutdown completed with errors")
	}

	d.token.terminate()
	logger.Info().Bool("restored", restore).Msg("Fan control stopped")
}
