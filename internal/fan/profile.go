package fan

import (
	"math"

	"codeberg.org/mutker/nvfan/internal/config"
	"codeberg.org/mutker/nvfan/internal/curve"
	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"codeberg.org/mutker/nvfan/internal/logger"
)

const (
	// MinAppliedSpeed keeps a fan from stalling under manual control,
	// whatever the curve says.
	MinAppliedSpeed = 10.0
	MaxAppliedSpeed = 100.0

	// MinHysteresis is the smallest change worth a hardware write.
	MinHysteresis = 0.5
)

// State is the observable part of a profile.
type State struct {
	ID              gpu.Identity `json:"id"`
	Applied         bool         `json:"applied"`
	LastSpeed       float64      `json:"last_speed"`
	LastTemperature float64      `json:"last_temperature"`
}

// Profile drives one fan from a curve. It owns its controller session.
type Profile struct {
	id         gpu.Identity
	curve      *curve.Curve
	hysteresis float64
	ctrl       gpu.Controller
	state      State
}

// NewProfile binds def to an open controller session. The session is not
// closed on error; the caller still owns it.
func NewProfile(def config.Profile, ctrl gpu.Controller) (*Profile, error) {
	c, err := curve.New(def.Curve)
	if err != nil {
		return nil, err
	}

	if ctrl == nil {
		return nil, errors.New().WithMessage(errors.ErrInvalidArgument, "profile requires a controller")
	}

	return &Profile{
		id:         def.ID(),
		curve:      c,
		hysteresis: math.Max(0, def.Hysteresis),
		ctrl:       ctrl,
		state:      State{ID: def.ID()},
	}, nil
}

func (p *Profile) ID() gpu.Identity {
	return p.id
}

// Threshold is the hysteresis used for comparisons.
func (p *Profile) Threshold() float64 {
	return math.Max(MinHysteresis, p.hysteresis)
}

// Target reads the temperature and evaluates the curve.
func (p *Profile) Target() (target, temperature float64, err error) {
	temperature, err = p.ctrl.Temperature()
	if err != nil {
		return 0, 0, err
	}

	return p.curve.Evaluate(temperature), temperature, nil
}

// Evaluate returns the curve speed for temperature.
func (p *Profile) Evaluate(temperature float64) float64 {
	return p.curve.Evaluate(temperature)
}

// ShouldApply reports whether target, once limited to the commandable
// range, differs enough from the last applied speed to warrant a write.
// The first decision is always true.
func (p *Profile) ShouldApply(target float64) bool {
	if !p.state.Applied {
		return true
	}

	return math.Abs(ClampApplied(target)-p.state.LastSpeed) >= p.Threshold()
}

// Apply commands the fan and records the result. The state only changes
// when the write succeeds.
func (p *Profile) Apply(target, temperature float64) error {
	speed := ClampApplied(target)

	if err := p.ctrl.SetFanSpeed(speed); err != nil {
		return err
	}

	p.state.Applied = true
	p.state.LastSpeed = speed
	p.state.LastTemperature = temperature

	return nil
}

func (p *Profile) State() State {
	return p.state
}

// Close releases the session, first handing the fan back to the driver
// if restore is set. A failed restore is logged and does not prevent the
// session from closing.
func (p *Profile) Close(restore bool) error {
	if restore {
		if err := p.ctrl.RestoreAuto(); err != nil {
			logger.ErrorWithCode(err).
				Int("gpu", p.id.GPU).
				Int("fan", p.id.Fan).
				Msg("Failed to restore automatic fan control")
		}
	}

	return p.ctrl.Close()
}

// ClampApplied limits speed to the range the daemon will command. NaN maps
// to MinAppliedSpeed.
func ClampApplied(speed float64) float64 {
	if math.IsNaN(speed) {
		return MinAppliedSpeed
	}

	return math.Min(MaxAppliedSpeed, math.Max(MinAppliedSpeed, speed))
}
