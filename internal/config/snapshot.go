package config

import (
	"math"
	"strconv"
	"strings"
	"time"

	"codeberg.org/mutker/nvfan/internal/curve"
	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/gpu"
)

const (
	DefaultPollInterval = 2.0
	MinPollInterval     = 0.5
	MaxPollInterval     = 3600.0
	DefaultHysteresis   = 2.0
	DefaultGPUIndex     = 0
	DefaultFanIndex     = 0
)

const (
	keyPollInterval = "poll_interval"
	keyProfiles     = "profiles"
	keyGPUIndex     = "gpu_index"
	keyFanIndex     = "fan_index"
	keyCurve        = "curve"
	keyHysteresis   = "hysteresis"
	keyTemperature  = "temperature"
	keySpeed        = "speed"
)

// Profile binds one fan to a curve and a hysteresis threshold.
type Profile struct {
	GPUIndex   int           `json:"gpu_index" toml:"gpu_index" yaml:"gpu_index"`
	FanIndex   int           `json:"fan_index" toml:"fan_index" yaml:"fan_index"`
	Curve      []curve.Point `json:"curve" toml:"curve" yaml:"curve"`
	Hysteresis float64       `json:"hysteresis" toml:"hysteresis" yaml:"hysteresis"`
}

// ID returns the fan the profile controls.
func (p Profile) ID() gpu.Identity {
	return gpu.Identity{GPU: p.GPUIndex, Fan: p.FanIndex}
}

// Snapshot is a complete, normalized fan configuration.
type Snapshot struct {
	PollInterval float64   `json:"poll_interval" toml:"poll_interval" yaml:"poll_interval"`
	Profiles     []Profile `json:"profiles" toml:"profiles" yaml:"profiles"`
}

// DefaultCurve returns the curve used when none is configured.
func DefaultCurve() []curve.Point {
	return []curve.Point{
		{Temperature: 30, Speed: 25},
		{Temperature: 40, Speed: 35},
		{Temperature: 50, Speed: 45},
		{Temperature: 60, Speed: 60},
		{Temperature: 70, Speed: 75},
		{Temperature: 80, Speed: 90},
	}
}

// DefaultProfile returns a profile for id with the default curve.
func DefaultProfile(id gpu.Identity) Profile {
	return Profile{
		GPUIndex:   id.GPU,
		FanIndex:   id.Fan,
		Curve:      DefaultCurve(),
		Hysteresis: DefaultHysteresis,
	}
}

// Default returns the configuration written on first run.
func Default() Snapshot {
	return Snapshot{
		PollInterval: DefaultPollInterval,
		Profiles:     []Profile{DefaultProfile(gpu.Identity{GPU: DefaultGPUIndex, Fan: DefaultFanIndex})},
	}
}

// Interval returns the poll interval as a duration, limited to
// [MinPollInterval, MaxPollInterval] seconds.
func (s Snapshot) Interval() time.Duration {
	return time.Duration(ClampPollInterval(s.PollInterval) * float64(time.Second))
}

// ClampPollInterval limits seconds to [MinPollInterval, MaxPollInterval].
// NaN yields the default.
func ClampPollInterval(seconds float64) float64 {
	if math.IsNaN(seconds) {
		return DefaultPollInterval
	}

	return math.Min(MaxPollInterval, math.Max(MinPollInterval, seconds))
}

// Raw converts the snapshot back into the loosely typed form accepted by
// Normalize.
func (s Snapshot) Raw() map[string]any {
	profiles := make([]any, len(s.Profiles))
	for i, p := range s.Profiles {
		points := make([]any, len(p.Curve))
		for j, pt := range p.Curve {
			points[j] = map[string]any{
				keyTemperature: pt.Temperature,
				keySpeed:       pt.Speed,
			}
		}
		profiles[i] = map[string]any{
			keyGPUIndex:   p.GPUIndex,
			keyFanIndex:   p.FanIndex,
			keyCurve:      points,
			keyHysteresis: p.Hysteresis,
		}
	}

	return map[string]any{
		keyPollInterval: s.PollInterval,
		keyProfiles:     profiles,
	}
}

// Find returns the index of the profile for id, or -1.
func (s *Snapshot) Find(id gpu.Identity) int {
	for i, p := range s.Profiles {
		if p.ID() == id {
			return i
		}
	}

	return -1
}

// Ensure returns the profile for id, appending a default one if missing.
func (s *Snapshot) Ensure(id gpu.Identity) *Profile {
	if i := s.Find(id); i >= 0 {
		return &s.Profiles[i]
	}

	s.Profiles = append(s.Profiles, DefaultProfile(id))

	return &s.Profiles[len(s.Profiles)-1]
}

// Remove deletes the profile for id and reports whether it existed.
func (s *Snapshot) Remove(id gpu.Identity) bool {
	i := s.Find(id)
	if i < 0 {
		return false
	}

	s.Profiles = append(s.Profiles[:i], s.Profiles[i+1:]...)

	return true
}

// Select returns the profile for id, or every profile when id is nil.
func (s Snapshot) Select(id *gpu.Identity) ([]Profile, error) {
	if id == nil {
		return s.Profiles, nil
	}

	i := s.Find(*id)
	if i < 0 {
		return nil, errors.New().WithData(errors.ErrProfileNotFound, id.String())
	}

	return []Profile{s.Profiles[i]}, nil
}

// ParseSelector reads a "gpu:fan" profile selector.
func ParseSelector(token string) (gpu.Identity, error) {
	errFactory := errors.New()

	gpuStr, fanStr, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok {
		return gpu.Identity{}, errFactory.WithData(errors.ErrInvalidSelector,
			"expected gpu:fan, got "+strconv.Quote(token))
	}

	gpuIndex, err := strconv.Atoi(strings.TrimSpace(gpuStr))
	if err != nil {
		return gpu.Identity{}, errFactory.WithData(errors.ErrInvalidSelector,
			"invalid gpu index in "+strconv.Quote(token))
	}
	fanIndex, err := strconv.Atoi(strings.TrimSpace(fanStr))
	if err != nil {
		return gpu.Identity{}, errFactory.WithData(errors.ErrInvalidSelector,
			"invalid fan index in "+strconv.Quote(token))
	}

	if gpuIndex < 0 || fanIndex < 0 {
		return gpu.Identity{}, errFactory.WithData(errors.ErrInvalidSelector,
			"gpu and fan indices must be non-negative")
	}

	return gpu.Identity{GPU: gpuIndex, Fan: fanIndex}, nil
}
