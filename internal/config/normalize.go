package config

import (
	"math"

	"codeberg.org/mutker/nvfan/internal/curve"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"github.com/spf13/cast"
)

// Normalize builds a Snapshot from loosely typed input such as a decoded
// config file. It never fails: missing or invalid fields fall back to
// defaults, and an empty or entirely invalid profile list is replaced with
// the default profile. Normalize(Normalize(x).Raw()) equals Normalize(x).
func Normalize(raw map[string]any) Snapshot {
	snap := Snapshot{PollInterval: DefaultPollInterval}

	if v, ok := raw[keyPollInterval]; ok {
		if f, ok := toFloat(v); ok {
			snap.PollInterval = f
		}
	}
	snap.PollInterval = ClampPollInterval(snap.PollInterval)

	entries, err := cast.ToSliceE(raw[keyProfiles])
	if err != nil || len(entries) == 0 {
		entries = []any{legacyProfile(raw)}
	}

	seen := make(map[gpu.Identity]bool, len(entries))
	for _, entry := range entries {
		profile, ok := normalizeProfile(entry, raw)
		if !ok || seen[profile.ID()] {
			continue
		}
		seen[profile.ID()] = true
		snap.Profiles = append(snap.Profiles, profile)
	}

	if len(snap.Profiles) == 0 {
		snap.Profiles = []Profile{DefaultProfile(gpu.Identity{GPU: DefaultGPUIndex, Fan: DefaultFanIndex})}
	}

	return snap
}

// legacyProfile lifts the pre-profiles top-level keys into a profile entry.
func legacyProfile(raw map[string]any) map[string]any {
	entry := make(map[string]any, 4)
	for _, key := range []string{keyGPUIndex, keyFanIndex, keyCurve, keyHysteresis} {
		if v, ok := raw[key]; ok {
			entry[key] = v
		}
	}

	return entry
}

func normalizeProfile(entry any, raw map[string]any) (Profile, bool) {
	fields, err := cast.ToStringMapE(entry)
	if err != nil {
		return Profile{}, false
	}

	profile := Profile{
		GPUIndex:   DefaultGPUIndex,
		FanIndex:   DefaultFanIndex,
		Hysteresis: DefaultHysteresis,
	}

	if v, ok := fields[keyGPUIndex]; ok {
		if profile.GPUIndex, ok = toIndex(v); !ok {
			return Profile{}, false
		}
	}
	if v, ok := fields[keyFanIndex]; ok {
		if profile.FanIndex, ok = toIndex(v); !ok {
			return Profile{}, false
		}
	}

	profile.Curve = normalizeCurve(fields[keyCurve])

	hysteresis, ok := fields[keyHysteresis]
	if !ok {
		hysteresis, ok = raw[keyHysteresis]
	}
	if ok {
		if f, ok := toFloat(hysteresis); ok {
			profile.Hysteresis = math.Max(0, f)
		}
	}

	return profile, true
}

func normalizeCurve(v any) []curve.Point {
	items, err := cast.ToSliceE(v)
	if err != nil || len(items) == 0 {
		return DefaultCurve()
	}

	points := make([]curve.Point, 0, len(items))
	for _, item := range items {
		fields, err := cast.ToStringMapE(item)
		if err != nil {
			continue
		}

		temp, ok := toFloat(fields[keyTemperature])
		if !ok {
			continue
		}
		speed, ok := toFloat(fields[keySpeed])
		if !ok {
			continue
		}

		points = append(points, curve.Point{Temperature: temp, Speed: speed})
	}

	if len(points) == 0 {
		return DefaultCurve()
	}

	return curve.Canonical(points)
}

// toFloat converts numbers and numeric strings, rejecting nil, NaN and
// infinities.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// toIndex converts a device or fan index, rejecting negatives.
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return 0, false
		}
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
	}

	i, err := cast.ToIntE(v)
	if err != nil || i < 0 {
		return 0, false
	}

	return i, true
}
