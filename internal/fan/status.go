package fan

import (
	"codeberg.org/mutker/nvfan/internal/config"
	"codeberg.org/mutker/nvfan/internal/gpu"
)

// Reading is a point-in-time status report for one profile.
type Reading struct {
	GPUIndex     int     `json:"gpu_index"`
	FanIndex     int     `json:"fan_index"`
	Temperature  float64 `json:"temperature"`
	CurrentSpeed float64 `json:"current_speed"`
	TargetSpeed  float64 `json:"target_speed"`
	Hysteresis   float64 `json:"hysteresis"`
}

// RestoreResult reports the outcome of a restore for one profile.
type RestoreResult struct {
	ID  gpu.Identity
	Err error
}

// Query reads each profile's fan through a transient session. Nothing is
// written to the hardware. The first failure aborts the query.
func Query(opener gpu.Opener, defs []config.Profile) ([]Reading, error) {
	readings := make([]Reading, 0, len(defs))

	for _, def := range defs {
		reading, err := query(opener, def)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

func query(opener gpu.Opener, def config.Profile) (Reading, error) {
	ctrl, err := opener.Open(def.ID())
	if err != nil {
		return Reading{}, err
	}
	defer ctrl.Close()

	profile, err := NewProfile(def, ctrl)
	if err != nil {
		return Reading{}, err
	}

	target, temperature, err := profile.Target()
	if err != nil {
		return Reading{}, err
	}

	current, err := ctrl.FanSpeed()
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		GPUIndex:     def.GPUIndex,
		FanIndex:     def.FanIndex,
		Temperature:  temperature,
		CurrentSpeed: current,
		TargetSpeed:  target,
		Hysteresis:   def.Hysteresis,
	}, nil
}

// RestoreAuto hands each selected fan back to driver control through a
// transient session and reports the outcome per profile.
func RestoreAuto(opener gpu.Opener, defs []config.Profile) []RestoreResult {
	results := make([]RestoreResult, 0, len(defs))

	for _, def := range defs {
		results = append(results, RestoreResult{ID: def.ID(), Err: restore(opener, def.ID())})
	}

	return results
}

func restore(opener gpu.Opener, id gpu.Identity) error {
	ctrl, err := opener.Open(id)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	return ctrl.RestoreAuto()
}
