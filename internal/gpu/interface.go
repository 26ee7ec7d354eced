package gpu

import "fmt"

//go:generate mockgen -destination=gpumock/mock_gpu.go -package=gpumock . Controller,Opener

// Identity names one physical fan: a device index and a fan index on it.
type Identity struct {
	GPU int `json:"gpu_index"`
	Fan int `json:"fan_index"`
}

func (id Identity) String() string {
	return fmt.Sprintf("gpu %d fan %d", id.GPU, id.Fan)
}

// Controller is a live hardware session bound to a single fan. All side
// effects are confined to that fan. Implementations are not required to be
// safe for concurrent use; the owner is the only caller.
type Controller interface {
	// Identity returns the fan the session was opened for
	Identity() Identity

	// Temperature returns the device temperature in °C
	Temperature() (float64, error)

	// FanSpeed returns the hardware-reported speed of the fan in percent
	FanSpeed() (float64, error)

	// SetFanSpeed commands the fan, rounding to the nearest whole percent
	SetFanSpeed(percent float64) error

	// RestoreAuto hands the fan back to driver control
	RestoreAuto() error

	// Close releases the session. Calling Close more than once is a no-op.
	Close() error
}

// Opener establishes Controller sessions.
type Opener interface {
	// Open fails if the device does not exist or, when the fan count is
	// discoverable, if the fan index is out of range.
	Open(id Identity) (Controller, error)
}
