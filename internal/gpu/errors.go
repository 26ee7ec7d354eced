package gpu

import (
	"fmt"

	"codeberg.org/mutker/nvfan/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// NVML operations named in hardware errors
const (
	opInit          = "nvmlInit"
	opShutdown      = "nvmlShutdown"
	opDeviceHandle  = "nvmlDeviceGetHandleByIndex"
	opNumFans       = "nvmlDeviceGetNumFans"
	opTemperature   = "nvmlDeviceGetTemperature"
	opGetFanSpeed   = "nvmlDeviceGetFanSpeed_v2"
	opSetFanSpeed   = "nvmlDeviceSetFanSpeed_v2"
	opSetDefaultFan = "nvmlDeviceSetDefaultFanSpeed_v2"
	opSession       = "session"
)

// HardwareError describes a failed native call on one fan.
type HardwareError struct {
	ID         Identity
	Op         string
	Diagnostic string
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.ID, e.Op, e.Diagnostic)
}

// newHardwareError wraps a diagnostic as a hardware_error domain error.
func newHardwareError(id Identity, op, diagnostic string) error {
	return errors.New().Wrap(errors.ErrHardware, &HardwareError{
		ID:         id,
		Op:         op,
		Diagnostic: diagnostic,
	})
}

// IsNVMLSuccess checks if a Return value indicates success
func IsNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}

// isNotDiscoverable reports whether ret means the queried capability is
// absent from this driver or device rather than broken.
func isNotDiscoverable(ret nvml.Return) bool {
	return ret == nvml.ERROR_NOT_SUPPORTED || ret == nvml.ERROR_FUNCTION_NOT_FOUND
}
