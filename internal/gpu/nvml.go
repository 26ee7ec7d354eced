package gpu

import "github.com/NVIDIA/go-nvml/pkg/nvml"

// device is the subset of nvml.Device used by a session.
type device interface {
	GetTemperature(sensor nvml.TemperatureSensors) (uint32, nvml.Return)
	GetNumFans() (int, nvml.Return)
	GetFanSpeed_v2(fan int) (uint32, nvml.Return)
	SetFanSpeed_v2(fan int, speed int) nvml.Return
	SetDefaultFanSpeed_v2(fan int) nvml.Return
}

// library abstracts the NVML entry points so sessions can be tested
// without a driver.
type library interface {
	Init() nvml.Return
	Shutdown() nvml.Return
	DeviceByIndex(index int) (device, nvml.Return)
	ErrorString(ret nvml.Return) string
}

// nvmlLibrary is the only place that calls into libnvidia-ml.
type nvmlLibrary struct{}

func (nvmlLibrary) Init() nvml.Return {
	return nvml.Init()
}

func (nvmlLibrary) Shutdown() nvml.Return {
	return nvml.Shutdown()
}

func (nvmlLibrary) DeviceByIndex(index int) (device, nvml.Return) {
	handle, ret := nvml.DeviceGetHandleByIndex(index)
	if !IsNVMLSuccess(ret) {
		return nil, ret
	}

	return handle, ret
}

func (nvmlLibrary) ErrorString(ret nvml.Return) string {
	return nvml.ErrorString(ret)
}
