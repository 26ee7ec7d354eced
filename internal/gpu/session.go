package gpu

import (
	"fmt"
	"math"
	"sync"

	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/logger"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlOpener struct {
	lib library
}

// NewOpener returns an Opener backed by NVML. Each session holds its own
// NVML reference and releases it on Close.
func NewOpener() Opener {
	return &nvmlOpener{lib: nvmlLibrary{}}
}

func (o *nvmlOpener) Open(id Identity) (Controller, error) {
	if id.GPU < 0 || id.Fan < 0 {
		return nil, errors.New().WithData(errors.ErrInvalidArgument, id.String())
	}

	if ret := o.lib.Init(); !IsNVMLSuccess(ret) {
		return nil, newHardwareError(id, opInit, o.lib.ErrorString(ret))
	}

	s := &session{lib: o.lib, id: id}

	dev, ret := o.lib.DeviceByIndex(id.GPU)
	if !IsNVMLSuccess(ret) {
		err := newHardwareError(id, opDeviceHandle, o.lib.ErrorString(ret))
		s.release()
		return nil, err
	}
	s.device = dev

	if err := s.validateFanIndex(); err != nil {
		s.release()
		return nil, err
	}

	logger.Debug().Int("gpu", id.GPU).Int("fan", id.Fan).Msg("NVML session opened")

	return s, nil
}

// session is one NVML reference bound to a single fan.
type session struct {
	lib    library
	id     Identity
	device device
	closed bool
	mu     sync.Mutex
}

func (s *session) validateFanIndex() error {
	count, ret := s.device.GetNumFans()
	if isNotDiscoverable(ret) {
		logger.Debug().Int("gpu", s.id.GPU).Msg("Fan count not discoverable, skipping fan index check")
		return nil
	}
	if !IsNVMLSuccess(ret) {
		return newHardwareError(s.id, opNumFans, s.lib.ErrorString(ret))
	}
	if s.id.Fan >= count {
		return newHardwareError(s.id, opNumFans,
			fmt.Sprintf("fan index %d out of range (available: %d)", s.id.Fan, count))
	}

	return nil
}

func (s *session) Identity() Identity {
	return s.id
}

func (s *session) Temperature() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, newHardwareError(s.id, opSession, "session is closed")
	}

	temp, ret := s.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if !IsNVMLSuccess(ret) {
		return 0, newHardwareError(s.id, opTemperature, s.lib.ErrorString(ret))
	}

	return float64(temp), nil
}

func (s *session) FanSpeed() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, newHardwareError(s.id, opSession, "session is closed")
	}

	speed, ret := s.device.GetFanSpeed_v2(s.id.Fan)
	if !IsNVMLSuccess(ret) {
		return 0, newHardwareError(s.id, opGetFanSpeed, s.lib.ErrorString(ret))
	}

	return float64(speed), nil
}

func (s *session) SetFanSpeed(percent float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newHardwareError(s.id, opSession, "session is closed")
	}

	speed := int(math.Round(percent))
	if ret := s.device.SetFanSpeed_v2(s.id.Fan, speed); !IsNVMLSuccess(ret) {
		return newHardwareError(s.id, opSetFanSpeed, s.lib.ErrorString(ret))
	}
	logger.Debug().Int("gpu", s.id.GPU).Int("fan", s.id.Fan).Msgf("Set fan speed: %d%%", speed)

	return nil
}

func (s *session) RestoreAuto() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newHardwareError(s.id, opSession, "session is closed")
	}

	if ret := s.device.SetDefaultFanSpeed_v2(s.id.Fan); !IsNVMLSuccess(ret) {
		return newHardwareError(s.id, opSetDefaultFan, s.lib.ErrorString(ret))
	}
	logger.Debug().Int("gpu", s.id.GPU).Int("fan", s.id.Fan).Msg("Auto fan control: enabled")

	return nil
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	return s.release()
}

// release drops the NVML reference. Callers hold mu or own s exclusively.
func (s *session) release() error {
	s.closed = true
	s.device = nil

	if ret := s.lib.Shutdown(); !IsNVMLSuccess(ret) {
		return newHardwareError(s.id, opShutdown, s.lib.ErrorString(ret))
	}

	return nil
}
