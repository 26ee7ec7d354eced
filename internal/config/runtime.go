package config

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/nvfan/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "NVFAN"

var DefaultPIDFile = filepath.Join(os.TempDir(), "nvfan.pid")

// Runtime holds process settings that are not part of the fan
// configuration file. Values come from flags, then NVFAN_* environment
// variables, then defaults.
type Runtime struct {
	ConfigPath      string `mapstructure:"config"`
	PIDFile         string `mapstructure:"pid-file"`
	Debug           bool   `mapstructure:"debug"`
	Verbose         bool   `mapstructure:"verbose"`
	NoRestoreOnExit bool   `mapstructure:"no-restore-on-exit"`
	Watch           bool   `mapstructure:"watch"`
}

// LoadRuntime resolves runtime settings. flags may be nil.
func LoadRuntime(flags *pflag.FlagSet) (*Runtime, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("config", DefaultPath)
	v.SetDefault("pid-file", DefaultPIDFile)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("no-restore-on-exit", false)
	v.SetDefault("watch", false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	rt := &Runtime{}
	if err := v.Unmarshal(rt); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if rt.ConfigPath == "" {
		rt.ConfigPath = DefaultPath
	}
	if rt.PIDFile == "" {
		rt.PIDFile = DefaultPIDFile
	}

	return rt, nil
}

// RestoreOnExit reports whether fans go back to driver control on shutdown.
func (r *Runtime) RestoreOnExit() bool {
	return !r.NoRestoreOnExit
}
