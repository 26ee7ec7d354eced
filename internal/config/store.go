package config

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/logger"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "/etc/nvfan/config.toml"

	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Store reads and writes the fan configuration file. The format follows
// the file extension: .toml, .json, .yaml or .yml.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}

	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads and normalizes the configuration. A missing file yields the
// defaults.
func (s *Store) Load() (Snapshot, error) {
	errFactory := errors.New()

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("path", s.path).Msg("Config file not found, using defaults")
		return Default(), nil
	}

	format, err := formatOf(s.path)
	if err != nil {
		return Snapshot{}, err
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType(format)
	if err := v.ReadInConfig(); err != nil {
		return Snapshot{}, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	return Normalize(v.AllSettings()), nil
}

// Save normalizes snap and writes it atomically: the data goes to a
// temporary file in the same directory which is then renamed over the
// target.
func (s *Store) Save(snap Snapshot) error {
	errFactory := errors.New()

	format, err := formatOf(s.path)
	if err != nil {
		return err
	}

	data, err := encode(format, Normalize(snap.Raw()))
	if err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}
	if err := tmp.Chmod(defaultFilePerm); err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}
	if err := tmp.Sync(); err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}
	if err := tmp.Close(); err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}
	committed = true

	logger.Debug().Str("path", s.path).Msg("Config saved")

	return nil
}

// EnsureDefaults writes the default configuration if the file is missing.
func (s *Store) EnsureDefaults() error {
	if _, err := os.Stat(s.path); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	logger.Info().Str("path", s.path).Msg("Creating default configuration")

	return s.Save(Default())
}

func formatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return "toml", nil
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", errors.New().WithData(errors.ErrInvalidConfig, "unsupported config file extension "+ext)
	}
}

func encode(format string, snap Snapshot) ([]byte, error) {
	switch format {
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "yaml":
		return yaml.Marshal(snap)
	default:
		return toml.Marshal(snap)
	}
}
