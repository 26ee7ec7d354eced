package config

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/nvfan/internal/curve"
	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	snap := Snapshot{
		PollInterval: 1.5,
		Profiles: []Profile{
			{
				GPUIndex: 0,
				FanIndex: 0,
				Curve: []curve.Point{
					{Temperature: 30, Speed: 25},
					{Temperature: 50, Speed: 45},
					{Temperature: 70, Speed: 75},
				},
				Hysteresis: 2,
			},
		},
	}
	p := snap.Ensure(gpu.Identity{GPU: 1, Fan: 1})
	p.Hysteresis = 0.5

	return snap
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.toml"))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), snap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.json", "config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			store := NewStore(filepath.Join(dir, name))

			require.NoError(t, store.Save(sampleSnapshot()))

			loaded, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, sampleSnapshot(), loaded)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1, "temporary file left behind")
			assert.Equal(t, name, entries[0].Name())
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.toml"))

	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, store.Save(Default()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestSaveNormalizes(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.json"))

	require.NoError(t, store.Save(Snapshot{PollInterval: 0.1}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, MinPollInterval, loaded.PollInterval)
	assert.Equal(t, Default().Profiles, loaded.Profiles)
}

func TestUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o600))
	store := NewStore(path)

	_, err := store.Load()
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))

	err = store.Save(Default())
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval = = ["), 0o600))

	_, err := NewStore(path).Load()
	assert.Equal(t, errors.ErrReadConfig, errors.CodeOf(err))
}

func TestLoadLegacyTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
poll_interval = 3
gpu_index = 1
hysteresis = 4

[[curve]]
temperature = 40
speed = 30

[[curve]]
temperature = 60
speed = 70
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	snap, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 3.0, snap.PollInterval)
	require.Len(t, snap.Profiles, 1)
	assert.Equal(t, gpu.Identity{GPU: 1, Fan: 0}, snap.Profiles[0].ID())
	assert.Equal(t, 4.0, snap.Profiles[0].Hysteresis)
	assert.Equal(t, []curve.Point{{Temperature: 40, Speed: 30}, {Temperature: 60, Speed: 70}}, snap.Profiles[0].Curve)
}

func TestEnsureDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	store := NewStore(path)

	require.NoError(t, store.EnsureDefaults())
	assert.FileExists(t, path)

	snap := sampleSnapshot()
	require.NoError(t, store.Save(snap))
	require.NoError(t, store.EnsureDefaults())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}
