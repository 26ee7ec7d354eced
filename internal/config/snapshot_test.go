package config

import (
	"math"
	"testing"
	"time"

	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, Snapshot{PollInterval: 1.5}.Interval())
	assert.Equal(t, time.Hour, Snapshot{PollInterval: 1e10}.Interval())
	assert.Equal(t, 500*time.Millisecond, Snapshot{PollInterval: -3}.Interval())
	assert.Equal(t, 2*time.Second, Snapshot{PollInterval: math.NaN()}.Interval())
}

func TestLargePollIntervalStaysPositive(t *testing.T) {
	snap := Normalize(map[string]any{"poll_interval": 1e10})

	assert.Equal(t, MaxPollInterval, snap.PollInterval)
	assert.Equal(t, time.Hour, snap.Interval())
	assert.Positive(t, snap.Interval())
}

func TestEnsureAndRemove(t *testing.T) {
	snap := Default()
	id := gpu.Identity{GPU: 1, Fan: 2}

	assert.Equal(t, -1, snap.Find(id))

	p := snap.Ensure(id)
	require.NotNil(t, p)
	assert.Equal(t, id, p.ID())
	assert.Equal(t, DefaultCurve(), p.Curve)
	assert.Len(t, snap.Profiles, 2)

	p.Hysteresis = 5
	again := snap.Ensure(id)
	assert.Equal(t, 5.0, again.Hysteresis)
	assert.Len(t, snap.Profiles, 2)

	assert.True(t, snap.Remove(id))
	assert.False(t, snap.Remove(id))
	assert.Len(t, snap.Profiles, 1)
}

func TestSelect(t *testing.T) {
	snap := Default()
	snap.Ensure(gpu.Identity{GPU: 0, Fan: 1})

	all, err := snap.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := snap.Select(&gpu.Identity{GPU: 0, Fan: 1})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, 1, one[0].FanIndex)

	_, err = snap.Select(&gpu.Identity{GPU: 3, Fan: 0})
	require.Error(t, err)
	assert.Equal(t, errors.ErrProfileNotFound, errors.CodeOf(err))
}

func TestParseSelector(t *testing.T) {
	id, err := ParseSelector(" 1:3 ")
	require.NoError(t, err)
	assert.Equal(t, gpu.Identity{GPU: 1, Fan: 3}, id)

	for _, token := range []string{"", "1", "a:1", "1:b", "-1:0", "0:-2"} {
		_, err := ParseSelector(token)
		require.Error(t, err, token)
		assert.Equal(t, errors.ErrInvalidSelector, errors.CodeOf(err), token)
	}
}
