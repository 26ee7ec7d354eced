package curve_test

import (
	"testing"

	"codeberg.org/mutker/nvfan/internal/curve"
	"codeberg.org/mutker/nvfan/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	points, err := curve.Parse(" 60:50, 40:30 ,80:80,")
	require.NoError(t, err)

	assert.Equal(t, []curve.Point{
		{Temperature: 40, Speed: 30},
		{Temperature: 60, Speed: 50},
		{Temperature: 80, Speed: 80},
	}, points)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"only commas":    ",,",
		"missing colon":  "40-30",
		"bad number":     "forty:30",
		"bad speed":      "40:fast",
		"negative temp":  "-5:30",
		"speed too high": "40:101",
		"speed negative": "40:-1",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := curve.Parse(input)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrInvalidCurve))
		})
	}
}

func TestFormat(t *testing.T) {
	points := []curve.Point{
		{Temperature: 40, Speed: 30},
		{Temperature: 62.5, Speed: 55.5},
	}

	assert.Equal(t, "40:30,62.5:55.5", curve.Format(points))

	parsed, err := curve.Parse(curve.Format(points))
	require.NoError(t, err)
	assert.Equal(t, points, parsed)
}
