// Package curve implements the temperature to fan speed step curve.
package curve

import (
	"fmt"
	"math"
	"sort"

	"codeberg.org/mutker/nvfan/internal/errors"
)

const (
	MinSpeed = 0.0
	MaxSpeed = 100.0
)

// Point maps a temperature in °C to a fan speed percentage.
type Point struct {
	Temperature float64 `json:"temperature" toml:"temperature" yaml:"temperature" mapstructure:"temperature"`
	Speed       float64 `json:"speed" toml:"speed" yaml:"speed" mapstructure:"speed"`
}

// Curve is an immutable step function over temperature. Points are sorted
// strictly ascending by temperature.
type Curve struct {
	points []Point
}

// New builds a curve from points in any order. Speeds are clamped to
// [0,100] and points sharing a temperature collapse to the last one given.
// NaN and infinite values are rejected.
func New(points []Point) (*Curve, error) {
	errFactory := errors.New()

	if len(points) == 0 {
		return nil, errFactory.WithMessage(errors.ErrInvalidCurve, "fan curve requires at least one point")
	}

	for _, p := range points {
		if !isFinite(p.Temperature) || !isFinite(p.Speed) {
			return nil, errFactory.WithMessage(errors.ErrInvalidCurve,
				fmt.Sprintf("curve point %v:%v is not a finite number", p.Temperature, p.Speed))
		}
	}

	return &Curve{points: Canonical(points)}, nil
}

// Canonical returns a sorted, speed-clamped copy of points without
// duplicate temperatures. The last-declared point wins a tie.
func Canonical(points []Point) []Point {
	sorted := make([]Point, len(points))
	for i, p := range points {
		sorted[i] = Point{Temperature: p.Temperature, Speed: ClampSpeed(p.Speed)}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Temperature < sorted[j].Temperature
	})

	out := sorted[:0]
	for _, p := range sorted {
		if n := len(out); n > 0 && out[n-1].Temperature == p.Temperature {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}

	return out
}

// Evaluate returns the speed of the last point whose temperature is at or
// below t. Below the first point the first speed applies, above the last
// point the last speed is held. There is no interpolation.
func (c *Curve) Evaluate(t float64) float64 {
	i := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Temperature > t
	})
	if i == 0 {
		return c.points[0].Speed
	}

	return c.points[i-1].Speed
}

// Points returns a copy of the curve's points.
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)

	return out
}

// ClampSpeed limits speed to [0,100]. NaN maps to MinSpeed.
func ClampSpeed(speed float64) float64 {
	if math.IsNaN(speed) || speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}

	return speed
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
