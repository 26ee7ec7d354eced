package curve

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/mutker/nvfan/internal/errors"
)

// Parse reads a curve written as comma separated temp:speed pairs, e.g.
// "40:30,60:50,80:80". Temperatures must be non-negative and speeds within
// [0,100]. The result is sorted by temperature.
func Parse(s string) ([]Point, error) {
	errFactory := errors.New()

	if strings.TrimSpace(s) == "" {
		return nil, errFactory.WithMessage(errors.ErrInvalidCurve, "curve string cannot be empty")
	}

	var points []Point
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		tempStr, speedStr, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, errFactory.WithMessage(errors.ErrInvalidCurve,
				fmt.Sprintf("invalid curve entry %q (expected temp:speed)", entry))
		}

		temp, err := strconv.ParseFloat(strings.TrimSpace(tempStr), 64)
		if err != nil {
			return nil, errFactory.WithMessage(errors.ErrInvalidCurve,
				fmt.Sprintf("invalid temperature in entry %q", entry))
		}
		speed, err := strconv.ParseFloat(strings.TrimSpace(speedStr), 64)
		if err != nil {
			return nil, errFactory.WithMessage(errors.ErrInvalidCurve,
				fmt.Sprintf("invalid speed in entry %q", entry))
		}

		if temp < 0 {
			return nil, errFactory.WithMessage(errors.ErrInvalidCurve, "temperature values must be non-negative")
		}
		if speed < MinSpeed || speed > MaxSpeed {
			return nil, errFactory.WithMessage(errors.ErrInvalidCurve, "fan speed values must be between 0 and 100")
		}

		points = append(points, Point{Temperature: temp, Speed: speed})
	}

	if len(points) == 0 {
		return nil, errFactory.WithMessage(errors.ErrInvalidCurve, "curve must contain at least one point")
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Temperature < points[j].Temperature
	})

	return points, nil
}

// Format writes points in the syntax accepted by Parse.
func Format(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.FormatFloat(p.Temperature, 'f', -1, 64) + ":" +
			strconv.FormatFloat(p.Speed, 'f', -1, 64)
	}

	return strings.Join(parts, ",")
}
