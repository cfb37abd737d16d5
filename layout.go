package pie

import "math"

// FullTurn is one complete sweep in radians.
const FullTurn = 2 * math.Pi

// LayoutSlice is a record placed on the circle. Angles are in radians,
// measured clockwise from 12 o'clock.
type LayoutSlice struct {
	StartAngle float64
	EndAngle   float64
	Data       SliceRecord
	Index      int
}

// Span returns the slice's angular sweep.
func (s LayoutSlice) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// MidAngle returns the angle halfway through the slice.
func (s LayoutSlice) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// Layout places the records contiguously from angle 0 in input order, each
// sweeping value/sum of a full turn. Values are used as given: negative
// values produce inverted spans. When the sum is zero every slice is a
// zero-span slice at angle 0.
func Layout(points []SliceRecord) []LayoutSlice {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	angles := LayoutValues(values)

	out := make([]LayoutSlice, len(points))
	for i, p := range points {
		out[i] = LayoutSlice{
			StartAngle: angles[i][0],
			EndAngle:   angles[i][1],
			Data:       p,
			Index:      i,
		}
	}
	return out
}

// LayoutValues is Layout for bare magnitudes. Each element is {start, end}.
func LayoutValues(values []float64) [][2]float64 {
	out := make([][2]float64, len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return out
	}
	k := FullTurn / sum
	var acc float64
	for i, v := range values {
		start := acc * k
		acc += v
		out[i] = [2]float64{start, acc * k}
	}
	// The running sum always closes at sum*k; pin it so rounding never
	// leaves a sliver at 12 o'clock.
	out[len(out)-1][1] = FullTurn
	return out
}
