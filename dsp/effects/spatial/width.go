package spatial

import "fmt"

// Gains is one width/polarity setting.
type Gains struct {
	Mid   float64 // scale of (l+r)/2
	Side  float64 // scale of (l-r)/2; 0 is mono, 2 doubles the side
	Left  float64 // polarity of the left output, +1 or -1
	Right float64 // polarity of the right output, +1 or -1
}

// Neutral returns the pass-through setting.
func Neutral() Gains {
	return Gains{Mid: 1, Side: 1, Left: 1, Right: 1}
}

// Polarity returns -1 when inverted and +1 otherwise.
func Polarity(inverted bool) float64 {
	if inverted {
		return -1
	}
	return 1
}

// Process applies g to one stereo frame.
func (g Gains) Process(left, right float64) (float64, float64) {
	mid := (left + right) * 0.5
	side := (left - right) * 0.5

	outL := (g.Mid*mid + g.Side*side) * g.Left
	outR := (g.Mid*mid - g.Side*side) * g.Right

	return outL, outR
}

// ProcessStereoInPlace applies g to paired left/right buffers in place.
// Both buffers must have the same length.
func (g Gains) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("spatial: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	if g == Neutral() {
		return nil
	}

	for i := range left {
		left[i], right[i] = g.Process(left[i], right[i])
	}

	return nil
}
