package interp

import "math"

// Linear returns a at t=0 and b at t=1.
func Linear(t, a, b float64) float64 {
	return a + t*(b-a)
}

// Split breaks a fractional position into its floor and the remainder in
// [0, 1).
func Split(pos float64) (int, float64) {
	fl := math.Floor(pos)
	return int(fl), pos - fl
}
