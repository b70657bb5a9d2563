package core

import "math"

// denormalFloor is the magnitude below which recursive state is flushed.
const denormalFloor = 1e-30

// Clamp limits v to [lo, hi]; the bounds may be given in either order.
// NaN maps to the lower bound so a corrupt control value cannot reach a
// stage.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FlushDenormals returns 0 for values too small to matter in a feedback
// path and x otherwise.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}
	return x
}

// DBToLinear converts an amplitude level in dB to a gain factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a gain factor to dB. Zero gives -Inf, negative
// input NaN.
func LinearToDB(g float64) float64 {
	switch {
	case g < 0:
		return math.NaN()
	case g == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(g)
}

// TimeConstantCoeff returns the per-sample weight of a one-pole follower
// that covers 1-1/e of a step in tau seconds. It is 1 (no smoothing) when
// tau or sampleRate is not positive.
func TimeConstantCoeff(tau, sampleRate float64) float64 {
	if !(tau > 0) || !(sampleRate > 0) {
		return 1
	}
	return -math.Expm1(-1 / (tau * sampleRate))
}
