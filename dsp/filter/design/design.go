package design

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/filter/biquad"
)

// ButterworthQ is the Q of a maximally flat second-order section.
const ButterworthQ = 1 / math.Sqrt2

// ShelfSlopeQ gives the shelves their steepest slope without overshoot
// (S=1 in cookbook terms).
const ShelfSlopeQ = ButterworthQ

// warp holds the bilinear-transform terms every cookbook design starts
// from.
type warp struct {
	cos, alpha float64
}

func prewarp(freq, q, sampleRate float64) (warp, bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return warp{}, false
	}
	if !(freq > 0) || freq >= sampleRate/2 {
		return warp{}, false
	}
	if !(q > 0) || math.IsInf(q, 0) {
		q = ButterworthQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	return warp{cos: math.Cos(w0), alpha: math.Sin(w0) / (2 * q)}, true
}

// Peak designs a bell boosting or cutting gainDB around freq.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}

	a := core.DBToLinear(gainDB / 2)
	return normalize(
		1+w.alpha*a, -2*w.cos, 1-w.alpha*a,
		1+w.alpha/a, -2*w.cos, 1-w.alpha/a,
	)
}

// LowShelf designs a shelf applying gainDB below freq.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}
	return shelf(w, gainDB)
}

// HighShelf designs a shelf applying gainDB above freq. It is the low
// shelf mirrored around fs/4: cos(w0) changes sign and so do the odd
// coefficients.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}

	w.cos = -w.cos
	c := shelf(w, gainDB)
	c.B1, c.A1 = -c.B1, -c.A1
	return c
}

func shelf(w warp, gainDB float64) biquad.Coefficients {
	a := core.DBToLinear(gainDB / 2)
	beta := 2 * math.Sqrt(a) * w.alpha
	p, m := a+1, a-1

	return normalize(
		a*(p-m*w.cos+beta), 2*a*(m-p*w.cos), a*(p-m*w.cos-beta),
		p+m*w.cos+beta, -2*(m+p*w.cos), p+m*w.cos-beta,
	)
}

// ClampFrequency pulls freq down to 0.45 of the sample rate, so bands
// placed for 48 kHz stay valid at 8 kHz.
func ClampFrequency(freq, sampleRate float64) float64 {
	return min(freq, 0.45*sampleRate)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !core.Finite(a0, b0, b1, b2, a1, a2) {
		return biquad.Identity
	}
	inv := 1 / a0
	return biquad.Coefficients{B0: b0 * inv, B1: b1 * inv, B2: b2 * inv, A1: a1 * inv, A2: a2 * inv}
}
