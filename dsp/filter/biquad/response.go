package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-tonechain/dsp/core"
)

// Response evaluates H(z) on the unit circle at freq.
func (c Coefficients) Response(freq, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freq/sampleRate)
	num := complex(c.B0, 0) + z1*(complex(c.B1, 0)+z1*complex(c.B2, 0))
	den := 1 + z1*(complex(c.A1, 0)+z1*complex(c.A2, 0))
	return num / den
}

// MagnitudeDB returns |H| at freq in dB.
func (c Coefficients) MagnitudeDB(freq, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(c.Response(freq, sampleRate)))
}
