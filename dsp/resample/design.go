package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidFactor indicates a conversion factor below 2.
	ErrInvalidFactor = errors.New("resample: invalid factor")
	// ErrInvalidProfile indicates unusable prototype filter settings.
	ErrInvalidProfile = errors.New("resample: invalid profile")
)

// Profile describes the prototype lowpass of a converter pair.
type Profile struct {
	// TapsPerPhase is the prototype length divided by the factor.
	TapsPerPhase int
	// CutoffScale is the -6 dB point as a fraction of the low-rate Nyquist
	// frequency, in (0, 1].
	CutoffScale float64
	// KaiserBeta shapes the window; larger values trade transition width
	// for stopband attenuation.
	KaiserBeta float64
}

// DefaultProfile is flat to about 0.35 of the low rate with roughly 75 dB
// of stopband attenuation.
var DefaultProfile = Profile{TapsPerPhase: 24, CutoffScale: 0.92, KaiserBeta: 7.5}

// Validate reports whether p describes a usable prototype.
func (p Profile) Validate() error {
	if p.TapsPerPhase < 1 {
		return fmt.Errorf("%w: %d taps per phase", ErrInvalidProfile, p.TapsPerPhase)
	}
	if !(p.CutoffScale > 0 && p.CutoffScale <= 1) {
		return fmt.Errorf("%w: cutoff scale %g", ErrInvalidProfile, p.CutoffScale)
	}
	if !(p.KaiserBeta >= 0) || math.IsInf(p.KaiserBeta, 0) {
		return fmt.Errorf("%w: kaiser beta %g", ErrInvalidProfile, p.KaiserBeta)
	}
	return nil
}

// Latency returns the delay of an Interpolator followed by a Decimator of
// the same factor, in low-rate samples.
func (p Profile) Latency() int { return p.TapsPerPhase - 1 }

// Prototype returns the factor*TapsPerPhase prototype taps, normalized to
// unity DC gain.
func (p Profile) Prototype(factor int) ([]float64, error) {
	if factor < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := factor * p.TapsPerPhase
	fc := 0.5 / float64(factor) * p.CutoffScale
	return Lowpass(n, fc, p.KaiserBeta)
}

// Lowpass designs an n-tap Kaiser-windowed sinc lowpass with cutoff in
// cycles per sample. The taps are symmetric and sum to 1.
func Lowpass(n int, cutoff, beta float64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d taps", ErrInvalidProfile, n)
	}
	if !(cutoff > 0 && cutoff < 0.5) {
		return nil, fmt.Errorf("%w: cutoff %g", ErrInvalidProfile, cutoff)
	}

	taps := make([]float64, n)
	center := 0.5 * float64(n-1)
	for i := range taps {
		t := float64(i) - center
		taps[i] = 2 * cutoff * sinc(2*cutoff*t) * kaiser(i, n, beta)
	}

	sum := vecmath.Sum(taps)
	if sum == 0 {
		return nil, fmt.Errorf("%w: zero-sum filter", ErrInvalidProfile)
	}
	vecmath.ScaleBlockInPlace(taps, 1/sum)
	return taps, nil
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}
	t := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the zeroth-order modified Bessel function by its
// power series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4
	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
