package saturation

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/core"
)

// CurveSize is the number of points in a transfer table.
const CurveSize = 1024

// CurveParams determines a transfer table.
type CurveParams struct {
	// Amount is the drive amount in [0, 1]. The curve steepness is
	// k = Amount*10 + 1.
	Amount float64
	// Bias is the DC offset in [-0.5, 0.5] added ahead of the shaper. The
	// table is shifted so that an input equal to the bias maps to zero.
	Bias float64
	// Texture blends the rational soft clipper (0) into a normalized tanh
	// (1).
	Texture float64
	// HQ requests oversampled shaping.
	HQ bool
}

// K returns the curve steepness derived from Amount.
func (p CurveParams) K() float64 {
	return core.Clamp(p.Amount, 0, 1)*10 + 1
}

// Curve is a waveshaper transfer table.
type Curve struct {
	table  [CurveSize]float64
	params CurveParams
	valid  bool
}

// NewCurve returns a curve generated for p.
func NewCurve(p CurveParams) *Curve {
	c := &Curve{}
	c.Update(p)
	return c
}

// Update regenerates the table if p differs from the parameters it was
// last generated for. It reports whether the table was rewritten.
func (c *Curve) Update(p CurveParams) bool {
	p = clampParams(p)
	if c.valid && p == c.params {
		return false
	}
	c.params = p
	c.valid = true
	Fill(c.table[:], p)
	return true
}

// Params returns the parameters of the current table.
func (c *Curve) Params() CurveParams { return c.params }

// Table returns the transfer table. The slice aliases internal storage.
func (c *Curve) Table() []float64 { return c.table[:] }

// Apply maps x through the table with linear interpolation.
func (c *Curve) Apply(x float64) float64 {
	const last = CurveSize - 1
	if !(x > -1) {
		return c.table[0]
	}
	if x >= 1 {
		return c.table[last]
	}

	pos := (x + 1) * 0.5 * last
	i := int(pos)
	frac := pos - float64(i)
	if i >= last {
		return c.table[last]
	}
	return c.table[i] + frac*(c.table[i+1]-c.table[i])
}

// Fill writes the transfer function for p into dst, sampling the input
// domain [-1, 1] at len(dst) evenly spaced points.
func Fill(dst []float64, p CurveParams) {
	n := len(dst)
	if n == 0 {
		return
	}
	p = clampParams(p)
	k := p.K()
	tanhK := math.Tanh(k)
	offset := shape(p.Bias, k, tanhK, p.Texture)

	if n == 1 {
		dst[0] = shape(0, k, tanhK, p.Texture) - offset
		return
	}

	step := 2 / float64(n-1)
	for i := range dst {
		u := -1 + float64(i)*step
		dst[i] = shape(u, k, tanhK, p.Texture) - offset
	}
}

// shape blends (1+k)u/(1+k|u|) with tanh(k*u)/tanh(k). Both map 1 to 1.
func shape(u, k, tanhK, texture float64) float64 {
	soft := (1 + k) * u / (1 + k*math.Abs(u))
	if texture == 0 {
		return soft
	}
	return (1-texture)*soft + texture*math.Tanh(k*u)/tanhK
}

func clampParams(p CurveParams) CurveParams {
	p.Amount = core.Clamp(p.Amount, 0, 1)
	p.Bias = core.Clamp(p.Bias, -0.5, 0.5)
	p.Texture = core.Clamp(p.Texture, 0, 1)
	return p
}
