package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/core"
)

const (
	// Parameter ranges. Values outside are clamped.
	MinRatio     = 1.0
	MaxRatio     = 20.0
	MinKneeDB    = 0.0
	MaxKneeDB    = 40.0
	MinAttackMs  = 0.1
	MaxAttackMs  = 1000.0
	MinReleaseMs = 1.0
	MaxReleaseMs = 5000.0

	// log2Of10Div20 converts decibels to the log2 domain: log2(10) / 20.
	log2Of10Div20 = 0.166096404744
)

// Params is the full compressor setting.
type Params struct {
	ThresholdDB float64
	Ratio       float64
	KneeDB      float64
	AttackMs    float64
	ReleaseMs   float64
}

// DefaultParams returns -24 dB threshold, 1:1 ratio, 6 dB knee and the
// fast speed preset.
func DefaultParams() Params {
	attack, release := SpeedFast.Times()
	return Params{
		ThresholdDB: -24,
		Ratio:       MinRatio,
		KneeDB:      6,
		AttackMs:    attack,
		ReleaseMs:   release,
	}
}

// Metrics holds metering information since the last ResetMetrics.
type Metrics struct {
	InputPeak     float64 // Maximum detector input level
	OutputPeak    float64 // Maximum output level
	GainReduction float64 // Minimum gain (maximum reduction), linear
}

// Compressor is a soft-knee compressor with log2-domain gain calculation.
//
// The envelope follower is a peak detector with separate attack and release
// coefficients. In stereo-linked mode the detector sees max(|l|, |r|) and
// both channels receive the same gain, so the stereo image does not shift.
//
// Compressor is owned by a single audio thread. SetParams is cheap when the
// parameters did not change and is meant to be called once per block.
type Compressor struct {
	params     Params
	sampleRate float64

	peakLevel float64
	lastGain  float64

	attackCoeff      float64
	releaseCoeff     float64
	thresholdLog2    float64
	kneeWidthLog2    float64
	invKneeWidthLog2 float64
	slope            float64 // 1 - 1/ratio

	metrics Metrics
}

// NewCompressor creates a compressor with DefaultParams.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c := &Compressor{sampleRate: sampleRate, lastGain: 1}
	c.params = clampParams(DefaultParams())
	c.updateCoefficients()
	c.updateTimeConstants()
	c.ResetMetrics()
	return c, nil
}

// SetParams applies a new setting, clamping every field into range.
func (c *Compressor) SetParams(p Params) {
	p = clampParams(p)
	old := c.params
	c.params = p

	if p.ThresholdDB != old.ThresholdDB || p.Ratio != old.Ratio || p.KneeDB != old.KneeDB {
		c.updateCoefficients()
	}
	if p.AttackMs != old.AttackMs || p.ReleaseMs != old.ReleaseMs {
		c.updateTimeConstants()
	}
}

// Params returns the current (clamped) setting.
func (c *Compressor) Params() Params { return c.params }

// SetSampleRate updates sample rate and recalculates time constants.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}
	c.sampleRate = sampleRate
	c.updateTimeConstants()
	return nil
}

// SampleRate returns the current sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// ProcessSample compresses one mono sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	level := math.Abs(x)
	gain := c.detect(level)
	y := x * gain
	c.updateMetrics(level, math.Abs(y), gain)
	return y
}

// ProcessLinked compresses one stereo frame with a shared detector.
func (c *Compressor) ProcessLinked(l, r float64) (float64, float64) {
	level := math.Max(math.Abs(l), math.Abs(r))
	gain := c.detect(level)
	l *= gain
	r *= gain
	c.updateMetrics(level, math.Max(math.Abs(l), math.Abs(r)), gain)
	return l, r
}

// ProcessInPlace compresses a mono buffer in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// ProcessStereoInPlace compresses two channels stereo-linked.
// Only min(len(left), len(right)) frames are processed.
func (c *Compressor) ProcessStereoInPlace(left, right []float64) {
	n := min(len(left), len(right))
	for i := range n {
		left[i], right[i] = c.ProcessLinked(left[i], right[i])
	}
}

// StaticGain returns the steady-state linear gain for a detector level.
// Useful for drawing the transfer curve.
func (c *Compressor) StaticGain(level float64) float64 {
	return c.calculateGain(math.Abs(level))
}

// GainReductionDB returns the reduction applied to the last sample in
// dB, as a non-negative number.
func (c *Compressor) GainReductionDB() float64 {
	return -core.LinearToDB(c.lastGain)
}

// Reset clears envelope follower and metrics.
func (c *Compressor) Reset() {
	c.peakLevel = 0
	c.lastGain = 1
	c.ResetMetrics()
}

// Metrics returns current metering values.
func (c *Compressor) Metrics() Metrics {
	return c.metrics
}

// ResetMetrics clears metering state.
func (c *Compressor) ResetMetrics() {
	c.metrics = Metrics{GainReduction: 1.0}
}

func (c *Compressor) detect(level float64) float64 {
	if level > c.peakLevel {
		c.peakLevel += (level - c.peakLevel) * c.attackCoeff
	} else {
		c.peakLevel = level + (c.peakLevel-level)*c.releaseCoeff
	}
	c.peakLevel = core.FlushDenormals(c.peakLevel)

	c.lastGain = c.calculateGain(c.peakLevel)
	return c.lastGain
}

func clampParams(p Params) Params {
	if math.IsNaN(p.ThresholdDB) || math.IsInf(p.ThresholdDB, 0) {
		p.ThresholdDB = 0
	}
	p.ThresholdDB = core.Clamp(p.ThresholdDB, -120, 0)
	p.Ratio = core.Clamp(p.Ratio, MinRatio, MaxRatio)
	p.KneeDB = core.Clamp(p.KneeDB, MinKneeDB, MaxKneeDB)
	p.AttackMs = core.Clamp(p.AttackMs, MinAttackMs, MaxAttackMs)
	p.ReleaseMs = core.Clamp(p.ReleaseMs, MinReleaseMs, MaxReleaseMs)
	return p
}

// updateCoefficients recalculates the cached gain computer values.
func (c *Compressor) updateCoefficients() {
	c.thresholdLog2 = c.params.ThresholdDB * log2Of10Div20
	c.kneeWidthLog2 = c.params.KneeDB * log2Of10Div20
	if c.params.KneeDB > 0 {
		c.invKneeWidthLog2 = 1.0 / c.kneeWidthLog2
	} else {
		c.invKneeWidthLog2 = 0
	}
	c.slope = 1.0 - 1.0/c.params.Ratio
}

// updateTimeConstants recalculates attack and release coefficients.
func (c *Compressor) updateTimeConstants() {
	// Attack: 1 - exp(-ln2 / (attack_sec * sample_rate))
	c.attackCoeff = 1.0 - math.Exp(-math.Ln2/(c.params.AttackMs*0.001*c.sampleRate))

	// Release: exp(-ln2 / (release_sec * sample_rate))
	c.releaseCoeff = math.Exp(-math.Ln2 / (c.params.ReleaseMs * 0.001 * c.sampleRate))
}

// calculateGain computes the gain multiplier with a quadratic soft knee
// of width k around the threshold, all in the log2 domain.
func (c *Compressor) calculateGain(peakLevel float64) float64 {
	if peakLevel <= 0 || c.slope == 0 {
		return 1.0
	}

	overshoot := levelLog2(peakLevel) - c.thresholdLog2

	if c.params.KneeDB <= 0 {
		if overshoot <= 0 {
			return 1.0
		}
		return gainExp2(-overshoot * c.slope)
	}

	halfWidth := c.kneeWidthLog2 * 0.5
	var effectiveOvershoot float64

	switch {
	case overshoot < -halfWidth:
		return 1.0
	case overshoot > halfWidth:
		effectiveOvershoot = overshoot
	default:
		// (overshoot + w/2)^2 / (2w)
		scratch := overshoot + halfWidth
		effectiveOvershoot = scratch * scratch * 0.5 * c.invKneeWidthLog2
	}

	return gainExp2(-effectiveOvershoot * c.slope)
}

// updateMetrics tracks peak levels and gain reduction.
func (c *Compressor) updateMetrics(inputLevel, outputLevel, gain float64) {
	if inputLevel > c.metrics.InputPeak {
		c.metrics.InputPeak = inputLevel
	}
	if outputLevel > c.metrics.OutputPeak {
		c.metrics.OutputPeak = outputLevel
	}
	if gain < c.metrics.GainReduction {
		c.metrics.GainReduction = gain
	}
}
