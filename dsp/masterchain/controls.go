package masterchain

import (
	"github.com/cwbudde/algo-tonechain/dsp/effects/dynamics"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
	"github.com/cwbudde/algo-tonechain/dsp/effects/saturation"
	"github.com/cwbudde/algo-tonechain/dsp/mapping"
)

// EQ band indices.
const (
	BandLow = iota
	BandMid
	BandHigh
	BandAir

	NumBands
)

// Controls is the flat set of values owned by the control surface.
// Sliders are normalized to [0, 100].
type Controls struct {
	Input  mapping.Normalized
	Width  mapping.Normalized
	Clip   bool
	PhaseL bool
	PhaseR bool

	EQ [NumBands]mapping.Normalized

	Speed     dynamics.SpeedMode
	Attack    mapping.Normalized
	Release   mapping.Normalized
	Ratio     mapping.Normalized
	Threshold mapping.Normalized
	Knee      mapping.Normalized
	Makeup    mapping.Normalized

	Drive   mapping.Normalized
	Mix     mapping.Normalized
	Bias    mapping.Normalized
	Tone    mapping.Normalized
	Texture mapping.Normalized
	HQ      bool

	Depth      mapping.Normalized
	ReverbType reverb.Type

	Stereo bool
	Master mapping.Normalized

	InputPanel bool
	EQPanel    bool
	DrivePanel bool
}

// DefaultControls returns the power-on state: every panel active, every
// stage at its neutral value, compressor at -24 dB and 1:1 on the fast
// preset.
func DefaultControls() Controls {
	c := Controls{
		Input:     mapping.Center,
		Width:     mapping.Center,
		Ratio:     mapping.Min,
		Threshold: mapping.FromRange(-24, mapping.MinThresholdDB, mapping.MaxThresholdDB),
		Knee:      mapping.FromRange(6, 0, mapping.MaxKneeDB),
		Makeup:    mapping.FromRange(1, mapping.MinMakeup, mapping.MaxMakeup),
		Bias:      mapping.Center,
		Tone:      mapping.Center,
		Stereo:    true,
		Master:    mapping.Center,

		ReverbType: reverb.Room,

		InputPanel: true,
		EQPanel:    true,
		DrivePanel: true,
	}
	for b := range c.EQ {
		c.EQ[b] = mapping.Center
	}
	c.SetSpeed(dynamics.SpeedFast)
	return c
}

// SetSpeed selects a speed preset and moves the attack and release
// sliders to it. Later attack or release changes override the preset.
// Unknown modes are ignored.
func (c *Controls) SetSpeed(m dynamics.SpeedMode) {
	if m != dynamics.SpeedFast && m != dynamics.SpeedSlow {
		return
	}
	attack, release := m.Times()
	c.Speed = m
	c.Attack = mapping.FromRange(attack, mapping.MinAttackMs, mapping.MaxAttackMs)
	c.Release = mapping.FromRange(release, mapping.MinReleaseMs, mapping.MaxReleaseMs)
}

// SetInputPanel gates input gain, width, clip and phase. Switching the
// panel off returns those controls to their defaults.
func (c *Controls) SetInputPanel(on bool) {
	if !on {
		d := DefaultControls()
		c.Input, c.Width, c.Clip, c.PhaseL, c.PhaseR = d.Input, d.Width, d.Clip, d.PhaseL, d.PhaseR
	}
	c.InputPanel = on
}

// SetEQPanel gates the four EQ bands.
func (c *Controls) SetEQPanel(on bool) {
	if !on {
		c.EQ = DefaultControls().EQ
	}
	c.EQPanel = on
}

// SetDrivePanel gates drive, mix, bias and tone.
func (c *Controls) SetDrivePanel(on bool) {
	if !on {
		d := DefaultControls()
		c.Drive, c.Mix, c.Bias, c.Tone = d.Drive, d.Mix, d.Bias, d.Tone
	}
	c.DrivePanel = on
}

// Targets holds the physical stage parameters derived from Controls.
type Targets struct {
	InputGain float64
	Clip      bool

	Compressor dynamics.Params

	Curve    saturation.CurveParams
	DriveWet float64
	ToneDB   float64

	EQDB [NumBands]float64

	Mid       float64
	Side      float64
	PolarityL float64
	PolarityR float64

	ReverbWet  float64
	ReverbType reverb.Type

	// OutputGain is master times makeup.
	OutputGain float64
}

// DriveDry returns the dry gain of the drive mix.
func (t Targets) DriveDry() float64 { return 1 - t.DriveWet }

// Targets derives the stage parameters. It is pure: equal Controls always
// give equal Targets. Inactive panels yield neutral values.
func (c Controls) Targets() Targets {
	c = c.Clamped()
	t := Targets{
		InputGain: 1,
		Mid:       1,
		Side:      1,
		PolarityL: 1,
		PolarityR: 1,
		Compressor: dynamics.Params{
			ThresholdDB: mapping.ThresholdDB(c.Threshold),
			Ratio:       mapping.Ratio(c.Ratio),
			KneeDB:      mapping.KneeDB(c.Knee),
			AttackMs:    mapping.AttackMs(c.Attack),
			ReleaseMs:   mapping.ReleaseMs(c.Release),
		},
		Curve: saturation.CurveParams{
			Texture: mapping.Texture(c.Texture),
			HQ:      c.HQ,
		},
		ReverbWet:  mapping.ReverbWet(c.Depth),
		ReverbType: c.ReverbType,
		OutputGain: mapping.MasterGain(c.Master) * mapping.MakeupGain(c.Makeup),
	}

	if c.InputPanel {
		t.InputGain = mapping.InputGain(c.Input)
		t.Clip = c.Clip
		t.Mid = mapping.MidGain(c.Width)
		t.Side = mapping.SideGain(c.Width)
		if c.PhaseL {
			t.PolarityL = -1
		}
		if c.PhaseR {
			t.PolarityR = -1
		}
	}
	if !c.Stereo {
		t.Side = 0
	}

	if c.EQPanel {
		for b := range t.EQDB {
			t.EQDB[b] = mapping.EQGainDB(c.EQ[b])
		}
	}

	if c.DrivePanel {
		t.Curve.Amount = mapping.DriveAmount(c.Drive)
		t.Curve.Bias = mapping.Bias(c.Bias)
		t.DriveWet = mapping.DriveMix(c.Mix)
		t.ToneDB = mapping.ToneDB(c.Tone)
	}

	return t
}

// Clamped returns c with every slider bounded to the normalized range.
func (c Controls) Clamped() Controls {
	c.Input = clampNorm(c.Input)
	c.Width = clampNorm(c.Width)
	for b := range c.EQ {
		c.EQ[b] = clampNorm(c.EQ[b])
	}
	c.Attack = clampNorm(c.Attack)
	c.Release = clampNorm(c.Release)
	c.Ratio = clampNorm(c.Ratio)
	c.Threshold = clampNorm(c.Threshold)
	c.Knee = clampNorm(c.Knee)
	c.Makeup = clampNorm(c.Makeup)
	c.Drive = clampNorm(c.Drive)
	c.Mix = clampNorm(c.Mix)
	c.Bias = clampNorm(c.Bias)
	c.Tone = clampNorm(c.Tone)
	c.Texture = clampNorm(c.Texture)
	c.Depth = clampNorm(c.Depth)
	c.Master = clampNorm(c.Master)
	return c
}

func clampNorm(v mapping.Normalized) mapping.Normalized {
	return mapping.Norm(float64(v))
}
