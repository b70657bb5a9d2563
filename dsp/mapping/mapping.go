package mapping

import "github.com/cwbudde/algo-tonechain/dsp/core"

// Normalized is a control value clamped to [Min, Max].
type Normalized float64

// Slider bounds and centre.
const (
	Min    Normalized = 0
	Max    Normalized = 100
	Center Normalized = 50
)

// Norm clamps v into the slider range.
func Norm(v float64) Normalized {
	return Normalized(core.Clamp(v, float64(Min), float64(Max)))
}

// Float returns v as a plain float64.
func (v Normalized) Float() float64 { return float64(v) }

// unit returns v scaled to [0, 1].
func (v Normalized) unit() float64 { return float64(v) / float64(Max) }

// bipolar returns v scaled to [-1, 1] with the centre at 0.
func (v Normalized) bipolar() float64 { return (float64(v) - float64(Center)) / float64(Center) }

// Physical ranges of the mapped parameters.
const (
	MaxInputGain   = 2.0
	MaxSideGain    = 2.0
	EQRangeDB      = 12.0
	ToneRangeDB    = 10.0
	MinThresholdDB = -60.0
	MaxThresholdDB = -20.0
	MaxRatio       = 20.0
	MinMakeup      = 0.5
	MaxMakeup      = 2.0
	MaxReverbWet   = 0.5
	MaxBias        = 0.5
	MinAttackMs    = 1.0
	MaxAttackMs    = 100.0
	MinReleaseMs   = 20.0
	MaxReleaseMs   = 1000.0
	MaxKneeDB      = 40.0
	MaxMasterGain  = 1.5
)

// InputGain maps to a linear input gain in [0, 2]: value/50.
func InputGain(v Normalized) float64 {
	return float64(v) / float64(Center)
}

// SideGain maps the width control to the side-channel gain in [0, 2]:
// 1 + (value-50)/50. 0 is mono, 50 is unchanged stereo.
func SideGain(v Normalized) float64 {
	return 1 + v.bipolar()
}

// MidGain is the mid-channel gain for any width setting.
func MidGain(Normalized) float64 {
	return 1
}

// EQGainDB maps an EQ band control to ±12 dB: (value-50)/50 × 12.
func EQGainDB(v Normalized) float64 {
	return v.bipolar() * EQRangeDB
}

// ToneDB maps the post-saturation tone shelf control to ±10 dB.
func ToneDB(v Normalized) float64 {
	return v.bipolar() * ToneRangeDB
}

// ThresholdDB maps to a compressor threshold in [-60, -20] dB.
func ThresholdDB(v Normalized) float64 {
	return MinThresholdDB + v.unit()*(MaxThresholdDB-MinThresholdDB)
}

// Ratio maps to a compression ratio in [1, 20].
func Ratio(v Normalized) float64 {
	return 1 + v.unit()*(MaxRatio-1)
}

// MakeupGain maps to a linear makeup gain in [0.5, 2].
func MakeupGain(v Normalized) float64 {
	return MinMakeup + v.unit()*(MaxMakeup-MinMakeup)
}

// ReverbWet maps the depth control to the reverb send, capped at 0.5.
func ReverbWet(v Normalized) float64 {
	return min(v.unit(), MaxReverbWet)
}

// DriveAmount maps the drive control to [0, 1].
func DriveAmount(v Normalized) float64 {
	return v.unit()
}

// CurveK is the soft-clip steepness derived from a drive amount in [0, 1].
func CurveK(amount float64) float64 {
	return core.Clamp(amount, 0, 1)*10 + 1
}

// DriveMix maps the saturation mix to the wet gain; the dry gain is 1-wet.
func DriveMix(v Normalized) float64 {
	return v.unit()
}

// Bias maps to the waveshaper bias offset in [-0.5, 0.5].
func Bias(v Normalized) float64 {
	return v.bipolar() * MaxBias
}

// Texture maps to the curve blend amount in [0, 1].
func Texture(v Normalized) float64 {
	return v.unit()
}

// AttackMs maps to a compressor attack time in [1, 100] ms.
func AttackMs(v Normalized) float64 {
	return MinAttackMs + v.unit()*(MaxAttackMs-MinAttackMs)
}

// ReleaseMs maps to a compressor release time in [20, 1000] ms.
func ReleaseMs(v Normalized) float64 {
	return MinReleaseMs + v.unit()*(MaxReleaseMs-MinReleaseMs)
}

// KneeDB maps to a soft-knee width in [0, 40] dB.
func KneeDB(v Normalized) float64 {
	return v.unit() * MaxKneeDB
}

// MasterGain maps to the output level in [0, 1.5] with unity at the centre:
// the lower half spans 0..1, the upper half 1..1.5.
func MasterGain(v Normalized) float64 {
	if v <= Center {
		return float64(v) / float64(Center)
	}
	return 1 + v.bipolar()*(MaxMasterGain-1)
}

// Range maps v linearly onto [lo, hi]. Used for pedal knobs.
func Range(v Normalized, lo, hi float64) float64 {
	return lo + v.unit()*(hi-lo)
}

// FromRange is the inverse of Range, clamped to the slider bounds.
func FromRange(x, lo, hi float64) Normalized {
	if hi == lo {
		return Min
	}
	return Norm((x - lo) / (hi - lo) * float64(Max))
}
