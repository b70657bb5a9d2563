package masterchain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tonechain/dsp/effects/dynamics"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
	"github.com/cwbudde/algo-tonechain/dsp/mapping"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDefaultTargetsAreNeutral(t *testing.T) {
	tg := DefaultControls().Targets()

	if tg.InputGain != 1 || tg.Mid != 1 || tg.Side != 1 {
		t.Errorf("input/width not neutral: %+v", tg)
	}
	if tg.PolarityL != 1 || tg.PolarityR != 1 || tg.Clip {
		t.Errorf("phase/clip not neutral: %+v", tg)
	}
	if tg.DriveWet != 0 || tg.DriveDry() != 1 || tg.ToneDB != 0 {
		t.Errorf("drive not neutral: %+v", tg)
	}
	for b, g := range tg.EQDB {
		if g != 0 {
			t.Errorf("band %d = %v dB", b, g)
		}
	}
	if tg.ReverbWet != 0 || tg.ReverbType != reverb.Room {
		t.Errorf("reverb not neutral: %+v", tg)
	}
	if !near(tg.OutputGain, 1) {
		t.Errorf("output gain = %v, want 1", tg.OutputGain)
	}

	cp := tg.Compressor
	if !near(cp.ThresholdDB, -24) || cp.Ratio != 1 || !near(cp.KneeDB, 6) {
		t.Errorf("compressor = %+v", cp)
	}
	if !near(cp.AttackMs, 5) || !near(cp.ReleaseMs, 80) {
		t.Errorf("speed preset = %v/%v ms, want 5/80", cp.AttackMs, cp.ReleaseMs)
	}
}

func TestWidthMapping(t *testing.T) {
	tests := []struct {
		width     float64
		mid, side float64
	}{
		{0, 1, 0},
		{50, 1, 1},
		{100, 1, 2},
	}

	for _, tt := range tests {
		c := DefaultControls()
		c.Width = mapping.Norm(tt.width)
		tg := c.Targets()
		if tg.Mid != tt.mid || tg.Side != tt.side {
			t.Errorf("width %v: mid=%v side=%v, want %v/%v", tt.width, tg.Mid, tg.Side, tt.mid, tt.side)
		}
	}
}

func TestStereoModeOffSilencesSide(t *testing.T) {
	c := DefaultControls()
	c.Width = 100
	c.Stereo = false

	if got := c.Targets().Side; got != 0 {
		t.Fatalf("side = %v, want 0", got)
	}
}

func TestTargetsClampOutOfRange(t *testing.T) {
	hi := DefaultControls()
	hi.Input, hi.Threshold, hi.Ratio, hi.Makeup, hi.Depth = 100, 100, 100, 100, 100
	hi.EQ[BandMid] = 100

	over := DefaultControls()
	over.Input, over.Threshold, over.Ratio, over.Makeup, over.Depth = 1e6, 250, 101, mapping.Normalized(math.Inf(1)), 400
	over.EQ[BandMid] = 150

	if a, b := over.Targets(), hi.Targets(); a != b {
		t.Fatalf("over-range targets %+v differ from boundary targets %+v", a, b)
	}

	lo := DefaultControls()
	lo.Input, lo.Width, lo.Tone = 0, 0, 0

	under := DefaultControls()
	under.Input, under.Width, under.Tone = -3, mapping.Normalized(math.NaN()), -1e9

	if a, b := under.Targets(), lo.Targets(); a != b {
		t.Fatalf("under-range targets %+v differ from boundary targets %+v", a, b)
	}
}

func TestReverbWetIsCapped(t *testing.T) {
	c := DefaultControls()
	c.Depth = 100
	if got := c.Targets().ReverbWet; got != 0.5 {
		t.Fatalf("wet = %v, want 0.5", got)
	}
}

func TestSpeedPresets(t *testing.T) {
	c := DefaultControls()
	c.SetSpeed(dynamics.SpeedSlow)
	cp := c.Targets().Compressor
	if !near(cp.AttackMs, 20) || !near(cp.ReleaseMs, 200) {
		t.Fatalf("slow preset = %v/%v ms, want 20/200", cp.AttackMs, cp.ReleaseMs)
	}

	c.Attack = 0
	if got := c.Targets().Compressor.AttackMs; got != 1 {
		t.Fatalf("attack after override = %v, want 1", got)
	}

	c.SetSpeed(dynamics.SpeedMode(7))
	if c.Speed != dynamics.SpeedSlow || c.Attack != 0 {
		t.Fatal("unknown speed mode must be ignored")
	}
}

func TestPanelsForceNeutralTargets(t *testing.T) {
	c := DefaultControls()
	c.Input, c.Width, c.Clip, c.PhaseL, c.PhaseR = 90, 0, true, true, true
	c.EQ = [NumBands]mapping.Normalized{0, 100, 0, 100}
	c.Drive, c.Mix, c.Bias, c.Tone = 80, 70, 10, 100

	c.InputPanel, c.EQPanel, c.DrivePanel = false, false, false
	tg := c.Targets()
	neutral := DefaultControls().Targets()

	if tg.InputGain != 1 || tg.Side != 1 || tg.Clip || tg.PolarityL != 1 || tg.PolarityR != 1 {
		t.Errorf("input panel off leaks: %+v", tg)
	}
	if tg.EQDB != neutral.EQDB {
		t.Errorf("eq panel off leaks: %v", tg.EQDB)
	}
	if tg.DriveWet != 0 || tg.ToneDB != 0 || tg.Curve != neutral.Curve {
		t.Errorf("drive panel off leaks: %+v", tg)
	}
}

func TestPanelDeactivationResetsControls(t *testing.T) {
	d := DefaultControls()

	c := d
	c.Drive, c.Mix, c.Bias, c.Tone = 80, 60, 10, 90
	c.SetDrivePanel(false)
	if c.Drive != d.Drive || c.Mix != d.Mix || c.Bias != d.Bias || c.Tone != d.Tone {
		t.Errorf("drive panel off kept values: %+v", c)
	}
	c.SetDrivePanel(true)
	if c.Targets() != d.Targets() {
		t.Error("reactivated drive panel does not return to defaults")
	}

	c.Input, c.PhaseL, c.Clip = 100, true, true
	c.SetInputPanel(false)
	c.SetInputPanel(true)
	if c.Input != d.Input || c.PhaseL || c.Clip {
		t.Errorf("input panel round trip kept values: %+v", c)
	}

	c.EQ[BandAir] = 100
	c.SetEQPanel(false)
	c.SetEQPanel(true)
	if c.EQ != d.EQ {
		t.Errorf("eq panel round trip kept values: %v", c.EQ)
	}
}

func TestTargetsIdempotent(t *testing.T) {
	c := DefaultControls()
	c.Drive, c.Bias, c.Texture, c.Depth = 33, 61, 20, 45
	if c.Targets() != c.Targets() {
		t.Fatal("Targets is not pure")
	}
}
