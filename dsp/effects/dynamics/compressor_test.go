package dynamics

import (
	"math"
	"testing"
)

func TestNewCompressor(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		wantErr    bool
	}{
		{"valid 44100", 44100, false},
		{"valid 48000", 48000, false},
		{"invalid zero", 0, true},
		{"invalid negative", -1, true},
		{"invalid NaN", math.NaN(), true},
		{"invalid +Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompressor(tt.sampleRate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCompressor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Fatal("NewCompressor() returned nil without error")
			}
		})
	}
}

func TestDefaultIsTransparent(t *testing.T) {
	c, _ := NewCompressor(48000)
	for i := range 4800 {
		x := 0.9 * math.Sin(2*math.Pi*1000*float64(i)/48000)
		if y := c.ProcessSample(x); y != x {
			t.Fatalf("sample %d: ratio 1:1 changed %v to %v", i, x, y)
		}
	}
	if c.GainReductionDB() != 0 {
		t.Fatalf("GainReductionDB = %v, want 0", c.GainReductionDB())
	}
}

func TestStaticCurve(t *testing.T) {
	c, _ := NewCompressor(48000)
	c.SetParams(Params{ThresholdDB: -20, Ratio: 4, KneeDB: 0, AttackMs: 5, ReleaseMs: 80})

	below := math.Pow(10, -30.0/20)
	if g := c.StaticGain(below); g != 1 {
		t.Fatalf("gain below threshold = %v, want 1", g)
	}

	// 20 dB over a -20 dB threshold at 4:1 leaves 5 dB: 15 dB reduction.
	above := 1.0
	wantDB := -15.0
	if got := 20 * math.Log10(c.StaticGain(above)); math.Abs(got-wantDB) > 1e-6 {
		t.Fatalf("gain above threshold = %.4f dB, want %.4f", got, wantDB)
	}
}

func TestSoftKneeIsContinuous(t *testing.T) {
	c, _ := NewCompressor(48000)
	c.SetParams(Params{ThresholdDB: -20, Ratio: 8, KneeDB: 12, AttackMs: 5, ReleaseMs: 80})

	prev := c.StaticGain(math.Pow(10, -40.0/20))
	for db := -40.0; db <= 0; db += 0.1 {
		g := c.StaticGain(math.Pow(10, db/20))
		if g > prev+1e-12 {
			t.Fatalf("gain increased with level at %.1f dB", db)
		}
		if math.Abs(20*math.Log10(g)-20*math.Log10(prev)) > 0.2 {
			t.Fatalf("gain jumps at %.1f dB", db)
		}
		prev = g
	}
}

func TestLinkedStereoAppliesSameGain(t *testing.T) {
	c, _ := NewCompressor(48000)
	c.SetParams(Params{ThresholdDB: -30, Ratio: 10, KneeDB: 0, AttackMs: 1, ReleaseMs: 50})

	left := make([]float64, 2000)
	right := make([]float64, 2000)
	for i := range left {
		left[i] = 0.8
		right[i] = 0.2
	}
	c.ProcessStereoInPlace(left, right)

	last := len(left) - 1
	if ratio := left[last] / right[last]; math.Abs(ratio-4) > 1e-9 {
		t.Fatalf("channel ratio = %v, want 4 (image must not shift)", ratio)
	}
	if left[last] >= 0.8 {
		t.Fatalf("loud channel not compressed: %v", left[last])
	}
	if c.GainReductionDB() <= 0 {
		t.Fatal("expected positive gain reduction")
	}
	if m := c.Metrics(); m.GainReduction >= 1 || m.InputPeak != 0.8 {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestSetParamsClamps(t *testing.T) {
	c, _ := NewCompressor(48000)
	c.SetParams(Params{ThresholdDB: math.NaN(), Ratio: 500, KneeDB: -3, AttackMs: 0, ReleaseMs: 1e9})
	p := c.Params()
	if p.ThresholdDB != 0 || p.Ratio != MaxRatio || p.KneeDB != MinKneeDB ||
		p.AttackMs != MinAttackMs || p.ReleaseMs != MaxReleaseMs {
		t.Fatalf("clamped params = %+v", p)
	}
}

func TestSpeedModes(t *testing.T) {
	a, r := SpeedFast.Times()
	if a != 5 || r != 80 {
		t.Fatalf("fast = %v/%v", a, r)
	}
	a, r = SpeedSlow.Times()
	if a != 20 || r != 200 {
		t.Fatalf("slow = %v/%v", a, r)
	}
	if m, ok := ParseSpeedMode("slow"); !ok || m != SpeedSlow || m.String() != "slow" {
		t.Fatalf("ParseSpeedMode(slow) = %v, %v", m, ok)
	}
	if _, ok := ParseSpeedMode("medium"); ok {
		t.Fatal("unknown speed mode accepted")
	}
}

func TestAttackIsFasterThanRelease(t *testing.T) {
	c, _ := NewCompressor(48000)
	c.SetParams(Params{ThresholdDB: -40, Ratio: 20, KneeDB: 0, AttackMs: 5, ReleaseMs: 200})

	for range 4800 {
		c.ProcessSample(1)
	}
	engaged := c.GainReductionDB()

	for range 240 { // 5 ms of silence
		c.ProcessSample(0)
	}
	if c.GainReductionDB() < engaged*0.5 {
		t.Fatalf("release too fast: %.2f dB left of %.2f dB", c.GainReductionDB(), engaged)
	}

	c.Reset()
	if c.GainReductionDB() != 0 {
		t.Fatal("Reset should clear the detector")
	}
}
