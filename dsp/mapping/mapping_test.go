package mapping

import (
	"math"
	"testing"
)

type mappingCase struct {
	name string
	fn   func(Normalized) float64
	at0  float64
	at50 float64
	at1h float64
}

var mappings = []mappingCase{
	{name: "input", fn: InputGain, at0: 0, at50: 1, at1h: 2},
	{name: "side", fn: SideGain, at0: 0, at50: 1, at1h: 2},
	{name: "mid", fn: MidGain, at0: 1, at50: 1, at1h: 1},
	{name: "eq", fn: EQGainDB, at0: -12, at50: 0, at1h: 12},
	{name: "tone", fn: ToneDB, at0: -10, at50: 0, at1h: 10},
	{name: "threshold", fn: ThresholdDB, at0: -60, at50: -40, at1h: -20},
	{name: "ratio", fn: Ratio, at0: 1, at50: 10.5, at1h: 20},
	{name: "makeup", fn: MakeupGain, at0: 0.5, at50: 1.25, at1h: 2},
	{name: "reverb", fn: ReverbWet, at0: 0, at50: 0.5, at1h: 0.5},
	{name: "drive", fn: DriveAmount, at0: 0, at50: 0.5, at1h: 1},
	{name: "mix", fn: DriveMix, at0: 0, at50: 0.5, at1h: 1},
	{name: "bias", fn: Bias, at0: -0.5, at50: 0, at1h: 0.5},
	{name: "texture", fn: Texture, at0: 0, at50: 0.5, at1h: 1},
	{name: "attack", fn: AttackMs, at0: 1, at50: 50.5, at1h: 100},
	{name: "release", fn: ReleaseMs, at0: 20, at50: 510, at1h: 1000},
	{name: "knee", fn: KneeDB, at0: 0, at50: 20, at1h: 40},
	{name: "master", fn: MasterGain, at0: 0, at50: 1, at1h: 1.5},
}

func TestMappingEndpoints(t *testing.T) {
	for _, m := range mappings {
		t.Run(m.name, func(t *testing.T) {
			checks := []struct {
				in   float64
				want float64
			}{
				{0, m.at0},
				{50, m.at50},
				{100, m.at1h},
			}
			for _, c := range checks {
				if got := m.fn(Norm(c.in)); math.Abs(got-c.want) > 1e-12 {
					t.Fatalf("%s(%v) = %v, want %v", m.name, c.in, got, c.want)
				}
			}
		})
	}
}

func TestMappingClampsOutOfRange(t *testing.T) {
	outside := []struct {
		in    float64
		bound float64
	}{
		{-1, 0},
		{-1e9, 0},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
		{100.0001, 100},
		{250, 100},
		{math.Inf(1), 100},
	}
	for _, m := range mappings {
		for _, o := range outside {
			got := m.fn(Norm(o.in))
			want := m.fn(Norm(o.bound))
			if got != want {
				t.Fatalf("%s(%v) = %v, want boundary value %v", m.name, o.in, got, want)
			}
		}
	}
}

func TestMappingIdempotent(t *testing.T) {
	for _, m := range mappings {
		for _, v := range []float64{0, 13.7, 50, 99.9} {
			if a, b := m.fn(Norm(v)), m.fn(Norm(v)); a != b {
				t.Fatalf("%s(%v) not idempotent: %v vs %v", m.name, v, a, b)
			}
		}
	}
}

func TestCurveK(t *testing.T) {
	if got := CurveK(0); got != 1 {
		t.Fatalf("CurveK(0) = %v, want 1", got)
	}
	if got := CurveK(1); got != 11 {
		t.Fatalf("CurveK(1) = %v, want 11", got)
	}
	if got := CurveK(4); got != 11 {
		t.Fatalf("CurveK(4) = %v, want clamped 11", got)
	}
}

func TestRangeRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 25, 50, 100} {
		x := Range(Norm(v), 300, 2000)
		if back := FromRange(x, 300, 2000); math.Abs(float64(back)-v) > 1e-9 {
			t.Fatalf("FromRange(Range(%v)) = %v", v, back)
		}
	}
	if got := FromRange(5, 1, 1); got != Min {
		t.Fatalf("FromRange with empty range = %v, want %v", got, Min)
	}
}
