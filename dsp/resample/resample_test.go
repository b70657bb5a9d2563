package resample

import (
	"errors"
	"math"
	"testing"
)

func TestPrototypeIsSymmetricWithUnityGain(t *testing.T) {
	taps, err := DefaultProfile.Prototype(4)
	if err != nil {
		t.Fatalf("Prototype() error = %v", err)
	}
	if len(taps) != 4*DefaultProfile.TapsPerPhase {
		t.Fatalf("len(taps) = %d", len(taps))
	}

	sum := 0.0
	for i, v := range taps {
		sum += v
		if mirror := taps[len(taps)-1-i]; math.Abs(v-mirror) > 1e-15 {
			t.Fatalf("tap %d = %v, mirror %v", i, v, mirror)
		}
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("DC gain = %v, want 1", sum)
	}
}

func TestValidation(t *testing.T) {
	if _, err := NewInterpolator(1, DefaultProfile); !errors.Is(err, ErrInvalidFactor) {
		t.Fatalf("factor 1: got %v, want ErrInvalidFactor", err)
	}
	if _, err := NewDecimator(0, DefaultProfile); !errors.Is(err, ErrInvalidFactor) {
		t.Fatalf("factor 0: got %v, want ErrInvalidFactor", err)
	}

	bad := []Profile{
		{TapsPerPhase: 0, CutoffScale: 0.9, KaiserBeta: 7},
		{TapsPerPhase: 8, CutoffScale: 0, KaiserBeta: 7},
		{TapsPerPhase: 8, CutoffScale: 1.5, KaiserBeta: 7},
		{TapsPerPhase: 8, CutoffScale: 0.9, KaiserBeta: math.NaN()},
	}
	for _, p := range bad {
		if _, err := NewInterpolator(2, p); !errors.Is(err, ErrInvalidProfile) {
			t.Fatalf("%+v: got %v, want ErrInvalidProfile", p, err)
		}
	}

	if _, err := Lowpass(16, 0.5, 5); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("cutoff 0.5: got %v", err)
	}
}

func TestInterpolatorHoldsDC(t *testing.T) {
	u, err := NewInterpolator(4, DefaultProfile)
	if err != nil {
		t.Fatal(err)
	}

	out := make([]float64, 4)
	for range 2 * DefaultProfile.TapsPerPhase {
		u.Process(out, 0.5)
	}
	for k, v := range out {
		if math.Abs(v-0.5) > 1e-3 {
			t.Fatalf("phase %d = %v, want 0.5", k, v)
		}
	}
}

func TestRoundTripIsPureDelay(t *testing.T) {
	const factor = 4
	lat := DefaultProfile.Latency()

	for _, freq := range []float64{0.01, 0.1, 0.25} {
		u, err := NewInterpolator(factor, DefaultProfile)
		if err != nil {
			t.Fatal(err)
		}
		d, err := NewDecimator(factor, DefaultProfile)
		if err != nil {
			t.Fatal(err)
		}

		const n = 2000
		in := make([]float64, n)
		out := make([]float64, n)
		hi := make([]float64, factor)
		for i := range in {
			in[i] = math.Sin(2 * math.Pi * freq * float64(i))
			u.Process(hi, in[i])
			out[i] = d.Process(hi)
		}

		for i := 500; i < n; i++ {
			if diff := math.Abs(out[i] - in[i-lat]); diff > 5e-3 {
				t.Fatalf("freq %v sample %d: got %v, want %v (diff %v)", freq, i, out[i], in[i-lat], diff)
			}
		}
	}
}

func TestResetClearsHistory(t *testing.T) {
	u, _ := NewInterpolator(2, DefaultProfile)
	d, _ := NewDecimator(2, DefaultProfile)
	hi := make([]float64, 2)
	for range 10 {
		u.Process(hi, 1)
		d.Process(hi)
	}

	u.Reset()
	d.Reset()
	u.Process(hi, 0)
	if hi[0] != 0 || hi[1] != 0 || d.Process(hi) != 0 {
		t.Fatal("history survived Reset")
	}
	if u.Factor() != 2 || d.Factor() != 2 {
		t.Fatalf("factors %d/%d", u.Factor(), d.Factor())
	}
}

func TestProcessDoesNotAllocate(t *testing.T) {
	u, _ := NewInterpolator(4, DefaultProfile)
	d, _ := NewDecimator(4, DefaultProfile)
	hi := make([]float64, 4)

	x := 0.0
	allocs := testing.AllocsPerRun(100, func() {
		x += 0.1
		u.Process(hi, math.Sin(x))
		d.Process(hi)
	})
	if allocs != 0 {
		t.Fatalf("%v allocations per sample", allocs)
	}
}
