package masterchain

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
	"github.com/cwbudde/algo-tonechain/internal/testutil"
)

const testRate = 48000

func newTestChain(t *testing.T, opts ...Option) *Chain {
	t.Helper()
	c, err := New(append([]Option{WithSampleRate(testRate)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// render processes in through c in host blocks of size block.
func render(c *Chain, in []float64, block int) (l, r []float64) {
	l = make([]float64, len(in))
	r = make([]float64, len(in))
	for off := 0; off < len(in); off += block {
		end := min(off+block, len(in))
		c.Process(in[off:end], nil, l[off:end], r[off:end])
	}
	return l, r
}

func TestNewRejectsUnsupportedConfig(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"sample rate too low", WithSampleRate(4000), core.ErrUnsupportedSampleRate},
		{"sample rate NaN", WithSampleRate(math.NaN()), core.ErrUnsupportedSampleRate},
		{"three channels", WithChannels(3), core.ErrUnsupportedChannels},
		{"zero channels", WithChannels(0), core.ErrUnsupportedChannels},
		{"zero block size", WithMaxBlockSize(0), core.ErrInvalidBlockSize},
		{"core options", WithProcessorOptions(core.WithChannels(4)), core.ErrUnsupportedChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); !errors.Is(err, tt.want) {
				t.Fatalf("New error = %v, want %v", err, tt.want)
			}
		})
	}

	c, err := New(WithProcessorOptions(core.WithSampleRate(44100), core.WithBlockSize(32), core.WithChannels(1)))
	if err != nil {
		t.Fatalf("New with core options: %v", err)
	}
	if c.SampleRate() != 44100 || c.MaxBlockSize() != 32 || c.Channels() != 1 {
		t.Fatalf("core options not applied: %v Hz, block %d, %d channels", c.SampleRate(), c.MaxBlockSize(), c.Channels())
	}
}

func TestApplyOptionsDefaults(t *testing.T) {
	cfg, err := applyOptions(nil)
	if err != nil {
		t.Fatalf("applyOptions: %v", err)
	}
	if cfg.SampleRate != core.DefaultSampleRate || cfg.BlockSize != DefaultMaxBlockSize || cfg.Channels != core.MaxChannels {
		t.Fatalf("defaults: %+v", cfg.ProcessorConfig)
	}
	if cfg.seed != reverb.DefaultSeed {
		t.Fatalf("seed = %#x", cfg.seed)
	}

	if _, err := applyOptions([]Option{nil, WithMaxBlockSize(-1)}); !errors.Is(err, core.ErrInvalidBlockSize) {
		t.Fatalf("negative block size: %v", err)
	}
}

func TestNeutralChainPassesSine(t *testing.T) {
	c := newTestChain(t)
	in := testutil.DeterministicSine(1000, testRate, 0.5, testRate/2)

	l, r := render(c, in, 128)

	inRMS := testutil.RMS(in)
	for name, out := range map[string][]float64{"left": l, "right": r} {
		gotDB := 20 * math.Log10(testutil.RMS(out)/inRMS)
		if math.Abs(gotDB) > 0.05 {
			t.Errorf("%s RMS differs by %.3f dB", name, gotDB)
		}
		testutil.RequireSliceNearlyEqual(t, out, in, 1e-6)
	}
}

func TestWidthZeroCollapsesToMono(t *testing.T) {
	c := newTestChain(t)
	c.SetWidth(0)

	inL := testutil.DeterministicSine(440, testRate, 0.3, 16384)
	inR := testutil.DeterministicSine(660, testRate, 0.3, 16384)
	l := make([]float64, len(inL))
	r := make([]float64, len(inL))
	c.Process(inL, inR, l, r)

	// Skip the ramp.
	for i := 12000; i < len(l); i++ {
		if math.Abs(l[i]-r[i]) > 1e-9 {
			t.Fatalf("sample %d: L=%v R=%v", i, l[i], r[i])
		}
		want := (inL[i] + inR[i]) / 2
		if math.Abs(l[i]-want) > 1e-6 {
			t.Fatalf("sample %d: got %v, want mid %v", i, l[i], want)
		}
	}
}

func TestPhaseInversion(t *testing.T) {
	c := newTestChain(t)
	c.SetPhaseLeft(true)

	in := testutil.DeterministicSine(300, testRate, 0.4, 24000)
	l, r := render(c, in, 256)

	for i := 12000; i < len(in); i++ {
		if math.Abs(l[i]+in[i]) > 1e-6 || math.Abs(r[i]-in[i]) > 1e-6 {
			t.Fatalf("sample %d: L=%v R=%v in=%v", i, l[i], r[i], in[i])
		}
	}
}

func TestInputGainRampsWithoutSteps(t *testing.T) {
	c := newTestChain(t)
	in := testutil.DC(0.25, 256)
	l := make([]float64, 256)
	r := make([]float64, 256)

	c.Process(in, nil, l, r)
	c.SetInput(100)

	prev := l[len(l)-1]
	maxStep := 0.0
	for range 40 {
		c.Process(in, nil, l, r)
		for _, v := range l {
			maxStep = max(maxStep, math.Abs(v-prev))
			prev = v
		}
	}

	if maxStep > 0.002 {
		t.Errorf("largest sample step %v, gain change is not smoothed", maxStep)
	}
	if math.Abs(prev-0.5) > 1e-6 {
		t.Errorf("settled output %v, want 0.5", prev)
	}
}

func TestClipBoundsInput(t *testing.T) {
	c := newTestChain(t)
	c.SetInput(100)
	c.SetClip(true)

	in := testutil.DeterministicSine(200, testRate, 0.9, testRate/4)
	l, _ := render(c, in, 512)

	if peak := testutil.Peak(l[len(l)/2:]); peak > 1+1e-9 {
		t.Fatalf("peak %v exceeds the clip level", peak)
	}
}

func TestDriveSaturates(t *testing.T) {
	c := newTestChain(t)
	c.SetDrive(100)
	c.SetMix(100)

	in := testutil.DeterministicSine(220, testRate, 0.5, testRate/2)
	l, _ := render(c, in, 128)
	tail := l[len(l)/2:]

	testutil.RequireFinite(t, tail)
	if peak := testutil.Peak(tail); peak > 1+1e-9 {
		t.Errorf("shaped peak %v above 1", peak)
	}
	if testutil.RMS(tail) <= testutil.RMS(in[len(in)/2:]) {
		t.Error("full drive should raise the RMS of a 0.5 sine")
	}
}

func TestHQShapingMatchesLevel(t *testing.T) {
	in := testutil.DeterministicSine(220, testRate, 0.5, testRate/2)

	levels := make([]float64, 2)
	for i, hq := range []bool{false, true} {
		c := newTestChain(t)
		c.SetDrive(60)
		c.SetMix(100)
		c.SetHQ(hq)

		l, _ := render(c, in, 128)
		tail := l[len(l)/2:]
		testutil.RequireFinite(t, tail)
		levels[i] = testutil.RMS(tail)
	}

	if diff := 20 * math.Abs(math.Log10(levels[1]/levels[0])); diff > 1 {
		t.Fatalf("HQ level differs by %.2f dB", diff)
	}
}

func TestHQKeepsDryAndWetAligned(t *testing.T) {
	const amp = 0.01

	for _, freq := range []float64{1000, 4000, 8000, 12000} {
		var outs [2][]float64
		lat := 0
		for i, hq := range []bool{false, true} {
			c := newTestChain(t)
			c.SetMix(50)
			c.SetHQ(hq)

			in := testutil.DeterministicSine(freq, testRate, amp, testRate/4)
			outs[i], _ = render(c, in, 128)

			if hq {
				lat = c.over[0].Latency()
			}
			if got := c.DryLatency(); got != lat {
				t.Fatalf("DryLatency() = %d with HQ=%v, want %d", got, hq, lat)
			}
		}

		plain, hq := outs[0], outs[1]
		tail := len(plain) / 2
		diff := 20 * math.Log10(testutil.RMS(hq[tail:])/testutil.RMS(plain[tail:]))
		if math.Abs(diff) > 0.1 {
			t.Errorf("%v Hz: HQ level differs by %.3f dB at mix 50", freq, diff)
		}

		for i := tail; i < len(hq); i++ {
			if d := math.Abs(hq[i] - plain[i-lat]); d > 5e-4 {
				t.Fatalf("%v Hz sample %d: HQ %v, delayed plain %v", freq, i, hq[i], plain[i-lat])
			}
		}
	}
}

func TestReverbTypeChangesImpulseLength(t *testing.T) {
	c := newTestChain(t)
	if got, want := c.rev.Current().ImpulseLength(), int(math.Round(0.35*testRate)); got != want {
		t.Fatalf("room impulse length %d, want %d", got, want)
	}

	c.SetReverbType(reverb.Hall)
	buf := make([]float64, 64)
	c.Process(buf, nil, buf, make([]float64, 64))

	if got, want := c.rev.Current().ImpulseLength(), int(math.Round(1.5*testRate)); got != want {
		t.Fatalf("hall impulse length %d, want %d", got, want)
	}
	if c.Controls().ReverbType != reverb.Hall {
		t.Fatal("controls do not record the reverb type")
	}

	c.SetReverbType(reverb.Type(42))
	if c.Controls().ReverbType != reverb.Hall {
		t.Fatal("unknown reverb type must be ignored")
	}
}

func TestReverbDepthAddsDecorrelatedTail(t *testing.T) {
	in := testutil.Impulse(testRate/2, 0)

	dry := newTestChain(t)
	dl, _ := render(dry, in, 128)
	if tail := testutil.RMS(dl[1000:]); tail > 1e-9 {
		t.Fatalf("depth 0 leaves a tail of RMS %v", tail)
	}

	wet := newTestChain(t)
	wet.SetDepth(100)
	in = testutil.Impulse(testRate/2, testRate/8)
	wl, wr := render(wet, in, 128)

	tailL, tailR := wl[testRate/8+wet.Latency()+10:], wr[testRate/8+wet.Latency()+10:]
	if testutil.RMS(tailL) == 0 || testutil.RMS(tailR) == 0 {
		t.Fatal("depth 100 produced no reverb tail")
	}
	if corr := math.Abs(testutil.Correlation(tailL, tailR)); corr > 0.2 {
		t.Errorf("reverb channels correlate at %.2f", corr)
	}
}

func TestBufferShapesAreNoOpTicks(t *testing.T) {
	c := newTestChain(t)

	c.Process(nil, nil, nil, nil)
	c.ProcessMono(nil, nil)

	outL := []float64{1, 1, 1, 1}
	outR := []float64{1, 1}
	c.Process([]float64{0.5, 0.5, 0.5, 0.5}, nil, outL, outR)
	for i, v := range append(outL, outR...) {
		if v != 0 {
			t.Fatalf("mismatched output %d = %v, want cleared", i, v)
		}
	}

	// Short input reads as silence.
	in := testutil.DC(0.5, 10)
	l := make([]float64, 64)
	r := make([]float64, 64)
	c.Process(in, nil, l, r)
	for i := 10; i < 64; i++ {
		if math.Abs(l[i]) > 1e-12 || math.Abs(r[i]) > 1e-12 {
			t.Fatalf("sample %d after short input = %v/%v", i, l[i], r[i])
		}
	}

	// Nil input is silence.
	c.Reset()
	c.Process(nil, nil, l, r)
	if testutil.Peak(l) > 1e-12 {
		t.Fatal("nil input did not produce silence")
	}
}

func TestProcessMonoDownmixes(t *testing.T) {
	c := newTestChain(t, WithChannels(1))
	in := testutil.DeterministicSine(500, testRate, 0.5, 2048)
	out := make([]float64, len(in))
	copy(out, in)

	c.ProcessMono(out, out)
	testutil.RequireSliceNearlyEqual(t, out, in, 1e-6)
}

func TestSetterIdempotence(t *testing.T) {
	c := newTestChain(t)
	c.SetDrive(40)
	c.SetBias(70)
	first := c.Targets()

	c.SetDrive(40)
	c.SetBias(70)
	if c.Targets() != first {
		t.Fatal("repeating a setter changed the targets")
	}
}

func TestSettersClamp(t *testing.T) {
	c := newTestChain(t)

	c.SetInput(250)
	c.SetThreshold(-10)
	c.SetMaster(math.NaN())
	c.SetEQ(BandLow, 1e9)
	c.SetEQ(9, 0)

	ctl := c.Controls()
	if ctl.Input != 100 || ctl.Threshold != 0 || ctl.Master != 0 || ctl.EQ[BandLow] != 100 {
		t.Fatalf("controls not clamped: %+v", ctl)
	}

	tg := c.Targets()
	if tg.InputGain != 2 || tg.Compressor.ThresholdDB != -60 || tg.OutputGain != 0 || tg.EQDB[BandLow] != 12 {
		t.Fatalf("targets not at the boundary: %+v", tg)
	}
}

func TestDrivePanelResetThroughChain(t *testing.T) {
	c := newTestChain(t)
	c.SetDrive(90)
	c.SetMix(100)
	c.SetDrivePanel(false)

	tg := c.Targets()
	if tg.DriveWet != 0 || tg.Curve.Amount != 0 {
		t.Fatalf("drive panel off: %+v", tg)
	}

	c.SetDrive(50)
	if got := c.Targets().Curve.Amount; got != 0 {
		t.Fatalf("inactive panel leaked drive %v", got)
	}

	c.SetDrivePanel(true)
	tg = c.Targets()
	if tg.Curve.Amount != 0.5 || tg.DriveWet != 0 {
		t.Fatalf("reactivated panel: amount %v wet %v, want 0.5 and reset mix 0", tg.Curve.Amount, tg.DriveWet)
	}
}

func TestCompressorMetering(t *testing.T) {
	c := newTestChain(t)
	c.SetThreshold(0)
	c.SetRatio(100)

	in := testutil.DeterministicSine(1000, testRate, 0.5, testRate/2)
	render(c, in, 256)

	m := c.Meter()
	if m.GainReductionDB < 10 {
		t.Errorf("gain reduction %.2f dB, want heavy compression", m.GainReductionDB)
	}
	if m.OutputPeak <= 0 || m.OutputPeak >= 0.5 {
		t.Errorf("output peak %v", m.OutputPeak)
	}

	c.Reset()
	if c.Meter() != (Meter{}) {
		t.Error("Reset did not clear the meters")
	}
}

func TestSetSampleRateRegeneratesImpulse(t *testing.T) {
	c := newTestChain(t)

	if err := c.SetSampleRate(96000); err != nil {
		t.Fatal(err)
	}
	if got, want := c.rev.Current().ImpulseLength(), reverb.ImpulseLength(reverb.Room, 96000); got != want {
		t.Fatalf("impulse length %d at 96 kHz, want %d", got, want)
	}
	if c.SampleRate() != 96000 {
		t.Fatalf("SampleRate() = %v", c.SampleRate())
	}

	in := testutil.DeterministicSine(1000, 96000, 0.5, 9600)
	l, _ := render(c, in, 100)
	testutil.RequireSliceNearlyEqual(t, l, in, 1e-6)

	if err := c.SetSampleRate(1); !errors.Is(err, core.ErrUnsupportedSampleRate) {
		t.Fatalf("expected ErrUnsupportedSampleRate, got %v", err)
	}
}

func TestLowSampleRateKeepsFiltersStable(t *testing.T) {
	c := newTestChain(t, WithSampleRate(8000))
	c.SetEQAir(100)
	c.SetTone(100)

	in := testutil.DeterministicNoise(7, 0.3, 8000)
	l, r := render(c, in, 160)
	testutil.RequireFinite(t, l)
	testutil.RequireFinite(t, r)
}

func TestConcurrentSetters(t *testing.T) {
	c := newTestChain(t)
	in := testutil.DeterministicSine(440, testRate, 0.5, 256)
	l := make([]float64, 256)
	r := make([]float64, 256)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 200 {
			v := float64(i % 101)
			c.SetDrive(v)
			c.SetMix(v)
			c.SetWidth(100 - v)
			c.SetEQMid(v)
			c.SetDepth(v)
		}
		c.SetReverbType(reverb.Plate)
	}()

	for range 200 {
		c.Process(in, nil, l, r)
		testutil.RequireFinite(t, l)
		testutil.RequireFinite(t, r)
	}
	wg.Wait()
}
