package masterchain

import (
	"fmt"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/delay"
	"github.com/cwbudde/algo-tonechain/dsp/effects/dynamics"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
	"github.com/cwbudde/algo-tonechain/dsp/effects/saturation"
	"github.com/cwbudde/algo-tonechain/dsp/filter/biquad"
	"github.com/cwbudde/algo-tonechain/dsp/mapping"
	"github.com/cwbudde/algo-tonechain/dsp/param"
)

// Meter is a snapshot of the output meters.
type Meter struct {
	// GainReductionDB is the compressor reduction at the end of the last
	// block, as a non-negative number.
	GainReductionDB float64
	// OutputPeak is the largest absolute output sample of the last block.
	OutputPeak float64
}

type bus struct {
	l, r []float64
}

// Chain is the master chain: a fixed stage table wired once at
// construction and re-parameterized through setters.
//
// Setters may be called from any goroutine. They neither lock nor
// allocate: each one stores the controls it changed, and the audio thread
// derives new Targets at the start of the next slice and ramps towards
// them. Process, Reset and SetSampleRate belong to the audio side; Reset
// and SetSampleRate require the stream to be stopped.
type Chain struct {
	cfg  config
	topo *topology

	buses [numStages]bus

	// Control side.
	store controlStore
	rate  param.Float

	// Audio side.
	seen    uint64
	applied Targets

	// One engine per reverb type, built with the current sample rate.
	engines    [reverb.NumTypes]*reverb.Convolution
	engineType reverb.Type

	inputGain param.Smoother
	mid       param.Smoother
	side      param.Smoother
	polL      param.Smoother
	polR      param.Smoother
	driveWet  param.Smoother
	reverbWet param.Smoother
	output    param.Smoother

	tone      param.Smoother
	eq        [NumBands]param.Smoother
	threshold param.Smoother
	ratio     param.Smoother
	knee      param.Smoother

	ramps []*param.Smoother

	clip bool
	hq   bool

	designedTone float64
	designedEQ   [NumBands]float64
	designed     bool

	comp       *dynamics.Compressor
	curve      *saturation.Curve
	over       [2]*saturation.Oversampler
	dryLine    [2]*delay.Line
	aligned    bus
	toneFilter biquad.Stereo
	eqFilter   [NumBands]biquad.Stereo
	rev        *reverb.Reverb
	latency    int

	driveOn  bool
	reverbOn bool

	gainReduction param.Float
	outputPeak    param.Float
}

// New builds the master chain. It fails for unsupported sample rates,
// channel counts or block sizes.
func New(opts ...Option) (*Chain, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	topo, err := compile(stageTable[:], defaultWiring)
	if err != nil {
		return nil, err
	}

	ctl := DefaultControls()
	if cfg.controls != nil {
		ctl = cfg.controls.Clamped()
		if !ctl.ReverbType.Valid() {
			ctl.ReverbType = reverb.Room
		}
	}

	c := &Chain{
		cfg:  cfg,
		topo: topo,
	}
	c.store.init(ctl)
	c.rate.Store(cfg.SampleRate)

	c.allocateBuses()

	if err := c.buildEngines(cfg.SampleRate); err != nil {
		return nil, err
	}
	c.engineType = ctl.ReverbType
	c.rev = reverb.New(c.engines[ctl.ReverbType], cfg.BlockSize)
	c.latency = c.rev.Latency()

	c.comp, err = dynamics.NewCompressor(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("masterchain: %w", err)
	}

	c.applied = ctl.Targets()
	c.curve = saturation.NewCurve(c.applied.Curve)
	for ch := range c.over {
		if c.over[ch], err = saturation.NewOversampler(); err != nil {
			return nil, fmt.Errorf("masterchain: %w", err)
		}
		if c.dryLine[ch], err = delay.New(c.over[ch].Latency() + 1); err != nil {
			return nil, fmt.Errorf("masterchain: %w", err)
		}
	}
	c.aligned = bus{l: make([]float64, cfg.BlockSize), r: make([]float64, cfg.BlockSize)}

	c.initRamps(c.applied)
	c.retarget()
	c.snapRamps()
	c.redesign(true)

	return c, nil
}

func (c *Chain) allocateBuses() {
	n := c.cfg.BlockSize
	for _, id := range c.topo.order {
		switch id.Kind() {
		case KindSplit, KindSink:
			c.buses[id] = c.buses[c.topo.inputs[id][0]]
		default:
			c.buses[id] = bus{l: make([]float64, n), r: make([]float64, n)}
		}
	}
}

func (c *Chain) initRamps(t Targets) {
	sr := c.cfg.SampleRate
	fast := func(v float64) param.Smoother {
		return param.NewSmoother(param.DefaultTimeConstant, sr, v)
	}

	c.inputGain = fast(t.InputGain)
	c.mid = fast(t.Mid)
	c.side = fast(t.Side)
	c.polL = fast(t.PolarityL)
	c.polR = fast(t.PolarityR)
	c.driveWet = fast(t.DriveWet)
	c.reverbWet = param.NewSmoother(param.SlowTimeConstant, sr, t.ReverbWet)
	c.output = fast(t.OutputGain)
	c.tone = fast(t.ToneDB)
	for b := range c.eq {
		c.eq[b] = fast(t.EQDB[b])
	}
	c.threshold = fast(t.Compressor.ThresholdDB)
	c.ratio = fast(t.Compressor.Ratio)
	c.knee = fast(t.Compressor.KneeDB)

	c.ramps = []*param.Smoother{
		&c.inputGain, &c.mid, &c.side, &c.polL, &c.polR, &c.driveWet,
		&c.reverbWet, &c.output, &c.tone,
		&c.eq[BandLow], &c.eq[BandMid], &c.eq[BandHigh], &c.eq[BandAir],
		&c.threshold, &c.ratio, &c.knee,
	}
}

// buildEngines synthesizes the impulse of every reverb type at
// sampleRate, so a type change on the audio thread only swaps engines.
func (c *Chain) buildEngines(sampleRate float64) error {
	var engines [reverb.NumTypes]*reverb.Convolution
	for t := range engines {
		e, err := reverb.NewConvolution(reverb.Type(t), sampleRate,
			reverb.WithSeed(c.cfg.seed),
			reverb.WithPartitionSize(c.cfg.partitionSize),
		)
		if err != nil {
			return fmt.Errorf("masterchain: %w", err)
		}
		engines[t] = e
	}
	c.engines = engines
	return nil
}

// Channels returns the number of input channels.
func (c *Chain) Channels() int { return c.cfg.Channels }

// MaxBlockSize returns the internal slice length.
func (c *Chain) MaxBlockSize() int { return c.cfg.BlockSize }

// SampleRate returns the current sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.rate.Load() }

// Latency returns the latency of the reverb wet path in samples, relative
// to the direct signal.
func (c *Chain) Latency() int { return c.latency }

// DryLatency returns the delay of the direct signal in samples. HQ mode
// delays the whole drive section by the oversampler latency; otherwise the
// direct path has none.
func (c *Chain) DryLatency() int {
	if c.Controls().HQ {
		return c.over[0].Latency()
	}
	return 0
}

// Controls returns the current control state.
func (c *Chain) Controls() Controls { return c.store.load() }

// Targets returns the stage targets derived from the current controls.
func (c *Chain) Targets() Targets { return c.store.load().Targets() }

// Meter returns the meters of the last processed block. Safe from any
// goroutine.
func (c *Chain) Meter() Meter {
	return Meter{
		GainReductionDB: c.gainReduction.Load(),
		OutputPeak:      c.outputPeak.Load(),
	}
}

// Update applies fn to a copy of the controls and publishes the result as
// one change. Batch edits such as preset loads go through here so the
// audio thread never sees a half-applied set. Unlike the single-control
// setters, Update may allocate.
func (c *Chain) Update(fn func(*Controls)) {
	c.store.edit(func(s Controls) Controls {
		fn(&s)
		return s
	})
}

// SetControls replaces the whole control state, as a preset load does.
// Out-of-range sliders are clamped and an unknown reverb type keeps the
// current one.
func (c *Chain) SetControls(ctl Controls) {
	c.store.edit(func(Controls) Controls { return ctl })
}

// SetInput sets the input gain slider (value/50, 0..2).
func (c *Chain) SetInput(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Input = mapping.Norm(v)
		return s
	})
}

// SetWidth sets the stereo width slider: 0 mono, 50 unchanged, 100 double side.
func (c *Chain) SetWidth(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Width = mapping.Norm(v)
		return s
	})
}

// SetClip enables the hard clip after the input gain.
func (c *Chain) SetClip(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.Clip = on
		return s
	})
}

// SetPhaseLeft inverts the left channel.
func (c *Chain) SetPhaseLeft(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.PhaseL = on
		return s
	})
}

// SetPhaseRight inverts the right channel.
func (c *Chain) SetPhaseRight(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.PhaseR = on
		return s
	})
}

// SetEQ sets EQ band b (BandLow..BandAir). Unknown bands are ignored.
func (c *Chain) SetEQ(b int, v float64) {
	if b < 0 || b >= NumBands {
		return
	}
	c.store.edit(func(s Controls) Controls {
		s.EQ[b] = mapping.Norm(v)
		return s
	})
}

// SetEQLow sets the 120 Hz low shelf.
func (c *Chain) SetEQLow(v float64) { c.SetEQ(BandLow, v) }

// SetEQMid sets the 1 kHz peak.
func (c *Chain) SetEQMid(v float64) { c.SetEQ(BandMid, v) }

// SetEQHigh sets the 4 kHz high shelf.
func (c *Chain) SetEQHigh(v float64) { c.SetEQ(BandHigh, v) }

// SetEQAir sets the 10 kHz air shelf.
func (c *Chain) SetEQAir(v float64) { c.SetEQ(BandAir, v) }

// SetSpeedMode selects the compressor attack/release preset.
func (c *Chain) SetSpeedMode(m dynamics.SpeedMode) {
	c.store.edit(func(s Controls) Controls {
		s.SetSpeed(m)
		return s
	})
}

// SetDrive sets the saturation drive amount.
func (c *Chain) SetDrive(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Drive = mapping.Norm(v)
		return s
	})
}

// SetMix sets the saturation wet share; the dry share is its complement.
func (c *Chain) SetMix(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Mix = mapping.Norm(v)
		return s
	})
}

// SetBias sets the waveshaper bias.
func (c *Chain) SetBias(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Bias = mapping.Norm(v)
		return s
	})
}

// SetTone sets the 3.5 kHz tone shelf.
func (c *Chain) SetTone(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Tone = mapping.Norm(v)
		return s
	})
}

// SetTexture blends the waveshaper from soft clip towards tanh.
func (c *Chain) SetTexture(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Texture = mapping.Norm(v)
		return s
	})
}

// SetHQ switches 4x oversampled shaping.
func (c *Chain) SetHQ(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.HQ = on
		return s
	})
}

// SetAttack sets the compressor attack slider (1..100 ms).
func (c *Chain) SetAttack(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Attack = mapping.Norm(v)
		return s
	})
}

// SetRelease sets the compressor release slider (20..1000 ms).
func (c *Chain) SetRelease(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Release = mapping.Norm(v)
		return s
	})
}

// SetRatio sets the compression ratio slider (1..20).
func (c *Chain) SetRatio(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Ratio = mapping.Norm(v)
		return s
	})
}

// SetThreshold sets the compressor threshold slider (-60..-20 dB).
func (c *Chain) SetThreshold(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Threshold = mapping.Norm(v)
		return s
	})
}

// SetKnee sets the compressor knee slider (0..40 dB).
func (c *Chain) SetKnee(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Knee = mapping.Norm(v)
		return s
	})
}

// SetMakeup sets the makeup gain slider (0.5..2).
func (c *Chain) SetMakeup(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Makeup = mapping.Norm(v)
		return s
	})
}

// SetDepth sets the reverb send (0..0.5).
func (c *Chain) SetDepth(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Depth = mapping.Norm(v)
		return s
	})
}

// SetReverbType switches the impulse response. The audio thread
// crossfades to the engine of the new type. Unknown types are ignored.
func (c *Chain) SetReverbType(t reverb.Type) {
	if !t.Valid() {
		return
	}
	c.store.edit(func(s Controls) Controls {
		s.ReverbType = t
		return s
	})
}

// SetStereo selects stereo (true) or mono (false) output.
func (c *Chain) SetStereo(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.Stereo = on
		return s
	})
}

// SetMaster sets the output level slider (0..1.5, unity at 50).
func (c *Chain) SetMaster(v float64) {
	c.store.edit(func(s Controls) Controls {
		s.Master = mapping.Norm(v)
		return s
	})
}

// SetInputPanel activates the input/width/clip/phase panel.
func (c *Chain) SetInputPanel(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.SetInputPanel(on)
		return s
	})
}

// SetEQPanel activates the EQ panel.
func (c *Chain) SetEQPanel(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.SetEQPanel(on)
		return s
	})
}

// SetDrivePanel activates the drive/tone panel.
func (c *Chain) SetDrivePanel(on bool) {
	c.store.edit(func(s Controls) Controls {
		s.SetDrivePanel(on)
		return s
	})
}

// Reset clears all stage state and jumps every ramp to its target. Call
// while the stream is stopped.
func (c *Chain) Reset() {
	c.comp.Reset()
	for ch := range 2 {
		c.over[ch].Reset()
		c.dryLine[ch].Reset()
	}
	c.toneFilter.Reset()
	for b := range c.eqFilter {
		c.eqFilter[b].Reset()
	}

	c.seen = c.store.version()
	c.applied = c.store.load().Targets()
	c.retarget()
	c.rev.Reset()
	c.snapRamps()
	c.redesign(true)

	c.gainReduction.Store(0)
	c.outputPeak.Store(0)
}

// SetSampleRate rebuilds every rate-dependent piece: the reverb impulses,
// filter coefficients and the ramp and compressor time constants. Call while the stream is stopped.
func (c *Chain) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("masterchain: %w", err)
	}

	if err := c.buildEngines(sampleRate); err != nil {
		return err
	}
	if err := c.comp.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("masterchain: %w", err)
	}

	c.rate.Store(sampleRate)
	c.cfg.SampleRate = sampleRate

	c.rev.Publish(c.engines[c.engineType])
	c.rev.Reset()
	c.latency = c.rev.Latency()

	for _, r := range c.ramps {
		r.SetSampleRate(sampleRate)
	}
	c.redesign(true)

	return nil
}
