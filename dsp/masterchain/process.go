package masterchain

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/effects/spatial"
	"github.com/cwbudde/algo-tonechain/dsp/interp"
	"github.com/cwbudde/algo-tonechain/dsp/param"
)

// Process runs one block through the chain and writes stereo output.
//
// outL and outR must have equal, non-zero length; any other shape is a
// no-op tick that clears whatever output exists. Missing or short input is
// treated as silence. A chain built for one input channel, or an empty
// inR, feeds inL to both sides.
func (c *Chain) Process(inL, inR, outL, outR []float64) {
	n := len(outL)
	if n == 0 || len(outR) != n {
		clear(outL)
		clear(outR)
		return
	}

	c.run(inL, inR, outL, outR, nil)
}

// ProcessMono runs one mono block and writes the (L+R)/2 downmix.
// in and out may alias.
func (c *Chain) ProcessMono(in, out []float64) {
	if len(out) == 0 {
		return
	}

	c.run(in, in, nil, nil, out)
}

func (c *Chain) run(inL, inR, outL, outR, mono []float64) {
	if c.cfg.Channels == 1 || len(inR) == 0 {
		inR = inL
	}

	n := max(len(outL), len(mono))
	block := c.cfg.BlockSize
	sink := c.buses[StageSink]
	peak := 0.0

	for off := 0; off < n; off += block {
		m := min(block, n-off)

		c.loadSource(inL, inR, off, m)
		c.pull(m)

		for _, id := range c.topo.order {
			c.runStage(id, m)
		}

		l, r := sink.l[:m], sink.r[:m]
		if mono != nil {
			dst := mono[off : off+m]
			vecmath.AddMulBlock(dst, l, r, 0.5)
			peak = max(peak, vecmath.MaxAbs(dst))
		} else {
			copy(outL[off:off+m], l)
			copy(outR[off:off+m], r)
			peak = max(peak, vecmath.MaxAbs(l), vecmath.MaxAbs(r))
		}
	}

	c.gainReduction.Store(c.comp.GainReductionDB())
	c.outputPeak.Store(peak)
}

// loadSource copies input samples [off, off+m) into the source bus. Input
// past its end reads as silence.
func (c *Chain) loadSource(inL, inR []float64, off, m int) {
	src := c.buses[StageSource]
	core.LoadBlock(src.l[:m], inL, off)
	core.LoadBlock(src.r[:m], inR, off)
}

// pull picks up control changes and advances the control-rate ramps by
// one slice. A state caught mid-edit is left for the next slice.
func (c *Chain) pull(m int) {
	if c.store.version() != c.seen {
		if ctl, v, ok := c.store.tryLoad(); ok {
			c.seen = v
			c.applied = ctl.Targets()
			c.retarget()
		}
	}

	c.tone.Advance(m)
	for b := range c.eq {
		c.eq[b].Advance(m)
	}
	c.redesign(false)

	p := c.applied.Compressor
	p.ThresholdDB = c.threshold.Advance(m)
	p.Ratio = c.ratio.Advance(m)
	p.KneeDB = c.knee.Advance(m)
	c.comp.SetParams(p)

	c.driveOn = !(c.driveWet.Settled() && c.driveWet.Value() == 0)
	c.reverbOn = !(c.reverbWet.Settled() && c.reverbWet.Value() == 0)
}

// retarget aims every ramp at the applied targets and switches the
// discrete parameters. Audio side.
func (c *Chain) retarget() {
	t := &c.applied

	c.inputGain.SetTarget(t.InputGain)
	c.mid.SetTarget(t.Mid)
	c.side.SetTarget(t.Side)
	c.polL.SetTarget(t.PolarityL)
	c.polR.SetTarget(t.PolarityR)
	c.driveWet.SetTarget(t.DriveWet)
	c.reverbWet.SetTarget(t.ReverbWet)
	c.output.SetTarget(t.OutputGain)
	c.tone.SetTarget(t.ToneDB)
	for b := range c.eq {
		c.eq[b].SetTarget(t.EQDB[b])
	}
	c.threshold.SetTarget(t.Compressor.ThresholdDB)
	c.ratio.SetTarget(t.Compressor.Ratio)
	c.knee.SetTarget(t.Compressor.KneeDB)

	c.clip = t.Clip

	if c.curve.Update(t.Curve) && t.Curve.HQ != c.hq {
		for ch := range c.over {
			c.over[ch].Reset()
		}
	}
	c.hq = t.Curve.HQ

	if t.ReverbType != c.engineType {
		c.engineType = t.ReverbType
		c.rev.Publish(c.engines[t.ReverbType])
	}
}

func (c *Chain) snapRamps() {
	for _, r := range c.ramps {
		r.Snap(r.Target())
	}

	p := c.applied.Compressor
	c.comp.SetParams(p)
	c.driveOn = c.driveWet.Value() != 0
	c.reverbOn = c.reverbWet.Value() != 0
}

// redesign recomputes filter coefficients whose gain moved. Filter state
// is kept so a moving gain does not click.
func (c *Chain) redesign(force bool) {
	sr := c.cfg.SampleRate

	if g := c.tone.Value(); force || !c.designed || g != c.designedTone {
		coeffs := ToneCoefficients(g, sr)
		c.toneFilter.SetCoefficients(coeffs)
		c.designedTone = g
	}

	for b := range c.eq {
		if g := c.eq[b].Value(); force || !c.designed || g != c.designedEQ[b] {
			coeffs := BandCoefficients(b, g, sr)
			c.eqFilter[b].SetCoefficients(coeffs)
			c.designedEQ[b] = g
		}
	}

	c.designed = true
}

func (c *Chain) input(id StageID, port, m int) bus {
	b := c.buses[c.topo.inputs[id][port]]
	return bus{l: b.l[:m], r: b.r[:m]}
}

func (c *Chain) runStage(id StageID, m int) {
	switch id {
	case StageSource, StageDriveSplit, StageReverbSplit, StageSink:
		return
	}

	dst := bus{l: c.buses[id].l[:m], r: c.buses[id].r[:m]}
	in := c.input(id, 0, m)

	switch id {
	case StageInputGain:
		gain(&c.inputGain, dst, in)
		if c.clip {
			for i := range m {
				dst.l[i] = core.Clamp(dst.l[i], -1, 1)
				dst.r[i] = core.Clamp(dst.r[i], -1, 1)
			}
		}

	case StageCompressor:
		copy(dst.l, in.l)
		copy(dst.r, in.r)
		c.comp.ProcessStereoInPlace(dst.l, dst.r)

	case StageBias:
		b := c.curve.Params().Bias
		for i := range m {
			dst.l[i] = in.l[i] + b
			dst.r[i] = in.r[i] + b
		}

	case StageShaper:
		c.shape(dst, in)

	case StageDriveMix:
		c.mixDrive(dst, in, c.input(id, 1, m))

	case StageTone:
		copy(dst.l, in.l)
		copy(dst.r, in.r)
		c.toneFilter.ProcessBlock(dst.l, dst.r)

	case StageEQLow, StageEQMid, StageEQHigh, StageEQAir:
		b := int(id - StageEQLow)
		copy(dst.l, in.l)
		copy(dst.r, in.r)
		c.eqFilter[b].ProcessBlock(dst.l, dst.r)

	case StageWidth:
		for i := range m {
			g := spatial.Gains{Mid: c.mid.Next(), Side: c.side.Next(), Left: 1, Right: 1}
			dst.l[i], dst.r[i] = g.Process(in.l[i], in.r[i])
		}

	case StagePhase:
		for i := range m {
			dst.l[i] = in.l[i] * c.polL.Next()
			dst.r[i] = in.r[i] * c.polR.Next()
		}

	case StageReverb:
		c.rev.ProcessWet(dst.l, dst.r, in.l, in.r, c.reverbOn)

	case StageReverbMix:
		c.mixReverb(dst, in, c.input(id, 1, m))

	case StageOutputGain:
		gain(&c.output, dst, in)
	}
}

// gain scales in by a ramped gain.
func gain(g *param.Smoother, dst, in bus) {
	if g.Settled() {
		v := g.Value()
		vecmath.ScaleBlock(dst.l, in.l, v)
		vecmath.ScaleBlock(dst.r, in.r, v)
		return
	}
	for i := range dst.l {
		v := g.Next()
		dst.l[i] = in.l[i] * v
		dst.r[i] = in.r[i] * v
	}
}

func (c *Chain) shape(dst, in bus) {
	if !c.driveOn {
		clear(dst.l)
		clear(dst.r)
		return
	}

	if c.hq {
		for i := range dst.l {
			dst.l[i] = c.over[0].Process(in.l[i], c.curve)
			dst.r[i] = c.over[1].Process(in.r[i], c.curve)
		}
		return
	}

	for i := range dst.l {
		dst.l[i] = c.curve.Apply(in.l[i])
		dst.r[i] = c.curve.Apply(in.r[i])
	}
}

// mixDrive is a linear crossfade: dry*(1-w) + wet*w.
func (c *Chain) mixDrive(dst, dry, wet bus) {
	dry = c.alignDry(dry)
	if !c.driveOn {
		copy(dst.l, dry.l)
		copy(dst.r, dry.r)
		return
	}
	for i := range dst.l {
		w := c.driveWet.Next()
		dst.l[i] = interp.Linear(w, dry.l[i], wet.l[i])
		dst.r[i] = interp.Linear(w, dry.r[i], wet.r[i])
	}
}

// alignDry feeds the dry delay lines and, in HQ mode, returns the dry
// signal delayed by the oversampler latency so it lines up with the
// shaped path. The lines run in both modes, so switching HQ needs no
// refill.
func (c *Chain) alignDry(dry bus) bus {
	m := len(dry.l)
	dl, dr := c.dryLine[0], c.dryLine[1]

	if !c.hq {
		for i := range m {
			dl.Write(dry.l[i])
			dr.Write(dry.r[i])
		}
		return dry
	}

	out := bus{l: c.aligned.l[:m], r: c.aligned.r[:m]}
	lat := c.over[0].Latency()
	for i := range m {
		dl.Write(dry.l[i])
		dr.Write(dry.r[i])
		out.l[i] = dl.Read(lat)
		out.r[i] = dr.Read(lat)
	}
	return out
}

// mixReverb adds the ramped wet signal to the unity dry path.
func (c *Chain) mixReverb(dst, dry, wet bus) {
	if !c.reverbOn {
		copy(dst.l, dry.l)
		copy(dst.r, dry.r)
		return
	}
	if c.reverbWet.Settled() {
		v := c.reverbWet.Value()
		vecmath.ScaleBlock(dst.l, wet.l, v)
		vecmath.ScaleBlock(dst.r, wet.r, v)
		vecmath.AddBlockInPlace(dst.l, dry.l)
		vecmath.AddBlockInPlace(dst.r, dry.r)
		return
	}
	for i := range dst.l {
		v := c.reverbWet.Next()
		dst.l[i] = dry.l[i] + v*wet.l[i]
		dst.r[i] = dry.r[i] + v*wet.r[i]
	}
}
