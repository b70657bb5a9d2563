package masterchain

import (
	"math"
	"runtime"
	"sync/atomic"

	"github.com/cwbudde/algo-tonechain/dsp/effects/dynamics"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
	"github.com/cwbudde/algo-tonechain/dsp/mapping"
)

// Word slots of the packed control state, one per control.
const (
	wInput = iota
	wWidth
	wClip
	wPhaseL
	wPhaseR
	wEQ // first of NumBands words
)

const (
	wSpeed = wEQ + NumBands + iota
	wAttack
	wRelease
	wRatio
	wThreshold
	wKnee
	wMakeup
	wDrive
	wMix
	wBias
	wTone
	wTexture
	wHQ
	wDepth
	wReverbType
	wStereo
	wMaster
	wInputPanel
	wEQPanel
	wDrivePanel

	numWords
)

type words [numWords]uint64

func normWord(v mapping.Normalized) uint64 { return math.Float64bits(float64(v)) }

func wordNorm(w uint64) mapping.Normalized { return mapping.Normalized(math.Float64frombits(w)) }

func flagWord(on bool) uint64 {
	if on {
		return 1
	}
	return 0
}

func (c *Controls) pack() words {
	var w words
	w[wInput] = normWord(c.Input)
	w[wWidth] = normWord(c.Width)
	w[wClip] = flagWord(c.Clip)
	w[wPhaseL] = flagWord(c.PhaseL)
	w[wPhaseR] = flagWord(c.PhaseR)
	for b := range NumBands {
		w[wEQ+b] = normWord(c.EQ[b])
	}
	w[wSpeed] = uint64(c.Speed)
	w[wAttack] = normWord(c.Attack)
	w[wRelease] = normWord(c.Release)
	w[wRatio] = normWord(c.Ratio)
	w[wThreshold] = normWord(c.Threshold)
	w[wKnee] = normWord(c.Knee)
	w[wMakeup] = normWord(c.Makeup)
	w[wDrive] = normWord(c.Drive)
	w[wMix] = normWord(c.Mix)
	w[wBias] = normWord(c.Bias)
	w[wTone] = normWord(c.Tone)
	w[wTexture] = normWord(c.Texture)
	w[wHQ] = flagWord(c.HQ)
	w[wDepth] = normWord(c.Depth)
	w[wReverbType] = uint64(c.ReverbType)
	w[wStereo] = flagWord(c.Stereo)
	w[wMaster] = normWord(c.Master)
	w[wInputPanel] = flagWord(c.InputPanel)
	w[wEQPanel] = flagWord(c.EQPanel)
	w[wDrivePanel] = flagWord(c.DrivePanel)
	return w
}

func (w *words) unpack() Controls {
	c := Controls{
		Input:      wordNorm(w[wInput]),
		Width:      wordNorm(w[wWidth]),
		Clip:       w[wClip] != 0,
		PhaseL:     w[wPhaseL] != 0,
		PhaseR:     w[wPhaseR] != 0,
		Speed:      dynamics.SpeedMode(w[wSpeed]),
		Attack:     wordNorm(w[wAttack]),
		Release:    wordNorm(w[wRelease]),
		Ratio:      wordNorm(w[wRatio]),
		Threshold:  wordNorm(w[wThreshold]),
		Knee:       wordNorm(w[wKnee]),
		Makeup:     wordNorm(w[wMakeup]),
		Drive:      wordNorm(w[wDrive]),
		Mix:        wordNorm(w[wMix]),
		Bias:       wordNorm(w[wBias]),
		Tone:       wordNorm(w[wTone]),
		Texture:    wordNorm(w[wTexture]),
		HQ:         w[wHQ] != 0,
		Depth:      wordNorm(w[wDepth]),
		ReverbType: reverb.Type(w[wReverbType]),
		Stereo:     w[wStereo] != 0,
		Master:     wordNorm(w[wMaster]),
		InputPanel: w[wInputPanel] != 0,
		EQPanel:    w[wEQPanel] != 0,
		DrivePanel: w[wDrivePanel] != 0,
	}
	for b := range NumBands {
		c.EQ[b] = wordNorm(w[wEQ+b])
	}
	return c
}

// controlStore holds the control state as one atomic word per control.
//
// Writers never lock: an edit stores only the words it changed, between
// an increment of begun and one of done. Edits of different controls from
// different goroutines therefore never overwrite each other. A reader sees
// a consistent state whenever begun equals done before and after it loads
// the words.
type controlStore struct {
	w     [numWords]atomic.Uint64
	begun atomic.Uint64
	done  atomic.Uint64
}

func (s *controlStore) init(c Controls) {
	w := c.pack()
	for i := range w {
		s.w[i].Store(w[i])
	}
}

func (s *controlStore) raw() words {
	var w words
	for i := range w {
		w[i] = s.w[i].Load()
	}
	return w
}

// edit applies fn to the current state and stores the result. Sliders are
// clamped and an invalid reverb type keeps the current one.
func (s *controlStore) edit(fn func(Controls) Controls) {
	old := s.raw()
	cur := old.unpack()

	next := fn(cur).Clamped()
	if !next.ReverbType.Valid() {
		next.ReverbType = cur.ReverbType
	}
	w := next.pack()

	s.begun.Add(1)
	for i := range w {
		if w[i] != old[i] {
			s.w[i].Store(w[i])
		}
	}
	s.done.Add(1)
}

// version changes after every completed edit.
func (s *controlStore) version() uint64 { return s.done.Load() }

// tryLoad returns the state and the version it reflects. It fails instead
// of waiting while an edit is in flight.
func (s *controlStore) tryLoad() (Controls, uint64, bool) {
	v := s.done.Load()
	if s.begun.Load() != v {
		return Controls{}, 0, false
	}
	w := s.raw()
	if s.begun.Load() != v {
		return Controls{}, 0, false
	}
	return w.unpack(), v, true
}

// load retries tryLoad until no edit is in flight. Control side only.
func (s *controlStore) load() Controls {
	for {
		if c, _, ok := s.tryLoad(); ok {
			return c
		}
		runtime.Gosched()
	}
}
