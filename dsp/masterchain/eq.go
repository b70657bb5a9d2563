package masterchain

import (
	"github.com/cwbudde/algo-tonechain/dsp/filter/biquad"
	"github.com/cwbudde/algo-tonechain/dsp/filter/design"
)

// Tone shelf and EQ band centre frequencies in Hz.
const (
	ToneFreq = 3500.0
	LowFreq  = 120.0
	MidFreq  = 1000.0
	MidQ     = 0.9
	HighFreq = 4000.0
	AirFreq  = 10000.0
)

type bandDesign struct {
	freq  float64
	q     float64
	shape func(freq, gainDB, q, sampleRate float64) biquad.Coefficients
}

var bandDesigns = [NumBands]bandDesign{
	BandLow:  {LowFreq, design.ShelfSlopeQ, design.LowShelf},
	BandMid:  {MidFreq, MidQ, design.Peak},
	BandHigh: {HighFreq, design.ShelfSlopeQ, design.HighShelf},
	BandAir:  {AirFreq, design.ShelfSlopeQ, design.HighShelf},
}

// BandCoefficients designs EQ band b for gainDB. Bands above 0.45 of the
// sample rate are pulled down so low rates keep a valid filter.
func BandCoefficients(b int, gainDB, sampleRate float64) biquad.Coefficients {
	if b < 0 || b >= NumBands {
		return biquad.Identity
	}
	d := bandDesigns[b]
	return d.shape(design.ClampFrequency(d.freq, sampleRate), gainDB, d.q, sampleRate)
}

// ToneCoefficients designs the post-saturation tone shelf.
func ToneCoefficients(gainDB, sampleRate float64) biquad.Coefficients {
	return design.HighShelf(design.ClampFrequency(ToneFreq, sampleRate), gainDB, design.ShelfSlopeQ, sampleRate)
}
