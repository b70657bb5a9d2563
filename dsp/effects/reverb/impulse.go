package reverb

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-tonechain/dsp/core"
)

// Type selects the reverb character.
type Type int

const (
	Room Type = iota
	Plate
	Hall

	// NumTypes is the number of defined types.
	NumTypes
)

// DecayDB is the level, relative to the onset, reached at the end of an
// impulse response.
const DecayDB = -60.0

// Duration returns the impulse length in seconds.
func (t Type) Duration() float64 {
	switch t {
	case Plate:
		return 0.9
	case Hall:
		return 1.5
	default:
		return 0.35
	}
}

func (t Type) String() string {
	switch t {
	case Room:
		return "room"
	case Plate:
		return "plate"
	case Hall:
		return "hall"
	}
	return "room"
}

// Valid reports whether t is one of the defined types.
func (t Type) Valid() bool { return t >= Room && t < NumTypes }

// ParseType maps "room", "plate" or "hall" to a Type.
func ParseType(s string) (Type, bool) {
	for t := Room; t < NumTypes; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return Room, false
}

// ImpulseLength returns the impulse length in samples for t at sampleRate.
func ImpulseLength(t Type, sampleRate float64) int {
	n := int(math.Round(t.Duration() * sampleRate))
	return max(n, 1)
}

// GenerateImpulse synthesizes a stereo impulse response. Each channel is
// uniform noise under an exponential envelope reaching DecayDB at the end,
// scaled to unit energy. The same seed always yields the same response.
func GenerateImpulse(t Type, sampleRate float64, seed uint64) (left, right []float64) {
	n := ImpulseLength(t, sampleRate)
	left = make([]float64, n)
	right = make([]float64, n)

	fillDecayingNoise(left, rand.New(rand.NewPCG(seed, 1)))
	fillDecayingNoise(right, rand.New(rand.NewPCG(seed, 2)))

	return left, right
}

func fillDecayingNoise(dst []float64, rng *rand.Rand) {
	n := len(dst)
	// exp(rate*n) hits DecayDB at the last sample.
	rate := math.Log(core.DBToLinear(DecayDB)) / float64(n)

	var energy float64
	for i := range dst {
		v := (rng.Float64()*2 - 1) * math.Exp(rate*float64(i))
		dst[i] = v
		energy += v * v
	}

	if energy == 0 {
		dst[0] = 1
		return
	}
	norm := 1 / math.Sqrt(energy)
	for i := range dst {
		dst[i] *= norm
	}
}
