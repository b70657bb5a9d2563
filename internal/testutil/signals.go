package testutil

import (
	"math"
	"math/rand/v2"
	"slices"
)

// generate returns n samples of f(i).
func generate(n int, f func(i int) float64) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = f(i)
	}
	return out
}

// DeterministicSine returns length samples of a sine at freqHz, starting
// at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	return generate(length, func(i int) float64 { return amplitude * math.Sin(w*float64(i)) })
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude). The
// same seed always gives the same samples.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(seed, 0))
	return generate(length, func(int) float64 { return amplitude * (2*rng.Float64() - 1) })
}

// Impulse returns length samples of silence with a 1 at pos.
func Impulse(length, pos int) []float64 {
	return generate(length, func(i int) float64 {
		if i == pos {
			return 1
		}
		return 0
	})
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	return slices.Repeat([]float64{value}, max(length, 0))
}
