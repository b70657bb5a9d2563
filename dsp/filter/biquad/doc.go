// Package biquad provides the second-order IIR section used by every
// equalizer and shelf in the rig.
//
// A [Section] runs Direct Form II Transposed. Coefficients can be swapped
// between samples without touching the state, which is how the shelves and
// peaking bands follow their smoothed gain without clicks. [Stereo] runs one
// coefficient set over a channel pair.
//
// Coefficient design lives in dsp/filter/design.
package biquad
