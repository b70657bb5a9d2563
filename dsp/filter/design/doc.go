// Package design computes cookbook biquad coefficients for the tone shelf
// and the four equalizer bands.
//
// A frequency outside (0, Nyquist) or an invalid sample rate yields
// [biquad.Identity]: a misplaced band passes audio instead of muting it.
package design
