// Package pitch provides the circular-buffer pitch shifters of the
// pedalboard.
//
// Both processors write into a circular buffer and read it back with a
// fractional pointer that advances by the pitch ratio per sample, using
// linear interpolation. The read pointer starts half a buffer behind the
// write pointer; at ratio 1 it keeps that distance and the output is the
// input delayed by [Shifter.Delay] samples exactly. At other ratios the
// pointer drifts and is moved back to the nominal distance with a short
// crossfade whenever it would cross the write pointer.
//
// Included processors:
//   - Octave: coarse shift of -1, 0 or +1 octaves with dry, wet and
//     tracking levels.
//   - Pitch: fine shift of -12..+12 semitones with a dry/wet mix.
package pitch
