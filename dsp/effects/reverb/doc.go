// Package reverb provides the convolution reverb of the master chain.
//
// Impulse responses are synthesized, not loaded: exponentially decaying
// noise whose decay time is chosen by a closed [Type] (Room, Plate, Hall).
// The two channels use independent noise streams so the tail is
// decorrelated.
//
// [Convolution] is one stereo engine built for a type and sample rate.
// [Reverb] owns the engine on the audio thread; a new engine built
// elsewhere is handed over through [Reverb.Publish] and crossfaded in over
// one block.
package reverb
