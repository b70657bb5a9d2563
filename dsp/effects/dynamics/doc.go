// Package dynamics provides the leveling compressor of the master chain.
//
// [Compressor] is a soft-knee, peak-detecting compressor computed in the
// log2 domain. It runs mono or stereo-linked (one detector driven by the
// louder channel, one gain applied to both). Two speed presets, [SpeedFast]
// and [SpeedSlow], supply attack and release times.
//
// Build with -tags fastmath to route the gain computer through
// github.com/meko-christian/algo-approx.
package dynamics
