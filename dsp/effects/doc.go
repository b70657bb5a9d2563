// Package effects provides the effect kernels of the rig.
//
// Subpackages:
//   - github.com/cwbudde/algo-tonechain/dsp/effects/dynamics
//   - github.com/cwbudde/algo-tonechain/dsp/effects/modulation
//   - github.com/cwbudde/algo-tonechain/dsp/effects/pitch
//   - github.com/cwbudde/algo-tonechain/dsp/effects/reverb
//   - github.com/cwbudde/algo-tonechain/dsp/effects/saturation
//   - github.com/cwbudde/algo-tonechain/dsp/effects/spatial
//
// Effects remaining in this package:
//   - Octavia: upper-octave fuzz from half-wave rectification.
//
// All effects are designed for real-time processing with zero-allocation
// hot paths.
package effects
