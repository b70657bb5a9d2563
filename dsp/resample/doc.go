// Package resample provides streaming integer-factor rate converters for
// oversampled processing.
//
// [Interpolator] and [Decimator] share one Kaiser-windowed sinc prototype
// described by a [Profile]. The prototype is symmetric, so a matched pair
// has a fixed, integer latency at the low rate ([Profile.Latency]) and no
// phase distortion. Neither type allocates after construction.
package resample
