// Package saturation provides the table waveshaper of the drive stage.
//
// A [Curve] is a fixed 1024-point transfer table over the input domain
// [-1, 1]. It is regenerated in place, never reallocated, whenever any of
// its [CurveParams] change. Inputs outside the domain read the end points.
//
// [Oversampler] runs a curve at four times the host rate between two
// linear-phase FIR filters with a fixed latency; the drive stage uses it in
// HQ mode.
package saturation
