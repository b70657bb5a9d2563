// Package stream defines the contract shared by the per-sample pedal
// processors and the [Host] that drives them.
//
// A [Processor] declares its parameters as [Param] descriptors with hard
// bounds and a default, and transforms equal-length mono blocks. It does
// not validate parameter values; the Host clamps every value to the
// declared bounds before it reaches the processor.
//
// Host values may be written from any goroutine. They are handed to the
// processor at the start of the next block, on the audio thread, without
// locks or allocation.
package stream
