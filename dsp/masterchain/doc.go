// Package masterchain implements the post-pedalboard master chain.
//
// The chain is a fixed signal path declared as a stage table and a wiring
// table:
//
//	source -> input gain/clip -> compressor -> drive split
//	drive split -> (dry) ............................ -> drive mix
//	drive split -> bias -> shaper -> (wet) ........... -> drive mix
//	drive mix -> tone -> eq low -> eq mid -> eq high -> eq air
//	  -> width -> phase -> reverb split
//	reverb split -> (dry) ........................... -> reverb mix
//	reverb split -> convolution reverb -> (wet) ...... -> reverb mix
//	reverb mix -> output gain -> sink
//
// The wiring is validated and sorted once in New and never changes.
// Setters take normalized 0..100 slider values or booleans, clamp them and
// derive new stage [Targets] from the whole [Controls] state. The audio
// thread ramps gains per sample and filter and compressor settings once
// per internal slice, so no control change produces a step.
package masterchain
