// Package effectchain assembles stream processors into a pedalboard.
//
// A Registry maps processor type names to factories; DefaultRegistry
// knows the built-in octave, pitch, octavia, rotary, univibe and wah
// processors. Build turns a list of pedal Params into a Board, an
// ordered series of stream.Host values that runs ahead of the master
// chain.
package effectchain
