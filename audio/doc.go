// Package audio drives the tone chain as a whole: an Engine feeding mono
// instrument input through the pedal board and the master chain, offline
// rendering to 32-bit float WAV, and live playback through oto.
//
// Build with the headless tag to replace the oto device with a stub.
package audio
