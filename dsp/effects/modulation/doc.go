// Package modulation provides the LFO and envelope driven pedals.
//
// Included processors:
//   - Rotary: Leslie simulation with horn and drum Doppler taps sharing one
//     LFO, complementary crossfade and a gliding slow/fast rate.
//   - UniVibe: four cascaded first-order allpass stages swept by one LFO.
//   - Wah: Chamberlin state-variable bandpass swept 300..2000 Hz by a
//     manual pedal position plus an optional envelope amount.
//
// Every processor implements stream.Processor and is safe for in-place
// processing.
package modulation
