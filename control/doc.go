// Package control is the named control surface of the tone chain.
//
// A Surface maps control names to master chain setters and to pedal
// parameters ("<pedal id>.<param>"). Presets are YAML documents replayed
// through a Surface in one update.
package control
