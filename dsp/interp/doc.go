// Package interp holds the fractional read helpers shared by the delay
// lines, the pitch shifter and the wet/dry crossfades.
package interp
