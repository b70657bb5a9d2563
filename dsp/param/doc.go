// Package param hands parameter values from a control goroutine to the
// audio callback without locks or allocation, and ramps them so that no
// change is ever applied as an instantaneous jump.
//
// The control side only ever calls [Float.Store] / [Smoothed.Set]. The
// audio side calls [Smoothed.Pull] once per block and [Smoothed.Next] once
// per sample. A new target arriving mid-ramp simply re-aims the ramp from
// wherever it currently is.
package param
