// Package mapping converts normalized control values into physical
// processing parameters.
//
// Every control owned by the UI is a slider in [0, 100] (50 is the centre
// detent). A [Normalized] value can only be obtained through [Norm], which
// clamps, so every mapping function here is total: out-of-range or NaN
// input produces exactly the value of the nearest boundary.
//
// All functions are pure and idempotent.
package mapping
