// Package spatial provides the mid/side width and polarity stage.
//
// The stage encodes left/right into mid (sum) and side (difference),
// scales each, decodes back and finally applies a per-channel polarity
// gain. With Mid=1, Side=1 and both polarities +1 the stage is an exact
// pass-through.
package spatial
