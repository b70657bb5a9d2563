//go:build !fastmath

package dynamics

import "math"

// levelLog2 maps a detector level to octaves.
func levelLog2(x float64) float64 { return math.Log2(x) }

// gainExp2 maps a reduction in octaves back to a gain factor.
func gainExp2(x float64) float64 { return math.Exp2(x) }
