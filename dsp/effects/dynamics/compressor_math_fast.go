//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// levelLog2 maps a detector level to octaves with the approximated
// natural logarithm.
func levelLog2(x float64) float64 { return approx.FastLog(x) / math.Ln2 }

// gainExp2 maps a reduction in octaves back to a gain factor.
func gainExp2(x float64) float64 { return approx.FastExp(x * math.Ln2) }
