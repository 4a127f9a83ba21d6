package scoring

import "math"

const (
	softCapLimit     = 1.0
	percentileSpread = 2.2
)

// Compress is a saturating transform: zero at zero, increasing, concave and
// bounded above by limit.
func Compress(x, limit float64) float64 {
	return limit * (1 - math.Exp(-x/limit))
}

func contribution(rank float64) float64 {
	return Compress(rank*percentileSpread, softCapLimit)
}
