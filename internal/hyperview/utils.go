package hyperview

import (
	"math"
)

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func clamp(x, lo, hi Real) Real {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// wrapAngle maps a onto [-π, π).
func wrapAngle(a Real) Real {
	const full = 2 * math.Pi
	return a - full*math.Floor((a+math.Pi)/full)
}
