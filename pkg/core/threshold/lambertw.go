package threshold

import (
	"math"
)

// LambertW0 evaluates the principal real branch of the Lambert W function,
// the inverse of f(w) = w*e^w, for x >= -1/e. Outside that domain there is
// no real solution and NaN is returned.
func LambertW0(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x == 0 {
		return 0
	}

	branchPoint := -1.0 / math.E
	if x < branchPoint {
		// Allow tiny round-off below the branch point.
		if x > branchPoint-1e-12 {
			return -1
		}
		return math.NaN()
	}

	w := lambertW0Seed(x)

	// Halley refinement. Converges quadratically from the series seeds;
	// a handful of iterations reaches machine precision.
	const maxIterations = 50
	const epsilon = 1e-15

	for i := 0; i < maxIterations; i++ {
		ew := math.Exp(w)
		f := w*ew - x
		if f == 0 {
			break
		}
		denom := ew*(w+1) - (w+2)*f/(2*w+2)
		if denom == 0 {
			break
		}
		delta := f / denom
		w -= delta
		if math.Abs(delta) < epsilon*(1+math.Abs(w)) {
			break
		}
	}

	return w
}

// lambertW0Seed picks an initial estimate for the Halley iteration.
func lambertW0Seed(x float64) float64 {
	if x < -0.25 {
		// Series expansion around the branch point w = -1. Round-off can
		// push the radicand a few ulps negative right at the branch point.
		s := 2 * (math.E*x + 1)
		if s < 0 {
			s = 0
		}
		p := math.Sqrt(s)
		return -1 + p - p*p/3 + 11*p*p*p/72
	}
	if x < 1 {
		// Truncated Maclaurin series: W(x) = x - x^2 + 3/2 x^3 - ...
		return x * (1 - x + 1.5*x*x)
	}
	// Asymptotic seed for large arguments.
	l1 := math.Log(x)
	l2 := math.Log(l1)
	return l1 - l2 + l2/l1
}
