package hull

import "math"

// Iteration budgets of the bounded searches. They are safety caps, not
// convergence guarantees: when a budget runs out, the best estimate so far is
// returned.
const (
	bisectIterations     = 30
	ternaryIterations    = 30
	quaternaryIterations = 20
)

// Bisect finds a zero crossing of f in [a, b].
//
// f(a) and f(b) are expected to have opposite signs. If they don't, the end
// with the smaller magnitude is returned. The search runs for at most 30
// iterations, which narrows the bracket by a factor of about 1e9.
func Bisect(f func(float64) float64, a, b float64) float64 {
	ya := f(a)
	yb := f(b)
	if ya == 0 {
		return a
	}
	if yb == 0 {
		return b
	}
	if (ya < 0) == (yb < 0) {
		if math.Abs(ya) < math.Abs(yb) {
			return a
		}
		return b
	}
	for range bisectIterations {
		m := 0.5 * (a + b)
		ym := f(m)
		if ym == 0 {
			return m
		}
		if (ym < 0) == (ya < 0) {
			a, ya = m, ym
		} else {
			b = m
		}
	}
	return 0.5 * (a + b)
}

// TernaryMin finds the minimum of f in [a, b], assuming f is unimodal there.
func TernaryMin(f func(float64) float64, a, b float64) float64 {
	for range ternaryIterations {
		m1 := a + (b-a)/3
		m2 := b - (b-a)/3
		if f(m1) < f(m2) {
			b = m2
		} else {
			a = m1
		}
	}
	return 0.5 * (a + b)
}

// QuaternaryMin finds the minimum of f in [a, b], assuming f is unimodal
// there. Each iteration splits the bracket in four, evaluates the three
// interior points and keeps the two quarters around the best one. It returns
// the best parameter seen and its value.
func QuaternaryMin(f func(float64) float64, a, b float64) (float64, float64) {
	bestX := 0.5 * (a + b)
	bestY := f(bestX)
	for range quaternaryIterations {
		step := (b - a) / 4
		best := 1
		var ys [3]float64
		for i := range ys {
			ys[i] = f(a + float64(i+1)*step)
			if ys[i] < ys[best-1] {
				best = i + 1
			}
		}
		if ys[best-1] < bestY {
			bestX = a + float64(best)*step
			bestY = ys[best-1]
		}
		a, b = a+float64(best-1)*step, a+float64(best+1)*step
	}
	return bestX, bestY
}
