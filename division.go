package hull

import (
	"math"
	"slices"
)

// DivisionCurve is a seam of a surface: the path, in (u, t) space, of a
// segment boundary across consecutive cross-sections. It starts at the
// cross-section where the boundary first appears (UEnd) and runs to u = 0.
type DivisionCurve struct {
	// EndIndex is the index of the cross-section at UEnd.
	EndIndex int
	UStart   float64
	UEnd     float64
	// Spline maps u to t.
	Spline *CatmullRom
	// Points holds the seam's samples on the surface, by increasing u.
	Points []Point3
}

// T returns the t of the seam at u.
func (d *DivisionCurve) T(u float64) float64 {
	return d.Spline.T(u)
}

// Polyline returns the literal 3D samples of the seam, for display.
func (d *DivisionCurve) Polyline() []Point3 {
	return slices.Clone(d.Points)
}

type divisionSample struct {
	index int
	u, t  float64
	pt    Point3
}

// divisionTracker follows segment boundaries from one cross-section to the
// next, far end first.
type divisionTracker struct {
	open   [][]divisionSample
	closed [][]divisionSample
}

// add records the interior segment boundaries of a cross-section. Boundaries
// are matched to the boundaries of the previous cross-section by an order
// preserving assignment that minimizes the total change in t. Boundaries
// left without a partner start new seams; seams left without a partner end.
func (dt *divisionTracker) add(sec *Section, bounds []float64) {
	prev := make([]float64, len(dt.open))
	for i, o := range dt.open {
		prev[i] = o[len(o)-1].t
	}
	match := matchBoundaries(prev, bounds)

	var open [][]divisionSample
	used := make([]bool, len(dt.open))
	j := 0
	for k, t := range bounds {
		s := divisionSample{index: sec.Index, u: sec.U, t: t, pt: sec.Curve.Get(t).WithWeight(1)}
		for j < len(match) && match[j] < k {
			j++
		}
		if j < len(match) && match[j] == k {
			used[j] = true
			open = append(open, append(dt.open[j], s))
		} else {
			open = append(open, []divisionSample{s})
		}
	}
	for i, o := range dt.open {
		if !used[i] {
			dt.closed = append(dt.closed, o)
		}
	}
	dt.open = open
}

// matchBoundaries assigns each of prev to a distinct element of next,
// preserving order, such that the sum of |prev[i] - next[match[i]]| is
// minimal. If next is shorter than prev, the trailing elements of prev are
// left unmatched (-1).
func matchBoundaries(prev, next []float64) []int {
	m, k := len(prev), len(next)
	match := make([]int, m)
	for i := range match {
		match[i] = -1
	}
	if m == 0 || k == 0 {
		return match
	}
	if m > k {
		// Segment counts never decrease; this only guards against misuse.
		m = k
	}

	// cost[i][j] is the best cost of matching prev[:i] into next[:j].
	cost := make([][]float64, m+1)
	for i := range cost {
		cost[i] = make([]float64, k+1)
		for j := range cost[i] {
			if j < i {
				cost[i][j] = math.Inf(1)
			}
		}
	}
	for i := 1; i <= m; i++ {
		for j := i; j <= k; j++ {
			skip := cost[i][j-1]
			take := cost[i-1][j-1] + math.Abs(prev[i-1]-next[j-1])
			cost[i][j] = min(skip, take)
		}
	}
	for i, j := m, k; i > 0; j-- {
		if cost[i][j] != cost[i][j-1] || j == i {
			match[i-1] = j - 1
			i--
		}
	}
	return match
}

// finish turns the tracked boundaries into division curves, sorted by
// descending UEnd.
func (dt *divisionTracker) finish() []*DivisionCurve {
	var out []*DivisionCurve
	for _, samples := range append(dt.closed, dt.open...) {
		// Samples were collected from the far end.
		slices.Reverse(samples)
		knots := convexChain(samples)
		spline, err := NewCatmullRom(knots)
		if err != nil {
			Logger().WithField("u", samples[0].u).Debug("dropped single-sample seam")
			continue
		}
		pts := make([]Point3, len(samples))
		for i, s := range samples {
			pts[i] = s.pt
		}
		last := samples[len(samples)-1]
		out = append(out, &DivisionCurve{
			EndIndex: last.index,
			UStart:   samples[0].u,
			UEnd:     last.u,
			Spline:   spline,
			Points:   pts,
		})
	}
	slices.SortStableFunc(out, func(a, b *DivisionCurve) int {
		switch {
		case a.UEnd > b.UEnd:
			return -1
		case a.UEnd < b.UEnd:
			return 1
		default:
			return 0
		}
	})
	Logger().WithField("count", len(out)).Debug("found division curves")
	return out
}

// convexChain reduces samples, ordered by increasing u, to the lower convex
// hull of their (u, t) points using a monotone chain scan. The first and last
// samples are always kept.
func convexChain(samples []divisionSample) []Point2 {
	hull := make([]Point2, 0, len(samples))
	for _, s := range samples {
		p := Pt2(s.u, s.t)
		for len(hull) >= 2 {
			a, b := hull[len(hull)-2], hull[len(hull)-1]
			if b.Sub(a).Cross(p.Sub(a)) > 0 {
				break
			}
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull
}
