package hull

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustBezier[P Vector[P]](t testing.TB, pts ...P) *RationalBezier[P] {
	t.Helper()
	c, err := NewRationalBezier(pts)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNormalizedCurveUniform(t *testing.T) {
	c := mustBezier(t, Pt2(0, 0), Pt2(5, 10), Pt2(10, 0))
	const n = 100
	pts := c.Sample(n)
	if len(pts) != n+1 {
		t.Fatalf("got %d samples, want %d", len(pts), n+1)
	}
	mean := c.Length() / n
	for i := range n {
		d := pts[i+1].Distance(pts[i])
		if rel := math.Abs(d-mean) / mean; rel > 2e-3 {
			t.Errorf("step %d is %g long, mean is %g", i, d, mean)
		}
	}
}

func TestNormalizedCurveLUTMonotonic(t *testing.T) {
	c := mustBezier(t, Pt3(0, 0, 0), Pt3(1, 4, 0), Pt3(5, 4, 2), Pt3(6, 0, 2))
	lut := c.LUT()
	if len(lut) != MaxResolution+1 {
		t.Fatalf("got %d entries, want %d", len(lut), MaxResolution+1)
	}
	for i := 1; i < len(lut); i++ {
		if lut[i].T <= lut[i-1].T || lut[i].D <= lut[i-1].D {
			t.Fatalf("entry %d not increasing: %+v after %+v", i, lut[i], lut[i-1])
		}
		if lut[i].AngleSum < lut[i-1].AngleSum || lut[i].AngleSq < lut[i-1].AngleSq {
			t.Fatalf("running angle sums decrease at %d", i)
		}
	}
	if lut[0].T != 0 || lut[MaxResolution].T != 1 {
		t.Errorf("table spans t ∈ [%g, %g]", lut[0].T, lut[MaxResolution].T)
	}
}

func TestNormalizedCurveEndpoints(t *testing.T) {
	for n := 2; n <= 6; n++ {
		pts := make([]Point3, n)
		for i := range pts {
			fi := float64(i)
			pts[i] = WPt3(fi, fi*fi, math.Sin(fi), 1+fi/2)
		}
		c := mustBezier(t, pts...)
		first, last := pts[0].WithWeight(1), pts[n-1].WithWeight(1)
		diff(t, first, c.Get(0))
		diff(t, last, c.Get(1))
		diff(t, first, c.Get(-1))
		diff(t, last, c.Get(2))
		diff(t, last, c.End())
		for _, e := range c.LUT() {
			if e.Point.W != 1 {
				t.Fatalf("table point %v isn't normalized", e.Point)
			}
		}
	}

	c := mustBezier(t, Pt3(0, 0, 0), Pt3(1, 4, 0), Pt3(5, 4, 2), Pt3(6, 0, 2))
	if got := c.Get(1); got != Pt3(6, 0, 2) {
		t.Errorf("got end point %v", got)
	}
}

func TestNormalizedCurveDegenerate(t *testing.T) {
	p := Pt3(1, 2, 3)
	c := mustBezier(t, p, p, p)
	if c.Length() != 0 {
		t.Fatalf("got length %g", c.Length())
	}
	diff(t, p, c.Get(0.5))
	if n := c.GetMinResolution(0, 1); n != 1 {
		t.Errorf("got resolution %d, want 1", n)
	}
	if u := c.FindDimmDist(0, 5); u != NotFound {
		t.Errorf("got %g, want NotFound", u)
	}
}

func TestFindDimmDist(t *testing.T) {
	c := mustBezier(t, Pt2(0, 0), Pt2(10, 0))
	diff(t, 0.25, c.FindDimmDist(0, 2.5), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 1.0, c.FindDimmDist(0, 10))
	if u := c.FindDimmDist(1, 5); u != NotFound {
		t.Errorf("got %g, want NotFound", u)
	}
}

func TestFindPlaneIntersection(t *testing.T) {
	c := mustBezier(t, Pt2(0, 0), Pt2(5, 10), Pt2(10, 0))

	xs := c.FindPlaneIntersection(Plane[Point2]{Origin: Pt2(0, 2), Direction: Pt2(0, 1)})
	if len(xs) != 2 {
		t.Fatalf("got %d intersections, want 2", len(xs))
	}
	if xs[0].U >= xs[1].U {
		t.Errorf("intersections out of order: %v", xs)
	}
	for _, x := range xs {
		if d := math.Abs(x.Point.Y - 2); d > 1e-9 {
			t.Errorf("intersection %v is %g off the plane", x.Point, d)
		}
		if d := x.Point.Distance(c.Get(x.U)); d > 1e-3 {
			t.Errorf("intersection %v is %g off the curve", x.Point, d)
		}
	}

	if xs := c.FindPlaneIntersection(Plane[Point2]{Origin: Pt2(0, 20), Direction: Pt2(0, 1)}); len(xs) != 0 {
		t.Errorf("expected no intersections, got %v", xs)
	}
}

func TestFindArea(t *testing.T) {
	opt := cmpopts.EquateApprox(0, 1e-9)

	// A constant width of 1 over a height of 2.
	rect := mustBezier(t, Pt3(0, 1, 0), Pt3(0, 1, 2))
	diff(t, 2.0, rect.FindArea(0, 1, 2, 1), opt)
	diff(t, 1.0, rect.FindArea(0, 0.5, 2, 1), opt)

	// A triangle with legs of 2.
	tri := mustBezier(t, Pt3(0, 0, 0), Pt3(0, -2, 2))
	diff(t, 2.0, tri.FindArea(0, 1, 2, 1), opt)

	diff(t, 0.0, tri.FindArea(0.5, 0.5, 2, 1))
}

func TestGetMinResolution(t *testing.T) {
	c := mustBezier(t, Pt2(0, 0), Pt2(5, 10), Pt2(10, 0))
	if n := c.GetMinResolution(0, 1); n != MaxResolution*4/5 {
		t.Errorf("got %d, want %d", n, MaxResolution*4/5)
	}
	if a, b := c.GetMinResolution(0, 0.5), c.GetMinResolution(0, 1); a >= b {
		t.Errorf("half the curve needs %d samples, the whole curve %d", a, b)
	}
}

func TestFindSmallestOnCurve(t *testing.T) {
	c := mustBezier(t, Pt2(0, 0), Pt2(5, 10), Pt2(10, 0))
	target := Pt2(5, 20)
	u := c.FindSmallestOnCurve(func(_ float64, pt Point2) float64 { return pt.Distance(target) }, 0, 1)
	// The apex of the symmetric arch is closest.
	diff(t, 0.5, u, cmpopts.EquateApprox(0, 1e-4))
}

func BenchmarkNewNormalizedCurve(b *testing.B) {
	pts := []Point3{Pt3(0, 0, 0), Pt3(1, 4, 0), Pt3(5, 4, 2), Pt3(6, 0, 2)}
	for range b.N {
		if _, err := NewRationalBezier(pts); err != nil {
			b.Fatal(err)
		}
	}
}
