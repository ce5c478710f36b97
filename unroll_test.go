package hull

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFlatThird(t *testing.T) {
	c1, c2 := FlatThird(Pt2(0, 0), 3, Pt2(5, 0), 4)
	opt := cmpopts.EquateApprox(0, 1e-12)
	diff(t, Pt2(1.8, 2.4), c1, opt)
	diff(t, Pt2(1.8, -2.4), c2, opt)

	// Circles that don't meet collapse onto the line through the centers.
	c1, c2 = FlatThird(Pt2(0, 0), 1, Pt2(5, 0), 1)
	diff(t, c1, c2)
	diff(t, 0.0, c1.Y)
}

// strip returns two polylines on a cylinder of radius 2 around the x axis.
func strip(n int) (a, b []Point3) {
	for i := range n {
		th := float64(i) * 0.2
		x := float64(i) * 0.5
		a = append(a, Pt3(x, 2*math.Cos(th), 2*math.Sin(th)))
		b = append(b, Pt3(x+0.1, 2*math.Cos(th+0.5), 2*math.Sin(th+0.5)))
	}
	return a, b
}

func checkStrip(t *testing.T, a, b []Point3, fa, fb []Point2) {
	t.Helper()
	opt := cmpopts.EquateApprox(0, 1e-9)
	for i := range a {
		diff(t, a[i].Distance(b[i]), fa[i].Distance(fb[i]), opt)
		if i == 0 {
			continue
		}
		diff(t, a[i].Distance(a[i-1]), fa[i].Distance(fa[i-1]), opt)
		diff(t, b[i].Distance(b[i-1]), fb[i].Distance(fb[i-1]), opt)
	}
}

func TestUnroll(t *testing.T) {
	a, b := strip(8)
	fa, fb := Unroll(a, b, Pt2(1, 1), Pt2(0, 2))
	diff(t, Pt2(1, 1), fa[0])
	checkStrip(t, a, b, fa, fb)
	for i := 1; i < len(a); i++ {
		diff(t, a[i].Distance(b[i-1]), fa[i].Distance(fb[i-1]), cmpopts.EquateApprox(0, 1e-9))
	}
	// The strip continues to the left of the starting direction.
	if fa[1].X >= 1 {
		t.Errorf("strip grows to the right: %v", fa[1])
	}
}

func TestContinueStrip(t *testing.T) {
	a, b := strip(8)
	fa, _ := Unroll(a, b, Pt2(0, 0), Pt2(1, 0))
	// Lay out the next strip across from b, the way successive
	// cross-sections are laid out.
	fb := continueStrip(a, fa, b)
	checkStrip(t, a, b, fa, fb)
	diff(t, a[1].Distance(b[0]), fa[1].Distance(fb[0]), cmpopts.EquateApprox(0, 1e-9))
}

func TestFanOut(t *testing.T) {
	tip := Pt3(0, 0, 0)
	b := []Point3{Pt3(1, 0, 0), Pt3(1, 1, 0), Pt3(0, 1, 1)}
	fb := fanOut(tip, b, Pt2(1, 0))
	opt := cmpopts.EquateApprox(0, 1e-9)
	diff(t, Pt2(1, 0), fb[0], opt)
	for i := range b {
		diff(t, b[i].Distance(tip), fb[i].Hypot(), opt)
		if i > 0 {
			diff(t, b[i].Distance(b[i-1]), fb[i].Distance(fb[i-1]), opt)
			// Counterclockwise.
			if fb[i-1].Cross(fb[i]) <= 0 {
				t.Errorf("point %d turns clockwise", i)
			}
		}
	}
}
