package hull

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSegmentLine(t *testing.T) {
	c := mustBezier(t, Pt2(0, 0), Pt2(4, 3))
	s := NewSegment(c.NormalizedCurve, 0.25, 0.75)
	if s.Kind != LineKind {
		t.Fatalf("got kind %v, want %v", s.Kind, LineKind)
	}
	opt := cmpopts.EquateApprox(0, 1e-9)
	diff(t, Pt2(1, 0.75), s.Line.P0, opt)
	diff(t, Pt2(3, 2.25), s.Line.P1, opt)
	diff(t, 2.5, s.Length(), opt)
	diff(t, 0.0, s.Error, opt)
}

func TestSegmentArc(t *testing.T) {
	c := quarterCircle(t)
	s := NewSegment(c.NormalizedCurve, 0, 0.5)
	if s.Kind != ArcKind {
		t.Fatalf("got kind %v, want %v", s.Kind, ArcKind)
	}
	opt := cmpopts.EquateApprox(0, 1e-6)
	diff(t, 1.0, s.Arc.Radius, opt)
	diff(t, math.Pi/4, s.Length(), opt)
	diff(t, c.Get(0), s.Eval(0), opt)
	diff(t, c.Get(0.5), s.Eval(1), opt)
	if s.Mid <= s.Start || s.Mid >= s.End {
		t.Errorf("fitted through %g, outside of [%g, %g]", s.Mid, s.Start, s.End)
	}
}

func TestSegmentKindString(t *testing.T) {
	diff(t, "line", LineKind.String())
	diff(t, "arc", ArcKind.String())
	diff(t, "SegmentKind(7)", SegmentKind(7).String())
}

func TestSegmentationPolyline(t *testing.T) {
	c := mustBezier(t, Pt2(0, 0), Pt2(3, 3), Pt2(6, -3), Pt2(9, 0))
	s := c.SegmentsN(3)
	const tol = 1e-3
	pts := s.Polyline(tol)
	opt := cmpopts.EquateApprox(0, 1e-9)
	diff(t, c.Start(), pts[0], opt)
	diff(t, c.End(), pts[len(pts)-1], opt)
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			t.Errorf("duplicate point %v at %d", pts[i], i)
		}
	}
	// Every vertex lies on one of the primitives.
	for _, pt := range pts {
		best := math.Inf(1)
		for _, seg := range s.Segments {
			best = min(best, seg.Distance(pt))
		}
		if best > 1e-9 {
			t.Errorf("%v is %g away from the segments", pt, best)
		}
	}
	if s.Error() <= 0 {
		t.Errorf("got total error %g for a cubic", s.Error())
	}
}
