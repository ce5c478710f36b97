package hull

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// twoRails is a simple hard-chine side: a bilge and a gunnel meeting at the
// bow.
func twoRails() [][]Point3 {
	bilge := []Point3{Pt3(0, -2, 0), Pt3(5, -2, 0), Pt3(10, 0, 0)}
	gunnel := []Point3{Pt3(0, -2, 3), Pt3(5, -2, 3), Pt3(10, 0, 0)}
	return [][]Point3{bilge, gunnel}
}

// threeRails is a round-bilged side whose cross-sections curve.
func threeRails() [][]Point3 {
	keel := []Point3{Pt3(0, 0, 0), Pt3(5, 0, 0), Pt3(10, 0, 1)}
	chine := []Point3{Pt3(0, -2, 0.5), Pt3(5, -2, 0.5), Pt3(10, 0, 1)}
	gunnel := []Point3{Pt3(0, -2, 2), Pt3(5, -2, 2), Pt3(10, 0, 1)}
	return [][]Point3{keel, chine, gunnel}
}

func mustSurface(t testing.TB, rails [][]Point3, p Params) *Surface {
	t.Helper()
	s, err := NewSurface(rails, p)
	require.NoError(t, err)
	return s
}

func TestNewSurfaceErrors(t *testing.T) {
	_, err := NewSurface(twoRails()[:1], DefaultParams())
	require.True(t, errors.Is(err, ErrTooFewRails), "got %v", err)

	_, err = NewSurface([][]Point3{{Pt3(0, 0, 0)}, {Pt3(1, 0, 0), Pt3(2, 0, 0)}}, DefaultParams())
	require.True(t, errors.Is(err, ErrTooFewPoints), "got %v", err)

	p := DefaultParams()
	p.MinSegments = 0
	_, err = NewSurface(twoRails(), p)
	require.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
}

func TestSurfaceSections(t *testing.T) {
	s := mustSurface(t, twoRails(), DefaultParams())
	require.Equal(t, MaxResolution*4/5, s.Divisions())
	require.Len(t, s.Sections(), s.Divisions()+1)
	require.Len(t, s.Rails(), 2)
	require.Empty(t, s.DivisionCurves())

	for i, sec := range s.Sections() {
		require.Equal(t, i, sec.Index)
		require.Equal(t, s.U(i), sec.U)
		// Straight cross-sections need a single segment.
		require.Len(t, sec.Segments.Segments, 1)
	}
	require.Zero(t, s.Section(s.Divisions()).Curve.Length())
}

func TestPointOnSurface(t *testing.T) {
	s := mustSurface(t, twoRails(), DefaultParams())
	for _, i := range []int{0, 37, 100, s.Divisions()} {
		u := s.U(i)
		for j, r := range s.Rails() {
			want := r.Get(u).WithWeight(1)
			got := s.PointOnSurface(u, float64(j))
			require.InDelta(t, 0, want.Distance(got), 1e-9, "u=%g rail %d", u, j)
		}
	}
	// Between cross-sections, points are blended.
	u := (s.U(10) + s.U(11)) / 2
	want := s.Section(10).Curve.Get(0.5).Lerp(s.Section(11).Curve.Get(0.5), 0.5)
	require.InDelta(t, 0, want.Distance(s.PointOnSurface(u, 0.5)), 1e-9)
}

func TestVolumeUnder(t *testing.T) {
	s := mustSurface(t, twoRails(), DefaultParams())
	v := s.VolumeUnder(1)
	require.Greater(t, v, 0.0)
	require.Less(t, v, s.VolumeUnder(2))
	require.Zero(t, s.VolumeUnder(-1))
}

func TestVolumeUnderBox(t *testing.T) {
	// A flat-bottomed box, 1 wide, 2 high and 4 long. Its side is a vertical
	// wall at y = -1 above a bottom at z = 0, so the volume between the side,
	// the center plane and the waterline is that of a prism.
	bottom := []Point3{Pt3(0, -1, 0), Pt3(4, -1, 0)}
	top := []Point3{Pt3(0, -1, 2), Pt3(4, -1, 2)}
	s := mustSurface(t, [][]Point3{bottom, top}, DefaultParams())
	require.InDelta(t, 4.0, s.VolumeUnder(1), 1e-6)
	require.InDelta(t, 8.0, s.VolumeUnder(5), 1e-6)
}

func TestPanelRules(t *testing.T) {
	p := DefaultParams().WithPanels(PanelRule{Threshold: 0, Segments: 2})
	s := mustSurface(t, threeRails(), p)

	// The rails meet at u = 1, and a point isn't split.
	require.Len(t, s.Section(s.Divisions()).Segments.Segments, 1)
	for _, sec := range s.Sections()[:s.Divisions()] {
		require.Len(t, sec.Segments.Segments, 2, "section %d", sec.Index)
	}
	divs := s.DivisionCurves()
	require.Len(t, divs, 1)
	d := divs[0]
	require.Equal(t, s.Divisions()-1, d.EndIndex)
	require.Equal(t, s.U(s.Divisions()-1), d.UEnd)
	require.Equal(t, 0.0, d.UStart)
	require.Len(t, d.Polyline(), s.Divisions())
	for i := range s.Divisions() {
		tt := d.T(s.U(i))
		require.Greater(t, tt, 0.0)
		require.Less(t, tt, 1.0)
	}
}

func TestSurfaceNearlyMeetingRails(t *testing.T) {
	// Rails that end a hair apart behave like rails that meet.
	rails := twoRails()
	rails[1][2] = Pt3(10, 1e-13, 0)
	s := mustSurface(t, rails, DefaultParams())

	tip := s.Section(s.Divisions())
	require.Less(t, tip.Curve.Length(), degenerateLength)
	require.Len(t, tip.Segments.Segments, 1)
	for _, sec := range s.Sections() {
		require.Len(t, sec.Segments.Segments, 1, "section %d", sec.Index)
	}
	require.Empty(t, s.DivisionCurves())

	require.Len(t, s.Flatten().Root.Nodes(), 1)
	require.True(t, s.FlattenTip().Degenerate)
}

func TestSegmentCountsNeverDecrease(t *testing.T) {
	p := DefaultParams().WithPanels(PanelRule{Threshold: 0.5, Segments: 3})
	s := mustSurface(t, threeRails(), p)
	prev := 0
	for i := s.Divisions(); i >= 0; i-- {
		n := len(s.Section(i).Segments.Segments)
		require.GreaterOrEqual(t, n, prev, "section %d", i)
		prev = n
	}
}

func TestBulkheads(t *testing.T) {
	p := DefaultParams().WithPlanes(
		Plane[Point3]{Origin: Pt3(5, 0, 0), Direction: Point3{X: 2}},
		Plane[Point3]{Origin: Pt3(20, 0, 0), Direction: Point3{X: 1}},
	)
	s := mustSurface(t, threeRails(), p)
	require.Len(t, s.Bulkheads(), 2)

	b := s.Bulkhead(0)
	require.False(t, b.Empty())
	require.Equal(t, Point3{X: 1}, b.Plane.Direction)
	for _, c := range b.Crossings {
		require.InDelta(t, 5, c.Point.X, 1e-9)
		require.GreaterOrEqual(t, c.Frac, 0.0)
		require.LessOrEqual(t, c.Frac, 1.0)
	}
	// Crossings run along the bulkhead's longest extent.
	pts := b.Polyline()
	require.Len(t, pts, len(b.Crossings))
	box := NewBoxFromPoints(pts...)
	axis := 0
	for a := 1; a < 3; a++ {
		if box.Size(a) > box.Size(axis) {
			axis = a
		}
	}
	for i := 1; i < len(pts); i++ {
		require.LessOrEqual(t, pts[i-1].Coord(axis), pts[i].Coord(axis))
	}

	require.True(t, s.Bulkhead(1).Empty())
}

func TestMatchBoundaries(t *testing.T) {
	for _, tc := range []struct {
		prev, next []float64
		want       []int
	}{
		{nil, []float64{0.5}, []int{}},
		{[]float64{0.5}, []float64{0.2, 0.45, 0.9}, []int{1}},
		{[]float64{0.3, 0.7}, []float64{0.28, 0.5, 0.72}, []int{0, 2}},
		{[]float64{0.3, 0.7}, []float64{0.6, 0.65}, []int{0, 1}},
		{[]float64{0.3, 0.7}, []float64{0.5}, []int{0, -1}},
	} {
		require.Equal(t, tc.want, matchBoundaries(tc.prev, tc.next), "prev %v, next %v", tc.prev, tc.next)
	}
}

func TestConvexChain(t *testing.T) {
	sample := func(u, t float64) divisionSample { return divisionSample{u: u, t: t} }

	peak := convexChain([]divisionSample{sample(0, 0), sample(0.5, 1), sample(1, 0)})
	require.Equal(t, []Point2{Pt2(0, 0), Pt2(1, 0)}, peak)

	valley := convexChain([]divisionSample{sample(0, 1), sample(0.5, 0), sample(1, 1)})
	require.Equal(t, []Point2{Pt2(0, 1), Pt2(0.5, 0), Pt2(1, 1)}, valley)

	for _, pts := range [][]Point2{peak, valley} {
		for i := 1; i < len(pts); i++ {
			require.Greater(t, pts[i].X, pts[i-1].X)
		}
	}
}

func BenchmarkNewSurface(b *testing.B) {
	rails := threeRails()
	p := DefaultParams()
	for range b.N {
		if _, err := NewSurface(rails, p); err != nil {
			b.Fatal(err)
		}
	}
}

func TestSurfaceSymmetric(t *testing.T) {
	// Mirroring the rails across the center plane mirrors the surface.
	rails := twoRails()
	mirrored := make([][]Point3, len(rails))
	for i, r := range rails {
		for _, pt := range r {
			mirrored[i] = append(mirrored[i], pt.Mirror(1))
		}
	}
	a := mustSurface(t, rails, DefaultParams())
	b := mustSurface(t, mirrored, DefaultParams())
	require.InDelta(t, a.VolumeUnder(1), b.VolumeUnder(1), 1e-9)
	pa, pb := a.PointOnSurface(0.3, 0.4), b.PointOnSurface(0.3, 0.4)
	require.InDelta(t, pa.Y, -pb.Y, 1e-9)
	require.InDelta(t, pa.X, pb.X, 1e-9)
	require.False(t, math.IsNaN(pa.Z))
}
