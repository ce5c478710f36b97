package hull

import (
	"slices"
	"sort"

	"github.com/sirupsen/logrus"
)

// degenerateLength is the length below which a cross-section is treated as a
// single point.
const degenerateLength = 1e-9

// Bound maps u to a cross-section parameter t. Pairs of bounds delimit the
// part of a surface a panel covers.
type Bound func(u float64) float64

func constBound(t float64) Bound { return func(float64) float64 { return t } }

// FlattenNode is a panel of a flattened surface. A node covers the surface
// between its lower and upper bounds, from the cross-section it starts at
// down to either u = 0 or the cross-section at which it splits into children
// along division curves.
type FlattenNode struct {
	surface *Surface
	lower   Bound
	upper   Bound

	// Start is the index of the cross-section the node starts at, End the
	// index of the cross-section it ends at.
	Start int
	End   int

	// Leading is the node's first edge, from the lower to the upper bound.
	// It is a single point for a panel starting at a pointed end.
	Leading Polygon
	// Trailing is the node's last edge, from the lower to the upper bound.
	// Nodes with children leave it empty; their children's leading edges
	// take its place.
	Trailing Polygon
	// Upper and Lower are the node's long edges, one point per cross-section
	// past the first.
	Upper Polygon
	Lower Polygon
	// Children holds the node's children, ordered from the upper bound
	// down. A node splits in two at a single division curve.
	Children []*FlattenNode
	// Teeth is the leading edge with puzzle teeth cut into it. The root has
	// no joint at its leading edge, so there it equals Leading.
	Teeth Polygon

	samples int
	cur3    []Point3
	cur2    []Point2
	divs    []*DivisionCurve
	hits    map[int][]bulkheadHit
}

type bulkheadHit struct {
	t  float64
	pt Point2
}

// Tip describes how the flattening of a surface begins at u = 1.
type Tip struct {
	// Point is the surface point at the tip, if Degenerate.
	Point Point3
	// Degenerate reports whether all rails meet in a single point at u = 1.
	Degenerate bool
	// Lower and Upper are the unit directions, in the plane, from the tip to
	// the first laid out points on the lower and upper bound.
	Lower Point2
	Upper Point2
}

// refDir is the direction in which the flattening starts.
var refDir = Pt2(1, 0)

// FlattenTip lays out the far end of the surface and reports the reference
// directions the flattening grows from.
func (s *Surface) FlattenTip() Tip {
	root := s.newRoot()
	tip := Tip{Degenerate: len(root.Leading) == 1}
	if tip.Degenerate {
		tip.Point = s.sections[s.divisions].Curve.Start()
	}
	o := root.Leading[0]
	if len(root.Upper) > 0 {
		tip.Lower = root.Lower[0].Sub(o).Unit()
		tip.Upper = root.Upper[0].Sub(o).Unit()
	} else {
		tip.Lower = refDir
		tip.Upper = root.Leading[len(root.Leading)-1].Sub(o).Unit()
	}
	return tip
}

// newRoot creates the root node and lays out its first strip.
func (s *Surface) newRoot() *FlattenNode {
	n := &FlattenNode{
		surface: s,
		lower:   constBound(0),
		upper:   constBound(1),
		Start:   s.divisions,
		divs:    slices.Clone(s.divCurves),
		hits:    make(map[int][]bulkheadHit),
	}
	far := s.sections[s.divisions].Curve
	if far.Length() < degenerateLength {
		// All rails meet: fan the next cross-section out around the tip.
		n.samples = max(2, s.sections[s.divisions-1].Curve.GetMinResolution(0, 1))
		tip := far.Start()
		n.cur3 = make([]Point3, n.samples)
		n.cur2 = make([]Point2, n.samples)
		for k := range n.samples {
			n.cur3[k] = tip
			n.cur2[k] = Pt2(0, 0)
		}
		n.Leading = Polygon{Pt2(0, 0)}
		n.Teeth = n.Leading

		b3 := n.sampleSection(s.divisions - 1)
		b2 := fanOut(tip, b3, refDir)
		n.record(s.divisions, b3, b2)
		return n
	}

	// The far edge runs to the left of refDir, the strips grow in direction
	// refDir.
	n.samples = max(2, far.GetMinResolution(0, 1))
	n.cur3 = n.sampleSection(s.divisions)
	b3 := n.sampleSection(s.divisions - 1)
	lead, b2 := Unroll(n.cur3, b3, Pt2(0, 0), refDir)
	n.cur2 = lead
	n.Leading = slices.Clone(Polygon(lead))
	n.Teeth = n.Leading
	n.record(s.divisions, b3, b2)
	return n
}

// sampleSection returns the node's samples on cross-section i, evenly spaced
// in t between its bounds.
func (n *FlattenNode) sampleSection(i int) []Point3 {
	u := n.surface.U(i)
	lo, hi := n.lower(u), n.upper(u)
	c := n.surface.sections[i].Curve
	out := make([]Point3, n.samples)
	for k := range out {
		out[k] = c.Get(lo + (hi-lo)*float64(k)/float64(n.samples-1)).WithWeight(1)
	}
	return out
}

// sampleParams returns the t of the node's samples on cross-section i.
func (n *FlattenNode) sampleParams(i int) []float64 {
	u := n.surface.U(i)
	lo, hi := n.lower(u), n.upper(u)
	out := make([]float64, n.samples)
	for k := range out {
		out[k] = lo + (hi-lo)*float64(k)/float64(n.samples-1)
	}
	return out
}

// record appends the strip from cross-section i to i-1 to the node. The
// samples on cross-section i-1 are b, laid out as fb.
func (n *FlattenNode) record(i int, b []Point3, fb []Point2) {
	n.Lower = append(n.Lower, fb[0])
	n.Upper = append(n.Upper, fb[len(fb)-1])
	n.collectBulkheads(i-1, n.cur2, fb)
	n.cur3, n.cur2 = b, fb
	n.End = i - 1
}

// step lays out the strip between the node's current cross-section and the
// next one toward u = 0.
func (n *FlattenNode) step() {
	i := n.End
	b3 := n.sampleSection(i - 1)
	b2 := continueStrip(n.cur3, n.cur2, b3)
	n.record(i, b3, b2)
}

// fillTo lays out strips until the node reaches cross-section end.
func (n *FlattenNode) fillTo(end int) {
	for n.End > end {
		n.step()
	}
}

// collectBulkheads records where cutting planes cross the strip between
// cross-sections i and i+1. fa holds the layout of cross-section i+1, fb that
// of cross-section i.
func (n *FlattenNode) collectBulkheads(i int, fa, fb []Point2) {
	s := n.surface
	if len(s.bulkheads) == 0 || len(fa) != len(fb) {
		return
	}
	ta := n.sampleParams(i + 1)
	tb := n.sampleParams(i)
	for pi, b := range s.bulkheads {
		for _, c := range b.Crossings {
			if c.Index != i {
				continue
			}
			u := s.U(i) + c.Frac*(s.U(i+1)-s.U(i))
			if c.T < n.lower(u) || c.T > n.upper(u) {
				continue
			}
			pb := interpolate(tb, fb, c.T)
			pa := interpolate(ta, fa, c.T)
			n.hits[pi] = append(n.hits[pi], bulkheadHit{c.T, pb.Lerp(pa, c.Frac)})
		}
	}
}

// interpolate returns the point at t along the polyline pts, whose points lie
// at the increasing parameters ts. t is clamped to the parameters' range.
func interpolate(ts []float64, pts []Point2, t float64) Point2 {
	if t <= ts[0] {
		return pts[0]
	}
	if t >= ts[len(ts)-1] {
		return pts[len(pts)-1]
	}
	i := sort.SearchFloat64s(ts, t)
	span := ts[i] - ts[i-1]
	if span == 0 {
		return pts[i]
	}
	return pts[i-1].Lerp(pts[i], (t-ts[i-1])/span)
}

// fill lays out the node. At the first division curve that lies strictly
// within its bounds, the node splits: it is laid out up to the cross-section
// where the curve starts, and the rest of the surface is covered by children
// bounded by the curve. Division curves that start at the same cross-section
// split the node together.
func (n *FlattenNode) fill() {
	for len(n.divs) > 0 {
		d := n.divs[0]
		n.divs = n.divs[1:]
		at := min(d.EndIndex, n.End)
		if at == 0 || !n.inside(d, at) {
			continue
		}

		seams := []*DivisionCurve{d}
		var rest []*DivisionCurve
		for _, o := range n.divs {
			if min(o.EndIndex, n.End) == at && n.inside(o, at) {
				seams = append(seams, o)
			} else {
				rest = append(rest, o)
			}
		}
		n.divs = rest
		n.split(at, seams)
		return
	}
	n.fillTo(0)
	n.Trailing = slices.Clone(Polygon(n.cur2))
}

// inside reports whether d lies strictly between n's bounds at cross-section
// i.
func (n *FlattenNode) inside(d *DivisionCurve, i int) bool {
	u := n.surface.U(i)
	t := d.T(u)
	return t > n.lower(u) && t < n.upper(u)
}

// split lays out n up to cross-section i and creates one child per gap
// between the seams and n's bounds, ordered from the upper bound down.
func (n *FlattenNode) split(i int, seams []*DivisionCurve) {
	n.fillTo(i)
	u := n.surface.U(i)
	slices.SortFunc(seams, func(a, b *DivisionCurve) int {
		ta, tb := a.T(u), b.T(u)
		switch {
		case ta > tb:
			return -1
		case ta < tb:
			return 1
		default:
			return 0
		}
	})
	Logger().WithFields(logrus.Fields{
		"u":     u,
		"seams": len(seams),
	}).Debug("splitting panel")

	bounds := make([]Bound, 0, len(seams)+2)
	bounds = append(bounds, n.upper)
	for _, d := range seams {
		bounds = append(bounds, d.T)
	}
	bounds = append(bounds, n.lower)
	for k := 1; k < len(bounds); k++ {
		n.Children = append(n.Children, n.newChild(bounds[k], bounds[k-1]))
	}
	for _, c := range n.Children {
		c.fill()
	}
}

// newChild creates a child of n covering the part of the surface between
// lower and upper. Its leading edge is resampled from n's last laid out
// cross-section.
func (n *FlattenNode) newChild(lower, upper Bound) *FlattenNode {
	s := n.surface
	i := n.End
	u := s.U(i)
	c := &FlattenNode{
		surface: s,
		lower:   lower,
		upper:   upper,
		Start:   i,
		End:     i,
		divs:    slices.Clone(n.divs),
		hits:    make(map[int][]bulkheadHit),
	}
	c.samples = max(2, s.sections[i].Curve.GetMinResolution(lower(u), upper(u)))
	c.cur3 = c.sampleSection(i)
	parentT := n.sampleParams(i)
	ts := c.sampleParams(i)
	c.cur2 = make([]Point2, len(ts))
	for k, t := range ts {
		c.cur2[k] = interpolate(parentT, n.cur2, t)
	}
	c.Leading = slices.Clone(Polygon(c.cur2))
	c.Teeth = PuzzleTeeth(c.Leading, s.params.ToothWidth, s.params.ToothAngle)
	return c
}

// Nodes returns n and all its descendants, parents before children.
func (n *FlattenNode) Nodes() []*FlattenNode {
	out := []*FlattenNode{n}
	for _, c := range n.Children {
		out = append(out, c.Nodes()...)
	}
	return out
}

// Outline returns the node's panel as a closed polygon: its leading edge,
// its upper edge, its children's leading edges (or its own trailing edge),
// and its lower edge reversed. Joints with children carry the children's
// teeth.
func (n *FlattenNode) Outline() Polygon {
	var out Polygon
	out = append(out, n.Teeth...)
	out = append(out, n.Upper...)
	if len(n.Children) == 0 {
		out = append(out, n.Trailing.Reverse()...)
	} else {
		for _, c := range n.Children {
			out = append(out, c.Teeth.Reverse()...)
		}
	}
	out = append(out, n.Lower.Reverse()...)
	return dedupe(out)
}

// ToContinuousPoints returns the outline of the whole flattened surface: the
// outer upper edge, followed by the outer lower edge reversed.
func (n *FlattenNode) ToContinuousPoints() Polygon {
	var upper, lower Polygon
	for c := n; c != nil; {
		upper = append(upper, c.Upper...)
		if len(c.Children) == 0 {
			break
		}
		c = c.Children[0]
	}
	for c := n; c != nil; {
		lower = append(lower, c.Lower...)
		if len(c.Children) == 0 {
			break
		}
		c = c.Children[len(c.Children)-1]
	}
	return append(upper, lower.Reverse()...)
}

// BulkheadLines returns, for the i-th cutting plane, the plane's trace on the
// node's panel ordered by t. The result is empty if the plane misses the
// panel.
func (n *FlattenNode) BulkheadLines(i int) Polygon {
	hits := slices.Clone(n.hits[i])
	slices.SortStableFunc(hits, func(a, b bulkheadHit) int {
		switch {
		case a.t < b.t:
			return -1
		case a.t > b.t:
			return 1
		default:
			return 0
		}
	})
	out := make(Polygon, len(hits))
	for k, h := range hits {
		out[k] = h.pt
	}
	return out
}

// dedupe drops consecutive duplicate points.
func dedupe(p Polygon) Polygon {
	out := p[:0:0]
	for i, pt := range p {
		if i > 0 && pt == out[len(out)-1] {
			continue
		}
		out = append(out, pt)
	}
	return out
}

// FlattenSide is one side of a flattened hull.
type FlattenSide struct {
	// Panels holds one closed outline per panel.
	Panels []Polygon
	// BulkheadLines holds, per cutting plane, the plane's trace on every
	// panel it crosses.
	BulkheadLines [][]Polygon
	// Outline is the outline of the whole side.
	Outline Polygon
}

// FlattenResult is the flattened surface. The second side mirrors the first.
type FlattenResult struct {
	Root  *FlattenNode
	Sides [2]FlattenSide
}

// Flatten unrolls the surface into panels, splitting it along its division
// curves. Flattening starts at u = 1 and proceeds toward u = 0.
func (s *Surface) Flatten() *FlattenResult {
	root := s.newRoot()
	root.fill()

	var side FlattenSide
	nodes := root.Nodes()
	for i, n := range nodes {
		outline := n.Outline()
		if xs := outline.SelfIntersections(); len(xs) > 0 {
			Logger().WithFields(logrus.Fields{
				"panel":     i,
				"crossings": len(xs),
				"at":        xs[0],
			}).Warn("panel outline intersects itself")
		}
		side.Panels = append(side.Panels, outline)
	}
	side.BulkheadLines = make([][]Polygon, len(s.bulkheads))
	for pi := range s.bulkheads {
		for _, n := range nodes {
			if l := n.BulkheadLines(pi); len(l) > 0 {
				side.BulkheadLines[pi] = append(side.BulkheadLines[pi], l)
			}
		}
	}
	side.Outline = root.ToContinuousPoints()

	res := &FlattenResult{Root: root}
	res.Sides[0] = side
	res.Sides[1] = side.Transform(FlipX)

	Logger().WithFields(logrus.Fields{
		"panels":  len(side.Panels),
		"outline": len(side.Outline),
	}).Info("flattened surface")
	return res
}

// Transform returns a copy of the side with aff applied to every point.
func (fs FlattenSide) Transform(aff Affine) FlattenSide {
	out := FlattenSide{
		Panels:        make([]Polygon, len(fs.Panels)),
		BulkheadLines: make([][]Polygon, len(fs.BulkheadLines)),
		Outline:       fs.Outline.Transform(aff),
	}
	for i, p := range fs.Panels {
		out.Panels[i] = p.Transform(aff)
	}
	for i, ls := range fs.BulkheadLines {
		for _, l := range ls {
			out.BulkheadLines[i] = append(out.BulkheadLines[i], l.Transform(aff))
		}
	}
	return out
}
