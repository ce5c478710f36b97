package hull

import "math"

// maxPlainTeeth is the number of teeth above which two are dropped, leaving
// more plain edge at the ends of long joints.
const maxPlainTeeth = 6

// PuzzleTeeth replaces stretches of path with dovetail teeth so that the
// edges of two adjacent panels interlock. Teeth are width long, centered on
// the path, and keep at least one width of plain edge at either end. Their
// flanks lean outward by angle radians, and consecutive teeth point to
// alternating sides of the path.
//
// Paths too short for a single tooth are returned unchanged.
func PuzzleTeeth(path Polygon, width, angle float64) Polygon {
	if len(path) < 2 || width <= 0 {
		return append(Polygon(nil), path...)
	}
	length := path.Length()
	n := int(math.Floor((length - 2*width) / width))
	if n > maxPlainTeeth {
		n -= 2
	}
	if n <= 0 {
		return append(Polygon(nil), path...)
	}
	Logger().WithField("teeth", n).WithField("length", length).Debug("cutting puzzle teeth")

	depth := width / 4
	start := (length - float64(n)*width) / 2
	cum := path.cumulativeLengths()

	out := make(Polygon, 0, len(path)+4*n)
	k := 0
	for j := range n {
		lo := start + float64(j)*width
		hi := lo + width
		// Keep the original vertices up to the tooth, drop the ones inside
		// it.
		for k < len(path) && cum[k] < lo {
			out = append(out, path[k])
			k++
		}
		for k < len(path) && cum[k] <= hi {
			k++
		}

		p0, _ := path.PointAt(lo)
		p3, _ := path.PointAt(hi)
		chord := p3.Sub(p0)
		flare := math.Pi/2 + angle
		if j%2 == 1 {
			flare = -flare
		}
		// The tooth is laid out along the x axis from p0 and then turned
		// onto the chord.
		frame := RotateAbout(chord.Heading(), p0)
		p1 := p0.Polar(flare, depth).Transform(frame)
		p2 := p0.Add(Point2{X: chord.Hypot()}).Polar(math.Pi-flare, depth).Transform(frame)
		if len(out) == 0 || out[len(out)-1] != p0 {
			out = append(out, p0)
		}
		out = append(out, p1, p2, p3)
	}
	out = append(out, path[k:]...)
	return out
}
