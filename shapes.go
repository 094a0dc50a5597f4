package pathkit

import (
	"math"
)

// Rectangle returns the segments of a rectangle with corner radii rx and ry,
// as drawn by SVG's rect element. The radii are clamped to half the width and
// height. A rectangle with non-positive width or height yields no segments.
func Rectangle(r Rect, rx, ry float64) []Segment {
	x, y := r.X0, r.Y0
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	rx = min(max(rx, 0), w/2)
	ry = min(max(ry, 0), h/2)
	if rx == 0 || ry == 0 {
		return []Segment{
			MoveTo(Pt(x, y)),
			LineTo(Pt(x+w, y)),
			LineTo(Pt(x+w, y+h)),
			LineTo(Pt(x, y+h)),
			ClosePath(Pt(x, y)),
		}
	}

	start := Pt(x+rx, y)
	segs := []Segment{MoveTo(start)}
	cur := start
	lineTo := func(p Point) {
		if p != cur {
			segs = append(segs, LineTo(p))
			cur = p
		}
	}
	corner := func(center Point, startAngle float64, end Point) {
		arc := Arc{
			Center:     center,
			Radii:      Vec(rx, ry),
			StartAngle: startAngle,
			SweepAngle: math.Pi / 2,
		}
		cubics := arc.Cubics()
		cubics[len(cubics)-1].P = end
		segs = append(segs, cubics...)
		cur = end
	}
	lineTo(Pt(x+w-rx, y))
	corner(Pt(x+w-rx, y+ry), -math.Pi/2, Pt(x+w, y+ry))
	lineTo(Pt(x+w, y+h-ry))
	corner(Pt(x+w-rx, y+h-ry), 0, Pt(x+w-rx, y+h))
	lineTo(Pt(x+rx, y+h))
	corner(Pt(x+rx, y+h-ry), math.Pi/2, Pt(x, y+h-ry))
	lineTo(Pt(x, y+ry))
	corner(Pt(x+rx, y+ry), math.Pi, start)
	segs = append(segs, ClosePath(start))
	return segs
}

// Ellipse returns the segments of an axis-aligned ellipse, made of four cubic
// Béziers, one per quadrant, starting at the rightmost point. Non-positive radii
// yield no segments.
func Ellipse(center Point, radii Vec2) []Segment {
	if radii.X <= 0 || radii.Y <= 0 {
		return nil
	}
	arc := Arc{Center: center, Radii: radii, SweepAngle: 2 * math.Pi}
	cubics := arc.Cubics()
	quadrants := [4]Point{
		Pt(center.X, center.Y+radii.Y),
		Pt(center.X-radii.X, center.Y),
		Pt(center.X, center.Y-radii.Y),
		Pt(center.X+radii.X, center.Y),
	}
	for i := range cubics {
		cubics[i].P = quadrants[i]
	}
	start := quadrants[3]
	segs := make([]Segment, 0, len(cubics)+2)
	segs = append(segs, MoveTo(start))
	segs = append(segs, cubics...)
	segs = append(segs, ClosePath(start))
	return segs
}

// Circle returns the segments of a circle. See [Ellipse].
func Circle(center Point, r float64) []Segment {
	return Ellipse(center, Vec(r, r))
}

// Polyline returns the segments connecting pts with lines, closing the
// sub-path if closed is true, as SVG's polygon element does. Fewer than two
// points yield no segments.
func Polyline(pts []Point, closed bool) []Segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(pts)+1)
	segs = append(segs, MoveTo(pts[0]))
	for _, pt := range pts[1:] {
		segs = append(segs, LineTo(pt))
	}
	if closed {
		segs = append(segs, ClosePath(pts[0]))
	}
	return segs
}

// pointList pairs up a flat list of coordinates. A trailing odd coordinate is
// dropped, as SVG requires.
func pointList(coords []float64) []Point {
	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, Pt(coords[i], coords[i+1]))
	}
	return pts
}
