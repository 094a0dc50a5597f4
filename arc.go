package pathkit

import (
	"math"
)

// Arc is an elliptical arc in center parameterization.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// SVGArc is an elliptical arc in the endpoint parameterization used by SVG
// path data.
type SVGArc struct {
	From      Point
	To        Point
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

// IsStraightLine reports whether the arc degenerates to a straight line from
// From to To, which per SVG is the case when either radius is zero.
func (a SVGArc) IsStraightLine() bool {
	return math.Abs(a.Radii.X) < 1e-9 || math.Abs(a.Radii.Y) < 1e-9
}

// Arc converts the arc to center parameterization. It returns false when the
// arc is degenerate: when its end points coincide or it is a straight line.
//
// Radii that are too small to span the end points are scaled up uniformly, as
// SVG requires.
func (a SVGArc) Arc() (Arc, bool) {
	if a.From == a.To || a.IsStraightLine() {
		return Arc{}, false
	}
	rx := math.Abs(a.Radii.X)
	ry := math.Abs(a.Radii.Y)
	sin, cos := math.Sincos(a.XRotation)

	hd := a.From.Sub(a.To).Mul(0.5)
	x1 := cos*hd.X + sin*hd.Y
	y1 := -sin*hd.X + cos*hd.Y

	if lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rxry := rx * rx * ry * ry
	rxy1 := rx * rx * y1 * y1
	ryx1 := ry * ry * x1 * x1
	coef := 0.0
	if den := rxy1 + ryx1; den != 0 {
		coef = math.Sqrt(max(0, (rxry-rxy1-ryx1)/den))
	}
	if a.LargeArc == a.Sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	mid := a.From.Midpoint(a.To)
	center := Point{
		X: cos*cx1 - sin*cy1 + mid.X,
		Y: sin*cx1 + cos*cy1 + mid.Y,
	}

	u := Vec((x1-cx1)/rx, (y1-cy1)/ry)
	v := Vec((-x1-cx1)/rx, (-y1-cy1)/ry)
	start := u.Angle()
	sweep := math.Atan2(u.Cross(v), u.Dot(v))
	if !a.Sweep && sweep > 0 {
		sweep -= 2 * math.Pi
	} else if a.Sweep && sweep < 0 {
		sweep += 2 * math.Pi
	}
	return Arc{
		Center:     center,
		Radii:      Vec(rx, ry),
		StartAngle: start,
		SweepAngle: sweep,
		XRotation:  a.XRotation,
	}, true
}

// Segments converts the arc to segments starting at From. Degenerate arcs
// become a single line, or nothing at all when the end points coincide.
func (a SVGArc) Segments() []Segment {
	arc, ok := a.Arc()
	if !ok {
		if a.From == a.To {
			return nil
		}
		return []Segment{LineTo(a.To)}
	}
	segs := arc.Cubics()
	// Land exactly on the requested end point.
	segs[len(segs)-1].P = a.To
	return segs
}

// Cubics approximates the arc with cubic Béziers, using one curve per
// quarter turn or part thereof. The returned segments don't include a MoveTo
// to the arc's start point.
func (a Arc) Cubics() []Segment {
	n := max(1, int(math.Ceil(math.Abs(a.SweepAngle)/(math.Pi/2)-1e-9)))
	angleStep := a.SweepAngle / float64(n)
	armLen := (4.0 / 3.0) * math.Tan(0.25*angleStep)
	angle0 := a.StartAngle
	p0 := sampleEllipse(a.Radii, a.XRotation, angle0)

	segs := make([]Segment, 0, n)
	for range n {
		angle1 := angle0 + angleStep
		p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
		p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
		p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))

		angle0 = angle1
		p0 = p3

		segs = append(segs, CubicTo(
			a.Center.Translate(p1),
			a.Center.Translate(p2),
			a.Center.Translate(p3),
		))
	}
	return segs
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and an
// angle, and returns a point on the ellipse relative to its center.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

// rotatePt rotates pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}
