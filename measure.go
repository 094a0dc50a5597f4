package pathkit

import (
	"math"
)

// CurveSubdivisions is the number of chords used to approximate the length
// of a curved segment.
const CurveSubdivisions = 32

// piece is a drawing segment together with its start point and measurements.
type piece struct {
	index  int
	start  Point
	seg    Segment
	length float64
	// cumulative chord lengths at the subdivision points, for curves only
	table [CurveSubdivisions + 1]float64
}

func newPiece(index int, start Point, seg Segment) piece {
	pc := piece{index: index, start: start, seg: seg}
	if seg.Kind == LineToKind {
		pc.length = start.Distance(seg.P)
		return pc
	}
	c := seg.Curve(start)
	prev := start
	for i := 1; i <= CurveSubdivisions; i++ {
		pt := c.Eval(float64(i) / CurveSubdivisions)
		pc.table[i] = pc.table[i-1] + prev.Distance(pt)
		prev = pt
	}
	pc.length = pc.table[CurveSubdivisions]
	return pc
}

// param maps a distance s along the piece to the segment's curve parameter.
func (pc *piece) param(s float64) float64 {
	if pc.length == 0 {
		return 0
	}
	if pc.seg.Kind == LineToKind {
		return min(max(s/pc.length, 0), 1)
	}
	for i := 1; i <= CurveSubdivisions; i++ {
		if s <= pc.table[i] || i == CurveSubdivisions {
			d := pc.table[i] - pc.table[i-1]
			f := 0.0
			if d > 0 {
				f = min(max((s-pc.table[i-1])/d, 0), 1)
			}
			return (float64(i-1) + f) / CurveSubdivisions
		}
	}
	return 1
}

// frame returns the position and unit tangent at parameter t.
func (pc *piece) frame(t float64) (Point, Vec2) {
	c := pc.seg.Curve(pc.start)
	pt := c.Eval(t)
	tan := c.Deriv(t)
	if tan.Hypot2() < 1e-18 {
		// Coincident control points leave the derivative at the ends zero.
		d0, d1 := pc.seg.tangents(pc.start)
		if t < 0.5 {
			tan = d0
		} else {
			tan = d1
		}
	}
	return pt, tan.NormalizeOr(Vec2{1, 0})
}

// arcLength indexes the drawing segments of a path by accumulated length.
type arcLength struct {
	pieces []piece
	total  float64
	// first is the first point of the path, used when it has no drawing
	// segments.
	first Point
}

func newArcLength(segs []Segment) *arcLength {
	al := &arcLength{}
	var cur, start Point
	for i, seg := range segs {
		if i == 0 {
			al.first = seg.P
		}
		switch seg.Kind {
		case MoveToKind:
			start = seg.P
		case ClosePathKind:
			if cur != start {
				pc := newPiece(i, cur, LineTo(start))
				al.pieces = append(al.pieces, pc)
				al.total += pc.length
			}
			seg.P = start
		default:
			pc := newPiece(i, cur, seg)
			al.pieces = append(al.pieces, pc)
			al.total += pc.length
		}
		cur = seg.P
	}
	return al
}

// locate returns the piece containing the arc-length fraction t and the
// distance into that piece. It returns nil if there are no pieces of non-zero
// length.
func (al *arcLength) locate(t float64) (*piece, float64) {
	if al.total == 0 {
		return nil, 0
	}
	target := min(max(t, 0), 1) * al.total
	acc := 0.0
	var last *piece
	for i := range al.pieces {
		pc := &al.pieces[i]
		if pc.length == 0 {
			continue
		}
		if target <= acc+pc.length {
			return pc, target - acc
		}
		acc += pc.length
		last = pc
	}
	return last, last.length
}

// at returns the position and unit tangent at arc-length fraction t.
func (al *arcLength) at(t float64) (Point, Vec2) {
	pc, s := al.locate(t)
	if pc == nil {
		if len(al.pieces) > 0 {
			return al.pieces[len(al.pieces)-1].seg.P, Vec2{1, 0}
		}
		return al.first, Vec2{1, 0}
	}
	return pc.frame(pc.param(s))
}

// Length returns the length of the path. Lines are measured exactly, curves
// are approximated with [CurveSubdivisions] chords. MoveTo segments contribute
// no length; a ClosePath contributes the closing edge back to the sub-path's
// start.
func Length(segs []Segment) float64 {
	return newArcLength(segs).total
}

// PointAt returns the point at arc-length fraction t ∈ [0, 1] of the path. t is
// clamped to that range.
func PointAt(segs []Segment, t float64) Point {
	pt, _ := newArcLength(segs).at(t)
	return pt
}

// TangentAt returns the unit tangent at arc-length fraction t. Paths without
// length have the tangent ⟨1, 0⟩.
func TangentAt(segs []Segment, t float64) Vec2 {
	_, tan := newArcLength(segs).at(t)
	return tan
}

// NormalAt returns the unit normal at arc-length fraction t, which is the
// tangent rotated by +90°.
func NormalAt(segs []Segment, t float64) Vec2 {
	return TangentAt(segs, t).Perp()
}

// Sample returns n+1 points evenly spaced by arc length, including both ends of
// the path. It returns nil for negative n.
func Sample(segs []Segment, n int) []Point {
	if n < 0 {
		return nil
	}
	al := newArcLength(segs)
	pts := make([]Point, n+1)
	for i := range pts {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		pts[i], _ = al.at(t)
	}
	return pts
}

// SplitAt splits the path at arc-length fraction t. The first half ends at the
// split point; the second half starts with a MoveTo to it. The remainder of a
// closed sub-path that was split has its ClosePath replaced by a line back to
// the sub-path's start.
func SplitAt(segs []Segment, t float64) ([]Segment, []Segment) {
	al := newArcLength(segs)
	pc, s := al.locate(t)
	if pc == nil {
		return append([]Segment(nil), segs...), nil
	}
	u := pc.param(s)
	var left, right Segment
	switch pc.seg.Kind {
	case LineToKind:
		mid := Line{pc.start, pc.seg.P}.Eval(u)
		left, right = LineTo(mid), LineTo(pc.seg.P)
	case QuadToKind:
		q := QuadBez{pc.start, pc.seg.C1, pc.seg.P}
		l, r := q.Subsegment(0, u), q.Subsegment(u, 1)
		left, right = QuadTo(l.P1, l.P2), QuadTo(r.P1, pc.seg.P)
	case CubicToKind:
		c := CubicBez{pc.start, pc.seg.C1, pc.seg.C2, pc.seg.P}
		l, r := c.Subsegment(0, u), c.Subsegment(u, 1)
		left, right = CubicTo(l.P1, l.P2, l.P3), CubicTo(r.P1, r.P2, pc.seg.P)
	}
	mid := left.P

	a := make([]Segment, 0, pc.index+1)
	a = append(a, segs[:pc.index]...)
	a = append(a, left)

	b := make([]Segment, 0, len(segs)-pc.index+1)
	b = append(b, MoveTo(mid), right)
	inSplit := true
	for _, seg := range segs[pc.index+1:] {
		if seg.Kind == MoveToKind {
			inSplit = false
		}
		if inSplit && seg.Kind == ClosePathKind {
			seg = LineTo(seg.P)
		}
		b = append(b, seg)
	}
	return a, b
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing the
// path, taking curve extrema into account. It returns the zero rectangle for an
// empty path.
func BoundingBox(segs []Segment) Rect {
	if len(segs) == 0 {
		return Rect{}
	}
	bbox := Rect{segs[0].P.X, segs[0].P.Y, segs[0].P.X, segs[0].P.Y}
	var cur Point
	for _, seg := range segs {
		bbox = bbox.UnionPoint(seg.P)
		switch seg.Kind {
		case QuadToKind:
			q := QuadBez{cur, seg.C1, seg.P}
			ex, n := q.Extrema()
			for _, t := range ex[:n] {
				bbox = bbox.UnionPoint(q.Eval(t))
			}
		case CubicToKind:
			c := CubicBez{cur, seg.C1, seg.C2, seg.P}
			ex, n := c.Extrema()
			for _, t := range ex[:n] {
				bbox = bbox.UnionPoint(c.Eval(t))
			}
		}
		cur = seg.P
	}
	return bbox
}

// ControlBox returns the smallest axis-aligned rectangle enclosing all points
// of the path, control points included.
func ControlBox(segs []Segment) Rect {
	if len(segs) == 0 {
		return Rect{}
	}
	bbox := Rect{segs[0].P.X, segs[0].P.Y, segs[0].P.X, segs[0].P.Y}
	for _, seg := range segs {
		bbox = bbox.UnionPoint(seg.P)
		switch seg.Kind {
		case QuadToKind:
			bbox = bbox.UnionPoint(seg.C1)
		case CubicToKind:
			bbox = bbox.UnionPoint(seg.C1).UnionPoint(seg.C2)
		}
	}
	return bbox
}

// turnAngle returns the unsigned angle by which the direction changes at cur,
// coming from prev and going to next.
func turnAngle(prev, cur, next Point) float64 {
	return cur.Sub(prev).AngleBetween(next.Sub(cur))
}

// radians converts degrees to radians.
func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
