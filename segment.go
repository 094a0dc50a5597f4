package pathkit

import (
	"fmt"
)

type SegmentKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// sub-path.
	MoveToKind SegmentKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location, C1 and the point.
	QuadToKind
	// Draw a cubic Bézier using the current location, C1, C2 and the point.
	CubicToKind
	// Close off the sub-path. P holds the sub-path's start.
	ClosePathKind
)

func (k SegmentKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidSegment"
	}
}

// Segment is one command of a path. The segment's start point is implicit: it
// is the end point of the previous segment, or the enclosing sub-path's MoveTo.
type Segment struct {
	Kind SegmentKind
	// C1 is the control point of quadratic curves and the first control point
	// of cubic curves.
	C1 Point
	// C2 is the second control point of cubic curves.
	C2 Point
	// P is the end point.
	P Point
}

func MoveTo(pt Point) Segment {
	return Segment{Kind: MoveToKind, P: pt}
}

func LineTo(pt Point) Segment {
	return Segment{Kind: LineToKind, P: pt}
}

func QuadTo(c, pt Point) Segment {
	return Segment{Kind: QuadToKind, C1: c, P: pt}
}

func CubicTo(c1, c2, pt Point) Segment {
	return Segment{Kind: CubicToKind, C1: c1, C2: c2, P: pt}
}

// ClosePath returns a ClosePath segment for a sub-path starting at start.
func ClosePath(start Point) Segment {
	return Segment{Kind: ClosePathKind, P: start}
}

func (seg Segment) String() string {
	switch seg.Kind {
	case QuadToKind:
		return fmt.Sprintf("%s(%s, %s)", seg.Kind, seg.C1, seg.P)
	case CubicToKind:
		return fmt.Sprintf("%s(%s, %s, %s)", seg.Kind, seg.C1, seg.C2, seg.P)
	default:
		return fmt.Sprintf("%s(%s)", seg.Kind, seg.P)
	}
}

// IsCurve reports whether the segment is a quadratic or cubic curve.
func (seg Segment) IsCurve() bool {
	return seg.Kind == QuadToKind || seg.Kind == CubicToKind
}

// draws reports whether the segment advances along the path. MoveTo and
// ClosePath don't.
func (seg Segment) draws() bool {
	return seg.Kind == LineToKind || seg.Kind == QuadToKind || seg.Kind == CubicToKind
}

func (seg Segment) Transform(aff Affine) Segment {
	seg.P = seg.P.Transform(aff)
	switch seg.Kind {
	case QuadToKind:
		seg.C1 = seg.C1.Transform(aff)
	case CubicToKind:
		seg.C1 = seg.C1.Transform(aff)
		seg.C2 = seg.C2.Transform(aff)
	}
	return seg
}

// IsNaN reports whether any point used by the segment's kind is NaN.
func (seg Segment) IsNaN() bool {
	switch seg.Kind {
	case QuadToKind:
		return seg.P.IsNaN() || seg.C1.IsNaN()
	case CubicToKind:
		return seg.P.IsNaN() || seg.C1.IsNaN() || seg.C2.IsNaN()
	default:
		return seg.P.IsNaN()
	}
}

// Cubic returns the segment, starting at start, as a cubic Bézier. Lines and
// quadratic curves are converted exactly; MoveTo and ClosePath yield a
// degenerate cubic at P.
func (seg Segment) Cubic(start Point) CubicBez {
	switch seg.Kind {
	case LineToKind:
		return Line{start, seg.P}.Cubic()
	case QuadToKind:
		return QuadBez{start, seg.C1, seg.P}.Raise()
	case CubicToKind:
		return CubicBez{start, seg.C1, seg.C2, seg.P}
	default:
		return CubicBez{seg.P, seg.P, seg.P, seg.P}
	}
}

// Curve returns the drawing segment, starting at start, as a parametric
// curve. MoveTo and ClosePath yield a degenerate line at P.
func (seg Segment) Curve(start Point) ParametricCurve {
	switch seg.Kind {
	case LineToKind:
		return Line{start, seg.P}
	case QuadToKind:
		return QuadBez{start, seg.C1, seg.P}
	case CubicToKind:
		return CubicBez{start, seg.C1, seg.C2, seg.P}
	default:
		return Line{seg.P, seg.P}
	}
}

// tangents returns the unnormalized start and end tangents of a drawing
// segment starting at start.
func (seg Segment) tangents(start Point) (Vec2, Vec2) {
	switch seg.Kind {
	case QuadToKind:
		return QuadBez{start, seg.C1, seg.P}.Raise().Tangents()
	case CubicToKind:
		return CubicBez{start, seg.C1, seg.C2, seg.P}.Tangents()
	default:
		d := seg.P.Sub(start)
		return d, d
	}
}

// sanitizeSegments replaces NaN and infinite coordinates with usable
// fallbacks: control points become the midpoint of the segment's start and
// end, end points become the segment's start. It returns segs itself when
// nothing had to be replaced.
func sanitizeSegments(segs []Segment) []Segment {
	dirty := false
	for _, seg := range segs {
		if !segmentFinite(seg) {
			dirty = true
			break
		}
	}
	if !dirty {
		return segs
	}

	out := make([]Segment, len(segs))
	var cur, start Point
	replaced := 0
	for i, seg := range segs {
		if !seg.P.IsFinite() {
			seg.P = cur
			replaced++
		}
		mid := cur.Midpoint(seg.P)
		if seg.Kind == QuadToKind || seg.Kind == CubicToKind {
			if !seg.C1.IsFinite() {
				seg.C1 = mid
				replaced++
			}
		}
		if seg.Kind == CubicToKind && !seg.C2.IsFinite() {
			seg.C2 = mid
			replaced++
		}
		switch seg.Kind {
		case MoveToKind:
			start = seg.P
		case ClosePathKind:
			seg.P = start
		}
		cur = seg.P
		out[i] = seg
	}
	Logger().Warn("replaced non-finite coordinates", "points", replaced)
	return out
}

func segmentFinite(seg Segment) bool {
	switch seg.Kind {
	case QuadToKind:
		return seg.P.IsFinite() && seg.C1.IsFinite()
	case CubicToKind:
		return seg.P.IsFinite() && seg.C1.IsFinite() && seg.C2.IsFinite()
	default:
		return seg.P.IsFinite()
	}
}
