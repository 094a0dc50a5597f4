package pathkit

import (
	"math"
	"testing"
)

func TestRectangle(t *testing.T) {
	diff(t, []Segment{
		MoveTo(Pt(1, 2)),
		LineTo(Pt(11, 2)),
		LineTo(Pt(11, 7)),
		LineTo(Pt(1, 7)),
		ClosePath(Pt(1, 2)),
	}, Rectangle(Rect{1, 2, 11, 7}, 0, 0))

	if segs := Rectangle(Rect{0, 0, 0, 10}, 0, 0); segs != nil {
		t.Errorf("got %v for an empty rectangle", segs)
	}
}

func TestRoundedRectangle(t *testing.T) {
	segs := Rectangle(Rect{0, 0, 20, 10}, 2, 2)
	diff(t, []SegmentKind{
		MoveToKind,
		LineToKind, CubicToKind,
		LineToKind, CubicToKind,
		LineToKind, CubicToKind,
		LineToKind, CubicToKind,
		ClosePathKind,
	}, kinds(segs))
	diff(t, Pt(2, 0), segs[0].P)
	diff(t, Pt(20, 2), segs[2].P)
	diff(t, Pt(2, 0), segs[8].P)
	diff(t, Rect{0, 0, 20, 10}, BoundingBox(segs), approx(1e-9))

	// Radii are clamped to half the side, leaving no straight edges.
	segs = Rectangle(Rect{0, 0, 10, 10}, 20, 20)
	diff(t, []SegmentKind{MoveToKind, CubicToKind, CubicToKind, CubicToKind, CubicToKind, ClosePathKind}, kinds(segs))
	for _, pt := range Sample(segs, 64) {
		if d := pt.Distance(Pt(5, 5)); math.Abs(d-5) > 0.01 {
			t.Errorf("%s is %g from the center, want 5", pt, d)
		}
	}
}

func TestEllipse(t *testing.T) {
	segs := Ellipse(Pt(10, 20), Vec(8, 4))
	diff(t, []SegmentKind{MoveToKind, CubicToKind, CubicToKind, CubicToKind, CubicToKind, ClosePathKind}, kinds(segs))
	diff(t, Pt(18, 20), segs[0].P)
	diff(t, Pt(10, 24), segs[1].P)
	diff(t, Pt(2, 20), segs[2].P)
	diff(t, Pt(10, 16), segs[3].P)
	diff(t, Pt(18, 20), segs[4].P)
	for _, pt := range Sample(segs, 100) {
		v := pt.Sub(Pt(10, 20))
		if e := v.X*v.X/64 + v.Y*v.Y/16; math.Abs(e-1) > 1e-3 {
			t.Errorf("%s is off the ellipse: %g", pt, e)
		}
	}

	if segs := Ellipse(Pt(0, 0), Vec(0, 5)); segs != nil {
		t.Errorf("got %v for a zero radius", segs)
	}
	if segs := Circle(Pt(0, 0), -1); segs != nil {
		t.Errorf("got %v for a negative radius", segs)
	}
}

func TestPolyline(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(1, 0)), LineTo(Pt(1, 1))}, Polyline(pts, false))
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(1, 0)), LineTo(Pt(1, 1)), ClosePath(Pt(0, 0))}, Polyline(pts, true))
	if segs := Polyline(pts[:1], true); segs != nil {
		t.Errorf("got %v for a single point", segs)
	}
}
