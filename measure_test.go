package pathkit

import (
	"math"
	"testing"
)

func TestLength(t *testing.T) {
	tests := []struct {
		d    string
		want float64
	}{
		// The closing edge is drawn, so it is part of the outline's length.
		{"M 0 0 L 100 0 L 100 100 Z", 200 + 100*math.Sqrt2},
		{"M0 0 L100 0 L100 100 L0 100 Z", 400},
		{"M0 0 L100 0 L0 0 Z", 200},
		{"M0 0 L3 4 M10 10 L10 20", 15},
		{"M5 5", 0},
		{"M0 0 Q50 0 100 0", 100},
	}
	for _, tt := range tests {
		if got := Length(mustParsePath(t, tt.d)); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Length(%q) = %g, want %g", tt.d, got, tt.want)
		}
	}

	circle := Circle(Pt(0, 0), 10)
	if got := Length(circle); math.Abs(got-20*math.Pi) > 0.05 {
		t.Errorf("circle has length %g, want %g", got, 20*math.Pi)
	}
	if got := Length(nil); got != 0 {
		t.Errorf("empty path has length %g", got)
	}
}

func TestPointAt(t *testing.T) {
	segs := mustParsePath(t, "M0 0 L100 0 L100 100")
	tests := []struct {
		t       float64
		pt      Point
		tangent Vec2
	}{
		{0, Pt(0, 0), Vec(1, 0)},
		{0.25, Pt(50, 0), Vec(1, 0)},
		{0.75, Pt(100, 50), Vec(0, 1)},
		{1, Pt(100, 100), Vec(0, 1)},
		{-1, Pt(0, 0), Vec(1, 0)},
		{2, Pt(100, 100), Vec(0, 1)},
	}
	for _, tt := range tests {
		assertNear(t, PointAt(segs, tt.t), tt.pt, 1e-9)
		diff(t, tt.tangent, TangentAt(segs, tt.t), approx(1e-12))
	}
	// Normals point to the right of the direction of travel, on screen.
	diff(t, Vec(0, 1), NormalAt(segs, 0.25), approx(1e-12))
	diff(t, Vec(-1, 0), NormalAt(segs, 0.75), approx(1e-12))
}

func TestPointAtCurve(t *testing.T) {
	// Half of a symmetric curve's length is at its apex.
	segs := mustParsePath(t, "M0 0 C0 50 100 50 100 0")
	assertNear(t, PointAt(segs, 0.5), Pt(50, 37.5), 0.01)
	diff(t, Vec(1, 0), TangentAt(segs, 0.5), approx(1e-3))

	// Coincident control points don't produce a zero tangent.
	segs = mustParsePath(t, "M0 0 C0 0 10 0 10 0")
	diff(t, Vec(1, 0), TangentAt(segs, 0), approx(1e-12))
	diff(t, Vec(1, 0), TangentAt(segs, 1), approx(1e-12))
}

func TestPointAtDegenerate(t *testing.T) {
	segs := mustParsePath(t, "M5 5")
	diff(t, Pt(5, 5), PointAt(segs, 0.5))
	diff(t, Vec(1, 0), TangentAt(segs, 0.5))

	segs = mustParsePath(t, "M5 5 L5 5 L5 5")
	diff(t, Pt(5, 5), PointAt(segs, 0.5))
	diff(t, Vec(1, 0), TangentAt(segs, 0.5))

	diff(t, Point{}, PointAt(nil, 0.5))
}

func TestSample(t *testing.T) {
	segs := mustParsePath(t, "M0 0 L100 0")
	diff(t, []Point{Pt(0, 0), Pt(25, 0), Pt(50, 0), Pt(75, 0), Pt(100, 0)}, Sample(segs, 4), approx(1e-9))
	diff(t, []Point{Pt(0, 0)}, Sample(segs, 0))
	diff(t, []Point(nil), Sample(segs, -1))

	// Samples are spaced evenly by length, not by segment.
	segs = mustParsePath(t, "M0 0 L10 0 L100 0")
	diff(t, []Point{Pt(0, 0), Pt(50, 0), Pt(100, 0)}, Sample(segs, 2), approx(1e-9))

	// Closed outlines are sampled all the way around.
	segs = Rectangle(Rect{0, 0, 100, 100}, 0, 0)
	diff(t, []Point{Pt(0, 0), Pt(100, 0), Pt(100, 100), Pt(0, 100), Pt(0, 0)}, Sample(segs, 4), approx(1e-9))
	diff(t, Vec(0, -1), TangentAt(segs, 0.9), approx(1e-12))
}

func TestSplitAt(t *testing.T) {
	segs := mustParsePath(t, "M0 0 L100 0 L100 100")
	a, b := SplitAt(segs, 0.25)
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(50, 0))}, a)
	diff(t, []Segment{MoveTo(Pt(50, 0)), LineTo(Pt(100, 0)), LineTo(Pt(100, 100))}, b)

	// The remainder of a split closed sub-path draws its closing line
	// explicitly.
	segs = mustParsePath(t, "M0 0 L100 0 L100 100 L0 100 Z M200 200 L300 300 Z")
	a, b = SplitAt(segs, 0.25)
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(100, 0)), LineTo(Pt(100, 70.71067811865476))}, a, approx(1e-9))
	diff(t, []Segment{
		MoveTo(Pt(100, 70.71067811865476)),
		LineTo(Pt(100, 100)),
		LineTo(Pt(0, 100)),
		LineTo(Pt(0, 0)),
		MoveTo(Pt(200, 200)),
		LineTo(Pt(300, 300)),
		ClosePath(Pt(200, 200)),
	}, b, approx(1e-9))

	// Splitting on the closing edge itself.
	segs = mustParsePath(t, "M0 0 L100 0 L100 100 Z")
	a, b = SplitAt(segs, 0.9)
	mid := Pt(24.14213562373095, 24.14213562373095)
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(100, 0)), LineTo(Pt(100, 100)), LineTo(mid)}, a, approx(1e-9))
	diff(t, []Segment{MoveTo(mid), LineTo(Pt(0, 0))}, b, approx(1e-9))

	segs = mustParsePath(t, "M0 0 C0 50 100 50 100 0 Q150 -50 200 0")
	a, b = SplitAt(segs, 0.3)
	total := Length(segs)
	if got := Length(a) + Length(b); math.Abs(got-total) > 1e-3*total {
		t.Errorf("halves have length %g, want %g", got, total)
	}
	if got := Length(a) / total; math.Abs(got-0.3) > 0.01 {
		t.Errorf("first half has %g of the length, want 0.3", got)
	}
	diff(t, a[len(a)-1].P, b[0].P)

	a, b = SplitAt(mustParsePath(t, "M1 1"), 0.5)
	diff(t, []Segment{MoveTo(Pt(1, 1))}, a)
	diff(t, []Segment(nil), b)
}

func TestBoundingBox(t *testing.T) {
	segs := mustParsePath(t, "M0 0 C0 10 10 10 10 0")
	diff(t, Rect{0, 0, 10, 7.5}, BoundingBox(segs), approx(1e-12))
	diff(t, Rect{0, 0, 10, 10}, ControlBox(segs))

	segs = mustParsePath(t, "M0 0 Q5 10 10 0 M-5 -5")
	diff(t, Rect{-5, -5, 10, 5}, BoundingBox(segs), approx(1e-12))

	diff(t, Rect{}, BoundingBox(nil))
}

func BenchmarkSample(b *testing.B) {
	segs := Circle(Pt(0, 0), 100)
	for range b.N {
		Sample(segs, 100)
	}
}
