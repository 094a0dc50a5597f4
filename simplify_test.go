package pathkit

import (
	"fmt"
	"math"
	"testing"
)

// wobblyPolygon returns a closed polygon of n points on a circle whose radius
// varies slightly, and whose last point misses the first by a hair.
func wobblyPolygon(center Point, r float64, n int) []Segment {
	pts := make([]Point, 0, n+1)
	for i := range n {
		th := float64(i) / float64(n) * 2 * math.Pi
		rr := r * (1 + 0.01*math.Sin(5*th))
		pts = append(pts, center.Translate(Vec(rr*math.Cos(th), rr*math.Sin(th))))
	}
	pts = append(pts, pts[0].Translate(Vec(1e-4, -1e-4)))
	return Polyline(pts, true)
}

func collinearLines(n int) []Segment {
	segs := []Segment{MoveTo(Pt(0, 0))}
	for i := 1; i <= n; i++ {
		segs = append(segs, LineTo(Pt(float64(i), 0)))
	}
	return segs
}

func TestSimplifyCollinearLines(t *testing.T) {
	p := NewPath(collinearLines(100)...)
	s := Simplify(p, 0.1)
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(100, 0))}, s.Segments)
	diff(t, 101, len(p.Segments))
}

func TestSimplifyNearlyStraightCubic(t *testing.T) {
	p := NewPath(mustParsePath(t, "M0 0 C33 0.08 66 -0.08 100 0")...)
	s := Simplify(p, 0.2)
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(100, 0))}, s.Segments)

	// A curve that bulges further stays a curve.
	p = NewPath(mustParsePath(t, "M0 0 C33 20 66 20 100 0")...)
	s = Simplify(p, 0.2)
	diff(t, p.Segments, s.Segments)
}

func TestSimplifyCircle(t *testing.T) {
	p := NewPath(Circle(Pt(50, 50), 40)...)
	s := Simplify(p, 0.1)

	segs := s.Segments
	diff(t, MoveToKind, segs[0].Kind)
	diff(t, ClosePathKind, segs[len(segs)-1].Kind)
	for _, seg := range segs[1 : len(segs)-1] {
		if seg.Kind != CubicToKind {
			t.Fatalf("circle was flattened: %v", segs)
		}
	}

	start := segs[0].P
	out := segs[1].C1.Sub(start).Normalize()
	in := start.Sub(segs[len(segs)-2].C2).Normalize()
	if dot := in.Dot(out); dot <= 0.9 {
		t.Errorf("seam handles aren't collinear: dot product %g", dot)
	}
	if c := Coverage(p, s, 128); c < 0.99 {
		t.Errorf("simplified circle covers %g of the original", c)
	}
}

func TestSimplifyCorners(t *testing.T) {
	p := NewPath(mustParsePath(t, "M0 0 L50 0.1 L100 0 L100 100 L0 100 Z")...)
	s := Simplify(p, 1)
	// The closing edge becomes explicit so that the sub-path ends exactly at
	// its start.
	diff(t, []Segment{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(100, 0)),
		LineTo(Pt(100, 100)),
		LineTo(Pt(0, 100)),
		LineTo(Pt(0, 0)),
		ClosePath(Pt(0, 0)),
	}, s.Segments)
}

func TestSimplifySeam(t *testing.T) {
	// A closed curve whose start is a slight kink gets smoothed; a sharp
	// corner is kept.
	smooth := NewPath(mustParsePath(t, "M0 0 C0 -30 100 -30 100 0 C100 30 -5 30 0 0 Z")...)
	s := Simplify(smooth, 0.01)
	first := s.Segments[1]
	last := s.Segments[len(s.Segments)-2]
	in := Pt(0, 0).Sub(last.C2)
	out := first.C1.Sub(Pt(0, 0))
	if math.Abs(in.Cross(out)) > 1e-9*in.Hypot()*out.Hypot() {
		t.Errorf("seam wasn't smoothed: in %s, out %s", in, out)
	}

	sharp := NewPath(mustParsePath(t, "M0 0 C0 -30 100 -30 100 0 C100 30 50 30 0 0 Z")...)
	s = Simplify(sharp, 0.01)
	diff(t, sharp.Segments[1].C1, s.Segments[1].C1)

	// Next to a line only the curve's handle turns, onto the line.
	mixed := NewPath(mustParsePath(t, "M0 0 C0 -30 100 -30 100 0 L100 40 L-10 40 L0 0 Z")...)
	s = Simplify(mixed, 0.01)
	first = s.Segments[1]
	diff(t, CubicToKind, first.Kind)
	in = Vec(10, -40)
	out = first.C1.Sub(Pt(0, 0))
	if math.Abs(in.Cross(out)) > 1e-9*in.Hypot()*out.Hypot() || in.Dot(out) <= 0 {
		t.Errorf("seam wasn't smoothed: in %s, out %s", in, out)
	}
	diff(t, 30.0, out.Hypot(), approx(1e-9))
	diff(t, mixed.Segments[2:], s.Segments[2:])
}

func TestSimplifyExactClosure(t *testing.T) {
	for _, segs := range [][]Segment{
		wobblyPolygon(Pt(0, 0), 100, 64),
		wobblyPolygon(Pt(10, 10), 1, 200),
		Circle(Pt(3, 3), 2),
		Rectangle(Rect{0, 0, 30, 20}, 4, 4),
		mustParsePath(t, "M0 0 L10 0 L10 10 L0 10 L0.0004 0.0002 Z"),
	} {
		for _, tol := range []float64{0.1, 1, 5} {
			s := Simplify(NewPath(segs...), tol)
			for _, sp := range s.Subpaths() {
				sub := s.Segments[sp.Start:sp.End]
				if !IsClosed(sub) {
					t.Fatalf("sub-path isn't closed anymore: %v", sub)
				}
				if got, want := sub[len(sub)-2].P, sub[0].P; got != want {
					t.Errorf("tolerance %g: closed sub-path ends at %s, not at its start %s", tol, got, want)
				}
			}
		}
	}
}

func TestSimplifyFixedPoint(t *testing.T) {
	shapes := map[string][]Segment{
		"wobbly":    wobblyPolygon(Pt(0, 0), 100, 64),
		"circle":    Circle(Pt(50, 50), 40),
		"rounded":   Rectangle(Rect{0, 0, 40, 20}, 5, 5),
		"collinear": collinearLines(50),
		"curves":    mustParsePath(t, "M0 0 C10 10 20 10 30 0 S50 -10 60 0 S80 10 90 0 L90 50 Q45 80 0 50 Z"),
		"compound":  append(wobblyPolygon(Pt(0, 0), 100, 48), wobblyPolygon(Pt(0, 0), 50, 48)...),
	}
	for name, segs := range shapes {
		for _, tol := range []float64{0.1, 0.5, 2} {
			t.Run(fmt.Sprintf("%s/%g", name, tol), func(t *testing.T) {
				once := Simplify(NewPath(segs...), tol)
				twice := Simplify(once, tol)
				if len(twice.Segments) < len(once.Segments) {
					t.Errorf("second pass reduced %d segments to %d", len(once.Segments), len(twice.Segments))
				}
				if len(once.Segments) > len(segs)+1 {
					t.Errorf("simplification grew the path from %d to %d segments", len(segs), len(once.Segments))
				}
			})
		}
	}
}

func TestSimplifyCompound(t *testing.T) {
	outer := wobblyPolygon(Pt(0, 0), 100, 64)
	inner := wobblyPolygon(Pt(0, 0), 40, 64)
	p := NewPath(append(outer, inner...)...)
	s := Simplify(p, 1)
	diff(t, 2, countKind(s.Segments, MoveToKind))
	diff(t, 2, countKind(s.Segments, ClosePathKind))
	for _, sp := range s.Subpaths() {
		if sp.Len() < 4 {
			t.Errorf("sub-path %v collapsed", sp)
		}
	}
	if len(s.Segments) >= len(p.Segments) {
		t.Errorf("compound path wasn't reduced: %d segments", len(s.Segments))
	}
}

func TestSimplifyTolerancePerSubpath(t *testing.T) {
	// The bump is 1 unit high on a 10 unit sub-path, well above 1% of its
	// own diagonal, although it is far below 1% of the whole drawing.
	p := NewPath(mustParsePath(t, "M0 0 L1000 0 M0 100 L5 101 L10 100")...)
	s := Simplify(p, 1)
	diff(t, []Segment{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(1000, 0)),
		MoveTo(Pt(0, 100)),
		LineTo(Pt(5, 101)),
		LineTo(Pt(10, 100)),
	}, s.Segments)
}

func TestSimplifyDegenerate(t *testing.T) {
	diff(t, Path{}, Simplify(Path{}, 1))

	// Zero-length segments and empty sub-paths are dropped.
	p := NewPath(mustParsePath(t, "M0 0 L0 0 L10 0 L10 0 M20 20 M30 30 L40 40")...)
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(10, 0)), MoveTo(Pt(30, 30)), LineTo(Pt(40, 40))}, Simplify(p, 1).Segments)

	// Style, ID and transform survive.
	p = Path{
		ID:        "x",
		Segments:  collinearLines(3),
		Style:     Style{Fill: "red"},
		Transform: Scale(2, 2),
	}
	s := Simplify(p, 1)
	diff(t, "x", s.ID)
	diff(t, p.Style, s.Style)
	diff(t, p.Transform, s.Transform)
}

func TestSimplifyNaN(t *testing.T) {
	captureLogs(t)
	p := NewPath(MoveTo(Pt(0, 0)), CubicTo(Pt(math.NaN(), 1), Pt(2, math.Inf(1)), Pt(3, 0)), LineTo(Pt(6, 0)))
	s := Simplify(p, 1)
	for _, seg := range s.Segments {
		if seg.IsNaN() || !segmentFinite(seg) {
			t.Fatalf("simplified path isn't finite: %v", s.Segments)
		}
	}
}

func TestFitCubics(t *testing.T) {
	// Points on a single cubic are fit by a single cubic.
	c := CubicBez{Pt(0, 0), Pt(30, 60), Pt(70, 60), Pt(100, 0)}
	var pts []Point
	for i := range 21 {
		pts = append(pts, c.Eval(float64(i)/20))
	}
	tan0, tan1 := c.Tangents()
	fitted, ok := FitCubics(pts, tan0, tan1, 1.5, 4)
	if !ok {
		t.Fatal("fit failed")
	}
	diff(t, 1, len(fitted))
	diff(t, pts[0], fitted[0].P0)
	diff(t, pts[20], fitted[0].P3)

	// A half circle needs more than one cubic at a tight tolerance.
	pts = pts[:0]
	for i := range 41 {
		th := math.Pi * float64(i) / 40
		pts = append(pts, Pt(-50*math.Cos(th), -50*math.Sin(th)))
	}
	if _, ok := FitCubics(pts, Vec(0, -1), Vec(0, 1), 0.01, 1); ok {
		t.Error("half circle was fit by a single cubic")
	}
	fitted, ok = FitCubics(pts, Vec(0, -1), Vec(0, 1), 0.01, 8)
	if !ok {
		t.Fatal("fit failed")
	}
	for i := 1; i < len(fitted); i++ {
		diff(t, fitted[i-1].P3, fitted[i].P0)
	}
	diff(t, pts[40], fitted[len(fitted)-1].P3)

	if _, ok := FitCubics(pts[:1], Vec(1, 0), Vec(1, 0), 1, 1); ok {
		t.Error("fit of a single point succeeded")
	}
}

func BenchmarkSimplify(b *testing.B) {
	p := NewPath(wobblyPolygon(Pt(0, 0), 100, 500)...)
	for range b.N {
		Simplify(p, 0.5)
	}
}
