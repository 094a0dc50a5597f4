package pathkit

import (
	"fmt"
	"math"
	"testing"
)

func leaf(w, h float64) Path {
	p := NewPath(Rectangle(Rect{0, 0, w, h}, 0, 0)...)
	p.ID = "leaf"
	return p
}

func TestAlignToPath(t *testing.T) {
	target := NewPath(mustParsePath(t, "M0 0 L100 0")...)
	copies := AlignToPath(leaf(10, 10), target, DefaultAlignParams)
	if len(copies) != 5 {
		t.Fatalf("got %d copies, want 5", len(copies))
	}
	for i, cp := range copies {
		diff(t, fmt.Sprintf("leaf-%d", i+1), cp.ID)
		assertNear(t, cp.BoundingBox().Center(), Pt(25*float64(i), 0), 1e-9)
		diff(t, 10.0, cp.BoundingBox().Width(), approx(1e-9))
	}

	params := DefaultAlignParams
	params.RepeatCount = 1
	copies = AlignToPath(leaf(10, 10), target, params)
	diff(t, 1, len(copies))
	assertNear(t, copies[0].BoundingBox().Center(), Pt(50, 0), 1e-9)

	params.RangeStart, params.RangeEnd = 0.2, 0.4
	copies = AlignToPath(leaf(10, 10), target, params)
	assertNear(t, copies[0].BoundingBox().Center(), Pt(30, 0), 1e-9)
}

func TestAlignToPathClosed(t *testing.T) {
	// Copies continue along the closing edge of a closed outline.
	target := NewPath(Rectangle(Rect{0, 0, 100, 100}, 0, 0)...)
	params := DefaultAlignParams
	params.RepeatCount = 8
	copies := AlignToPath(leaf(4, 4), target, params)
	if len(copies) != 8 {
		t.Fatalf("got %d copies, want 8", len(copies))
	}
	step := 400.0 / 7
	want := []Point{
		Pt(0, 0),
		Pt(step, 0),
		Pt(100, 2*step-100),
		Pt(100, 3*step-100),
		Pt(300-4*step, 100),
		Pt(300-5*step, 100),
		Pt(0, 400-6*step),
		Pt(0, 0),
	}
	for i, cp := range copies {
		assertNear(t, cp.BoundingBox().Center(), want[i], 1e-9)
	}
}

func TestAlignToPathOrientation(t *testing.T) {
	horizontal := NewPath(mustParsePath(t, "M0 0 L100 0")...)
	vertical := NewPath(mustParsePath(t, "M0 0 L0 100")...)

	params := DefaultAlignParams
	params.RepeatCount = 3
	params.Offset = 3
	copies := AlignToPath(leaf(20, 10), horizontal, params)
	for i, cp := range copies {
		// The normal points towards positive y.
		assertNear(t, cp.BoundingBox().Center(), Pt(50*float64(i), 3), 1e-9)
	}

	params.Offset = 0
	copies = AlignToPath(leaf(20, 10), vertical, params)
	for i, cp := range copies {
		bb := cp.BoundingBox()
		assertNear(t, bb.Center(), Pt(0, 50*float64(i)), 1e-9)
		diff(t, 10.0, bb.Width(), approx(1e-9))
		diff(t, 20.0, bb.Height(), approx(1e-9))
	}

	params.Rotation = 90
	copies = AlignToPath(leaf(20, 10), horizontal, params)
	for _, cp := range copies {
		bb := cp.BoundingBox()
		diff(t, 10.0, bb.Width(), approx(1e-9))
		diff(t, 20.0, bb.Height(), approx(1e-9))
	}

	params.Rotation = 0
	params.Scale = 2
	copies = AlignToPath(leaf(20, 10), horizontal, params)
	for i, cp := range copies {
		bb := cp.BoundingBox()
		diff(t, 40.0, bb.Width(), approx(1e-9))
		diff(t, 20.0, bb.Height(), approx(1e-9))
		assertNear(t, bb.Center(), Pt(50*float64(i), 0), 1e-9)
	}
}

func TestAlignToPathRandom(t *testing.T) {
	target := NewPath(Circle(Pt(0, 0), 50)...)
	params := DefaultAlignParams
	params.RepeatCount = 8
	params.Jitter = 0.5
	params.RandomRotation = 30
	params.RandomScale = 0.2
	params.RandomOffset = 4
	params.Seed = 42

	a := AlignToPath(leaf(4, 4), target, params)
	b := AlignToPath(leaf(4, 4), target, params)
	diff(t, a, b)

	params.Seed = 43
	c := AlignToPath(leaf(4, 4), target, params)
	same := true
	for i := range a {
		if a[i].BoundingBox() != c[i].BoundingBox() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical copies")
	}
}

func TestAlignToPathDegenerate(t *testing.T) {
	target := NewPath(mustParsePath(t, "M0 0 L100 0")...)
	params := DefaultAlignParams
	params.RepeatCount = 0
	if got := AlignToPath(leaf(10, 10), target, params); got != nil {
		t.Errorf("got %d copies for a repeat count of 0", len(got))
	}
	if got := AlignToPath(leaf(10, 10), NewPath(mustParsePath(t, "M5 5 L5 5")...), DefaultAlignParams); got != nil {
		t.Errorf("got %d copies along a target without length", len(got))
	}
	if got := AlignToPath(Path{ID: "empty"}, target, DefaultAlignParams); got != nil {
		t.Errorf("got %d copies of an empty source", len(got))
	}
}

func TestAlignToPathStyle(t *testing.T) {
	target := NewPath(mustParsePath(t, "M0 0 L100 0")...)
	src := leaf(10, 10)
	src.Style = Style{Fill: "green", Stroke: "black"}
	src.Transform = Translate(Vec(500, 500))
	for _, cp := range AlignToPath(src, target, DefaultAlignParams) {
		diff(t, src.Style, cp.Style)
		diff(t, Identity, cp.Transform)
	}
	for i, cp := range AlignToPath(src, target, DefaultAlignParams) {
		// The source's own transform doesn't move the copies.
		assertNear(t, cp.BoundingBox().Center(), Pt(25*float64(i), 0), 1e-9)
	}

	src.ID = ""
	for _, cp := range AlignToPath(src, target, DefaultAlignParams) {
		diff(t, "", cp.ID)
	}
}

func TestAlignToPathDeform(t *testing.T) {
	target := NewPath(Circle(Pt(0, 0), 50)...)
	src := NewPath(mustParsePath(t, "M0 0 L20 0")...)
	src.ID = "stem"
	params := DefaultAlignParams
	params.RepeatCount = 3
	params.RangeStart, params.RangeEnd = 0.25, 0.75
	params.Mode = DeformToPath
	copies := AlignToPath(src, target, params)
	if len(copies) != 3 {
		t.Fatalf("got %d copies, want 3", len(copies))
	}
	for _, cp := range copies {
		diff(t, []SegmentKind{MoveToKind, CubicToKind, CubicToKind, CubicToKind, CubicToKind}, kinds(cp.Segments))
		// Bent copies follow the circle.
		for _, seg := range cp.Segments {
			if r := seg.P.Sub(Pt(0, 0)).Hypot(); math.Abs(r-50) > 0.05 {
				t.Errorf("anchor %s is %g away from the center, want 50", seg.P, r)
			}
		}
		diff(t, 20.0, cp.Length(), approx(0.1))
	}

	// Closed sources stay closed.
	params.RepeatCount = 1
	copies = AlignToPath(leaf(10, 10), target, params)
	diff(t, 1, len(copies))
	diff(t, true, IsClosed(copies[0].Segments))
	diff(t, copies[0].Segments[0].P, copies[0].Segments[len(copies[0].Segments)-1].P)
}

func TestAlignModeString(t *testing.T) {
	diff(t, "preserve", PreserveShape.String())
	diff(t, "deform", DeformToPath.String())
	diff(t, "AlignMode(7)", AlignMode(7).String())
}
