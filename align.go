package pathkit

import (
	"fmt"
	"math/rand/v2"
)

type AlignMode int

const (
	// PreserveShape places rigid copies, only translated, rotated and scaled.
	PreserveShape AlignMode = iota
	// DeformToPath bends copies along the target's curvature.
	DeformToPath
)

func (m AlignMode) String() string {
	switch m {
	case PreserveShape:
		return "preserve"
	case DeformToPath:
		return "deform"
	default:
		return fmt.Sprintf("AlignMode(%d)", int(m))
	}
}

// AlignParams controls [AlignToPath]. Angles are in degrees, positions are
// fractions of the target's length.
type AlignParams struct {
	RepeatCount int
	RangeStart  float64
	RangeEnd    float64
	// Jitter displaces each copy by up to this fraction of the spacing
	// between copies, in either direction.
	Jitter float64
	// Rotation is added to the target's tangent angle.
	Rotation float64
	// Offset moves copies along the target's normal.
	Offset float64
	// Scale scales copies about their center. Zero means 1.
	Scale float64
	// Random perturbations are drawn uniformly from [-x, x]. RandomScale is a
	// fraction of Scale.
	RandomRotation float64
	RandomScale    float64
	RandomOffset   float64
	// Seed makes the random perturbations reproducible.
	Seed uint64
	Mode AlignMode
}

// DefaultAlignParams spreads five unrotated copies over the whole target.
var DefaultAlignParams = AlignParams{
	RepeatCount: 5,
	RangeStart:  0,
	RangeEnd:    1,
	Scale:       1,
}

// placement is where and how one copy goes.
type placement struct {
	t      float64
	rotate float64
	scale  float64
	offset float64
}

func (params AlignParams) placements() []placement {
	n := params.RepeatCount
	start := min(max(params.RangeStart, 0), 1)
	end := min(max(params.RangeEnd, 0), 1)
	scale := params.Scale
	if scale == 0 {
		scale = 1
	}
	spacing := end - start
	if n > 1 {
		spacing /= float64(n - 1)
	}
	rng := rand.New(rand.NewPCG(params.Seed, params.Seed^0x9e3779b97f4a7c15))
	sym := func(x float64) float64 { return (rng.Float64()*2 - 1) * x }

	out := make([]placement, n)
	lo, hi := min(start, end), max(start, end)
	for i := range out {
		t := (start + end) / 2
		if n > 1 {
			t = start + spacing*float64(i)
		}
		// Always draw every perturbation so that the sequence of random
		// numbers doesn't depend on which parameters are zero.
		jitter := sym(params.Jitter * spacing)
		rot := sym(params.RandomRotation)
		sc := sym(params.RandomScale)
		off := sym(params.RandomOffset)
		out[i] = placement{
			t:      min(max(t+jitter, lo), hi),
			rotate: radians(params.Rotation + rot),
			scale:  scale * (1 + sc),
			offset: params.Offset + off,
		}
	}
	return out
}

// AlignToPath repeats source along target. Copies are placed evenly (or
// jittered) by arc length within [RangeStart, RangeEnd] of the target, centered
// on the source's bounding box center and oriented along the target's
// tangent. Both paths are used in user space; the copies have the identity
// transform and the source's style.
//
// AlignToPath returns nil if RepeatCount isn't positive, or if either path
// has no length.
func AlignToPath(source, target Path, params AlignParams) []Path {
	if params.RepeatCount <= 0 {
		return nil
	}
	src := source.Flatten()
	src.Segments = sanitizeSegments(src.Segments)
	al := newArcLength(sanitizeSegments(target.Flatten().Segments))
	if al.total == 0 || len(src.Segments) == 0 {
		return nil
	}
	center := BoundingBox(src.Segments).Center()

	places := params.placements()
	out := make([]Path, 0, len(places))
	for i, pl := range places {
		var segs []Segment
		switch params.Mode {
		case DeformToPath:
			segs = deformAlong(src.Segments, center, al, pl)
		default:
			pt, tan := al.at(pl.t)
			origin := pt.Translate(tan.Perp().Mul(pl.offset))
			aff := Translate(Vec2(origin)).
				Mul(Rotate(tan.Angle() + pl.rotate)).
				Mul(Scale(pl.scale, pl.scale)).
				Mul(Translate(Vec2(center).Negate()))
			segs = make([]Segment, len(src.Segments))
			for j, seg := range src.Segments {
				segs[j] = seg.Transform(aff)
			}
		}
		cp := src.WithSegments(segs)
		cp.Transform = Identity
		if source.ID != "" {
			cp.ID = fmt.Sprintf("%s-%d", source.ID, i+1)
		}
		out = append(out, cp)
	}
	Logger().Debug("aligned path", "source", source.ID, "target", target.ID, "copies", len(out), "mode", params.Mode)
	return out
}

// deformSubdivisions is the number of pieces each source segment is split into
// before bending, so that the bent copy follows the target's curvature. Each
// segment is halved twice.
const deformSubdivisions = 4

// deformAlong bends the source segments along the target. A point's local x
// coordinate, relative to center, becomes a distance along the target, its y
// coordinate a distance along the normal.
func deformAlong(segs []Segment, center Point, al *arcLength, pl placement) []Segment {
	local := Scale(pl.scale, pl.scale).Mul(Rotate(pl.rotate)).Mul(Translate(Vec2(center).Negate()))
	base := pl.t * al.total
	mapPt := func(pt Point) Point {
		q := pt.Transform(local)
		d := base + q.X
		n := q.Y + pl.offset
		var at Point
		var tan Vec2
		switch {
		case d < 0:
			at, tan = al.at(0)
			at = at.Translate(tan.Mul(d))
		case d > al.total:
			at, tan = al.at(1)
			at = at.Translate(tan.Mul(d - al.total))
		default:
			at, tan = al.at(d / al.total)
		}
		return at.Translate(tan.Perp().Mul(n))
	}

	out := make([]Segment, 0, len(segs)*deformSubdivisions)
	var cur, start, mstart Point
	for _, seg := range segs {
		switch seg.Kind {
		case MoveToKind:
			start = seg.P
			mstart = mapPt(seg.P)
			out = append(out, MoveTo(mstart))
		case ClosePathKind:
			if cur != start {
				out = appendDeformed(out, Line{cur, start}.Cubic(), mapPt)
			}
			out = append(out, ClosePath(mstart))
			seg.P = start
		default:
			out = appendDeformed(out, seg.Cubic(cur), mapPt)
		}
		cur = seg.P
	}
	return out
}

func appendDeformed(out []Segment, c CubicBez, mapPt func(Point) Point) []Segment {
	l, r := c.Subdivide()
	for _, half := range [2]CubicBez{l, r} {
		a, b := half.Subdivide()
		for _, sub := range [2]CubicBez{a, b} {
			out = append(out, CubicTo(mapPt(sub.P1), mapPt(sub.P2), mapPt(sub.P3)))
		}
	}
	return out
}
