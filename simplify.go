package pathkit

import (
	"math"
)

type SimplifyOptions struct {
	// AngleThresh is the ratio |cross| / |dot| of adjoining tangents above
	// which a join between two curves is a corner. Curve runs are only refit
	// between corners.
	AngleThresh float64
	// SeamAngle is the largest turn, in radians, at the start of a closed
	// sub-path that the seam pass smooths out. Sharper joins are deliberate
	// corners.
	SeamAngle float64
	// SamplesPerSegment is the number of points each curve of a run
	// contributes to a refit.
	SamplesPerSegment int
	// MaxPasses bounds how often the stages are repeated while they keep
	// reducing the number of segments.
	MaxPasses int
}

var DefaultSimplifyOptions = SimplifyOptions{
	AngleThresh:       0.1,
	SeamAngle:         math.Pi / 4,
	SamplesPerSegment: 8,
	MaxPasses:         8,
}

// Simplify reduces the number of segments of p while staying within
// tolerancePercent percent of each sub-path's bounding box diagonal. It uses
// [DefaultSimplifyOptions].
func Simplify(p Path, tolerancePercent float64) Path {
	return SimplifyWith(p, tolerancePercent, DefaultSimplifyOptions)
}

// SimplifyWith is like [Simplify] but with explicit options.
//
// Sub-paths are simplified independently in three stages: curves that are
// within tolerance of their chord become lines, runs of lines are reduced by
// recursive worst-deviation splitting, and runs of smoothly joined curves are
// refit with fewer cubic Béziers. The stages repeat for up to
// opts.MaxPasses passes while they keep removing segments, and each pass
// derives the tolerance from the sub-path's bounding box as it is at the
// start of that pass.
//
// Every emitted closed sub-path ends exactly at its start: a final point
// within [CloseEpsilon] of the start is snapped onto it, otherwise an explicit
// closing line is added. Empty sub-paths are dropped. Simplifying the result
// again doesn't reduce it any further.
func SimplifyWith(p Path, tolerancePercent float64, opts SimplifyOptions) Path {
	if len(p.Segments) == 0 {
		return p
	}
	cur := normalizeSegments(sanitizeSegments(p.Segments), opts)
	for range max(opts.MaxPasses, 1) {
		next := simplifyPass(cur, tolerancePercent, opts)
		if len(next) >= len(cur) {
			break
		}
		cur = next
	}
	Logger().Debug("simplified path",
		"id", p.ID,
		"before", len(p.Segments),
		"after", len(cur),
		"tolerance", tolerancePercent)
	return p.WithSegments(cur)
}

// subpath is a normalized sub-path: a start point, drawing segments without
// zero-length ones, and whether it is closed. The last segment of a closed
// sub-path ends exactly at start.
type subpath struct {
	start  Point
	segs   []Segment
	closed bool
}

func (sub subpath) append(dst []Segment) []Segment {
	if len(sub.segs) == 0 {
		return dst
	}
	dst = append(dst, MoveTo(sub.start))
	dst = append(dst, sub.segs...)
	if sub.closed {
		dst = append(dst, ClosePath(sub.start))
	}
	return dst
}

// splitSubpaths normalizes every sub-path of segs.
func splitSubpaths(segs []Segment) []subpath {
	var out []subpath
	var cur Point
	for _, sp := range Subpaths(segs) {
		raw := segs[sp.Start:sp.End]
		sub := subpath{start: cur}
		if raw[0].Kind == MoveToKind {
			sub.start = raw[0].P
			raw = raw[1:]
		}
		cur = sub.start
		for i, seg := range raw {
			switch {
			case seg.Kind == ClosePathKind && i == len(raw)-1:
				sub.closed = true
			case seg.Kind == ClosePathKind:
				// A ClosePath in the middle of a sub-path draws a line back
				// to the start.
				seg = LineTo(sub.start)
				fallthrough
			default:
				if isDegenerate(cur, seg) {
					continue
				}
				sub.segs = append(sub.segs, seg)
				cur = seg.P
			}
		}
		if sub.closed && len(sub.segs) > 0 {
			last := &sub.segs[len(sub.segs)-1]
			if last.P.Near(sub.start, CloseEpsilon) {
				last.P = sub.start
				if isDegenerate(sub.lastStart(), *last) {
					sub.segs = sub.segs[:len(sub.segs)-1]
				}
			} else {
				sub.segs = append(sub.segs, LineTo(sub.start))
			}
		}
		cur = sub.start
		if len(sub.segs) > 0 {
			cur = sub.segs[len(sub.segs)-1].P
		}
		out = append(out, sub)
	}
	return out
}

// lastStart returns the start point of the last segment.
func (sub subpath) lastStart() Point {
	if len(sub.segs) < 2 {
		return sub.start
	}
	return sub.segs[len(sub.segs)-2].P
}

// isDegenerate reports whether a drawing segment starting at start has all of
// its points at start.
func isDegenerate(start Point, seg Segment) bool {
	switch seg.Kind {
	case LineToKind:
		return seg.P == start
	case QuadToKind:
		return seg.P == start && seg.C1 == start
	case CubicToKind:
		return seg.P == start && seg.C1 == start && seg.C2 == start
	default:
		return true
	}
}

// normalizeSegments drops empty sub-paths and zero-length segments, closes
// closed sub-paths exactly and runs the seam pass.
func normalizeSegments(segs []Segment, opts SimplifyOptions) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, sub := range splitSubpaths(segs) {
		if sub.closed {
			smoothSeam(&sub, opts.SeamAngle)
		}
		out = sub.append(out)
	}
	return out
}

func simplifyPass(segs []Segment, tolerancePercent float64, opts SimplifyOptions) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, sub := range splitSubpaths(segs) {
		if len(sub.segs) == 0 {
			continue
		}
		all := sub.append(nil)
		tol := tolerancePercent / 100 * BoundingBox(all).Diagonal()
		sub.segs = straighten(sub.start, sub.segs, tol)
		sub.segs = reduceRuns(sub.start, sub.segs, tol, opts)
		if sub.closed {
			smoothSeam(&sub, opts.SeamAngle)
		}
		out = sub.append(out)
	}
	return out
}

// straighten replaces curves whose control points all lie within tol of their
// chord with lines.
func straighten(start Point, segs []Segment, tol float64) []Segment {
	out := make([]Segment, len(segs))
	cur := start
	for i, seg := range segs {
		switch seg.Kind {
		case QuadToKind:
			if segmentDistance(seg.C1, cur, seg.P) <= tol {
				seg = LineTo(seg.P)
			}
		case CubicToKind:
			if (CubicBez{cur, seg.C1, seg.C2, seg.P}).maxChordDeviation() <= tol {
				seg = LineTo(seg.P)
			}
		}
		out[i] = seg
		cur = seg.P
	}
	return out
}

// reduceRuns splits segs into maximal runs of lines and of smoothly joined
// curves, and reduces each run.
func reduceRuns(start Point, segs []Segment, tol float64, opts SimplifyOptions) []Segment {
	out := make([]Segment, 0, len(segs))
	runStart := start
	i := 0
	for i < len(segs) {
		j := i + 1
		if segs[i].Kind == LineToKind {
			for j < len(segs) && segs[j].Kind == LineToKind {
				j++
			}
			out = append(out, reduceLines(runStart, segs[i:j], tol)...)
		} else {
			prevStart := runStart
			for j < len(segs) && segs[j].IsCurve() {
				_, tanIn := segs[j-1].tangents(prevStart)
				tanOut, _ := segs[j].tangents(segs[j-1].P)
				if isCorner(tanIn, tanOut, opts.AngleThresh) {
					break
				}
				prevStart = segs[j-1].P
				j++
			}
			out = append(out, refitCurves(runStart, segs[i:j], tol, opts)...)
		}
		runStart = segs[j-1].P
		i = j
	}
	return out
}

// isCorner reports whether the join between tangents a and b isn't smooth.
func isCorner(a, b Vec2, thresh float64) bool {
	dot := a.Dot(b)
	if dot <= 0 {
		return true
	}
	return math.Abs(a.Cross(b)) > dot*thresh
}

// reduceLines reduces a polyline starting at start with the Ramer-Douglas-Peucker
// algorithm: the vertex furthest from the chord spanning a run is kept if it is
// further than tol, and both halves are reduced recursively; otherwise the run
// collapses to its chord.
func reduceLines(start Point, lines []Segment, tol float64) []Segment {
	pts := make([]Point, len(lines)+1)
	pts[0] = start
	for i, l := range lines {
		pts[i+1] = l.P
	}
	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true

	type span struct{ lo, hi int }
	stack := []span{{0, len(pts) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		worst, idx := -1.0, -1
		for k := s.lo + 1; k < s.hi; k++ {
			if d := segmentDistance(pts[k], pts[s.lo], pts[s.hi]); d > worst {
				worst, idx = d, k
			}
		}
		if idx < 0 || worst <= tol {
			continue
		}
		keep[idx] = true
		stack = append(stack, span{s.lo, idx}, span{idx, s.hi})
	}

	out := make([]Segment, 0, len(lines))
	for k := 1; k < len(pts); k++ {
		if keep[k] {
			out = append(out, LineTo(pts[k]))
		}
	}
	return out
}

// refitCurves replaces a run of smoothly joined curves starting at start with
// fewer cubic Béziers, if they can be fit within tol. Otherwise the run is
// returned unchanged.
func refitCurves(start Point, curves []Segment, tol float64, opts SimplifyOptions) []Segment {
	if len(curves) < 2 {
		return curves
	}
	n := max(opts.SamplesPerSegment, 2)
	pts := make([]Point, 0, len(curves)*n+1)
	pts = append(pts, start)
	cur := start
	for _, seg := range curves {
		c := seg.Curve(cur)
		for k := 1; k < n; k++ {
			pts = append(pts, c.Eval(float64(k)/float64(n)))
		}
		pts = append(pts, seg.P)
		cur = seg.P
	}
	tan0, _ := curves[0].tangents(start)
	prev := start
	if len(curves) > 1 {
		prev = curves[len(curves)-2].P
	}
	_, tan1 := curves[len(curves)-1].tangents(prev)

	fitted, ok := FitCubics(pts, tan0, tan1, tol, len(curves)-1)
	if !ok {
		return curves
	}
	out := make([]Segment, len(fitted))
	for i, c := range fitted {
		out[i] = CubicTo(c.P1, c.P2, c.P3)
	}
	// Keep the run's end point bit-exact.
	out[len(out)-1].P = cur
	return out
}

// smoothSeam makes the directions on either side of a closed sub-path's start
// collinear when the join turns by less than maxAngle. Between two cubics
// both handles turn onto their bisector; next to a line only the cubic's
// handle turns, onto the line's direction. Seams between lines and quads are
// left alone.
func smoothSeam(sub *subpath, maxAngle float64) {
	if len(sub.segs) < 2 {
		return
	}
	first := &sub.segs[0]
	last := &sub.segs[len(sub.segs)-1]
	var in, out Vec2
	switch last.Kind {
	case CubicToKind:
		in = sub.start.Sub(last.C2)
	case LineToKind:
		in = sub.start.Sub(sub.lastStart())
	default:
		return
	}
	switch first.Kind {
	case CubicToKind:
		out = first.C1.Sub(sub.start)
	case LineToKind:
		out = first.P.Sub(sub.start)
	default:
		return
	}
	if first.Kind == LineToKind && last.Kind == LineToKind {
		return
	}
	s := sub.start
	lin, lout := in.Hypot(), out.Hypot()
	if lin == 0 || lout == 0 {
		return
	}
	if math.Abs(in.Cross(out)) <= 1e-9*lin*lout && in.Dot(out) > 0 {
		return
	}
	if in.AngleBetween(out) >= maxAngle {
		return
	}
	var dir Vec2
	switch {
	case last.Kind == LineToKind:
		dir = in.Mul(1 / lin)
	case first.Kind == LineToKind:
		dir = out.Mul(1 / lout)
	default:
		dir = in.Mul(1 / lin).Add(out.Mul(1 / lout)).NormalizeOr(Vec2{})
	}
	if dir == (Vec2{}) {
		return
	}
	if last.Kind == CubicToKind {
		last.C2 = s.Translate(dir.Mul(-lin))
	}
	if first.Kind == CubicToKind {
		first.C1 = s.Translate(dir.Mul(lout))
	}
}
