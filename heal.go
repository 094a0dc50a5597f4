package pathkit

import (
	"math"
)

const (
	// importance weights of the turn angle and of the chord length terms
	turnWeight   = 0.7
	lengthWeight = 0.3
	// chord length beyond which the length term saturates
	lengthCap = 10.0
	// anchors per 100 units of length that healing aims for
	healDensity = 1.5
	// maximum fraction of anchors that healing removes
	healMaxFraction = 0.7
)

// Importance scores how much the anchor cur contributes to the shape of a path,
// given its neighboring anchors. The score is in [0, 1]; sharper turns and
// longer adjacent chords score higher. An anchor with a zero-length chord to
// either neighbor scores 0.
func Importance(prev, cur, next Point) float64 {
	in := cur.Sub(prev)
	out := next.Sub(cur)
	lin, lout := in.Hypot(), out.Hypot()
	if lin == 0 || lout == 0 {
		return 0
	}
	turn := in.AngleBetween(out) / math.Pi
	chord := min((lin+lout)/2, lengthCap) / lengthCap
	return turnWeight*turn + lengthWeight*chord
}

// anchor is an anchor point of a sub-path.
type anchor struct {
	// index of the segment ending in the anchor, or of the MoveTo
	seg int
	pt  Point
}

// subpathAnchors returns the anchors of the sub-path segs[sp.Start:sp.End].
// See anchorPoints.
func subpathAnchors(segs []Segment, sp Span) []anchor {
	sub := segs[sp.Start:sp.End]
	out := make([]anchor, 0, len(sub))
	for i, seg := range sub {
		if seg.Kind == MoveToKind || seg.draws() {
			out = append(out, anchor{sp.Start + i, seg.P})
		}
	}
	if IsClosed(sub) && len(out) > 1 && out[len(out)-1].pt.Near(out[0].pt, CloseEpsilon) {
		out = out[:len(out)-1]
	}
	return out
}

// PointAnalysis describes one anchor point of a path.
type PointAnalysis struct {
	Subpath int
	// Segment is the index of the segment ending in the anchor.
	Segment    int
	Point      Point
	Importance float64
	// Removable reports whether healing may remove the anchor.
	Removable bool
}

// AnalyzePoints scores every anchor of the path. End points of open
// sub-paths can't be removed and have importance 1.
func AnalyzePoints(p Path) []PointAnalysis {
	segs := sanitizeSegments(p.Segments)
	var out []PointAnalysis
	for si, sp := range Subpaths(segs) {
		closed := IsClosed(segs[sp.Start:sp.End])
		anchors := subpathAnchors(segs, sp)
		n := len(anchors)
		for k, a := range anchors {
			pa := PointAnalysis{Subpath: si, Segment: a.seg, Point: a.pt, Importance: 1}
			switch {
			case closed && n >= 3:
				pa.Importance = Importance(anchors[(k+n-1)%n].pt, a.pt, anchors[(k+1)%n].pt)
				pa.Removable = k > 0 && n > 3
			case !closed && k > 0 && k < n-1:
				pa.Importance = Importance(anchors[k-1].pt, a.pt, anchors[k+1].pt)
				pa.Removable = n > 2
			}
			out = append(out, pa)
		}
	}
	return out
}

// HealOnce removes the least important removable anchor of the path and
// bridges its neighbors with a single cubic Bézier. The bridge's handles lie
// at one third of the new chord along the neighbors' existing tangents.
//
// End points of open sub-paths and the start of closed sub-paths are never
// removed, and no sub-path is reduced below 2 (open) or 3 (closed) anchors.
// If no anchor can be removed, HealOnce returns p unchanged.
func HealOnce(p Path) Path {
	q, _ := healOnce(p)
	return q
}

func healOnce(p Path) (Path, bool) {
	segs := sanitizeSegments(p.Segments)
	var (
		best     = math.Inf(1)
		bestSeg  = -1
		bestPrev Point
		bestNext Point
		bestSpan Span
	)
	for _, sp := range Subpaths(segs) {
		closed := IsClosed(segs[sp.Start:sp.End])
		anchors := subpathAnchors(segs, sp)
		n := len(anchors)
		if (closed && n <= 3) || (!closed && n <= 2) {
			continue
		}
		last := n - 2
		if closed {
			last = n - 1
		}
		for k := 1; k <= last; k++ {
			next := anchors[0].pt
			if k+1 < n {
				next = anchors[k+1].pt
			}
			imp := Importance(anchors[k-1].pt, anchors[k].pt, next)
			if imp < best {
				best = imp
				bestSeg = anchors[k].seg
				bestPrev = anchors[k-1].pt
				bestNext = next
				bestSpan = sp
			}
		}
	}
	if bestSeg < 0 {
		return p, false
	}

	in := segs[bestSeg]
	removed := in.P
	// The outgoing segment is either the next drawing segment or, at the end
	// of a closed sub-path, the implicit line drawn by ClosePath.
	out := LineTo(bestNext)
	consumed := 1
	if bestSeg+1 < bestSpan.End && segs[bestSeg+1].draws() {
		out = segs[bestSeg+1]
		consumed = 2
	}

	t0, _ := in.tangents(bestPrev)
	_, t1 := out.tangents(removed)
	t0 = t0.NormalizeOr(removed.Sub(bestPrev).NormalizeOr(Vec2{}))
	t1 = t1.NormalizeOr(bestNext.Sub(removed).NormalizeOr(Vec2{}))
	arm := bestPrev.Distance(bestNext) / 3
	bridge := CubicTo(
		bestPrev.Translate(t0.Mul(arm)),
		bestNext.Translate(t1.Mul(-arm)),
		bestNext,
	)

	healed := make([]Segment, 0, len(segs)-1)
	healed = append(healed, segs[:bestSeg]...)
	healed = append(healed, bridge)
	healed = append(healed, segs[bestSeg+consumed:]...)
	Logger().Debug("healed anchor", "point", removed, "importance", best)
	return p.WithSegments(healed), true
}

// HealMultiple applies [HealOnce] up to count times, stopping early once no
// anchor can be removed.
func HealMultiple(p Path, count int) Path {
	for range count {
		q, ok := healOnce(p)
		if !ok {
			break
		}
		p = q
	}
	return p
}

// OptimalHealCount returns the number of anchors to remove so that the path
// approaches a density of 1.5 anchors per 100 units of length. It never
// exceeds 70% of the path's anchors and is never negative.
func OptimalHealCount(p Path) int {
	anchors := float64(p.Anchors())
	target := healDensity * p.Length() / 100
	n := math.Floor(anchors - target)
	n = min(n, math.Floor(healMaxFraction*anchors))
	return int(max(n, 0))
}
