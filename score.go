package pathkit

import (
	"math"
)

// SubpathHealth describes the complexity of one sub-path.
type SubpathHealth struct {
	Span    Span
	Anchors int
	Closed  bool
	Length  float64
	// Density is the scale-normalized number of anchors per 100 units of
	// length.
	Density float64
	// Collinear is the fraction of interior anchors that barely change
	// direction.
	Collinear float64
	Score     float64
}

// PathHealth describes the complexity of a path.
type PathHealth struct {
	ID       string
	Subpaths []SubpathHealth
	// Score is the mean of the sub-path scores, or 100 for empty paths.
	Score float64
}

// DocumentHealth describes the complexity of a document.
type DocumentHealth struct {
	Paths []PathHealth
	// Score is the mean of all sub-path scores, or 100 for empty documents.
	Score   float64
	Anchors int
	// Bytes is the length of the serialized document.
	Bytes int
	// Savings is the estimated fraction of Bytes that cleanup and healing
	// would save, and SavingsBytes the corresponding number of bytes.
	Savings      float64
	SavingsBytes int
}

// ScoreSubpath scores a single sub-path with [DefaultPolicy]. See
// [Policy.ScoreSubpath].
func ScoreSubpath(segs []Segment) float64 {
	return DefaultPolicy().ScoreSubpath(segs)
}

// ScoreSubpath rates how close a sub-path is to the minimal number of
// anchors needed for its shape, from 0 (very wasteful) to 100. Tiny shapes
// always score 100.
func (pol Policy) ScoreSubpath(segs []Segment) float64 {
	return pol.subpathHealth(segs).Score
}

func (pol Policy) subpathHealth(segs []Segment) SubpathHealth {
	segs = sanitizeSegments(segs)
	anchors := anchorPoints(segs)
	closed := IsClosed(segs)
	n := len(anchors)
	h := SubpathHealth{
		Span:    Span{0, len(segs)},
		Anchors: n,
		Closed:  closed,
		Length:  Length(segs),
		Score:   100,
	}

	// Interior anchors and whether they barely turn.
	interior, collinear := 0, 0
	limit := radians(pol.CollinearDegrees)
	for k := range anchors {
		var prev, next Point
		switch {
		case closed && n >= 3:
			prev, next = anchors[(k+n-1)%n], anchors[(k+1)%n]
		case !closed && k > 0 && k < n-1:
			prev, next = anchors[k-1], anchors[k+1]
		default:
			continue
		}
		interior++
		if turnAngle(prev, anchors[k], next) < limit {
			collinear++
		}
	}
	if interior > 0 {
		h.Collinear = float64(collinear) / float64(interior)
	}

	if (closed && n <= pol.TinyClosedAnchors) || n <= pol.TinyAnchors {
		return h
	}

	densityTerm := 1.0
	if h.Length > 0 {
		scale := math.Sqrt(BoundingBox(segs).Diagonal() / pol.ReferenceDiagonal)
		h.Density = float64(n) / (h.Length / 100) * scale
		densityTerm = (h.Density - pol.DensityLow) / (pol.DensityHigh - pol.DensityLow)
		densityTerm = min(max(densityTerm, 0), 1)
	} else {
		h.Density = math.Inf(1)
	}
	penalty := pol.DensityWeight*densityTerm + pol.CollinearWeight*h.Collinear
	h.Score = min(max(100*(1-penalty), 0), 100)
	return h
}

// ScorePath scores every sub-path of p, in user space.
func (pol Policy) ScorePath(p Path) PathHealth {
	segs := p.Flatten().Segments
	ph := PathHealth{ID: p.ID, Score: 100}
	sum := 0.0
	for _, sp := range Subpaths(segs) {
		h := pol.subpathHealth(segs[sp.Start:sp.End])
		h.Span = sp
		ph.Subpaths = append(ph.Subpaths, h)
		sum += h.Score
	}
	if len(ph.Subpaths) > 0 {
		ph.Score = sum / float64(len(ph.Subpaths))
	}
	return ph
}

// ScorePath scores a path with [DefaultPolicy].
func ScorePath(p Path) PathHealth {
	return DefaultPolicy().ScorePath(p)
}

// AnalyzeDocument scores a document with [DefaultPolicy]. See
// [Policy.AnalyzeDocument].
func AnalyzeDocument(doc Document) DocumentHealth {
	return DefaultPolicy().AnalyzeDocument(doc)
}

// AnalyzeDocument scores every path of the document and estimates how much
// smaller its serialization could become.
func (pol Policy) AnalyzeDocument(doc Document) DocumentHealth {
	dh := DocumentHealth{
		Score: 100,
		Bytes: len(Serialize(doc)),
	}
	var sum, collinear float64
	var n int
	for _, p := range doc.Paths {
		ph := pol.ScorePath(p)
		dh.Paths = append(dh.Paths, ph)
		for _, h := range ph.Subpaths {
			sum += h.Score
			collinear += h.Collinear
			dh.Anchors += h.Anchors
			n++
		}
	}
	if n > 0 {
		dh.Score = sum / float64(n)
		collinear /= float64(n)
	}
	dh.Savings = min(pol.CleanupSavings+pol.HealSavings*collinear, pol.MaxSavings)
	dh.SavingsBytes = int(math.Round(dh.Savings * float64(dh.Bytes)))
	return dh
}
