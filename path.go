package pathkit

import (
	"slices"
)

// CloseEpsilon is the distance under which a sub-path's final point is
// considered to coincide with its start.
const CloseEpsilon = 1e-3

// Span is a half-open range [Start, End) of indices into a path's segments,
// describing one sub-path. The first segment of a span is its MoveTo and a
// closed sub-path's last segment is its ClosePath.
type Span struct {
	Start int
	End   int
}

func (sp Span) Len() int { return sp.End - sp.Start }

// Subpaths splits segs into sub-paths. Every MoveTo starts a new sub-path. Segments
// preceding the first MoveTo form a sub-path of their own.
func Subpaths(segs []Segment) []Span {
	var out []Span
	start := 0
	for i, seg := range segs {
		if seg.Kind == MoveToKind && i > start {
			out = append(out, Span{start, i})
			start = i
		}
	}
	if start < len(segs) {
		out = append(out, Span{start, len(segs)})
	}
	return out
}

// IsClosed reports whether the sub-path ends in a ClosePath.
func IsClosed(sub []Segment) bool {
	return len(sub) > 0 && sub[len(sub)-1].Kind == ClosePathKind
}

// Anchors returns the number of anchor points in segs. The final anchor of a
// closed sub-path isn't counted when it coincides with the sub-path's start.
func Anchors(segs []Segment) int {
	n := 0
	for _, sp := range Subpaths(segs) {
		n += len(anchorPoints(segs[sp.Start:sp.End]))
	}
	return n
}

// anchorPoints returns the anchor points of a single sub-path, in order. The
// first entry is the MoveTo's point.
func anchorPoints(sub []Segment) []Point {
	pts := make([]Point, 0, len(sub))
	for _, seg := range sub {
		if seg.Kind == MoveToKind || seg.draws() {
			pts = append(pts, seg.P)
		}
	}
	if IsClosed(sub) && len(pts) > 1 && pts[len(pts)-1].Near(pts[0], CloseEpsilon) {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// Style holds a path's presentation attributes. Empty strings denote absent
// attributes. Values are kept verbatim so that units and keywords survive a
// round trip.
type Style struct {
	Fill           string
	FillRule       string
	FillOpacity    string
	Stroke         string
	StrokeWidth    string
	StrokeOpacity  string
	StrokeLinecap  string
	StrokeLinejoin string
	Opacity        string
	Visibility     string
	Display        string
}

// styleAttrs lists the presentation attributes in serialization order.
var styleAttrs = []string{
	"fill",
	"fill-rule",
	"fill-opacity",
	"stroke",
	"stroke-width",
	"stroke-opacity",
	"stroke-linecap",
	"stroke-linejoin",
	"opacity",
	"visibility",
	"display",
}

func (s *Style) field(name string) *string {
	switch name {
	case "fill":
		return &s.Fill
	case "fill-rule":
		return &s.FillRule
	case "fill-opacity":
		return &s.FillOpacity
	case "stroke":
		return &s.Stroke
	case "stroke-width":
		return &s.StrokeWidth
	case "stroke-opacity":
		return &s.StrokeOpacity
	case "stroke-linecap":
		return &s.StrokeLinecap
	case "stroke-linejoin":
		return &s.StrokeLinejoin
	case "opacity":
		return &s.Opacity
	case "visibility":
		return &s.Visibility
	case "display":
		return &s.Display
	default:
		return nil
	}
}

// Get returns the value of the named presentation attribute.
func (s Style) Get(name string) string {
	if f := s.field(name); f != nil {
		return *f
	}
	return ""
}

// Set sets the named presentation attribute. It reports false for unknown
// attributes.
func (s *Style) Set(name, value string) bool {
	f := s.field(name)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// inherit fills attributes absent from s with the values of parent. Opacity
// doesn't inherit in SVG; it is multiplied down the tree by renderers, which we
// don't model, so it is left alone.
func (s Style) inherit(parent Style) Style {
	for _, name := range styleAttrs {
		if name == "opacity" {
			continue
		}
		if s.Get(name) == "" {
			s.Set(name, parent.Get(name))
		}
	}
	return s
}

// Path is an ordered sequence of segments, possibly made of several
// sub-paths, together with its presentation.
type Path struct {
	ID       string
	Segments []Segment
	Style    Style
	// Transform maps the segments into the document's user space. The zero
	// value is treated as the identity.
	Transform Affine
}

// NewPath returns a path with the given segments and the identity transform.
func NewPath(segs ...Segment) Path {
	return Path{Segments: segs, Transform: Identity}
}

// Affine returns the path's transform, substituting the identity for the
// zero value.
func (p Path) Affine() Affine {
	if p.Transform == (Affine{}) {
		return Identity
	}
	return p.Transform
}

// Clone returns a copy of the path that shares no memory with p.
func (p Path) Clone() Path {
	p.Segments = slices.Clone(p.Segments)
	return p
}

// WithSegments returns a copy of p with its segments replaced.
func (p Path) WithSegments(segs []Segment) Path {
	p.Segments = segs
	return p
}

// Flatten returns p with its transform applied to the segments and reset to
// the identity.
func (p Path) Flatten() Path {
	aff := p.Affine()
	segs := make([]Segment, len(p.Segments))
	for i, seg := range p.Segments {
		segs[i] = seg.Transform(aff)
	}
	p.Segments = segs
	p.Transform = Identity
	return p
}

func (p Path) Subpaths() []Span { return Subpaths(p.Segments) }

func (p Path) Anchors() int { return Anchors(p.Segments) }

func (p Path) Length() float64 { return Length(p.Segments) }

func (p Path) BoundingBox() Rect { return BoundingBox(p.Segments) }
