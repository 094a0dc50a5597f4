package pathkit

import (
	"slices"
)

// Document is an ordered list of paths on a canvas. The order of Paths is the
// z-order.
type Document struct {
	// Width and Height are the raw attribute values, units included. Empty
	// strings denote absent attributes.
	Width  string
	Height string
	// ViewBox is nil when the document has no viewBox.
	ViewBox *Rect
	Paths   []Path
}

// Clone returns a deep copy of the document.
func (doc Document) Clone() Document {
	if doc.ViewBox != nil {
		vb := *doc.ViewBox
		doc.ViewBox = &vb
	}
	paths := make([]Path, len(doc.Paths))
	for i, p := range doc.Paths {
		paths[i] = p.Clone()
	}
	doc.Paths = paths
	return doc
}

// Map returns a copy of the document with f applied to every path.
func (doc Document) Map(f func(Path) Path) Document {
	doc.Paths = slices.Clone(doc.Paths)
	for i, p := range doc.Paths {
		doc.Paths[i] = f(p)
	}
	return doc
}

// PathByID returns the first path with the given ID.
func (doc Document) PathByID(id string) (Path, bool) {
	for _, p := range doc.Paths {
		if p.ID == id {
			return p, true
		}
	}
	return Path{}, false
}

// Anchors returns the total number of anchor points in the document.
func (doc Document) Anchors() int {
	n := 0
	for _, p := range doc.Paths {
		n += p.Anchors()
	}
	return n
}

// Segments returns the total number of segments in the document.
func (doc Document) Segments() int {
	n := 0
	for _, p := range doc.Paths {
		n += len(p.Segments)
	}
	return n
}

// Bounds returns the union of all paths' bounding boxes in user space. It
// returns the zero rectangle for documents without geometry.
func (doc Document) Bounds() Rect {
	var r Rect
	first := true
	for _, p := range doc.Paths {
		if len(p.Segments) == 0 {
			continue
		}
		bb := p.Flatten().BoundingBox()
		if first {
			r = bb
			first = false
		} else {
			r = r.Union(bb)
		}
	}
	return r
}
