package pathkit

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// DefaultCoverageResolution is the raster size, in pixels along the longer
// side, that the CLI uses for [Coverage].
const DefaultCoverageResolution = 256

// Coverage compares the filled areas of two paths by rasterizing both over
// their common bounding box, resolution pixels along the longer side, and
// returns the intersection over union of their coverage, in [0, 1]. Open
// sub-paths are closed implicitly, as when filling.
//
// Paths without area are identical by this measure: Coverage returns 1 if
// neither path covers any pixel.
func Coverage(a, b Path, resolution int) float64 {
	a, b = a.Flatten(), b.Flatten()
	if len(a.Segments) == 0 && len(b.Segments) == 0 {
		return 1
	}
	var bbox Rect
	switch {
	case len(a.Segments) == 0:
		bbox = BoundingBox(b.Segments)
	case len(b.Segments) == 0:
		bbox = BoundingBox(a.Segments)
	default:
		bbox = BoundingBox(a.Segments).Union(BoundingBox(b.Segments))
	}
	side := max(bbox.Width(), bbox.Height())
	if side <= 0 || resolution <= 0 {
		return 1
	}
	scale := float64(resolution) / side
	w := int(math.Ceil(bbox.Width()*scale)) + 2
	h := int(math.Ceil(bbox.Height()*scale)) + 2
	// One pixel of margin on every side.
	aff := Translate(Vec(1, 1)).Mul(Scale(scale, scale)).Mul(Translate(Vec(-bbox.X0, -bbox.Y0)))

	ma := rasterize(a.Segments, aff, w, h)
	mb := rasterize(b.Segments, aff, w, h)
	var inter, union float64
	for i := range ma.Pix {
		va, vb := ma.Pix[i], mb.Pix[i]
		inter += float64(min(va, vb))
		union += float64(max(va, vb))
	}
	if union == 0 {
		return 1
	}
	return inter / union
}

// rasterize fills the segments, transformed by aff, into an alpha mask.
func rasterize(segs []Segment, aff Affine, w, h int) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	open := false
	for _, seg := range segs {
		seg = seg.Transform(aff)
		switch seg.Kind {
		case MoveToKind:
			if open {
				r.ClosePath()
			}
			r.MoveTo(float32(seg.P.X), float32(seg.P.Y))
			open = true
		case LineToKind:
			r.LineTo(float32(seg.P.X), float32(seg.P.Y))
		case QuadToKind:
			r.QuadTo(float32(seg.C1.X), float32(seg.C1.Y), float32(seg.P.X), float32(seg.P.Y))
		case CubicToKind:
			r.CubeTo(float32(seg.C1.X), float32(seg.C1.Y), float32(seg.C2.X), float32(seg.C2.Y), float32(seg.P.X), float32(seg.P.Y))
		case ClosePathKind:
			r.ClosePath()
			open = false
		}
	}
	if open {
		r.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
