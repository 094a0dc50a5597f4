package pathkit

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
)

// SerializePrecision is the number of digits after the decimal point that
// [Serialize] emits for coordinates.
const SerializePrecision = 2

// containers whose children are never rendered directly.
var nonRendering = map[string]bool{
	"defs":           true,
	"symbol":         true,
	"clipPath":       true,
	"mask":           true,
	"pattern":        true,
	"marker":         true,
	"linearGradient": true,
	"radialGradient": true,
	"metadata":       true,
}

type attrs map[string]string

func newAttrs(as []xml.Attr) attrs {
	m := make(attrs, len(as))
	for _, a := range as {
		// Namespaced attributes such as inkscape:label are ignored.
		if a.Name.Space != "" {
			continue
		}
		m[a.Name.Local] = a.Value
	}
	return m
}

// length parses an SVG length. Only unitless and pixel values are
// supported.
func (as attrs) length(name string) (float64, bool) {
	s, ok := as[name]
	if !ok {
		return 0, false
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		Logger().Warn("ignoring unsupported length", "attr", name, "value", as[name])
		return 0, false
	}
	return f, true
}

// style returns the element's own presentation attributes, with declarations
// in the style attribute taking precedence over presentation attributes.
func (as attrs) style() Style {
	var s Style
	for _, name := range styleAttrs {
		if v, ok := as[name]; ok {
			s.Set(name, strings.TrimSpace(v))
		}
	}
	for _, decl := range strings.Split(as["style"], ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		s.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return s
}

type element struct {
	aff    Affine
	style  Style
	hidden bool
}

// Parse parses an SVG document. Every shape element (path, rect, line,
// polygon, polyline, circle, ellipse) becomes one [Path], in document order.
// Group transforms are composed with the shape's own transform and
// presentation attributes are inherited from ancestors.
//
// Parse fails with a *ParseError if the text is not well-formed XML or has no
// svg root element. Problems inside the document, such as malformed path data
// or transforms, are logged and recovered from.
func Parse(text string) (Document, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	var (
		doc     Document
		stack   []element
		sawRoot bool
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var syn *xml.SyntaxError
			msg := err.Error()
			if errors.As(err, &syn) {
				msg = syn.Msg
			}
			return Document{}, &ParseError{Offset: int(dec.InputOffset()), Msg: msg}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			as := newAttrs(t.Attr)
			name := t.Name.Local
			if !sawRoot {
				if name != "svg" {
					return Document{}, &ParseError{Offset: int(dec.InputOffset()), Msg: "root element is <" + name + ">, not <svg>"}
				}
				sawRoot = true
				doc.Width = as["width"]
				doc.Height = as["height"]
				if vb, ok := as["viewBox"]; ok {
					nums, err := parseNumberList(vb)
					if err != nil || len(nums) != 4 {
						Logger().Warn("ignoring malformed viewBox", "value", vb)
					} else {
						doc.ViewBox = &Rect{nums[0], nums[1], nums[0] + nums[2], nums[1] + nums[3]}
					}
				}
				stack = append(stack, element{aff: Identity, style: as.style()})
				continue
			}

			parent := stack[len(stack)-1]
			el := element{
				aff:    parent.aff,
				style:  as.style().inherit(parent.style),
				hidden: parent.hidden || nonRendering[name],
			}
			if tr, ok := as["transform"]; ok {
				aff, err := ParseTransform(tr)
				if err != nil {
					Logger().Warn("ignoring malformed transform", "element", name, "err", err)
				} else {
					el.aff = el.aff.Mul(aff)
				}
			}
			stack = append(stack, el)
			if el.hidden {
				continue
			}
			segs := lowerShape(name, as)
			if len(segs) == 0 {
				continue
			}
			doc.Paths = append(doc.Paths, Path{
				ID:        as["id"],
				Segments:  sanitizeSegments(segs),
				Style:     el.style,
				Transform: el.aff,
			})

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if !sawRoot {
		return Document{}, &ParseError{Offset: len(text), Msg: "no <svg> root element"}
	}
	return doc, nil
}

// lowerShape converts a shape element to segments. Elements that aren't
// shapes, and shapes that don't render, yield no segments.
func lowerShape(name string, as attrs) []Segment {
	num := func(name string) float64 {
		f, _ := as.length(name)
		return f
	}
	switch name {
	case "path":
		segs, err := ParsePathData(as["d"])
		if err != nil {
			Logger().Warn("malformed path data", "id", as["id"], "err", err)
		}
		return segs
	case "rect":
		x, y := num("x"), num("y")
		rx, rxOK := as.length("rx")
		ry, ryOK := as.length("ry")
		if rxOK && !ryOK {
			ry = rx
		} else if ryOK && !rxOK {
			rx = ry
		}
		return Rectangle(Rect{x, y, x + num("width"), y + num("height")}, rx, ry)
	case "line":
		return Polyline([]Point{Pt(num("x1"), num("y1")), Pt(num("x2"), num("y2"))}, false)
	case "polygon", "polyline":
		coords, err := parseNumberList(as["points"])
		if err != nil {
			Logger().Warn("malformed points", "id", as["id"], "err", err)
		}
		return Polyline(pointList(coords), name == "polygon")
	case "circle":
		return Circle(Pt(num("cx"), num("cy")), num("r"))
	case "ellipse":
		rx, rxOK := as.length("rx")
		ry, ryOK := as.length("ry")
		if rxOK && !ryOK {
			ry = rx
		} else if ryOK && !rxOK {
			rx = ry
		}
		return Ellipse(Pt(num("cx"), num("cy")), Vec(rx, ry))
	default:
		return nil
	}
}

// SourceSpan maps a range [Start, End) of serialized bytes to the segment it
// was generated from.
type SourceSpan struct {
	Path    int
	Segment int
	Start   int
	End     int
}

// Serialize formats the document as SVG. Absent attributes and identity
// transforms are omitted; coordinates are written with [SerializePrecision]
// digits after the decimal point.
func Serialize(doc Document) string {
	out, _ := serialize(doc, false)
	return out
}

// SerializeWithMap is like [Serialize] but also returns, for every segment of
// every path, the byte range of its command in the output, in output order.
func SerializeWithMap(doc Document) (string, []SourceSpan) {
	return serialize(doc, true)
}

// Lookup returns the span containing the byte offset, as produced by
// [SerializeWithMap].
func Lookup(spans []SourceSpan, offset int) (SourceSpan, bool) {
	i, found := slices.BinarySearchFunc(spans, offset, func(sp SourceSpan, off int) int {
		switch {
		case sp.End <= off:
			return -1
		case sp.Start > off:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return SourceSpan{}, false
	}
	return spans[i], true
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	xml.EscapeText(buf, []byte(value))
	buf.WriteByte('"')
}

func serialize(doc Document, withMap bool) (string, []SourceSpan) {
	var buf bytes.Buffer
	var spans []SourceSpan

	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if doc.Width != "" {
		writeAttr(&buf, "width", doc.Width)
	}
	if doc.Height != "" {
		writeAttr(&buf, "height", doc.Height)
	}
	if vb := doc.ViewBox; vb != nil {
		g := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
		writeAttr(&buf, "viewBox", g(vb.X0)+" "+g(vb.Y0)+" "+g(vb.Width())+" "+g(vb.Height()))
	}
	buf.WriteString(">\n")

	var scratch []byte
	for pi, p := range doc.Paths {
		buf.WriteString("  <path")
		if p.ID != "" {
			writeAttr(&buf, "id", p.ID)
		}
		buf.WriteString(` d="`)
		for si, seg := range p.Segments {
			if si > 0 {
				buf.WriteByte(' ')
			}
			start := buf.Len()
			scratch = appendSegment(scratch[:0], seg, SerializePrecision)
			buf.Write(scratch)
			if withMap {
				spans = append(spans, SourceSpan{Path: pi, Segment: si, Start: start, End: buf.Len()})
			}
		}
		buf.WriteByte('"')
		for _, name := range styleAttrs {
			if v := p.Style.Get(name); v != "" {
				writeAttr(&buf, name, v)
			}
		}
		if aff := p.Affine(); !aff.IsIdentity() {
			writeAttr(&buf, "transform", aff.String())
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.String(), spans
}
