package pathkit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError describes malformed input. Offset is the byte offset into the
// parsed text at which the problem was detected.
type ParseError struct {
	Offset int
	Msg    string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", err.Offset, err.Msg)
}

// scanner tokenizes numbers and flags in path data and number lists.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) errorf(format string, args ...any) *ParseError {
	return &ParseError{Offset: sc.pos, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func (sc *scanner) skipSpace() {
	for !sc.done() && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

// skipSep skips whitespace and at most one comma.
func (sc *scanner) skipSep() {
	sc.skipSpace()
	if !sc.done() && sc.s[sc.pos] == ',' {
		sc.pos++
		sc.skipSpace()
	}
}

// atNumber reports whether a number starts at the current position.
func (sc *scanner) atNumber() bool {
	if sc.done() {
		return false
	}
	c := sc.s[sc.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

// number reads one number. A second decimal point or a sign ends the number, so
// that "1.5.5" and "10-5" each hold two numbers.
func (sc *scanner) number() (float64, error) {
	sc.skipSep()
	start := sc.pos
	i := sc.pos
	s := sc.s
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, sc.errorf("expected number")
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, sc.errorf("invalid number %q", s[start:i])
	}
	sc.pos = i
	return f, nil
}

// flag reads an arc flag, a single '0' or '1' that needn't be separated from
// what follows.
func (sc *scanner) flag() (bool, error) {
	sc.skipSep()
	if sc.done() {
		return false, sc.errorf("expected flag")
	}
	switch sc.s[sc.pos] {
	case '0':
		sc.pos++
		return false, nil
	case '1':
		sc.pos++
		return true, nil
	default:
		return false, sc.errorf("expected flag, got %q", sc.s[sc.pos])
	}
}

func (sc *scanner) numbers(dst []float64) error {
	for i := range dst {
		f, err := sc.number()
		if err != nil {
			return err
		}
		dst[i] = f
	}
	return nil
}

func (sc *scanner) point(rel bool, cur Point) (Point, error) {
	var xy [2]float64
	if err := sc.numbers(xy[:]); err != nil {
		return Point{}, err
	}
	if rel {
		return Pt(cur.X+xy[0], cur.Y+xy[1]), nil
	}
	return Pt(xy[0], xy[1]), nil
}

// parseNumberList parses a list of numbers separated by whitespace and/or
// commas, as used by transform arguments, viewBox and points attributes.
func parseNumberList(s string) ([]float64, error) {
	sc := scanner{s: s}
	var out []float64
	for {
		sc.skipSep()
		if sc.done() {
			return out, nil
		}
		f, err := sc.number()
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

// ParsePathData parses SVG path data into absolute segments.
//
// Horizontal and vertical lines become LineTo segments, smooth curves get
// their reflected control points, and arcs are converted to cubic Béziers.
// A drawing command that follows a ClosePath without an intervening MoveTo
// gets an explicit MoveTo to the closed sub-path's start.
//
// On malformed input, ParsePathData returns the segments parsed up to the
// error, together with a *ParseError.
func ParsePathData(d string) ([]Segment, error) {
	sc := scanner{s: d}
	var (
		segs  []Segment
		cur   Point
		start Point
		// lastControl is the last control point of the preceding command, if
		// that command was a cubic (family 'C') or quadratic (family 'Q') curve.
		lastControl option[Point]
		family      byte
		closed      bool
	)

	for {
		sc.skipSpace()
		if sc.done() {
			return segs, nil
		}
		cmd := sc.s[sc.pos]
		if !isCommand(cmd) {
			return segs, sc.errorf("expected command, got %q", cmd)
		}
		sc.pos++
		upper := cmd &^ 0x20
		rel := cmd != upper

		if len(segs) == 0 && upper != 'M' {
			return segs, &ParseError{Offset: sc.pos - 1, Msg: "path data must start with a moveto"}
		}
		if closed && upper != 'M' && upper != 'Z' {
			segs = append(segs, MoveTo(start))
		}
		closed = false

		if upper == 'Z' {
			segs = append(segs, ClosePath(start))
			cur = start
			lastControl.clear()
			closed = true
			continue
		}

		first := true
		for {
			if !first {
				sc.skipSep()
				if !sc.atNumber() {
					break
				}
			}
			var (
				seg   Segment
				ctrl  option[Point]
				fam   byte
				extra []Segment
			)
			switch upper {
			case 'M':
				p, err := sc.point(rel, cur)
				if err != nil {
					return segs, err
				}
				if first {
					seg = MoveTo(p)
					start = p
				} else {
					seg = LineTo(p)
				}
			case 'L':
				p, err := sc.point(rel, cur)
				if err != nil {
					return segs, err
				}
				seg = LineTo(p)
			case 'H':
				x, err := sc.number()
				if err != nil {
					return segs, err
				}
				if rel {
					x += cur.X
				}
				seg = LineTo(Pt(x, cur.Y))
			case 'V':
				y, err := sc.number()
				if err != nil {
					return segs, err
				}
				if rel {
					y += cur.Y
				}
				seg = LineTo(Pt(cur.X, y))
			case 'C', 'S':
				var c1 Point
				if upper == 'C' {
					var err error
					if c1, err = sc.point(rel, cur); err != nil {
						return segs, err
					}
				} else {
					c1 = reflect(cur, lastControl, family, 'C')
				}
				c2, err := sc.point(rel, cur)
				if err != nil {
					return segs, err
				}
				p, err := sc.point(rel, cur)
				if err != nil {
					return segs, err
				}
				seg = CubicTo(c1, c2, p)
				ctrl.set(c2)
				fam = 'C'
			case 'Q', 'T':
				var c Point
				if upper == 'Q' {
					var err error
					if c, err = sc.point(rel, cur); err != nil {
						return segs, err
					}
				} else {
					c = reflect(cur, lastControl, family, 'Q')
				}
				p, err := sc.point(rel, cur)
				if err != nil {
					return segs, err
				}
				seg = QuadTo(c, p)
				ctrl.set(c)
				fam = 'Q'
			case 'A':
				var params [3]float64
				if err := sc.numbers(params[:]); err != nil {
					return segs, err
				}
				large, err := sc.flag()
				if err != nil {
					return segs, err
				}
				sweep, err := sc.flag()
				if err != nil {
					return segs, err
				}
				p, err := sc.point(rel, cur)
				if err != nil {
					return segs, err
				}
				extra = SVGArc{
					From:      cur,
					To:        p,
					Radii:     Vec(params[0], params[1]),
					XRotation: params[2] * math.Pi / 180,
					LargeArc:  large,
					Sweep:     sweep,
				}.Segments()
				seg.P = p
			}

			if upper == 'A' {
				segs = append(segs, extra...)
			} else {
				segs = append(segs, seg)
			}
			cur = seg.P
			lastControl = ctrl
			family = fam
			first = false
		}
	}
}

// reflect returns the first control point of a smooth curve: the reflection
// of the previous curve's last control point through cur, if the previous
// command belonged to the same family, or cur itself.
func reflect(cur Point, last option[Point], lastFamily, family byte) Point {
	if !last.isSet || lastFamily != family {
		return cur
	}
	return cur.Translate(cur.Sub(last.unwrap()))
}

// FormatPathData formats segments as absolute SVG path data, with at most
// prec digits after the decimal point.
func FormatPathData(segs []Segment, prec int) string {
	var b []byte
	for i, seg := range segs {
		if i > 0 {
			b = append(b, ' ')
		}
		b = appendSegment(b, seg, prec)
	}
	return string(b)
}

func appendPoint(b []byte, pt Point, prec int) []byte {
	b = append(b, formatFloat(pt.X, prec)...)
	b = append(b, ' ')
	b = append(b, formatFloat(pt.Y, prec)...)
	return b
}

func appendSegment(b []byte, seg Segment, prec int) []byte {
	switch seg.Kind {
	case MoveToKind:
		b = append(b, 'M')
		b = appendPoint(b, seg.P, prec)
	case LineToKind:
		b = append(b, 'L')
		b = appendPoint(b, seg.P, prec)
	case QuadToKind:
		b = append(b, 'Q')
		b = appendPoint(b, seg.C1, prec)
		b = append(b, ' ')
		b = appendPoint(b, seg.P, prec)
	case CubicToKind:
		b = append(b, 'C')
		b = appendPoint(b, seg.C1, prec)
		b = append(b, ' ')
		b = appendPoint(b, seg.C2, prec)
		b = append(b, ' ')
		b = appendPoint(b, seg.P, prec)
	case ClosePathKind:
		b = append(b, 'Z')
	}
	return b
}
