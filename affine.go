package pathkit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// This is the same order SVG uses for matrix(a b c d e f). (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing rotation.
//
// A positive angle rotates a positive X direction into positive Y. In the y-down
// coordinate system of SVG, that is a clockwise rotation. The angle th is
// expressed in radians.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout creates an affine transform representing a rotation of th radians
// about center.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c).Mul(Rotate(th)).Mul(Translate(c.Negate()))
}

// Skew creates an affine transformation representing a skew.
//
// The x and y parameters are the tangents of the horizontal and vertical skew
// angles.
func Skew(x, y float64) Affine {
	return Affine{1, y, x, 1, 0, 0}
}

// NewAffine creates a new affine transformation from an array of coefficients.
func NewAffine(n [6]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5]}
}

// Coefficients returns the the coefficients of the transform.
func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5}
}

// Mul returns aff * o, the transform that applies o first and aff second.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// IsIdentity reports whether aff is exactly the identity transform.
func (aff Affine) IsIdentity() bool {
	return aff == Identity
}

func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.N0) ||
		math.IsNaN(aff.N1) ||
		math.IsNaN(aff.N2) ||
		math.IsNaN(aff.N3) ||
		math.IsNaN(aff.N4) ||
		math.IsNaN(aff.N5)
}

// String formats the transform as an SVG matrix() function.
func (aff Affine) String() string {
	var sb strings.Builder
	sb.WriteString("matrix(")
	for i, n := range aff.Coefficients() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}

// ParseTransform parses the value of an SVG transform attribute. Transform
// functions are composed left to right, so that "translate(10) scale(2)" scales
// first and translates second, as SVG specifies.
func ParseTransform(s string) (Affine, error) {
	aff := Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return Identity, fmt.Errorf("transform %q: missing '('", s)
		}
		end := strings.IndexByte(rest, ')')
		if end < open {
			return Identity, fmt.Errorf("transform %q: missing ')'", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : end])
		if err != nil {
			return Identity, fmt.Errorf("transform %q: %w", s, err)
		}
		fn, err := transformFunction(name, args)
		if err != nil {
			return Identity, fmt.Errorf("transform %q: %w", s, err)
		}
		aff = aff.Mul(fn)
		rest = strings.TrimLeft(rest[end+1:], " \t\r\n,")
	}
	return aff, nil
}

func transformFunction(name string, args []float64) (Affine, error) {
	arity := func(allowed ...int) error {
		for _, n := range allowed {
			if len(args) == n {
				return nil
			}
		}
		return fmt.Errorf("%s: unexpected number of arguments %d", name, len(args))
	}
	deg := math.Pi / 180
	switch name {
	case "matrix":
		if err := arity(6); err != nil {
			return Identity, err
		}
		return NewAffine([6]float64(args)), nil
	case "translate":
		if err := arity(1, 2); err != nil {
			return Identity, err
		}
		if len(args) == 1 {
			return Translate(Vec(args[0], 0)), nil
		}
		return Translate(Vec(args[0], args[1])), nil
	case "scale":
		if err := arity(1, 2); err != nil {
			return Identity, err
		}
		if len(args) == 1 {
			return Scale(args[0], args[0]), nil
		}
		return Scale(args[0], args[1]), nil
	case "rotate":
		if err := arity(1, 3); err != nil {
			return Identity, err
		}
		if len(args) == 1 {
			return Rotate(args[0] * deg), nil
		}
		return RotateAbout(args[0]*deg, Pt(args[1], args[2])), nil
	case "skewX":
		if err := arity(1); err != nil {
			return Identity, err
		}
		return Skew(math.Tan(args[0]*deg), 0), nil
	case "skewY":
		if err := arity(1); err != nil {
			return Identity, err
		}
		return Skew(0, math.Tan(args[0]*deg)), nil
	default:
		return Identity, fmt.Errorf("unknown transform function %q", name)
	}
}
