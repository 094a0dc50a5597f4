package pathkit

// Line represents a line segment.
type Line struct {
	P0 Point
	P1 Point
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Deriv returns the derivative of the line, which is the same for all t.
func (l Line) Deriv(t float64) Vec2 {
	return l.P1.Sub(l.P0)
}

// Cubic returns a cubic Bézier tracing the same line, with control points at
// thirds so that the parametrization stays uniform.
func (l Line) Cubic() CubicBez {
	return CubicBez{l.P0, l.P0.Lerp(l.P1, 1.0/3.0), l.P0.Lerp(l.P1, 2.0/3.0), l.P1}
}

