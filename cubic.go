package pathkit

type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Differentiate returns the derivative of the cubic, a quadratic Bézier whose
// points are to be interpreted as vectors.
func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

// Deriv evaluates the derivative of the curve at t.
func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.Differentiate().Eval(t))
}

// Deriv2 evaluates the second derivative of the curve at t.
func (c CubicBez) Deriv2(t float64) Vec2 {
	a := c.P2.Sub(c.P1).Sub(c.P1.Sub(c.P0))
	b := c.P3.Sub(c.P2).Sub(c.P2.Sub(c.P1))
	return a.Mul(6 * (1 - t)).Add(b.Mul(6 * t))
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

// Extrema returns the parameters in (0, 1) at which the curve's x or y
// coordinate is extremal, in increasing order.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	var n int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2.0*d1 + d2
		b := 2.0 * (d1 - d0)
		roots, rn := SolveQuadratic(d0, b, a)
		for _, t := range roots[:rn] {
			if t > 0.0 && t < 1.0 {
				out[n] = t
				n++
			}
		}
	}
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sortExtrema(out[:n])
	return out, n
}

// Tangents computes the start and end tangents of the cubic.
//
// This is robust to control points coinciding with end points: the first
// control point that differs from the end point is used instead. A fully
// degenerate cubic yields zero vectors.
func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	var d0, d1 Vec2
	switch {
	case c.P1.Sub(c.P0).Hypot2() > epsilon:
		d0 = c.P1.Sub(c.P0)
	case c.P2.Sub(c.P0).Hypot2() > epsilon:
		d0 = c.P2.Sub(c.P0)
	default:
		d0 = c.P3.Sub(c.P0)
	}
	switch {
	case c.P3.Sub(c.P2).Hypot2() > epsilon:
		d1 = c.P3.Sub(c.P2)
	case c.P3.Sub(c.P1).Hypot2() > epsilon:
		d1 = c.P3.Sub(c.P1)
	default:
		d1 = c.P3.Sub(c.P0)
	}
	return d0, d1
}

// maxChordDeviation returns the larger of the two control points' distances from
// the chord P0–P3. The curve lies within the convex hull of its control points, so
// this bounds how far the curve strays from its chord.
func (c CubicBez) maxChordDeviation() float64 {
	return max(segmentDistance(c.P1, c.P0, c.P3), segmentDistance(c.P2, c.P0, c.P3))
}
