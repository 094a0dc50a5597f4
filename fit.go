package pathkit

import (
	"math"
)

// Least-squares fitting of cubic Béziers to sampled points, after Philip J.
// Schneider, "An Algorithm for Automatically Fitting Digitized Curves",
// Graphics Gems (1990).

const (
	// number of Newton reparameterization rounds before splitting
	fitIterations = 4
	// a fit within this multiple of the tolerance is worth reparameterizing
	fitIterationError = 4.0
)

// FitCubics fits a sequence of cubic Béziers to pts, such that no point is
// further than tolerance from the curve at its parameter. tan0 and tan1 are the
// directions at the first and last point, both pointing forward. The curves
// start and end exactly at the first and last point.
//
// At most limit curves are produced. FitCubics returns false if pts can't be
// fit within that limit.
func FitCubics(pts []Point, tan0, tan1 Vec2, tolerance float64, limit int) ([]CubicBez, bool) {
	if len(pts) < 2 || limit < 1 {
		return nil, false
	}
	tan0 = tan0.NormalizeOr(pts[len(pts)-1].Sub(pts[0]).NormalizeOr(Vec2{1, 0}))
	tan1 = tan1.NormalizeOr(pts[len(pts)-1].Sub(pts[0]).NormalizeOr(Vec2{1, 0}))
	return fitCubics(pts, tan0, tan1, tolerance, limit)
}

func fitCubics(pts []Point, tan0, tan1 Vec2, tolerance float64, limit int) ([]CubicBez, bool) {
	if len(pts) == 2 {
		arm := pts[0].Distance(pts[1]) / 3
		return []CubicBez{{
			pts[0],
			pts[0].Translate(tan0.Mul(arm)),
			pts[1].Translate(tan1.Mul(-arm)),
			pts[1],
		}}, true
	}

	u := chordLengthParams(pts)
	bez := fitOne(pts, u, tan0, tan1)
	maxErr, split := fitError(pts, bez, u)
	tol2 := tolerance * tolerance
	if maxErr <= tol2 {
		return []CubicBez{bez}, true
	}
	if maxErr <= tol2*fitIterationError*fitIterationError {
		for range fitIterations {
			u = reparameterize(pts, bez, u)
			bez = fitOne(pts, u, tan0, tan1)
			maxErr, split = fitError(pts, bez, u)
			if maxErr <= tol2 {
				return []CubicBez{bez}, true
			}
		}
	}
	if limit < 2 {
		return nil, false
	}

	center := pts[split+1].Sub(pts[split-1]).NormalizeOr(tan0)
	left, ok := fitCubics(pts[:split+1], tan0, center, tolerance, limit-1)
	if !ok {
		return nil, false
	}
	right, ok := fitCubics(pts[split:], center, tan1, tolerance, limit-len(left))
	if !ok {
		return nil, false
	}
	return append(left, right...), true
}

// chordLengthParams assigns each point a parameter proportional to the
// polyline length up to it.
func chordLengthParams(pts []Point) []float64 {
	u := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		u[i] = u[i-1] + pts[i].Distance(pts[i-1])
	}
	total := u[len(u)-1]
	for i := range u {
		if total > 0 {
			u[i] /= total
		} else {
			u[i] = float64(i) / float64(len(u)-1)
		}
	}
	return u
}

// fitOne finds the handle lengths of the cubic through the end points with
// the given tangents that minimize the squared distances to pts.
func fitOne(pts []Point, u []float64, tan0, tan1 Vec2) CubicBez {
	p0, p3 := pts[0], pts[len(pts)-1]
	var c00, c01, c11, x0, x1 float64
	for i, t := range u {
		mt := 1 - t
		b0 := mt * mt * mt
		b1 := 3 * t * mt * mt
		b2 := 3 * t * t * mt
		b3 := t * t * t
		v1 := tan0.Mul(b1)
		v2 := tan1.Mul(-b2)
		base := Vec2(p0).Mul(b0 + b1).Add(Vec2(p3).Mul(b2 + b3))
		tmp := Vec2(pts[i]).Sub(base)
		c00 += v1.Dot(v1)
		c01 += v1.Dot(v2)
		c11 += v2.Dot(v2)
		x0 += v1.Dot(tmp)
		x1 += v2.Dot(tmp)
	}

	var a1, a2 float64
	if det := c00*c11 - c01*c01; math.Abs(det) > 1e-12 {
		a1 = (x0*c11 - x1*c01) / det
		a2 = (c00*x1 - c01*x0) / det
	}
	dist := p0.Distance(p3)
	if dist == 0 {
		for i := 1; i < len(pts); i++ {
			dist += pts[i].Distance(pts[i-1])
		}
	}
	eps := 1e-6 * dist
	if a1 < eps || a2 < eps {
		// The least-squares solution is degenerate or points the handles
		// backwards; fall back to the usual heuristic.
		a1 = dist / 3
		a2 = dist / 3
	}
	return CubicBez{
		p0,
		p0.Translate(tan0.Mul(a1)),
		p3.Translate(tan1.Mul(-a2)),
		p3,
	}
}

// fitError returns the largest squared distance between a point and the
// curve at the point's parameter, and the index of that point. The index is
// never an end point.
func fitError(pts []Point, bez CubicBez, u []float64) (float64, int) {
	maxErr := 0.0
	split := len(pts) / 2
	for i := 1; i < len(pts)-1; i++ {
		d := bez.Eval(u[i]).DistanceSquared(pts[i])
		if d > maxErr {
			maxErr = d
			split = i
		}
	}
	return maxErr, split
}

// reparameterize improves the parameters with one Newton-Raphson step each,
// moving every parameter towards the curve's closest point to its point.
func reparameterize(pts []Point, bez CubicBez, u []float64) []float64 {
	out := make([]float64, len(u))
	for i, t := range u {
		d := bez.Eval(t).Sub(pts[i])
		d1 := bez.Deriv(t)
		d2 := bez.Deriv2(t)
		den := d1.Dot(d1) + d.Dot(d2)
		if den == 0 {
			out[i] = t
			continue
		}
		out[i] = min(max(t-d.Dot(d1)/den, 0), 1)
	}
	out[0] = 0
	out[len(out)-1] = 1
	return out
}
