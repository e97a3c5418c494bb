// Package geom provides the ray, plane, triangle and sphere queries used for
// picking and dragging in the editor viewport. All values are plain structs
// built on sdfx vectors; nothing here keeps state between calls.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// parallelEpsilon is the determinant below which a ray is treated as
// parallel to a triangle.
const parallelEpsilon = 1e-12

// Ray is a half-line starting at Origin. Direction should be unit length so
// that distances returned by the intersection queries are world units.
type Ray struct {
	Origin    v3.Vec
	Direction v3.Vec
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) v3.Vec {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// Plane is the set of points p satisfying Normal·p + Constant = 0.
type Plane struct {
	Normal   v3.Vec
	Constant float64
}

// NewPlane returns the plane with the given normal that passes through point.
func NewPlane(normal, point v3.Vec) Plane {
	return Plane{Normal: normal, Constant: -point.Dot(normal)}
}

// DistanceToPoint returns the signed distance from q to the plane.
func (p Plane) DistanceToPoint(q v3.Vec) float64 {
	return p.Normal.Dot(q) + p.Constant
}

// IntersectPlane returns the point where the ray meets p. The second result
// is false when the ray runs parallel to the plane without lying in it, or
// when the plane is behind the ray origin.
func (r Ray) IntersectPlane(p Plane) (v3.Vec, bool) {
	denom := p.Normal.Dot(r.Direction)
	if denom == 0 {
		if p.DistanceToPoint(r.Origin) == 0 {
			return r.Origin, true
		}
		return v3.Vec{}, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return v3.Vec{}, false
	}
	return r.At(t), true
}

// IntersectTriangle returns the distance along the ray to triangle abc using
// the Möller–Trumbore test. Both faces of the triangle are hit.
func (r Ray) IntersectTriangle(a, b, c v3.Vec) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	pv := r.Direction.Cross(e2)
	det := e1.Dot(pv)
	if math.Abs(det) < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det

	tv := r.Origin.Sub(a)
	u := tv.Dot(pv) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	qv := tv.Cross(e1)
	v := r.Direction.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(qv) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectSphere returns the distance along the ray to the first surface
// point of the sphere. A ray starting inside the sphere hits the far side.
func (r Ray) IntersectSphere(center v3.Vec, radius float64) (float64, bool) {
	oc := center.Sub(r.Origin)
	tca := oc.Dot(r.Direction)
	d2 := oc.Dot(oc) - tca*tca
	r2 := radius * radius
	if d2 > r2 {
		return 0, false
	}
	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}

// Near reports whether a and b differ by at most tol on every axis.
// The comparison is inclusive.
func Near(a, b v3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}
