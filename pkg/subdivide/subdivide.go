// Package subdivide inserts a vertex into a surface by splitting the
// triangle under a picked point into a fan of three.
package subdivide

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/buffer"
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/scene"
)

// Target is a successful subdivision pick.
type Target struct {
	Surface *scene.Node
	Face    scene.Face
	// Point is the hit in the surface's local space.
	Point v3.Vec
}

// Pick casts ray against surfaces and obstacles. It succeeds only when the
// nearest hit is a triangle of one of the surfaces; a nearer obstacle, such
// as a vertex handle, cancels the pick.
func Pick(ray geom.Ray, surfaces, obstacles []*scene.Node) (Target, bool) {
	candidates := make([]*scene.Node, 0, len(surfaces)+len(obstacles))
	candidates = append(candidates, surfaces...)
	candidates = append(candidates, obstacles...)

	hits := scene.Intersect(ray, candidates, false)
	if len(hits) == 0 {
		return Target{}, false
	}
	hit := hits[0]
	if hit.Face == nil || hit.Object.Kind != scene.KindSurface {
		return Target{}, false
	}
	return Target{
		Surface: hit.Object,
		Face:    *hit.Face,
		Point:   hit.Object.WorldMatrix().Inverse().MulPosition(hit.Point),
	}, true
}

// Split returns a new buffer in which the triangle at face is replaced by
// the three triangles (a, b, p), (b, c, p) and (c, a, p). The replaced
// triangle is removed from its slot and the fan appended at the end; the
// other triangles keep their relative order. positions is not modified.
//
// The result is 18 scalars longer than positions.
func Split(positions []float64, face scene.Face, p v3.Vec) []float64 {
	a := triple(positions, face.A)
	b := triple(positions, face.B)
	c := triple(positions, face.C)

	start := face.Index() * buffer.TriangleSize
	out := make([]float64, 0, len(positions)+2*buffer.TriangleSize)
	out = append(out, positions[:start]...)
	out = append(out, positions[start+buffer.TriangleSize:]...)
	for _, v := range [...]v3.Vec{a, b, p, b, c, p, c, a, p} {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

func triple(a []float64, o int) v3.Vec {
	return v3.Vec{X: a[o], Y: a[o+1], Z: a[o+2]}
}
