package scene

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/buffer"
	"github.com/chazu/facet/pkg/geom"
)

// Face identifies a picked triangle by the scalar offsets of its three
// corners in the surface's position buffer.
type Face struct {
	A, B, C int
}

// FaceAt returns the face of triangle i.
func FaceAt(i int) Face {
	a := i * buffer.TriangleSize
	return Face{A: a, B: a + buffer.ItemSize, C: a + 2*buffer.ItemSize}
}

// Index returns the triangle index of the face.
func (f Face) Index() int {
	return f.A / buffer.TriangleSize
}

// Intersection is one ray hit.
type Intersection struct {
	Distance float64
	Point    v3.Vec
	Object   *Node
	// Face is set for surface hits only.
	Face *Face
}

// Intersect casts ray against objects and returns every hit, nearest first.
// Hidden nodes (or nodes under a hidden ancestor) are skipped, as are
// outlines and overlays. With recursive set, the descendants of each object
// are tested as well.
func Intersect(ray geom.Ray, objects []*Node, recursive bool) []Intersection {
	var hits []Intersection
	for _, o := range objects {
		if !o.WorldVisible() {
			continue
		}
		hits = intersectNode(ray, o, recursive, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func intersectNode(ray geom.Ray, n *Node, recursive bool, hits []Intersection) []Intersection {
	if !n.Visible {
		return hits
	}
	switch n.Kind {
	case KindSurface:
		hits = intersectSurface(ray, n, hits)
	case KindHandle:
		hits = intersectHandle(ray, n, hits)
	}
	if recursive {
		for _, c := range n.children {
			hits = intersectNode(ray, c, recursive, hits)
		}
	}
	return hits
}

func intersectSurface(ray geom.Ray, n *Node, hits []Intersection) []Intersection {
	if n.Geometry == nil || n.Geometry.Position == nil {
		return hits
	}
	m := n.WorldMatrix()
	pos := n.Geometry.Position
	tris := pos.Len() / buffer.TriangleSize
	for i := 0; i < tris; i++ {
		f := FaceAt(i)
		a := m.MulPosition(pos.Triple(f.A))
		b := m.MulPosition(pos.Triple(f.B))
		c := m.MulPosition(pos.Triple(f.C))
		t, ok := ray.IntersectTriangle(a, b, c)
		if !ok {
			continue
		}
		hits = append(hits, Intersection{
			Distance: t,
			Point:    ray.At(t),
			Object:   n,
			Face:     &f,
		})
	}
	return hits
}

func intersectHandle(ray geom.Ray, n *Node, hits []Intersection) []Intersection {
	center := n.WorldPosition()
	radius := n.Size * center.Sub(ray.Origin).Length()
	if radius <= 0 {
		return hits
	}
	t, ok := ray.IntersectSphere(center, radius)
	if !ok {
		return hits
	}
	return append(hits, Intersection{
		Distance: t,
		Point:    ray.At(t),
		Object:   n,
	})
}
