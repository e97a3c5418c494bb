package buffer

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Geometry pairs a position attribute with an optional normal attribute.
type Geometry struct {
	Position *Attribute
	Normal   *Attribute
}

// NewSurface builds a triangle geometry over positions and computes its
// normals. positions is not copied.
func NewSurface(positions []float64) *Geometry {
	g := &Geometry{
		Position: NewAttribute(positions),
		Normal:   NewAttribute(make([]float64, len(positions))),
	}
	g.ComputeVertexNormals()
	return g
}

// NewLines builds a line-segment geometry over positions. Lines carry no
// normals.
func NewLines(positions []float64) *Geometry {
	return &Geometry{Position: NewAttribute(positions)}
}

// TriangleCount returns the number of whole triangles in the position array.
func (g *Geometry) TriangleCount() int {
	return g.Position.Len() / TriangleSize
}

// Triangle returns triangle i as three coordinates.
func (g *Geometry) Triangle(i int) sdf.Triangle3 {
	o := i * TriangleSize
	return sdf.Triangle3{
		g.Position.Triple(o),
		g.Position.Triple(o + ItemSize),
		g.Position.Triple(o + 2*ItemSize),
	}
}

// ComputeVertexNormals recomputes flat normals: each corner of a triangle
// receives that triangle's face normal. Degenerate triangles get a zero
// normal. Runs in O(triangles).
func (g *Geometry) ComputeVertexNormals() {
	if g.Normal == nil {
		return
	}
	pos := g.Position.Array()
	if len(g.Normal.array) != len(pos) {
		g.Normal.array = make([]float64, len(pos))
	}
	FaceNormals(pos, g.Normal.array)
	g.Normal.MarkNeedsUpdate()
}

// Dispose releases both attributes.
func (g *Geometry) Dispose() {
	g.Position.Dispose()
	if g.Normal != nil {
		g.Normal.Dispose()
	}
}

// FaceNormals writes the face normal of every triangle in positions into
// the matching three corners of dst. len(dst) must be at least
// len(positions).
func FaceNormals(positions, dst []float64) {
	n := len(positions) / TriangleSize * TriangleSize
	for o := 0; o < n; o += TriangleSize {
		a := v3.Vec{X: positions[o], Y: positions[o+1], Z: positions[o+2]}
		b := v3.Vec{X: positions[o+3], Y: positions[o+4], Z: positions[o+5]}
		c := v3.Vec{X: positions[o+6], Y: positions[o+7], Z: positions[o+8]}

		normal := c.Sub(b).Cross(a.Sub(b))
		if l := normal.Length(); l > 0 {
			normal = normal.MulScalar(1 / l)
		}
		for k := 0; k < 3; k++ {
			dst[o+k*ItemSize] = normal.X
			dst[o+k*ItemSize+1] = normal.Y
			dst[o+k*ItemSize+2] = normal.Z
		}
	}
}

// Wireframe returns the outline of a non-indexed triangle buffer: the three
// edges (v0,v1), (v1,v2), (v2,v0) of every triangle, each edge as its own
// pair of coordinates. One triangle yields 18 scalars.
func Wireframe(positions []float64) []float64 {
	tris := len(positions) / TriangleSize
	out := make([]float64, 0, tris*3*SegmentSize)
	for t := 0; t < tris; t++ {
		o := t * TriangleSize
		for j := 0; j < 3; j++ {
			i1 := o + j*ItemSize
			i2 := o + ((j+1)%3)*ItemSize
			out = append(out, positions[i1:i1+ItemSize]...)
			out = append(out, positions[i2:i2+ItemSize]...)
		}
	}
	return out
}

// NormalLines returns one segment per coordinate, from the coordinate to the
// coordinate displaced by length along its normal. dst is reused when it has
// the right size.
func NormalLines(positions, normals []float64, length float64, dst []float64) []float64 {
	count := len(positions) / ItemSize
	if len(dst) != count*SegmentSize {
		dst = make([]float64, count*SegmentSize)
	}
	for i := 0; i < count; i++ {
		p := i * ItemSize
		s := i * SegmentSize
		dst[s] = positions[p]
		dst[s+1] = positions[p+1]
		dst[s+2] = positions[p+2]
		dst[s+3] = positions[p] + normals[p]*length
		dst[s+4] = positions[p+1] + normals[p+1]*length
		dst[s+5] = positions[p+2] + normals[p+2]*length
	}
	return dst
}
