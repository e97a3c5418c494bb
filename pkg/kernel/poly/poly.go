// Package poly implements kernel.Kernel with exact polyhedra: a box with two
// triangles per side, a latitude/longitude sphere, and a regular
// tetrahedron. Meshes are indexed; triangles wind counter-clockwise when
// seen from outside.
package poly

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*PolyKernel)(nil)

// Default sphere tessellation.
const (
	DefaultWidthSegments  = 32
	DefaultHeightSegments = 16
)

// PolyKernel implements kernel.Kernel with closed-form polyhedra.
type PolyKernel struct {
	WidthSegments  int
	HeightSegments int
}

// New returns a PolyKernel with the default sphere tessellation.
func New() *PolyKernel {
	return &PolyKernel{
		WidthSegments:  DefaultWidthSegments,
		HeightSegments: DefaultHeightSegments,
	}
}

// Name implements kernel.Kernel.
func (k *PolyKernel) Name() string {
	return "poly"
}

// boxSides lists each side's outward axis with two in-plane axes u, v such
// that u × v points outward.
var boxSides = [6][3]v3.Vec{
	{{X: 1}, {Y: 1}, {Z: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {Z: 1}, {X: 1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {Y: 1}, {X: 1}},
}

// Box creates a box centred on the origin: 4 vertices and 2 triangles per
// side.
func (k *PolyKernel) Box(width, height, depth float64) (*kernel.Mesh, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("poly: box dimensions must be positive, got %gx%gx%g", width, height, depth)
	}
	half := v3.Vec{X: width / 2, Y: height / 2, Z: depth / 2}

	m := &kernel.Mesh{
		Vertices: make([]float64, 0, 6*4*3),
		Indices:  make([]uint32, 0, 6*6),
	}
	for _, side := range boxSides {
		n, u, v := side[0], side[1], side[2]
		base := uint32(m.VertexCount())
		for _, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.MulScalar(c[0])).Add(v.MulScalar(c[1])).Mul(half)
			m.Vertices = append(m.Vertices, p.X, p.Y, p.Z)
		}
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return m, nil
}

// Sphere creates a latitude/longitude sphere. Rows run from the north pole
// (+Y) to the south pole; the first and last rows collapse into fans, so
// the sphere has WidthSegments*(HeightSegments-1)*2 triangles.
func (k *PolyKernel) Sphere(radius float64) (*kernel.Mesh, error) {
	ws, hs := k.WidthSegments, k.HeightSegments
	if ws < 3 || hs < 2 {
		return nil, fmt.Errorf("poly: sphere needs at least 3x2 segments, got %dx%d", ws, hs)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("poly: sphere radius must be positive, got %g", radius)
	}

	m := &kernel.Mesh{
		Vertices: make([]float64, 0, (ws+1)*(hs+1)*3),
		Indices:  make([]uint32, 0, ws*(hs-1)*6),
	}
	grid := make([][]uint32, hs+1)
	for iy := 0; iy <= hs; iy++ {
		theta := float64(iy) / float64(hs) * math.Pi
		row := make([]uint32, ws+1)
		for ix := 0; ix <= ws; ix++ {
			phi := float64(ix) / float64(ws) * 2 * math.Pi
			row[ix] = uint32(m.VertexCount())
			m.Vertices = append(m.Vertices,
				-radius*math.Cos(phi)*math.Sin(theta),
				radius*math.Cos(theta),
				radius*math.Sin(phi)*math.Sin(theta),
			)
		}
		grid[iy] = row
	}

	for iy := 0; iy < hs; iy++ {
		for ix := 0; ix < ws; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != hs-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m, nil
}

// tetrahedron corners before scaling; each lies on the unit cube's corners.
var (
	tetraCorners = [4]v3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: 1},
		{X: -1, Y: 1, Z: -1},
		{X: 1, Y: -1, Z: -1},
	}
	tetraFaces = []uint32{2, 1, 0, 0, 3, 2, 1, 3, 0, 2, 3, 1}
)

// Tetrahedron creates a regular tetrahedron whose corners lie on a sphere of
// the given radius.
func (k *PolyKernel) Tetrahedron(radius float64) (*kernel.Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("poly: tetrahedron radius must be positive, got %g", radius)
	}
	m := &kernel.Mesh{
		Vertices: make([]float64, 0, 4*3),
		Indices:  append([]uint32(nil), tetraFaces...),
	}
	for _, c := range tetraCorners {
		p := c.Normalize().MulScalar(radius)
		m.Vertices = append(m.Vertices, p.X, p.Y, p.Z)
	}
	return m, nil
}
