// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Shapes are described as
// signed distance functions and tessellated with marching cubes, which
// gives organic, evenly sized triangles instead of exact polyhedra.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution along the
// longest side of a shape. Every output vertex becomes a handle, so it is
// kept low.
const DefaultMeshCells = 12

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	Cells int
}

// New returns a new SdfxKernel with DefaultMeshCells.
func New() *SdfxKernel {
	return &SdfxKernel{Cells: DefaultMeshCells}
}

// Name implements kernel.Kernel.
func (k *SdfxKernel) Name() string {
	return "sdfx"
}

// Box creates a box centred on the origin.
func (k *SdfxKernel) Box(width, height, depth float64) (*kernel.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: width, Y: height, Z: depth}, 0)
	if err != nil {
		return nil, fmt.Errorf("kernel/sdfx: box: %w", err)
	}
	return k.toMesh(s)
}

// Sphere creates a sphere centred on the origin.
func (k *SdfxKernel) Sphere(radius float64) (*kernel.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("kernel/sdfx: sphere: %w", err)
	}
	return k.toMesh(s)
}

// Tetrahedron approximates a pyramid with a cone of the given base radius
// and height, apex up. The coarse tessellation turns the round base into a
// polygon.
func (k *SdfxKernel) Tetrahedron(radius float64) (*kernel.Mesh, error) {
	s, err := sdf.Cone3D(2*radius, radius, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("kernel/sdfx: cone: %w", err)
	}
	// Cone3D runs along Z; stand it up along Y.
	return k.toMesh(sdf.Transform3D(s, sdf.RotateX(-math.Pi/2)))
}

// toMesh converts a solid to a non-indexed triangle mesh using marching
// cubes.
func (k *SdfxKernel) toMesh(s sdf.SDF3) (*kernel.Mesh, error) {
	cells := k.Cells
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("kernel/sdfx: marching cubes produced no triangles at %d cells", cells)
	}

	vertices := make([]float64, 0, len(triangles)*9)
	for _, tri := range triangles {
		// Skip slivers that collapsed onto a line; they cannot be picked
		// or subdivided.
		if tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Length() == 0 {
			continue
		}
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, v.X, v.Y, v.Z)
		}
	}
	return &kernel.Mesh{Vertices: vertices}, nil
}
