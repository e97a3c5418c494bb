// Package kernel defines the shape kernel interface. Implementations
// (poly, sdfx) produce triangle meshes for the primitives the editor can
// add; the abstraction allows swapping backends without changing the rest
// of the system.
package kernel

import "fmt"

// Kernel produces triangle meshes for primitive shapes. All shapes are
// centred on the origin.
type Kernel interface {
	// Name identifies the kernel in scripts and logs.
	Name() string

	Box(width, height, depth float64) (*Mesh, error)
	Sphere(radius float64) (*Mesh, error)
	// Tetrahedron returns a four-sided pyramid inscribed in a sphere of the
	// given radius.
	Tetrahedron(radius float64) (*Mesh, error)
}

// Shape names a primitive the editor can add.
type Shape string

const (
	ShapeCube    Shape = "cube"
	ShapeSphere  Shape = "sphere"
	ShapePyramid Shape = "pyramid"
)

// Shapes lists every known shape.
var Shapes = []Shape{ShapeCube, ShapeSphere, ShapePyramid}

// ParseShape converts a shape name.
func ParseShape(name string) (Shape, error) {
	for _, s := range Shapes {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("kernel: unknown shape %q", name)
}

// Build produces the default-sized mesh for shape: a unit cube, a unit
// sphere, or a pyramid of radius one.
func Build(k Kernel, shape Shape) (*Mesh, error) {
	var (
		m   *Mesh
		err error
	)
	switch shape {
	case ShapeCube:
		m, err = k.Box(1, 1, 1)
	case ShapeSphere:
		m, err = k.Sphere(1)
	case ShapePyramid:
		m, err = k.Tetrahedron(1)
	default:
		return nil, fmt.Errorf("kernel: unknown shape %q", shape)
	}
	if err != nil {
		return nil, fmt.Errorf("kernel: %s %s: %w", k.Name(), shape, err)
	}
	m.Name = string(shape)
	return m, nil
}
