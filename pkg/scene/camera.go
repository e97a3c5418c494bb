package scene

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/geom"
)

// Default camera placement: three units back along +Z looking at the origin
// with a 75 degree vertical field of view.
const (
	DefaultFov      = 75.0
	DefaultDistance = 3.0
)

// Camera is a perspective camera. Navigation is the caller's business; the
// editor only reads the pose to build pick rays and drag planes.
type Camera struct {
	Position v3.Vec
	Target   v3.Vec
	Up       v3.Vec
	Fov      float64 // vertical field of view, degrees
	Aspect   float64 // width / height
}

// NewCamera returns the default camera for a viewport of the given aspect.
func NewCamera(aspect float64) *Camera {
	return &Camera{
		Position: v3.Vec{Z: DefaultDistance},
		Up:       v3.Vec{Y: 1},
		Fov:      DefaultFov,
		Aspect:   aspect,
	}
}

// Direction returns the unit view direction.
func (c *Camera) Direction() v3.Vec {
	return c.Target.Sub(c.Position).Normalize()
}

// basis returns the camera's unit right and up vectors.
func (c *Camera) basis() (right, up v3.Vec) {
	dir := c.Direction()
	right = dir.Cross(c.Up).Normalize()
	up = right.Cross(dir)
	return right, up
}

// Ray returns the pick ray through normalized device coordinates ndc, where
// x and y lie in [-1, 1] with y pointing up.
func (c *Camera) Ray(ndc [2]float64) geom.Ray {
	right, up := c.basis()
	tanHalf := math.Tan(c.Fov * math.Pi / 360)
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	dir := c.Direction().
		Add(right.MulScalar(ndc[0] * tanHalf * aspect)).
		Add(up.MulScalar(ndc[1] * tanHalf))
	return geom.Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// Project maps a world point to normalized device coordinates. The second
// result is false for points at or behind the camera plane.
func (c *Camera) Project(p v3.Vec) ([2]float64, bool) {
	right, up := c.basis()
	rel := p.Sub(c.Position)
	depth := rel.Dot(c.Direction())
	if depth <= 0 {
		return [2]float64{}, false
	}
	tanHalf := math.Tan(c.Fov * math.Pi / 360)
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return [2]float64{
		rel.Dot(right) / (depth * tanHalf * aspect),
		rel.Dot(up) / (depth * tanHalf),
	}, true
}
