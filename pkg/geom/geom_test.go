package geom

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectPlane(t *testing.T) {
	p := NewPlane(v3.Vec{Z: 1}, v3.Vec{Z: 2})

	tests := []struct {
		name   string
		ray    Ray
		want   v3.Vec
		wantOK bool
	}{
		{"straight down", Ray{Origin: v3.Vec{X: 1, Y: 1, Z: 5}, Direction: v3.Vec{Z: -1}}, v3.Vec{X: 1, Y: 1, Z: 2}, true},
		{"parallel above", Ray{Origin: v3.Vec{Z: 5}, Direction: v3.Vec{X: 1}}, v3.Vec{}, false},
		{"parallel inside", Ray{Origin: v3.Vec{X: 3, Z: 2}, Direction: v3.Vec{Y: 1}}, v3.Vec{X: 3, Z: 2}, true},
		{"plane behind", Ray{Origin: v3.Vec{Z: 5}, Direction: v3.Vec{Z: 1}}, v3.Vec{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlane(p)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want.X, got.X, 1e-12)
				assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
				assert.InDelta(t, tt.want.Z, got.Z, 1e-12)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := v3.Vec{}
	b := v3.Vec{X: 1}
	c := v3.Vec{Y: 1}

	d, ok := Ray{Origin: v3.Vec{X: 0.25, Y: 0.25, Z: 3}, Direction: v3.Vec{Z: -1}}.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 3.0, d, 1e-12)

	// Back face is hit as well.
	d, ok = Ray{Origin: v3.Vec{X: 0.25, Y: 0.25, Z: -2}, Direction: v3.Vec{Z: 1}}.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 2.0, d, 1e-12)

	_, ok = Ray{Origin: v3.Vec{X: 0.9, Y: 0.9, Z: 3}, Direction: v3.Vec{Z: -1}}.IntersectTriangle(a, b, c)
	assert.False(t, ok, "outside the hypotenuse")

	_, ok = Ray{Origin: v3.Vec{X: 0.25, Y: 0.25, Z: 3}, Direction: v3.Vec{X: 1}}.IntersectTriangle(a, b, c)
	assert.False(t, ok, "parallel")

	_, ok = Ray{Origin: v3.Vec{X: 0.25, Y: 0.25, Z: 3}, Direction: v3.Vec{Z: 1}}.IntersectTriangle(a, b, c)
	assert.False(t, ok, "behind")
}

func TestIntersectSphere(t *testing.T) {
	center := v3.Vec{Z: -5}

	d, ok := Ray{Direction: v3.Vec{Z: -1}}.IntersectSphere(center, 1)
	require.True(t, ok)
	assert.InDelta(t, 4.0, d, 1e-12)

	d, ok = Ray{Origin: center, Direction: v3.Vec{Z: -1}}.IntersectSphere(center, 1)
	require.True(t, ok)
	assert.InDelta(t, 1.0, d, 1e-12)

	_, ok = Ray{Origin: v3.Vec{X: 2}, Direction: v3.Vec{Z: -1}}.IntersectSphere(center, 1)
	assert.False(t, ok)

	_, ok = Ray{Direction: v3.Vec{Z: 1}}.IntersectSphere(center, 1)
	assert.False(t, ok)
}

func TestNear(t *testing.T) {
	base := v3.Vec{X: 1, Y: 2, Z: 3}
	assert.True(t, Near(base, base, 1e-3))
	assert.True(t, Near(base, v3.Vec{X: 1.001, Y: 2, Z: 3}, 1e-3))
	assert.False(t, Near(base, v3.Vec{X: 1, Y: 2, Z: 3.0011}, 1e-3))
}
