package buffer

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangle() []float64 {
	return []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
}

func TestAttributeDirtyTracking(t *testing.T) {
	a := NewAttribute(unitTriangle())
	assert.Equal(t, 3, a.Count())

	_, _, ok := a.DirtyRange()
	assert.False(t, ok, "fresh attribute has nothing to upload")

	a.SetTriple(3, v3.Vec{X: 1, Z: 2})
	a.MarkNeedsUpdate()

	assert.Equal(t, v3.Vec{X: 1, Z: 2}, a.Triple(3))
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, []uint32{1}, a.DirtyItems())

	start, end, ok := a.DirtyRange()
	require.True(t, ok)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	a.ClearDirty()
	assert.Empty(t, a.DirtyItems())
}

func TestAttributeReplaceAndDispose(t *testing.T) {
	a := NewAttribute(unitTriangle())
	a.Replace(make([]float64, 18))
	assert.Equal(t, 18, a.Len())
	assert.Len(t, a.DirtyItems(), 6)

	a.Dispose()
	assert.True(t, a.Disposed())
	assert.Zero(t, a.Len())
}

func TestFaceNormals(t *testing.T) {
	g := NewSurface(unitTriangle())
	require.Equal(t, 9, g.Normal.Len())
	for i := 0; i < 3; i++ {
		n := g.Normal.Triple(i * ItemSize)
		assert.InDelta(t, 0.0, n.X, 1e-12)
		assert.InDelta(t, 0.0, n.Y, 1e-12)
		assert.InDelta(t, 1.0, n.Z, 1e-12)
	}

	// Reversed winding flips the normal.
	g = NewSurface([]float64{0, 0, 0, 0, 1, 0, 1, 0, 0})
	assert.InDelta(t, -1.0, g.Normal.Triple(0).Z, 1e-12)
}

func TestFaceNormalsDegenerate(t *testing.T) {
	g := NewSurface([]float64{0, 0, 0, 1, 0, 0, 2, 0, 0})
	for _, v := range g.Normal.Array() {
		assert.Zero(t, v)
	}
}

func TestComputeVertexNormalsFollowsPositions(t *testing.T) {
	g := NewSurface(unitTriangle())
	before := g.Normal.Version()

	// Tilt the triangle by lifting the second corner.
	g.Position.SetTriple(3, v3.Vec{X: 1, Z: 1})
	g.ComputeVertexNormals()

	n := g.Normal.Triple(0)
	assert.Greater(t, g.Normal.Version(), before)
	assert.InDelta(t, -0.7071067811865475, n.X, 1e-9)
	assert.InDelta(t, 0.7071067811865475, n.Z, 1e-9)
}

func TestWireframe(t *testing.T) {
	w := Wireframe(unitTriangle())
	require.Len(t, w, 18)
	assert.Equal(t, []float64{
		0, 0, 0, 1, 0, 0,
		1, 0, 0, 0, 1, 0,
		0, 1, 0, 0, 0, 0,
	}, w)

	two := append(unitTriangle(), unitTriangle()...)
	assert.Len(t, Wireframe(two), 36)
}

func TestNormalLines(t *testing.T) {
	g := NewSurface(unitTriangle())
	lines := NormalLines(g.Position.Array(), g.Normal.Array(), 0.5, nil)
	require.Len(t, lines, 18)
	assert.Equal(t, []float64{1, 0, 0, 1, 0, 0.5}, lines[6:12])

	again := NormalLines(g.Position.Array(), g.Normal.Array(), 0.5, lines)
	assert.Same(t, &lines[0], &again[0], "correctly sized destination is reused")
}

func TestTriangle(t *testing.T) {
	g := NewSurface(unitTriangle())
	assert.Equal(t, 1, g.TriangleCount())
	tri := g.Triangle(0)
	assert.Equal(t, v3.Vec{Y: 1}, tri[2])
}
