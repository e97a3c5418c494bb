package deform

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/facet/pkg/buffer"
	"github.com/chazu/facet/pkg/control"
	"github.com/chazu/facet/pkg/scene"
	"github.com/chazu/facet/pkg/weld"
)

type fixture struct {
	surface *buffer.Geometry
	outline *buffer.Geometry
	overlay *buffer.Geometry
	records []*weld.Record
	prop    *Propagator
}

func triangle() *fixture {
	primary := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}
	f := &fixture{surface: buffer.NewSurface(primary)}
	f.outline = buffer.NewLines(buffer.Wireframe(primary))
	f.overlay = buffer.NewLines(buffer.NormalLines(primary, f.surface.Normal.Array(), 0.2, nil))
	f.records = weld.Build(f.surface.Position.Array(), f.outline.Position.Array())
	f.prop = New(f.surface, f.outline.Position, f.overlay, 0.2)
	return f
}

func handleFor(r *weld.Record) *scene.Node {
	h := scene.NewHandle("vertex", r.Coords, 0.02)
	h.UserData = r
	return h
}

func TestApplyWritesEverySample(t *testing.T) {
	f := triangle()
	require.Len(t, f.records, 3)

	h := handleFor(f.records[1])
	h.Position = v3.Vec{X: 1, Z: 2}
	posVersion := f.surface.Position.Version()
	lineVersion := f.outline.Position.Version()

	f.prop.Apply(h)

	assert.Equal(t, []float64{0, 0, 0, 1, 0, 2, 0, 1, 0}, f.surface.Position.Array())
	assert.Equal(t, []float64{
		0, 0, 0, 1, 0, 2,
		1, 0, 2, 0, 1, 0,
		0, 1, 0, 0, 0, 0,
	}, f.outline.Position.Array())
	assert.Equal(t, []uint32{1}, f.surface.Position.DirtyItems())
	assert.Equal(t, []uint32{1, 2}, f.outline.Position.DirtyItems())
	assert.Greater(t, f.surface.Position.Version(), posVersion)
	assert.Greater(t, f.outline.Position.Version(), lineVersion)
}

func TestApplyRecomputesNormals(t *testing.T) {
	f := triangle()
	n := f.surface.Normal.Array()
	assert.InDelta(t, 1, n[2], 1e-12)

	// Lift v1 so the triangle tilts; the face normal leans away from +X.
	h := handleFor(f.records[1])
	h.Position = v3.Vec{X: 1, Z: 1}
	f.prop.Apply(h)

	want := v3.Vec{X: -1, Z: 1}.Normalize()
	for k := 0; k < 3; k++ {
		got := f.surface.Normal.Triple(k * buffer.ItemSize)
		assert.InDelta(t, want.X, got.X, 1e-12)
		assert.InDelta(t, want.Y, got.Y, 1e-12)
		assert.InDelta(t, want.Z, got.Z, 1e-12)
	}

	// Overlay segment for v1 starts at the new position and runs along the
	// new normal.
	ov := f.overlay.Position.Array()
	seg := ov[buffer.SegmentSize : 2*buffer.SegmentSize]
	assert.InDeltaSlice(t, []float64{
		1, 0, 1,
		1 + want.X*0.2, 0, 1 + want.Z*0.2,
	}, seg, 1e-12)
}

func TestApplyIgnoresNodesWithoutRecord(t *testing.T) {
	f := triangle()
	before := append([]float64(nil), f.surface.Position.Array()...)
	version := f.surface.Position.Version()

	n := scene.NewHandle("stray", v3.Vec{X: 5}, 0.02)
	f.prop.Apply(n)
	n.UserData = "not a record"
	f.prop.Apply(n)

	assert.Equal(t, before, f.surface.Position.Array())
	assert.Equal(t, version, f.surface.Position.Version())
	assert.Empty(t, f.outline.Position.DirtyItems())
}

func TestNilOverlay(t *testing.T) {
	f := triangle()
	p := New(f.surface, f.outline.Position, nil, 0.2)
	h := handleFor(f.records[0])
	h.Position = v3.Vec{Y: -1}
	assert.NotPanics(t, func() { p.Apply(h) })
	assert.Equal(t, -1.0, f.surface.Position.Array()[1])
}

func TestBindFollowsController(t *testing.T) {
	f := triangle()
	handles := make([]*scene.Node, len(f.records))
	for i, r := range f.records {
		handles[i] = handleFor(r)
	}
	vp := control.NewViewport(control.Rect{Width: 100, Height: 100})
	cam := scene.NewCamera(1)
	ctrl := control.New(handles, cam, vp, nil)

	f.prop.Bind(ctrl)
	f.prop.Bind(ctrl)
	require.True(t, f.prop.Bound())

	client := func(p v3.Vec) (float64, float64) {
		ndc, ok := cam.Project(p)
		require.True(t, ok)
		return (ndc[0] + 1) * 50, (1 - ndc[1]) * 50
	}
	x, y := client(v3.Vec{X: 1})
	vp.Dispatch(control.PointerEvent{Type: control.PointerDown, PointerType: control.PointerMouse, ClientX: x, ClientY: y})
	require.Same(t, handles[1], ctrl.Dragging())

	x, y = client(v3.Vec{X: 1.2, Y: 0.3})
	vp.Dispatch(control.PointerEvent{Type: control.PointerMove, PointerType: control.PointerMouse, ClientX: x, ClientY: y})

	p := f.surface.Position.Triple(3)
	assert.InDelta(t, 1.2, p.X, 1e-9)
	assert.InDelta(t, 0.3, p.Y, 1e-9)
	assert.Equal(t, p, f.outline.Position.Triple(3))
	assert.Equal(t, p, f.outline.Position.Triple(6))

	f.prop.Unbind()
	f.prop.Unbind()
	assert.False(t, f.prop.Bound())
	x, y = client(v3.Vec{X: 0.5, Y: 0.5})
	vp.Dispatch(control.PointerEvent{Type: control.PointerMove, PointerType: control.PointerMouse, ClientX: x, ClientY: y})
	assert.Equal(t, p, f.surface.Position.Triple(3))
}
