package replay

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/facet/pkg/editor"
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/script"
)

func TestRunNil(t *testing.T) {
	ed := editor.New()
	assert.NoError(t, Run(nil, ed))
	assert.Error(t, Run(script.New(), nil))
}

func TestRunShapesModeNormals(t *testing.T) {
	p := script.New()
	p.Add(script.OpAddShape, script.AddShapeData{Shape: "cube"})
	p.Add(script.OpAddShape, script.AddShapeData{Shape: "pyramid"})
	p.Add(script.OpSetMode, script.ModeData{Mode: "edit"})
	p.Add(script.OpShowNormals, script.NormalsData{On: true})

	ed := editor.New()
	require.NoError(t, Run(p, ed))

	require.Len(t, ed.Models(), 2)
	assert.Equal(t, 12, ed.Models()[0].TriangleCount())
	assert.Len(t, ed.Models()[0].Records, 8)
	assert.Equal(t, 4, ed.Models()[1].TriangleCount())
	assert.Equal(t, editor.ModeEdit, ed.Mode())
	assert.True(t, ed.ShowNormals())
	for _, m := range ed.Models() {
		assert.True(t, m.Editing())
	}
}

func TestRunKernelAndClear(t *testing.T) {
	p := script.New()
	p.Add(script.OpAddShape, script.AddShapeData{Shape: "sphere"})
	p.Add(script.OpClear, script.ClearData{})
	p.Add(script.OpSetKernel, script.KernelData{Kernel: "sdfx"})

	ed := editor.New()
	require.NoError(t, Run(p, ed))
	assert.Empty(t, ed.Models())
	assert.Equal(t, "sdfx", ed.Kernel().Name())
}

func TestRunDragAndSubdivide(t *testing.T) {
	ed := editor.New()
	_, err := ed.AddPositions("tri", []float64{0, 0, 0, 1, 0, 0, 0, 1, 0})
	require.NoError(t, err)

	p := script.New()
	p.Add(script.OpDrag, script.DragData{Model: 0, Vertex: 1, To: script.Vec3{X: 1, Z: 2}})
	p.Add(script.OpSubdivide, script.SubdivideData{Model: 0, Face: 0, At: script.Vec3{X: 0.3, Y: 0.3}})
	require.NoError(t, Run(p, ed))

	m := ed.Models()[0]
	assert.Len(t, m.Positions(), 27)
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 2, 0.3, 0.3, 0}, m.Positions()[:9])
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	p := script.New()
	p.Add(script.OpAddShape, script.AddShapeData{Shape: "pyramid"})
	p.Add(script.OpDrag, script.DragData{Model: 0, Vertex: 99, To: script.Vec3{}})
	p.Add(script.OpAddShape, script.AddShapeData{Shape: "cube"})

	ed := editor.New()
	err := Run(p, ed)
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 1, opErr.Index)
	assert.Equal(t, script.OpDrag, opErr.Kind)
	assert.ErrorIs(t, err, editor.ErrVertexRange)
	assert.Contains(t, err.Error(), "replay: op 1 (drag)")

	// The shape before the failure stays; the one after is never added.
	assert.Len(t, ed.Models(), 1)
}

func TestRunUnknownNames(t *testing.T) {
	tests := []struct {
		name string
		op   func(p *script.Program)
	}{
		{"shape", func(p *script.Program) { p.Add(script.OpAddShape, script.AddShapeData{Shape: "torus"}) }},
		{"mode", func(p *script.Program) { p.Add(script.OpSetMode, script.ModeData{Mode: "sculpt"}) }},
		{"kernel", func(p *script.Program) { p.Add(script.OpSetKernel, script.KernelData{Kernel: "manifold"}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := script.New()
			tt.op(p)
			assert.Error(t, Run(p, editor.New()))
		})
	}
}

func TestRunEvaluatedScript(t *testing.T) {
	p, evalErrs, err := engine.NewEngine().Evaluate(`
; one triangle pyramid, edited
(def p (pyramid))
(mode :edit)
(drag :model p :vertex 0 :to (vec3 0 2 0))
(subdivide :model p :face 0 :at (vec3 0 0.5 0))
`)
	require.NoError(t, err)
	require.Empty(t, evalErrs)

	ed := editor.New()
	require.NoError(t, Run(p, ed))
	require.Len(t, ed.Models(), 1)
	assert.Equal(t, 6, ed.Models()[0].TriangleCount())
	assert.Len(t, ed.Models()[0].Records, 5)

	// The drag survived the rebuild.
	pos := ed.Models()[0].Positions()
	found := false
	for i := 0; i+2 < len(pos); i += 3 {
		if (v3.Vec{X: pos[i], Y: pos[i+1], Z: pos[i+2]}) == (v3.Vec{Y: 2}) {
			found = true
		}
	}
	assert.True(t, found)
}
