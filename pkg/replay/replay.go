// Package replay applies an evaluated edit program to an editor. One op is
// applied at a time in program order; the first failure stops the walk.
package replay

import (
	"fmt"

	"github.com/chazu/facet/pkg/editor"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/kernel/poly"
	"github.com/chazu/facet/pkg/kernel/sdfx"
	"github.com/chazu/facet/pkg/script"
)

// OpError reports which op failed.
type OpError struct {
	Index int
	Kind  script.OpKind
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("replay: op %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Run applies every op of p to ed. Ops applied before a failure stay
// applied. A nil program is a no-op.
func Run(p *script.Program, ed *editor.Editor) error {
	if p == nil {
		return nil
	}
	if ed == nil {
		return fmt.Errorf("replay: nil editor")
	}
	for i, op := range p.Ops {
		if err := apply(ed, op); err != nil {
			return &OpError{Index: i, Kind: op.Kind, Err: err}
		}
	}
	return nil
}

func apply(ed *editor.Editor, op *script.Op) error {
	switch d := op.Data.(type) {
	case script.AddShapeData:
		shape, err := kernel.ParseShape(d.Shape)
		if err != nil {
			return err
		}
		_, err = ed.AddShape(shape)
		return err

	case script.ClearData:
		ed.Clear()
		return nil

	case script.ModeData:
		mode, err := editor.ParseMode(d.Mode)
		if err != nil {
			return err
		}
		ed.SetMode(mode)
		return nil

	case script.NormalsData:
		ed.SetShowNormals(d.On)
		return nil

	case script.KernelData:
		k, err := kernelByName(d.Kernel)
		if err != nil {
			return err
		}
		ed.SetKernel(k)
		return nil

	case script.DragData:
		return ed.Drag(d.Model, d.Vertex, d.To.V3())

	case script.SubdivideData:
		return ed.Subdivide(d.Model, d.Face, d.At.V3())
	}
	return fmt.Errorf("unexpected data type %T", op.Data)
}

// kernelByName returns a fresh kernel for a script kernel name.
func kernelByName(name string) (kernel.Kernel, error) {
	switch name {
	case "poly":
		return poly.New(), nil
	case "sdfx":
		return sdfx.New(), nil
	}
	return nil, fmt.Errorf("unknown kernel %q", name)
}
