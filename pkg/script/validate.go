package script

import "fmt"

// ValidationError describes a single problem with a program.
type ValidationError struct {
	Index   int    // which operation has the problem
	Message string // human-readable description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("op %d: %s", e.Index, e.Message)
}

var (
	validShapes  = map[string]bool{"cube": true, "sphere": true, "pyramid": true}
	validModes   = map[string]bool{"object": true, "edit": true}
	validKernels = map[string]bool{"poly": true, "sdfx": true}
)

// Validate checks the program without running it: payload types, names,
// and model indices against the number of models the program itself has
// added by that point. Vertex and face ranges depend on the geometry and
// are left to the editor. This function is read-only.
func Validate(p *Program) []ValidationError {
	var errs []ValidationError
	models := 0
	for i, op := range p.Ops {
		fail := func(format string, args ...any) {
			errs = append(errs, ValidationError{Index: i, Message: fmt.Sprintf(format, args...)})
		}
		switch d := op.Data.(type) {
		case AddShapeData:
			if !validShapes[d.Shape] {
				fail("unknown shape %q", d.Shape)
				continue
			}
			models++
		case ClearData:
			models = 0
		case ModeData:
			if !validModes[d.Mode] {
				fail("unknown mode %q", d.Mode)
			}
		case NormalsData:
		case KernelData:
			if !validKernels[d.Kernel] {
				fail("unknown kernel %q", d.Kernel)
			}
		case DragData:
			if d.Model < 0 || d.Model >= models {
				fail("drag: model %d does not exist (%d models)", d.Model, models)
			}
			if d.Vertex < 0 {
				fail("drag: negative vertex %d", d.Vertex)
			}
		case SubdivideData:
			if d.Model < 0 || d.Model >= models {
				fail("subdivide: model %d does not exist (%d models)", d.Model, models)
			}
			if d.Face < 0 {
				fail("subdivide: negative face %d", d.Face)
			}
		default:
			fail("%s op has unexpected data type %T", op.Kind, op.Data)
			continue
		}
		if want := kindOf(op.Data); want != op.Kind {
			fail("%T payload on a %s op", op.Data, op.Kind)
		}
	}
	return errs
}

func kindOf(d OpData) OpKind {
	switch d.(type) {
	case AddShapeData:
		return OpAddShape
	case ClearData:
		return OpClear
	case ModeData:
		return OpSetMode
	case NormalsData:
		return OpShowNormals
	case KernelData:
		return OpSetKernel
	case DragData:
		return OpDrag
	case SubdivideData:
		return OpSubdivide
	}
	return -1
}
