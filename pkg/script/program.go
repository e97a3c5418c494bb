package script

import v3 "github.com/deadsy/sdfx/vec/v3"

// OpKind enumerates the operations a program can contain.
type OpKind int

const (
	OpAddShape    OpKind = iota // add a primitive shape as a new model
	OpClear                     // remove every model
	OpSetMode                   // switch between object and edit mode
	OpShowNormals               // show or hide normals overlays
	OpSetKernel                 // choose the kernel for later shapes
	OpDrag                      // move one vertex of a model
	OpSubdivide                 // split one face of a model at a point
)

func (k OpKind) String() string {
	switch k {
	case OpAddShape:
		return "add-shape"
	case OpClear:
		return "clear"
	case OpSetMode:
		return "mode"
	case OpShowNormals:
		return "normals"
	case OpSetKernel:
		return "kernel"
	case OpDrag:
		return "drag"
	case OpSubdivide:
		return "subdivide"
	default:
		return "unknown"
	}
}

// Op is one step of a program.
type Op struct {
	Kind OpKind `json:"kind"`
	Data OpData `json:"data"`
}

// OpData is the interface for kind-specific operation payloads.
type OpData interface {
	opData() // marker method restricting implementations to this package
}

// Vec3 is a 3D coordinate as written in scripts.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V3 converts to the geometry vector type.
func (v Vec3) V3() v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// ---------------------------------------------------------------------------
// Payloads
// ---------------------------------------------------------------------------

// AddShapeData names the shape to add: "cube", "sphere" or "pyramid".
type AddShapeData struct {
	Shape string `json:"shape"`
}

func (AddShapeData) opData() {}

// ClearData carries nothing.
type ClearData struct{}

func (ClearData) opData() {}

// ModeData names the mode: "object" or "edit".
type ModeData struct {
	Mode string `json:"mode"`
}

func (ModeData) opData() {}

// NormalsData turns the normals overlay on or off.
type NormalsData struct {
	On bool `json:"on"`
}

func (NormalsData) opData() {}

// KernelData names the kernel: "poly" or "sdfx".
type KernelData struct {
	Kernel string `json:"kernel"`
}

func (KernelData) opData() {}

// DragData moves vertex Vertex of model Model to To.
type DragData struct {
	Model  int  `json:"model"`
	Vertex int  `json:"vertex"`
	To     Vec3 `json:"to"`
}

func (DragData) opData() {}

// SubdivideData splits face Face of model Model at At.
type SubdivideData struct {
	Model int  `json:"model"`
	Face  int  `json:"face"`
	At    Vec3 `json:"at"`
}

func (SubdivideData) opData() {}

// ---------------------------------------------------------------------------
// Program
// ---------------------------------------------------------------------------

// Program is the ordered output of one evaluation. It is never mutated
// once evaluation finishes; each evaluation produces a new program.
type Program struct {
	Ops []*Op `json:"ops"`
}

// New creates an empty Program.
func New() *Program {
	return &Program{}
}

// Add appends an operation and returns it.
func (p *Program) Add(kind OpKind, data OpData) *Op {
	op := &Op{Kind: kind, Data: data}
	p.Ops = append(p.Ops, op)
	return op
}

// Len returns the number of operations.
func (p *Program) Len() int {
	return len(p.Ops)
}

// Count returns the number of operations of the given kind.
func (p *Program) Count(kind OpKind) int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
