// Package scene is the small scene graph the editor draws and picks
// against: groups, filled surfaces, outlines, vertex handles and overlays,
// each with a local transform relative to its parent.
package scene

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/buffer"
)

// Kind selects how a node is drawn and whether it can be picked.
type Kind uint8

const (
	KindGroup   Kind = iota // container with no geometry of its own
	KindSurface             // filled triangles, pickable
	KindOutline             // line segments, never picked
	KindHandle              // draggable vertex proxy, pickable as a small sphere
	KindOverlay             // diagnostic lines, never picked
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindSurface:
		return "surface"
	case KindOutline:
		return "outline"
	case KindHandle:
		return "handle"
	case KindOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// nodeIDCounter is a plain counter; the scene is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the single scene graph element type. A flat struct is used for
// every kind; fields that do not apply to a kind stay zero.
type Node struct {
	ID   uint32
	Name string
	Kind Kind

	parent   *Node
	children []*Node

	// Local transform: scale, then rotation (Euler radians, X then Y then Z),
	// then translation.
	Position v3.Vec
	Rotation v3.Vec
	Scale    v3.Vec

	Visible bool

	// Geometry backs surfaces, outlines and overlays.
	Geometry *buffer.Geometry

	// Size is the pick radius of a handle per unit of distance from the ray
	// origin, which keeps handles the same size on screen.
	Size float64

	// UserData carries the caller's payload (a handle's vertex record).
	UserData any

	disposed bool
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Kind:    kind,
		Scale:   v3.Vec{X: 1, Y: 1, Z: 1},
		Visible: true,
	}
}

// NewGroup creates an empty container.
func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

// NewSurface creates a filled triangle node over g.
func NewSurface(name string, g *buffer.Geometry) *Node {
	n := newNode(name, KindSurface)
	n.Geometry = g
	return n
}

// NewOutline creates a line segment node over g.
func NewOutline(name string, g *buffer.Geometry) *Node {
	n := newNode(name, KindOutline)
	n.Geometry = g
	return n
}

// NewOverlay creates a non-pickable line segment node over g.
func NewOverlay(name string, g *buffer.Geometry) *Node {
	n := newNode(name, KindOverlay)
	n.Geometry = g
	return n
}

// NewHandle creates a handle at position with the given screen-relative size.
func NewHandle(name string, position v3.Vec, size float64) *Node {
	n := newNode(name, KindHandle)
	n.Position = position
	n.Size = size
	return n
}

// --- Hierarchy ---

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add appends child, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child. It is a no-op if child is not a direct child of n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return
		}
	}
}

// Walk calls fn for n and every descendant, depth first, parents before
// children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Transforms ---

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() sdf.M44 {
	rot := sdf.RotateZ(n.Rotation.Z).Mul(sdf.RotateY(n.Rotation.Y)).Mul(sdf.RotateX(n.Rotation.X))
	return sdf.Translate3d(n.Position).Mul(rot).Mul(sdf.Scale3d(n.Scale))
}

// WorldMatrix returns the node's transform relative to the scene root.
func (n *Node) WorldMatrix() sdf.M44 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul(n.LocalMatrix())
}

// ParentWorldMatrix returns the parent's world transform, or the identity
// for a root node.
func (n *Node) ParentWorldMatrix() sdf.M44 {
	if n.parent == nil {
		return sdf.Identity3d()
	}
	return n.parent.WorldMatrix()
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() v3.Vec {
	return n.WorldMatrix().MulPosition(v3.Vec{})
}

// WorldVisible reports whether the node and all its ancestors are visible.
func (n *Node) WorldVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// --- Resources ---

// Dispose releases the node's geometry. Callers dispose before removing a
// node from the scene; a removed but undisposed node leaks its buffers on
// the renderer side.
func (n *Node) Dispose() {
	if n.Geometry != nil {
		n.Geometry.Dispose()
	}
	n.disposed = true
}

// Disposed reports whether Dispose has been called.
func (n *Node) Disposed() bool {
	return n.disposed
}
