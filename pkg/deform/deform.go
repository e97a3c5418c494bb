// Package deform keeps a model's buffers in step with its handles. When a
// handle is dragged, its position is written into every sample of the
// vertex it stands for, in both the surface and the outline, and the
// surface normals and normals overlay are recomputed.
package deform

import (
	"github.com/chazu/facet/pkg/buffer"
	"github.com/chazu/facet/pkg/control"
	"github.com/chazu/facet/pkg/scene"
	"github.com/chazu/facet/pkg/weld"
)

// Propagator applies handle motion to one model's geometry.
type Propagator struct {
	surface *buffer.Geometry
	outline *buffer.Attribute
	overlay *buffer.Geometry

	// NormalsLength is the overlay segment length.
	NormalsLength float64

	binding control.CallbackHandle
	bound   bool
}

// New returns a propagator writing into surface and outline. overlay may be
// nil when the model has no normals overlay.
func New(surface *buffer.Geometry, outline *buffer.Attribute, overlay *buffer.Geometry, normalsLength float64) *Propagator {
	return &Propagator{
		surface:       surface,
		outline:       outline,
		overlay:       overlay,
		NormalsLength: normalsLength,
	}
}

// Bind subscribes the propagator to ctrl's drag notifications. A second
// call replaces the first binding.
func (p *Propagator) Bind(ctrl *control.Controller) {
	p.Unbind()
	p.binding = ctrl.OnDrag(func(e control.DragEvent) {
		p.Apply(e.Object)
	})
	p.bound = true
}

// Unbind removes the drag subscription, if any.
func (p *Propagator) Unbind() {
	if !p.bound {
		return
	}
	p.binding.Remove()
	p.bound = false
}

// Bound reports whether the propagator is subscribed to a controller.
func (p *Propagator) Bound() bool {
	return p.bound
}

// Apply writes n's local position into every sample of its vertex record.
// Nodes without a record are ignored.
func (p *Propagator) Apply(n *scene.Node) {
	rec, ok := n.UserData.(*weld.Record)
	if !ok || rec == nil {
		return
	}
	pos := n.Position
	for _, o := range rec.Primary {
		p.surface.Position.SetTriple(o, pos)
	}
	for _, o := range rec.Secondary {
		p.outline.SetTriple(o, pos)
	}
	p.surface.Position.MarkNeedsUpdate()
	p.outline.MarkNeedsUpdate()

	p.surface.ComputeVertexNormals()
	p.RefreshOverlay()
}

// RefreshOverlay rebuilds the normals overlay from the current surface.
func (p *Propagator) RefreshOverlay() {
	if p.overlay == nil || p.overlay.Position.Disposed() {
		return
	}
	lines := buffer.NormalLines(
		p.surface.Position.Array(),
		p.surface.Normal.Array(),
		p.NormalsLength,
		p.overlay.Position.Array(),
	)
	p.overlay.Position.Replace(lines)
}
