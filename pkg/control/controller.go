// Package control turns raw pointer events into drag and hover
// notifications for a set of draggable scene nodes.
//
// A Controller casts a ray from the camera through the pointer on every
// event. Pressing the primary button over a draggable starts a drag: the
// node is then moved within a plane facing the camera that passes through
// its starting position, keeping the point that was grabbed under the
// pointer. Obstructions take part in picking but are never dragged or
// hovered; a draggable hidden behind one cannot be grabbed.
package control

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/scene"
)

// Controller is the drag/hover state machine over one set of draggables.
type Controller struct {
	objects   []*scene.Node
	obstacles []*scene.Node
	camera    *scene.Camera
	element   Element

	enabled bool
	remove  func()

	hovered  *scene.Node
	selected *scene.Node

	// Drag session state, valid while selected != nil.
	plane   geom.Plane
	offset  v3.Vec
	inverse sdf.M44

	handlers handlerRegistry
}

// New returns an enabled controller listening on el. Nodes in objects can
// be dragged; nodes in obstacles only block picks.
func New(objects []*scene.Node, camera *scene.Camera, el Element, obstacles []*scene.Node) *Controller {
	c := &Controller{
		objects:   objects,
		obstacles: obstacles,
		camera:    camera,
		element:   el,
		enabled:   true,
	}
	c.Activate()
	return c
}

// Activate starts listening for pointer events. It is a no-op when the
// controller is already active.
func (c *Controller) Activate() {
	if c.remove != nil {
		return
	}
	c.remove = c.element.Listen(c.handle)
}

// Deactivate stops listening. The cursor is reset only when this controller
// owns it, that is while it hovers or drags a node; other controllers on the
// same element keep theirs. It is a no-op when the controller is not active.
func (c *Controller) Deactivate() {
	if c.remove == nil {
		return
	}
	c.remove()
	c.remove = nil
	if c.hovered != nil || c.selected != nil {
		c.element.SetCursor(CursorDefault)
	}
	c.hovered = nil
}

// Active reports whether the controller is listening.
func (c *Controller) Active() bool {
	return c.remove != nil
}

// Dispose detaches the controller from its element.
func (c *Controller) Dispose() {
	c.Deactivate()
}

// SetEnabled turns event handling on or off. Disabling does not end a drag
// in progress; call Cancel for that.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled reports whether events are being handled.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Objects returns the draggable nodes.
func (c *Controller) Objects() []*scene.Node {
	return c.objects
}

// Dragging returns the node being dragged, or nil.
func (c *Controller) Dragging() *scene.Node {
	return c.selected
}

// Hovered returns the node under the pointer, or nil.
func (c *Controller) Hovered() *scene.Node {
	return c.hovered
}

// Cancel ends an active drag as if the pointer had been released.
func (c *Controller) Cancel() {
	if c.selected == nil {
		return
	}
	c.release()
}

func (c *Controller) handle(ev PointerEvent) {
	if !c.enabled {
		return
	}
	switch ev.Type {
	case PointerMove:
		c.pointerMove(ev)
	case PointerDown:
		c.pointerDown(ev)
	case PointerUp, PointerLeave:
		c.pointerCancel()
	}
}

func (c *Controller) ray(ev PointerEvent) geom.Ray {
	return c.camera.Ray(c.element.Bounds().NDC(ev.ClientX, ev.ClientY))
}

// pick returns the nearest hit among draggables and obstacles.
func (c *Controller) pick(ray geom.Ray) (scene.Intersection, bool) {
	candidates := make([]*scene.Node, 0, len(c.objects)+len(c.obstacles))
	candidates = append(candidates, c.objects...)
	candidates = append(candidates, c.obstacles...)
	hits := scene.Intersect(ray, candidates, true)
	if len(hits) == 0 {
		return scene.Intersection{}, false
	}
	return hits[0], true
}

// draggable returns the draggable a hit belongs to: the hit node itself or
// its nearest ancestor in objects. Hits on obstacles return nil.
func (c *Controller) draggable(n *scene.Node) *scene.Node {
	for p := n; p != nil; p = p.Parent() {
		for _, o := range c.obstacles {
			if o == p {
				return nil
			}
		}
		for _, o := range c.objects {
			if o == p {
				return o
			}
		}
	}
	return nil
}

func (c *Controller) anchor(n *scene.Node) {
	c.plane = geom.NewPlane(c.camera.Direction(), n.WorldPosition())
}

func (c *Controller) pointerMove(ev PointerEvent) {
	ray := c.ray(ev)

	if c.selected != nil {
		if at, ok := ray.IntersectPlane(c.plane); ok {
			c.selected.Position = c.inverse.MulPosition(at.Sub(c.offset))
		}
		fireDrag(c.handlers.drag, DragEvent{Object: c.selected})
		return
	}

	if !ev.PointerType.Hovers() {
		return
	}

	var target *scene.Node
	if hit, ok := c.pick(ray); ok {
		target = c.draggable(hit.Object)
	}

	if target == c.hovered {
		return
	}
	if c.hovered != nil {
		old := c.hovered
		c.hovered = nil
		if target == nil {
			c.element.SetCursor(CursorAuto)
		}
		fireHover(c.handlers.hoverOff, HoverEvent{Object: old})
	}
	if target != nil {
		c.hovered = target
		c.anchor(target)
		c.element.SetCursor(CursorPointer)
		fireHover(c.handlers.hoverOn, HoverEvent{Object: target})
	}
}

func (c *Controller) pointerDown(ev PointerEvent) {
	if ev.Button != ButtonPrimary || c.selected != nil {
		return
	}
	ray := c.ray(ev)
	hit, ok := c.pick(ray)
	if !ok {
		return
	}
	target := c.draggable(hit.Object)
	if target == nil {
		return
	}

	c.selected = target
	c.anchor(target)
	c.inverse = target.ParentWorldMatrix().Inverse()
	c.offset = v3.Vec{}
	if at, ok := ray.IntersectPlane(c.plane); ok {
		c.offset = at.Sub(target.WorldPosition())
	}

	c.element.SetCursor(CursorMove)
	fireDrag(c.handlers.dragStart, DragEvent{Object: target})
}

func (c *Controller) pointerCancel() {
	if c.selected == nil {
		return
	}
	c.release()
}

func (c *Controller) release() {
	released := c.selected
	c.selected = nil
	if c.hovered != nil {
		c.element.SetCursor(CursorPointer)
	} else {
		c.element.SetCursor(CursorAuto)
	}
	fireDrag(c.handlers.dragEnd, DragEvent{Object: released})
}
