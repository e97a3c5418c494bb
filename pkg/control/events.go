package control

import "github.com/chazu/facet/pkg/scene"

// Notification identifies a controller callback kind.
type Notification uint8

const (
	NotifyHoverOn Notification = iota
	NotifyHoverOff
	NotifyDragStart
	NotifyDrag
	NotifyDragEnd
)

func (n Notification) String() string {
	switch n {
	case NotifyHoverOn:
		return "hoveron"
	case NotifyHoverOff:
		return "hoveroff"
	case NotifyDragStart:
		return "dragstart"
	case NotifyDrag:
		return "drag"
	case NotifyDragEnd:
		return "dragend"
	default:
		return "unknown"
	}
}

// HoverEvent is delivered when the pointer starts or stops hovering a
// draggable.
type HoverEvent struct {
	Object *scene.Node
}

// DragEvent is delivered at the start, on every move, and at the end of a
// drag. During NotifyDrag, Object.Position already holds the new local
// position.
type DragEvent struct {
	Object *scene.Node
}

// --- Handler registry ---

type hoverHandler struct {
	id uint32
	fn func(HoverEvent)
}

type dragHandler struct {
	id uint32
	fn func(DragEvent)
}

type handlerRegistry struct {
	hoverOn   []hoverHandler
	hoverOff  []hoverHandler
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered controller callback.
type CallbackHandle struct {
	id     uint32
	reg    *handlerRegistry
	notify Notification
}

// Remove unregisters this callback so it no longer fires. Removing twice
// is harmless.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.notify {
	case NotifyHoverOn:
		h.reg.hoverOn = removeHandler(h.reg.hoverOn, h.id)
	case NotifyHoverOff:
		h.reg.hoverOff = removeHandler(h.reg.hoverOff, h.id)
	case NotifyDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id)
	case NotifyDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id)
	case NotifyDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id)
	}
}

func (h hoverHandler) ident() uint32 { return h.id }
func (h dragHandler) ident() uint32  { return h.id }

type registered interface {
	hoverHandler | dragHandler
	ident() uint32
}

func removeHandler[T registered](s []T, id uint32) []T {
	for i := range s {
		if s[i].ident() == id {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) addHover(n Notification, fn func(HoverEvent)) CallbackHandle {
	r.nextID++
	h := hoverHandler{id: r.nextID, fn: fn}
	if n == NotifyHoverOn {
		r.hoverOn = append(r.hoverOn, h)
	} else {
		r.hoverOff = append(r.hoverOff, h)
	}
	return CallbackHandle{id: h.id, reg: r, notify: n}
}

func (r *handlerRegistry) addDrag(n Notification, fn func(DragEvent)) CallbackHandle {
	r.nextID++
	h := dragHandler{id: r.nextID, fn: fn}
	switch n {
	case NotifyDragStart:
		r.dragStart = append(r.dragStart, h)
	case NotifyDrag:
		r.drag = append(r.drag, h)
	default:
		r.dragEnd = append(r.dragEnd, h)
	}
	return CallbackHandle{id: h.id, reg: r, notify: n}
}

func fireHover(hs []hoverHandler, ev HoverEvent) {
	for _, h := range hs {
		h.fn(ev)
	}
}

func fireDrag(hs []dragHandler, ev DragEvent) {
	for _, h := range hs {
		h.fn(ev)
	}
}

// OnHoverOn registers fn for the pointer entering a draggable.
func (c *Controller) OnHoverOn(fn func(HoverEvent)) CallbackHandle {
	return c.handlers.addHover(NotifyHoverOn, fn)
}

// OnHoverOff registers fn for the pointer leaving a draggable.
func (c *Controller) OnHoverOff(fn func(HoverEvent)) CallbackHandle {
	return c.handlers.addHover(NotifyHoverOff, fn)
}

// OnDragStart registers fn for the start of a drag.
func (c *Controller) OnDragStart(fn func(DragEvent)) CallbackHandle {
	return c.handlers.addDrag(NotifyDragStart, fn)
}

// OnDrag registers fn for every pointer move during a drag.
func (c *Controller) OnDrag(fn func(DragEvent)) CallbackHandle {
	return c.handlers.addDrag(NotifyDrag, fn)
}

// OnDragEnd registers fn for the end of a drag.
func (c *Controller) OnDragEnd(fn func(DragEvent)) CallbackHandle {
	return c.handlers.addDrag(NotifyDragEnd, fn)
}
