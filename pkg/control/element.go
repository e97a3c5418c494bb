package control

// EventType identifies a raw pointer event.
type EventType uint8

const (
	PointerMove  EventType = iota // pointer moved, with or without a button held
	PointerDown                   // a button was pressed
	PointerUp                     // a button was released
	PointerLeave                  // the pointer left the viewport
)

func (t EventType) String() string {
	switch t {
	case PointerMove:
		return "pointermove"
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case PointerLeave:
		return "pointerleave"
	default:
		return "unknown"
	}
}

// PointerType is the kind of device behind an event. Mouse and pen report
// a continuous position and therefore hover; touch does not.
type PointerType string

const (
	PointerMouse PointerType = "mouse"
	PointerPen   PointerType = "pen"
	PointerTouch PointerType = "touch"
)

// Hovers reports whether the device has a hover state.
func (p PointerType) Hovers() bool {
	return p == PointerMouse || p == PointerPen
}

// Button is a pointer button index, numbered as the browser numbers them.
type Button int

const (
	ButtonPrimary   Button = 0 // left mouse button, pen tip, touch contact
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// PointerEvent is one raw input event in client (window) coordinates.
type PointerEvent struct {
	Type        EventType
	PointerType PointerType
	Button      Button
	ClientX     float64
	ClientY     float64
}

// Rect is the viewport rectangle in client coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// NDC maps a client position to normalized device coordinates: x and y in
// [-1, 1] across the rectangle, y pointing up.
func (r Rect) NDC(clientX, clientY float64) [2]float64 {
	return [2]float64{
		(clientX-r.Left)/r.Width*2 - 1,
		-(clientY-r.Top)/r.Height*2 + 1,
	}
}

// Cursor is the pointer shape shown over the viewport.
type Cursor string

const (
	CursorDefault Cursor = ""
	CursorAuto    Cursor = "auto"
	CursorPointer Cursor = "pointer"
	CursorMove    Cursor = "move"
)

// Element is the input surface a Controller listens on.
type Element interface {
	// Listen registers fn for every pointer event and returns a function
	// that unregisters it.
	Listen(fn func(PointerEvent)) (remove func())
	// Bounds returns the viewport rectangle in client coordinates.
	Bounds() Rect
	// SetCursor changes the pointer shape.
	SetCursor(c Cursor)
}

// Viewport is an Element fed by the host: the host calls Dispatch for each
// input event it receives and reads Cursor when drawing.
type Viewport struct {
	rect      Rect
	cursor    Cursor
	listeners []viewportListener
	nextID    uint32

	// OnCursor, if set, is called whenever the cursor changes.
	OnCursor func(Cursor)
}

type viewportListener struct {
	id uint32
	fn func(PointerEvent)
}

var _ Element = (*Viewport)(nil)

// NewViewport returns a viewport covering rect.
func NewViewport(rect Rect) *Viewport {
	return &Viewport{rect: rect}
}

// Listen implements Element.
func (v *Viewport) Listen(fn func(PointerEvent)) func() {
	v.nextID++
	id := v.nextID
	v.listeners = append(v.listeners, viewportListener{id: id, fn: fn})
	return func() {
		for i := range v.listeners {
			if v.listeners[i].id == id {
				copy(v.listeners[i:], v.listeners[i+1:])
				v.listeners[len(v.listeners)-1] = viewportListener{}
				v.listeners = v.listeners[:len(v.listeners)-1]
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener in registration order. Listeners
// added while dispatching wait for the next event; listeners removed while
// dispatching are not called.
func (v *Viewport) Dispatch(ev PointerEvent) {
	ls := append([]viewportListener(nil), v.listeners...)
	for _, l := range ls {
		if !v.listening(l.id) {
			continue
		}
		l.fn(ev)
	}
}

func (v *Viewport) listening(id uint32) bool {
	for _, l := range v.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registered listeners.
func (v *Viewport) ListenerCount() int {
	return len(v.listeners)
}

// Bounds implements Element.
func (v *Viewport) Bounds() Rect {
	return v.rect
}

// SetBounds updates the viewport rectangle after a resize.
func (v *Viewport) SetBounds(r Rect) {
	v.rect = r
}

// SetCursor implements Element.
func (v *Viewport) SetCursor(c Cursor) {
	if c == v.cursor {
		return
	}
	v.cursor = c
	if v.OnCursor != nil {
		v.OnCursor(c)
	}
}

// Cursor returns the current pointer shape.
func (v *Viewport) Cursor() Cursor {
	return v.cursor
}
