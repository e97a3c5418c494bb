package main

import (
	"context"
	"log"
	"log/slog"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/chazu/facet/pkg/control"
	"github.com/chazu/facet/pkg/editor"
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/replay"
)

// cursorEvent is the runtime event carrying the viewport cursor.
const cursorEvent = "cursor"

// App is the Wails backend. It exposes methods to the frontend via bindings.
// Bound methods may be called from several goroutines; mu serialises them.
type App struct {
	ctx    context.Context
	mu     sync.Mutex
	engine *engine.Engine
	editor *editor.Editor
}

// PointerInput is a pointer event as the frontend reports it.
type PointerInput struct {
	PointerType string  `json:"pointerType"`
	Button      int     `json:"button"`
	ClientX     float64 `json:"clientX"`
	ClientY     float64 `json:"clientY"`
}

// ModelData is the JSON-serializable form of one model. Buffers are flat
// xyz triples; outline and overlay are line segment pairs.
type ModelData struct {
	Name        string    `json:"name"`
	Surface     []float32 `json:"surface"`
	Normals     []float32 `json:"normals"`
	Outline     []float32 `json:"outline"`
	Handles     []float32 `json:"handles"`
	Overlay     []float32 `json:"overlay"`
	Editing     bool      `json:"editing"`
	ShowNormals bool      `json:"showNormals"`
	Version     uint64    `json:"version"`
}

// CameraData is the camera pose.
type CameraData struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	Up       [3]float32 `json:"up"`
	Fov      float32    `json:"fov"`
	Aspect   float32    `json:"aspect"`
}

// SceneData is everything the frontend needs to draw a frame.
type SceneData struct {
	Models      []ModelData `json:"models"`
	Camera      CameraData  `json:"camera"`
	Cursor      string      `json:"cursor"`
	Mode        string      `json:"mode"`
	ShowNormals bool        `json:"showNormals"`
	Kernel      string      `json:"kernel"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Scene  SceneData       `json:"scene"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with an engine and an empty editor.
func NewApp() *App {
	a := &App{engine: engine.NewEngine()}
	a.editor = a.newEditor(control.Rect{Width: editor.DefaultWidth, Height: editor.DefaultHeight}, nil)
	return a
}

// startup is called by Wails on app startup. The context is saved
// so cursor changes can be pushed to the frontend.
func (a *App) startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctx = ctx
}

// newEditor builds an editor over a fresh viewport of the given bounds.
// When prev is non-nil its camera is shared so script runs keep the view.
func (a *App) newEditor(bounds control.Rect, prev *editor.Editor) *editor.Editor {
	vp := control.NewViewport(bounds)
	vp.OnCursor = a.emitCursor
	opts := []editor.Option{
		editor.WithViewport(vp),
		editor.WithLogger(slog.Default()),
	}
	if prev != nil {
		opts = append(opts, editor.WithCamera(prev.Camera()))
	}
	return editor.New(opts...)
}

// emitCursor pushes a cursor change to the frontend. Without a Wails
// context (tests, headless use) the frontend polls Snapshot instead.
func (a *App) emitCursor(c control.Cursor) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, cursorEvent, string(c))
}

func (a *App) pointer(t control.EventType, in PointerInput) {
	a.mu.Lock()
	defer a.mu.Unlock()
	pt := control.PointerType(in.PointerType)
	if pt == "" {
		pt = control.PointerMouse
	}
	a.editor.HandlePointer(control.PointerEvent{
		Type:        t,
		PointerType: pt,
		Button:      control.Button(in.Button),
		ClientX:     in.ClientX,
		ClientY:     in.ClientY,
	})
}

// PointerDown forwards a pointerdown event.
func (a *App) PointerDown(in PointerInput) { a.pointer(control.PointerDown, in) }

// PointerMove forwards a pointermove event.
func (a *App) PointerMove(in PointerInput) { a.pointer(control.PointerMove, in) }

// PointerUp forwards a pointerup event.
func (a *App) PointerUp(in PointerInput) { a.pointer(control.PointerUp, in) }

// PointerLeave forwards a pointerleave event.
func (a *App) PointerLeave(in PointerInput) { a.pointer(control.PointerLeave, in) }

// ContextMenu subdivides the triangle under the given client position and
// reports whether anything was split.
func (a *App) ContextMenu(x, y float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editor.ContextMenu(x, y)
}

func (a *App) addShape(shape kernel.Shape) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.editor.AddShape(shape)
	return err
}

// AddCube adds a unit cube.
func (a *App) AddCube() error { return a.addShape(kernel.ShapeCube) }

// AddSphere adds a unit sphere.
func (a *App) AddSphere() error { return a.addShape(kernel.ShapeSphere) }

// AddPyramid adds a four-sided pyramid.
func (a *App) AddPyramid() error { return a.addShape(kernel.ShapePyramid) }

// Clear removes every model.
func (a *App) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.Clear()
}

// SetMode switches to "object" or "edit" mode.
func (a *App) SetMode(name string) error {
	mode, err := editor.ParseMode(name)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.SetMode(mode)
	return nil
}

// SetShowNormals toggles the normals overlays.
func (a *App) SetShowNormals(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.SetShowNormals(on)
}

// Resize tells the backend the viewport size.
func (a *App) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.Resize(width, height)
}

// Evaluate runs a facet script against a fresh scene. On success the new
// scene replaces the current one; on any error the current scene is kept.
// This is the primary binding called by the frontend script panel.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{Errors: []EvalErrorData{}}

	// Step 1: Evaluate the Lisp source into an edit program.
	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		result.Scene = a.Snapshot()
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		result.Scene = a.Snapshot()
		return result
	}

	// Step 3: Replay the program on a fresh editor.
	a.mu.Lock()
	ed := a.newEditor(a.editor.Viewport().Bounds(), a.editor)
	if err := replay.Run(p, ed); err != nil {
		a.mu.Unlock()
		log.Printf("Replay error: %v", err)
		ed.Clear()
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		result.Scene = a.Snapshot()
		return result
	}
	a.editor.Clear()
	a.editor = ed
	a.mu.Unlock()

	result.Scene = a.Snapshot()
	return result
}

// Snapshot returns the current scene as float32 buffers.
func (a *App) Snapshot() SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()

	ed := a.editor
	cam := ed.Camera()
	data := SceneData{
		Models: make([]ModelData, 0, len(ed.Models())),
		Camera: CameraData{
			Position: [3]float32{float32(cam.Position.X), float32(cam.Position.Y), float32(cam.Position.Z)},
			Target:   [3]float32{float32(cam.Target.X), float32(cam.Target.Y), float32(cam.Target.Z)},
			Up:       [3]float32{float32(cam.Up.X), float32(cam.Up.Y), float32(cam.Up.Z)},
			Fov:      float32(cam.Fov),
			Aspect:   float32(cam.Aspect),
		},
		Cursor:      string(ed.Viewport().Cursor()),
		Mode:        ed.Mode().String(),
		ShowNormals: ed.ShowNormals(),
		Kernel:      ed.Kernel().Name(),
	}

	for _, m := range ed.Models() {
		handles := m.HandleNodes()
		hp := make([]float32, 0, len(handles)*3)
		for _, h := range handles {
			w := h.WorldPosition()
			hp = append(hp, float32(w.X), float32(w.Y), float32(w.Z))
		}
		surface := m.Surface.Geometry
		data.Models = append(data.Models, ModelData{
			Name:        m.Group.Name,
			Surface:     toFloat32(surface.Position.Array()),
			Normals:     toFloat32(surface.Normal.Array()),
			Outline:     toFloat32(m.Outline.Geometry.Position.Array()),
			Handles:     hp,
			Overlay:     toFloat32(m.Overlay.Geometry.Position.Array()),
			Editing:     m.Editing(),
			ShowNormals: m.Overlay.Visible,
			Version:     surface.Position.Version(),
		})
	}
	return data
}

// toFloat32 converts a buffer for the frontend. The result is never nil so
// it serialises as [] rather than null.
func toFloat32(src []float64) []float32 {
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = float32(v)
	}
	return dst
}
