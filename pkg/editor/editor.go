// Package editor ties the scene, camera, input viewport and shape kernel
// together into an interactive vertex editor. Host shells forward pointer
// events and menu actions to an Editor and draw its scene.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/control"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/model"
	"github.com/chazu/facet/pkg/scene"
	"github.com/chazu/facet/pkg/subdivide"
)

// Errors returned by the scripted operations.
var (
	ErrNoModel     = errors.New("editor: no such model")
	ErrVertexRange = errors.New("editor: vertex index out of range")
	ErrFaceRange   = errors.New("editor: face index out of range")
)

// Mode selects what the pointer does.
type Mode int

const (
	// ModeObject shows surfaces only; dragging is off.
	ModeObject Mode = iota
	// ModeEdit shows outlines and vertex handles and enables dragging.
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeObject:
		return "object"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "object":
		return ModeObject, nil
	case "edit":
		return ModeEdit, nil
	}
	return 0, fmt.Errorf("editor: unknown mode %q", name)
}

// Editor owns the scene and every model in it. It is not safe for
// concurrent use.
type Editor struct {
	scene    *scene.Scene
	camera   *scene.Camera
	viewport *control.Viewport
	kernel   kernel.Kernel
	logger   *slog.Logger

	handleSize    float64
	normalsLength float64

	models      []*model.Model
	mode        Mode
	showNormals bool
	seq         int
}

// New creates an empty editor in object mode.
func New(opts ...Option) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.fill()
	return &Editor{
		scene:         scene.New(),
		camera:        o.camera,
		viewport:      o.viewport,
		kernel:        o.kernel,
		logger:        o.logger,
		handleSize:    o.handleSize,
		normalsLength: o.normalsLength,
	}
}

// Scene returns the editor's scene.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Camera returns the camera used for picking.
func (e *Editor) Camera() *scene.Camera { return e.camera }

// Viewport returns the input element.
func (e *Editor) Viewport() *control.Viewport { return e.viewport }

// Kernel returns the kernel used by AddShape.
func (e *Editor) Kernel() kernel.Kernel { return e.kernel }

// SetKernel switches the kernel for shapes added afterwards.
func (e *Editor) SetKernel(k kernel.Kernel) {
	e.kernel = k
	e.logger.Info("kernel changed", "kernel", k.Name())
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode { return e.mode }

// ShowNormals reports whether normals overlays are shown.
func (e *Editor) ShowNormals() bool { return e.showNormals }

// Models returns the models in insertion order. The slice must not be
// modified.
func (e *Editor) Models() []*model.Model { return e.models }

// Model returns model i.
func (e *Editor) Model(i int) (*model.Model, error) {
	if i < 0 || i >= len(e.models) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoModel, i, len(e.models))
	}
	return e.models[i], nil
}

// AddShape builds shape with the current kernel and adds it as a model.
func (e *Editor) AddShape(shape kernel.Shape) (*model.Model, error) {
	mesh, err := kernel.Build(e.kernel, shape)
	if err != nil {
		return nil, fmt.Errorf("editor: add %s: %w", shape, err)
	}
	return e.AddPositions(string(shape), mesh.NonIndexed())
}

// AddPositions adds a model over a non-indexed triangle buffer.
func (e *Editor) AddPositions(name string, positions []float64) (*model.Model, error) {
	m, err := e.build(name, positions)
	if err != nil {
		return nil, err
	}
	e.models = append(e.models, m)
	e.scene.Add(m.Group)
	e.logger.Info("model added", "name", m.Group.Name, "triangles", m.TriangleCount(), "vertices", len(m.Records))
	return m, nil
}

func (e *Editor) build(name string, positions []float64) (*model.Model, error) {
	e.seq++
	m, err := model.New(fmt.Sprintf("%s-%d", name, e.seq), positions, model.Config{
		Camera:        e.camera,
		Element:       e.viewport,
		HandleSize:    e.handleSize,
		NormalsLength: e.normalsLength,
		Logger:        e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	m.SetEditMode(e.mode == ModeEdit)
	m.SetShowNormals(e.showNormals)
	return m, nil
}

// Remove disposes model i and removes it from the scene.
func (e *Editor) Remove(i int) error {
	m, err := e.Model(i)
	if err != nil {
		return err
	}
	m.Dispose()
	e.models = append(e.models[:i], e.models[i+1:]...)
	e.logger.Info("model removed", "name", m.Group.Name)
	return nil
}

// Clear disposes every model.
func (e *Editor) Clear() {
	for _, m := range e.models {
		m.Dispose()
	}
	n := len(e.models)
	e.models = nil
	e.logger.Info("scene cleared", "models", n)
}

// SetMode switches every model between object and edit mode. Leaving edit
// mode ends any drag in progress.
func (e *Editor) SetMode(mode Mode) {
	e.mode = mode
	for _, m := range e.models {
		m.SetEditMode(mode == ModeEdit)
	}
	e.logger.Info("mode changed", "mode", mode)
}

// SetShowNormals toggles every normals overlay.
func (e *Editor) SetShowNormals(on bool) {
	e.showNormals = on
	for _, m := range e.models {
		m.SetShowNormals(on)
	}
}

// Resize updates the viewport rectangle and the camera aspect.
func (e *Editor) Resize(width, height float64) {
	r := e.viewport.Bounds()
	r.Width, r.Height = width, height
	e.viewport.SetBounds(r)
	e.camera.Aspect = aspectOf(r)
}

// HandlePointer forwards a pointer event to every model's controller.
func (e *Editor) HandlePointer(ev control.PointerEvent) {
	e.viewport.Dispatch(ev)
}

// ContextMenu subdivides the surface triangle under the client position.
// A miss, or a vertex handle in front of the surface, is ignored. It
// reports whether a triangle was split.
func (e *Editor) ContextMenu(clientX, clientY float64) bool {
	ray := e.camera.Ray(e.viewport.Bounds().NDC(clientX, clientY))

	surfaces := make([]*scene.Node, 0, len(e.models))
	var handles []*scene.Node
	for _, m := range e.models {
		surfaces = append(surfaces, m.Surface)
		handles = append(handles, m.HandleNodes()...)
	}
	target, ok := subdivide.Pick(ray, surfaces, handles)
	if !ok {
		e.logger.Debug("subdivision pick missed", "x", clientX, "y", clientY)
		return false
	}

	i := e.indexOfSurface(target.Surface)
	if err := e.split(i, target.Face, target.Point); err != nil {
		// The split buffer is always whole triangles; a failure here means
		// the model was already broken.
		e.logger.Warn("subdivision failed", "err", err)
		return false
	}
	if e.mode == ModeEdit {
		e.viewport.SetCursor(control.CursorPointer)
	}
	return true
}

func (e *Editor) indexOfSurface(n *scene.Node) int {
	for i, m := range e.models {
		if m.Surface == n {
			return i
		}
	}
	return -1
}

// split replaces model i with a model over its buffer with face split at p.
// The replacement keeps the model's index.
func (e *Editor) split(i int, face scene.Face, p v3.Vec) error {
	old := e.models[i]
	positions := subdivide.Split(old.Positions(), face, p)

	name := old.Group.Name
	old.Dispose()

	m, err := e.build(baseName(name), positions)
	if err != nil {
		e.models = append(e.models[:i], e.models[i+1:]...)
		return err
	}
	e.models[i] = m
	e.scene.Add(m.Group)
	e.logger.Debug("model rebuilt",
		"from", name, "to", m.Group.Name,
		"triangles", m.TriangleCount(), "vertices", len(m.Records))
	return nil
}

// baseName strips the sequence suffix from a model name.
func baseName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '-' {
			return name[:i]
		}
	}
	return name
}

// Drag moves vertex of model to the local position to, as a completed
// pointer drag would.
func (e *Editor) Drag(modelIndex, vertex int, to v3.Vec) error {
	m, err := e.Model(modelIndex)
	if err != nil {
		return err
	}
	if vertex < 0 || vertex >= len(m.Records) {
		return fmt.Errorf("%w: %d of %d", ErrVertexRange, vertex, len(m.Records))
	}
	return m.MoveVertex(vertex, to)
}

// Subdivide splits triangle face of model at the local position at. Unlike
// ContextMenu, whose point always comes from a ray hit on the face, a
// scripted split takes at as given: the new vertex lands exactly there even
// when it lies off the face's plane or outside its edges, so a script can
// pull the fan apex out of the surface in one step.
func (e *Editor) Subdivide(modelIndex, face int, at v3.Vec) error {
	m, err := e.Model(modelIndex)
	if err != nil {
		return err
	}
	if face < 0 || face >= m.TriangleCount() {
		return fmt.Errorf("%w: %d of %d", ErrFaceRange, face, m.TriangleCount())
	}
	return e.split(modelIndex, scene.FaceAt(face), at)
}
