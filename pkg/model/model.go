// Package model assembles an editable model from a surface buffer: the
// filled surface, its wireframe outline, one handle per welded vertex, and
// a normals overlay, together with the controller and propagator that let
// the handles reshape the surface.
//
// A model is built once from its buffer and never restructured. Operations
// that change the triangle count, such as subdivision, dispose the model
// and build a new one.
package model

import (
	"fmt"
	"log/slog"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/buffer"
	"github.com/chazu/facet/pkg/control"
	"github.com/chazu/facet/pkg/deform"
	"github.com/chazu/facet/pkg/scene"
	"github.com/chazu/facet/pkg/weld"
)

// indexedWeldThreshold is the surface sample count above which the spatial
// hash is used for welding.
const indexedWeldThreshold = 4096

// Config carries the collaborators a model is wired to.
type Config struct {
	Camera        *scene.Camera
	Element       control.Element
	HandleSize    float64
	NormalsLength float64
	Logger        *slog.Logger
}

// Model is one editable shape.
type Model struct {
	Group   *scene.Node
	Surface *scene.Node
	Outline *scene.Node
	Handles *scene.Node
	Overlay *scene.Node

	Records    []*weld.Record
	Controller *control.Controller
	Propagator *deform.Propagator

	editing  bool
	disposed bool
	logger   *slog.Logger
}

// New builds a model over positions, a non-indexed triangle buffer. The
// buffer is owned by the model afterwards. The model starts in object mode
// with normals hidden.
func New(name string, positions []float64, cfg Config) (*Model, error) {
	if len(positions) == 0 || len(positions)%buffer.TriangleSize != 0 {
		return nil, fmt.Errorf("model: %d scalars do not form whole triangles", len(positions))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	surface := buffer.NewSurface(positions)
	outline := buffer.NewLines(buffer.Wireframe(positions))
	overlay := buffer.NewLines(buffer.NormalLines(positions, surface.Normal.Array(), cfg.NormalsLength, nil))

	m := &Model{
		Group:   scene.NewGroup(name),
		Surface: scene.NewSurface("surface", surface),
		Outline: scene.NewOutline("outline", outline),
		Handles: scene.NewGroup("handles"),
		Overlay: scene.NewOverlay("normals", overlay),
		logger:  logger.With("model", name),
	}
	m.Group.Add(m.Surface)
	m.Group.Add(m.Outline)
	m.Group.Add(m.Handles)
	m.Group.Add(m.Overlay)

	if len(positions) > indexedWeldThreshold {
		m.Records = weld.BuildIndexed(surface.Position.Array(), outline.Position.Array())
	} else {
		m.Records = weld.Build(surface.Position.Array(), outline.Position.Array())
	}
	if n := weld.Dropped(m.Records, outline.Position.Array()); n > 0 {
		m.logger.Warn("outline samples matched no vertex", "dropped", n)
	}

	handles := make([]*scene.Node, len(m.Records))
	for i, r := range m.Records {
		handles[i] = NewHandle(i, r, cfg.HandleSize)
		m.Handles.Add(handles[i])
	}

	m.Controller = control.New(handles, cfg.Camera, cfg.Element, []*scene.Node{m.Surface})
	m.Propagator = deform.New(surface, outline.Position, overlay, cfg.NormalsLength)
	m.Propagator.Bind(m.Controller)

	m.SetEditMode(false)
	m.SetShowNormals(false)

	m.logger.Debug("model built",
		"triangles", surface.TriangleCount(),
		"vertices", len(m.Records),
	)
	return m, nil
}

// Positions returns the live surface buffer.
func (m *Model) Positions() []float64 {
	return m.Surface.Geometry.Position.Array()
}

// HandleNodes returns the vertex handles in record order.
func (m *Model) HandleNodes() []*scene.Node {
	return m.Handles.Children()
}

// TriangleCount returns the number of surface triangles.
func (m *Model) TriangleCount() int {
	return m.Surface.Geometry.TriangleCount()
}

// SetEditMode shows the outline and handles and enables dragging, or hides
// them and disables dragging. Leaving edit mode ends any drag in progress.
func (m *Model) SetEditMode(on bool) {
	if !on {
		m.Controller.Cancel()
	}
	m.editing = on
	m.Outline.Visible = on
	m.Handles.Visible = on
	m.Controller.SetEnabled(on)
}

// Editing reports whether the model is in edit mode.
func (m *Model) Editing() bool {
	return m.editing
}

// SetShowNormals toggles the normals overlay.
func (m *Model) SetShowNormals(on bool) {
	m.Overlay.Visible = on
}

// MoveVertex moves handle i to the local position to and propagates the
// change, exactly as a drag ending at to would.
func (m *Model) MoveVertex(i int, to v3.Vec) error {
	handles := m.HandleNodes()
	if i < 0 || i >= len(handles) {
		return fmt.Errorf("model: vertex %d out of range [0,%d)", i, len(handles))
	}
	h := handles[i]
	h.Position = to
	m.Propagator.Apply(h)
	return nil
}

// Dispose detaches the controller and propagator, releases every buffer,
// and removes the model from its parent. It is safe to call twice.
func (m *Model) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true

	m.Controller.Cancel()
	m.Controller.Dispose()
	m.Propagator.Unbind()

	m.Surface.Dispose()
	m.Outline.Dispose()
	m.Overlay.Dispose()
	for _, h := range m.HandleNodes() {
		h.Dispose()
	}
	if p := m.Group.Parent(); p != nil {
		p.Remove(m.Group)
	}
	m.Group.Dispose()
	m.logger.Debug("model disposed")
}

// Disposed reports whether Dispose has been called.
func (m *Model) Disposed() bool {
	return m.disposed
}
