package editor

import (
	"log/slog"

	"github.com/chazu/facet/pkg/control"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/kernel/poly"
	"github.com/chazu/facet/pkg/scene"
)

// Defaults for New.
const (
	// DefaultHandleSize is the handle pick radius per unit of distance from
	// the camera.
	DefaultHandleSize = 0.02
	// DefaultNormalsLength is the length of a normals overlay segment.
	DefaultNormalsLength = 0.2
	// DefaultWidth and DefaultHeight size the viewport until the host
	// reports its real size.
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Option configures an Editor during creation.
//
// Example:
//
//	ed := editor.New(
//	    editor.WithKernel(sdfx.New()),
//	    editor.WithLogger(slog.Default()),
//	)
type Option func(*options)

// options holds optional configuration for Editor creation.
type options struct {
	kernel        kernel.Kernel
	logger        *slog.Logger
	handleSize    float64
	normalsLength float64
	viewport      *control.Viewport
	camera        *scene.Camera
}

// defaultOptions returns the default editor options.
func defaultOptions() options {
	return options{
		handleSize:    DefaultHandleSize,
		normalsLength: DefaultNormalsLength,
	}
}

// WithKernel sets the kernel used by AddShape. The default is the exact
// polyhedron kernel.
func WithKernel(k kernel.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithLogger sets the logger. By default the editor produces no log
// output; pass nil to keep it silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHandleSize sets the handle pick radius for models added afterwards.
// Non-positive values are ignored.
func WithHandleSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.handleSize = size
		}
	}
}

// WithNormalsLength sets the normals overlay segment length. Non-positive
// values are ignored.
func WithNormalsLength(length float64) Option {
	return func(o *options) {
		if length > 0 {
			o.normalsLength = length
		}
	}
}

// WithViewport uses vp as the input element instead of a fresh
// DefaultWidth x DefaultHeight viewport.
func WithViewport(vp *control.Viewport) Option {
	return func(o *options) {
		o.viewport = vp
	}
}

// WithCamera uses cam instead of the default camera.
func WithCamera(cam *scene.Camera) Option {
	return func(o *options) {
		o.camera = cam
	}
}

func (o *options) fill() {
	if o.kernel == nil {
		o.kernel = poly.New()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.viewport == nil {
		o.viewport = control.NewViewport(control.Rect{Width: DefaultWidth, Height: DefaultHeight})
	}
	if o.camera == nil {
		o.camera = scene.NewCamera(aspectOf(o.viewport.Bounds()))
	}
}

func aspectOf(r control.Rect) float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 1
	}
	return r.Width / r.Height
}
