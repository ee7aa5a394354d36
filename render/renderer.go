package render

import (
	"github.com/Noxitanius/govoxel"
)

// DefaultClearColor is the sky color the renderers clear to when a frame
// does not override it.
var DefaultClearColor = [4]float32{0.1, 0.0, 0.2, 1.0}

// Frame is everything a renderer needs to draw one image: the combined
// world mesh, the camera matrix mapping world space to clip space, and the
// background color.
type Frame struct {
	// ViewProj is the combined view-projection matrix applied to every
	// vertex position.
	ViewProj govoxel.Mat4

	// Mesh is the indexed triangle list to draw. A nil or empty mesh
	// clears the target and draws nothing.
	Mesh *govoxel.Mesh

	// ClearColor overrides DefaultClearColor when HasClearColor is set.
	ClearColor    [4]float32
	HasClearColor bool
}

// Background returns the frame's effective clear color.
func (f *Frame) Background() [4]float32 {
	if f.HasClearColor {
		return f.ClearColor
	}
	return DefaultClearColor
}

// Renderer draws frames to a render target.
//
// Renderers are stateless between Render calls, allowing the same renderer
// to be used with different targets and frames. Renderers are NOT
// thread-safe; use one per goroutine or synchronize externally.
type Renderer interface {
	// Render draws the frame to the target. The frame is not modified and
	// can be rendered again to a different target.
	Render(target RenderTarget, frame *Frame) error

	// Flush ensures all pending rendering operations are complete. For
	// CPU renderers this is a no-op; for GPU renderers it submits and
	// waits for outstanding work.
	Flush() error
}
