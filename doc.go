// Package govoxel is a small voxel rendering engine for Go.
//
// # Overview
//
// govoxel renders flat-colored voxel worlds. The module is built around a
// single render stage: a vertex/fragment WGSL shader pair that transforms
// per-vertex positions by a camera view-projection matrix and passes
// per-vertex color through to the framebuffer. Everything else — the world,
// the chunk mesher, the game simulation, the renderers — exists to feed
// that stage.
//
// # Quick Start
//
//	g := game.New()
//	g.Tick(game.InputState{MoveFwd: true})
//
//	mesh := g.MeshIfDirty()
//	cam := govoxel.NewCamera()
//	eye, dir := g.CameraPose()
//
//	target := render.NewPixmapTarget(800, 600)
//	sr := render.NewSoftwareRenderer()
//	sr.Render(target, &render.Frame{
//	    ViewProj: cam.ViewProj(eye, dir, 800, 600),
//	    Mesh:     mesh,
//	})
//
// # Architecture
//
// The library is organized into:
//   - Root package: Vec3, Mat4 (column-major, wgpu clip conventions), Camera,
//     Vertex, Mesh
//   - shader: the WGSL render stage, its binding contract, and a pure-Go
//     reference of its semantics
//   - world: blocks, chunks, the voxel grid, raycasting, and the face-culling
//     mesher
//   - game: player movement, physics, input, and the chunk mesh cache
//   - render: render targets, the CPU rasterizing renderer, the wgpu-backed
//     mesh renderer, and the top-down debug view
//
// # Renderers
//
// The software renderer executes the shader stage on the CPU and needs no
// GPU at all. The GPU renderer receives a wgpu HAL device from the host
// application (it never creates one) and runs the identical WGSL through
// the hardware pipeline.
//
// # Coordinate System
//
// World space is right-handed with +Y up; one block is one unit. Clip space
// follows wgpu: Z in [0, 1], matrices column-major, clip = M · p with the
// matrix on the left.
package govoxel

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
