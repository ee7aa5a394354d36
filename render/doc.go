// Package render draws voxel meshes to CPU or GPU targets.
//
// The package provides two interchangeable renderers behind the Renderer
// interface:
//
//   - SoftwareRenderer rasterizes on the CPU into a PixmapTarget. It runs
//     the same vertex and fragment stages as the GPU pipeline, with a
//     depth buffer and back-face culling, so output matches the GPU path.
//   - MeshRenderer drives a WebGPU device received from the host
//     application and renders through the compiled WGSL pipeline.
//
// A Frame carries everything a renderer needs for one image: the combined
// world mesh, the camera matrix, and the clear color.
//
// DebugView is a separate top-down map renderer for diagnostics; it draws
// the world columns, the targeted block, and the player onto any CPU
// target.
package render
