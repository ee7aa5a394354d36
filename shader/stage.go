package shader

import "github.com/Noxitanius/govoxel"

// VSOut is the record the vertex stage hands to the rasterizer: a
// clip-space position and the untouched vertex color. The rasterizer
// interpolates it across each triangle before the fragment stage runs.
type VSOut struct {
	ClipPos govoxel.Vec4
	Color   [3]float32
}

// VertexStage is the reference implementation of vs_main: transform the
// vertex position into clip space by the camera matrix and forward the
// color unchanged.
//
// The function is total for any finite inputs and pure: no state survives
// between invocations, and invocations may run in any order. NaN or Inf
// inputs propagate per IEEE rules rather than erroring.
func VertexStage(viewProj govoxel.Mat4, v govoxel.Vertex) VSOut {
	return VSOut{
		ClipPos: viewProj.TransformPoint(govoxel.V3(v.Pos[0], v.Pos[1], v.Pos[2])),
		Color:   v.Color,
	}
}

// FragmentStage is the reference implementation of fs_main: emit the
// interpolated color at full opacity. Alpha is 1.0 unconditionally.
func FragmentStage(in VSOut) [4]float32 {
	return [4]float32{in.Color[0], in.Color[1], in.Color[2], 1.0}
}
