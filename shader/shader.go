// Package shader holds the flat-color mesh render stage: the WGSL
// vertex/fragment pair, its GPU binding contract, and a pure-Go reference
// implementation of the stage semantics.
//
// The binding contract is fixed:
//
//	group 0, binding 0   camera uniform, mat4x4<f32>, 64 bytes column-major
//	location 0           vertex position, float32x3
//	location 1           vertex color, float32x3
//	entry points         vs_main / fs_main
//	color attachment 0   RGBA, alpha always 1.0
//
// Hosts creating a pipeline against this stage must declare exactly this
// layout; a mismatch surfaces as a pipeline-creation error in the host's
// graphics API, not here.
package shader

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/wgsl"

	"github.com/Noxitanius/govoxel"
)

// Embedded WGSL source for the mesh render stage.

//go:embed shaders/mesh.wgsl
var meshShaderSource string

// Entry point names consumed by the host's pipeline-creation call.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Binding slots of the stage's external interface.
const (
	// CameraGroup and CameraBinding locate the camera uniform.
	CameraGroup   = 0
	CameraBinding = 0

	// PositionLocation and ColorLocation are the vertex attribute slots.
	PositionLocation = 0
	ColorLocation    = 1
)

// CameraUniformSize is the byte size of the camera uniform buffer.
// Layout: view_proj (mat4x4<f32>) = 64 bytes, column-major.
const CameraUniformSize = 64

// Source returns the WGSL source of the render stage.
func Source() string {
	return meshShaderSource
}

// CameraUniform is the per-draw camera data, a combined view-projection
// transform. The host uploads it before any draw that reads it; the stage
// only ever reads it. No validation is performed: a malformed matrix
// produces garbage geometry, not an error.
type CameraUniform struct {
	ViewProj govoxel.Mat4
}

// Bytes packs the uniform into its 64-byte little-endian GPU layout,
// column-major as WGSL expects.
func (u *CameraUniform) Bytes() []byte {
	buf := make([]byte, CameraUniformSize)
	off := 0
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(u.ViewProj[c][r]))
			off += 4
		}
	}
	return buf
}

// VertexLayout returns the vertex buffer layout of the stage:
// float32x3 position at location 0, float32x3 color at location 1,
// 24-byte stride.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: govoxel.VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: PositionLocation,
			},
			{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         12,
				ShaderLocation: ColorLocation,
			},
		},
	}
}

// CameraBindGroupLayoutEntries returns the bind group layout entries for
// group 0: one uniform buffer at binding 0, visible to the vertex stage.
func CameraBindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    CameraBinding,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
}

// Validate parses and lowers the embedded WGSL through naga's front end,
// confirming the shader is well-formed. Useful as a startup sanity check
// for hosts that compile the source themselves.
func Validate() error {
	lexer := wgsl.NewLexer(meshShaderSource)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return fmt.Errorf("shader: tokenize: %w", err)
	}

	parser := wgsl.NewParser(tokens)
	ast, err := parser.Parse()
	if err != nil {
		return fmt.Errorf("shader: parse: %w", err)
	}

	if _, err := wgsl.Lower(ast); err != nil {
		return fmt.Errorf("shader: lower: %w", err)
	}
	return nil
}

// CompileSPIRV compiles the embedded WGSL to SPIR-V words for backends
// that consume SPIR-V instead of WGSL source.
func CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(meshShaderSource)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
