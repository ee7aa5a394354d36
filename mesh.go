package govoxel

import (
	"encoding/binary"
	"math"
)

// VertexStride is the byte size of one packed vertex:
// position (3 x float32) + color (3 x float32) = 24 bytes.
const VertexStride = 24

// IndexSize is the byte size of one index (uint32).
const IndexSize = 4

// Vertex is one element of the vertex stream consumed by the render stage:
// a position in world space and a flat color, both 3 x float32.
// Color components are conventionally in [0, 1] but are not clamped;
// the stage passes them through untouched.
type Vertex struct {
	Pos   [3]float32
	Color [3]float32
}

// Mesh is an indexed triangle list. Indices address Vertices in groups of
// three; winding is counter-clockwise viewed from outside.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has nothing to draw.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// Append adds all geometry of other to m, rebasing other's indices onto
// m's vertex array.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// VertexBytes packs the vertex stream into the little-endian byte layout
// the GPU vertex buffer expects: x y z r g b per vertex, float32 each.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	off := 0
	for _, v := range m.Vertices {
		putFloat32(buf[off:], v.Pos[0])
		putFloat32(buf[off+4:], v.Pos[1])
		putFloat32(buf[off+8:], v.Pos[2])
		putFloat32(buf[off+12:], v.Color[0])
		putFloat32(buf[off+16:], v.Color[1])
		putFloat32(buf[off+20:], v.Color[2])
		off += VertexStride
	}
	return buf
}

// IndexBytes packs the index list as little-endian uint32 words.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*IndexSize)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*IndexSize:], idx)
	}
	return buf
}

// Unrolled returns the vertex stream with indices expanded into a plain
// triangle list, for backends that draw non-indexed.
func (m *Mesh) Unrolled() []Vertex {
	out := make([]Vertex, len(m.Indices))
	for i, idx := range m.Indices {
		out[i] = m.Vertices[idx]
	}
	return out
}

func putFloat32(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}
