package world

import (
	"github.com/Noxitanius/govoxel"
)

// MeshChunk builds the triangle mesh for a single chunk: one flat-colored
// quad for every solid block face whose neighbor is air or outside the
// world. Winding is counter-clockwise viewed from outside, so the render
// stage's back-face culling drops interior-facing geometry.
func MeshChunk(w *World, cp ChunkPos) *govoxel.Mesh {
	m := &govoxel.Mesh{}

	// Chunk origin in block coordinates.
	ox := cp.X * ChunkSize
	oy := cp.Y * ChunkSize
	oz := cp.Z * ChunkSize

	for ly := 0; ly < ChunkSize; ly++ {
		for lz := 0; lz < ChunkSize; lz++ {
			for lx := 0; lx < ChunkSize; lx++ {
				x := ox + lx
				y := oy + ly
				z := oz + lz

				b, ok := w.Get(x, y, z)
				if !ok || !b.IsSolid() {
					continue
				}

				col := b.Color()
				fx := float32(x)
				fy := float32(y)
				fz := float32(z)

				// +X
				if airAt(w, x+1, y, z) {
					pushFace(m, col,
						[3]float32{fx + 1, fy, fz},
						[3]float32{fx + 1, fy + 1, fz},
						[3]float32{fx + 1, fy + 1, fz + 1},
						[3]float32{fx + 1, fy, fz + 1},
					)
				}
				// -X
				if airAt(w, x-1, y, z) {
					pushFace(m, col,
						[3]float32{fx, fy, fz + 1},
						[3]float32{fx, fy + 1, fz + 1},
						[3]float32{fx, fy + 1, fz},
						[3]float32{fx, fy, fz},
					)
				}
				// +Y (top)
				if airAt(w, x, y+1, z) {
					pushFace(m, col,
						[3]float32{fx, fy + 1, fz},
						[3]float32{fx, fy + 1, fz + 1},
						[3]float32{fx + 1, fy + 1, fz + 1},
						[3]float32{fx + 1, fy + 1, fz},
					)
				}
				// -Y (bottom)
				if airAt(w, x, y-1, z) {
					pushFace(m, col,
						[3]float32{fx + 1, fy, fz},
						[3]float32{fx + 1, fy, fz + 1},
						[3]float32{fx, fy, fz + 1},
						[3]float32{fx, fy, fz},
					)
				}
				// +Z
				if airAt(w, x, y, z+1) {
					pushFace(m, col,
						[3]float32{fx + 1, fy, fz + 1},
						[3]float32{fx + 1, fy + 1, fz + 1},
						[3]float32{fx, fy + 1, fz + 1},
						[3]float32{fx, fy, fz + 1},
					)
				}
				// -Z
				if airAt(w, x, y, z-1) {
					pushFace(m, col,
						[3]float32{fx, fy, fz},
						[3]float32{fx, fy + 1, fz},
						[3]float32{fx + 1, fy + 1, fz},
						[3]float32{fx + 1, fy, fz},
					)
				}
			}
		}
	}

	return m
}

// airAt reports whether the coordinate is empty for face-culling purposes.
// Out-of-bounds counts as air so the world's outer surface gets faces.
func airAt(w *World, x, y, z int) bool {
	b, ok := w.Get(x, y, z)
	return !ok || !b.IsSolid()
}

// pushFace appends a quad as four vertices and two triangles
// (0,1,2) and (0,2,3).
func pushFace(m *govoxel.Mesh, color [3]float32, p0, p1, p2, p3 [3]float32) {
	base := uint32(len(m.Vertices))

	m.Vertices = append(m.Vertices,
		govoxel.Vertex{Pos: p0, Color: color},
		govoxel.Vertex{Pos: p1, Color: color},
		govoxel.Vertex{Pos: p2, Color: color},
		govoxel.Vertex{Pos: p3, Color: color},
	)
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}
