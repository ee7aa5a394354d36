package world

import (
	"sort"

	"github.com/Noxitanius/govoxel"
)

// World is a bounded voxel grid of Size^3 blocks with block coordinates in
// [0, Size). Blocks are stored in chunks so the mesher can rebuild only
// what changed.
//
// World is not safe for concurrent use; the game loop owns it.
type World struct {
	ageTicks uint64
	size     int

	chunks map[ChunkPos]*Chunk
	// order keeps chunk iteration deterministic for mesh assembly.
	order []ChunkPos
}

// DefaultSize is the edge length of the standard mini world.
const DefaultSize = 16

// New creates the standard 16x16x16 world with the seed terrain: a dirt
// floor at y=0 and a small stone wall at z=8, x∈[3,5], y∈[1,3].
func New() *World {
	w := NewSized(DefaultSize)

	for z := 0; z < w.size; z++ {
		for x := 0; x < w.size; x++ {
			w.Set(x, 0, z, Dirt)
		}
	}
	for y := 1; y <= 3; y++ {
		for x := 3; x <= 5; x++ {
			w.Set(x, y, 8, Stone)
		}
	}
	return w
}

// NewSized creates an empty world of the given edge length. Sizes that are
// not a multiple of ChunkSize are rounded up to whole chunks for storage
// but bounds-checked at the requested size.
func NewSized(size int) *World {
	if size < 1 {
		size = 1
	}
	w := &World{
		size:   size,
		chunks: make(map[ChunkPos]*Chunk),
	}

	chunksPerEdge := (size + ChunkSize - 1) / ChunkSize
	for cy := 0; cy < chunksPerEdge; cy++ {
		for cz := 0; cz < chunksPerEdge; cz++ {
			for cx := 0; cx < chunksPerEdge; cx++ {
				cp := ChunkPos{X: cx, Y: cy, Z: cz}
				w.chunks[cp] = NewChunk(cp)
				w.order = append(w.order, cp)
			}
		}
	}
	sort.Slice(w.order, func(i, j int) bool {
		a, b := w.order[i], w.order[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return w
}

// Tick advances the world clock by one simulation step.
func (w *World) Tick() {
	w.ageTicks++
}

// Age returns the number of ticks the world has lived.
func (w *World) Age() uint64 {
	return w.ageTicks
}

// Size returns the edge length in blocks.
func (w *World) Size() int {
	return w.size
}

// InBounds reports whether the block coordinate lies inside the world.
func (w *World) InBounds(x, y, z int) bool {
	return x >= 0 && x < w.size && y >= 0 && y < w.size && z >= 0 && z < w.size
}

// Get returns the block at (x, y, z). The second result is false outside
// the world bounds.
func (w *World) Get(x, y, z int) (Block, bool) {
	if !w.InBounds(x, y, z) {
		return Air, false
	}
	c := w.chunks[ChunkPos{X: ChunkCoord(x), Y: ChunkCoord(y), Z: ChunkCoord(z)}]
	return c.GetLocal(InChunk(x), InChunk(y), InChunk(z)), true
}

// Set stores a block at (x, y, z). Returns false (and does nothing) outside
// the world bounds.
func (w *World) Set(x, y, z int, b Block) bool {
	if !w.InBounds(x, y, z) {
		return false
	}
	c := w.chunks[ChunkPos{X: ChunkCoord(x), Y: ChunkCoord(y), Z: ChunkCoord(z)}]
	c.SetLocal(InChunk(x), InChunk(y), InChunk(z), b)
	govoxel.Logger().Debug("world: set block", "x", x, "y", y, "z", z, "block", b.String())
	return true
}

// Break replaces the block at (x, y, z) with air.
func (w *World) Break(x, y, z int) bool {
	return w.Set(x, y, z, Air)
}

// Place stores the given block at (x, y, z).
func (w *World) Place(x, y, z int, b Block) bool {
	return w.Set(x, y, z, b)
}

// IsSolid reports whether the coordinate holds a solid block. Out-of-bounds
// coordinates are not solid.
func (w *World) IsSolid(x, y, z int) bool {
	b, ok := w.Get(x, y, z)
	return ok && b.IsSolid()
}

// HighestSolid returns the topmost solid block in the (x, z) column, for
// the top-down debug view. The second result is false if the column is
// all air.
func (w *World) HighestSolid(x, z int) (Block, bool) {
	for y := w.size - 1; y >= 0; y-- {
		if b, ok := w.Get(x, y, z); ok && b.IsSolid() {
			return b, true
		}
	}
	return Air, false
}

// ChunkPositions returns all chunk grid positions in deterministic order.
func (w *World) ChunkPositions() []ChunkPos {
	out := make([]ChunkPos, len(w.order))
	copy(out, w.order)
	return out
}

// TakeChunkDirty returns and clears the dirty flag of the chunk at cp.
// Unknown positions report clean.
func (w *World) TakeChunkDirty(cp ChunkPos) bool {
	c, ok := w.chunks[cp]
	if !ok {
		return false
	}
	return c.TakeDirty()
}
