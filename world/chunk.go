package world

// ChunkSize is the edge length of a cubic chunk in blocks.
const ChunkSize = 16

// ChunkVolume is the number of blocks in one chunk.
const ChunkVolume = ChunkSize * ChunkSize * ChunkSize

// ChunkPos is a coordinate in the chunk grid (not in block coordinates).
type ChunkPos struct {
	X, Y, Z int
}

// ChunkCoord converts a block coordinate to its chunk grid coordinate,
// flooring correctly for negatives.
func ChunkCoord(v int) int {
	return floorDiv(v, ChunkSize)
}

// InChunk converts a block coordinate to its local coordinate within the
// chunk, always in [0, ChunkSize).
func InChunk(v int) int {
	return posMod(v, ChunkSize)
}

// chunkIndex linearizes local coordinates in [0, ChunkSize) to [0, ChunkVolume).
// Layout: X runs fastest, then Z, then Y.
func chunkIndex(lx, ly, lz int) int {
	return lx + lz*ChunkSize + ly*ChunkSize*ChunkSize
}

// Chunk is a fixed 16^3 cube of blocks with a dirty flag tracking whether
// its mesh needs rebuilding.
type Chunk struct {
	Pos    ChunkPos
	blocks [ChunkVolume]Block
	dirty  bool
}

// NewChunk creates an all-air chunk at the given chunk grid position,
// marked dirty so its (empty) mesh gets built once.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{Pos: pos, dirty: true}
}

// GetLocal returns the block at local coordinates.
func (c *Chunk) GetLocal(lx, ly, lz int) Block {
	return c.blocks[chunkIndex(lx, ly, lz)]
}

// SetLocal stores a block at local coordinates and marks the chunk dirty.
func (c *Chunk) SetLocal(lx, ly, lz int, b Block) {
	c.blocks[chunkIndex(lx, ly, lz)] = b
	c.dirty = true
}

// Dirty reports whether the chunk changed since the last TakeDirty.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// TakeDirty returns the dirty flag and clears it.
func (c *Chunk) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// floorDiv divides flooring toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// posMod returns a mod b, always non-negative for positive b.
func posMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
