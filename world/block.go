// Package world holds the voxel grid: blocks, chunks, raycasting, and the
// face-culling mesher that turns chunks into flat-colored triangle meshes.
package world

// Block identifies a voxel type. The zero value is Air.
type Block uint8

// Block types.
const (
	Air Block = iota
	Dirt
	Stone
)

// IsSolid reports whether the block occupies space for collision and
// occlusion purposes.
func (b Block) IsSolid() bool {
	return b != Air
}

// Color returns the flat render color of the block. Air is never rendered;
// its color is black.
func (b Block) Color() [3]float32 {
	switch b {
	case Dirt:
		return [3]float32{0.55, 0.40, 0.20}
	case Stone:
		return [3]float32{0.60, 0.60, 0.60}
	default:
		return [3]float32{0, 0, 0}
	}
}

// String returns the block name for logs and debug output.
func (b Block) String() string {
	switch b {
	case Air:
		return "Air"
	case Dirt:
		return "Dirt"
	case Stone:
		return "Stone"
	default:
		return "Unknown"
	}
}
