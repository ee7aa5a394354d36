package world

import (
	"math"

	"github.com/Noxitanius/govoxel"
)

// RayHit describes the first solid block found along a ray: the block
// coordinate, the block itself, and the normal of the entered face (one of
// the six axis directions, or zero when the ray started inside a solid
// block).
type RayHit struct {
	X, Y, Z int
	Block   Block
	Normal  [3]int
}

// Raycast walks the voxel grid from start along dir, up to maxDist, and
// returns the first solid block hit. Uses the Amanatides & Woo traversal:
// step one voxel boundary at a time along whichever axis crossing is
// nearest. A zero direction finds nothing, as does a ray leaving the
// world bounds.
func (w *World) Raycast(start, dir govoxel.Vec3, maxDist float32) (RayHit, bool) {
	if dir.X == 0 && dir.Y == 0 && dir.Z == 0 {
		return RayHit{}, false
	}

	vx := int(floor32(start.X))
	vy := int(floor32(start.Y))
	vz := int(floor32(start.Z))

	stepX := sign(dir.X)
	stepY := sign(dir.Y)
	stepZ := sign(dir.Z)

	invX := invAbs(dir.X)
	invY := invAbs(dir.Y)
	invZ := invAbs(dir.Z)

	tMaxX := boundaryDist(start.X, vx, stepX) * invX
	tMaxY := boundaryDist(start.Y, vy, stepY) * invY
	tMaxZ := boundaryDist(start.Z, vz, stepZ) * invZ

	// Starting inside a solid block hits immediately with no entry face.
	b, ok := w.Get(vx, vy, vz)
	if !ok {
		return RayHit{}, false
	}
	if b.IsSolid() {
		return RayHit{X: vx, Y: vy, Z: vz, Block: b}, true
	}

	var t float32
	var normal [3]int

	for t <= maxDist {
		switch {
		case tMaxX < tMaxY && tMaxX < tMaxZ:
			vx += stepX
			t = tMaxX
			tMaxX += invX
			normal = [3]int{-stepX, 0, 0}
		case tMaxY < tMaxZ:
			vy += stepY
			t = tMaxY
			tMaxY += invY
			normal = [3]int{0, -stepY, 0}
		default:
			vz += stepZ
			t = tMaxZ
			tMaxZ += invZ
			normal = [3]int{0, 0, -stepZ}
		}

		b, ok := w.Get(vx, vy, vz)
		if !ok {
			return RayHit{}, false
		}
		if b.IsSolid() {
			return RayHit{X: vx, Y: vy, Z: vz, Block: b, Normal: normal}, true
		}
	}

	return RayHit{}, false
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// invAbs returns 1/|v|, or +Inf for zero so that axis never wins the
// nearest-crossing comparison.
func invAbs(v float32) float32 {
	if v == 0 {
		return float32(math.Inf(1))
	}
	return 1 / float32(math.Abs(float64(v)))
}

// boundaryDist returns the distance from p to the next voxel boundary in
// the step direction, in whole-axis units.
func boundaryDist(p float32, voxel, step int) float32 {
	if step > 0 {
		return float32(voxel+1) - p
	}
	if step < 0 {
		return p - float32(voxel)
	}
	return float32(math.Inf(1))
}
