// Package game runs the fixed-rate simulation: player movement and physics,
// block targeting, edit commands, and the chunk mesh cache.
package game

import (
	"math"

	"github.com/Noxitanius/govoxel"
)

// pitchLimit keeps the view from flipping over the vertical (~89 degrees).
const pitchLimit = 1.55

// eyeHeight is the camera offset above the player's feet.
const eyeHeight = 0.9

// Player is the simulated avatar. Position is the feet; the camera sits
// EyeHeight above it.
type Player struct {
	Pos govoxel.Vec3

	// Yaw and Pitch are view angles in radians.
	Yaw   float32
	Pitch float32

	VelY     float32
	OnGround bool
}

// NewPlayer returns a player standing at the spawn point looking slightly
// downward.
func NewPlayer() *Player {
	return &Player{
		Pos:   govoxel.V3(3.5, 1.0, 3.5),
		Pitch: 0.35,
	}
}

// EyePos returns the camera position.
func (p *Player) EyePos() govoxel.Vec3 {
	return govoxel.V3(p.Pos.X, p.Pos.Y+eyeHeight, p.Pos.Z)
}

// Dir returns the unit view direction derived from yaw and pitch. Yaw zero
// looks along +Z; positive pitch looks down.
func (p *Player) Dir() govoxel.Vec3 {
	sy, cy := sincos(p.Yaw)
	sp, cp := sincos(p.Pitch)
	return govoxel.V3(sy*cp, -sp, cy*cp)
}

// AddLook applies a look delta and clamps pitch to pitchLimit.
func (p *Player) AddLook(deltaYaw, deltaPitch float32) {
	p.Yaw += deltaYaw
	p.Pitch += deltaPitch
	if p.Pitch > pitchLimit {
		p.Pitch = pitchLimit
	}
	if p.Pitch < -pitchLimit {
		p.Pitch = -pitchLimit
	}
}

func sincos(v float32) (sin, cos float32) {
	s, c := math.Sincos(float64(v))
	return float32(s), float32(c)
}
