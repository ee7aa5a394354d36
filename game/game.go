package game

import (
	"math"

	"github.com/Noxitanius/govoxel"
	"github.com/Noxitanius/govoxel/world"
)

// Simulation constants. The game runs at a fixed 20 ticks per second.
const (
	TickRate = 20
	dt       = 1.0 / float32(TickRate)

	moveSpeed  = 4.0  // blocks per second
	gravity    = 18.0 // blocks per second^2
	jumpSpeed  = 7.0
	stepHeight = 0.51 // just over half a block

	// Player hitbox, axis-aligned around the feet position.
	hitboxHalfW  = 0.3
	hitboxHeight = 1.8

	// Maximum block targeting distance in blocks.
	reach = 20.0
)

// Game owns the world, the player, and the per-chunk mesh cache. Advance it
// with Tick at a fixed rate and read the camera pose and combined mesh for
// rendering.
type Game struct {
	tick     uint64
	world    *world.World
	player   *Player
	commands []Command
	meshes   map[world.ChunkPos]*govoxel.Mesh
}

// New builds a game over a freshly seeded world.
func New() *Game {
	return NewWithWorld(world.New())
}

// NewWithWorld builds a game over the given world. The caller keeps no
// ownership of w; all further edits go through the game.
func NewWithWorld(w *world.World) *Game {
	return &Game{
		world:  w,
		player: NewPlayer(),
		meshes: make(map[world.ChunkPos]*govoxel.Mesh),
	}
}

// LookDelta applies a mouse-look delta. Vertical motion is inverted so that
// pushing forward looks up.
func (g *Game) LookDelta(dx, dy float32) {
	g.player.AddLook(dx, -dy)
}

// Tick advances the simulation by one fixed step: movement, vertical
// physics, block targeting, then queued world edits.
func (g *Game) Tick(input InputState) {
	g.tick++
	g.world.Tick()

	g.applyMovement(input)
	g.applyVerticalPhysics(input)

	if g.tick%TickRate == 0 {
		govoxel.Logger().Debug("player state",
			"x", g.player.Pos.X, "y", g.player.Pos.Y, "z", g.player.Pos.Z,
			"vy", g.player.VelY, "ground", g.player.OnGround)
	}

	g.applyInput(input)
	g.drainCommands()
}

// applyMovement moves the player in the horizontal plane from the held
// movement keys, testing each axis separately so sliding along walls works.
func (g *Game) applyMovement(input InputState) {
	step := float32(moveSpeed) * dt

	dir := g.player.Dir()
	fwdX, fwdZ := dir.X, dir.Z
	if l := sqrt32(fwdX*fwdX + fwdZ*fwdZ); l > 1e-4 {
		fwdX /= l
		fwdZ /= l
	}
	// Right vector is forward rotated 90 degrees in the plane.
	rightX, rightZ := fwdZ, -fwdX

	var mx, mz float32
	if input.MoveFwd {
		mx += fwdX
		mz += fwdZ
	}
	if input.MoveBack {
		mx -= fwdX
		mz -= fwdZ
	}
	if input.MoveRight {
		mx += rightX
		mz += rightZ
	}
	if input.MoveLeft {
		mx -= rightX
		mz -= rightZ
	}

	// Normalize so diagonals are not faster.
	l := sqrt32(mx*mx + mz*mz)
	if l <= 1e-4 {
		return
	}
	mx /= l
	mz /= l

	targetX := g.player.Pos.X + mx*step
	targetZ := g.player.Pos.Z + mz*step

	if !g.collidesAt(targetX, g.player.Pos.Y, g.player.Pos.Z) {
		g.player.Pos.X = targetX
	} else {
		g.tryStepUp(targetX, g.player.Pos.Z)
	}

	if !g.collidesAt(g.player.Pos.X, g.player.Pos.Y, targetZ) {
		g.player.Pos.Z = targetZ
	} else {
		g.tryStepUp(g.player.Pos.X, targetZ)
	}
}

// applyVerticalPhysics handles jumping, gravity, and landing.
func (g *Game) applyVerticalPhysics(input InputState) {
	if input.Jump && g.player.OnGround {
		g.player.VelY = jumpSpeed
		g.player.OnGround = false
	}

	g.player.VelY -= gravity * dt

	newY := g.player.Pos.Y + g.player.VelY*dt
	if !g.collidesAt(g.player.Pos.X, newY, g.player.Pos.Z) {
		g.player.Pos.Y = newY
		g.player.OnGround = false
		return
	}

	if g.player.VelY < 0 {
		g.player.OnGround = true
	}
	g.player.VelY = 0

	// Nudge up if rounding left the hitbox intersecting the floor.
	y := g.player.Pos.Y
	for range 5 {
		if !g.collidesAt(g.player.Pos.X, y, g.player.Pos.Z) {
			break
		}
		y += 0.01
	}
	g.player.Pos.Y = y
}

// collidesAt reports whether the player hitbox at the given feet position
// overlaps any solid block.
func (g *Game) collidesAt(px, py, pz float32) bool {
	x0 := floorInt(px - hitboxHalfW)
	x1 := floorInt(px + hitboxHalfW)
	y0 := floorInt(py)
	y1 := floorInt(py + hitboxHeight)
	z0 := floorInt(pz - hitboxHalfW)
	z1 := floorInt(pz + hitboxHalfW)

	for y := y0; y <= y1; y++ {
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				if g.world.IsSolid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// tryStepUp lifts the player over a single low obstacle when the space above
// and the lifted target position are both free.
func (g *Game) tryStepUp(newX, newZ float32) bool {
	yUp := g.player.Pos.Y + stepHeight
	if g.collidesAt(g.player.Pos.X, yUp, g.player.Pos.Z) {
		return false
	}
	if g.collidesAt(newX, yUp, newZ) {
		return false
	}
	g.player.Pos.Y = yUp
	g.player.Pos.X = newX
	g.player.Pos.Z = newZ
	return true
}

// applyInput turns break/place actions into queued commands against the
// block the player is looking at.
func (g *Game) applyInput(input InputState) {
	hit, ok := g.world.Raycast(g.player.EyePos(), g.player.Dir(), reach)
	if !ok {
		if input.BreakBlock || input.PlaceBlock {
			govoxel.Logger().Debug("input: no target")
		}
		return
	}

	if input.BreakBlock {
		g.commands = append(g.commands, Command{
			Kind: CommandBreak,
			X:    hit.X, Y: hit.Y, Z: hit.Z,
		})
		govoxel.Logger().Debug("input: break",
			"block", hit.Block, "x", hit.X, "y", hit.Y, "z", hit.Z)
	}

	if input.PlaceBlock {
		// Place against the face the ray entered through.
		x := hit.X + hit.Normal[0]
		y := hit.Y + hit.Normal[1]
		z := hit.Z + hit.Normal[2]
		g.commands = append(g.commands, Command{
			Kind: CommandPlace,
			X:    x, Y: y, Z: z,
			Block: world.Stone,
		})
		govoxel.Logger().Debug("input: place",
			"block", world.Stone, "x", x, "y", y, "z", z)
	}
}

func (g *Game) drainCommands() {
	for _, cmd := range g.commands {
		switch cmd.Kind {
		case CommandBreak:
			ok := g.world.Break(cmd.X, cmd.Y, cmd.Z)
			govoxel.Logger().Debug("cmd break",
				"x", cmd.X, "y", cmd.Y, "z", cmd.Z, "ok", ok)
		case CommandPlace:
			ok := g.world.Place(cmd.X, cmd.Y, cmd.Z, cmd.Block)
			govoxel.Logger().Debug("cmd place",
				"block", cmd.Block, "x", cmd.X, "y", cmd.Y, "z", cmd.Z, "ok", ok)
		}
	}
	g.commands = g.commands[:0]
}

// MeshIfDirty remeshes dirty or missing chunks and, when anything changed,
// returns the combined world mesh. It returns nil when the cached geometry
// is still current, so callers can keep their previous upload.
func (g *Game) MeshIfDirty() *govoxel.Mesh {
	cps := g.world.ChunkPositions()

	changed := false
	for _, cp := range cps {
		wasDirty := g.world.TakeChunkDirty(cp)
		_, cached := g.meshes[cp]
		if wasDirty || !cached {
			g.meshes[cp] = world.MeshChunk(g.world, cp)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	combined := &govoxel.Mesh{}
	for _, cp := range cps {
		if m, ok := g.meshes[cp]; ok {
			combined.Append(m)
		}
	}
	return combined
}

// CameraPose returns the eye position and view direction for the renderer.
func (g *Game) CameraPose() (eye, dir govoxel.Vec3) {
	return g.player.EyePos(), g.player.Dir()
}

// TargetBlock returns the coordinates of the block the player is looking
// at, if any is within reach.
func (g *Game) TargetBlock() (x, y, z int, ok bool) {
	hit, ok := g.world.Raycast(g.player.EyePos(), g.player.Dir(), reach)
	if !ok {
		return 0, 0, 0, false
	}
	return hit.X, hit.Y, hit.Z, true
}

// Player returns the live player for inspection. Mutate through the game's
// methods, not directly.
func (g *Game) Player() *Player { return g.player }

// World returns the simulated world.
func (g *Game) World() *world.World { return g.world }

// WorldSize returns the world edge length in blocks.
func (g *Game) WorldSize() int { return g.world.Size() }

// PlayerXZ returns the player's horizontal position for map overlays.
func (g *Game) PlayerXZ() (x, z float32) {
	return g.player.Pos.X, g.player.Pos.Z
}

// PlayerDirXZ returns the horizontal view direction for map overlays.
func (g *Game) PlayerDirXZ() (dx, dz float32) {
	d := g.player.Dir()
	return d.X, d.Z
}

// HighestSolid returns the topmost solid block in the column, scanning from
// the top of the world down.
func (g *Game) HighestSolid(x, z int) (world.Block, bool) {
	return g.world.HighestSolid(x, z)
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func floorInt(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}
