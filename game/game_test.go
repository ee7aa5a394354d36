package game

import (
	"testing"

	"github.com/Noxitanius/govoxel/world"
)

func TestTickLandsOnFloor(t *testing.T) {
	g := New()
	for range 10 {
		g.Tick(InputState{})
	}
	p := g.Player()
	if !p.OnGround {
		t.Error("player should have landed")
	}
	if !f32Eq(p.Pos.Y, 1.0) {
		t.Errorf("resting y = %v, want 1.0 (on top of the floor)", p.Pos.Y)
	}
	if !f32Eq(p.VelY, 0) {
		t.Errorf("resting vy = %v, want 0", p.VelY)
	}
}

func TestJump(t *testing.T) {
	g := New()
	g.Tick(InputState{}) // settle on the floor

	g.Tick(InputState{Jump: true})
	p := g.Player()
	if p.OnGround {
		t.Error("player should be airborne after jumping")
	}
	if p.Pos.Y <= 1.0 {
		t.Errorf("y = %v, want above the floor", p.Pos.Y)
	}

	// Falls back down eventually.
	for range 40 {
		g.Tick(InputState{})
	}
	if !g.Player().OnGround {
		t.Error("player should land again")
	}
}

func TestMovementStopsAtWall(t *testing.T) {
	g := New()
	// Spawn faces +Z, straight at the stone wall at z=8.
	g.Player().Pitch = 0

	for range 60 {
		g.Tick(InputState{MoveFwd: true})
	}
	_, z := g.PlayerXZ()
	if z >= 7.7 {
		t.Errorf("z = %v, hitbox should stop short of the wall at 8", z)
	}
	if z < 7.0 {
		t.Errorf("z = %v, player should have walked up to the wall", z)
	}
}

func TestStepUpOverLowLedge(t *testing.T) {
	g := New()
	g.World().Set(3, 1, 4, world.Dirt)
	g.Player().Pitch = 0
	// Slightly above the ledge so the step height can clear it.
	g.Player().Pos.Y = 1.6

	g.applyMovement(InputState{MoveFwd: true})
	p := g.Player()
	if p.Pos.Y <= 1.6 {
		t.Errorf("y = %v, expected a step up", p.Pos.Y)
	}
	if p.Pos.Z <= 3.5 {
		t.Errorf("z = %v, expected forward motion with the step", p.Pos.Z)
	}
}

func TestTargetBlockLookingDown(t *testing.T) {
	g := New()
	g.Player().Pitch = pitchLimit // nearly straight down

	x, y, z, ok := g.TargetBlock()
	if !ok {
		t.Fatal("expected to target the floor")
	}
	if x != 3 || y != 0 || z != 3 {
		t.Errorf("target = (%d,%d,%d), want (3,0,3)", x, y, z)
	}
}

func TestBreakBlock(t *testing.T) {
	g := New()
	g.Player().Pitch = pitchLimit

	g.Tick(InputState{BreakBlock: true})
	if b, _ := g.World().Get(3, 0, 3); b != world.Air {
		t.Errorf("block under player = %v, want Air after break", b)
	}
}

func TestPlaceBlockAgainstWall(t *testing.T) {
	g := New()
	// Eye at (3.5, 1.9, 3.5) looking level along +Z into the wall.
	g.Player().Pitch = 0

	g.Tick(InputState{PlaceBlock: true})
	// The ray enters the wall cell (3,1,8) through its -Z face.
	if b, _ := g.World().Get(3, 1, 7); b != world.Stone {
		t.Errorf("placed block = %v, want Stone at (3,1,7)", b)
	}
}

func TestNoTargetProducesNoEdit(t *testing.T) {
	g := New()
	g.Player().Pitch = -pitchLimit // looking straight up at the sky

	age := g.World().Age()
	g.Tick(InputState{BreakBlock: true, PlaceBlock: true})
	if g.World().Age() != age+1 {
		t.Error("tick should still advance the world")
	}
	// Floor untouched.
	if b, _ := g.World().Get(3, 0, 3); b != world.Dirt {
		t.Errorf("floor = %v, want Dirt", b)
	}
}

func TestMeshIfDirty(t *testing.T) {
	g := New()

	first := g.MeshIfDirty()
	if first.IsEmpty() {
		t.Fatal("fresh world should produce geometry")
	}

	if m := g.MeshIfDirty(); m != nil {
		t.Error("unchanged world should return nil")
	}

	g.World().Break(8, 0, 8)
	second := g.MeshIfDirty()
	if second.IsEmpty() {
		t.Fatal("edit should trigger a remesh")
	}
	if len(second.Vertices) == len(first.Vertices) {
		t.Error("punching a hole in the floor should change the mesh")
	}
}

func TestCameraPose(t *testing.T) {
	g := New()
	eye, dir := g.CameraPose()
	if !f32Eq(eye.Y, g.Player().Pos.Y+0.9) {
		t.Errorf("eye y = %v", eye.Y)
	}
	if !f32Eq(dir.Len(), 1) {
		t.Errorf("dir length = %v, want 1", dir.Len())
	}
}

func TestClearOneShots(t *testing.T) {
	s := InputState{
		BreakBlock: true, PlaceBlock: true, Jump: true, ToggleMouseLock: true,
		MoveFwd: true, MoveLeft: true,
	}
	s.ClearOneShots()
	if s.BreakBlock || s.PlaceBlock || s.Jump || s.ToggleMouseLock {
		t.Error("one-shots should be cleared")
	}
	if !s.MoveFwd || !s.MoveLeft {
		t.Error("held keys should survive")
	}
}
