package game

import (
	"math"
	"testing"
)

const testEps = 1e-5

func f32Eq(a, b float32) bool {
	return math.Abs(float64(a-b)) <= testEps
}

func TestPlayerSpawn(t *testing.T) {
	p := NewPlayer()
	if !f32Eq(p.Pos.X, 3.5) || !f32Eq(p.Pos.Y, 1.0) || !f32Eq(p.Pos.Z, 3.5) {
		t.Errorf("spawn pos = %v", p.Pos)
	}
	if !f32Eq(p.Pitch, 0.35) || !f32Eq(p.Yaw, 0) {
		t.Errorf("spawn angles yaw=%v pitch=%v", p.Yaw, p.Pitch)
	}
	if p.OnGround {
		t.Error("player should spawn airborne")
	}
}

func TestPlayerEyePos(t *testing.T) {
	p := NewPlayer()
	eye := p.EyePos()
	if !f32Eq(eye.Y, p.Pos.Y+0.9) {
		t.Errorf("eye y = %v, want feet+0.9", eye.Y)
	}
	if !f32Eq(eye.X, p.Pos.X) || !f32Eq(eye.Z, p.Pos.Z) {
		t.Errorf("eye xz = (%v,%v), want player xz", eye.X, eye.Z)
	}
}

func TestPlayerDir(t *testing.T) {
	p := &Player{}

	// Yaw 0, pitch 0 looks along +Z.
	d := p.Dir()
	if !f32Eq(d.X, 0) || !f32Eq(d.Y, 0) || !f32Eq(d.Z, 1) {
		t.Errorf("level dir = %v, want +Z", d)
	}

	// Yaw pi/2 looks along +X.
	p.Yaw = math.Pi / 2
	d = p.Dir()
	if !f32Eq(d.X, 1) || !f32Eq(d.Z, 0) {
		t.Errorf("yaw pi/2 dir = %v, want +X", d)
	}

	// Positive pitch looks down.
	p.Yaw = 0
	p.Pitch = 0.5
	if d := p.Dir(); d.Y >= 0 {
		t.Errorf("positive pitch should look down, got y=%v", d.Y)
	}

	// Direction stays unit length.
	p.Yaw = 1.3
	p.Pitch = -0.7
	if l := p.Dir().Len(); !f32Eq(l, 1) {
		t.Errorf("dir length = %v, want 1", l)
	}
}

func TestAddLookClampsPitch(t *testing.T) {
	p := &Player{}
	p.AddLook(0, 10)
	if !f32Eq(p.Pitch, pitchLimit) {
		t.Errorf("pitch = %v, want clamp at %v", p.Pitch, pitchLimit)
	}
	p.AddLook(0, -20)
	if !f32Eq(p.Pitch, -pitchLimit) {
		t.Errorf("pitch = %v, want clamp at %v", p.Pitch, -pitchLimit)
	}
	// Yaw is unbounded.
	p.AddLook(100, 0)
	if p.Yaw != 100 {
		t.Errorf("yaw = %v, want 100", p.Yaw)
	}
}
