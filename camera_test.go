package govoxel

import (
	"math"
	"testing"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if !f32Eq(c.FovY, float32(70.0*math.Pi/180.0)) {
		t.Errorf("FovY = %v", c.FovY)
	}
	if c.ZNear != 0.05 || c.ZFar != 200.0 {
		t.Errorf("clip planes = %v..%v, want 0.05..200", c.ZNear, c.ZFar)
	}
}

func TestViewProjCentersTarget(t *testing.T) {
	// A point straight ahead of the eye projects to the center of the
	// viewport (x=y=0 after perspective divide) with depth in (0,1).
	c := NewCamera()
	eye := V3(3.5, 1.9, 3.5)
	dir := V3(0, 0, 1)

	vp := c.ViewProj(eye, dir, 800, 600)
	clip := vp.TransformPoint(eye.Add(dir.Scale(10)))

	if clip.W <= 0 {
		t.Fatalf("point ahead has non-positive W = %v", clip.W)
	}
	if !f32Eq(clip.X/clip.W, 0) || !f32Eq(clip.Y/clip.W, 0) {
		t.Errorf("projected center = (%v, %v), want origin",
			clip.X/clip.W, clip.Y/clip.W)
	}
	depth := clip.Z / clip.W
	if depth <= 0 || depth >= 1 {
		t.Errorf("depth = %v, want in (0, 1)", depth)
	}
}

func TestViewProjBehindEyeCulled(t *testing.T) {
	c := NewCamera()
	eye := V3(0, 0, 0)
	dir := V3(0, 0, -1)

	// A point behind the eye gets negative W: outside the view volume.
	clip := c.ViewProj(eye, dir, 640, 480).TransformPoint(V3(0, 0, 5))
	if clip.W >= 0 {
		t.Errorf("behind-eye W = %v, want negative", clip.W)
	}
}

func TestViewProjZeroViewport(t *testing.T) {
	// Minimized windows report zero dimensions; the aspect must stay finite.
	c := NewCamera()
	vp := c.ViewProj(V3(0, 0, 0), V3(0, 0, -1), 0, 0)

	clip := vp.TransformPoint(V3(0, 0, -1))
	if math.IsNaN(float64(clip.X)) || math.IsInf(float64(clip.X), 0) {
		t.Errorf("zero viewport produced non-finite clip.X = %v", clip.X)
	}
}
