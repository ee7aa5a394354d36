package govoxel

import "math"

// Camera holds the projection parameters for the first-person view.
// The view half of the transform comes from the player's eye position and
// look direction at render time.
type Camera struct {
	// FovY is the vertical field of view in radians.
	FovY float32

	// ZNear is the near clip plane distance.
	ZNear float32

	// ZFar is the far clip plane distance.
	ZFar float32
}

// NewCamera returns a camera with the engine defaults: 70° vertical field
// of view, near plane at 0.05 blocks, far plane at 200 blocks.
func NewCamera() *Camera {
	return &Camera{
		FovY:  float32(70.0 * math.Pi / 180.0),
		ZNear: 0.05,
		ZFar:  200.0,
	}
}

// ViewProj builds the combined view-projection matrix for an eye at the
// given position looking along dir, for a viewport of the given pixel size.
// Zero dimensions are clamped to 1 so a minimized window never divides
// by zero.
func (c *Camera) ViewProj(eye, dir Vec3, width, height int) Mat4 {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	aspect := float32(width) / float32(height)

	view := LookAt(eye, eye.Add(dir), Vec3{Y: 1})
	proj := Perspective(c.FovY, aspect, c.ZNear, c.ZFar)

	return proj.Mul(view)
}
