package govoxel

import "math"

// Mat4 represents a 4x4 transformation matrix in column-major order,
// matching the memory layout WGSL expects for mat4x4<f32>:
// m[c][r] is the element in column c, row r.
//
// The mathematical convention is clip = M · p with the matrix on the left
// and p a column vector.
type Mat4 [4][4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product m · b.
func (m Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c][row] = m[0][row]*b[c][0] +
				m[1][row]*b[c][1] +
				m[2][row]*b[c][2] +
				m[3][row]*b[c][3]
		}
	}
	return r
}

// MulVec4 returns the matrix-vector product m · v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z + m[3][0]*v.W,
		Y: m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z + m[3][1]*v.W,
		Z: m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z + m[3][2]*v.W,
		W: m[0][3]*v.X + m[1][3]*v.Y + m[2][3]*v.Z + m[3][3]*v.W,
	}
}

// TransformPoint applies m to the point p with an implicit W of 1,
// the standard homogeneous point transform.
func (m Mat4) TransformPoint(p Vec3) Vec4 {
	return m.MulVec4(Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
}

// Perspective returns a right-handed perspective projection with clip-space
// depth in [0, 1], the wgpu convention.
func Perspective(fovYRad, aspect, zNear, zFar float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovYRad)*0.5))
	nf := 1.0 / (zNear - zFar)

	return Mat4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, zFar * nf, -1},
		{0, 0, zFar * zNear * nf, 0},
	}
}

// LookAt returns a right-handed view matrix positioned at eye, looking
// toward center, with the given up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Norm()
	s := f.Cross(up).Norm()
	u := s.Cross(f)

	return Mat4{
		{s.X, u.X, -f.X, 0},
		{s.Y, u.Y, -f.Y, 0},
		{s.Z, u.Z, -f.Z, 0},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}
