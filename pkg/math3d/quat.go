package math3d

import "math"

// Quat is a rotation quaternion w + xi + yj + zk.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns the rotation of angle radians about axis,
// counter-clockwise when looking down the axis toward the origin.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// QuatFromBasis returns the rotation whose matrix has x, y and z as its
// columns. The basis must be orthonormal and right-handed.
func QuatFromBasis(x, y, z Vec3) Quat {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	// Shepperd: pivot on the largest diagonal term to keep s well away from zero.
	switch trace := m00 + m11 + m22; {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		return Quat{W: s / 4, X: (m21 - m12) / s, Y: (m02 - m20) / s, Z: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		return Quat{W: (m21 - m12) / s, X: s / 4, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		return Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: s / 4, Z: (m12 + m21) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		return Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: s / 4}
	}
}

// LeftMat4 returns the matrix L with q*r = L·r, where r is laid out as the
// column (w, x, y, z).
func (q Quat) LeftMat4() Mat4 {
	return FromRows(
		[4]float64{q.W, -q.X, -q.Y, -q.Z},
		[4]float64{q.X, q.W, -q.Z, q.Y},
		[4]float64{q.Y, q.Z, q.W, -q.X},
		[4]float64{q.Z, -q.Y, q.X, q.W},
	)
}

// Mul returns the Hamilton product q*r: the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	v := q.LeftMat4().MulVec4(Vec4{r.W, r.X, r.Y, r.Z})
	return Quat{W: v.X, X: v.Y, Y: v.Z, Z: v.W}
}

// Inverse returns the conjugate, which is the inverse of a unit quaternion.
func (q Quat) Inverse() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Len returns the quaternion norm.
func (q Quat) Len() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns q scaled to unit length.
func (q Quat) Normalize() Quat {
	l := q.Len()
	return Quat{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// RotationMatrix returns the 4x4 rotation matrix for a unit quaternion.
func (q Quat) RotationMatrix() Mat4 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y), 0,
		2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x), 0,
		2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// ZAxis returns the rotated local Z axis, the third column of RotationMatrix.
func (q Quat) ZAxis() Vec3 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Vec3{2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y)}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return q.RotationMatrix().MulVec3Dir(v)
}

// ApproxEqual reports whether q and r describe the same rotation within eps.
// q and -q are treated as equal.
func (q Quat) ApproxEqual(r Quat, eps float64) bool {
	same := math.Abs(q.W-r.W) <= eps && math.Abs(q.X-r.X) <= eps &&
		math.Abs(q.Y-r.Y) <= eps && math.Abs(q.Z-r.Z) <= eps
	flipped := math.Abs(q.W+r.W) <= eps && math.Abs(q.X+r.X) <= eps &&
		math.Abs(q.Y+r.Y) <= eps && math.Abs(q.Z+r.Z) <= eps
	return same || flipped
}
