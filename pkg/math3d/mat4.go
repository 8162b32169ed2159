package math3d

import "math"

// SingularEpsilon is the determinant magnitude below which Inverse reports
// that no inverse exists.
const SingularEpsilon = 1e-9

// Mat4 is a 4x4 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For an affine transform the upper-left 3x3 block holds the basis vectors
// and indices 12..14 hold the translation.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromRows builds a matrix from four rows written the way they read on paper.
func FromRows(r0, r1, r2, r3 [4]float64) Mat4 {
	var m Mat4
	for col := range 4 {
		m[0+col*4] = r0[col]
		m[1+col*4] = r1[col]
		m[2+col*4] = r2[col]
		m[3+col*4] = r3[col]
	}
	return m
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Rotate creates a rotation matrix around an arbitrary axis.
func Rotate(axis Vec3, angle float64) Mat4 {
	axis = axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a Vec3 as a point (w=1) and truncates the result.
// Use MulVec4 followed by PerspectiveDivide for projective transforms.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(v.Upgrade()).Vec3()
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// minor returns the determinant of the 3x3 matrix left after removing row r
// and column c.
func (m Mat4) minor(r, c int) float64 {
	var s [9]float64
	i := 0
	for col := range 4 {
		if col == c {
			continue
		}
		for row := range 4 {
			if row == r {
				continue
			}
			s[i] = m[row+col*4]
			i++
		}
	}
	// s is column-major 3x3.
	return s[0]*(s[4]*s[8]-s[7]*s[5]) -
		s[3]*(s[1]*s[8]-s[7]*s[2]) +
		s[6]*(s[1]*s[5]-s[4]*s[2])
}

func (m Mat4) cofactor(r, c int) float64 {
	if (r+c)%2 == 1 {
		return -m.minor(r, c)
	}
	return m.minor(r, c)
}

// Determinant returns the determinant by cofactor expansion along row 0.
func (m Mat4) Determinant() float64 {
	var det float64
	for c := range 4 {
		det += m[c*4] * m.cofactor(0, c)
	}
	return det
}

// Inverse returns the inverse computed as adjugate / determinant.
// The second return value is false when |det| < SingularEpsilon, in which
// case the returned matrix is meaningless.
func (m Mat4) Inverse() (Mat4, bool) {
	det := m.Determinant()
	if math.Abs(det) < SingularEpsilon {
		return Mat4{}, false
	}
	invDet := 1 / det
	var inv Mat4
	for row := range 4 {
		for col := range 4 {
			// adj(M)[row][col] = cofactor(col, row)
			inv[row+col*4] = m.cofactor(col, row) * invDet
		}
	}
	return inv, true
}

// NormalMatrix returns the inverse-transpose of m, which maps surface normals
// correctly under non-uniform scale. It reports false when m is singular.
func (m Mat4) NormalMatrix() (Mat4, bool) {
	inv, ok := m.Inverse()
	if !ok {
		return Mat4{}, false
	}
	return inv.Transpose(), true
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
