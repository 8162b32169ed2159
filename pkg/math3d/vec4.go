package math3d

import "math"

// Vec4 represents a 4D vector (or homogeneous 3D point).
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Vec3 returns the Vec3 portion by truncation, ignoring W.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide returns x, y, z divided by W. A zero W produces
// infinities or NaN rather than a silent fallback.
func (v Vec4) PerspectiveDivide() Vec3 {
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Len returns the length.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W)
}

// Normalize returns the unit vector. Zero length yields NaN.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	return Vec4{v.X / l, v.Y / l, v.Z / l, v.W / l}
}

// Min returns the component-wise minimum.
//
//nolint:st1016 // a,b naming convention is clearer for vector operations
func (a Vec4) Min(b Vec4) Vec4 {
	return Vec4{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z), math.Min(a.W, b.W)}
}

// Max returns the component-wise maximum.
//
//nolint:st1016 // a,b naming convention is clearer for vector operations
func (a Vec4) Max(b Vec4) Vec4 {
	return Vec4{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z), math.Max(a.W, b.W)}
}
