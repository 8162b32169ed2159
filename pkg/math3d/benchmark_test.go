package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 3, 4)))

	for b.Loop() {
		_, _ = m.Inverse()
	}
}

func BenchmarkMat4NormalMatrix(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 3, 4)))

	for b.Loop() {
		_, _ = m.NormalMatrix()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkQuatMul(b *testing.B) {
	q1 := QuatFromAxisAngle(Up(), 0.1)
	q2 := QuatFromAxisAngle(V3(1, 0, 0), 0.2)

	for b.Loop() {
		_ = q1.Mul(q2)
	}
}

func BenchmarkQuatRotationMatrix(b *testing.B) {
	q := QuatFromAxisAngle(V3(1, 1, 0), 0.7)

	for b.Loop() {
		_ = q.RotationMatrix()
	}
}
