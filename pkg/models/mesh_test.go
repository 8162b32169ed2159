package models

import (
	"math"
	"testing"

	"github.com/taigrr/raster/pkg/math3d"
)

func quadMesh() *Mesh {
	m := NewMesh("quad")
	m.Vertices = []Vertex{
		{Position: math3d.V3(-1, -1, 0)},
		{Position: math3d.V3(1, -1, 0)},
		{Position: math3d.V3(1, 1, 0)},
		{Position: math3d.V3(-1, 1, 0)},
	}
	m.Indices = []int{0, 1, 2, 0, 2, 3}
	return m
}

func TestTriangleCountTruncates(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    int
	}{
		{"empty", nil, 0},
		{"one", []int{0, 1, 2}, 1},
		{"trailing pair", []int{0, 1, 2, 0, 2}, 1},
		{"trailing single", []int{0, 1, 2, 0, 2, 3, 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quadMesh()
			m.Indices = tt.indices
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidTriangle(t *testing.T) {
	m := quadMesh()
	m.Indices = []int{0, 1, 2, 0, 2, 9, -1, 1, 2}
	want := []bool{true, false, false}
	for i, w := range want {
		if got := m.ValidTriangle(i); got != w {
			t.Errorf("ValidTriangle(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestCalculateBounds(t *testing.T) {
	m := quadMesh()
	m.Vertices[2].Position = math3d.V3(3, 2, 5)
	m.CalculateBounds()

	if m.BoundsMin != math3d.V3(-1, -1, 0) || m.BoundsMax != math3d.V3(3, 2, 5) {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
	if got := m.Center(); got != math3d.V3(1, 0.5, 2.5) {
		t.Errorf("Center() = %v", got)
	}
	if got := m.Size(); got != math3d.V3(4, 3, 5) {
		t.Errorf("Size() = %v", got)
	}
}

func TestCalculateSmoothNormals(t *testing.T) {
	m := quadMesh()
	m.Vertices = append(m.Vertices, Vertex{Position: math3d.V3(9, 9, 9)}) // unreferenced
	m.CalculateSmoothNormals()

	for i, v := range m.Vertices[:4] {
		if math.Abs(v.Normal.Z-1) > 1e-12 || v.Normal.X != 0 || v.Normal.Y != 0 {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
	if n := m.Vertices[4].Normal; n != (math3d.Vec3{}) {
		t.Errorf("unreferenced vertex normal = %v, want zero", n)
	}
	if !m.HasNormals() {
		t.Error("HasNormals() = false after calculation")
	}
}

func TestAddTriangle(t *testing.T) {
	m := NewMesh("tri")
	m.AddTriangle(Vertex{}, Vertex{}, Vertex{})
	m.AddTriangle(Vertex{}, Vertex{}, Vertex{})
	if m.VertexCount() != 6 || m.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	if got := m.Triangle(1); got != [3]int{3, 4, 5} {
		t.Errorf("Triangle(1) = %v", got)
	}
}
