// Package models provides the mesh, material and light types the renderer
// consumes, plus loaders for Wavefront OBJ and glTF assets.
package models

import (
	"github.com/taigrr/raster/pkg/math3d"
)

// Vertex holds all vertex attributes.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	TexCoord math3d.Vec2
}

// Mesh is an indexed triangle list with a single material.
// Indices are read in triples; a trailing partial triple is ignored.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []int
	Material Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh with the default material.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Material: DefaultMaterial(),
	}
}

// TriangleCount returns the number of complete index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]int {
	return [3]int{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// AddTriangle appends three vertices and the triple that references them.
func (m *Mesh) AddTriangle(a, b, c Vertex) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, a, b, c)
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// ValidTriangle reports whether all indices of triangle i address a vertex.
func (m *Mesh) ValidTriangle(i int) bool {
	for _, idx := range m.Triangle(i) {
		if idx < 0 || idx >= len(m.Vertices) {
			return false
		}
	}
	return true
}

// CalculateSmoothNormals replaces vertex normals with the area-weighted
// average of the adjacent face normals. Vertices not referenced by any
// triangle keep a zero normal.
func (m *Mesh) CalculateSmoothNormals() {
	acc := make([]math3d.Vec3, len(m.Vertices))

	for i := range m.TriangleCount() {
		if !m.ValidTriangle(i) {
			continue
		}
		tri := m.Triangle(i)
		v0 := m.Vertices[tri[0]].Position
		v1 := m.Vertices[tri[1]].Position
		v2 := m.Vertices[tri[2]].Position

		// Unnormalized: the cross product length weights by area.
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, idx := range tri {
			acc[idx] = acc[idx].Add(normal)
		}
	}

	for i, n := range acc {
		if n.LenSq() > 0 {
			n = n.Normalize()
		}
		m.Vertices[i].Normal = n
	}
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}
