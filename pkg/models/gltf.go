package models

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/texture"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// CalculateNormals fills in smooth normals when the asset has none.
	CalculateNormals bool
	// LoadTextures decodes the base color texture of the first material.
	LoadTextures bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		LoadTextures:     true,
	}
}

// LoadGLB loads a .glb or .gltf file with the default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and merges all triangle primitives into one
// Mesh. The material of the first primitive that names one is used for the
// whole mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	materialIdx := -1

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			if err := l.appendPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			if materialIdx < 0 && prim.Material != nil {
				materialIdx = *prim.Material
			}
		}
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("gltf %s contains no triangles", path)
	}

	if materialIdx >= 0 && materialIdx < len(doc.Materials) {
		mat, err := l.convertMaterial(doc, doc.Materials[materialIdx], filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", materialIdx, err)
		}
		mesh.Material = mat
	}

	if l.CalculateNormals && !mesh.HasNormals() {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	return mesh, nil
}

// appendPrimitive extracts geometry from one primitive. glTF front faces are
// counter-clockwise, matching the renderer, so winding is kept as is.
func (l *GLTFLoader) appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := Vertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
		if i < len(uvs) {
			// glTF puts V=0 at the top of the image; samplers expect it at the bottom.
			v.TexCoord = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range len(positions) / 3 * 3 {
			mesh.Indices = append(mesh.Indices, base+i)
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("read indices: %w", err)
	}
	for _, idx := range indices[:len(indices)/3*3] {
		mesh.Indices = append(mesh.Indices, base+int(idx))
	}
	return nil
}

// convertMaterial maps a metallic-roughness material onto Phong: the base
// color factor tints the diffuse term and the base color texture, if any,
// becomes the base color map.
func (l *GLTFLoader) convertMaterial(doc *gltf.Document, src *gltf.Material, dir string) (Material, error) {
	mat := DefaultMaterial()
	mat.Name = src.Name

	pbr := src.PBRMetallicRoughness
	if pbr == nil {
		return mat, nil
	}
	f := pbr.BaseColorFactorOrDefault()
	mat.Base = SolidColor(math3d.V3(f[0], f[1], f[2]))
	if pbr.BaseColorTexture == nil || !l.LoadTextures {
		return mat, nil
	}

	img, err := readTextureImage(doc, pbr.BaseColorTexture.Index, dir)
	if err != nil {
		return mat, err
	}
	if img != nil {
		mat.Base = TextureColor(texture.FromImage(img))
	}
	return mat, nil
}

// readTextureImage decodes the image behind texture index ti, reading either
// an embedded buffer view or a file next to the asset.
func readTextureImage(doc *gltf.Document, ti int, dir string) (image.Image, error) {
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return nil, nil
	}
	src := doc.Images[*doc.Textures[ti].Source]

	var data []byte
	var err error
	switch {
	case src.BufferView != nil:
		data, err = modeler.ReadBufferView(doc, doc.BufferViews[*src.BufferView])
	case src.URI != "":
		data, err = os.ReadFile(filepath.Join(dir, src.URI))
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read texture %d: %w", ti, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %d: %w", ti, err)
	}
	return img, nil
}
