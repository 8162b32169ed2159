package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/raster/pkg/math3d"
)

// objKey identifies one v/vt/vn combination; -1 marks a missing element.
type objKey struct{ v, vt, vn int }

// LoadOBJ loads a Wavefront OBJ file. Polygons are fan-triangulated and
// missing normals are computed by smoothing.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ReadOBJ parses OBJ geometry from r. Only v, vt, vn and f records are
// interpreted; everything else is skipped.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		texcoords []math3d.Vec2
		normals   []math3d.Vec3
		seen      = make(map[objKey]int)
		mesh      = NewMesh("")
		anyNormal bool
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		args := fields[1:]

		switch fields[0] {
		case "v":
			p, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))
		case "vt":
			p, err := parseFloats(args, 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			texcoords = append(texcoords, math3d.V2(p[0], p[1]))
		case "vn":
			p, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, math3d.V3(p[0], p[1], p[2]))
		case "f":
			if len(args) < 3 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNo, len(args))
			}
			face := make([]int, len(args))
			for i, a := range args {
				key, err := parseFaceVertex(a, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx, ok := seen[key]
				if !ok {
					v := Vertex{Position: positions[key.v]}
					if key.vt >= 0 {
						v.TexCoord = texcoords[key.vt]
					}
					if key.vn >= 0 {
						v.Normal = normals[key.vn]
						anyNormal = true
					}
					idx = len(mesh.Vertices)
					mesh.Vertices = append(mesh.Vertices, v)
					seen[key] = idx
				}
				face[i] = idx
			}
			for i := 1; i+1 < len(face); i++ {
				mesh.Indices = append(mesh.Indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("obj contains no faces")
	}

	if !anyNormal {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based
// indices. Negative OBJ indices count back from the latest element.
func parseFaceVertex(s string, nv, nvt, nvn int) (objKey, error) {
	parts := strings.Split(s, "/")
	key := objKey{-1, -1, -1}
	counts := [3]int{nv, nvt, nvn}
	dst := [3]*int{&key.v, &key.vt, &key.vn}

	for i, p := range parts {
		if i > 2 {
			return key, fmt.Errorf("face vertex %q has too many elements", s)
		}
		if p == "" {
			if i == 0 {
				return key, fmt.Errorf("face vertex %q has no position", s)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return key, fmt.Errorf("face vertex %q: %w", s, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return key, fmt.Errorf("face vertex %q: index 0 is invalid", s)
		}
		if n < 0 || n >= counts[i] {
			return key, fmt.Errorf("face vertex %q: index out of range", s)
		}
		*dst[i] = n
	}
	return key, nil
}
