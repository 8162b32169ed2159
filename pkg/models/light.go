package models

import "github.com/taigrr/raster/pkg/math3d"

// PointLight emits uniformly from a point. Received energy falls off with the
// inverse square of the distance.
type PointLight struct {
	Position  math3d.Vec3
	Intensity float64
}
