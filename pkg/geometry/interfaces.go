package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// A hit is reported only when tMin < t < tMax.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
