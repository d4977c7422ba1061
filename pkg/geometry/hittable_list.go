package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// HittableList is an ordered group of shapes that is itself a Shape.
// Hit returns the nearest intersection across all members.
type HittableList struct {
	Shapes []Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	return &HittableList{Shapes: shapes}
}

// Add appends shapes to the list
func (l *HittableList) Add(shapes ...Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Clear removes all shapes
func (l *HittableList) Clear() {
	l.Shapes = nil
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Shapes)
}

// Hit finds the closest intersection with any shape in the list
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
