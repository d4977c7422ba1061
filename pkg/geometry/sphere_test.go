package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

func TestSphereHit_NearerRootSelected(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected ray through the center to hit")
	}
	if math.Abs(hit.T-0.5) > 1e-12 {
		t.Errorf("Expected nearer root t=0.5, got %f", hit.T)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit from outside")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected normal (0, 0, 1), got %v", hit.Normal)
	}
	if hit.Material != sphere.Material {
		t.Error("Hit record should reference the sphere's material")
	}
}

func TestSphereHit_FallsBackToFartherRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// tMin excludes the near root at 0.5, leaving the far root at 1.5
	hit, isHit := sphere.Hit(ray, 0.75, math.Inf(1))
	if !isHit {
		t.Fatal("Expected the far root to be accepted")
	}
	if math.Abs(hit.T-1.5) > 1e-12 {
		t.Errorf("Expected far root t=1.5, got %f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Far root is on the back face")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Normal should face against the ray, got %v", hit.Normal)
	}
}

func TestSphereHit_Rejections(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)

	tests := []struct {
		name string
		ray  core.Ray
		tMin float64
		tMax float64
	}{
		{"miss above", core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)},
		{"pointing away", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0.001, math.Inf(1)},
		{"both roots beyond tMax", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 0.4},
		{"both roots before tMin", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 2, math.Inf(1)},
		{"root exactly at tMax", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, isHit := sphere.Hit(tt.ray, tt.tMin, tt.tMax); isHit {
				t.Error("Expected no hit")
			}
		})
	}
}

func TestSphereHit_TwoRootsAlongAnyDirection(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	center := core.NewVec3(1, -2, 3)
	radius := 1.5
	sphere := NewSphere(center, radius, nil)

	for i := 0; i < 200; i++ {
		dir := core.RandomUnitVector(core.NewRandomSampler(random))
		// Start outside the sphere and aim through the center
		origin := center.Subtract(dir.Multiply(5 + 10*random.Float64()))
		ray := core.NewRay(origin, dir.Multiply(0.5+random.Float64()))

		near, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("Ray %v should hit the sphere", ray)
		}
		far, isHit := sphere.Hit(ray, near.T, math.Inf(1))
		if !isHit {
			t.Fatalf("Ray %v should have a second root", ray)
		}
		if near.T >= far.T {
			t.Fatalf("Near root %f should be less than far root %f", near.T, far.T)
		}

		for _, hit := range []material.HitRecord{near, far} {
			distance := hit.Point.Subtract(center).Length()
			if math.Abs(distance-radius) > 1e-9 {
				t.Fatalf("Hit point distance %f should equal radius %f", distance, radius)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Fatalf("Normal %v should be unit length", hit.Normal)
			}
			if hit.Normal.Dot(ray.Direction) > 0 {
				t.Fatalf("Normal %v should face against the ray", hit.Normal)
			}
		}
	}
}

func TestSphereHit_NegativeRadiusFlipsNormal(t *testing.T) {
	center := core.NewVec3(0, 0, -1)
	outer := NewSphere(center, 0.5, nil)
	inner := NewSphere(center, -0.5, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	outerHit, okOuter := outer.Hit(ray, 0.001, math.Inf(1))
	innerHit, okInner := inner.Hit(ray, 0.001, math.Inf(1))
	if !okOuter || !okInner {
		t.Fatal("Both spheres should be hit")
	}

	// Same intersection math
	if outerHit.T != innerHit.T || !outerHit.Point.Equals(innerHit.Point) {
		t.Errorf("Negative radius should not change the intersection: %v vs %v", outerHit, innerHit)
	}

	// Outward normal points inward, so the ray is treated as arriving from inside
	if !outerHit.FrontFace {
		t.Error("Positive radius sphere should be hit on its front face")
	}
	if innerHit.FrontFace {
		t.Error("Negative radius sphere should report a back face hit")
	}
	if innerHit.Normal.Dot(ray.Direction) > 0 {
		t.Errorf("Stored normal must still face against the ray, got %v", innerHit.Normal)
	}
	if math.Abs(innerHit.Normal.Length()-1) > 1e-12 {
		t.Errorf("Normal should be unit length, got %f", innerHit.Normal.Length())
	}
}
