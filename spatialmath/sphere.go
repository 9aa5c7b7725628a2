package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Sphere is a ball defined by its center and radius.
type Sphere struct {
	centerPt r3.Vector
	radius   float64
	label    string
}

// NewSphere instantiates a new sphere. A zero radius is a point obstacle.
func NewSphere(center r3.Vector, radius float64, label string) (*Sphere, error) {
	if radius < 0 {
		return nil, newBadGeometryDimensionsError(&Sphere{})
	}
	return &Sphere{centerPt: center, radius: radius, label: label}, nil
}

// Label returns the label of this sphere.
func (s *Sphere) Label() string {
	return s.label
}

// Center returns the center point of the sphere.
func (s *Sphere) Center() r3.Vector {
	return s.centerPt
}

// Radius returns the radius of the sphere.
func (s *Sphere) Radius() float64 {
	return s.radius
}

// String returns a human readable string that represents the sphere.
func (s *Sphere) String() string {
	return fmt.Sprintf("Type: Sphere | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f",
		s.centerPt.X, s.centerPt.Y, s.centerPt.Z, s.radius)
}

// DistanceFromPoint returns the distance from pt to the sphere surface, negative inside.
func (s *Sphere) DistanceFromPoint(pt r3.Vector) float64 {
	return pt.Sub(s.centerPt).Norm() - s.radius
}

// CollidesWithPoint returns whether pt is within collisionBuffer of the sphere.
func (s *Sphere) CollidesWithPoint(pt r3.Vector, collisionBuffer float64) bool {
	return s.DistanceFromPoint(pt) <= collisionBuffer
}
