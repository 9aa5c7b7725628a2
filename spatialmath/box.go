package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Box is an axis-aligned rectangular prism defined by its center and half size.
type Box struct {
	centerPt r3.Vector
	halfSize [3]float64
	label    string
}

// NewBox instantiates a new axis-aligned box. Negative dimensions are not allowed; zero dimensions
// give flat boxes, which is how rectangles are expressed for planar problems.
func NewBox(center, dims r3.Vector, label string) (*Box, error) {
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, newBadGeometryDimensionsError(&Box{})
	}
	halfSize := dims.Mul(0.5)
	return &Box{
		centerPt: center,
		halfSize: [3]float64{halfSize.X, halfSize.Y, halfSize.Z},
		label:    label,
	}, nil
}

// Label returns the label of this box.
func (b *Box) Label() string {
	return b.label
}

// Center returns the center point of the box.
func (b *Box) Center() r3.Vector {
	return b.centerPt
}

// HalfSize returns the half extents of the box along each axis.
func (b *Box) HalfSize() r3.Vector {
	return r3.Vector{X: b.halfSize[0], Y: b.halfSize[1], Z: b.halfSize[2]}
}

// String returns a human readable string that represents the box.
func (b *Box) String() string {
	return fmt.Sprintf("Type: Box | Position: X:%.1f, Y:%.1f, Z:%.1f | Dims: X:%.1f, Y:%.1f, Z:%.1f",
		b.centerPt.X, b.centerPt.Y, b.centerPt.Z, 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2])
}

// DistanceFromPoint returns the distance from pt to the box surface, negative inside.
func (b *Box) DistanceFromPoint(pt r3.Vector) float64 {
	if b.contains(pt) {
		return -b.pointPenetrationDepth(pt)
	}
	return pt.Sub(b.closestPoint(pt)).Norm()
}

// CollidesWithPoint returns whether pt is within collisionBuffer of the box.
func (b *Box) CollidesWithPoint(pt r3.Vector, collisionBuffer float64) bool {
	return b.DistanceFromPoint(pt) <= collisionBuffer
}

func (b *Box) contains(pt r3.Vector) bool {
	d := pt.Sub(b.centerPt)
	return math.Abs(d.X) <= b.halfSize[0] && math.Abs(d.Y) <= b.halfSize[1] && math.Abs(d.Z) <= b.halfSize[2]
}

// closestPoint returns the closest point on the box to the specified point.
func (b *Box) closestPoint(pt r3.Vector) r3.Vector {
	direction := pt.Sub(b.centerPt)
	clamped := [3]float64{direction.X, direction.Y, direction.Z}
	for i := 0; i < 3; i++ {
		clamped[i] = math.Max(-b.halfSize[i], math.Min(b.halfSize[i], clamped[i]))
	}
	return b.centerPt.Add(r3.Vector{X: clamped[0], Y: clamped[1], Z: clamped[2]})
}

// pointPenetrationDepth returns the minimum distance needed to move a pt inside the box to the edge
// of the box. Flat axes are skipped so planar boxes measure depth in the plane.
func (b *Box) pointPenetrationDepth(pt r3.Vector) float64 {
	direction := pt.Sub(b.centerPt)
	projections := [3]float64{direction.X, direction.Y, direction.Z}
	depth := math.Inf(1)
	for i := 0; i < 3; i++ {
		if b.halfSize[i] == 0 {
			continue
		}
		depth = math.Min(depth, b.halfSize[i]-math.Abs(projections[i]))
	}
	if math.IsInf(depth, 1) {
		return 0
	}
	return depth
}
