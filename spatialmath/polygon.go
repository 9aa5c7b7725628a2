package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon is a simple planar obstacle. It is extruded infinitely along Z, so only the X and Y
// coordinates of a point are considered.
type Polygon struct {
	poly  orb.Polygon
	label string
}

// NewPolygon builds a polygon from at least three vertices. The ring is closed automatically.
func NewPolygon(vertices []r3.Vector, label string) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, newBadGeometryDimensionsError(&Polygon{})
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	if planar.Area(ring) == 0 {
		return nil, newBadGeometryDimensionsError(&Polygon{})
	}
	return &Polygon{poly: orb.Polygon{ring}, label: label}, nil
}

// Label returns the label of this polygon.
func (p *Polygon) Label() string {
	return p.label
}

// Center returns the centroid of the polygon.
func (p *Polygon) Center() r3.Vector {
	c, _ := planar.CentroidArea(p.poly)
	return r3.Vector{X: c[0], Y: c[1]}
}

// Bound returns the axis-aligned bounding rectangle of the polygon.
func (p *Polygon) Bound() orb.Bound {
	return p.poly.Bound()
}

// Vertices returns the closed outer ring of the polygon.
func (p *Polygon) Vertices() []r3.Vector {
	out := make([]r3.Vector, 0, len(p.poly[0]))
	for _, pt := range p.poly[0] {
		out = append(out, r3.Vector{X: pt[0], Y: pt[1]})
	}
	return out
}

// String returns a human readable string that represents the polygon.
func (p *Polygon) String() string {
	b := p.Bound()
	return fmt.Sprintf("Type: Polygon | Vertices: %d | Bound: (%.1f, %.1f)-(%.1f, %.1f)",
		len(p.poly[0])-1, b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}

// DistanceFromPoint returns the planar distance from pt to the polygon boundary, negative inside.
func (p *Polygon) DistanceFromPoint(pt r3.Vector) float64 {
	op := orb.Point{pt.X, pt.Y}
	d := planar.DistanceFrom(p.poly[0], op)
	if planar.PolygonContains(p.poly, op) {
		return -d
	}
	return d
}

// CollidesWithPoint returns whether pt is within collisionBuffer of the polygon.
func (p *Polygon) CollidesWithPoint(pt r3.Vector, collisionBuffer float64) bool {
	return p.DistanceFromPoint(pt) <= collisionBuffer
}
