// Package spatialmath defines the obstacle geometries used to build feasibility predicates for
// planning problems in two or three dimensions.
package spatialmath

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Geometry is an obstacle that a point or ball can be tested against.
type Geometry interface {
	Label() string
	Center() r3.Vector
	// DistanceFromPoint returns the signed distance from pt to the surface of the geometry. Points
	// inside the geometry have a negative distance.
	DistanceFromPoint(pt r3.Vector) float64
	// CollidesWithPoint returns true if pt is within collisionBuffer of the geometry.
	CollidesWithPoint(pt r3.Vector, collisionBuffer float64) bool
	String() string
}

// GeometryType defines what geometry creator representations are known.
type GeometryType string

// The set of allowed representations for geometries.
const (
	UnknownType = GeometryType("")
	BoxType     = GeometryType("box")
	SphereType  = GeometryType("sphere")
	PolygonType = GeometryType("polygon")
)

var errGeometryTypeUnsupported = errors.New("unsupported Geometry type")

func newBadGeometryDimensionsError(g Geometry) error {
	return fmt.Errorf("invalid dimension(s) for Geometry type %T", g)
}

// GeometryConfig specifies the format of geometries specified through JSON configuration files.
type GeometryConfig struct {
	Type GeometryType `json:"type"`

	// parameters used for defining a box's rectangular cross-section
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	// parameter used for defining a sphere's radius
	R float64 `json:"r"`

	// vertices of a polygon's outer ring, in order
	Points [][2]float64 `json:"points,omitempty"`

	// define an offset to position the geometry
	TranslationOffset r3.Vector `json:"translation"`

	Label string `json:"label,omitempty"`
}

// ParseConfig converts a GeometryConfig into the correct Geometry. An empty type is inferred from
// which parameters are set.
func (config *GeometryConfig) ParseConfig() (Geometry, error) {
	geomType := GeometryType(strings.ToLower(string(config.Type)))
	if geomType == UnknownType {
		switch {
		case len(config.Points) > 0:
			geomType = PolygonType
		case config.X != 0 || config.Y != 0 || config.Z != 0:
			geomType = BoxType
		case config.R != 0:
			geomType = SphereType
		}
	}

	switch geomType {
	case BoxType:
		return NewBox(config.TranslationOffset, r3.Vector{X: config.X, Y: config.Y, Z: config.Z}, config.Label)
	case SphereType:
		return NewSphere(config.TranslationOffset, config.R, config.Label)
	case PolygonType:
		pts := make([]r3.Vector, 0, len(config.Points))
		for _, p := range config.Points {
			pts = append(pts, r3.Vector{X: p[0] + config.TranslationOffset.X, Y: p[1] + config.TranslationOffset.Y})
		}
		return NewPolygon(pts, config.Label)
	case UnknownType:
		return nil, errors.Wrapf(errGeometryTypeUnsupported, "cannot infer type from config %+v", *config)
	default:
		return nil, errors.Wrapf(errGeometryTypeUnsupported, "%q", string(config.Type))
	}
}

// PointFromCoordinates embeds the first three coordinates of a configuration in r3. Missing
// coordinates are zero.
func PointFromCoordinates(vals []float64) r3.Vector {
	var pt r3.Vector
	if len(vals) > 0 {
		pt.X = vals[0]
	}
	if len(vals) > 1 {
		pt.Y = vals[1]
	}
	if len(vals) > 2 {
		pt.Z = vals[2]
	}
	return pt
}
