// Package referenceframe defines the value types shared by the planners: points in a configuration
// space, paths through it and the per-dimension limits that bound it.
package referenceframe

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Configuration is one point in an N-dimensional planning space.
type Configuration []float64

// FloatsToConfiguration copies a float slice into a new Configuration.
func FloatsToConfiguration(vals []float64) Configuration {
	q := make(Configuration, len(vals))
	copy(q, vals)
	return q
}

// Dims returns the dimensionality of the configuration.
func (q Configuration) Dims() int {
	return len(q)
}

// Distance returns the Euclidean distance between two configurations. Configurations of differing
// dimension are infinitely far apart.
func (q Configuration) Distance(o Configuration) float64 {
	if len(q) != len(o) {
		return math.Inf(1)
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Distance(q, o, 2)
}

// Interpolate returns the configuration that is the specified fraction of the way from q to `to`.
// Setting by to 0.5 returns the midpoint.
func (q Configuration) Interpolate(to Configuration, by float64) Configuration {
	out := make(Configuration, len(q))
	for i, v := range q {
		out[i] = v + (to[i]-v)*by
	}
	return out
}

// Clone returns a deep copy.
func (q Configuration) Clone() Configuration {
	if q == nil {
		return nil
	}
	return FloatsToConfiguration(q)
}

// AlmostEqual returns whether every coordinate of the two configurations is within epsilon.
func (q Configuration) AlmostEqual(o Configuration, epsilon float64) bool {
	if len(q) != len(o) {
		return false
	}
	return floats.EqualApprox(q, o, epsilon)
}

func (q Configuration) String() string {
	parts := make([]string, 0, len(q))
	for _, v := range q {
		parts = append(parts, fmt.Sprintf("%.4f", v))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Path is an ordered sequence of configurations from a start to a goal, inclusive.
type Path []Configuration

// Length returns the sum of the distances between consecutive waypoints. A path with fewer than two
// waypoints does not connect anything and has infinite length.
func (p Path) Length() float64 {
	if len(p) < 2 {
		return math.Inf(1)
	}
	total := 0.
	for i := 1; i < len(p); i++ {
		total += p[i-1].Distance(p[i])
	}
	return total
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	out := make(Path, 0, len(p))
	for _, q := range p {
		out = append(out, q.Clone())
	}
	return out
}

// Floats returns the path as nested float slices, suitable for serialization.
func (p Path) Floats() [][]float64 {
	out := make([][]float64, 0, len(p))
	for _, q := range p {
		out = append(out, []float64(q.Clone()))
	}
	return out
}

func (p Path) String() string {
	var str strings.Builder
	for i, q := range p {
		if i > 0 {
			str.WriteString(" -> ")
		}
		str.WriteString(q.String())
	}
	return str.String()
}
