package motionplan

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rrt/referenceframe"
)

// NearestNeighborKind names a NearestNeighborIndex implementation.
type NearestNeighborKind string

// The set of supported nearest neighbor indices.
const (
	KDTreeIndex = NearestNeighborKind("kdtree")
	RTreeIndex  = NearestNeighborKind("rtree")
	LinearIndex = NearestNeighborKind("linear")
)

func (kind NearestNeighborKind) validate() (NearestNeighborKind, error) {
	switch kind {
	case "":
		return KDTreeIndex, nil
	case KDTreeIndex, RTreeIndex, LinearIndex:
		return kind, nil
	default:
		return kind, errors.Errorf("unknown nearest_neighbor index %q", string(kind))
	}
}

// NearestNeighborIndex is an incremental point index answering single nearest and radius queries
// under Euclidean distance. Ids are opaque to the index.
type NearestNeighborIndex interface {
	// Insert associates q with id. It fails only when q has the wrong dimension.
	Insert(q referenceframe.Configuration, id int) error
	// Nearest returns the id of the closest inserted point, or -1 if the index is empty.
	Nearest(q referenceframe.Configuration) int
	// WithinRadius returns the ids of all points at distance r or less from q, in no particular order.
	WithinRadius(q referenceframe.Configuration, r float64) []int
	// Len returns the number of inserted points.
	Len() int
}

// NewNearestNeighborIndex returns an empty index of the given kind for dim-dimensional points.
func NewNearestNeighborIndex(kind NearestNeighborKind, dim int) (NearestNeighborIndex, error) {
	if dim <= 0 {
		return nil, newInvalidInputErrorf("cannot index %d-dimensional points", dim)
	}
	kind, err := kind.validate()
	if err != nil {
		return nil, newInvalidInputError(err)
	}
	switch kind {
	case RTreeIndex:
		return newRTreeIndex(dim), nil
	case LinearIndex:
		return newLinearIndex(dim), nil
	default:
		return newKDTreeIndex(dim), nil
	}
}

func checkDims(q referenceframe.Configuration, dim int) error {
	if len(q) != dim {
		return referenceframe.NewIncorrectDimensionError(len(q), dim)
	}
	return nil
}

type linearEntry struct {
	q  referenceframe.Configuration
	id int
}

// linearIndex answers queries by scanning every point.
type linearIndex struct {
	dim     int
	entries []linearEntry
}

func newLinearIndex(dim int) *linearIndex {
	return &linearIndex{dim: dim}
}

func (li *linearIndex) Insert(q referenceframe.Configuration, id int) error {
	if err := checkDims(q, li.dim); err != nil {
		return err
	}
	li.entries = append(li.entries, linearEntry{q: q, id: id})
	return nil
}

func (li *linearIndex) Nearest(q referenceframe.Configuration) int {
	bestDist := math.Inf(1)
	best := -1
	for _, e := range li.entries {
		dist := e.q.Distance(q)
		if dist < bestDist {
			bestDist = dist
			best = e.id
		}
	}
	return best
}

func (li *linearIndex) WithinRadius(q referenceframe.Configuration, r float64) []int {
	var ids []int
	for _, e := range li.entries {
		if e.q.Distance(q) <= r {
			ids = append(ids, e.id)
		}
	}
	return ids
}

func (li *linearIndex) Len() int {
	return len(li.entries)
}
