package motionplan

import (
	"github.com/dhconnelly/rtreego"

	"go.viam.com/rrt/referenceframe"
)

const (
	// node fan-out bounds for the r-tree.
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// half width of the box stored for each point, rtreego rejects empty rectangles.
	rtreePointTolerance = 1e-9
)

// rtreeEntry stores a point as a tiny box.
type rtreeEntry struct {
	q    referenceframe.Configuration
	id   int
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial interface.
func (e *rtreeEntry) Bounds() rtreego.Rect {
	return e.rect
}

// rtreeIndex answers radius queries with a box search followed by an exact distance filter.
type rtreeIndex struct {
	dim  int
	tree *rtreego.Rtree
}

func newRTreeIndex(dim int) *rtreeIndex {
	return &rtreeIndex{dim: dim, tree: rtreego.NewTree(dim, rtreeMinChildren, rtreeMaxChildren)}
}

func (ri *rtreeIndex) Insert(q referenceframe.Configuration, id int) error {
	if err := checkDims(q, ri.dim); err != nil {
		return err
	}
	ri.tree.Insert(&rtreeEntry{q: q, id: id, rect: rtreego.Point(q).ToRect(rtreePointTolerance)})
	return nil
}

func (ri *rtreeIndex) Nearest(q referenceframe.Configuration) int {
	if ri.tree.Size() == 0 {
		return -1
	}
	got := ri.tree.NearestNeighbor(rtreego.Point(q))
	if got == nil {
		return -1
	}
	return got.(*rtreeEntry).id
}

func (ri *rtreeIndex) WithinRadius(q referenceframe.Configuration, r float64) []int {
	if ri.tree.Size() == 0 || r < 0 {
		return nil
	}
	candidates := ri.tree.SearchIntersect(rtreego.Point(q).ToRect(r + 2*rtreePointTolerance))
	var ids []int
	for _, c := range candidates {
		entry := c.(*rtreeEntry)
		if entry.q.Distance(q) <= r {
			ids = append(ids, entry.id)
		}
	}
	return ids
}

func (ri *rtreeIndex) Len() int {
	return ri.tree.Size()
}
