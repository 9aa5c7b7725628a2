package motionplan

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"go.viam.com/rrt/referenceframe"
)

// kdPoint is a configuration tagged with its tree id, stored in a gonum k-d tree.
type kdPoint struct {
	q  referenceframe.Configuration
	id int
}

// Compare satisfies kdtree.Comparable.
func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.q[d] - c.(kdPoint).q[d]
}

// Dims satisfies kdtree.Comparable.
func (p kdPoint) Dims() int {
	return len(p.q)
}

// Distance returns the squared Euclidean distance, as kdtree expects.
func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	o := c.(kdPoint)
	var sum float64
	for i, v := range p.q {
		d := v - o.q[i]
		sum += d * d
	}
	return sum
}

// kdTreeIndex is the default index. The tree is built incrementally and not rebalanced.
type kdTreeIndex struct {
	dim  int
	tree *kdtree.Tree
}

func newKDTreeIndex(dim int) *kdTreeIndex {
	return &kdTreeIndex{dim: dim, tree: &kdtree.Tree{}}
}

func (ki *kdTreeIndex) Insert(q referenceframe.Configuration, id int) error {
	if err := checkDims(q, ki.dim); err != nil {
		return err
	}
	ki.tree.Insert(kdPoint{q: q, id: id}, false)
	return nil
}

func (ki *kdTreeIndex) Nearest(q referenceframe.Configuration) int {
	if ki.tree.Root == nil {
		return -1
	}
	got, _ := ki.tree.Nearest(kdPoint{q: q})
	if got == nil {
		return -1
	}
	return got.(kdPoint).id
}

func (ki *kdTreeIndex) WithinRadius(q referenceframe.Configuration, r float64) []int {
	if ki.tree.Root == nil || r < 0 {
		return nil
	}
	keeper := kdtree.NewDistKeeper(r * r)
	ki.tree.NearestSet(keeper, kdPoint{q: q})
	ids := make([]int, 0, keeper.Len())
	for _, cd := range keeper.Heap {
		// the keeper's distance sentinel carries no point
		if cd.Comparable == nil {
			continue
		}
		ids = append(ids, cd.Comparable.(kdPoint).id)
	}
	return ids
}

func (ki *kdTreeIndex) Len() int {
	return ki.tree.Count
}
