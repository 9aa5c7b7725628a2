package motionplan

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rrt/referenceframe"
)

// noParent marks the root of a tree.
const noParent = -1

type treeNode struct {
	q        referenceframe.Configuration
	parent   int
	cost     float64
	children []int
}

// Tree is an arena of configurations linked to their parents by id. Ids are positions in insertion
// order and never change; nodes are never removed. Every node is in the nearest neighbor index
// before its id is returned.
type Tree struct {
	nodes []*treeNode
	index NearestNeighborIndex
	dim   int
}

func newTree(dim int, kind NearestNeighborKind) (*Tree, error) {
	index, err := NewNearestNeighborIndex(kind, dim)
	if err != nil {
		return nil, err
	}
	return &Tree{index: index, dim: dim}, nil
}

// addVertex inserts q as a parentless node with the given cost.
func (t *Tree) addVertex(q referenceframe.Configuration, cost float64) (int, error) {
	id := len(t.nodes)
	q = q.Clone()
	if err := t.index.Insert(q, id); err != nil {
		return noParent, err
	}
	t.nodes = append(t.nodes, &treeNode{q: q, parent: noParent, cost: cost})
	return id, nil
}

// setParent makes parent the parent of child, detaching child from any previous parent.
func (t *Tree) setParent(child, parent int) {
	node := t.nodes[child]
	if node.parent != noParent {
		old := t.nodes[node.parent]
		old.children = lo.Without(old.children, child)
	}
	node.parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, child)
}

// rewire reparents child onto parent with a new, lower cost, and lowers the cost of every
// descendant by the same amount.
func (t *Tree) rewire(child, parent int, cost float64) {
	delta := t.nodes[child].cost - cost
	t.setParent(child, parent)
	t.nodes[child].cost = cost

	queue := append([]int{}, t.nodes[child].children...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t.nodes[id].cost -= delta
		queue = append(queue, t.nodes[id].children...)
	}
}

// isAncestor reports whether a lies on the parent chain of id.
func (t *Tree) isAncestor(a, id int) bool {
	for cur := t.nodes[id].parent; cur != noParent; cur = t.nodes[cur].parent {
		if cur == a {
			return true
		}
	}
	return false
}

func (t *Tree) nearest(q referenceframe.Configuration) int {
	return t.index.Nearest(q)
}

func (t *Tree) near(q referenceframe.Configuration, r float64) []int {
	return t.index.WithinRadius(q, r)
}

// pathToRoot returns the configurations from id up to and including the root.
func (t *Tree) pathToRoot(id int) referenceframe.Path {
	var path referenceframe.Path
	for cur := id; cur != noParent; cur = t.nodes[cur].parent {
		path = append(path, t.nodes[cur].q)
	}
	return path
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Dims returns the dimension of the tree's configurations.
func (t *Tree) Dims() int {
	return t.dim
}

// Root returns the id of the root node.
func (t *Tree) Root() int {
	return 0
}

// Configuration returns a copy of the configuration stored at id.
func (t *Tree) Configuration(id int) referenceframe.Configuration {
	return t.nodes[id].q.Clone()
}

// config returns the stored configuration itself. The nearest neighbor index holds the same
// slice, so callers must not modify it.
func (t *Tree) config(id int) referenceframe.Configuration {
	return t.nodes[id].q
}

// Parent returns the parent id of id, and false for the root.
func (t *Tree) Parent(id int) (int, bool) {
	p := t.nodes[id].parent
	return p, p != noParent
}

// Cost returns the recorded cost of reaching id from the root.
func (t *Tree) Cost(id int) float64 {
	return t.nodes[id].cost
}

// PathFromRoot returns a copy of the configurations from the root to id, inclusive.
func (t *Tree) PathFromRoot(id int) (referenceframe.Path, error) {
	if id < 0 || id >= len(t.nodes) {
		return nil, errors.Errorf("node %d not in tree of %d nodes", id, len(t.nodes))
	}
	return lo.Reverse(t.pathToRoot(id).Clone()), nil
}

// Edges calls fn once for every parent to child link in the tree.
func (t *Tree) Edges(fn func(parent, child referenceframe.Configuration)) {
	for _, n := range t.nodes {
		if n.parent != noParent {
			fn(t.nodes[n.parent].q, n.q)
		}
	}
}
