package physics2d

import "github.com/gekko3d/physics2d/geom"

// QuadItem is what the tree stores: a body handle and the bounds it had when inserted.
type QuadItem struct {
	Body   BodyHandle
	Bounds geom.AABB
}

// PairVisitor receives candidate pairs during Retrieve.
type PairVisitor interface {
	// CheckContactInsideList visits every pair within one node.
	CheckContactInsideList(items []QuadItem)
	// CheckContactBetweenList visits every pair of (node item, descendant item).
	CheckContactBetweenList(items, descendants []QuadItem)
}

// QuadTree is a loose region quadtree rebuilt from scratch every step.
// Items that straddle a split line stay at the shallowest node that holds them.
type QuadTree struct {
	level      int
	bounds     geom.AABB
	maxObjects int
	maxLevels  int
	objects    []QuadItem
	children   [4]*QuadTree
}

func NewQuadTree(level int, bounds geom.AABB, maxObjects, maxLevels int) *QuadTree {
	if maxObjects <= 0 {
		maxObjects = DefaultMaxObjects
	}
	if maxLevels < 0 {
		maxLevels = DefaultMaxLevels
	}
	return &QuadTree{
		level:      level,
		bounds:     bounds,
		maxObjects: maxObjects,
		maxLevels:  maxLevels,
	}
}

func (q *QuadTree) Level() int             { return q.level }
func (q *QuadTree) Bounds() geom.AABB      { return q.bounds }
func (q *QuadTree) Objects() []QuadItem    { return q.objects }
func (q *QuadTree) Children() [4]*QuadTree { return q.children }
func (q *QuadTree) IsLeaf() bool           { return q.children[0] == nil }

// Clear drops every item and child. The node keeps its bounds.
func (q *QuadTree) Clear() {
	q.objects = q.objects[:0]
	q.children = [4]*QuadTree{}
}

// Reset clears the tree and moves the root to new bounds.
func (q *QuadTree) Reset(bounds geom.AABB) {
	q.Clear()
	q.bounds = bounds
}

// GetIndex returns the quadrant (0 top-left, 1 top-right, 2 bottom-left,
// 3 bottom-right) that fully contains bounds, or -1 if it straddles the center.
func (q *QuadTree) GetIndex(bounds geom.AABB) int {
	c := q.bounds.Center()
	top := bounds.Bottom() > c.Y()
	bottom := bounds.Top() < c.Y()
	left := bounds.Right() < c.X()
	right := bounds.Left() > c.X()

	idx := -1
	switch {
	case top && left:
		idx = 0
	case top && right:
		idx = 1
	case bottom && left:
		idx = 2
	case bottom && right:
		idx = 3
	}
	if idx >= 0 && !q.bounds.Quadrant(idx).ContainsAABB(bounds) {
		return -1
	}
	return idx
}

func (q *QuadTree) Insert(item QuadItem) {
	if !q.IsLeaf() {
		if i := q.GetIndex(item.Bounds); i >= 0 {
			q.children[i].Insert(item)
			return
		}
		q.objects = append(q.objects, item)
		return
	}

	q.objects = append(q.objects, item)
	if len(q.objects) > q.maxObjects && q.level < q.maxLevels {
		q.Split()
	}
}

// Split creates the four children and pushes down every item that fits one of them.
func (q *QuadTree) Split() {
	if !q.IsLeaf() {
		return
	}
	for i := range q.children {
		q.children[i] = NewQuadTree(q.level+1, q.bounds.Quadrant(i), q.maxObjects, q.maxLevels)
	}

	kept := q.objects[:0]
	for _, item := range q.objects {
		if i := q.GetIndex(item.Bounds); i >= 0 {
			q.children[i].Insert(item)
			continue
		}
		kept = append(kept, item)
	}
	q.objects = kept
}

// Retrieve walks the tree post-order, handing v the same-node pairs and the
// node-versus-descendant pairs. Items in disjoint subtrees are never paired.
func (q *QuadTree) Retrieve(v PairVisitor) {
	q.retrieve(v)
}

func (q *QuadTree) retrieve(v PairVisitor) []QuadItem {
	var below []QuadItem
	if !q.IsLeaf() {
		for _, child := range q.children {
			below = append(below, child.retrieve(v)...)
		}
	}
	if len(q.objects) > 1 {
		v.CheckContactInsideList(q.objects)
	}
	if len(q.objects) > 0 && len(below) > 0 {
		v.CheckContactBetweenList(q.objects, below)
	}
	return append(below, q.objects...)
}

// Walk visits nodes pre-order. Returning false skips the node's children.
func (q *QuadTree) Walk(fn func(node *QuadTree) bool) {
	if !fn(q) || q.IsLeaf() {
		return
	}
	for _, child := range q.children {
		child.Walk(fn)
	}
}

func (q *QuadTree) AllObjects() []QuadItem {
	var out []QuadItem
	q.Walk(func(node *QuadTree) bool {
		out = append(out, node.objects...)
		return true
	})
	return out
}

// SplitCount is the number of internal nodes, which equals the number of Split calls.
func (q *QuadTree) SplitCount() int {
	n := 0
	q.Walk(func(node *QuadTree) bool {
		if !node.IsLeaf() {
			n++
		}
		return true
	})
	return n
}

// Depth is the deepest level below and including this node.
func (q *QuadTree) Depth() int {
	d := q.level
	q.Walk(func(node *QuadTree) bool {
		if node.level > d {
			d = node.level
		}
		return true
	})
	return d
}
