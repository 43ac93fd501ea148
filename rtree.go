package displaylist

import "sort"

// rtreeBranching is how many children an interior node holds. Leaves are
// packed in recording order, so search results come back already sorted
// by op index.
const rtreeBranching = 11

type rtreeLeaf struct {
	bounds Rect
	id     int
}

type rtreeNode struct {
	bounds   Rect
	children []int // node indices for interior nodes
	first    int   // first leaf index for leaf-level nodes
	count    int   // leaf count for leaf-level nodes
	leaf     bool
}

// RTree is a read-only spatial index over the device-space bounds of
// recorded draw ops. It is bulk-loaded once at recording end and never
// mutated.
type RTree struct {
	leaves []rtreeLeaf
	nodes  []rtreeNode
	root   int
}

// newRTree bulk-loads an index from per-op device bounds in recording
// order. Entries with empty bounds are skipped.
func newRTree(leaves []rtreeLeaf) *RTree {
	t := &RTree{}
	for _, l := range leaves {
		if !l.bounds.IsEmpty() {
			t.leaves = append(t.leaves, l)
		}
	}
	if len(t.leaves) == 0 {
		return t
	}

	// Pack leaves into leaf-level nodes, then build interior levels
	// bottom-up until one root remains.
	var level []int
	for first := 0; first < len(t.leaves); first += rtreeBranching {
		count := min(rtreeBranching, len(t.leaves)-first)
		bounds := EmptyRect()
		for _, l := range t.leaves[first : first+count] {
			bounds = bounds.Union(l.bounds)
		}
		t.nodes = append(t.nodes, rtreeNode{bounds: bounds, first: first, count: count, leaf: true})
		level = append(level, len(t.nodes)-1)
	}
	for len(level) > 1 {
		var next []int
		for first := 0; first < len(level); first += rtreeBranching {
			count := min(rtreeBranching, len(level)-first)
			children := append([]int(nil), level[first:first+count]...)
			bounds := EmptyRect()
			for _, c := range children {
				bounds = bounds.Union(t.nodes[c].bounds)
			}
			t.nodes = append(t.nodes, rtreeNode{bounds: bounds, children: children})
			next = append(next, len(t.nodes)-1)
		}
		level = next
	}
	t.root = level[0]
	return t
}

// LeafCount reports how many indexed entries the tree holds.
func (t *RTree) LeafCount() int {
	return len(t.leaves)
}

// Bounds returns the union of all indexed bounds.
func (t *RTree) Bounds() Rect {
	if len(t.leaves) == 0 {
		return EmptyRect()
	}
	return t.nodes[t.root].bounds
}

// Search returns the ids of all entries whose bounds intersect query,
// in ascending id order.
func (t *RTree) Search(query Rect) []int {
	if len(t.leaves) == 0 || query.IsEmpty() {
		return nil
	}
	var ids []int
	t.search(t.root, query, func(l rtreeLeaf) {
		ids = append(ids, l.id)
	})
	return ids
}

func (t *RTree) search(node int, query Rect, visit func(rtreeLeaf)) {
	n := &t.nodes[node]
	if !n.bounds.Intersects(query) {
		return
	}
	if n.leaf {
		for _, l := range t.leaves[n.first : n.first+n.count] {
			if l.bounds.Intersects(query) {
				visit(l)
			}
		}
		return
	}
	for _, c := range n.children {
		t.search(c, query, visit)
	}
}

// SearchAndConsolidateRects returns the bounds of all entries
// intersecting query, merged into a set of separated rectangles. Any
// two results that overlap or touch edge to edge are replaced by their
// union, repeated to a fixed point. Useful for damage-region
// computation, where adjacent dirty rects form one region.
func (t *RTree) SearchAndConsolidateRects(query Rect) []Rect {
	if len(t.leaves) == 0 || query.IsEmpty() {
		return nil
	}
	var rects []Rect
	t.search(t.root, query, func(l rtreeLeaf) {
		rects = append(rects, l.bounds)
	})
	if len(rects) == 0 {
		return nil
	}

	// Merge overlapping and touching rects to a fixed point.
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(rects); i++ {
			for j := i + 1; j < len(rects); j++ {
				if rectsJoinable(rects[i], rects[j]) {
					rects[i] = rects[i].Union(rects[j])
					rects[j] = rects[len(rects)-1]
					rects = rects[:len(rects)-1]
					merged = true
					j--
				}
			}
		}
	}
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].MinY != rects[j].MinY {
			return rects[i].MinY < rects[j].MinY
		}
		return rects[i].MinX < rects[j].MinX
	})
	return rects
}

// rectsJoinable reports whether two non-empty rects overlap or share an
// edge, using closed-interval comparison where Intersects is strict.
func rectsJoinable(a, b Rect) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX &&
		a.MinY <= b.MaxY && b.MinY <= a.MaxY
}
