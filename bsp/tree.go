// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

// Tree is immutable once Build returns and safe for concurrent readers.
type Tree struct {
	root     Node
	leafs    []*Leaf
	bounds   geom.AABB
	rejected []Rejected
	stats    Stats
}

type Stats struct {
	Nodes      int
	Leafs      int
	SolidLeafs int
	Surfaces   int
	Splits     int // spanning polygons cut during the build
	Dropped    int // degenerate fragments thrown away
	Rejected   int
	Depth      int
	Bevels     int // planes rounding off solid leafs
}

func (t *Tree) Root() Node {
	return t.root
}

// Bounds returns the box around all geometry in the tree.
func (t *Tree) Bounds() geom.AABB {
	return t.bounds
}

func (t *Tree) Rejected() []Rejected {
	return t.rejected
}

func (t *Tree) Stats() Stats {
	return t.stats
}

// Leaf returns the leaf with the given ID.
func (t *Tree) Leaf(id int) *Leaf {
	if id < 0 || id >= len(t.leafs) {
		return nil
	}
	return t.leafs[id]
}

// FindLeaf returns the leaf containing p. Points on a plane belong to its
// front side.
func (t *Tree) FindLeaf(p vec.Vec3) *Leaf {
	node := t.root
	for {
		switch n := node.(type) {
		case *Leaf:
			return n
		case *Split:
			if n.Plane.Distance(p) < 0 {
				node = n.Back
			} else {
				node = n.Front
			}
		}
	}
}

func (t *Tree) PointContents(p vec.Vec3) int {
	return t.FindLeaf(p).Contents()
}

type Order int

const (
	BackToFront Order = iota
	FrontToBack
)

// TraverseForRender calls visit for every surface ordered by distance to view.
// With BackToFront no surface is visited after one it occludes. Returning
// false from visit stops the walk.
func (t *Tree) TraverseForRender(view vec.Vec3, order Order, visit func(*Surface) bool) {
	traverse(t.root, view, order, visit)
}

func traverse(node Node, view vec.Vec3, order Order, visit func(*Surface) bool) bool {
	n, ok := node.(*Split)
	if !ok {
		return true
	}
	near, far := n.Front, n.Back
	if n.Plane.Distance(view) < 0 {
		near, far = far, near
	}
	if order == FrontToBack {
		near, far = far, near
	}
	if !traverse(far, view, order, visit) {
		return false
	}
	for _, s := range n.Surfaces {
		if !visit(s) {
			return false
		}
	}
	return traverse(near, view, order, visit)
}

// TouchedLeafs calls f for every leaf whose region may overlap box.
func (t *Tree) TouchedLeafs(box geom.AABB, f func(*Leaf)) {
	touched(t.root, box, f)
}

func touched(node Node, box geom.AABB, f func(*Leaf)) {
	switch n := node.(type) {
	case *Leaf:
		f(n)
	case *Split:
		sides := n.Plane.BoxOnPlaneSide(box)
		if sides&1 != 0 {
			touched(n.Front, box, f)
		}
		if sides&2 != 0 {
			touched(n.Back, box, f)
		}
	}
}
