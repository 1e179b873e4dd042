// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"math"

	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/conlog"
	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

type BuildOptions struct {
	// SplitPenalty is the cost of each polygon a splitter would cut, added to
	// the front/back imbalance.
	SplitPenalty int
	// MaxCandidates limits the splitter search to the first polygons of each
	// set. 0 tries all of them.
	MaxCandidates int
}

func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		SplitPenalty: 8,
	}
}

// Rejected is an input polygon the builder skipped.
type Rejected struct {
	Index int
	Poly  *geom.Polygon
	Err   error
}

type builder struct {
	opts    BuildOptions
	box     []geom.Plane
	leafs   []*Leaf
	splits  int
	dropped int
}

// Build partitions polys into a tree. Malformed polygons are skipped and
// reported by Tree.Rejected. The result only depends on polys and their order.
func Build(polys []*geom.Polygon, opts BuildOptions) *Tree {
	b := &builder{opts: opts}
	t := &Tree{}
	valid := make([]*geom.Polygon, 0, len(polys))
	for i, p := range polys {
		var err error
		if p == nil {
			err = geom.ErrTooFewVertices
		} else {
			err = p.Validate()
		}
		if err != nil {
			err = errors.Wrapf(err, "polygon %d", i)
			conlog.DPrintf("Build: rejected %v\n", err)
			t.rejected = append(t.rejected, Rejected{Index: i, Poly: p, Err: err})
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		t.root = b.leaf(false, nil)
	} else {
		bounds := geom.EmptyAABB()
		for _, p := range valid {
			bounds = bounds.Union(p.Bounds())
		}
		b.box = boxPlanes(bounds.Expand(bevelMargin))
		t.root = b.build(valid, nil)
	}
	t.leafs = b.leafs
	t.bounds = boundsOf(t.root)
	t.stats = b.stats(t.root)
	t.stats.Rejected = len(t.rejected)
	return t
}

// leaf makes a leaf for the region behind all planes of path.
func (b *builder) leaf(solid bool, path []geom.Plane) *Leaf {
	l := &Leaf{
		ID:    len(b.leafs),
		Solid: solid,
	}
	if solid {
		l.Bevels = b.bevels(path)
	}
	b.leafs = append(b.leafs, l)
	return l
}

func boundsOf(n Node) geom.AABB {
	if s, ok := n.(*Split); ok {
		return s.Bounds
	}
	return geom.EmptyAABB()
}

// build never gets an empty set. Every polygon on the splitter plane stays at
// the new node, so the children never see that plane again.
func (b *builder) build(polys []*geom.Polygon, path []geom.Plane) Node {
	best := b.pick(polys)
	splitter := polys[best]
	plane := splitter.Plane

	surfaces := []*Surface{{Poly: splitter}}
	bounds := splitter.Bounds()
	var front, back []*geom.Polygon
	for i, p := range polys {
		if i == best {
			continue
		}
		switch p.Classify(&plane) {
		case geom.Coincident:
			s := &Surface{Poly: p}
			if vec.Dot(p.Plane.Normal, plane.Normal) < 0 {
				s.Flags |= SurfacePlaneBack
			}
			surfaces = append(surfaces, s)
			bounds = bounds.Union(p.Bounds())
		case geom.Front:
			front = append(front, p)
		case geom.Back:
			back = append(back, p)
		case geom.Spanning:
			b.splits++
			f, k := p.Split(&plane)
			if f != nil {
				front = append(front, f)
			} else {
				b.dropped++
			}
			if k != nil {
				back = append(back, k)
			} else {
				b.dropped++
			}
		}
	}

	n := &Split{
		Plane:    plane,
		Surfaces: surfaces,
	}
	// nothing in front: open space. nothing behind: inside the geometry.
	if len(front) == 0 {
		n.Front = b.leaf(false, nil)
	} else {
		n.Front = b.build(front, append(path, plane.Flip()))
	}
	if len(back) == 0 {
		n.Back = b.leaf(true, append(path, plane))
	} else {
		n.Back = b.build(back, append(path, plane))
	}
	n.Bounds = bounds.Union(boundsOf(n.Front)).Union(boundsOf(n.Back))
	return n
}

// pick returns the index of the splitter with the lowest
// SplitPenalty*splits + |front-back|. Candidates are dropped as soon as their
// cost reaches the best so far, so on ties the earlier polygon wins.
func (b *builder) pick(polys []*geom.Polygon) int {
	c := len(polys)
	if b.opts.MaxCandidates > 0 && b.opts.MaxCandidates < c {
		c = b.opts.MaxCandidates
	}
	best := 0
	bestCost := math.MaxInt
	var tried []*geom.Plane

candidates:
	for i := 0; i < c; i++ {
		pl := &polys[i].Plane
		// coplanar candidates give the same partition
		for _, o := range tried {
			if same, _ := o.SamePlane(pl); same {
				continue candidates
			}
		}
		tried = append(tried, pl)

		cost, front, back := 0, 0, 0
		for j, p := range polys {
			if j == i {
				continue
			}
			switch p.Classify(pl) {
			case geom.Front:
				front++
			case geom.Back:
				back++
			case geom.Spanning:
				front++
				back++
				cost += b.opts.SplitPenalty
				if cost >= bestCost {
					continue candidates
				}
			}
		}
		diff := front - back
		if diff < 0 {
			diff = -diff
		}
		cost += diff
		if cost < bestCost {
			bestCost = cost
			best = i
		}
	}
	return best
}

func (b *builder) stats(root Node) Stats {
	s := Stats{
		Splits:  b.splits,
		Dropped: b.dropped,
	}
	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		if depth > s.Depth {
			s.Depth = depth
		}
		switch n := n.(type) {
		case *Leaf:
			s.Leafs++
			if n.Solid {
				s.SolidLeafs++
			}
			s.Bevels += len(n.Bevels)
		case *Split:
			s.Nodes++
			s.Surfaces += len(n.Surfaces)
			walk(n.Front, depth+1)
			walk(n.Back, depth+1)
		}
	}
	walk(root, 0)
	return s
}
