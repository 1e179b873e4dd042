// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"testing"

	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

var (
	emptyPoints = []vec.Vec3{
		{0, 50, 0},
		{-200, 10, -200},
		{100, 110, 100},  // above the pillar
		{-100, 20, 100},  // above the step
		{-150, 20, -128}, // above the low end of the ramp
		{0, 0, 0},        // on the floor
	}
	solidPoints = []vec.Vec3{
		{300, 50, 0},
		{0, -10, 0},
		{0, 140, 0},
		{100, 50, 100},  // pillar
		{-100, 8, 100},  // step
		{96, 88, -96},   // crate
		{-70, 10, -128}, // ramp
	}
)

func TestFindLeaf(t *testing.T) {
	tree, _ := demo(t)
	for _, p := range emptyPoints {
		if l := tree.FindLeaf(p); l.Solid {
			t.Errorf("FindLeaf(%v) = solid, want empty", p)
		}
	}
	for _, p := range solidPoints {
		if got := tree.PointContents(p); got != CONTENTS_SOLID {
			t.Errorf("PointContents(%v) = %v, want %v", p, got, CONTENTS_SOLID)
		}
	}
}

func TestFindLeafDeterministic(t *testing.T) {
	tree, _ := demo(t)
	for _, p := range append(emptyPoints, solidPoints...) {
		a := tree.FindLeaf(p)
		b := tree.FindLeaf(p)
		if a != b {
			t.Errorf("FindLeaf(%v) = %d then %d", p, a.ID, b.ID)
		}
		if tree.Leaf(a.ID) != a {
			t.Errorf("Leaf(%d) = %v, want %v", a.ID, tree.Leaf(a.ID), a)
		}
	}
}

func TestMaxCandidates(t *testing.T) {
	_, polys := demo(t)
	tree := Build(polys, BuildOptions{SplitPenalty: 8, MaxCandidates: 1})
	for _, p := range emptyPoints {
		if tree.FindLeaf(p).Solid {
			t.Errorf("FindLeaf(%v) = solid, want empty", p)
		}
	}
	for _, p := range solidPoints {
		if !tree.FindLeaf(p).Solid {
			t.Errorf("FindLeaf(%v) = empty, want solid", p)
		}
	}
}

// inside reports whether v lies at least margin inside the polygon edges.
func inside(p *geom.Polygon, v vec.Vec3, margin float32) bool {
	n := len(p.Verts)
	for i, a := range p.Verts {
		e := vec.Sub(p.Verts[(i+1)%n], a)
		d := vec.Dot(vec.Cross(e, vec.Sub(v, a)), p.Plane.Normal)
		if d < margin*e.Length() {
			return false
		}
	}
	return true
}

// occluders returns the surfaces crossing the line of sight from view to s.
func occluders(all []*Surface, view vec.Vec3, s *Surface) []*Surface {
	c := s.Poly.Centroid()
	var r []*Surface
	for _, o := range all {
		if o == s {
			continue
		}
		frac, hit, ok := o.Poly.IntersectSegment(view, c)
		if ok && frac < 0.99 && inside(o.Poly, hit, 0.5) {
			r = append(r, o)
		}
	}
	return r
}

func TestRenderOrder(t *testing.T) {
	tree, _ := demo(t)
	for _, view := range []vec.Vec3{{-201, 61, 203}, {37, 101, -7}, {181, 21, -199}} {
		var order []*Surface
		idx := make(map[*Surface]int)
		tree.TraverseForRender(view, BackToFront, func(s *Surface) bool {
			idx[s] = len(order)
			order = append(order, s)
			return true
		})
		checked := 0
		for _, s := range order {
			for _, o := range occluders(order, view, s) {
				checked++
				if idx[o] < idx[s] {
					t.Errorf("view %v: occluder %v drawn before %v", view, o.Poly.Verts, s.Poly.Verts)
				}
			}
		}
		if checked == 0 {
			t.Errorf("view %v: no occlusion tested", view)
		}

		var rev []*Surface
		tree.TraverseForRender(view, FrontToBack, func(s *Surface) bool {
			rev = append(rev, s)
			return true
		})
		if len(rev) != len(order) {
			t.Fatalf("FrontToBack visited %d surfaces, want %d", len(rev), len(order))
		}
		for i, s := range rev {
			for _, o := range occluders(order, view, s) {
				for j := i + 1; j < len(rev); j++ {
					if rev[j] == o {
						t.Errorf("view %v: occluder visited after occluded surface", view)
					}
				}
			}
		}
	}
}

func TestTraverseStop(t *testing.T) {
	tree, _ := demo(t)
	n := 0
	tree.TraverseForRender(vec.Vec3{}, BackToFront, func(*Surface) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("visited %d surfaces after stop, want 3", n)
	}
}

func TestTouchedLeafs(t *testing.T) {
	tree, _ := demo(t)
	outside := geom.AABB{Min: vec.Vec3{300, 0, 0}, Max: vec.Vec3{310, 10, 10}}
	tree.TouchedLeafs(outside, func(l *Leaf) {
		if !l.Solid {
			t.Errorf("box outside the level touches empty leaf %d", l.ID)
		}
	})
	empty := 0
	open := geom.AABB{Min: vec.Vec3{-10, 40, -10}, Max: vec.Vec3{10, 60, 10}}
	tree.TouchedLeafs(open, func(l *Leaf) {
		if l.Solid {
			t.Errorf("box in the open touches solid leaf %d", l.ID)
		} else {
			empty++
		}
	})
	if empty == 0 {
		t.Errorf("box in the open touches no leaf")
	}
	solid := 0
	tree.TouchedLeafs(open.Union(outside), func(l *Leaf) {
		if l.Solid {
			solid++
		}
	})
	if solid == 0 {
		t.Errorf("box through the wall touches no solid leaf")
	}
}
