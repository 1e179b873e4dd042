// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/bsp"
	"github.com/tmackgit/GameDev-sub001/level"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

func build(t *testing.T, name string) *bsp.Tree {
	t.Helper()
	polys, err := level.ByName(name)
	if err != nil {
		t.Fatalf("ByName(%q): %v", name, err)
	}
	return bsp.Build(polys, bsp.DefaultBuildOptions())
}

func TestProject(t *testing.T) {
	cam := NewCamera(vec.Vec3{0, 50, 0}, vec.Vec3{100, 50, 0}, 90, 640, 480)
	x, y, ok := cam.Project(vec.Vec3{100, 50, 0})
	if !ok || math32.Abs(x-320) > 1e-2 || math32.Abs(y-240) > 1e-2 {
		t.Errorf("Project(target) = %v, %v, %v, want 320, 240, true", x, y, ok)
	}
	if _, y, _ := cam.Project(vec.Vec3{100, 80, 0}); y >= 240 {
		t.Errorf("point above the target projected to y = %v", y)
	}
	// looking down +X with Y up, +Z is to the right
	if x, _, _ := cam.Project(vec.Vec3{100, 50, 30}); x <= 320 {
		t.Errorf("point right of the target projected to x = %v", x)
	}
	if _, _, ok := cam.Project(vec.Vec3{-100, 50, 0}); ok {
		t.Errorf("point behind the eye projected")
	}
}

func TestDrawListRoom(t *testing.T) {
	tree := build(t, "room")
	cam := NewCamera(vec.Vec3{0, 64, 0}, vec.Vec3{100, 64, 0}, 90, 640, 480)
	list := DrawList(tree, cam)
	// the wall behind the eye is gone, floor, ceiling and the side walls are cut
	if polys, clipped := Count(list); polys != 5 || clipped != 4 {
		t.Errorf("Count = %d, %d, want 5, 4", polys, clipped)
	}
	for _, p := range list {
		n := p.Surface.Poly.Plane.Normal
		if n.X == 1 {
			t.Errorf("wall behind the eye drawn")
		}
		if n.X == -1 && p.Clipped {
			t.Errorf("wall in front clipped")
		}
		for _, v := range p.Points {
			if math32.IsNaN(v.X()) || math32.IsInf(v.X(), 0) || math32.IsNaN(v.Y()) || math32.IsInf(v.Y(), 0) {
				t.Errorf("bad screen point %v", v)
			}
		}
	}
}

func TestDrawListOrder(t *testing.T) {
	tree := build(t, "demo")
	eye := vec.Vec3{0, 50, 96}
	cam := NewCamera(eye, vec.Vec3{200, 50, 96}, 90, 640, 480)

	idx := make(map[*bsp.Surface]int)
	tree.TraverseForRender(eye, bsp.BackToFront, func(s *bsp.Surface) bool {
		idx[s] = len(idx)
		return true
	})

	list := DrawList(tree, cam)
	if len(list) == 0 {
		t.Fatalf("DrawList is empty")
	}
	last := -1
	pillarFront, pillarBack := false, false
	for _, p := range list {
		if i := idx[p.Surface]; i <= last {
			t.Errorf("surface drawn out of painter's order")
		} else {
			last = i
		}
		pl := p.Surface.Poly.Plane
		if d := pl.Distance(eye); d <= 0 {
			t.Errorf("back face %v drawn", p.Surface.Poly.Verts)
		}
		if pl.Normal == (vec.Vec3{-1, 0, 0}) && pl.Dist == -64 {
			pillarFront = true
		}
		if pl.Normal == (vec.Vec3{1, 0, 0}) && pl.Dist == 128 {
			pillarBack = true
		}
	}
	if !pillarFront {
		t.Errorf("pillar side facing the eye not drawn")
	}
	if pillarBack {
		t.Errorf("pillar side facing away drawn")
	}
}
