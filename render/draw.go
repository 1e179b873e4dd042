// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tmackgit/GameDev-sub001/bsp"
	"github.com/tmackgit/GameDev-sub001/geom"
)

// Poly is a visible surface in screen coordinates.
type Poly struct {
	Surface *bsp.Surface
	Points  []mgl32.Vec2
	// Clipped is set if the surface crossed the near plane.
	Clipped bool
}

// DrawList returns the surfaces facing cam in painter's order, far ones
// first. Surfaces crossing the near plane are cut down to the visible part.
func DrawList(tree *bsp.Tree, cam *Camera) []Poly {
	var list []Poly
	near := cam.nearPlane()
	tree.TraverseForRender(cam.Eye, bsp.BackToFront, func(s *bsp.Surface) bool {
		p := s.Poly
		if p.Plane.Distance(cam.Eye) <= 0 {
			return true
		}
		clipped := false
		switch p.Classify(&near) {
		case geom.Back, geom.Coincident:
			return true
		case geom.Spanning:
			p, _ = p.Split(&near)
			if p == nil {
				return true
			}
			clipped = true
		}
		pts := make([]mgl32.Vec2, 0, len(p.Verts))
		for _, v := range p.Verts {
			x, y, ok := cam.Project(v)
			if !ok {
				return true
			}
			pts = append(pts, mgl32.Vec2{x, y})
		}
		list = append(list, Poly{Surface: s, Points: pts, Clipped: clipped})
		return true
	})
	return list
}

// Count returns the number of polygons and how many of them were clipped.
func Count(list []Poly) (polys, clipped int) {
	for _, p := range list {
		if p.Clipped {
			clipped++
		}
	}
	return len(list), clipped
}
