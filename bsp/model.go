// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/tmackgit/GameDev-sub001/geom"
)

const (
	CONTENTS_EMPTY = -1
	CONTENTS_SOLID = -2
)

const (
	SurfaceNone      = 0
	SurfacePlaneBack = 1 << 1 // wound against the node plane
)

// Surface is a polygon stored at the node whose plane it lies on.
type Surface struct {
	Poly  *geom.Polygon
	Flags int
}

// Normal returns the facing of the surface.
func (s *Surface) Normal() geom.Plane {
	return s.Poly.Plane
}

// Node is either a *Split or a *Leaf.
type Node interface {
	Contents() int
}

// Split divides space by Plane. Front holds the half space the plane normal
// points into.
type Split struct {
	Plane    geom.Plane
	Surfaces []*Surface
	Front    Node
	Back     Node
	// Bounds covers all geometry below this node.
	Bounds geom.AABB
}

func (n *Split) Contents() int {
	return 0
}

// Ground returns the bounds projected onto the ground plane.
func (n *Split) Ground() geom.Rect {
	return n.Bounds.Ground()
}

// Leaf is a convex region of space, either solid or empty.
type Leaf struct {
	ID    int
	Solid bool
	// Bevels of a solid leaf face out of it and touch its corners or edges.
	// Grown by a cylinder they cut off what the node planes alone let stick out.
	Bevels []geom.Plane
}

func (l *Leaf) Contents() int {
	if l.Solid {
		return CONTENTS_SOLID
	}
	return CONTENTS_EMPTY
}
