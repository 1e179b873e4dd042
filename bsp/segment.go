// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

// Hit is where a segment first meets a surface.
type Hit struct {
	Point    vec.Vec3
	Fraction float32
	// Plane is the surface plane facing the segment start.
	Plane   geom.Plane
	Surface *Surface
}

type segmentQuery struct {
	start, end vec.Vec3
	hit        Hit
	found      bool
}

// IntersectSegment returns the surface hit closest to start.
func (t *Tree) IntersectSegment(start, end vec.Vec3) (Hit, bool) {
	q := segmentQuery{start: start, end: end}
	q.hit.Fraction = 1
	q.check(t.root, 0, 1)
	return q.hit, q.found
}

// LineOfSight reports whether no surface lies between a and b.
func (t *Tree) LineOfSight(a, b vec.Vec3) bool {
	_, hit := t.IntersectSegment(a, b)
	return !hit
}

func (q *segmentQuery) check(node Node, f0, f1 float32) {
	n, ok := node.(*Split)
	if !ok {
		return
	}
	if q.found && f0 > q.hit.Fraction {
		return
	}
	p0 := vec.Lerp(q.start, q.end, f0)
	p1 := vec.Lerp(q.start, q.end, f1)
	if !n.Bounds.Expand(geom.PlaneEpsilon).Overlaps(geom.SegmentBounds(p0, p1)) {
		return
	}
	d0 := n.Plane.Distance(p0)
	d1 := n.Plane.Distance(p1)
	if d0 > geom.PlaneEpsilon && d1 > geom.PlaneEpsilon {
		q.check(n.Front, f0, f1)
		return
	}
	if d0 < -geom.PlaneEpsilon && d1 < -geom.PlaneEpsilon {
		q.check(n.Back, f0, f1)
		return
	}

	near, far := n.Front, n.Back
	if d0 < 0 {
		near, far = far, near
	}
	mid := f1
	if (d0 < 0) != (d1 < 0) {
		mid = f0 + (f1-f0)*d0/(d0-d1)
	}
	if mid == f1 {
		// runs along the plane, both sides may be hit anywhere
		q.check(near, f0, f1)
	} else {
		q.check(near, f0, mid)
	}
	for _, s := range n.Surfaces {
		frac, p, ok := s.Poly.IntersectSegment(q.start, q.end)
		if !ok || (q.found && frac >= q.hit.Fraction) {
			continue
		}
		pl := s.Poly.Plane
		if pl.Distance(q.start) < 0 {
			pl = pl.Flip()
		}
		q.hit = Hit{
			Point:    p,
			Fraction: frac,
			Plane:    pl,
			Surface:  s,
		}
		q.found = true
	}
	if mid == f1 {
		q.check(far, f0, f1)
	} else {
		q.check(far, mid, f1)
	}
}
