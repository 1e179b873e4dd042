// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/conlog"
	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

var ErrBadCylinder = errors.New("cylinder needs radius >= 0 and top >= bottom")

// Cylinder is an upright cylinder. Bottom and Top are heights relative to the
// origin it is placed at.
type Cylinder struct {
	Radius float32
	Bottom float32
	Top    float32
}

func (c Cylinder) Validate() error {
	if c.Radius < 0 || c.Top < c.Bottom {
		return errors.Wrapf(ErrBadCylinder, "radius %v, bottom %v, top %v", c.Radius, c.Bottom, c.Top)
	}
	return nil
}

// Bounds returns the box around the cylinder placed at origin.
func (c Cylinder) Bounds(origin vec.Vec3) geom.AABB {
	return geom.AABB{
		Min: vec.Add(origin, vec.Vec3{-c.Radius, c.Bottom, -c.Radius}),
		Max: vec.Add(origin, vec.Vec3{c.Radius, c.Top, c.Radius}),
	}
}

// support returns how far the cylinder reaches from its origin along n.
func (c Cylinder) support(n vec.Vec3) float32 {
	h := math32.Sqrt(n.X*n.X + n.Z*n.Z)
	return c.Radius*h + math32.Max(n.Y*c.Bottom, n.Y*c.Top)
}

type Trace struct {
	// StartSolid is set if the cylinder already overlaps solid space at the
	// start.
	StartSolid bool
	Hit        bool
	Fraction   float32
	EndPos     vec.Vec3
	// Plane is the blocking plane, moved out by the cylinder extent, facing
	// the start.
	Plane geom.Plane
}

type tracer struct {
	start, end vec.Vec3
	cyl        Cylinder

	startSolid bool
	hit        bool
	frac       float32
	plane      geom.Plane
}

// TraceCylinder sweeps c from start to end and stops it epsilon before the
// first solid leaf. Every plane is pushed out by the extent of the cylinder in
// its direction, so the sweep reduces to moving a point. The bevels of the
// solid leafs keep their grown corners close to the round cylinder.
func (t *Tree) TraceCylinder(start, end vec.Vec3, c Cylinder, epsilon float32) Trace {
	tr := tracer{
		start: start,
		end:   end,
		cyl:   c,
	}
	tr.check(t.root, 0, 1, nil)

	if tr.startSolid {
		return Trace{
			StartSolid: true,
			Hit:        true,
			EndPos:     start,
		}
	}
	if !tr.hit {
		return Trace{
			Fraction: 1,
			EndPos:   end,
		}
	}
	// stay epsilon in front of the plane
	d0 := tr.plane.Distance(start)
	d1 := tr.plane.Distance(end)
	frac := float32(0)
	if d0 > d1 {
		frac = math.Clamp(0, (d0-epsilon)/(d0-d1), tr.frac)
	} else {
		conlog.DPrintf("backup past 0\n")
	}
	return Trace{
		Hit:      true,
		Fraction: frac,
		EndPos:   vec.Lerp(start, end, frac),
		Plane:    tr.plane,
	}
}

// CylinderInSolid reports whether c placed at p overlaps solid space.
func (t *Tree) CylinderInSolid(p vec.Vec3, c Cylinder) bool {
	return t.TraceCylinder(p, p, c, 0).StartSolid
}

// clip returns the part of [t0,t1] where the linear function going from g0
// to g1 is positive. entering is set if g becomes positive inside.
func clip(g0, g1, t0, t1 float32) (a, b float32, entering, ok bool) {
	switch {
	case g0 > 0 && g1 > 0:
		return t0, t1, false, true
	case g0 <= 0 && g1 <= 0:
		return 0, 0, false, false
	}
	tc := t0 + (t1-t0)*g0/(g0-g1)
	if g0 > 0 {
		return t0, tc, false, true
	}
	return tc, t1, true, true
}

// check visits all leafs the cylinder overlaps while its origin moves over
// [t0,t1]. entered is the plane crossed at t0, nil if the sweep started there.
func (tr *tracer) check(node Node, t0, t1 float32, entered *geom.Plane) {
	if tr.startSolid || (tr.hit && t0 >= tr.frac) {
		return
	}
	n, ok := node.(*Split)
	if !ok {
		tr.leaf(node.(*Leaf), t0, t1, entered)
		return
	}

	pl := &n.Plane
	ds := pl.Distance(tr.start)
	de := pl.Distance(tr.end)
	d0 := ds + t0*(de-ds)
	d1 := ds + t1*(de-ds)
	sf := tr.cyl.support(pl.Normal)
	sb := tr.cyl.support(pl.Normal.Neg())

	// the cylinder reaches into the front while d > -sf, into the back while d < sb
	fa, fb, fenter, fok := clip(d0+sf, d1+sf, t0, t1)
	ba, bb, benter, bok := clip(sb-d0, sb-d1, t0, t1)

	front := func() {
		if !fok {
			return
		}
		e := entered
		if fenter {
			p := geom.NewPlaneDist(pl.Normal.Neg(), sf-pl.Dist)
			e = &p
		}
		tr.check(n.Front, fa, fb, e)
	}
	back := func() {
		if !bok {
			return
		}
		e := entered
		if benter {
			p := geom.NewPlaneDist(pl.Normal, pl.Dist+sb)
			e = &p
		}
		tr.check(n.Back, ba, bb, e)
	}

	frontFirst := d0 >= 0
	if fok && bok && fa != ba {
		frontFirst = fa < ba
	}
	if frontFirst {
		front()
		back()
	} else {
		back()
		front()
	}
}

// leaf narrows [t0,t1] down to where the cylinder also reaches behind every
// bevel of l and records the hit.
func (tr *tracer) leaf(l *Leaf, t0, t1 float32, entered *geom.Plane) {
	if !l.Solid {
		return
	}
	plane := entered
	for i := range l.Bevels {
		bv := &l.Bevels[i]
		sb := tr.cyl.support(bv.Normal.Neg())
		ds := bv.Distance(tr.start)
		de := bv.Distance(tr.end)
		g0 := sb - (ds + t0*(de-ds))
		g1 := sb - (ds + t1*(de-ds))
		a, b, enter, ok := clip(g0, g1, t0, t1)
		if !ok {
			return
		}
		if enter && (a > t0 || plane == nil) {
			p := geom.NewPlaneDist(bv.Normal, bv.Dist+sb)
			plane = &p
		}
		t0, t1 = a, b
	}
	if plane == nil {
		tr.startSolid = true
		return
	}
	if tr.hit && t0 >= tr.frac {
		return
	}
	tr.hit = true
	tr.frac = t0
	tr.plane = *plane
}
