// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

const (
	// bevelMargin grows the tree bounds into the box that closes unbounded
	// solid cells.
	bevelMargin = 64
	// bevelStep is the largest angle between two bevels around a rounded
	// edge. A cylinder of radius r reaches at most r*(1/cos(bevelStep/2)-1)
	// too far there.
	bevelStep    = 5 * math32.Pi / 180
	bevelEpsilon = 1.0 / 64
	bevelSamples = 72
)

// boxPlanes returns the sides of b facing out.
func boxPlanes(b geom.AABB) []geom.Plane {
	return []geom.Plane{
		geom.NewPlaneDist(vec.Vec3{1, 0, 0}, b.Max.X),
		geom.NewPlaneDist(vec.Vec3{-1, 0, 0}, -b.Min.X),
		geom.NewPlaneDist(vec.Vec3{0, 1, 0}, b.Max.Y),
		geom.NewPlaneDist(vec.Vec3{0, -1, 0}, -b.Min.Y),
		geom.NewPlaneDist(vec.Vec3{0, 0, 1}, b.Max.Z),
		geom.NewPlaneDist(vec.Vec3{0, 0, -1}, -b.Min.Z),
	}
}

// cell is the convex region of a leaf, closed by the box around the tree.
// All planes face out of it.
type cell struct {
	planes []geom.Plane
	// the planes after path close the box
	path   int
	verts  []vec.Vec3
	bevels []geom.Plane
}

// bevels returns the planes that cut the edges and corners off the cell
// bounded by path once it is grown by a cylinder. Every bevel touches the
// cell, so point queries are not changed by them.
func (b *builder) bevels(path []geom.Plane) []geom.Plane {
	if len(b.box) == 0 {
		return nil
	}
	c := &cell{
		planes: append(append([]geom.Plane(nil), path...), b.box...),
		path:   len(path),
	}
	c.corners()
	if len(c.verts) < 4 {
		return nil
	}
	for i := 0; i < c.path; i++ {
		for j := i + 1; j < c.path; j++ {
			c.edge(&c.planes[i], &c.planes[j])
		}
	}
	c.vertex(vec.Up)
	c.vertex(vec.Up.Neg())
	for i := 0; i < bevelSamples; i++ {
		s, co := math32.Sincos(2 * math32.Pi * float32(i) / bevelSamples)
		c.vertex(vec.Vec3{co, 0, s})
	}
	return c.bevels
}

func intersect(a, b, c *geom.Plane) (vec.Vec3, bool) {
	bc := vec.Cross(b.Normal, c.Normal)
	det := vec.Dot(a.Normal, bc)
	if math32.Abs(det) < 1e-6 {
		return vec.Vec3{}, false
	}
	v := vec.Add(bc.Scale(a.Dist), vec.Cross(c.Normal, a.Normal).Scale(b.Dist))
	v = vec.Add(v, vec.Cross(a.Normal, b.Normal).Scale(c.Dist))
	return v.Scale(1 / det), true
}

// corners collects the vertices of the cell.
func (c *cell) corners() {
	n := len(c.planes)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
		next:
			for k := j + 1; k < n; k++ {
				v, ok := intersect(&c.planes[i], &c.planes[j], &c.planes[k])
				if !ok {
					continue
				}
				for l := range c.planes {
					if c.planes[l].Distance(v) > bevelEpsilon {
						continue next
					}
				}
				for _, w := range c.verts {
					if vec.Near(v, w, bevelEpsilon) {
						continue next
					}
				}
				c.verts = append(c.verts, v)
			}
		}
	}
}

func on(v vec.Vec3, p *geom.Plane) bool {
	return math32.Abs(p.Distance(v)) <= bevelEpsilon
}

// boxVert reports whether v lies on the box closing the cell.
func (c *cell) boxVert(v vec.Vec3) bool {
	for i := c.path; i < len(c.planes); i++ {
		if on(v, &c.planes[i]) {
			return true
		}
	}
	return false
}

func (c *cell) support(n vec.Vec3) float32 {
	h := float32(-math32.MaxFloat32)
	for _, v := range c.verts {
		h = math32.Max(h, vec.Dot(n, v))
	}
	return h
}

func (c *cell) add(n vec.Vec3) {
	d := c.support(n)
	for _, ps := range [][]geom.Plane{c.planes, c.bevels} {
		for i := range ps {
			if vec.Dot(ps[i].Normal, n) > 1-1e-4 && ps[i].Dist <= d+bevelEpsilon {
				return
			}
		}
	}
	c.bevels = append(c.bevels, geom.NewPlaneDist(n, d))
}

// edge bevels the edge where a and b meet, if the cell has one.
func (c *cell) edge(a, b *geom.Plane) {
	shared := 0
	for _, v := range c.verts {
		if on(v, a) && on(v, b) {
			shared++
		}
	}
	if shared < 2 {
		return
	}
	e := vec.Cross(a.Normal, b.Normal)
	if e.Length() < 1e-4 {
		return
	}
	inArc := func(n vec.Vec3) bool {
		return vec.Dot(vec.Cross(a.Normal, n), e) >= -1e-6 && vec.Dot(vec.Cross(n, b.Normal), e) >= -1e-6
	}
	e = e.Normalize()

	if u := vec.Cross(vec.Up, e); u.Length() > 1e-4 {
		u = u.Normalize()
		for _, n := range []vec.Vec3{u, u.Neg()} {
			if inArc(n) {
				c.add(n)
			}
		}
	}
	if math32.Abs(e.Y) < 1e-4 {
		// across a level edge the cylinder is a box, its sides and caps do
		for _, n := range []vec.Vec3{vec.Up, vec.Up.Neg()} {
			if inArc(n) {
				c.add(n)
			}
		}
		return
	}

	th := math32.Acos(math.Clamp(-1, vec.Dot(a.Normal, b.Normal), 1))
	steps := int(math32.Ceil(th/bevelStep - 1e-3))
	s := math32.Sin(th)
	for i := 1; i < steps; i++ {
		f := float32(i) / float32(steps)
		n := vec.Add(a.Normal.Scale(math32.Sin((1-f)*th)/s), b.Normal.Scale(math32.Sin(f*th)/s))
		c.add(n.Normalize())
	}
}

// vertex bevels along n unless the cell reaches that far at the box, where
// an unbounded cell would go on.
func (c *cell) vertex(n vec.Vec3) {
	h := c.support(n)
	for _, v := range c.verts {
		if vec.Dot(n, v) > h-bevelEpsilon && c.boxVert(v) {
			return
		}
	}
	c.add(n)
}
