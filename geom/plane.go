// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/math/vec"
)

// PlaneEpsilon is the thickness of a plane. Points closer than this are on it.
const PlaneEpsilon = 0.01

type Side int

const (
	Front Side = iota
	Back
	Coincident
	Spanning
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	case Coincident:
		return "coincident"
	case Spanning:
		return "spanning"
	}
	return "invalid"
}

// Plane holds all points p with Dot(Normal, p) == Dist. Normal points into the
// front half-space.
type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	Type     byte // 0,1,2: axial in X,Y,Z; 3,4,5: non axial, dominant X,Y,Z
	SignBits byte // bit i set if Normal[i] < 0
}

// NewPlane returns the plane through p with normal n. n must be unit length.
func NewPlane(n vec.Vec3, p vec.Vec3) Plane {
	pl := Plane{
		Normal: n,
		Dist:   vec.Dot(n, p),
	}
	pl.categorize()
	return pl
}

// NewPlaneDist returns the plane with normal n at distance d from the origin.
func NewPlaneDist(n vec.Vec3, d float32) Plane {
	pl := Plane{
		Normal: n,
		Dist:   d,
	}
	pl.categorize()
	return pl
}

func (p *Plane) categorize() {
	p.Type = 3
	p.SignBits = 0
	best := float32(-1)
	for i := 0; i < 3; i++ {
		c := p.Normal.Idx(i)
		if c < 0 {
			p.SignBits |= 1 << i
		}
		if a := math32.Abs(c); a > best {
			best = a
			p.Type = byte(3 + i)
		}
	}
	if best == 1 {
		p.Type -= 3
	}
}

// Distance returns the signed distance of v to the plane.
func (p *Plane) Distance(v vec.Vec3) float32 {
	if p.Type < 3 {
		return v.Idx(int(p.Type))*p.Normal.Idx(int(p.Type)) - p.Dist
	}
	return vec.DoublePrecDot(p.Normal, v) - p.Dist
}

// ClassifyPoint returns Front, Back or Coincident.
func (p *Plane) ClassifyPoint(v vec.Vec3) Side {
	d := p.Distance(v)
	switch {
	case d > PlaneEpsilon:
		return Front
	case d < -PlaneEpsilon:
		return Back
	}
	return Coincident
}

// Flip returns the same plane facing the other way.
func (p Plane) Flip() Plane {
	f := Plane{
		Normal: p.Normal.Neg(),
		Dist:   -p.Dist,
	}
	f.categorize()
	return f
}

// SamePlane reports whether o lies on p, facing either way. The second result
// is true when o faces opposite to p.
func (p *Plane) SamePlane(o *Plane) (same bool, reversed bool) {
	const normalEpsilon = 0.0001
	d := vec.Dot(p.Normal, o.Normal)
	switch {
	case d > 1-normalEpsilon:
		return math32.Abs(p.Dist-o.Dist) <= PlaneEpsilon, false
	case d < -1+normalEpsilon:
		return math32.Abs(p.Dist+o.Dist) <= PlaneEpsilon, true
	}
	return false, false
}

// BoxOnPlaneSide returns 1 if the box is in front, 2 if behind and 3 if the
// plane crosses it.
func (p *Plane) BoxOnPlaneSide(b AABB) int {
	if p.Type < 3 {
		i := int(p.Type)
		n := p.Normal.Idx(i)
		lo, hi := b.Min.Idx(i)*n, b.Max.Idx(i)*n
		if lo > hi {
			lo, hi = hi, lo
		}
		if p.Dist <= lo {
			return 1
		}
		if p.Dist >= hi {
			return 2
		}
		return 3
	}
	// near and far corners of the box along the normal
	var near, far vec.Vec3
	for i := 0; i < 3; i++ {
		lo, hi := b.Min.Idx(i), b.Max.Idx(i)
		if p.SignBits&(1<<i) != 0 {
			lo, hi = hi, lo
		}
		switch i {
		case 0:
			near.X, far.X = lo, hi
		case 1:
			near.Y, far.Y = lo, hi
		case 2:
			near.Z, far.Z = lo, hi
		}
	}
	sides := 0
	if vec.Dot(p.Normal, far) >= p.Dist {
		sides = 1
	}
	if vec.Dot(p.Normal, near) < p.Dist {
		sides |= 2
	}
	return sides
}
