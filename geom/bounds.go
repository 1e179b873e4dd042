// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/math/vec"
)

// AABB is an axis aligned box. The zero value is a box around the origin, use
// EmptyAABB as start value for Extend.
type AABB struct {
	Min, Max vec.Vec3
}

func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: vec.Vec3{inf, inf, inf},
		Max: vec.Vec3{-inf, -inf, -inf},
	}
}

func (b AABB) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

func (b AABB) Extend(p vec.Vec3) AABB {
	return AABB{
		Min: vec.Min(b.Min, p),
		Max: vec.Max(b.Max, p),
	}
}

func (b AABB) Union(o AABB) AABB {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	return AABB{
		Min: vec.Min(b.Min, o.Min),
		Max: vec.Max(b.Max, o.Max),
	}
}

// Expand grows the box by d in every direction.
func (b AABB) Expand(d float32) AABB {
	e := vec.Vec3{d, d, d}
	return AABB{
		Min: vec.Sub(b.Min, e),
		Max: vec.Add(b.Max, e),
	}
}

func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

func (b AABB) Contains(p vec.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b AABB) Size() vec.Vec3 {
	return vec.Sub(b.Max, b.Min)
}

// Ground returns the projection of the box onto the ground plane.
func (b AABB) Ground() Rect {
	return Rect{
		MinX: b.Min.X,
		MinZ: b.Min.Z,
		MaxX: b.Max.X,
		MaxZ: b.Max.Z,
	}
}

// SegmentBounds returns the box spanned by the segment a-b.
func SegmentBounds(a, b vec.Vec3) AABB {
	lo, hi := vec.MinMax(a, b)
	return AABB{lo, hi}
}

// Rect is a 2D box in the XZ ground plane.
type Rect struct {
	MinX, MinZ float32
	MaxX, MaxZ float32
}

func (r Rect) Contains(x, z float32) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

func (r Rect) Overlaps(o Rect) bool {
	return r.MinX <= o.MaxX && r.MaxX >= o.MinX &&
		r.MinZ <= o.MaxZ && r.MaxZ >= o.MinZ
}
