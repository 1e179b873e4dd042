// SPDX-License-Identifier: GPL-2.0-or-later

// Package level builds closed indoor geometry out of boxes.
//
// All surfaces face into the open space. The floor of a room is cut around
// everything standing on it so no polygon lies inside solid space.
package level

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

type Builder struct {
	min, max vec.Vec3
	holes    []geom.Rect
	polys    []*geom.Polygon
	err      error
}

// NewRoom starts a closed box room.
func NewRoom(min, max vec.Vec3) *Builder {
	b := &Builder{min: min, max: max}
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z {
		b.err = errors.Errorf("bad room %v %v", min, max)
		return b
	}
	for _, f := range []face{faceNegX, facePosX, facePosY, faceNegZ, facePosZ} {
		if p := b.add(boxFace(min, max, f)); p != nil {
			// the room is seen from inside
			b.polys[len(b.polys)-1] = p.Flip()
		}
	}
	return b
}

func (b *Builder) add(verts []vec.Vec3) *geom.Polygon {
	if b.err != nil {
		return nil
	}
	p, err := geom.NewPolygon(verts)
	if err != nil {
		b.err = errors.Wrapf(err, "level polygon %v", verts)
		return nil
	}
	b.polys = append(b.polys, p)
	return p
}

func (b *Builder) footprint(r geom.Rect, height float32) bool {
	if b.err != nil {
		return false
	}
	if r.MinX >= r.MaxX || r.MinZ >= r.MaxZ ||
		r.MinX <= b.min.X || r.MaxX >= b.max.X || r.MinZ <= b.min.Z || r.MaxZ >= b.max.Z {
		b.err = errors.Errorf("footprint %v outside of room", r)
		return false
	}
	if height <= 0 || b.min.Y+height >= b.max.Y {
		b.err = errors.Errorf("height %v does not fit into room", height)
		return false
	}
	for _, h := range b.holes {
		if h.Overlaps(r) {
			b.err = errors.Errorf("footprint %v overlaps %v", r, h)
			return false
		}
	}
	b.holes = append(b.holes, r)
	return true
}

// Pillar adds a box standing on the floor.
func (b *Builder) Pillar(r geom.Rect, height float32) *Builder {
	if !b.footprint(r, height) {
		return b
	}
	min := vec.Vec3{r.MinX, b.min.Y, r.MinZ}
	max := vec.Vec3{r.MaxX, b.min.Y + height, r.MaxZ}
	for _, f := range []face{faceNegX, facePosX, facePosY, faceNegZ, facePosZ} {
		b.add(boxFace(min, max, f))
	}
	return b
}

// Ramp adds a wedge standing on the floor that rises towards +X.
func (b *Builder) Ramp(r geom.Rect, height float32) *Builder {
	if !b.footprint(r, height) {
		return b
	}
	y0, y1 := b.min.Y, b.min.Y+height
	x0, x1, z0, z1 := r.MinX, r.MaxX, r.MinZ, r.MaxZ
	b.add([]vec.Vec3{{x0, y0, z0}, {x0, y0, z1}, {x1, y1, z1}, {x1, y1, z0}})
	b.add(boxFace(vec.Vec3{x0, y0, z0}, vec.Vec3{x1, y1, z1}, facePosX))
	b.add([]vec.Vec3{{x0, y0, z0}, {x1, y1, z0}, {x1, y0, z0}})
	b.add([]vec.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}})
	return b
}

// Crate adds a closed box floating inside the room.
func (b *Builder) Crate(min, max vec.Vec3) *Builder {
	if b.err != nil {
		return b
	}
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z ||
		min.X <= b.min.X || min.Y <= b.min.Y || min.Z <= b.min.Z ||
		max.X >= b.max.X || max.Y >= b.max.Y || max.Z >= b.max.Z {
		b.err = errors.Errorf("bad crate %v %v", min, max)
		return b
	}
	for f := faceNegX; f <= facePosZ; f++ {
		b.add(boxFace(min, max, f))
	}
	return b
}

// Polygons returns the finished geometry.
func (b *Builder) Polygons() ([]*geom.Polygon, error) {
	if b.err != nil {
		return nil, b.err
	}
	polys := append([]*geom.Polygon(nil), b.polys...)
	floor, err := b.floor()
	if err != nil {
		return nil, err
	}
	return append(polys, floor...), nil
}

// floor covers the room bottom with rectangles, leaving out the holes.
func (b *Builder) floor() ([]*geom.Polygon, error) {
	xs := []float32{b.min.X, b.max.X}
	zs := []float32{b.min.Z, b.max.Z}
	for _, h := range b.holes {
		xs = append(xs, h.MinX, h.MaxX)
		zs = append(zs, h.MinZ, h.MaxZ)
	}
	slices.Sort(xs)
	slices.Sort(zs)
	xs = slices.Compact(xs)
	zs = slices.Compact(zs)

	y := b.min.Y
	var polys []*geom.Polygon
	for i := 0; i+1 < len(xs); i++ {
		for j := 0; j+1 < len(zs); j++ {
			cx := (xs[i] + xs[i+1]) / 2
			cz := (zs[j] + zs[j+1]) / 2
			if b.covered(cx, cz) {
				continue
			}
			p, err := geom.NewPolygon([]vec.Vec3{
				{xs[i], y, zs[j]},
				{xs[i], y, zs[j+1]},
				{xs[i+1], y, zs[j+1]},
				{xs[i+1], y, zs[j]},
			})
			if err != nil {
				return nil, errors.Wrap(err, "floor")
			}
			polys = append(polys, p)
		}
	}
	return polys, nil
}

func (b *Builder) covered(x, z float32) bool {
	for _, h := range b.holes {
		if h.Contains(x, z) {
			return true
		}
	}
	return false
}

type face int

const (
	faceNegX face = iota
	facePosX
	faceNegY
	facePosY
	faceNegZ
	facePosZ
)

// boxFace returns the outward facing side of the box.
func boxFace(min, max vec.Vec3, f face) []vec.Vec3 {
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z
	switch f {
	case faceNegX:
		return []vec.Vec3{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}
	case facePosX:
		return []vec.Vec3{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}}
	case faceNegY:
		return []vec.Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}
	case facePosY:
		return []vec.Vec3{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}}
	case faceNegZ:
		return []vec.Vec3{{x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}, {x1, y0, z0}}
	default:
		return []vec.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}
	}
}
