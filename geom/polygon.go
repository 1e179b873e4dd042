// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/math/vec"
)

// MinArea is the smallest area a polygon or split fragment may have.
const MinArea = 0.001

var (
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
	ErrDegenerate     = errors.New("polygon has no area")
	ErrNotPlanar      = errors.New("polygon vertices are not coplanar")
	ErrNotConvex      = errors.New("polygon is not convex")
)

// Polygon is a convex planar polygon. Vertices are wound counter clockwise
// when seen from the front side.
type Polygon struct {
	// ID names the source polygon. Split fragments keep the ID of their source.
	ID    uuid.UUID
	Verts []vec.Vec3
	Plane Plane
}

// NewPolygon validates verts and derives the plane from the winding.
func NewPolygon(verts []vec.Vec3) (*Polygon, error) {
	return NewPolygonWithID(uuid.Must(uuid.NewV7()), verts)
}

func NewPolygonWithID(id uuid.UUID, verts []vec.Vec3) (*Polygon, error) {
	if len(verts) < 3 {
		return nil, ErrTooFewVertices
	}
	n := newell(verts)
	l := n.Length()
	if l/2 < MinArea {
		return nil, ErrDegenerate
	}
	n = vec.Vec3{n.X / l, n.Y / l, n.Z / l}

	var center vec.Vec3
	for _, v := range verts {
		center = vec.Add(center, v)
	}
	k := float32(len(verts))
	center = vec.Vec3{center.X / k, center.Y / k, center.Z / k}

	p := &Polygon{
		ID:    id,
		Verts: append([]vec.Vec3(nil), verts...),
		Plane: NewPlane(n, center),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that p is a convex planar polygon with some area that is
// wound to match its plane.
func (p *Polygon) Validate() error {
	if len(p.Verts) < 3 {
		return ErrTooFewVertices
	}
	if p.Area() < MinArea {
		return ErrDegenerate
	}
	for _, v := range p.Verts {
		if math32.Abs(p.Plane.Distance(v)) > PlaneEpsilon {
			return ErrNotPlanar
		}
	}
	if !p.convex() {
		return ErrNotConvex
	}
	return nil
}

// newell returns the unnormalized normal, its length is twice the area.
func newell(verts []vec.Vec3) vec.Vec3 {
	var n vec.Vec3
	for i, a := range verts {
		b := verts[(i+1)%len(verts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

func (p *Polygon) convex() bool {
	const convexEpsilon = 0.001
	c := len(p.Verts)
	for i := range p.Verts {
		a := p.Verts[i]
		b := p.Verts[(i+1)%c]
		d := p.Verts[(i+2)%c]
		e1 := vec.Sub(b, a)
		e2 := vec.Sub(d, b)
		turn := vec.Dot(vec.Cross(e1, e2), p.Plane.Normal)
		if turn < -convexEpsilon*e1.Length()*e2.Length() {
			return false
		}
	}
	return true
}

// Classify returns where the polygon lies relative to pl.
func (p *Polygon) Classify(pl *Plane) Side {
	front, back := false, false
	for _, v := range p.Verts {
		switch pl.ClassifyPoint(v) {
		case Front:
			front = true
		case Back:
			back = true
		}
	}
	switch {
	case front && back:
		return Spanning
	case front:
		return Front
	case back:
		return Back
	}
	return Coincident
}

// Split cuts the polygon along pl. Vertices on the plane go to both parts.
// A part is nil if it would be degenerate.
func (p *Polygon) Split(pl *Plane) (front, back *Polygon) {
	n := len(p.Verts)
	dists := make([]float32, n)
	sides := make([]Side, n)
	for i, v := range p.Verts {
		dists[i] = pl.Distance(v)
		sides[i] = pl.ClassifyPoint(v)
	}
	var fv, bv []vec.Vec3
	for i, a := range p.Verts {
		j := (i + 1) % n
		if sides[i] != Back {
			fv = append(fv, a)
		}
		if sides[i] != Front {
			bv = append(bv, a)
		}
		if (sides[i] == Front && sides[j] == Back) ||
			(sides[i] == Back && sides[j] == Front) {
			t := dists[i] / (dists[i] - dists[j])
			m := vec.Lerp(a, p.Verts[j], t)
			fv = append(fv, m)
			bv = append(bv, m)
		}
	}
	return p.fragment(fv), p.fragment(bv)
}

func (p *Polygon) fragment(verts []vec.Vec3) *Polygon {
	const weldEpsilon = 0.0001
	w := make([]vec.Vec3, 0, len(verts))
	for _, v := range verts {
		if len(w) > 0 && vec.Near(w[len(w)-1], v, weldEpsilon) {
			continue
		}
		w = append(w, v)
	}
	for len(w) > 1 && vec.Near(w[0], w[len(w)-1], weldEpsilon) {
		w = w[:len(w)-1]
	}
	if len(w) < 3 {
		return nil
	}
	f := &Polygon{
		ID:    p.ID,
		Verts: w,
		Plane: p.Plane,
	}
	if f.Area() < MinArea {
		return nil
	}
	return f
}

// Flip returns the polygon facing the other way.
func (p *Polygon) Flip() *Polygon {
	n := len(p.Verts)
	v := make([]vec.Vec3, n)
	for i := range p.Verts {
		v[i] = p.Verts[n-1-i]
	}
	return &Polygon{
		ID:    p.ID,
		Verts: v,
		Plane: p.Plane.Flip(),
	}
}

func (p *Polygon) Area() float32 {
	var s vec.Vec3
	o := p.Verts[0]
	for i := 1; i+1 < len(p.Verts); i++ {
		s = vec.Add(s, vec.Cross(vec.Sub(p.Verts[i], o), vec.Sub(p.Verts[i+1], o)))
	}
	return s.Length() / 2
}

// Centroid returns the vertex average.
func (p *Polygon) Centroid() vec.Vec3 {
	var c vec.Vec3
	for _, v := range p.Verts {
		c = vec.Add(c, v)
	}
	return c.Scale(1 / float32(len(p.Verts)))
}

func (p *Polygon) Bounds() AABB {
	b := EmptyAABB()
	for _, v := range p.Verts {
		b = b.Extend(v)
	}
	return b
}

// Contains reports whether v, a point on the polygon plane, lies inside the
// polygon or on its border.
func (p *Polygon) Contains(v vec.Vec3) bool {
	n := len(p.Verts)
	for i, a := range p.Verts {
		e := vec.Sub(p.Verts[(i+1)%n], a)
		d := vec.Dot(vec.Cross(e, vec.Sub(v, a)), p.Plane.Normal)
		if d < -PlaneEpsilon*e.Length() {
			return false
		}
	}
	return true
}

// IntersectSegment returns where the segment a-b passes through the polygon
// as fraction along the segment. Segments lying in the plane do not hit.
func (p *Polygon) IntersectSegment(a, b vec.Vec3) (float32, vec.Vec3, bool) {
	da := p.Plane.Distance(a)
	db := p.Plane.Distance(b)
	if (da > 0 && db > 0) || (da < 0 && db < 0) || da == db {
		return 0, vec.Vec3{}, false
	}
	t := da / (da - db)
	hit := vec.Lerp(a, b, t)
	if !p.Contains(hit) {
		return 0, vec.Vec3{}, false
	}
	return t, hit, true
}
