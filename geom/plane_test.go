// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"testing"

	"github.com/tmackgit/GameDev-sub001/math/vec"
)

func TestPlaneType(t *testing.T) {
	tests := []struct {
		n        vec.Vec3
		typ      byte
		signBits byte
	}{
		{vec.Vec3{1, 0, 0}, 0, 0},
		{vec.Vec3{0, -1, 0}, 1, 2},
		{vec.Vec3{0, 0, 1}, 2, 0},
		{vec.Vec3{0.6, 0.8, 0}, 4, 0},
		{vec.Vec3{-0.8, 0, -0.6}, 3, 5},
	}
	for _, tc := range tests {
		p := NewPlane(tc.n, vec.Vec3{})
		if p.Type != tc.typ || p.SignBits != tc.signBits {
			t.Errorf("NewPlane(%v) = type %d, signbits %d, want %d, %d", tc.n, p.Type, p.SignBits, tc.typ, tc.signBits)
		}
	}
}

func TestPlaneDistance(t *testing.T) {
	p := NewPlane(vec.Vec3{0, 1, 0}, vec.Vec3{5, 2, 5})
	tests := []struct {
		v    vec.Vec3
		want float32
		side Side
	}{
		{vec.Vec3{0, 2, 0}, 0, Coincident},
		{vec.Vec3{0, 5, 0}, 3, Front},
		{vec.Vec3{0, -1, 9}, -3, Back},
		{vec.Vec3{0, 2.005, 0}, 0.005, Coincident},
	}
	for _, tc := range tests {
		if got := p.Distance(tc.v); got < tc.want-1e-5 || got > tc.want+1e-5 {
			t.Errorf("Distance(%v) = %v, want %v", tc.v, got, tc.want)
		}
		if got := p.ClassifyPoint(tc.v); got != tc.side {
			t.Errorf("ClassifyPoint(%v) = %v, want %v", tc.v, got, tc.side)
		}
	}
}

func TestPlaneFlip(t *testing.T) {
	p := NewPlane(vec.Vec3{0.6, 0.8, 0}, vec.Vec3{1, 1, 1})
	f := p.Flip()
	v := vec.Vec3{3, -2, 7}
	if a, b := p.Distance(v), f.Distance(v); a+b > 1e-5 || a+b < -1e-5 {
		t.Errorf("Flip distance %v, want %v", b, -a)
	}
	if same, rev := p.SamePlane(&f); !same || !rev {
		t.Errorf("SamePlane(flipped) = %v,%v, want true,true", same, rev)
	}
	if same, rev := p.SamePlane(&p); !same || rev {
		t.Errorf("SamePlane(self) = %v,%v, want true,false", same, rev)
	}
}

func TestBoxOnPlaneSide(t *testing.T) {
	box := AABB{vec.Vec3{0, 0, 0}, vec.Vec3{2, 2, 2}}
	tests := []struct {
		p    Plane
		want int
	}{
		{NewPlane(vec.Vec3{1, 0, 0}, vec.Vec3{-1, 0, 0}), 1},
		{NewPlane(vec.Vec3{1, 0, 0}, vec.Vec3{3, 0, 0}), 2},
		{NewPlane(vec.Vec3{1, 0, 0}, vec.Vec3{1, 0, 0}), 3},
		{NewPlane(vec.Vec3{-1, 0, 0}, vec.Vec3{-1, 0, 0}), 2},
		{NewPlane(vec.Vec3{0.6, 0, 0.8}, vec.Vec3{-1, 0, -1}), 1},
		{NewPlane(vec.Vec3{0.6, 0, -0.8}, vec.Vec3{1, 1, 1}), 3},
		{NewPlane(vec.Vec3{-0.6, -0.8, 0}, vec.Vec3{-1, -1, 0}), 2},
	}
	for _, tc := range tests {
		if got := tc.p.BoxOnPlaneSide(box); got != tc.want {
			t.Errorf("BoxOnPlaneSide(%v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestAABB(t *testing.T) {
	b := EmptyAABB()
	if !b.Empty() {
		t.Errorf("EmptyAABB is not empty")
	}
	b = b.Extend(vec.Vec3{1, 2, 3}).Extend(vec.Vec3{-1, 0, 5})
	want := AABB{vec.Vec3{-1, 0, 3}, vec.Vec3{1, 2, 5}}
	if b != want {
		t.Errorf("Extend = %v, want %v", b, want)
	}
	if u := b.Union(EmptyAABB()); u != b {
		t.Errorf("Union(empty) = %v, want %v", u, b)
	}
	if !b.Contains(vec.Vec3{0, 1, 4}) || b.Contains(vec.Vec3{0, 3, 4}) {
		t.Errorf("Contains wrong for %v", b)
	}
	o := AABB{vec.Vec3{1, 2, 5}, vec.Vec3{4, 4, 9}}
	if !b.Overlaps(o) {
		t.Errorf("%v.Overlaps(%v) = false, want true", b, o)
	}
	r := b.Ground()
	if r != (Rect{-1, 3, 1, 5}) {
		t.Errorf("Ground() = %v", r)
	}
	if !r.Contains(0, 4) || r.Contains(0, 6) {
		t.Errorf("Rect.Contains wrong for %v", r)
	}
}
