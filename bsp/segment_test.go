// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/math/vec"
)

func TestIntersectSegment(t *testing.T) {
	tree, _ := demo(t)
	tests := []struct {
		name       string
		start, end vec.Vec3
		point      vec.Vec3
		normal     vec.Vec3
	}{
		{"floor", vec.Vec3{0, 64, 0}, vec.Vec3{0, -64, 0}, vec.Vec3{0, 0, 0}, vec.Vec3{0, 1, 0}},
		{"ceiling", vec.Vec3{0, 64, 0}, vec.Vec3{0, 192, 0}, vec.Vec3{0, 128, 0}, vec.Vec3{0, -1, 0}},
		{"pillar", vec.Vec3{0, 50, 100}, vec.Vec3{200, 50, 100}, vec.Vec3{64, 50, 100}, vec.Vec3{-1, 0, 0}},
		{"pillar top", vec.Vec3{100, 120, 100}, vec.Vec3{100, 0, 100}, vec.Vec3{100, 96, 100}, vec.Vec3{0, 1, 0}},
		{"wall", vec.Vec3{0, 50, 0}, vec.Vec3{0, 50, -400}, vec.Vec3{0, 50, -256}, vec.Vec3{0, 0, 1}},
		{"crate bottom", vec.Vec3{96, 40, -96}, vec.Vec3{96, 120, -96}, vec.Vec3{96, 80, -96}, vec.Vec3{0, -1, 0}},
		// seen from outside, the room walls face away
		{"wall from outside", vec.Vec3{300, 50, 0}, vec.Vec3{200, 50, 0}, vec.Vec3{256, 50, 0}, vec.Vec3{1, 0, 0}},
	}
	for _, tc := range tests {
		h, ok := tree.IntersectSegment(tc.start, tc.end)
		if !ok {
			t.Errorf("%s: IntersectSegment(%v,%v) missed", tc.name, tc.start, tc.end)
			continue
		}
		if !vec.Near(h.Point, tc.point, 1e-3) {
			t.Errorf("%s: hit point %v, want %v", tc.name, h.Point, tc.point)
		}
		if !vec.Near(h.Plane.Normal, tc.normal, 1e-5) {
			t.Errorf("%s: hit normal %v, want %v", tc.name, h.Plane.Normal, tc.normal)
		}
		if want := vec.Sub(tc.point, tc.start).Length() / vec.Sub(tc.end, tc.start).Length(); math32.Abs(h.Fraction-want) > 1e-4 {
			t.Errorf("%s: fraction %v, want %v", tc.name, h.Fraction, want)
		}
		if h.Surface == nil {
			t.Errorf("%s: no surface", tc.name)
		}
	}
}

func TestIntersectSegmentMiss(t *testing.T) {
	tree, _ := demo(t)
	if h, ok := tree.IntersectSegment(vec.Vec3{0, 50, 0}, vec.Vec3{-50, 60, 30}); ok {
		t.Errorf("IntersectSegment hit %v in the open", h.Point)
	}
}

// The tree must agree with testing every polygon.
func TestIntersectSegmentBruteForce(t *testing.T) {
	tree, _ := demo(t)
	all := surfaces(tree)
	r := rand.New(rand.NewSource(1))
	rnd := func() vec.Vec3 {
		return vec.Vec3{
			r.Float32()*560 - 280,
			r.Float32()*150 - 10,
			r.Float32()*560 - 280,
		}
	}
	for i := 0; i < 500; i++ {
		a, b := rnd(), rnd()
		best := float32(2)
		for _, s := range all {
			if f, _, ok := s.Poly.IntersectSegment(a, b); ok && f < best {
				best = f
			}
		}
		h, ok := tree.IntersectSegment(a, b)
		if ok != (best <= 1) {
			t.Errorf("IntersectSegment(%v,%v) = %v, brute force %v", a, b, ok, best <= 1)
			continue
		}
		if ok && math32.Abs(h.Fraction-best) > 1e-3 {
			t.Errorf("IntersectSegment(%v,%v) fraction %v, brute force %v", a, b, h.Fraction, best)
		}
	}
}

func TestLineOfSight(t *testing.T) {
	tree, _ := demo(t)
	tests := []struct {
		a, b vec.Vec3
		want bool
	}{
		{vec.Vec3{0, 50, 96}, vec.Vec3{200, 50, 96}, false}, // through the pillar
		{vec.Vec3{0, 50, 96}, vec.Vec3{0, 50, -200}, true},
		{vec.Vec3{0, 110, 96}, vec.Vec3{200, 110, 96}, true}, // over the pillar
		{vec.Vec3{-200, 8, 96}, vec.Vec3{0, 8, 96}, false},   // the step
	}
	for _, tc := range tests {
		if got := tree.LineOfSight(tc.a, tc.b); got != tc.want {
			t.Errorf("LineOfSight(%v,%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
