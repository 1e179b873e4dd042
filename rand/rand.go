// SPDX-License-Identifier: GPL-2.0-or-later

// Package rand is a seeded noise based generator. The same seed always gives
// the same sequence, on every platform.
package rand

import (
	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/math"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

const (
	noise1 = 0xB5297A4D
	noise2 = 0x68E31DA4
	noise3 = 0x1B56C4E9
)

type Generator struct {
	idx  uint32
	seed uint32
}

func New(seed uint32) Generator {
	return Generator{seed: seed}
}

func noise(p uint32, s uint32) uint32 {
	m := p * noise1
	m += s
	m ^= m >> 8
	m *= noise2
	m ^= m << 8
	m *= noise3
	m ^= m >> 8
	return m
}

func (g *Generator) next() uint32 {
	g.idx++
	return noise(g.idx, g.seed)
}

// Intn returns a value in [0,n). It returns 0 if n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.next() % uint32(n))
}

// Float32 returns a value in [0,1).
func (g *Generator) Float32() float32 {
	return float32(g.next()%(1<<24)) / (1 << 24)
}

// Range returns a value in [lo,hi).
func (g *Generator) Range(lo, hi float32) float32 {
	return math.Lerp(lo, hi, g.Float32())
}

// Heading returns a horizontal unit vector.
func (g *Generator) Heading() vec.Vec3 {
	s, c := math32.Sincos(g.Range(0, 2*math.Pi))
	return vec.Vec3{c, 0, s}
}
