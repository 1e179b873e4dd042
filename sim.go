// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/bsp"
	"github.com/tmackgit/GameDev-sub001/collision"
	"github.com/tmackgit/GameDev-sub001/commandline"
	"github.com/tmackgit/GameDev-sub001/gametime"
	"github.com/tmackgit/GameDev-sub001/math/vec"
	"github.com/tmackgit/GameDev-sub001/move"
	"github.com/tmackgit/GameDev-sub001/rand"
)

const (
	numBots   = 3
	walkSpeed = 200
)

var playerShape = collision.Cylinder{Radius: 16, Bottom: -24, Top: 32}

type sim struct {
	mover  *move.Mover
	tree   *bsp.Tree
	clock  gametime.GameTime
	rng    rand.Generator
	bodies []*move.Body
	// heading per body, the player walks a fixed diagonal
	headings []vec.Vec3
	contacts map[collision.Contact]int
	stuck    int
}

func newSim(m *move.Mover, tree *bsp.Tree) *sim {
	s := &sim{
		mover:    m,
		tree:     tree,
		rng:      rand.New(1),
		contacts: make(map[collision.Contact]int),
	}
	s.add(vec.Vec3{-200, 60, 96}, vec.Vec3{0.8, 0, -0.6})
	for i := 0; i < numBots; i++ {
		if p, ok := s.spawnPoint(); ok {
			s.add(p, s.rng.Heading())
		}
	}
	return s
}

func (s *sim) add(origin, heading vec.Vec3) {
	s.bodies = append(s.bodies, &move.Body{Origin: origin, Shape: playerShape})
	s.headings = append(s.headings, heading)
}

func (s *sim) player() *move.Body {
	return s.bodies[0]
}

// spawnPoint picks a free spot in the air above the level.
func (s *sim) spawnPoint() (vec.Vec3, bool) {
	b := s.tree.Bounds()
	for try := 0; try < 32; try++ {
		p := vec.Vec3{
			s.rng.Range(b.Min.X, b.Max.X),
			s.rng.Range(b.Min.Y, b.Max.Y),
			s.rng.Range(b.Min.Z, b.Max.Z),
		}
		if !s.tree.CylinderInSolid(p, playerShape) {
			return p, true
		}
	}
	return vec.Vec3{}, false
}

func (s *sim) run(frames int) {
	for i := 0; i < frames; i++ {
		s.clock.Advance()
		s.frame(float32(s.clock.FrameTime()))
	}
}

func (s *sim) frame(dt float32) {
	for i, b := range s.bodies {
		if b == nil {
			continue
		}
		h := s.headings[i].Scale(walkSpeed)
		b.Velocity.X, b.Velocity.Z = h.X, h.Z
		res, err := s.mover.Step(b, dt)
		if errors.Cause(err) == collision.ErrStuck {
			// the body stays where it is, it is a spawn error
			slog.Error("body stuck", "body", i, "err", err)
			s.stuck++
			if i > 0 {
				s.bodies[i] = nil
			}
			continue
		} else if err != nil {
			slog.Error("step failed", "body", i, "err", err)
			continue
		}
		for _, c := range []collision.Contact{collision.Floor, collision.Wall, collision.Ceiling} {
			if res.Contacts&c != 0 {
				s.contacts[c]++
			}
		}
		if i > 0 && res.Contacts&collision.Wall != 0 {
			s.headings[i] = s.rng.Heading()
		}
		if i == 0 && commandline.Trace() && s.clock.FrameCount()%commandline.TraceInterval() == 0 {
			slog.Info("player",
				"frame", s.clock.FrameCount(),
				"origin", b.Origin,
				"velocity", b.Velocity,
				"contacts", res.Contacts,
				"onGround", b.OnGround)
		}
	}
}
