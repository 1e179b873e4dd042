// SPDX-License-Identifier: GPL-2.0-or-later

// Package move advances bodies through the level once per frame. It owns
// velocity, while the collision resolver only corrects displacements.
package move

import (
	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/collision"
	"github.com/tmackgit/GameDev-sub001/conlog"
	"github.com/tmackgit/GameDev-sub001/math"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

type Params struct {
	Gravity     float32
	MaxVelocity float32
	// StepSize is the highest ledge a grounded body walks up.
	StepSize float32
	NoStep   bool
}

func DefaultParams() Params {
	return Params{
		Gravity:     800,
		MaxVelocity: 2000,
		StepSize:    18,
	}
}

type Body struct {
	Origin   vec.Vec3
	Velocity vec.Vec3
	Shape    collision.Cylinder
	OnGround bool
}

type Mover struct {
	resolver collision.Resolver
	params   Params
}

func NewMover(r collision.Resolver, p Params) *Mover {
	return &Mover{resolver: r, params: p}
}

func (m *Mover) Params() Params {
	return m.params
}

// checkVelocity clears NaNs and bounds every velocity component.
func (m *Mover) checkVelocity(b *Body) {
	v := b.Velocity.Array()
	o := b.Origin.Array()
	for i := range v {
		if v[i] != v[i] {
			conlog.Printf("Got a NaN velocity\n")
			v[i] = 0
		}
		if o[i] != o[i] {
			conlog.Printf("Got a NaN origin\n")
			o[i] = 0
		}
		v[i] = math.Clamp(-m.params.MaxVelocity, v[i], m.params.MaxVelocity)
	}
	b.Velocity = vec.VFromA(v)
	b.Origin = vec.VFromA(o)
}

func (m *Mover) resolve(b *Body, from, d vec.Vec3) (collision.Result, error) {
	return m.resolver.Resolve(collision.MotionRequest{
		Position:     from,
		Displacement: d,
		Shape:        b.Shape,
	})
}

// Step moves b for dt seconds. A stuck body is left untouched and the error
// of the resolver is returned.
func (m *Mover) Step(b *Body, dt float32) (collision.Result, error) {
	if !b.OnGround {
		b.Velocity.Y -= m.params.Gravity * dt
	}
	m.checkVelocity(b)

	oldOrigin := b.Origin
	oldVelocity := b.Velocity
	oldOnGround := b.OnGround

	res, err := m.resolve(b, b.Origin, b.Velocity.Scale(dt))
	if err != nil {
		return res, err
	}
	m.commit(b, b.Origin, res)

	if res.Contacts&collision.Wall == 0 || !oldOnGround || m.params.NoStep || m.params.StepSize <= 0 {
		return res, nil
	}
	if sres, ok := m.stepUp(b, oldOrigin, oldVelocity, dt); ok {
		return sres, nil
	}
	return res, nil
}

// stepUp retries a blocked ground move lifted by StepSize and puts the body
// back down. It only commits if it ends on a floor.
func (m *Mover) stepUp(b *Body, origin, velocity vec.Vec3, dt float32) (collision.Result, bool) {
	up, err := m.resolve(b, origin, vec.Vec3{0, m.params.StepSize, 0})
	if err != nil {
		return up, false
	}
	pos := vec.Add(origin, up.Displacement)

	forward := velocity.Horizontal().Scale(dt)
	fwd, err := m.resolve(b, pos, forward)
	if err != nil {
		return fwd, false
	}
	pos = vec.Add(pos, fwd.Displacement)
	if math32.Abs(pos.X-origin.X) < 1.0/32 && math32.Abs(pos.Z-origin.Z) < 1.0/32 {
		// no progress
		return fwd, false
	}

	down, err := m.resolve(b, pos, vec.Vec3{0, -up.Displacement.Y + math32.Min(velocity.Y*dt, 0), 0})
	if err != nil || down.Contacts&collision.Floor == 0 {
		return down, false
	}

	b.Origin = pos
	b.Velocity = velocity
	b.Velocity.Y = 0
	for _, n := range fwd.Normals {
		b.Velocity = collision.ClipVelocity(b.Velocity, n, 1)
	}
	m.commit(b, pos, down)
	down.Contacts |= fwd.Contacts
	down.Normals = append(fwd.Normals, down.Normals...)
	return down, true
}

// commit moves the body by the resolved displacement and removes the velocity
// going into the touched surfaces.
func (m *Mover) commit(b *Body, from vec.Vec3, res collision.Result) {
	b.Origin = vec.Add(from, res.Displacement)
	for _, n := range res.Normals {
		b.Velocity = collision.ClipVelocity(b.Velocity, n, 1)
	}
	b.OnGround = res.Contacts&collision.Floor != 0
	if b.OnGround && b.Velocity.Y < 0 {
		b.Velocity.Y = 0
	}
	if res.Contacts&collision.Ceiling != 0 && b.Velocity.Y > 0 {
		b.Velocity.Y = 0
	}
}
