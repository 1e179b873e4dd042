// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

const (
	nearZ = 4
	farZ  = 4096
)

// Camera is a perspective view with Y up. Screen coordinates have their
// origin in the top left corner.
type Camera struct {
	Eye     vec.Vec3
	Forward vec.Vec3
	Width   float32
	Height  float32

	viewProj mgl32.Mat4
}

// NewCamera looks from eye at target. fovy is the vertical field of view in
// degrees. target must not be straight above or below eye.
func NewCamera(eye, target vec.Vec3, fovy, width, height float32) *Camera {
	view := mgl32.LookAtV(eye.Mgl(), target.Mgl(), vec.Up.Mgl())
	proj := mgl32.Perspective(mgl32.DegToRad(fovy), width/height, nearZ, farZ)
	return &Camera{
		Eye:      eye,
		Forward:  vec.Sub(target, eye).Normalize(),
		Width:    width,
		Height:   height,
		viewProj: proj.Mul4(view),
	}
}

// Project returns the screen position of p. ok is false for points behind
// the eye.
func (c *Camera) Project(p vec.Vec3) (x, y float32, ok bool) {
	clip := c.viewProj.Mul4x1(p.Mgl().Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}
	x = (clip.X()/w + 1) * 0.5 * c.Width
	y = (1 - clip.Y()/w) * 0.5 * c.Height
	return x, y, true
}

// nearPlane faces away from the eye, everything in front of it is visible.
func (c *Camera) nearPlane() geom.Plane {
	return geom.NewPlane(c.Forward, vec.Add(c.Eye, c.Forward.Scale(nearZ)))
}
