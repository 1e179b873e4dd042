// SPDX-License-Identifier: GPL-2.0-or-later

// Package gametime is the fixed step clock of the simulation.
package gametime

import (
	"github.com/tmackgit/GameDev-sub001/cvars"
	"github.com/tmackgit/GameDev-sub001/math"
)

type GameTime struct {
	time       float64
	frameTime  float64
	frameCount int
}

func (h *GameTime) Reset() {
	h.time = 0
	h.frameTime = 0
	h.frameCount = 0
}

func (h *GameTime) Time() float64      { return h.time }
func (h *GameTime) FrameTime() float64 { return h.frameTime }
func (h *GameTime) FrameCount() int    { return h.frameCount }

// Advance starts the next frame. Its length is host_framerate, kept within
// 1ms and 100ms.
func (h *GameTime) Advance() {
	h.frameTime = math.Clamp(0.001, float64(cvars.HostFrameRate.Value()), 0.1)
	h.time += h.frameTime
	h.frameCount++
}
