// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/geom"
	"github.com/tmackgit/GameDev-sub001/math/vec"
)

var (
	RoomMin = vec.Vec3{-256, 0, -256}
	RoomMax = vec.Vec3{256, 128, 256}
)

var levels = map[string]func() *Builder{
	"room": func() *Builder {
		return NewRoom(RoomMin, RoomMax)
	},
	"demo": demo,
}

// demo is a room with a pillar, a step, a ramp and a floating crate.
func demo() *Builder {
	return NewRoom(RoomMin, RoomMax).
		Pillar(geom.Rect{MinX: 64, MinZ: 64, MaxX: 128, MaxZ: 128}, 96).
		Pillar(geom.Rect{MinX: -128, MinZ: 64, MaxX: -64, MaxZ: 128}, 16).
		Ramp(geom.Rect{MinX: -160, MinZ: -160, MaxX: -64, MaxZ: -96}, 32).
		Crate(vec.Vec3{64, 80, -128}, vec.Vec3{128, 96, -64})
}

func Demo() ([]*geom.Polygon, error) {
	return demo().Polygons()
}

// ByName returns the geometry of a named level.
func ByName(name string) ([]*geom.Polygon, error) {
	l, ok := levels[name]
	if !ok {
		return nil, errors.Errorf("unknown level %q, have %v", name, Names())
	}
	return l().Polygons()
}

func Names() []string {
	n := make([]string, 0, len(levels))
	for k := range levels {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
