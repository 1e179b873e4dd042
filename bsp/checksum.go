// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"encoding/binary"

	"github.com/chewxy/math32"

	"github.com/tmackgit/GameDev-sub001/crc"
)

// Checksum is a CRC over the tree shape, its planes and its surfaces. The same
// polygons built with the same options give the same checksum.
func (t *Tree) Checksum() uint16 {
	d := crc.New()
	checksum(d, t.root)
	return d.Sum16()
}

func appendFloats(b []byte, f ...float32) []byte {
	for _, v := range f {
		b = binary.LittleEndian.AppendUint32(b, math32.Float32bits(v))
	}
	return b
}

func checksum(d *crc.Digest, node Node) {
	switch n := node.(type) {
	case *Leaf:
		if n.Solid {
			b := []byte{'s'}
			for _, p := range n.Bevels {
				b = appendFloats(b, p.Normal.X, p.Normal.Y, p.Normal.Z, p.Dist)
			}
			d.Write(b)
		} else {
			d.Write([]byte{'e'})
		}
	case *Split:
		b := []byte{'n'}
		b = appendFloats(b, n.Plane.Normal.X, n.Plane.Normal.Y, n.Plane.Normal.Z, n.Plane.Dist)
		for _, s := range n.Surfaces {
			b = append(b, byte(s.Flags), byte(len(s.Poly.Verts)))
			for _, v := range s.Poly.Verts {
				b = appendFloats(b, v.X, v.Y, v.Z)
			}
		}
		d.Write(b)
		checksum(d, n.Front)
		checksum(d, n.Back)
	}
}
