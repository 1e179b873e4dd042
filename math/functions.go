// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"github.com/chewxy/math32"
)

const (
	Pi = math32.Pi
)

// Lerp returns the value frac of the way from a to b.
func Lerp(a, b, frac float32) float32 {
	return a + (b-a)*frac
}

// AngleMod changes an angle to be within 0-360 degrees
func AngleMod(a float32) float32 {
	return a - math32.Floor(a/360)*360
}

// DegToRad converts degrees to radians.
func DegToRad(a float32) float32 {
	return a * (Pi / 180)
}
