package core

import "math"

// ScaleChannel converts a linear channel value to a byte: values <= 0 map to 0,
// values >= 1 map to 255 and everything between to floor(256*v). NaN maps to 0.
func ScaleChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(256 * v)
	}
}

// ToRGB scales every channel of c with ScaleChannel
func ToRGB(c Color) (r, g, b uint8) {
	return ScaleChannel(c.X), ScaleChannel(c.Y), ScaleChannel(c.Z)
}
