package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Mix linearly interpolates between a and b in RGB space.
// percent is how far to move towards b: 0 returns a, 100 returns b.
// Values outside [0,100] are clamped. Alpha is interpolated the same way.
func Mix(a, b Colour, percent float64) Colour {
	p := clamp01(percent / 100)
	mixed := a.colorful().BlendRgb(b.colorful(), p)
	return fromColorful(mixed, a.A+(b.A-a.A)*p)
}

// Spin rotates the hue of c by degrees on the colour wheel, wrapping modulo 360.
// Positive values rotate clockwise. Saturation, lightness and alpha are kept.
// Non-finite rotations leave the colour unchanged.
func Spin(c Colour, degrees float64) Colour {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return c
	}

	h, s, l := c.HSL()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}

	return fromColorful(colorful.Hsl(h, s, l), c.A)
}
