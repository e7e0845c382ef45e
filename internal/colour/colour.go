// Package colour provides the colour value type used by oncolour along with
// parsing, mixing, hue rotation and WCAG luminance helpers.
package colour

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour is an sRGB colour with straight (non-premultiplied) alpha.
// R, G and B are in [0,255]; A is in [0,1].
type Colour struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// Reference colours.
var (
	Black = Colour{R: 0, G: 0, B: 0, A: 1}
	White = Colour{R: 255, G: 255, B: 255, A: 1}
)

// FromColor converts any color.Color to a Colour, un-premultiplying alpha.
func FromColor(c color.Color) Colour {
	if cc, ok := c.(Colour); ok {
		return cc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Colour{R: n.R, G: n.G, B: n.B, A: float64(n.A) / 255.0}
}

// RGBA implements color.Color. Values are alpha-premultiplied.
func (c Colour) RGBA() (r, g, b, a uint32) {
	a = uint32(math.Round(clamp01(c.A) * 0xffff))
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return r, g, b, a
}

// Hex returns the colour as a lowercase hex string (e.g., "#1a2b3c"). Alpha is dropped.
func (c Colour) Hex() string {
	return c.colorful().Hex()
}

// String returns the colour in CSS form: rgb(r, g, b) when opaque, rgba(r, g, b, a) otherwise.
func (c Colour) String() string {
	if c.IsOpaque() {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, c.A)
}

// HSL returns hue (0-360), saturation (0-1) and lightness (0-1).
func (c Colour) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// Hue returns the HSL hue in degrees. Achromatic colours report 0.
func (c Colour) Hue() float64 {
	h, _, _ := c.HSL()
	return h
}

// Saturation returns the HSL saturation.
func (c Colour) Saturation() float64 {
	_, s, _ := c.HSL()
	return s
}

// Lightness returns the HSL lightness.
func (c Colour) Lightness() float64 {
	_, _, l := c.HSL()
	return l
}

// Alpha returns the alpha channel in [0,1].
func (c Colour) Alpha() float64 {
	return c.A
}

// IsOpaque reports whether the colour has full alpha.
func (c Colour) IsOpaque() bool {
	return c.A >= 1
}

// IsAchromatic reports whether the colour has zero saturation (grey, black
// or white), in which case its hue is undefined.
func (c Colour) IsAchromatic() bool {
	return c.R == c.G && c.G == c.B
}

// WithAlpha returns a copy of the colour with alpha clamped to [0,1].
func (c Colour) WithAlpha(alpha float64) Colour {
	c.A = clamp01(alpha)
	return c
}

// Flatten composites the colour over an opaque canvas and returns the opaque result.
// An opaque colour is returned unchanged.
func (c Colour) Flatten(canvas Colour) Colour {
	if c.IsOpaque() {
		return c
	}
	return Mix(c, canvas, (1-clamp01(c.A))*100).WithAlpha(1)
}

// colorful converts to go-colorful's float representation.
func (c Colour) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// fromColorful converts back from go-colorful, clamping out-of-gamut values.
func fromColorful(cf colorful.Color, alpha float64) Colour {
	r, g, b := cf.Clamped().RGB255()
	return Colour{R: r, G: g, B: b, A: clamp01(alpha)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
