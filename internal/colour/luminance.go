package colour

import (
	"image/color"
	"math"
)

// WCAG 2.0 contrast thresholds.
const (
	ContrastAA       = 4.5 // Normal text, level AA
	ContrastAALarge  = 3.0 // Large text, level AA
	ContrastAAA      = 7.0 // Normal text, level AAA
	ContrastAAALarge = 4.5 // Large text, level AAA
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// Alpha is not considered; flatten translucent colours first.
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	var rgb Colour
	if cc, ok := c.(Colour); ok {
		rgb = cc
	} else {
		rgb = FromColor(c)
	}

	rf := gammaCorrect(float64(rgb.R) / 255.0)
	gf := gammaCorrect(float64(rgb.G) / 255.0)
	bf := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect linearises an sRGB channel using the WCAG 2.0 knee of 0.03928.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 color.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Mod(math.Abs(h1-h2), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
