package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Convert translates a tuple between models. The result is normalized to the
// target model's ranges and precision. Hue survives HSL<->HSV unchanged, so
// achromatic colors keep the hue the caller gave them.
func Convert(c Components, from, to Model) (Components, error) {
	if !from.Valid() {
		return Components{}, NewUnknownModelError(string(from))
	}
	if !to.Valid() {
		return Components{}, NewUnknownModelError(string(to))
	}
	if from == to {
		return normalize(c, to), nil
	}

	alpha := c.Alpha()
	var out Components

	switch {
	case from == RGBA:
		col := colorful.Color{R: c[0] / 255, G: c[1] / 255, B: c[2] / 255}
		if to == HSLA {
			h, s, l := col.Hsl()
			out = Components{h, s * 100, l * 100, alpha}
		} else {
			h, s, v := col.Hsv()
			out = Components{h, s * 100, v * 100, alpha}
		}

	case to == RGBA:
		out = toRGBA(toColorful(c, from), alpha)

	case from == HSLA && to == HSVA:
		_, s, v := toColorful(c, from).Hsv()
		out = Components{c[0], s * 100, v * 100, alpha}

	default: // HSVA -> HSLA
		_, s, l := toColorful(c, from).Hsl()
		out = Components{c[0], s * 100, l * 100, alpha}
	}

	return normalize(out, to), nil
}

// toColorful builds a go-colorful color from a hue-based tuple
func toColorful(c Components, m Model) colorful.Color {
	// go-colorful expects hue in [0,360); 360 wraps to red
	h := math.Mod(clamp(c[0], 0, 360), 360)
	s := clamp(c[1], 0, 100) / 100
	x := clamp(c[2], 0, 100) / 100
	if m == HSVA {
		return colorful.Hsv(h, s, x)
	}
	return colorful.Hsl(h, s, x)
}

func toRGBA(col colorful.Color, alpha float64) Components {
	return Components{col.R * 255, col.G * 255, col.B * 255, alpha}
}
