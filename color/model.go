package color

import (
	"math"
	"strings"
)

// Model names the layout of a Components tuple
type Model string

const (
	// RGBA is red, green, blue in [0,255] and alpha in [0,1]
	RGBA Model = "rgba"
	// HSLA is hue in [0,360], saturation and lightness in [0,100], alpha in [0,1]
	HSLA Model = "hsla"
	// HSVA is hue in [0,360], saturation and value in [0,100], alpha in [0,1]
	HSVA Model = "hsva"
)

// Models lists the supported output models
var Models = []Model{RGBA, HSLA, HSVA}

// Valid reports whether m is one of the supported models
func (m Model) Valid() bool {
	switch m {
	case RGBA, HSLA, HSVA:
		return true
	}
	return false
}

// ParseModel maps a model name to a Model. The empty string selects RGBA.
func ParseModel(s string) (Model, error) {
	m := Model(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return RGBA, nil
	}
	if !m.Valid() {
		return "", NewUnknownModelError(s)
	}
	return m, nil
}

// Components is a four-channel color tuple whose meaning depends on its Model
type Components [4]float64

// Alpha returns the alpha channel, which is last in every model
func (c Components) Alpha() float64 {
	return c[3]
}

// normalize clamps every channel into the model's range and rounds it to the
// model's precision.
func normalize(c Components, m Model) Components {
	switch m {
	case RGBA:
		return Components{
			roundHalfUp(clamp(c[0], 0, 255)),
			roundHalfUp(clamp(c[1], 0, 255)),
			roundHalfUp(clamp(c[2], 0, 255)),
			roundTo(clamp(c[3], 0, 1), 2),
		}
	default:
		return Components{
			roundHalfUp(clamp(c[0], 0, 360)),
			roundTo(clamp(c[1], 0, 100), 1),
			roundTo(clamp(c[2], 0, 100), 1),
			roundTo(clamp(c[3], 0, 1), 2),
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return roundHalfUp(v*scale) / scale
}
