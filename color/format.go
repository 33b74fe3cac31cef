package color

import (
	"fmt"
	"strconv"

	"github.com/mazznoer/csscolorparser"
)

// Notation is a CSS serialization target
type Notation string

const (
	NotationHex Notation = "hex"
	NotationRGB Notation = "rgb"
	NotationHSL Notation = "hsl"
	NotationHSV Notation = "hsv"
)

// ParseNotation maps a notation name to a Notation
func ParseNotation(s string) (Notation, error) {
	switch n := Notation(s); n {
	case NotationHex, NotationRGB, NotationHSL, NotationHSV:
		return n, nil
	}
	return "", fmt.Errorf("unknown notation %q: expected one of hex, rgb, hsl, hsv", s)
}

// Format serializes c, expressed in model from, in the given notation
func Format(c Components, from Model, to Notation) (string, error) {
	switch to {
	case NotationHex:
		return FormatHex(c, from)
	case NotationRGB:
		return FormatRGB(c, from)
	case NotationHSL:
		return FormatHSL(c, from)
	case NotationHSV:
		return FormatHSV(c, from)
	}
	return "", fmt.Errorf("unknown notation %q", to)
}

// FormatHex returns #rrggbb, or #rrggbbaa when the color is translucent
func FormatHex(c Components, from Model) (string, error) {
	rgba, err := Convert(c, from, RGBA)
	if err != nil {
		return "", err
	}
	parsed := csscolorparser.Color{
		R: rgba[0] / 255,
		G: rgba[1] / 255,
		B: rgba[2] / 255,
		A: rgba[3],
	}
	return parsed.HexString(), nil
}

// FormatRGB returns rgb(r, g, b), or rgba(r, g, b, a) when the color is translucent
func FormatRGB(c Components, from Model) (string, error) {
	rgba, err := Convert(c, from, RGBA)
	if err != nil {
		return "", err
	}
	if rgba[3] >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", int(rgba[0]), int(rgba[1]), int(rgba[2])), nil
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", int(rgba[0]), int(rgba[1]), int(rgba[2]), formatNumber(rgba[3])), nil
}

// FormatHSL returns hsl(h, s%, l%), or hsla(h, s%, l%, a) when the color is translucent
func FormatHSL(c Components, from Model) (string, error) {
	hsla, err := Convert(c, from, HSLA)
	if err != nil {
		return "", err
	}
	if hsla[3] >= 1 {
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", formatNumber(hsla[0]), formatNumber(hsla[1]), formatNumber(hsla[2])), nil
	}
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)",
		formatNumber(hsla[0]), formatNumber(hsla[1]), formatNumber(hsla[2]), formatNumber(hsla[3])), nil
}

// FormatHSV has no CSS equivalent; it mirrors FormatHSL for display
func FormatHSV(c Components, from Model) (string, error) {
	hsva, err := Convert(c, from, HSVA)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("hsva(%s, %s%%, %s%%, %s)",
		formatNumber(hsva[0]), formatNumber(hsva[1]), formatNumber(hsva[2]), formatNumber(hsva[3])), nil
}

// Normalize parses s and re-serializes it as lowercase hex
func Normalize(s string) (string, error) {
	c, err := Parse(s, RGBA)
	if err != nil {
		return "", err
	}
	return FormatHex(c, RGBA)
}

// formatNumber prints the shortest decimal that round-trips, e.g. 0.5 or 210
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
