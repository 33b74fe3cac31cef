// Package color parses CSS color literals into normalized numeric tuples.
//
// Supported notations are rgb(), rgba(), hsl(), hsla() with comma-separated
// arguments, #rgb and #rrggbb hex, and the CSS3 named colors. Parsing is pure
// and safe for concurrent use.
package color

import (
	"strings"

	"bennypowers.dev/csscolor/internal/log"
)

// Parse reads a CSS color literal and returns its channels in model.
// Surrounding whitespace and letter case are ignored. Out-of-range channels
// are clamped, never rejected. An empty model selects RGBA.
//
// Parse fails with an *InvalidColorStringError, which wraps
// ErrInvalidColorString, when s is not a supported literal.
func Parse(s string, model Model) (Components, error) {
	if model == "" {
		model = RGBA
	}
	if !model.Valid() {
		return Components{}, NewUnknownModelError(string(model))
	}

	literal := strings.ToLower(strings.TrimSpace(s))
	raw, from, shape, ok := matchLiteral(literal)
	if !ok {
		log.Debug("No color notation matched %q", s)
		return Components{}, NewInvalidColorStringError(s)
	}
	log.Debug("Matched %s notation for %q", shape, s)

	return Convert(normalize(raw, from), from, model)
}

// MustParse is like Parse but panics on error. It is intended for
// package-level color constants.
func MustParse(s string, model Model) Components {
	c, err := Parse(s, model)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether s is a supported color literal
func Valid(s string) bool {
	_, _, _, ok := matchLiteral(strings.ToLower(strings.TrimSpace(s)))
	return ok
}
