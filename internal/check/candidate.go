package check

import (
	"strings"

	"bennypowers.dev/csscolor/internal/collections"
)

// colorProperties take a single color value
var colorProperties = collections.NewFoldedSet(
	"color",
	"background",
	"background-color",
	"border-color",
	"border-top-color",
	"border-right-color",
	"border-bottom-color",
	"border-left-color",
	"border-block-color",
	"border-block-start-color",
	"border-block-end-color",
	"border-inline-color",
	"border-inline-start-color",
	"border-inline-end-color",
	"outline-color",
	"column-rule-color",
	"text-decoration-color",
	"text-emphasis-color",
	"caret-color",
	"accent-color",
	"fill",
	"stroke",
	"stop-color",
	"flood-color",
	"lighting-color",
	"scrollbar-color",
)

// keywords are identifiers that are valid in a color position but are not
// color literals
var keywords = collections.NewFoldedSet(
	"inherit",
	"initial",
	"unset",
	"revert",
	"revert-layer",
	"currentcolor",
	"transparent",
	"none",
	"auto",
)

// isColorProperty reports whether property holds a color. Custom properties
// qualify when their name mentions color.
func (c *Checker) isColorProperty(property string) bool {
	if colorProperties.Has(property) || c.extra().Has(property) {
		return true
	}
	return strings.HasPrefix(property, "--") && strings.Contains(strings.ToLower(property), "color")
}

// isCandidate reports whether text, one component of property's value,
// should be checked as a color literal. Functional and hex notations always
// are; a bare identifier is when it is the whole value of a color property.
func (c *Checker) isCandidate(property, text string, whole bool) bool {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "#") {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla("} {
		if strings.HasPrefix(lower, fn) {
			return true
		}
	}
	return whole && isIdent(lower) && !keywords.Has(lower) && c.isColorProperty(property)
}

// isIdent matches a plain CSS identifier such as "red" or "light-blue"
func isIdent(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '-':
		default:
			return false
		}
	}
	return true
}
