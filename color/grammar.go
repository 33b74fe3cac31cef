package color

import (
	"errors"
	"strconv"
	"strings"
)

// matcher accepts a token by kind and, when text is set, by exact text
type matcher struct {
	kind Kind
	text string
}

func (m matcher) accepts(t Token) bool {
	return t.Kind == m.kind && (m.text == "" || t.Text == m.text)
}

// shape is one fixed token sequence the parser recognizes. Values are the
// numeric readings of the Number and Percentage tokens in order.
type shape struct {
	name    string
	model   Model
	pattern []matcher
	build   func(values []float64) Components
}

// functional builds the pattern keyword, arg, ",", arg, ..., ")".
func functional(keyword string, args ...Kind) []matcher {
	pattern := []matcher{{kind: Function, text: keyword}}
	for i, kind := range args {
		if i > 0 {
			pattern = append(pattern, matcher{kind: Char, text: ","})
		}
		pattern = append(pattern, matcher{kind: kind})
	}
	return append(pattern, matcher{kind: Char, text: ")"})
}

// percentToChannel maps 0-100% onto 0-255
func percentToChannel(p float64) float64 {
	return p / 100 * 255
}

// shapes are tried in order; the first match wins. RGB and RGB% share a
// length, as do RGBA and RGBA%, so the order is significant.
//
// RGBA% deliberately expects the "rgb(" keyword: "rgba(" with percentages is
// not a supported notation.
var shapes = []shape{
	{
		name:    "rgb",
		model:   RGBA,
		pattern: functional("rgb(", Number, Number, Number),
		build: func(v []float64) Components {
			return Components{v[0], v[1], v[2], 1}
		},
	},
	{
		name:    "rgb%",
		model:   RGBA,
		pattern: functional("rgb(", Percentage, Percentage, Percentage),
		build: func(v []float64) Components {
			return Components{percentToChannel(v[0]), percentToChannel(v[1]), percentToChannel(v[2]), 1}
		},
	},
	{
		name:    "rgba",
		model:   RGBA,
		pattern: functional("rgba(", Number, Number, Number, Number),
		build: func(v []float64) Components {
			return Components{v[0], v[1], v[2], v[3]}
		},
	},
	{
		name:    "rgba%",
		model:   RGBA,
		pattern: functional("rgb(", Percentage, Percentage, Percentage, Number),
		build: func(v []float64) Components {
			return Components{percentToChannel(v[0]), percentToChannel(v[1]), percentToChannel(v[2]), v[3]}
		},
	},
	{
		name:    "hsl",
		model:   HSLA,
		pattern: functional("hsl(", Number, Percentage, Percentage),
		build: func(v []float64) Components {
			return Components{v[0], v[1], v[2], 1}
		},
	},
	{
		name:    "hsla",
		model:   HSLA,
		pattern: functional("hsla(", Number, Percentage, Percentage, Number),
		build: func(v []float64) Components {
			return Components{v[0], v[1], v[2], v[3]}
		},
	},
}

// match returns the shape tokens fit, if any.
func (s *shape) match(tokens []Token) ([]float64, bool) {
	if len(tokens) != len(s.pattern) {
		return nil, false
	}
	var values []float64
	for i, m := range s.pattern {
		if !m.accepts(tokens[i]) {
			return nil, false
		}
		if m.kind == Number || m.kind == Percentage {
			v, ok := parseNumber(tokens[i].Text)
			if !ok {
				return nil, false
			}
			values = append(values, v)
		}
	}
	return values, true
}

// matchLiteral runs the grammar over a trimmed, lower-cased literal and
// returns the raw, unclamped tuple with the model it is expressed in.
func matchLiteral(literal string) (raw Components, model Model, name string, ok bool) {
	tokens := Tokenize(literal)

	for i := range shapes {
		if values, ok := shapes[i].match(tokens); ok {
			return shapes[i].build(values), shapes[i].model, shapes[i].name, true
		}
	}

	if len(tokens) == 1 && tokens[0].Kind == Hex {
		if c, ok := parseHex(tokens[0].Text); ok {
			return c, RGBA, "hex", true
		}
	}

	if rgb, ok := namedColors[literal]; ok {
		return Components{float64(rgb[0]), float64(rgb[1]), float64(rgb[2]), 1}, RGBA, "named", true
	}

	return Components{}, "", "", false
}

// parseHex reads "#rgb" or "#rrggbb"; the short form doubles each digit.
func parseHex(text string) (Components, bool) {
	digits := strings.TrimPrefix(text, "#")
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return Components{}, false
	}

	var c Components
	for i := range 3 {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return Components{}, false
		}
		c[i] = float64(v)
	}
	c[3] = 1
	return c, true
}

// parseNumber reads the longest numeric prefix of text: an optional "-",
// digits, and at most one fractional part. "1.2.3" reads as 1.2 and a
// trailing "%" is ignored. Text with no digits in its prefix is rejected.
func parseNumber(text string) (float64, bool) {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}
	digits := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
		digits++
	}
	if i < len(text) && text[i] == '.' {
		j := i + 1
		for j < len(text) && text[j] >= '0' && text[j] <= '9' {
			j++
		}
		if j > i+1 {
			digits += j - i - 1
			i = j
		}
	}
	if digits == 0 {
		return 0, false
	}

	// Overlong digit runs overflow to ±Inf, which later clamps into range.
	v, err := strconv.ParseFloat(text[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}
