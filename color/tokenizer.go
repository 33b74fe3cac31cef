package color

import (
	"strings"

	"bennypowers.dev/csscolor/internal/scanner"
)

// functionKeywords are tried longest first so "rgba(" wins over "rgb(".
var functionKeywords = []string{"rgba(", "hsla(", "rgb(", "hsl("}

// Tokenize splits a color literal into tokens. Whitespace separates tokens
// and is dropped. The input is tokenized as given; Parse trims and
// lower-cases before calling it.
func Tokenize(s string) []Token {
	sc := scanner.New(s)
	var tokens []Token

	for !sc.Done() {
		if tok, ok := scanFunction(sc); ok {
			tokens = append(tokens, tok)
			continue
		}
		if tok, ok := scanHex(sc); ok {
			tokens = append(tokens, tok)
			continue
		}
		if tok, ok := scanNumeric(sc); ok {
			tokens = append(tokens, tok)
			continue
		}

		ch, _ := sc.Read(1)
		if isWhitespace(ch) {
			continue
		}
		tokens = append(tokens, Token{Kind: Char, Text: ch})
	}

	return tokens
}

func scanFunction(sc *scanner.Scanner) (Token, bool) {
	ch, _ := sc.Peek(1)
	if ch != "r" && ch != "h" {
		return Token{}, false
	}
	for _, keyword := range functionKeywords {
		if text, _ := sc.Peek(len(keyword)); text == keyword {
			sc.Read(len(keyword))
			return Token{Kind: Function, Text: keyword}, true
		}
	}
	return Token{}, false
}

func scanHex(sc *scanner.Scanner) (Token, bool) {
	if ch, _ := sc.Peek(1); ch != "#" {
		return Token{}, false
	}
	for _, digits := range []int{6, 3} {
		text, _ := sc.Peek(digits + 1)
		if isHexRun(text, digits) {
			sc.Read(digits + 1)
			return Token{Kind: Hex, Text: text}, true
		}
	}
	return Token{}, false
}

func scanNumeric(sc *scanner.Scanner) (Token, bool) {
	ch, _ := sc.Peek(1)
	if !isDigit(ch) && ch != "." && ch != "-" {
		return Token{}, false
	}

	var b strings.Builder
	first, _ := sc.Read(1)
	b.WriteString(first)
	for {
		next, ok := sc.Peek(1)
		if !ok || (!isDigit(next) && next != ".") {
			break
		}
		sc.Read(1)
		b.WriteString(next)
	}

	if next, _ := sc.Peek(1); next == "%" {
		sc.Read(1)
		b.WriteString(next)
		return Token{Kind: Percentage, Text: b.String()}, true
	}
	return Token{Kind: Number, Text: b.String()}, true
}

// isHexRun reports whether text is "#" followed by exactly n hex digits.
func isHexRun(text string, n int) bool {
	runes := []rune(text)
	if len(runes) != n+1 {
		return false
	}
	for _, r := range runes[1:] {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isDigit(ch string) bool {
	return len(ch) == 1 && ch[0] >= '0' && ch[0] <= '9'
}

func isWhitespace(ch string) bool {
	switch ch {
	case " ", "\t", "\n", "\f", "\r":
		return true
	}
	return false
}
