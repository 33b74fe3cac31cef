// Package scanner provides a position-tracked character reader over an
// immutable string. It knows nothing about color grammar.
package scanner

// Position is a cursor location in the scanner input.
// Cursor counts characters (runes), not bytes. Line and Column are 1-based.
type Position struct {
	Cursor int
	Line   int
	Column int
}

var start = Position{Cursor: 0, Line: 1, Column: 1}

// Scanner reads characters from a string and tracks line and column.
type Scanner struct {
	input  []rune
	pos    Position
	stored Position
}

// New returns a Scanner positioned at the start of input.
func New(input string) *Scanner {
	return &Scanner{
		input:  []rune(input),
		pos:    start,
		stored: start,
	}
}

// Position returns the current cursor position.
func (s *Scanner) Position() Position {
	return s.pos
}

// Done reports whether every character has been consumed.
func (s *Scanner) Done() bool {
	return s.pos.Cursor >= len(s.input)
}

// Peek returns up to n characters at the cursor without consuming them.
// Fewer than n characters are returned near the end of input; ok is false
// only when no characters remain. n < 1 is treated as 1.
func (s *Scanner) Peek(n int) (text string, ok bool) {
	end := s.window(n)
	if end == s.pos.Cursor {
		return "", false
	}
	return string(s.input[s.pos.Cursor:end]), true
}

// Read is like Peek but consumes the returned characters.
// A consumed '\n' moves to the next line and resets the column to 1.
func (s *Scanner) Read(n int) (text string, ok bool) {
	end := s.window(n)
	if end == s.pos.Cursor {
		return "", false
	}
	chars := s.input[s.pos.Cursor:end]
	for _, ch := range chars {
		if ch == '\n' {
			s.pos.Line++
			s.pos.Column = 1
		} else {
			s.pos.Column++
		}
	}
	s.pos.Cursor = end
	return string(chars), true
}

// EatSpaces consumes consecutive ' ' characters and returns them.
func (s *Scanner) EatSpaces() string {
	return s.eat(func(ch string) bool { return ch == " " })
}

// EatWhitespace consumes consecutive ' ' and '\n' characters and returns them.
func (s *Scanner) EatWhitespace() string {
	return s.eat(func(ch string) bool { return ch == " " || ch == "\n" })
}

// StorePosition saves the current position into the single snapshot slot,
// replacing any earlier snapshot.
func (s *Scanner) StorePosition() {
	s.stored = s.pos
}

// RestorePosition moves the cursor back to the last stored snapshot.
func (s *Scanner) RestorePosition() {
	s.pos = s.stored
}

func (s *Scanner) eat(accept func(string) bool) string {
	var eaten []rune
	for {
		ch, ok := s.Peek(1)
		if !ok || !accept(ch) {
			return string(eaten)
		}
		s.Read(1)
		eaten = append(eaten, []rune(ch)...)
	}
}

// window returns the exclusive end index of an n-character lookahead.
func (s *Scanner) window(n int) int {
	if n < 1 {
		n = 1
	}
	if s.pos.Cursor >= len(s.input) {
		return s.pos.Cursor
	}
	return min(s.pos.Cursor+n, len(s.input))
}
