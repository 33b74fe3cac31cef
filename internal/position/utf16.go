// Package position converts tree-sitter byte coordinates into the 0-based
// line and UTF-16 column pairs that editors and the check report use.
package position

import (
	"math"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// ByteOffsetToUTF16 counts the UTF-16 code units in s[:byteOffset]. An offset
// inside a multi-byte rune stops at the start of that rune. Invalid UTF-8
// bytes count as one unit each.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	units := 0
	for i := 0; i < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > byteOffset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}

// Index maps (row, byte column) points in one source text to UTF-16 columns
type Index struct {
	source string
	starts []int
}

// NewIndex records where each line of source begins
func NewIndex(source string) *Index {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{source: source, starts: starts}
}

// Lines returns the number of lines in the source
func (ix *Index) Lines() int {
	return len(ix.starts)
}

// Line returns the text of row without its line terminator
func (ix *Index) Line(row uint) string {
	if int(row) >= len(ix.starts) {
		return ""
	}
	start := ix.starts[row]
	end := len(ix.source)
	if int(row)+1 < len(ix.starts) {
		end = ix.starts[row+1] - 1
	}
	return ix.source[start:end]
}

// Column converts a byte column on row into UTF-16 code units, clamped to
// the uint32 range.
func (ix *Index) Column(row, byteCol uint) uint32 {
	col := ByteOffsetToUTF16(ix.Line(row), int(min(byteCol, uint(math.MaxInt32))))
	if col > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(col) //nolint:gosec // G115: bounded above
}

// Offset converts a row and byte column into a byte offset in the source.
// It reports false when the point lies outside the source.
func (ix *Index) Offset(row, byteCol uint) (int, bool) {
	if int(row) >= len(ix.starts) || int(byteCol) > len(ix.Line(row)) {
		return 0, false
	}
	return ix.starts[row] + int(byteCol), true
}

// Point converts a byte offset into a row and byte column. Offsets past the
// end of the source clamp to it.
func (ix *Index) Point(offset int) (row, byteCol uint) {
	offset = max(0, min(offset, len(ix.source)))
	r := sort.SearchInts(ix.starts, offset+1) - 1
	return uint(r), uint(offset - ix.starts[r])
}
