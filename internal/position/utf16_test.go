package position_test

import (
	"testing"

	"bennypowers.dev/csscolor/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteOffsetToUTF16(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		offset int
		want   int
	}{
		{"empty", "", 0, 0},
		{"ascii", "color: red", 6, 6},
		{"negative offset", "abc", -3, 0},
		{"past the end", "abc", 100, 3},
		{"emoji is a surrogate pair", "🎨 red", 4, 2},
		{"after emoji", "/* 🎨 */ color", 9, 7},
		{"cjk is one unit", "颜色: red", 6, 2},
		{"inside a multi-byte rune", "颜色", 4, 1},
		{"invalid utf-8", "\xff\xfeab", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, position.ByteOffsetToUTF16(tt.s, tt.offset))
		})
	}
}

func TestIndexLines(t *testing.T) {
	ix := position.NewIndex("a {\n  color: red;\n}")
	assert.Equal(t, 3, ix.Lines())
	assert.Equal(t, "a {", ix.Line(0))
	assert.Equal(t, "  color: red;", ix.Line(1))
	assert.Equal(t, "}", ix.Line(2))
	assert.Equal(t, "", ix.Line(7))

	trailing := position.NewIndex("x\n")
	assert.Equal(t, 2, trailing.Lines())
	assert.Equal(t, "x", trailing.Line(0))
	assert.Equal(t, "", trailing.Line(1))
}

func TestIndexColumn(t *testing.T) {
	ix := position.NewIndex("p {\n  /* 🎨 */ color: #fff;\n}")

	// "  /* 🎨 */ " is 12 bytes and 10 UTF-16 units
	assert.Equal(t, uint32(10), ix.Column(1, 12))
	assert.Equal(t, uint32(2), ix.Column(0, 2))
	assert.Equal(t, uint32(0), ix.Column(5, 3))
}

func TestIndexOffsetAndPoint(t *testing.T) {
	ix := position.NewIndex("a {\n  color: red;\n}")

	offset, ok := ix.Offset(1, 2)
	require.True(t, ok)
	assert.Equal(t, 6, offset)

	row, col := ix.Point(offset)
	assert.Equal(t, uint(1), row)
	assert.Equal(t, uint(2), col)

	row, col = ix.Point(3)
	assert.Equal(t, uint(0), row)
	assert.Equal(t, uint(3), col)

	row, col = ix.Point(4)
	assert.Equal(t, uint(1), row)
	assert.Equal(t, uint(0), col)

	row, col = ix.Point(100)
	assert.Equal(t, uint(2), row)
	assert.Equal(t, uint(1), col)

	_, ok = ix.Offset(1, 40)
	assert.False(t, ok)
	_, ok = ix.Offset(9, 0)
	assert.False(t, ok)
}

func BenchmarkByteOffsetToUTF16(b *testing.B) {
	line := "  --brand-color: rgb(10, 20, 30); /* 🎨 颜色 */"
	for i := 0; i < b.N; i++ {
		position.ByteOffsetToUTF16(line, len(line))
	}
}
