package css

import (
	"cmp"
	"slices"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// byteRange is a half-open span of source bytes
type byteRange struct {
	start, end int
}

func (r byteRange) overlaps(o byteRange) bool {
	return r.start < o.end && o.start < r.end
}

// damage marks the block around an unparsable node for text recovery. A
// node outside any block is recovered on its own.
func (w *walker) damage(node *sitter.Node) {
	target := node
	for p := node.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == "block" {
			target = p
			break
		}
	}
	w.damaged = append(w.damaged, byteRange{int(target.StartByte()), int(target.EndByte())})
}

// recover reads damaged ranges as plain "property: value" text so that
// values tree-sitter rejects, such as #ggg, still reach the caller.
func (w *walker) recover() {
	if len(w.damaged) == 0 {
		return
	}

	for _, r := range mergeRanges(w.damaged) {
		w.scanDeclarations(r)
	}

	slices.SortStableFunc(w.result.Declarations, func(a, b *Declaration) int {
		return comparePositions(a.Range.Start, b.Range.Start)
	})
	slices.SortStableFunc(w.result.VarCalls, func(a, b *VarCall) int {
		return comparePositions(a.Range.Start, b.Range.Start)
	})
}

func comparePositions(a, b Position) int {
	return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.Character, b.Character))
}

func mergeRanges(ranges []byteRange) []byteRange {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b byteRange) int { return cmp.Compare(a.start, b.start) })

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end {
			last.end = max(last.end, r.end)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// scanDeclarations splits r at ';', '{' and '}'. Text before '{' is a
// selector or at-rule prelude and is ignored.
func (w *walker) scanDeclarations(r byteRange) {
	src := w.source
	start := r.start
	for i := r.start; i < r.end; i++ {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i, r.end)
		case '/':
			if i+1 < r.end && src[i+1] == '*' {
				i = skipComment(src, i, r.end)
			}
		case ';', '}':
			w.recoverDeclaration(start, i)
			start = i + 1
		case '{':
			start = i + 1
		}
	}
	w.recoverDeclaration(start, r.end)
}

// recoverDeclaration reads src[start:end] as one declaration
func (w *walker) recoverDeclaration(start, end int) {
	src := w.source
	start = skipBlank(src, start, end)
	for end > start && isSpace(src[end-1]) {
		end--
	}

	colon := -1
	for i := start; i < end && colon < 0; i++ {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i, end)
		case ':':
			colon = i
		}
	}
	if colon < 0 {
		return
	}
	property := strings.TrimSpace(string(src[start:colon]))
	if !isPropertyName(property) {
		return
	}

	seg := byteRange{start, end}
	if !w.claim(seg) {
		return
	}

	valueStart := skipBlank(src, colon+1, end)
	valueEnd := trimImportant(src, valueStart, end)

	d := &Declaration{
		Property: property,
		Value:    string(src[valueStart:valueEnd]),
		Parts:    []Value{},
		Range:    w.rangeOf(start, end),
	}
	for _, part := range splitComponents(src, valueStart, valueEnd) {
		d.Parts = append(d.Parts, Value{
			Text:  string(src[part.start:part.end]),
			Range: w.rangeOf(part.start, part.end),
		})
	}
	w.result.Declarations = append(w.result.Declarations, d)
	w.parsed = append(w.parsed, seg)

	w.recoverVarCalls(property, valueStart, valueEnd)
}

// claim reports whether seg should be recovered. A tree declaration that
// starts at the same byte wins; tree declarations and var() calls that only
// overlap seg are fragments of it and are dropped.
func (w *walker) claim(seg byteRange) bool {
	for _, p := range w.parsed {
		if p.start == seg.start {
			return false
		}
	}

	decls := w.result.Declarations[:0]
	parsed := w.parsed[:0]
	for i, p := range w.parsed {
		if !p.overlaps(seg) {
			decls = append(decls, w.result.Declarations[i])
			parsed = append(parsed, p)
		}
	}
	w.result.Declarations, w.parsed = decls, parsed

	calls := w.result.VarCalls[:0]
	callRanges := w.calls[:0]
	for i, c := range w.calls {
		if !c.overlaps(seg) {
			calls = append(calls, w.result.VarCalls[i])
			callRanges = append(callRanges, c)
		}
	}
	w.result.VarCalls, w.calls = calls, callRanges
	return true
}

// recoverVarCalls finds var( in src[start:end], nested calls included
func (w *walker) recoverVarCalls(property string, start, end int) {
	src := w.source
	for i := start; i+4 <= end; i++ {
		if !strings.EqualFold(string(src[i:i+4]), "var(") {
			continue
		}
		if i > start && isNameByte(src[i-1]) {
			continue
		}

		open := i + 3
		closing := matchParen(src, open, end)
		argsEnd := min(closing, end)

		comma := -1
		for j := open + 1; j < argsEnd && comma < 0; j++ {
			switch src[j] {
			case '"', '\'':
				j = skipString(src, j, argsEnd)
			case '(':
				j = matchParen(src, j, argsEnd)
			case ',':
				comma = j
			}
		}

		nameEnd := argsEnd
		if comma >= 0 {
			nameEnd = comma
		}
		name := strings.TrimSpace(string(src[open+1 : nameEnd]))
		if name == "" {
			continue
		}

		vc := &VarCall{
			TokenName: name,
			Property:  property,
			Range:     w.rangeOf(i, min(closing+1, end)),
		}
		if comma >= 0 {
			fbStart := skipBlank(src, comma+1, argsEnd)
			fbEnd := argsEnd
			for fbEnd > fbStart && isSpace(src[fbEnd-1]) {
				fbEnd--
			}
			if fbEnd > fbStart {
				vc.Fallback = &Value{
					Text:  string(src[fbStart:fbEnd]),
					Range: w.rangeOf(fbStart, fbEnd),
				}
			}
		}
		w.result.VarCalls = append(w.result.VarCalls, vc)
		w.calls = append(w.calls, byteRange{i, min(closing+1, end)})
	}
}

func (w *walker) rangeOf(start, end int) Range {
	return Range{Start: w.pointAt(start), End: w.pointAt(end)}
}

func (w *walker) pointAt(offset int) Position {
	row, col := w.index.Point(offset)
	return Position{
		Line:      uint32(row), //nolint:gosec // G115: rows are bounded by file size
		Character: w.index.Column(row, col),
	}
}

// splitComponents splits a value at top-level whitespace and commas
func splitComponents(src []byte, start, end int) []byteRange {
	var parts []byteRange
	partStart := -1
	flush := func(i int) {
		if partStart >= 0 {
			parts = append(parts, byteRange{partStart, i})
			partStart = -1
		}
	}

	for i := start; i < end; i++ {
		c := src[i]
		if isSpace(c) || c == ',' {
			flush(i)
			continue
		}
		if partStart < 0 {
			partStart = i
		}
		switch c {
		case '"', '\'':
			i = skipString(src, i, end)
		case '(':
			i = min(matchParen(src, i, end), end-1)
		}
	}
	flush(end)
	return parts
}

// trimImportant returns the end of the value without a trailing !important
func trimImportant(src []byte, start, end int) int {
	text := string(src[start:end])
	bang := strings.LastIndexByte(text, '!')
	if bang < 0 || !strings.EqualFold(strings.TrimSpace(text[bang+1:]), "important") {
		return end
	}
	end = start + bang
	for end > start && isSpace(src[end-1]) {
		end--
	}
	return end
}

// matchParen returns the index of the ')' closing src[open], or end when
// the parenthesis is never closed.
func matchParen(src []byte, open, end int) int {
	depth := 0
	for i := open; i < end; i++ {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i, end)
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return end
}

// skipString returns the index of the quote closing the string at src[i]
func skipString(src []byte, i, end int) int {
	quote := src[i]
	for j := i + 1; j < end; j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return end - 1
}

// skipComment returns the index of the '/' closing the comment at src[i]
func skipComment(src []byte, i, end int) int {
	if j := strings.Index(string(src[i+2:end]), "*/"); j >= 0 {
		return i + 2 + j + 1
	}
	return end - 1
}

// skipBlank skips whitespace and comments
func skipBlank(src []byte, i, end int) int {
	for i < end {
		switch {
		case isSpace(src[i]):
			i++
		case src[i] == '/' && i+1 < end && src[i+1] == '*':
			i = skipComment(src, i, end) + 1
		default:
			return i
		}
	}
	return end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isPropertyName(s string) bool {
	if s == "" || ('0' <= s[0] && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}
