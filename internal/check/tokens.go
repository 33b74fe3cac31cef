package check

import (
	"fmt"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/asimonim/token"
	"bennypowers.dev/csscolor/internal/position"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// fromTokens reads a DTCG token document. JSON goes through the asimonim
// parser; YAML is walked node by node so positions survive.
func (c *Checker) fromTokens(file string, data []byte, isJSON bool) ([]Finding, error) {
	if isJSON {
		return c.fromJSONTokens(file, data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	var findings []Finding
	c.walkGroup(file, doc.Content[0], nil, "", &findings)
	sortFindings(findings)
	return findings, nil
}

// fromJSONTokens parses data with asimonim, which resolves $type through
// enclosing groups and detects the schema version. jsonc.ToJSON blanks
// comments and trailing commas without moving anything, so token positions
// still index the original source.
func (c *Checker) fromJSONTokens(file string, data []byte) ([]Finding, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	source := jsonc.ToJSON(data)
	tokens, err := asimonimParser.NewJSONParser().Parse(source, asimonimParser.Options{SkipSort: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	index := newValueIndex(string(source))
	var findings []Finding
	for _, tok := range tokens {
		if tok.Type != "color" || !isLiteralToken(tok) {
			continue
		}
		line, column, isString := index.valuePosition(tok.Line, tok.Character)
		if !isString {
			continue
		}
		findings = append(findings, c.literal(file, line, column, strings.Join(tok.Path, "."), tok.Value))
	}
	sortFindings(findings)
	return findings, nil
}

// isLiteralToken reports whether tok holds a plain string value. Aliases
// ("{color.brand}" or a "#/..." pointer) and structured colors are skipped.
func isLiteralToken(tok *token.Token) bool {
	if tok.RawValue != nil {
		if _, ok := tok.RawValue.(string); !ok {
			return false
		}
	}
	v := strings.TrimSpace(tok.Value)
	if strings.HasPrefix(v, "#/") {
		return false
	}
	return !(strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}"))
}

// valueIndex locates the $value string of a token in JSON source
type valueIndex struct {
	source string
	lines  *position.Index
}

func newValueIndex(source string) *valueIndex {
	return &valueIndex{source: source, lines: position.NewIndex(source)}
}

// valuePosition scans forward from the token key at (line, byteCol) to the
// "$value" member and returns the 1-based line and column of the first
// character inside its quotes. isString is false when the member holds an
// object, array, number or literal. The key position is returned when no
// member follows.
func (vi *valueIndex) valuePosition(line, byteCol uint32) (l, col int, isString bool) {
	offset, ok := vi.lines.Offset(uint(line), uint(byteCol))
	if !ok {
		return int(line) + 1, int(byteCol) + 1, true
	}

	const marker = `"$value"`
	i := strings.Index(vi.source[offset:], marker)
	if i < 0 {
		l, col = vi.point(offset)
		return l, col, true
	}
	rest := offset + i + len(marker)
	rest += len(vi.source[rest:]) - len(strings.TrimLeft(vi.source[rest:], " \t\r\n:"))
	if rest >= len(vi.source) || vi.source[rest] != '"' {
		return 0, 0, false
	}
	l, col = vi.point(rest + 1)
	return l, col, true
}

// point converts a source offset into a 1-based line and UTF-16 column
func (vi *valueIndex) point(offset int) (int, int) {
	row, col := vi.lines.Point(offset)
	return int(row) + 1, int(vi.lines.Column(row, col)) + 1
}

// walkGroup visits a group or token. $type is inherited from the nearest
// enclosing group that sets it.
func (c *Checker) walkGroup(file string, node *yaml.Node, path []string, inherited string, out *[]Finding) {
	if node.Kind != yaml.MappingNode {
		return
	}

	typ := inherited
	if t := lookup(node, "$type"); t != nil && t.Kind == yaml.ScalarNode {
		typ = t.Value
	}

	if value := lookup(node, "$value"); value != nil {
		if typ == "color" && isLiteral(value) {
			line, column := value.Line, value.Column
			if value.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
				column++
			}
			*out = append(*out, c.literal(file, line, column, strings.Join(path, "."), value.Value))
		}
		return
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if strings.HasPrefix(key, "$") {
			continue
		}
		c.walkGroup(file, node.Content[i+1], append(path[:len(path):len(path)], key), typ, out)
	}
}

// lookup returns the value node for key in a mapping node
func lookup(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// isLiteral reports whether a $value is a string that is not an alias such
// as "{color.brand}". Structured color objects are not checked.
func isLiteral(value *yaml.Node) bool {
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
		return false
	}
	v := strings.TrimSpace(value.Value)
	return !(strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}"))
}
