package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/csscolor/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// walker carries per-parse state through the tree
type walker struct {
	source []byte
	index  *position.Index
	result *ParseResult
	// damaged are byte ranges tree-sitter could not parse. They are read
	// again as text once the walk is done.
	damaged []byteRange
	// parsed and calls hold the byte spans of Declarations and VarCalls
	parsed []byteRange
	calls  []byteRange
}

// Parse extracts every declaration and var() call from source
func (p *Parser) Parse(source string) (*ParseResult, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	w := &walker{
		source: src,
		index:  position.NewIndex(source),
		result: &ParseResult{
			Declarations: []*Declaration{},
			VarCalls:     []*VarCall{},
		},
	}
	w.walk(tree.RootNode(), "")
	w.recover()

	return w.result, nil
}

// walk visits node and its children. property is the enclosing
// declaration's property name, if any.
func (w *walker) walk(node *sitter.Node, property string) {
	if node == nil {
		return
	}

	if node.IsError() || node.IsMissing() {
		w.damage(node)
		return
	}

	switch node.Kind() {
	case "declaration":
		if node.HasError() {
			w.damaged = append(w.damaged, byteRange{int(node.StartByte()), int(node.EndByte())})
			return
		}
		if d := w.declaration(node); d != nil {
			w.result.Declarations = append(w.result.Declarations, d)
			w.parsed = append(w.parsed, byteRange{int(node.StartByte()), int(node.EndByte())})
			property = d.Property
		}
	case "call_expression":
		if vc := w.varCall(node, property); vc != nil {
			w.result.VarCalls = append(w.result.VarCalls, vc)
			w.calls = append(w.calls, byteRange{int(node.StartByte()), int(node.EndByte())})
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		w.walk(node.Child(i), property)
	}
}

func (w *walker) text(node *sitter.Node) string {
	return string(w.source[node.StartByte():node.EndByte()])
}

func (w *walker) point(p sitter.Point) Position {
	return Position{
		Line:      uint32(p.Row), //nolint:gosec // G115: rows from tree-sitter are bounded by file size
		Character: w.index.Column(p.Row, p.Column),
	}
}

func (w *walker) span(first, last *sitter.Node) Range {
	return Range{
		Start: w.point(first.StartPosition()),
		End:   w.point(last.EndPosition()),
	}
}

// declaration reads property_name ':' value... ';'
func (w *walker) declaration(node *sitter.Node) *Declaration {
	var propertyNode *sitter.Node
	var parts []*sitter.Node

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !child.IsNamed() {
			continue
		}
		switch child.Kind() {
		case "property_name":
			propertyNode = child
		case "important", "comment":
		default:
			parts = append(parts, child)
		}
	}

	if propertyNode == nil {
		return nil
	}

	d := &Declaration{
		Property: w.text(propertyNode),
		Parts:    make([]Value, 0, len(parts)),
		Range:    w.span(node, node),
	}
	for _, part := range parts {
		d.Parts = append(d.Parts, Value{
			Text:  strings.TrimSpace(w.text(part)),
			Range: w.span(part, part),
		})
	}
	if len(parts) > 0 {
		first, last := parts[0], parts[len(parts)-1]
		d.Value = strings.TrimSpace(string(w.source[first.StartByte():last.EndByte()]))
	}
	return d
}

// varCall reads var(--name) and var(--name, fallback...)
func (w *walker) varCall(node *sitter.Node, property string) *VarCall {
	var functionNameNode *sitter.Node
	var argumentsNode *sitter.Node

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "function_name":
			functionNameNode = child
		case "arguments":
			argumentsNode = child
		}
	}

	if functionNameNode == nil || argumentsNode == nil {
		return nil
	}
	if !strings.EqualFold(w.text(functionNameNode), "var") {
		return nil
	}

	var nameNode *sitter.Node
	var fallback []*sitter.Node
	afterComma := false
	for i := uint(0); i < argumentsNode.ChildCount(); i++ {
		child := argumentsNode.Child(i)
		switch kind := child.Kind(); {
		case kind == "(" || kind == ")" || kind == "comment":
		case kind == ",":
			if nameNode != nil {
				afterComma = true
			}
		case nameNode == nil:
			nameNode = child
		case afterComma:
			fallback = append(fallback, child)
		}
	}

	if nameNode == nil {
		return nil
	}
	name := strings.TrimSpace(w.text(nameNode))
	if name == "" {
		return nil
	}

	vc := &VarCall{
		TokenName: name,
		Property:  property,
		Range:     w.span(node, node),
	}
	if len(fallback) > 0 {
		first, last := fallback[0], fallback[len(fallback)-1]
		vc.Fallback = &Value{
			Text:  strings.TrimSpace(string(w.source[first.StartByte():last.EndByte()])),
			Range: w.span(first, last),
		}
	}
	return vc
}
