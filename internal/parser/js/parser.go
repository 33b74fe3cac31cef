package js

import (
	"fmt"
	"sync"

	"bennypowers.dev/csscolor/internal/log"
	"bennypowers.dev/csscolor/internal/parser/css"
	htmlparser "bennypowers.dev/csscolor/internal/parser/html"
	"bennypowers.dev/csscolor/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser handles parsing JS/TS to extract CSS from tagged template literals
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // matches css<Type>`...` (generic form parsed by JS grammar as binary_expression)
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		// Generic form: css<Type>`...` is valid TypeScript (since TS 2.9) but both
		// tree-sitter-javascript and tree-sitter-typescript misparse it as binary
		// expressions instead of a call_expression with type_arguments.
		// See: https://github.com/tree-sitter/tree-sitter-typescript/issues/341
		genericQuery, qerr := sitter.NewQuery(jsLang, `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile generic query: %v", qerr))
		}

		return &Parser{
			parser:        parser,
			templateQuery: templateQuery,
			genericQuery:  genericQuery,
		}
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
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
	if p.genericQuery != nil {
		p.genericQuery.Close()
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

// ParseTemplates finds css and html tagged template literals, including the
// generic css<Type>`...` form, and splits them at ${...} boundaries
func (p *Parser) ParseTemplates(source string) []TemplateRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	index := position.NewIndex(source)
	var regions []TemplateRegion

	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		regions = p.runTemplateQuery(query, root, sourceBytes, index, regions)
	}

	return regions
}

func (p *Parser) runTemplateQuery(query *sitter.Query, root *sitter.Node, sourceBytes []byte, index *position.Index, regions []TemplateRegion) []TemplateRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tagName string
		var templateNode *sitter.Node

		for _, capture := range match.Captures {
			switch query.CaptureNames()[capture.Index] {
			case "tag":
				tagName = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "template":
				node := capture.Node
				templateNode = &node
			}
		}

		if templateNode == nil || (tagName != "css" && tagName != "html") {
			continue
		}

		if segments := extractSegments(templateNode, sourceBytes, index); len(segments) > 0 {
			regions = append(regions, TemplateRegion{
				Segments: segments,
				Tag:      tagName,
			})
		}
	}

	return regions
}

// extractSegments returns the string_fragment children of a template_string
func extractSegments(templateNode *sitter.Node, sourceBytes []byte, index *position.Index) []Segment {
	var segments []Segment

	for i := uint(0); i < templateNode.ChildCount(); i++ {
		child := templateNode.Child(i)
		if child.Kind() != "string_fragment" {
			continue
		}
		start := child.StartPosition()
		segments = append(segments, Segment{
			Content:   string(sourceBytes[child.StartByte():child.EndByte()]),
			StartLine: uint32(start.Row), //nolint:gosec // G115: rows from tree-sitter are bounded by file size
			StartCol:  index.Column(start.Row, start.Column),
		})
	}

	return segments
}

// ParseCSS extracts and parses CSS from tagged template literals in JS/TS source
func (p *Parser) ParseCSS(source string) (*css.ParseResult, error) {
	result := &css.ParseResult{
		Declarations: []*css.Declaration{},
		VarCalls:     []*css.VarCall{},
	}

	templates := p.ParseTemplates(source)
	if len(templates) == 0 {
		return result, nil
	}

	for _, tmpl := range templates {
		switch tmpl.Tag {
		case "css":
			parseCSSSegments(tmpl.Segments, result)
		case "html":
			parseHTMLSegments(tmpl.Segments, result)
		}
	}

	return result, nil
}

func parseCSSSegments(segments []Segment, result *css.ParseResult) {
	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	for _, seg := range segments {
		parsed, err := cssParser.Parse(seg.Content)
		if err != nil {
			log.Debug("Failed to parse CSS segment at %d:%d: %v", seg.StartLine, seg.StartCol, err)
			continue
		}
		parsed.Shift(segmentOffset(seg))
		result.Append(parsed)
	}
}

func parseHTMLSegments(segments []Segment, result *css.ParseResult) {
	htmlParser := htmlparser.AcquireParser()
	defer htmlparser.ReleaseParser(htmlParser)

	for _, seg := range segments {
		parsed, err := htmlParser.ParseCSS(seg.Content)
		if err != nil {
			log.Debug("Failed to parse HTML segment at %d:%d: %v", seg.StartLine, seg.StartCol, err)
			continue
		}
		parsed.Shift(segmentOffset(seg))
		result.Append(parsed)
	}
}

// segmentOffset maps a position inside a segment to the JS/TS source. Only
// the segment's first line is shifted horizontally.
func segmentOffset(seg Segment) func(css.Position) css.Position {
	return func(pos css.Position) css.Position {
		if pos.Line == 0 {
			pos.Character += seg.StartCol
		}
		pos.Line += seg.StartLine
		return pos
	}
}
