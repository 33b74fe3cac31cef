package html

import (
	"fmt"
	"sync"

	"bennypowers.dev/csscolor/internal/log"
	"bennypowers.dev/csscolor/internal/parser/css"
	"bennypowers.dev/csscolor/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser handles parsing HTML to extract CSS regions
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value)
				(#eq? @attr_name "style"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
			attrQuery:  attrQuery,
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
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
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

// ParseCSSRegions finds <style> element bodies and style="..." attribute
// values, in that order
func (p *Parser) ParseCSSRegions(source string) []CSSRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	index := position.NewIndex(source)
	var regions []CSSRegion

	collect := func(query *sitter.Query, capture string, kind RegionType) {
		cursor := sitter.NewQueryCursor()
		defer cursor.Close()

		matches := cursor.Matches(query, root, sourceBytes)
		for match := matches.Next(); match != nil; match = matches.Next() {
			for _, c := range match.Captures {
				if query.CaptureNames()[c.Index] != capture {
					continue
				}
				start := c.Node.StartPosition()
				regions = append(regions, CSSRegion{
					Content:   string(sourceBytes[c.Node.StartByte():c.Node.EndByte()]),
					StartLine: uint32(start.Row), //nolint:gosec // G115: rows from tree-sitter are bounded by file size
					StartCol:  index.Column(start.Row, start.Column),
					Type:      kind,
				})
			}
		}
	}

	collect(p.styleQuery, "css", StyleTag)
	collect(p.attrQuery, "attr_value", StyleAttribute)

	return regions
}

// ParseCSS extracts CSS from HTML and parses it, mapping positions back to HTML coordinates
func (p *Parser) ParseCSS(source string) (*css.ParseResult, error) {
	result := &css.ParseResult{
		Declarations: []*css.Declaration{},
		VarCalls:     []*css.VarCall{},
	}

	regions := p.ParseCSSRegions(source)
	if len(regions) == 0 {
		return result, nil
	}

	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	for _, region := range regions {
		var parsed *css.ParseResult
		var err error
		switch region.Type {
		case StyleTag:
			parsed, err = cssParser.Parse(region.Content)
			if err == nil {
				parsed.Shift(regionOffset(region, 0))
			}
		case StyleAttribute:
			// Wrap in a dummy rule to make valid CSS
			parsed, err = cssParser.Parse("x{" + region.Content + "}")
			if err == nil {
				parsed.Shift(regionOffset(region, 2))
			}
		}
		if err != nil {
			log.Debug("Failed to parse %s at %d:%d: %v", region.Type, region.StartLine, region.StartCol, err)
			continue
		}
		result.Append(parsed)
	}

	return result, nil
}

// regionOffset maps positions inside a region back to the HTML document.
// Only the region's first line shares a line with HTML text, so only it is
// shifted horizontally; prefix is the width of any wrapper added before the
// content.
func regionOffset(region CSSRegion, prefix uint32) func(css.Position) css.Position {
	return func(pos css.Position) css.Position {
		if pos.Line == 0 {
			col := region.StartCol
			if pos.Character >= prefix {
				col += pos.Character - prefix
			}
			pos.Character = col
		}
		pos.Line += region.StartLine
		return pos
	}
}
