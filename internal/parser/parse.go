// Package parser picks the CSS extractor for a source file.
package parser

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/csscolor/internal/parser/css"
	"bennypowers.dev/csscolor/internal/parser/html"
	"bennypowers.dev/csscolor/internal/parser/js"
)

// Language is the kind of source a file holds
type Language string

const (
	LanguageNone   Language = ""
	LanguageCSS    Language = "css"
	LanguageHTML   Language = "html"
	LanguageJS     Language = "js"
	LanguageTokens Language = "tokens"
)

// extensions maps lowercase file extensions to the reader they use
var extensions = map[string]Language{
	".css":   LanguageCSS,
	".html":  LanguageHTML,
	".htm":   LanguageHTML,
	".js":    LanguageJS,
	".mjs":   LanguageJS,
	".jsx":   LanguageJS,
	".ts":    LanguageJS,
	".tsx":   LanguageJS,
	".json":  LanguageTokens,
	".jsonc": LanguageTokens,
	".yaml":  LanguageTokens,
	".yml":   LanguageTokens,
}

// LanguageOf reports the language of name by its extension
func LanguageOf(name string) Language {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// HasCSS returns true if CSS can be extracted from files in lang
func (lang Language) HasCSS() bool {
	switch lang {
	case LanguageCSS, LanguageHTML, LanguageJS:
		return true
	}
	return false
}

// ParseCSS extracts CSS parse results from a stylesheet, markup or script.
// Positions are relative to content. It returns nil for languages without CSS.
func ParseCSS(content string, lang Language) (*css.ParseResult, error) {
	switch lang {
	case LanguageCSS:
		p := css.AcquireParser()
		defer css.ReleaseParser(p)
		return p.Parse(content)

	case LanguageHTML:
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return p.ParseCSS(content)

	case LanguageJS:
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		return p.ParseCSS(content)

	default:
		return nil, nil
	}
}
