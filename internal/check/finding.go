package check

import (
	"fmt"

	"bennypowers.dev/csscolor/color"
)

// Finding is one color literal found in a source file. Line and Column are
// 1-based; columns count UTF-16 code units for CSS sources and characters
// for token files.
type Finding struct {
	File   string
	Line   int
	Column int
	// Name is the CSS property or the dotted token path
	Name       string
	Value      string
	Components color.Components
	// Err is set when Value does not parse
	Err error
}

// Valid reports whether the literal parsed
func (f Finding) Valid() bool {
	return f.Err == nil
}

func (f Finding) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s:%d:%d: %s: %v", f.File, f.Line, f.Column, f.Name, f.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", f.File, f.Line, f.Column, f.Name, f.Value)
}

// Report collects the results of checking many files
type Report struct {
	Files    []string
	Findings []Finding
	// Errors are files that could not be read or parsed at all
	Errors []error
}

// Invalid returns the findings whose literal did not parse
func (r Report) Invalid() []Finding {
	var invalid []Finding
	for _, f := range r.Findings {
		if !f.Valid() {
			invalid = append(invalid, f)
		}
	}
	return invalid
}

// OK reports whether every file was read and every literal parsed
func (r Report) OK() bool {
	return len(r.Errors) == 0 && len(r.Invalid()) == 0
}
