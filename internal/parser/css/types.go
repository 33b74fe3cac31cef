package css

// Position is a 0-based line and UTF-16 column
type Position struct {
	Line      uint32
	Character uint32
}

// Range represents a range in a text document
type Range struct {
	Start Position
	End   Position
}

// Value is one top-level component of a declaration value, such as "1px",
// "solid" or "rgb(0, 0, 0)" in "border: 1px solid rgb(0, 0, 0)"
type Value struct {
	Text  string
	Range Range
}

// Declaration is a property: value pair, custom properties included
type Declaration struct {
	Property string
	// Value is the source text from the first component to the last,
	// excluding !important
	Value string
	Parts []Value
	Range Range
}

// VarCall represents a var() function call
type VarCall struct {
	TokenName string
	Fallback  *Value // Optional fallback value
	// Property is the declaration the call appears in
	Property string
	Range    Range
}

// ParseResult contains the results of parsing CSS
type ParseResult struct {
	Declarations []*Declaration
	VarCalls     []*VarCall
}

// Append merges other into r
func (r *ParseResult) Append(other *ParseResult) {
	r.Declarations = append(r.Declarations, other.Declarations...)
	r.VarCalls = append(r.VarCalls, other.VarCalls...)
}

// Shift moves every range in r by fn
func (r *ParseResult) Shift(fn func(Position) Position) {
	shift := func(rg Range) Range {
		return Range{Start: fn(rg.Start), End: fn(rg.End)}
	}
	for _, d := range r.Declarations {
		d.Range = shift(d.Range)
		for i := range d.Parts {
			d.Parts[i].Range = shift(d.Parts[i].Range)
		}
	}
	for _, vc := range r.VarCalls {
		vc.Range = shift(vc.Range)
		if vc.Fallback != nil {
			vc.Fallback.Range = shift(vc.Fallback.Range)
		}
	}
}
