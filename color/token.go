package color

import "fmt"

// Kind identifies the lexical class of a Token
type Kind int

const (
	// Function is an opening function keyword: "rgb(", "rgba(", "hsl(" or "hsla("
	Function Kind = iota
	// Hex is a "#" followed by three or six hex digits
	Hex
	// Number is a run of digits and dots, optionally led by "-"
	Number
	// Percentage is a Number immediately followed by "%"
	Percentage
	// Char is any other single character, such as "," or ")"
	Char
)

var kindNames = [...]string{
	Function:   "FUNCTION",
	Hex:        "HEX",
	Number:     "NUM",
	Percentage: "PERCENTAGE",
	Char:       "CHAR",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexical unit of a color literal
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
