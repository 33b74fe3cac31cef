package css_test

import (
	"testing"

	"bennypowers.dev/csscolor/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) *css.ParseResult {
	t.Helper()
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)
	result, err := parser.Parse(source)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestParseCustomProperty(t *testing.T) {
	result := parse(t, `:root {
  --color-primary: #0000ff;
}`)

	require.Len(t, result.Declarations, 1)
	decl := result.Declarations[0]
	assert.Equal(t, "--color-primary", decl.Property)
	assert.Equal(t, "#0000ff", decl.Value)
	assert.Equal(t, uint32(1), decl.Range.Start.Line)
	assert.Equal(t, uint32(2), decl.Range.Start.Character)

	require.Len(t, decl.Parts, 1)
	assert.Equal(t, "#0000ff", decl.Parts[0].Text)
	assert.Equal(t, css.Position{Line: 1, Character: 19}, decl.Parts[0].Range.Start)
	assert.Equal(t, css.Position{Line: 1, Character: 26}, decl.Parts[0].Range.End)
}

func TestParseDeclarationParts(t *testing.T) {
	result := parse(t, `.a { border: 1px solid rgb(1, 2, 3) !important; }`)

	require.Len(t, result.Declarations, 1)
	decl := result.Declarations[0]
	assert.Equal(t, "border", decl.Property)
	assert.Equal(t, "1px solid rgb(1, 2, 3)", decl.Value)

	var texts []string
	for _, part := range decl.Parts {
		texts = append(texts, part.Text)
	}
	assert.Equal(t, []string{"1px", "solid", "rgb(1, 2, 3)"}, texts)
}

func TestParseMultipleDeclarations(t *testing.T) {
	result := parse(t, `:root {
  --color-primary: #0000ff;
  --color-secondary: hsl(0, 100%, 50%);
  --spacing-small: 8px;
}
.button { color: white; }`)

	got := map[string]string{}
	for _, d := range result.Declarations {
		got[d.Property] = d.Value
	}
	assert.Equal(t, map[string]string{
		"--color-primary":   "#0000ff",
		"--color-secondary": "hsl(0, 100%, 50%)",
		"--spacing-small":   "8px",
		"color":             "white",
	}, got)
}

func TestParseMultilineValue(t *testing.T) {
	result := parse(t, ".d {\n  color:\n    red;\n}")

	require.Len(t, result.Declarations, 1)
	part := result.Declarations[0].Parts[0]
	assert.Equal(t, "red", part.Text)
	assert.Equal(t, css.Position{Line: 2, Character: 4}, part.Range.Start)
}

func TestParseVarCall(t *testing.T) {
	result := parse(t, `.button {
  color: var(--color-primary);
}`)

	require.Len(t, result.VarCalls, 1)
	vc := result.VarCalls[0]
	assert.Equal(t, "--color-primary", vc.TokenName)
	assert.Equal(t, "color", vc.Property)
	assert.Nil(t, vc.Fallback)
	assert.Equal(t, css.Position{Line: 1, Character: 9}, vc.Range.Start)
}

func TestParseVarCallFallback(t *testing.T) {
	result := parse(t, `.b { color: var(--brand, #fff); }`)

	require.Len(t, result.VarCalls, 1)
	vc := result.VarCalls[0]
	assert.Equal(t, "--brand", vc.TokenName)
	require.NotNil(t, vc.Fallback)
	assert.Equal(t, "#fff", vc.Fallback.Text)
	assert.Equal(t, css.Position{Line: 0, Character: 25}, vc.Fallback.Range.Start)
}

func TestParseNestedVarCalls(t *testing.T) {
	result := parse(t, `.c { background: var(--a, var(--b, red)); }`)

	require.Len(t, result.VarCalls, 2)
	outer, inner := result.VarCalls[0], result.VarCalls[1]

	assert.Equal(t, "--a", outer.TokenName)
	require.NotNil(t, outer.Fallback)
	assert.Equal(t, "var(--b, red)", outer.Fallback.Text)

	assert.Equal(t, "--b", inner.TokenName)
	require.NotNil(t, inner.Fallback)
	assert.Equal(t, "red", inner.Fallback.Text)
	assert.Equal(t, "background", inner.Property)
}

func TestParseIgnoresOtherFunctions(t *testing.T) {
	result := parse(t, `.e { width: calc(100% - 2px); color: rgb(0, 0, 0); }`)
	assert.Empty(t, result.VarCalls)
	assert.Len(t, result.Declarations, 2)
}

func TestParseRecoversRejectedValues(t *testing.T) {
	tests := []struct {
		name  string
		css   string
		value string
		start css.Position
	}{
		{"hex with non-hex digits", `.a { color: #ggg; }`, "#ggg", css.Position{Line: 0, Character: 12}},
		{"hex too short", `.a { color: #12; }`, "#12", css.Position{Line: 0, Character: 12}},
		{"important", `.a { color: #ggg !important; }`, "#ggg", css.Position{Line: 0, Character: 12}},
		{"second line", ".a {\n  fill: #zz;\n}", "#zz", css.Position{Line: 1, Character: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parse(t, tt.css)

			require.Len(t, result.Declarations, 1)
			decl := result.Declarations[0]
			assert.Equal(t, tt.value, decl.Value)
			require.Len(t, decl.Parts, 1)
			assert.Equal(t, tt.value, decl.Parts[0].Text)
			assert.Equal(t, tt.start, decl.Parts[0].Range.Start)
		})
	}
}

func TestParseRecoversRejectedFallback(t *testing.T) {
	result := parse(t, `.a { color: var(--brand, #ggg); }`)

	require.Len(t, result.VarCalls, 1)
	vc := result.VarCalls[0]
	assert.Equal(t, "--brand", vc.TokenName)
	assert.Equal(t, "color", vc.Property)
	require.NotNil(t, vc.Fallback)
	assert.Equal(t, "#ggg", vc.Fallback.Text)
	assert.Equal(t, css.Position{Line: 0, Character: 25}, vc.Fallback.Range.Start)
}

func TestParseRecoveryKeepsNeighbours(t *testing.T) {
	result := parse(t, `.a { color: red; background: #ggg; fill: var(--x, blue); }`)

	var properties, values []string
	for _, decl := range result.Declarations {
		properties = append(properties, decl.Property)
		values = append(values, decl.Value)
	}
	assert.Equal(t, []string{"color", "background", "fill"}, properties)
	assert.Equal(t, []string{"red", "#ggg", "var(--x, blue)"}, values)

	require.Len(t, result.VarCalls, 1)
	require.NotNil(t, result.VarCalls[0].Fallback)
	assert.Equal(t, "blue", result.VarCalls[0].Fallback.Text)
}

func TestParseEmpty(t *testing.T) {
	result := parse(t, "")
	assert.Empty(t, result.Declarations)
	assert.Empty(t, result.VarCalls)
}

func TestShift(t *testing.T) {
	result := parse(t, `.b { color: var(--brand, #fff); }`)
	result.Shift(func(p css.Position) css.Position {
		p.Line += 10
		return p
	})

	assert.Equal(t, uint32(10), result.Declarations[0].Range.Start.Line)
	assert.Equal(t, uint32(10), result.Declarations[0].Parts[0].Range.Start.Line)
	assert.Equal(t, uint32(10), result.VarCalls[0].Fallback.Range.Start.Line)
}

func TestParserPoolConcurrency(t *testing.T) {
	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			parser := css.AcquireParser()
			defer css.ReleaseParser(parser)
			result, err := parser.Parse(`a { color: red; }`)
			assert.NoError(t, err)
			assert.Len(t, result.Declarations, 1)
		}()
	}
	for range 8 {
		<-done
	}
}
