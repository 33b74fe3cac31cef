package main

import (
	"fmt"

	"bennypowers.dev/csscolor/color"
	"bennypowers.dev/csscolor/internal/config"
	"bennypowers.dev/csscolor/internal/log"
)

// parsed is one row of parse output
type parsed struct {
	Input      string    `json:"input" yaml:"input"`
	Model      string    `json:"model,omitempty" yaml:"model,omitempty"`
	Components []float64 `json:"components,omitempty" yaml:"components,omitempty,flow"`
	Formatted  string    `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
}

func (c *cli) runParse(cfg config.Config) int {
	modelName := cfg.Model
	if *c.parse.model != "" {
		modelName = *c.parse.model
	}
	model, err := color.ParseModel(modelName)
	if err != nil {
		fmt.Fprintf(c.stderr, "csscolor: error: %v\n", err)
		return exitUsage
	}

	format := cfg.Format
	if *c.parse.format != "" {
		format = *c.parse.format
	}

	var notation color.Notation
	if *c.parse.to != "" {
		if notation, err = color.ParseNotation(*c.parse.to); err != nil {
			fmt.Fprintf(c.stderr, "csscolor: error: %v\n", err)
			return exitUsage
		}
	}

	code := exitOK
	rows := make([]parsed, 0, len(*c.parse.colors))
	for _, input := range *c.parse.colors {
		row := parsed{Input: input}
		components, err := color.Parse(input, model)
		if err != nil {
			log.Debug("Parse failed: %v", err)
			row.Error = err.Error()
			code = exitFindings
			rows = append(rows, row)
			continue
		}

		row.Model = string(model)
		row.Components = components[:]
		if notation != "" {
			if row.Formatted, err = color.Format(components, model, notation); err != nil {
				row.Error = err.Error()
				code = exitFindings
			}
		}
		rows = append(rows, row)
	}

	if err := writeRows(c.stdout, format, rows); err != nil {
		fmt.Fprintf(c.stderr, "csscolor: error: %v\n", err)
		return exitUsage
	}
	return code
}

func (c *cli) runTokens() int {
	for _, tok := range color.Tokenize(*c.tokens.color) {
		fmt.Fprintf(c.stdout, "%-10s %q\n", tok.Kind, tok.Text)
	}
	return exitOK
}
