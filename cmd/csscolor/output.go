package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bennypowers.dev/csscolor/internal/config"
	"gopkg.in/yaml.v3"
)

// writeRows prints parse results as text, JSON or YAML
func writeRows(w io.Writer, format string, rows []parsed) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()

	case config.FormatText, "":
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, textRow(row)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q: expected one of text, json, yaml", format)
}

// textRow renders "input: model c0 c1 c2 c3 [formatted]" or "input: error"
func textRow(row parsed) string {
	if row.Error != "" && row.Components == nil {
		return row.Input + ": " + row.Error
	}

	parts := []string{row.Model}
	for _, v := range row.Components {
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	if row.Formatted != "" {
		parts = append(parts, row.Formatted)
	}
	if row.Error != "" {
		parts = append(parts, row.Error)
	}
	return row.Input + ": " + strings.Join(parts, " ")
}
