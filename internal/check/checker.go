// Package check finds color literals in stylesheets, markup, scripts and
// design token files and reports the ones that do not parse.
package check

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"bennypowers.dev/csscolor/color"
	"bennypowers.dev/csscolor/internal/collections"
	"bennypowers.dev/csscolor/internal/log"
	"bennypowers.dev/csscolor/internal/parser"
	"bennypowers.dev/csscolor/internal/parser/css"
)

// ErrUnsupportedFile is returned for extensions the checker cannot read
var ErrUnsupportedFile = errors.New("unsupported file type")

// Checker parses the color literals of one file at a time. A Checker is safe
// for concurrent use once constructed.
type Checker struct {
	// Model is the model Finding.Components are expressed in
	Model color.Model
	// Properties are extra CSS properties treated as color properties
	Properties []string

	once  sync.Once
	props collections.FoldedSet
}

// New creates a Checker
func New(model color.Model, properties []string) *Checker {
	return &Checker{Model: model, Properties: properties}
}

func (c *Checker) extra() collections.FoldedSet {
	c.once.Do(func() {
		c.props = collections.NewFoldedSet(c.Properties...)
	})
	return c.props
}

// CheckFile reads path and checks it
func (c *Checker) CheckFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Check(path, data)
}

// Check inspects data, choosing a reader by the extension of name
func (c *Checker) Check(name string, data []byte) ([]Finding, error) {
	switch lang := parser.LanguageOf(name); {
	case lang.HasCSS():
		result, err := parser.ParseCSS(string(data), lang)
		return c.fromCSS(name, result, err)

	case lang == parser.LanguageTokens:
		return c.fromTokens(name, data, !isYAML(name))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// literal parses value and records where it was found
func (c *Checker) literal(file string, line, column int, name, value string) Finding {
	f := Finding{
		File:   file,
		Line:   line,
		Column: column,
		Name:   name,
		Value:  value,
	}
	f.Components, f.Err = color.Parse(value, c.Model)
	return f
}

func (c *Checker) fromCSS(file string, result *css.ParseResult, err error) ([]Finding, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	var findings []Finding
	add := func(property string, v css.Value) {
		findings = append(findings, c.literal(file,
			int(v.Range.Start.Line)+1, int(v.Range.Start.Character)+1, property, v.Text))
	}

	for _, decl := range result.Declarations {
		for _, part := range decl.Parts {
			if c.isCandidate(decl.Property, part.Text, len(decl.Parts) == 1) {
				add(decl.Property, part)
			}
		}
	}
	for _, vc := range result.VarCalls {
		if vc.Fallback != nil && c.isCandidate(vc.Property, vc.Fallback.Text, true) {
			add(vc.Property, *vc.Fallback)
		}
	}

	sortFindings(findings)
	return findings, nil
}

func sortFindings(findings []Finding) {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.Column, b.Column))
	})
}

// CheckAll checks paths on a pool of workers bounded by the CPU count.
// Findings keep the order of paths. Files that fail to read or parse are
// collected in Report.Errors. Cancelling ctx stops workers from starting new
// files.
func (c *Checker) CheckAll(ctx context.Context, paths []string) Report {
	type result struct {
		findings []Finding
		err      error
	}
	results := make([]result, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(runtime.NumCPU(), max(len(paths), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				findings, err := c.CheckFile(paths[i])
				results[i] = result{findings, err}
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	report := Report{Files: paths}
	for i, r := range results {
		if r.err != nil {
			log.Warn("Skipping %s: %v", paths[i], r.err)
			report.Errors = append(report.Errors, r.err)
			continue
		}
		report.Findings = append(report.Findings, r.findings...)
	}
	if err := ctx.Err(); err != nil {
		report.Errors = append(report.Errors, err)
	}

	log.Debug("Checked %d files, %d color literals", len(paths), len(report.Findings))
	return report
}
