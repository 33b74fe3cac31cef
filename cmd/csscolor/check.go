package main

import (
	"context"
	"fmt"
	"path/filepath"

	"bennypowers.dev/csscolor/color"
	"bennypowers.dev/csscolor/internal/check"
	"bennypowers.dev/csscolor/internal/config"
	"bennypowers.dev/csscolor/internal/log"
)

func (c *cli) runCheck(ctx context.Context, cfg config.Config) int {
	model, err := color.ParseModel(cfg.Model)
	if err != nil {
		fmt.Fprintf(c.stderr, "csscolor: error: %v\n", err)
		return exitUsage
	}

	patterns := *c.check.patterns
	if len(patterns) == 0 {
		patterns = cfg.Patterns
	}
	root := *c.check.root

	files, err := check.Discover(root, patterns)
	if err != nil {
		fmt.Fprintf(c.stderr, "csscolor: error: %v\n", err)
		return exitUsage
	}
	log.Debug("Discovered %d files under %s", len(files), root)

	checker := check.New(model, cfg.Properties)
	report := checker.CheckAll(ctx, files)
	c.printReport(report)

	st := newStatus(report)
	if *c.check.watch {
		if err := watch(ctx, root, patterns, func(path string) {
			changed := checker.CheckAll(ctx, []string{path})
			c.printReport(changed)
			st.update(path, changed)
		}); err != nil {
			fmt.Fprintf(c.stderr, "csscolor: error: %v\n", err)
			return exitUsage
		}
	}
	return st.code()
}

// status remembers which files failed their latest check. In watch mode a
// file that is fixed stops counting against the exit code.
type status struct {
	failing map[string]bool
	errors  bool
}

func newStatus(report check.Report) *status {
	st := &status{failing: map[string]bool{}, errors: len(report.Errors) > 0}
	for _, f := range report.Invalid() {
		st.failing[filepath.Clean(f.File)] = true
	}
	return st
}

func (st *status) update(path string, report check.Report) {
	st.failing[filepath.Clean(path)] = !report.OK()
}

func (st *status) code() int {
	if st.errors {
		return exitFindings
	}
	for _, failing := range st.failing {
		if failing {
			return exitFindings
		}
	}
	return exitOK
}

// printReport writes invalid findings to stdout and a summary to stderr
func (c *cli) printReport(report check.Report) {
	invalid := 0
	for _, f := range report.Findings {
		if f.Valid() {
			log.Debug("%s", f)
			continue
		}
		invalid++
		fmt.Fprintln(c.stdout, f)
	}
	for _, err := range report.Errors {
		fmt.Fprintf(c.stdout, "error: %v\n", err)
	}
	log.Info("Checked %d files: %d colors, %d invalid", len(report.Files), len(report.Findings), invalid)
}
