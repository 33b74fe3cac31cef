package main

import (
	"context"
	"fmt"
	"io"

	"bennypowers.dev/csscolor/internal/config"
	"bennypowers.dev/csscolor/internal/log"
	"bennypowers.dev/csscolor/internal/version"
	"github.com/alecthomas/kingpin/v2"
)

// Exit codes
const (
	exitOK       = 0
	exitFindings = 1
	exitUsage    = 2
)

// cli holds the kingpin application and the values it parses into
type cli struct {
	app    *kingpin.Application
	stdout io.Writer
	stderr io.Writer

	configPath *string
	verbose    *bool

	parse struct {
		cmd    *kingpin.CmdClause
		model  *string
		format *string
		to     *string
		colors *[]string
	}

	tokens struct {
		cmd   *kingpin.CmdClause
		color *string
	}

	check struct {
		cmd      *kingpin.CmdClause
		root     *string
		watch    *bool
		patterns *[]string
	}
}

func newCLI(stdout, stderr io.Writer) *cli {
	c := &cli{stdout: stdout, stderr: stderr}

	c.app = kingpin.New("csscolor", "Parse CSS color literals and check them across a project.").
		Version(version.String()).
		Writer(stdout).
		ErrorWriter(stderr).
		UsageWriter(stderr)
	c.app.HelpFlag.Short('h')

	c.configPath = c.app.Flag("config", "Config file (default: .csscolor.{json,jsonc,yaml,yml} in the working directory)").
		Short('c').PlaceHolder("FILE").String()
	c.verbose = c.app.Flag("verbose", "Log debug messages").Short('v').Bool()

	c.parse.cmd = c.app.Command("parse", "Parse color literals and print their components.")
	c.parse.model = c.parse.cmd.Flag("model", "Output model: rgba, hsla or hsva").Short('m').String()
	c.parse.format = c.parse.cmd.Flag("format", "Output format: text, json or yaml").Short('f').String()
	c.parse.to = c.parse.cmd.Flag("to", "Also serialize each color as hex, rgb, hsl or hsv").
		Enum("hex", "rgb", "hsl", "hsv")
	c.parse.colors = c.parse.cmd.Arg("color", "Color literals, e.g. '#fff' 'rgb(0, 0, 0)' tomato").Required().Strings()

	c.tokens.cmd = c.app.Command("tokens", "Print the tokens of a color literal.")
	c.tokens.color = c.tokens.cmd.Arg("color", "Color literal").Required().String()

	c.check.cmd = c.app.Command("check", "Report color literals that do not parse.")
	c.check.root = c.check.cmd.Flag("root", "Directory patterns are relative to").Default(".").ExistingDir()
	c.check.watch = c.check.cmd.Flag("watch", "Re-check files as they are written").Short('w').Bool()
	c.check.patterns = c.check.cmd.Arg("pattern", "Globs to check (default: from config)").Strings()

	return c
}

// run executes args and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCLI(stdout, stderr)

	command, err := c.app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "csscolor: error: %v\n", err)
		return exitUsage
	}

	cfg, err := c.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "csscolor: error: %v\n", err)
		return exitUsage
	}

	log.SetOutput(stderr)
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "csscolor: error: %v\n", err)
		return exitUsage
	}
	if *c.verbose {
		level = log.LevelDebug
	}
	log.SetLevel(level)

	switch command {
	case c.parse.cmd.FullCommand():
		return c.runParse(cfg)
	case c.tokens.cmd.FullCommand():
		return c.runTokens()
	case c.check.cmd.FullCommand():
		return c.runCheck(ctx, cfg)
	}
	return exitUsage
}

// loadConfig reads --config, or the discovered config file, or defaults
func (c *cli) loadConfig() (config.Config, error) {
	path := *c.configPath
	if path == "" {
		dir := "."
		if c.check.root != nil && *c.check.root != "" {
			dir = *c.check.root
		}
		found, err := config.Discover(dir)
		if err != nil {
			return config.Config{}, err
		}
		path = found
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
