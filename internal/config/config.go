// Package config parses the universe binary's command-line surface
// using github.com/jessevdk/go-flags for a single flat options struct.
package config

import (
	"fmt"

	flags "github.com/jessevdk/go-flags"
)

// Config is the flat set of flags the simulation entry point accepts.
type Config struct {
	Seed         uint64 `long:"seed" description:"PRNG seed; 0 picks a random seed" default:"0"`
	Ticks        uint64 `long:"ticks" description:"number of ticks to run; 0 runs unbounded" default:"0"`
	Headless     bool   `long:"headless" description:"run without an interactive display"`
	Visual       bool   `long:"visual" description:"run with an interactive display"`
	Pipe         bool   `long:"pipe" description:"speak the line-oriented JSON command protocol on stdin/stdout"`
	DBPath       string `long:"db" description:"path to the sqlite save file" default:"universe.db"`
	SaveInterval uint64 `long:"save-interval" description:"ticks between automatic saves; 0 disables autosave" default:"0"`
	Resume       bool   `long:"resume" description:"resume from an existing save at --db instead of generating a fresh universe"`
	SimYears     uint64 `long:"sim-years" description:"stop after this many simulated years; 0 disables the limit" default:"0"`
	Hours        uint64 `long:"hours" description:"stop after this many wall-clock hours; 0 disables the limit" default:"0"`
}

// ExitCode mirrors the two outcomes of argument parsing: 0 for a
// clean parse (including --help), 1 for anything else.
type ExitCode int

const (
	ExitOK    ExitCode = 0
	ExitError ExitCode = 1
)

// Parse parses args (typically os.Args[1:]) into a Config. handled is
// true when the process should exit immediately with exitCode — on
// --help that exitCode is 0, since go-flags already wrote the help
// text.
func Parse(args []string) (cfg *Config, exitCode ExitCode, handled bool) {
	cfg = &Config{}
	parser := flags.NewParser(cfg, flags.Default)
	parser.Name = "universe"
	parser.LongDescription = "A deterministic tick-driven galactic exploration simulation core."

	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, ExitOK, true
		}
		return nil, ExitError, true
	}

	if cfg.Headless && cfg.Visual {
		return nil, ExitError, true
	}
	if !cfg.Headless && !cfg.Visual {
		cfg.Headless = true
	}

	return cfg, ExitOK, false
}

// Validate checks field-level constraints Parse's flag tags cannot
// express (mutual exclusions aside from Headless/Visual, etc).
func (c *Config) Validate() error {
	if c.Pipe && c.Visual {
		return fmt.Errorf("config: --pipe and --visual are mutually exclusive")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: --db must not be empty")
	}
	return nil
}
