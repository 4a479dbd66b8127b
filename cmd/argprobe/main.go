// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argprobe parses a command line against a declared set of bindings
// and reports what each binding received, much like getopt(1).
//
//	argprobe -f copy.toml -- -v --size 512 a.txt b.txt
//	eval "$(argprobe -f copy.toml -o env -- "$@")"
//
// A --line value starting with '-' must follow a "--":
//
//	argprobe -f copy.toml --line -- "-s 512 a.txt"
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/yeetrun/argstream/pkg/argstream"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("argprobe: ")

	code, err := run(os.Args, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	os.Exit(code)
}

type flags struct {
	file         string
	line         string
	shell        bool
	format       string
	ignoreUnused bool
	trace        bool
	args         []string
}

// parseFlags parses argprobe's own command line. ok is false when the
// caller should stop with the returned exit code.
func parseFlags(argv []string, stdout, stderr io.Writer) (f flags, code int, ok bool) {
	f.format = formatText
	p := argstream.New(argv)
	p.Apply(
		argstream.Parameter('f', "file", &f.file, "binding declaration (.toml, .yaml or .yml)"),
		argstream.Parameter('l', "line", &f.line, "command line to parse instead of the arguments").Optional(),
		argstream.LongOption("shell", &f.shell, "split --line with shell quoting"),
		argstream.Parameter('o', "format", &f.format, "report format: text, yaml or env").Optional(),
		argstream.Option('i', "ignore-unused", &f.ignoreUnused, "accept leftover arguments"),
		argstream.LongOption("trace", &f.trace, "trace scanning and lookups on stderr"),
		argstream.HelpOption(),
		argstream.Values(&f.args, "arguments to parse", argstream.Unbounded),
	)
	if o := p.DefaultErrorHandling(stdout, stderr, false); o != argstream.OutcomeOK {
		return f, o.ExitCode(), false
	}
	return f, 0, true
}

// targetArgv builds the argument vector to parse, program name first.
func targetArgv(f flags, prog string) ([]string, error) {
	switch {
	case f.line != "" && len(f.args) > 0:
		return nil, errors.New("--line cannot be combined with arguments")
	case f.line != "" && f.shell:
		words, err := argstream.SplitShell(f.line)
		if err != nil {
			return nil, err
		}
		return append([]string{prog}, words...), nil
	case f.line != "":
		return append([]string{prog}, argstream.SplitFields(f.line)...), nil
	default:
		return append([]string{prog}, f.args...), nil
	}
}

func run(argv []string, stdout, stderr io.Writer) (int, error) {
	f, code, ok := parseFlags(argv, stdout, stderr)
	if !ok {
		return code, nil
	}
	switch f.format {
	case formatText, formatYAML, formatEnv:
	default:
		return 0, fmt.Errorf("unknown format %q (want text, yaml or env)", f.format)
	}

	decl, err := loadDeclaration(f.file)
	if err != nil {
		return 0, err
	}
	bindings, slots, err := decl.bindings()
	if err != nil {
		return 0, err
	}
	targv, err := targetArgv(f, decl.Program)
	if err != nil {
		return 0, err
	}

	cfg := argstream.Config{
		ProgName:    decl.Program,
		SplitEquals: decl.SplitEquals,
	}
	if f.trace {
		cfg.Logger = log.New(stderr, "trace: ", 0)
	}
	p := argstream.NewWithConfig(targv, cfg)
	p.Apply(bindings...)

	// env output is meant for eval, keep everything else off stdout.
	usageOut := stdout
	if f.format == formatEnv {
		usageOut = stderr
	}
	if p.HelpRequested() && decl.Description != "" {
		fmt.Fprintln(usageOut, decl.Description)
	}
	o := p.DefaultErrorHandling(usageOut, stderr, f.ignoreUnused)
	if o != argstream.OutcomeOK {
		return o.ExitCode(), nil
	}

	r := report{program: p.ProgName(), outcome: o, slots: slots}
	if f.ignoreUnused {
		opts, vals := p.Unused()
		r.unused = append(opts, vals...)
	}
	if err := writeReport(stdout, f.format, r); err != nil {
		return 0, err
	}
	return 0, nil
}
