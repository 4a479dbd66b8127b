// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yeetrun/argstream/pkg/argstream"
)

var isTerminalFn = term.IsTerminal

const (
	formatText = "text"
	formatYAML = "yaml"
	formatEnv  = "env"
)

// report is what a successful probe prints.
type report struct {
	program string
	outcome argstream.Outcome
	slots   []slot
	unused  []string
}

func writeReport(w io.Writer, format string, r report) error {
	switch format {
	case formatText:
		return writeText(w, r, newPalette(colorEnabled(w)))
	case formatYAML:
		return writeYAML(w, r)
	case formatEnv:
		return writeEnv(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// colorEnabled follows the usual conventions: only on a terminal, and never
// with NO_COLOR set or a dumb TERM.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !isTerminalFn(int(f.Fd())) {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	t := os.Getenv("TERM")
	return t != "" && t != "dumb"
}

type palette struct {
	name, ok, warn *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		name: color.New(color.FgCyan, color.Bold),
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.name, p.ok, p.warn} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func writeText(w io.Writer, r report, pal palette) error {
	if _, err := fmt.Fprintf(w, "%s: %s\n", r.program, pal.ok.Sprint(r.outcome)); err != nil {
		return err
	}
	width := lo.Max(lo.Map(r.slots, func(s slot, _ int) int {
		return runewidth.StringWidth(s.name)
	}))
	for _, s := range r.slots {
		items, list := render(s.value())
		val := "[" + strings.Join(items, ", ") + "]"
		if !list {
			val = items[0]
		}
		name := pal.name.Sprint(runewidth.FillRight(s.name, width))
		if _, err := fmt.Fprintf(w, "  %s = %s\n", name, val); err != nil {
			return err
		}
	}
	if len(r.unused) > 0 {
		if _, err := fmt.Fprintf(w, "%s %s\n", pal.warn.Sprint("unused:"), strings.Join(r.unused, " ")); err != nil {
			return err
		}
	}
	return nil
}

type yamlReport struct {
	Program string      `yaml:"program"`
	Outcome string      `yaml:"outcome"`
	Values  []yamlValue `yaml:"values"`
	Unused  []string    `yaml:"unused,omitempty"`
}

type yamlValue struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

func writeYAML(w io.Writer, r report) error {
	out := yamlReport{
		Program: r.program,
		Outcome: r.outcome.String(),
		Values:  []yamlValue{},
		Unused:  r.unused,
	}
	for _, s := range r.slots {
		items, list := render(s.value())
		var v any = items
		if !list {
			v = items[0]
		}
		out.Values = append(out.Values, yamlValue{Name: s.name, Value: v})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// writeEnv prints shell assignments meant for eval: NAME=value for scalars
// and NAME=(a b) arrays for lists.
func writeEnv(w io.Writer, r report) error {
	for _, s := range r.slots {
		items, list := render(s.value())
		var line string
		if list {
			line = fmt.Sprintf("%s=(%s)", s.name, shellquote.Join(items...))
		} else {
			line = fmt.Sprintf("%s=%s", s.name, shellquote.Join(items[0]))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
