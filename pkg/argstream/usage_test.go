// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
)

func TestUsage(t *testing.T) {
	var (
		size    int
		out     = "out.txt"
		verbose bool
		inputs  []string
	)
	p := New([]string{"/usr/bin/prog", "-s", "1"})
	p.Apply(
		Option('v', "verbose", &verbose, "be chatty"),
		Parameter('s', "size", &size, "block size"),
		LongParameter("out", &out, "output file").Optional(),
		HelpOption(),
		Values(&inputs, "input files", Unbounded),
	)

	want := heredoc.Doc(`
		usage: prog [-h] [-v] -s value [--out value] a1...
			-v/--verbose : be chatty
			-s/--size    : block size (mandatory)
			--out        : output file (default=out.txt)
			-h/--help    : Display this help
			a1...        : input files
	`)
	if diff := cmp.Diff(want, p.Usage()); diff != "" {
		t.Errorf("Usage mismatch (-want +got):\n%s", diff)
	}
	if got, want := p.CommandLine(), " [-h] [-v] -s value [--out value] a1..."; got != want {
		t.Errorf("CommandLine = %q, want %q", got, want)
	}
}

func TestUsageValuesNames(t *testing.T) {
	var a, b, c []string
	p := New([]string{"prog"})
	p.Apply(
		Values(&a, "one", 1),
		Values(&b, "three", 3),
		Values(&c, "rest", Unbounded),
	)

	want := heredoc.Doc(`
		usage: prog a1 b1...b3 c1...
			a1      : one
			b1...b3 : three
			c1...   : rest
	`)
	if diff := cmp.Diff(want, p.Usage()); diff != "" {
		t.Errorf("Usage mismatch (-want +got):\n%s", diff)
	}
}

func TestUsageNoBindings(t *testing.T) {
	p := NewWithConfig([]string{"prog"}, Config{ProgName: "tool"})
	if got, want := p.Usage(), "usage: tool\n"; got != want {
		t.Errorf("Usage = %q, want %q", got, want)
	}
}

func TestUsageWideNames(t *testing.T) {
	var b bool
	p := New([]string{"prog"})
	p.Apply(
		LongOption("größe", &b, "size"),
		ShortOption('x', &b, "x"),
	)

	want := heredoc.Doc(`
		usage: prog [-x] [--größe]
			--größe : size
			-x      : x
	`)
	if diff := cmp.Diff(want, p.Usage()); diff != "" {
		t.Errorf("Usage mismatch (-want +got):\n%s", diff)
	}
}
