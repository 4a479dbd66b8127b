// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argstream binds command-line switches and values to typed
// variables.
//
// A Parser scans the argument vector once, when it is created, recording
// which switches appeared and which value followed each of them. Bindings
// are then applied in order; each one looks up its switch, converts the
// value, stores it in its destination and removes what it used, so the
// order of bindings decides which of several values a binding gets.
//
//	var (
//	    size    int
//	    out     = "out.txt"
//	    verbose bool
//	    inputs  []string
//	)
//	p := argstream.New(os.Args)
//	p.Apply(
//	    argstream.Parameter('s', "size", &size, "block size"),
//	    argstream.Parameter('o', "out", &out, "output file").Optional(),
//	    argstream.Option('v', "verbose", &verbose, "be chatty"),
//	    argstream.HelpOption(),
//	    argstream.Values(&inputs, "input files", argstream.Unbounded),
//	)
//	if o := p.DefaultErrorHandling(os.Stdout, os.Stderr, false); o != argstream.OutcomeOK {
//	    os.Exit(o.ExitCode())
//	}
//
// # Syntax
//
//   - --name is a long switch.
//   - -abc is the three short switches a, b and c. A value following the
//     bundle belongs to c only.
//   - Any other token is a value. It is attached to the switch right before
//     it, if any.
//   - A lone -- makes every later token a value, even one starting with '-'.
//   - Repeating a switch replaces the earlier occurrence: "-a -b -a x" is
//     "-b -a x".
//
// # Errors
//
// Problems are collected rather than returned one at a time, so a single
// run reports all of them. IsOK, ErrorLog and Errors expose the log; each
// *ParseError matches its kind's sentinel (ErrMissingValue and friends)
// with errors.Is. Result, Check and DefaultErrorHandling turn the final
// state into an Outcome or an error.
package argstream
