// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/yeetrun/argstream/pkg/argstream"
)

func ExampleParser() {
	var (
		size    int
		verbose bool
		inputs  []string
	)
	p := argstream.New([]string{"/bin/copy", "-v", "--size", "512", "a.txt", "b.txt"})
	p.Apply(
		argstream.Parameter('s', "size", &size, "block size"),
		argstream.Option('v', "verbose", &verbose, "be chatty"),
		argstream.HelpOption(),
		argstream.Values(&inputs, "input files", argstream.Unbounded),
	)
	o := p.DefaultErrorHandling(os.Stdout, os.Stderr, false)
	fmt.Println(o, size, verbose, inputs)
	// Output: ok 512 true [a.txt b.txt]
}

func ExampleParser_Usage() {
	var out = "out.txt"
	var verbose bool
	p := argstream.New([]string{"copy", "-h"})
	p.Apply(
		argstream.LongParameter("out", &out, "output file").Optional(),
		argstream.Option('v', "verbose", &verbose, "be chatty"),
		argstream.HelpOption(),
	)
	if p.HelpRequested() {
		fmt.Print(p.Usage())
	}
	// Output:
	// usage: copy [-h] [-v] [--out value]
	// 	--out        : output file (default=out.txt)
	// 	-v/--verbose : be chatty
	// 	-h/--help    : Display this help
}

func ExampleParser_Check() {
	var n int
	p := argstream.NewFromString("-n ten")
	p.Apply(argstream.ShortParameter('n', &n, "count"))

	err := p.Check(false)
	fmt.Println(errors.Is(err, argstream.ErrInvalidValue))
	fmt.Println(err)
	// Output:
	// true
	// invalid value for switch -n: invalid int value "ten": invalid syntax
}
