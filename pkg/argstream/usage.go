// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

// Usage renders the program name, the command-line summary and one line per
// applied binding, in the order the bindings were applied:
//
//	usage: prog [-v] -s value [--out value] a1...
//		-v/--verbose : be chatty
//		-s/--size    : block size (mandatory)
//		--out        : output file (default=out.txt)
//		a1...        : input files
func (p *Parser) Usage() string {
	var b strings.Builder
	b.WriteString("usage: ")
	b.WriteString(p.progName)
	b.WriteString(p.cmdLine)
	b.WriteByte('\n')

	width := lo.Max(lo.Map(p.helps, func(h helpEntry, _ int) int {
		return runewidth.StringWidth(h.name)
	}))
	for _, h := range p.helps {
		b.WriteByte('\t')
		b.WriteString(runewidth.FillRight(h.name, width))
		b.WriteString(" : ")
		b.WriteString(h.description)
		b.WriteByte('\n')
	}
	return b.String()
}

// CommandLine returns the command-line summary built from the applied
// bindings, e.g. " [-v] -s value a1...".
func (p *Parser) CommandLine() string {
	return p.cmdLine
}
