// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"fmt"
	"io"
)

// Outcome is the overall result of a parse once all bindings are applied.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeHelpRequested
	OutcomeParseFailed
	OutcomeUnusedArguments
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeHelpRequested:
		return "help requested"
	case OutcomeParseFailed:
		return "parse failed"
	case OutcomeUnusedArguments:
		return "unused arguments"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ExitCode is the process exit status conventionally used for the outcome:
// 0 for OutcomeOK and 1 for everything else, help included.
func (o Outcome) ExitCode() int {
	if o == OutcomeOK {
		return 0
	}
	return 1
}

// Result decides the outcome. Help wins over errors, errors win over
// leftovers. Leftover switches and values only count when ignoreUnused is
// false.
func (p *Parser) Result(ignoreUnused bool) Outcome {
	switch {
	case p.helpRequested:
		return OutcomeHelpRequested
	case !p.IsOK():
		return OutcomeParseFailed
	case !ignoreUnused && p.hasUnused():
		return OutcomeUnusedArguments
	default:
		return OutcomeOK
	}
}

func (p *Parser) hasUnused() bool {
	return len(p.options) > 0 || len(p.remaining()) > 0
}

// Check is Result as an error: nil, ErrHelp, the Errors log, or an
// *UnusedError.
func (p *Parser) Check(ignoreUnused bool) error {
	switch p.Result(ignoreUnused) {
	case OutcomeHelpRequested:
		return ErrHelp
	case OutcomeParseFailed:
		return p.Errors()
	case OutcomeUnusedArguments:
		opts, vals := p.Unused()
		return &UnusedError{Options: opts, Values: vals}
	default:
		return nil
	}
}

// DefaultErrorHandling reports the outcome the classic way: usage on stdout
// when help was requested, the error log on stderr when parsing failed, and
// "Unused arguments" on stderr for leftovers. It never exits; callers decide
// what to do with the returned outcome, typically os.Exit(o.ExitCode()).
func (p *Parser) DefaultErrorHandling(stdout, stderr io.Writer, ignoreUnused bool) Outcome {
	o := p.Result(ignoreUnused)
	switch o {
	case OutcomeHelpRequested:
		fmt.Fprint(stdout, p.Usage())
	case OutcomeParseFailed:
		fmt.Fprint(stderr, p.ErrorLog())
	case OutcomeUnusedArguments:
		fmt.Fprintln(stderr, "Unused arguments")
	}
	return o
}
