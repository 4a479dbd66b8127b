// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per ErrorKind. A *ParseError matches the sentinel of
// its kind with errors.Is.
var (
	ErrMalformedSwitch    = errors.New("malformed switch")
	ErrEmptySwitch        = errors.New("empty switch")
	ErrMissingValue       = errors.New("missing value for switch")
	ErrMissingMandatory   = errors.New("missing mandatory parameter")
	ErrInsufficientValues = errors.New("insufficient values")
	ErrInvalidValue       = errors.New("invalid value")

	// ErrHelp is returned by Check when a help option was matched.
	ErrHelp = errors.New("help requested")

	// ErrUnused is matched by *UnusedError.
	ErrUnused = errors.New("unused arguments")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// MalformedSwitch is a '-' inside a bundle of short options, as in -a-b.
	MalformedSwitch ErrorKind = iota + 1
	// EmptySwitch is a lone "-" token.
	EmptySwitch
	// MissingValueForSwitch is a switch bound to a non-boolean parameter
	// with no value following it.
	MissingValueForSwitch
	// MissingMandatoryParameter is a mandatory parameter that never appeared.
	MissingMandatoryParameter
	// InsufficientValues is a values binding asking for more values than remain.
	InsufficientValues
	// InvalidValue is a value the destination's converter rejected.
	InvalidValue
)

var kindSentinels = map[ErrorKind]error{
	MalformedSwitch:           ErrMalformedSwitch,
	EmptySwitch:               ErrEmptySwitch,
	MissingValueForSwitch:     ErrMissingValue,
	MissingMandatoryParameter: ErrMissingMandatory,
	InsufficientValues:        ErrInsufficientValues,
	InvalidValue:              ErrInvalidValue,
}

func (k ErrorKind) String() string {
	switch k {
	case MalformedSwitch:
		return "MalformedSwitch"
	case EmptySwitch:
		return "EmptySwitch"
	case MissingValueForSwitch:
		return "MissingValueForSwitch"
	case MissingMandatoryParameter:
		return "MissingMandatoryParameter"
	case InsufficientValues:
		return "InsufficientValues"
	case InvalidValue:
		return "InvalidValue"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is one entry of the parser's error log.
type ParseError struct {
	Kind  ErrorKind
	Name  string // switch or binding name as displayed, e.g. "-s" or "-s/--size"
	Token string // offending command-line token, if any
	Msg   string // user-facing message
	Err   error  // underlying cause, e.g. the converter error
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Errors is the ordered error log of a parse.
type Errors []*ParseError

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func (es Errors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}

// UnusedError lists the switches and values no binding consumed.
type UnusedError struct {
	Options []string // with their dashes, e.g. "-t", "--verbose"
	Values  []string
}

func (e *UnusedError) Error() string {
	all := append(append([]string{}, e.Options...), e.Values...)
	return fmt.Sprintf("unused arguments: %s", strings.Join(all, " "))
}

func (e *UnusedError) Is(target error) bool {
	return target == ErrUnused
}
