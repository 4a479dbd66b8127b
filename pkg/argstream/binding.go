// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"fmt"
	"reflect"
)

// Unbounded is the values count meaning "every remaining value".
const Unbounded = -1

// Binding is a declaration that, applied to a Parser, consumes the matching
// part of the command line and fills its destination.
type Binding interface {
	apply(p *Parser)
}

// names holds the switch names of a parameter or option binding. A zero
// short or an empty long means the binding has no such name.
type names struct {
	short rune
	long  string
}

func newNames(short rune, long string) names {
	if short == 0 && long == "" {
		panic("argstream: binding needs a short or a long name")
	}
	return names{short: short, long: long}
}

// String renders the names as shown in usage: "-s", "--size" or "-s/--size".
func (n names) String() string {
	switch {
	case n.long == "":
		return "-" + string(n.short)
	case n.short == 0:
		return "--" + n.long
	default:
		return "-" + string(n.short) + "/--" + n.long
	}
}

// primary is the name used in the command-line summary, the short one if
// there is one.
func (n names) primary() string {
	if n.short != 0 {
		return "-" + string(n.short)
	}
	return "--" + n.long
}

// once guards against applying a binding twice.
type once struct {
	applied bool
}

func (o *once) mark() {
	if o.applied {
		panic("argstream: binding applied twice")
	}
	o.applied = true
}

// ParameterBinding binds a switch followed by a value to a destination of
// type T.
type ParameterBinding[T any] struct {
	once
	names
	dst         *T
	initial     T
	description string
	mandatory   bool
	conv        Converter[T]
}

// Parameter binds the value following -short or --long to dst. Parameters
// are mandatory unless Optional is called. For a bool destination the
// switch alone means true.
func Parameter[T any](short rune, long string, dst *T, description string) *ParameterBinding[T] {
	return &ParameterBinding[T]{
		names:       newNames(short, long),
		dst:         dst,
		initial:     *dst,
		description: description,
		mandatory:   true,
		conv:        DefaultConverter[T](),
	}
}

// ShortParameter is Parameter with only a short name.
func ShortParameter[T any](short rune, dst *T, description string) *ParameterBinding[T] {
	return Parameter(short, "", dst, description)
}

// LongParameter is Parameter with only a long name.
func LongParameter[T any](long string, dst *T, description string) *ParameterBinding[T] {
	return Parameter(0, long, dst, description)
}

// Optional makes the parameter optional. When it is absent the destination
// keeps the value it had when the binding was created.
func (b *ParameterBinding[T]) Optional() *ParameterBinding[T] {
	b.mandatory = false
	return b
}

// Mandatory sets whether the parameter must appear on the command line.
func (b *ParameterBinding[T]) Mandatory(m bool) *ParameterBinding[T] {
	b.mandatory = m
	return b
}

// WithConverter replaces the built-in conversion for T.
func (b *ParameterBinding[T]) WithConverter(c Converter[T]) *ParameterBinding[T] {
	b.conv = c
	return b
}

func (b *ParameterBinding[T]) helpDescription() string {
	if b.mandatory {
		return b.description + " (mandatory)"
	}
	return fmt.Sprintf("%s (default=%s)", b.description, formatDefault(b.initial))
}

func (b *ParameterBinding[T]) apply(p *Parser) {
	b.mark()
	p.logf("searching %s", b.names)

	p.helps = append(p.helps, helpEntry{name: b.names.String(), description: b.helpDescription()})
	if b.mandatory {
		p.cmdLine += " " + b.primary() + " value"
	} else {
		p.cmdLine += " [" + b.primary() + " value]"
	}

	name, idx, ok := p.lookup(b.short, b.long)
	if !ok {
		if b.mandatory {
			p.addError(&ParseError{
				Kind: MissingMandatoryParameter,
				Name: b.names.String(),
				Msg:  fmt.Sprintf("mandatory parameter %s missing", b.names),
			})
		}
		return
	}

	if idx == noValue {
		if !isBool[T]() {
			p.addError(&ParseError{
				Kind: MissingValueForSwitch,
				Name: switchName(name),
				Msg:  fmt.Sprintf("no value following switch %s", switchName(name)),
			})
			return
		}
		// The switch on its own means true.
		if v, err := b.conv.Convert("true"); err == nil {
			*b.dst = v
		}
		delete(p.options, name)
		return
	}

	text := p.values[idx].text
	p.logf("found value %s", text)
	v, err := b.conv.Convert(text)
	if err != nil {
		p.addError(&ParseError{
			Kind:  InvalidValue,
			Name:  switchName(name),
			Token: text,
			Msg:   fmt.Sprintf("invalid value for switch %s: %v", switchName(name), err),
			Err:   err,
		})
	} else {
		*b.dst = v
	}
	p.release(idx)
	delete(p.options, name)
}

func isBool[T any]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Bool
}

// formatDefault renders a default value for help text, following pointers
// and preferring a String method when the type has one.
func formatDefault(v any) string {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "none"
	}
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "none"
		}
		rv = rv.Elem()
	}
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	if s, ok := ptr.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(rv.Interface())
}

// OptionBinding binds the presence of a switch to a bool. Values following
// the switch are left for other bindings.
type OptionBinding struct {
	once
	names
	dst         *bool
	description string
}

// Option sets dst to whether -short or --long appears on the command line.
func Option(short rune, long string, dst *bool, description string) *OptionBinding {
	return &OptionBinding{
		names:       newNames(short, long),
		dst:         dst,
		description: description,
	}
}

// ShortOption is Option with only a short name.
func ShortOption(short rune, dst *bool, description string) *OptionBinding {
	return Option(short, "", dst, description)
}

// LongOption is Option with only a long name.
func LongOption(long string, dst *bool, description string) *OptionBinding {
	return Option(0, long, dst, description)
}

// HelpOption is the -h/--help option. When matched, HelpRequested reports
// true.
func HelpOption() *OptionBinding {
	return HelpOptionNamed(defaultHelpShort, defaultHelpLong, defaultHelpDesc)
}

// HelpOptionNamed is a help option with custom names and description.
func HelpOptionNamed(short rune, long, description string) *OptionBinding {
	return &OptionBinding{
		names:       newNames(short, long),
		description: description,
	}
}

func (b *OptionBinding) apply(p *Parser) {
	b.mark()
	p.logf("searching %s", b.names)

	p.helps = append(p.helps, helpEntry{name: b.names.String(), description: b.description})
	// Options go in front of the parameters in the command-line summary.
	p.cmdLine = " [" + b.primary() + "]" + p.cmdLine

	for name := range p.helpNames {
		if _, ok := p.options[name]; ok {
			p.helpRequested = true
		}
	}

	name, _, ok := p.lookup(b.short, b.long)
	if b.dst != nil {
		*b.dst = ok
	} else if ok {
		p.helpRequested = true
	}
	if ok {
		delete(p.options, name)
	}
}

// ValuesBinding consumes plain values from the front of the command line.
type ValuesBinding[T any] struct {
	once
	emit        func(T)
	description string
	count       int
	conv        Converter[T]
	label       string
}

// Values appends up to count converted values to dst, taking them from the
// front of the values not consumed yet. Use Unbounded to take them all.
// Asking for more values than remain is an error. count must be positive
// or Unbounded.
func Values[T any](dst *[]T, description string, count int) *ValuesBinding[T] {
	return ValuesFunc(func(v T) { *dst = append(*dst, v) }, description, count)
}

// ValuesFunc is like Values but hands each converted value to emit.
func ValuesFunc[T any](emit func(T), description string, count int) *ValuesBinding[T] {
	if count < 1 && count != Unbounded {
		panic(fmt.Sprintf("argstream: invalid values count %d", count))
	}
	return &ValuesBinding[T]{
		emit:        emit,
		description: description,
		count:       count,
		conv:        DefaultConverter[T](),
	}
}

// WithConverter replaces the built-in conversion for T.
func (b *ValuesBinding[T]) WithConverter(c Converter[T]) *ValuesBinding[T] {
	b.conv = c
	return b
}

// Label returns the label assigned when the binding was applied, e.g. "a",
// or "" before that.
func (b *ValuesBinding[T]) Label() string {
	return b.label
}

// name renders the label as shown in usage: "a1", "a1..." or "a1...a3".
func (b *ValuesBinding[T]) name() string {
	switch b.count {
	case Unbounded:
		return b.label + "1..."
	case 1:
		return b.label + "1"
	default:
		return fmt.Sprintf("%s1...%s%d", b.label, b.label, b.count)
	}
}

func (b *ValuesBinding[T]) apply(p *Parser) {
	b.mark()
	b.label = valuesLabel(p.nextLabel)
	p.nextLabel++
	p.logf("searching values %s", b.name())

	p.helps = append(p.helps, helpEntry{name: b.name(), description: b.description})
	p.cmdLine += " " + b.name()

	avail := p.remaining()
	n := b.count
	if n == Unbounded || n > len(avail) {
		n = len(avail)
	}
	for _, idx := range avail[:n] {
		text := p.values[idx].text
		v, err := b.conv.Convert(text)
		if err != nil {
			p.addError(&ParseError{
				Kind:  InvalidValue,
				Name:  b.name(),
				Token: text,
				Msg:   fmt.Sprintf("invalid value for %s: %v", b.name(), err),
				Err:   err,
			})
		} else {
			b.emit(v)
		}
		p.release(idx)
	}

	if b.count != Unbounded && n < b.count {
		p.addError(&ParseError{
			Kind: InsufficientValues,
			Name: b.name(),
			Msg:  fmt.Sprintf("expecting %d values, got %d", b.count, n),
		})
	}
}

// valuesLabel returns the i-th label of the sequence a, b, ..., z, aa, ab, ...
func valuesLabel(i int) string {
	var buf []byte
	for i++; i > 0; i = (i - 1) / 26 {
		buf = append([]byte{byte('a' + (i-1)%26)}, buf...)
	}
	return string(buf)
}
