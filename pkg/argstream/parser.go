// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"log"
	"maps"
	"slices"
	"strings"

	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// noValue marks an association whose switch has no value attached.
const noValue = -1

// Help option defaults, also used by the help pre-scan.
const (
	defaultHelpShort = 'h'
	defaultHelpLong  = "help"
	defaultHelpDesc  = "Display this help"
)

// Config controls optional parser behavior. The zero value gives the
// classic behavior.
type Config struct {
	// ProgName overrides the program name shown by Usage.
	ProgName string

	// HelpShort and HelpLong are the switch names that raise the
	// help-requested state whenever an option binding is applied, whether
	// or not a help option is bound. Zero values mean 'h' and "help".
	HelpShort rune
	HelpLong  string

	// NoHelpScan disables the pre-scan for help switches; only a bound
	// help option can then request help.
	NoHelpScan bool

	// SplitEquals makes "--name=value" register the long switch "name"
	// with "value" attached to it.
	SplitEquals bool

	// Logger, if set, receives a trace of the scan and of every binding
	// lookup.
	Logger *log.Logger
}

type rawValue struct {
	text     string
	consumed bool
}

type helpEntry struct {
	name        string
	description string
}

// Parser holds the state of a single parse: the switches seen on the command
// line, the values that followed them and everything the applied bindings
// have recorded since. A Parser is not safe for concurrent use; bindings are
// applied in order and that order decides which values each one consumes.
type Parser struct {
	cfg      Config
	progName string

	// options maps a switch name, without dashes, to an index into values
	// or to noValue.
	options map[string]int
	values  []rawValue

	minusActive bool

	errs          Errors
	helps         []helpEntry
	cmdLine       string
	helpRequested bool
	helpNames     set.Set[string]

	// nextLabel numbers the values bindings applied to this parser.
	nextLabel int
}

// New scans argv, whose first element is the program name.
func New(argv []string) *Parser {
	return NewWithConfig(argv, Config{})
}

// NewWithConfig is like New with explicit configuration.
func NewWithConfig(argv []string, cfg Config) *Parser {
	p := newParser(cfg)
	if len(argv) > 0 {
		p.progName = baseName(argv[0])
		p.scan(argv[1:])
	}
	if cfg.ProgName != "" {
		p.progName = cfg.ProgName
	}
	return p
}

// NewFromString scans the whitespace separated words of args. All words are
// arguments; the program name is empty. Quotes are not interpreted.
func NewFromString(args string) *Parser {
	return NewWithConfig(append([]string{""}, SplitFields(args)...), Config{})
}

// NewFromCommandLine scans a full command line whose first word is the
// program, as in "prog -s hello". Quotes are not interpreted.
func NewFromCommandLine(cmdline string) *Parser {
	return New(SplitFields(cmdline))
}

// NewFromShellString is like NewFromString but splits args with shell
// quoting rules, so `-s "a b"` binds "a b" to -s.
func NewFromShellString(args string) (*Parser, error) {
	words, err := SplitShell(args)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(append([]string{""}, words...), Config{}), nil
}

func newParser(cfg Config) *Parser {
	if cfg.HelpShort == 0 {
		cfg.HelpShort = defaultHelpShort
	}
	if cfg.HelpLong == "" {
		cfg.HelpLong = defaultHelpLong
	}
	p := &Parser{
		cfg:         cfg,
		minusActive: true,
	}
	if !cfg.NoHelpScan {
		p.helpNames = set.Of(string(cfg.HelpShort), cfg.HelpLong)
	}
	return p
}

// baseName strips any directory prefix, with either separator, from a
// program path.
func baseName(prog string) string {
	if i := strings.LastIndexAny(prog, `/\`); i >= 0 {
		return prog[i+1:]
	}
	return prog
}

// scan makes the single left-to-right pass over args.
//
// A token starting with "--" is a long switch, one starting with "-" is a
// bundle of short switches, anything else is a value. A value is attached to
// the switch immediately before it; for a bundle like -abc that is the last
// one, c. A lone "--" turns the remaining tokens into values. Since switches
// are keyed by name, "-a -b -a x" is the same as "-b -a x".
func (p *Parser) scan(args []string) {
	var last string
	hasLast := false

	for _, arg := range args {
		if !p.minusActive || !strings.HasPrefix(arg, "-") {
			idx := len(p.values)
			p.values = append(p.values, rawValue{text: arg})
			if hasLast {
				p.options[last] = idx
			}
			hasLast = false
			continue
		}

		if strings.HasPrefix(arg, "--") {
			if arg == "--" {
				p.minusActive = false
				continue
			}
			name := arg[2:]
			if p.cfg.SplitEquals {
				if i := strings.Index(name, "="); i > 0 {
					mak.Set(&p.options, name[:i], len(p.values))
					p.values = append(p.values, rawValue{text: name[i+1:]})
					hasLast = false
					continue
				}
			}
			mak.Set(&p.options, name, noValue)
			last, hasLast = name, true
			continue
		}

		shorts := arg[1:]
		if shorts == "" {
			p.addError(&ParseError{
				Kind:  EmptySwitch,
				Token: arg,
				Msg:   "invalid argument -",
			})
			hasLast = false
			continue
		}
		for _, r := range shorts {
			if r == '-' {
				p.addError(&ParseError{
					Kind:  MalformedSwitch,
					Token: arg,
					Msg:   "- in the middle of a switch " + arg,
				})
				break
			}
			name := string(r)
			mak.Set(&p.options, name, noValue)
			last, hasLast = name, true
		}
	}

	if p.cfg.Logger != nil {
		for _, name := range slices.Sorted(maps.Keys(p.options)) {
			if idx := p.options[name]; idx != noValue {
				p.logf("option %s -> %s", name, p.values[idx].text)
			} else {
				p.logf("option %s", name)
			}
		}
		for _, v := range p.values {
			p.logf("value  %s", v.text)
		}
	}
}

func (p *Parser) logf(format string, args ...any) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Printf(format, args...)
	}
}

func (p *Parser) addError(err *ParseError) {
	p.errs = append(p.errs, err)
}

// lookup finds the switch for a binding, trying the short name first.
func (p *Parser) lookup(short rune, long string) (name string, idx int, ok bool) {
	if short != 0 {
		name = string(short)
		if idx, ok = p.options[name]; ok {
			return name, idx, true
		}
	}
	if long != "" {
		if idx, ok = p.options[long]; ok {
			return long, idx, true
		}
	}
	return "", noValue, false
}

// release marks the value at idx as consumed and detaches it from every
// switch still pointing at it.
func (p *Parser) release(idx int) {
	p.values[idx].consumed = true
	for name, v := range p.options {
		if v == idx {
			p.options[name] = noValue
		}
	}
}

// remaining returns the indexes of values not yet consumed, in command-line
// order.
func (p *Parser) remaining() []int {
	var idxs []int
	for i, v := range p.values {
		if !v.consumed {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Apply applies bindings in order. Each binding may be applied only once.
func (p *Parser) Apply(bindings ...Binding) *Parser {
	for _, b := range bindings {
		b.apply(p)
	}
	return p
}

// Extract applies a single binding and returns p, so that calls chain:
//
//	p.Extract(a).Extract(b)
func (p *Parser) Extract(b Binding) *Parser {
	b.apply(p)
	return p
}

// ProgName returns the program name with any directory stripped.
func (p *Parser) ProgName() string {
	return p.progName
}

// IsOK reports whether no error has been recorded so far.
func (p *Parser) IsOK() bool {
	return len(p.errs) == 0
}

// HelpRequested reports whether a help switch was matched by an option
// binding.
func (p *Parser) HelpRequested() bool {
	return p.helpRequested
}

// Errors returns the recorded errors in the order they occurred.
func (p *Parser) Errors() Errors {
	return slices.Clone(p.errs)
}

// ErrorLog renders the recorded errors one per line.
func (p *Parser) ErrorLog() string {
	var b strings.Builder
	for _, e := range p.errs {
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	return b.String()
}

// Unused returns the switches and values no binding has consumed. Switches
// are sorted and carry their dashes; values keep command-line order.
func (p *Parser) Unused() (options, values []string) {
	for _, name := range slices.Sorted(maps.Keys(p.options)) {
		options = append(options, switchName(name))
	}
	for _, idx := range p.remaining() {
		values = append(values, p.values[idx].text)
	}
	return options, values
}

// switchName renders a table key the way it is typed: one dash for a single
// character, two otherwise.
func switchName(name string) string {
	if len([]rune(name)) == 1 {
		return "-" + name
	}
	return "--" + name
}
