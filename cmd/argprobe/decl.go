// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Declaration describes the command line of a program: the bindings to apply,
// in order, and how to present them.
type Declaration struct {
	Program     string        `toml:"program" yaml:"program"`
	Description string        `toml:"description" yaml:"description"`
	SplitEquals bool          `toml:"split_equals" yaml:"split_equals"`
	Bindings    []BindingDecl `toml:"binding" yaml:"binding"`
}

// BindingDecl is one entry of a declaration file.
type BindingDecl struct {
	Kind        string `toml:"kind" yaml:"kind"` // parameter, option, help or values
	Short       string `toml:"short" yaml:"short"`
	Long        string `toml:"long" yaml:"long"`
	Type        string `toml:"type" yaml:"type"`
	Mandatory   *bool  `toml:"mandatory" yaml:"mandatory"`
	Default     string `toml:"default" yaml:"default"`
	Count       int    `toml:"count" yaml:"count"` // values only; 0 means all
	Description string `toml:"description" yaml:"description"`
	Var         string `toml:"var" yaml:"var"`
}

const (
	kindParameter = "parameter"
	kindOption    = "option"
	kindHelp      = "help"
	kindValues    = "values"
)

// loadDeclaration reads a TOML or YAML declaration, chosen by extension.
func loadDeclaration(path string) (*Declaration, error) {
	var d Declaration
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &d); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported declaration format %q (want .toml, .yaml or .yml)", ext)
	}
	if d.Program == "" {
		base := filepath.Base(path)
		d.Program = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &d, nil
}

func (d *Declaration) validate() error {
	seen := map[string]bool{}
	for i := range d.Bindings {
		b := &d.Bindings[i]
		if b.Kind == "" {
			b.Kind = kindParameter
		}
		switch b.Kind {
		case kindParameter, kindOption, kindHelp:
			if b.Short == "" && b.Long == "" && b.Kind != kindHelp {
				return fmt.Errorf("binding %d: %s needs a short or a long name", i+1, b.Kind)
			}
			if b.Short != "" && utf8.RuneCountInString(b.Short) != 1 {
				return fmt.Errorf("binding %d: short name %q must be a single character", i+1, b.Short)
			}
		case kindValues:
			if b.Count < 0 {
				return fmt.Errorf("binding %d: invalid count %d", i+1, b.Count)
			}
			if b.Type == "list" {
				return fmt.Errorf("binding %d: values are already a list", i+1)
			}
		default:
			return fmt.Errorf("binding %d: unknown kind %q", i+1, b.Kind)
		}
		if b.Kind == kindOption && b.Type != "" && b.Type != "bool" {
			return fmt.Errorf("binding %d: option cannot have type %q", i+1, b.Type)
		}
		if b.Kind == kindHelp {
			continue
		}
		if _, ok := binders[b.typeName()]; !ok {
			return fmt.Errorf("binding %d: unknown type %q", i+1, b.Type)
		}
		name := b.varName()
		if seen[name] {
			return fmt.Errorf("binding %d: duplicate variable %s", i+1, name)
		}
		seen[name] = true
	}
	return nil
}

func (b *BindingDecl) typeName() string {
	if b.Type == "" {
		if b.Kind == kindOption {
			return "bool"
		}
		return "string"
	}
	return b.Type
}

func (b *BindingDecl) shortRune() rune {
	r, _ := utf8.DecodeRuneInString(b.Short)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

func (b *BindingDecl) mandatory() bool {
	return b.Mandatory == nil || *b.Mandatory
}

// varName is the name a binding is reported under: Var if set, otherwise
// the upper-cased switch name, or ARGS for values.
func (b *BindingDecl) varName() string {
	name := b.Var
	switch {
	case name != "":
	case b.Long != "":
		name = b.Long
	case b.Short != "":
		name = b.Short
	default:
		name = "args"
	}
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
