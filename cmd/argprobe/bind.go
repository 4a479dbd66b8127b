// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/yeetrun/argstream/pkg/argstream"
)

// slot is where a bound value ends up, read back for the report.
type slot struct {
	name  string
	value func() any
}

type binder struct {
	parameter func(d BindingDecl) (argstream.Binding, func() any, error)
	values    func(d BindingDecl) (argstream.Binding, func() any)
}

func binderFor[T any]() binder {
	return binder{
		parameter: func(d BindingDecl) (argstream.Binding, func() any, error) {
			dst := new(T)
			if d.Default != "" {
				v, err := argstream.DefaultConverter[T]().Convert(d.Default)
				if err != nil {
					return nil, nil, fmt.Errorf("invalid default for %s: %w", d.varName(), err)
				}
				*dst = v
			}
			b := argstream.Parameter(d.shortRune(), d.Long, dst, d.Description).Mandatory(d.mandatory())
			return b, func() any { return *dst }, nil
		},
		values: func(d BindingDecl) (argstream.Binding, func() any) {
			dst := []T{}
			count := d.Count
			if count == 0 {
				count = argstream.Unbounded
			}
			b := argstream.Values(&dst, d.Description, count)
			return b, func() any { return dst }
		},
	}
}

var binders = map[string]binder{
	"string":   binderFor[string](),
	"int":      binderFor[int](),
	"int64":    binderFor[int64](),
	"uint":     binderFor[uint](),
	"float":    binderFor[float64](),
	"bool":     binderFor[bool](),
	"duration": binderFor[time.Duration](),
	"url":      binderFor[*url.URL](),
	"port":     binderFor[argstream.Port](),
	"list":     binderFor[[]string](),
}

// bindings turns the declaration into argstream bindings, in file order,
// and the slots to read once they are applied.
func (d *Declaration) bindings() ([]argstream.Binding, []slot, error) {
	var bs []argstream.Binding
	var slots []slot
	for _, bd := range d.Bindings {
		switch bd.Kind {
		case kindHelp:
			if bd.Short == "" && bd.Long == "" {
				bs = append(bs, argstream.HelpOption())
				continue
			}
			desc := bd.Description
			if desc == "" {
				desc = "Display this help"
			}
			bs = append(bs, argstream.HelpOptionNamed(bd.shortRune(), bd.Long, desc))
		case kindOption:
			v := new(bool)
			bs = append(bs, argstream.Option(bd.shortRune(), bd.Long, v, bd.Description))
			slots = append(slots, slot{name: bd.varName(), value: func() any { return *v }})
		case kindValues:
			b, get := binders[bd.typeName()].values(bd)
			bs = append(bs, b)
			slots = append(slots, slot{name: bd.varName(), value: get})
		default:
			b, get, err := binders[bd.typeName()].parameter(bd)
			if err != nil {
				return nil, nil, err
			}
			bs = append(bs, b)
			slots = append(slots, slot{name: bd.varName(), value: get})
		}
	}
	return bs, slots, nil
}

// render formats a slot value as its items; list reports whether the value
// is a list even when it holds a single item.
func render(v any) (items []string, list bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		items = []string{}
		for i := range rv.Len() {
			items = append(items, renderScalar(rv.Index(i).Interface()))
		}
		return items, true
	}
	return []string{renderScalar(v)}, false
}

func renderScalar(v any) string {
	switch v := v.(type) {
	case *url.URL:
		if v == nil {
			return ""
		}
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
