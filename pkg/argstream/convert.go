// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Port is a uint16 type for IP ports. Parsing reports a friendly error when
// the text is not a number or falls outside 0-65535.
type Port uint16

// Converter turns the text of a single argument into a value of type T.
type Converter[T any] interface {
	Convert(text string) (T, error)
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc[T any] func(text string) (T, error)

func (f ConverterFunc[T]) Convert(text string) (T, error) {
	return f(text)
}

// DefaultConverter returns the built-in converter for T.
//
// Supported types are string (passed through untouched, spaces included),
// bool, every int and uint width, float32, float64, time.Duration, url.URL,
// Port, []string (comma separated) and pointers to any of those. Types whose
// pointer implements encoding.TextUnmarshaler are decoded with UnmarshalText.
// Any other type yields a converter that always fails; supply your own with
// WithConverter.
func DefaultConverter[T any]() Converter[T] {
	return ConverterFunc[T](func(text string) (T, error) {
		var v T
		if err := setValue(reflect.ValueOf(&v).Elem(), text); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	})
}

var (
	portType     = reflect.TypeOf(Port(0))
	durationType = reflect.TypeOf(time.Duration(0))
	urlType      = reflect.TypeOf(url.URL{})
	urlPtrType   = reflect.TypeOf((*url.URL)(nil))
	textUnmType  = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func parsePortValue(value string) (Port, error) {
	portVal, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, fmt.Errorf("port must be between 0 and 65535, got %q", value)
		}
		return 0, fmt.Errorf("invalid port value %q", value)
	}
	return Port(portVal), nil
}

// setValue stores the converted form of value into v.
func setValue(v reflect.Value, value string) error {
	if v.Type() == portType {
		port, err := parsePortValue(value)
		if err != nil {
			return err
		}
		v.SetUint(uint64(port))
		return nil
	}

	// url.URL has a pointer UnmarshalBinary but no UnmarshalText, so it
	// never takes this path; named types built on strings or numbers can.
	if v.Kind() != reflect.Ptr && v.CanAddr() && v.Addr().Type().Implements(textUnmType) {
		u := v.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid %s value %q: %w", v.Type(), value, err)
		}
		return nil
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", v.Type())
		}
		parts := strings.Split(value, ",")
		vals := make([]string, 0, len(parts))
		for _, part := range parts {
			if part == "" {
				continue
			}
			vals = append(vals, part)
		}
		slice := reflect.MakeSlice(v.Type(), len(vals), len(vals))
		for i, s := range vals {
			slice.Index(i).SetString(s)
		}
		v.Set(slice)
		return nil

	case reflect.String:
		v.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		v.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration %q", value)
			}
			v.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(value, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q: %w", value, numErrCause(err))
		}
		v.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q: %w", value, numErrCause(err))
		}
		v.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q: %w", value, numErrCause(err))
		}
		v.SetFloat(f)
		return nil

	case reflect.Ptr:
		if v.Type() == urlPtrType {
			u, err := url.Parse(value)
			if err != nil {
				return fmt.Errorf("invalid URL %q", value)
			}
			v.Set(reflect.ValueOf(u))
			return nil
		}
		elem := reflect.New(v.Type().Elem())
		if err := setValue(elem.Elem(), value); err != nil {
			return err
		}
		v.Set(elem)
		return nil

	case reflect.Struct:
		if v.Type() == urlType {
			u, err := url.Parse(value)
			if err != nil {
				return fmt.Errorf("invalid URL %q", value)
			}
			v.Set(reflect.ValueOf(*u))
			return nil
		}
		return fmt.Errorf("unsupported struct type %s", v.Type())

	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
}

// numErrCause strips the strconv prefix so messages read "invalid int value
// "x": invalid syntax" instead of repeating the input twice.
func numErrCause(err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		return numErr.Err
	}
	return err
}
