// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"errors"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConverterScalars(t *testing.T) {
	t.Run("string keeps spaces", func(t *testing.T) {
		got, err := DefaultConverter[string]().Convert(" a b ")
		if err != nil || got != " a b " {
			t.Fatalf("Convert = %q, %v; want %q, nil", got, err, " a b ")
		}
	})
	t.Run("int8 range", func(t *testing.T) {
		_, err := DefaultConverter[int8]().Convert("300")
		if !errors.Is(err, strconv.ErrRange) {
			t.Fatalf("err = %v, want strconv.ErrRange", err)
		}
	})
	t.Run("uint", func(t *testing.T) {
		got, err := DefaultConverter[uint32]().Convert("42")
		if err != nil || got != 42 {
			t.Fatalf("Convert = %d, %v; want 42, nil", got, err)
		}
		if _, err := DefaultConverter[uint]().Convert("-1"); err == nil {
			t.Fatal("Convert(-1) for uint: expected error")
		}
	})
	t.Run("bool", func(t *testing.T) {
		got, err := DefaultConverter[bool]().Convert("1")
		if err != nil || !got {
			t.Fatalf("Convert = %v, %v; want true, nil", got, err)
		}
		_, err = DefaultConverter[bool]().Convert("maybe")
		if got, want := err.Error(), `invalid bool value "maybe"`; got != want {
			t.Fatalf("err = %q, want %q", got, want)
		}
	})
	t.Run("float", func(t *testing.T) {
		_, err := DefaultConverter[float64]().Convert("1.2.3")
		if got, want := err.Error(), `invalid float value "1.2.3": invalid syntax`; got != want {
			t.Fatalf("err = %q, want %q", got, want)
		}
	})
}

func TestDefaultConverterDuration(t *testing.T) {
	got, err := DefaultConverter[time.Duration]().Convert("1m30s")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got != 90*time.Second {
		t.Fatalf("Convert = %v, want %v", got, 90*time.Second)
	}
	if _, err := DefaultConverter[time.Duration]().Convert("90"); err == nil || err.Error() != `invalid duration "90"` {
		t.Fatalf("err = %v, want invalid duration", err)
	}
}

func TestDefaultConverterPort(t *testing.T) {
	tests := []struct {
		in      string
		want    Port
		wantErr string
	}{
		{in: "8080", want: 8080},
		{in: "0", want: 0},
		{in: "65535", want: 65535},
		{in: "65536", wantErr: `port must be between 0 and 65535, got "65536"`},
		{in: "http", wantErr: `invalid port value "http"`},
	}
	conv := DefaultConverter[Port]()
	for _, tt := range tests {
		got, err := conv.Convert(tt.in)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Convert(%q) err = %v, want %q", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Convert(%q) = %d, %v; want %d, nil", tt.in, got, err, tt.want)
		}
	}
}

func TestDefaultConverterURL(t *testing.T) {
	u, err := DefaultConverter[*url.URL]().Convert("https://example.com/x?y=1")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if u.Host != "example.com" || u.Path != "/x" {
		t.Errorf("URL = %v, want host example.com and path /x", u)
	}

	v, err := DefaultConverter[url.URL]().Convert("ftp://host")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if v.Scheme != "ftp" {
		t.Errorf("Scheme = %q, want %q", v.Scheme, "ftp")
	}

	if _, err := DefaultConverter[*url.URL]().Convert("://bad"); err == nil {
		t.Error("Convert(://bad): expected error")
	}
}

func TestDefaultConverterStringSlice(t *testing.T) {
	got, err := DefaultConverter[[]string]().Convert("a,,b,c")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("Convert mismatch (-want +got):\n%s", diff)
	}
	if _, err := DefaultConverter[[]int]().Convert("1,2"); err == nil {
		t.Error("Convert for []int: expected error")
	}
}

func TestDefaultConverterPointer(t *testing.T) {
	got, err := DefaultConverter[*int]().Convert("12")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got == nil || *got != 12 {
		t.Fatalf("Convert = %v, want pointer to 12", got)
	}
}

func TestDefaultConverterTextUnmarshaler(t *testing.T) {
	got, err := DefaultConverter[netip.Addr]().Convert("192.0.2.1")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if want := netip.MustParseAddr("192.0.2.1"); got != want {
		t.Fatalf("Convert = %v, want %v", got, want)
	}
	_, err = DefaultConverter[netip.Addr]().Convert("not-an-ip")
	if err == nil || !strings.HasPrefix(err.Error(), `invalid netip.Addr value "not-an-ip"`) {
		t.Fatalf("err = %v, want invalid netip.Addr value", err)
	}
}

func TestDefaultConverterUnsupported(t *testing.T) {
	type pair struct{ a, b int }
	_, err := DefaultConverter[pair]().Convert("1")
	if err == nil || !strings.Contains(err.Error(), "unsupported struct type") {
		t.Fatalf("err = %v, want unsupported struct type", err)
	}
	_, err = DefaultConverter[map[string]int]().Convert("1")
	if err == nil || !strings.Contains(err.Error(), "unsupported type") {
		t.Fatalf("err = %v, want unsupported type", err)
	}
}

func TestParameterDefaultInHelp(t *testing.T) {
	d := 5 * time.Second
	var u *url.URL
	tests := []struct {
		b    interface{ helpDescription() string }
		want string
	}{
		{Parameter('t', "timeout", &d, "wait").Optional(), "wait (default=5s)"},
		{Parameter('u', "url", &u, "target").Optional(), "target (default=none)"},
		{Parameter('t', "timeout", &d, "wait"), "wait (mandatory)"},
	}
	for _, tt := range tests {
		if got := tt.b.helpDescription(); got != tt.want {
			t.Errorf("helpDescription = %q, want %q", got, tt.want)
		}
	}
}
