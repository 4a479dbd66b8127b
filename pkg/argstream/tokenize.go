// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argstream

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// SplitFields splits a command-line string on runs of whitespace. Quotes
// are not interpreted: `-s "a b"` yields the three tokens -s, "a and b".
func SplitFields(line string) []string {
	return strings.Fields(line)
}

// SplitShell splits a command-line string the way a POSIX shell would,
// honouring single quotes, double quotes and backslash escapes.
func SplitShell(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	return words, nil
}
