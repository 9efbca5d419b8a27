// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"

	"mvdan.cc/sh/v3/shell"
)

// ParseCommand splits a configured generator command line into words using
// POSIX shell rules, expanding $VARS from env (the process environment when
// env is nil). "doxygen" yields ["doxygen"]; `"/opt/my tools/doxygen" -q`
// yields ["/opt/my tools/doxygen", "-q"].
func ParseCommand(line string, env func(string) string) ([]string, error) {
	fields, err := shell.Fields(line, env)
	if err != nil {
		return nil, fmt.Errorf("parse generator command %q: %w", line, err)
	}
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return fields, nil
}
