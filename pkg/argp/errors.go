// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argp

import (
	"fmt"
	"strings"
)

// UnknownOptionError is returned when an option is not in the table.
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unrecognized option '%s'", e.Option)
}

// AmbiguousOptionError is returned when a long option prefix matches more
// than one option.
type AmbiguousOptionError struct {
	Option     string
	Candidates []string
}

func (e *AmbiguousOptionError) Error() string {
	return fmt.Sprintf("option '%s' is ambiguous; possibilities: %s", e.Option, strings.Join(e.Candidates, " "))
}

// MissingArgError is returned when an option requiring a value has none.
type MissingArgError struct {
	Option string
}

func (e *MissingArgError) Error() string {
	return fmt.Sprintf("option '%s' requires an argument", e.Option)
}

// UnexpectedValueError is returned when a value is attached to an option
// that takes none.
type UnexpectedValueError struct {
	Option string
	Value  string
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("option '%s' doesn't allow an argument", e.Option)
}

// ExtraArgError is returned when the parser rejects a positional argument.
type ExtraArgError struct {
	Arg string
}

func (e *ExtraArgError) Error() string {
	return "too many arguments"
}

// ExitError is returned by Parse when an Exit hook returned instead of
// terminating the process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
