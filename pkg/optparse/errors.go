// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ArityError and by custom converters.
var (
	ErrTooFewArgs  = errors.New("too few arguments given")
	ErrTooManyArgs = errors.New("too many arguments given")

	// ErrNotUsable is the cause recorded when a check function registered
	// with AddCheck rejects its argument.
	ErrNotUsable = errors.New("argument not usable")
)

type convKind uint8

const (
	convCustom convKind = iota
	convDecimal
	convInteger
	convFile
)

// ConversionError reports raw option text that could not be turned into
// the destination's type.
type ConversionError struct {
	Key    int    // option key
	Option string // option as written in diagnostics, e.g. "--count"
	Arg    string // raw option text
	Value  string // the offending piece; differs from Arg for lists
	Err    error  // underlying cause

	kind convKind
}

func (e *ConversionError) Error() string {
	switch e.kind {
	case convDecimal:
		return fmt.Sprintf("unable to interpret '%s' as a decimal, %v", e.Value, e.Err)
	case convInteger:
		return fmt.Sprintf("unable to interpret '%s' as a whole number, %v", e.Value, e.Err)
	case convFile:
		return fmt.Sprintf("unable to open '%s'", e.Value)
	}
	msg := fmt.Sprintf("argument '%s' not usable for '%s'", e.Value, e.Option)
	if e.Err != nil && !errors.Is(e.Err, ErrNotUsable) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ArityError reports a positional argument count that does not match the
// parser's expectation.
type ArityError struct {
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return e.Unwrap().Error()
}

func (e *ArityError) Unwrap() error {
	if e.Got < e.Expected {
		return ErrTooFewArgs
	}
	return ErrTooManyArgs
}
