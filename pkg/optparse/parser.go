// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/yeetrun/argp/pkg/argp"
)

// Unlimited disables positional argument count enforcement.
const Unlimited = -1

// Parser registers typed options and parses command lines with them.
//
// A Parser keeps a pointer to every destination registered with it and
// writes through those pointers during Parse, so it must not outlive them.
// A Parser is not safe for concurrent use and Parse is not reentrant.
type Parser struct {
	// HelpViaFlags lets the NoHelp flag also suppress the usage text
	// printed when Parse fails. Defaults to true.
	HelpViaFlags bool
	// Version enables the engine's -V/--version option.
	Version string

	// Stdout, Stderr and Exit are handed to the engine; nil selects
	// os.Stdout, os.Stderr and os.Exit.
	Stdout io.Writer
	Stderr io.Writer
	Exit   func(code int)

	options  []argp.Option
	convert  map[int]Converter
	expected int
	flags    argp.Flags

	args     []string
	arityErr *ArityError
	convErr  *ConversionError
	err      error
}

// New returns a Parser expecting exactly expectedArgs positional arguments,
// or any number with Unlimited.
func New(expectedArgs int) *Parser {
	return &Parser{
		HelpViaFlags: true,
		expected:     expectedArgs,
		args:         []string{},
	}
}

// AddFlags sets engine flags for subsequent Parse calls.
func (p *Parser) AddFlags(f argp.Flags) { p.flags |= f }

// RemoveFlags clears engine flags for subsequent Parse calls.
func (p *Parser) RemoveFlags(f argp.Flags) { p.flags &^= f }

// Flags returns the engine flags Parse will use.
func (p *Parser) Flags() argp.Flags { return p.flags }

// Options returns a copy of the registered option table.
func (p *Parser) Options() []argp.Option {
	return slices.Clone(p.options)
}

// Parse parses args, whose first element is the program name, converting
// option values into their destinations and collecting positional
// arguments. usage describes the positional arguments and doc is the help
// text around the option list.
//
// With NoErrs set Parse always reports success. Otherwise it fails when the
// engine stops on an error or when the positional argument count does not
// match; unless help is disabled a usage message is then written to the
// error stream. Values converted before a failure stay in their
// destinations.
func (p *Parser) Parse(args []string, usage, doc string) bool {
	a := p.table(usage, doc)
	engineErr := argp.Parse(a, args, p.flags, p)
	err := engineErr
	switch {
	case p.convErr != nil:
		err = p.convErr
	case err == nil && p.arityErr != nil:
		err = p.arityErr
	}
	p.err = err

	if p.flags&argp.NoErrs != 0 {
		return true
	}
	if err == nil {
		return true
	}
	var exit *argp.ExitError
	if !p.helpDisabled() && !errors.As(engineErr, &exit) {
		argp.Help(a, p.stderr(), argp.HelpUsage, programName(args))
	}
	return false
}

// Arguments returns the positional arguments of the most recent Parse,
// or an empty slice before the first.
func (p *Parser) Arguments() []string {
	return slices.Clone(p.args)
}

// Err returns why the most recent Parse failed, or nil. The error is a
// *ConversionError, an *ArityError or one of the argp engine errors.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) helpDisabled() bool {
	return p.HelpViaFlags && p.flags&argp.NoHelp != 0
}

func (p *Parser) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

func (p *Parser) table(usage, doc string) *argp.Argp {
	return &argp.Argp{
		Options: slices.Clone(p.options),
		Parser:  handleEvent,
		ArgsDoc: usage,
		Doc:     doc,
		Version: p.Version,
		Out:     p.Stdout,
		Err:     p.Stderr,
		Exit:    p.Exit,
	}
}

func programName(args []string) string {
	if len(args) > 0 {
		return filepath.Base(args[0])
	}
	return filepath.Base(os.Args[0])
}
