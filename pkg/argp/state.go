// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argp

import (
	"fmt"
	"io"
)

// State is the parse state visible to a ParserFunc.
type State struct {
	Root *Argp
	// Argv is the full argument vector; Next indexes the next element the
	// engine will consume.
	Argv []string
	Next int
	// ArgNum counts the positional arguments delivered so far.
	ArgNum int
	Flags  Flags
	// Input is the value passed to Parse.
	Input any
	// Name is the program name used in diagnostics.
	Name string

	Out io.Writer
	Err io.Writer

	exit   func(int)
	exited *ExitError
}

// Error reports a usage error: the message, then a hint pointing at --help,
// then exits with ErrExitStatus. Nothing happens with NoErrs; the exit is
// skipped with NoExit.
func (s *State) Error(format string, args ...any) {
	if s.Flags&NoErrs != 0 || s.Err == nil {
		return
	}
	fmt.Fprintf(s.Err, "%s %s\n", diagPrefix(s.Err, s.Name), fmt.Sprintf(format, args...))
	s.Help(s.Err, HelpStdErr)
}

// Failure reports a message, followed by err when non-nil, and exits with
// status when it is non-zero. Nothing happens with NoErrs; the exit is
// skipped with NoExit.
func (s *State) Failure(status int, err error, format string, args ...any) {
	if s.Flags&NoErrs != 0 || s.Err == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintf(s.Err, "%s %s\n", diagPrefix(s.Err, s.Name), msg)
	if status != 0 && s.Flags&NoExit == 0 {
		s.exitWith(status)
	}
}

// Help writes help for the table being parsed to w and honours the exit
// bits in flags unless NoExit is set.
func (s *State) Help(w io.Writer, flags HelpFlags) {
	if s.Flags&NoErrs != 0 || w == nil {
		return
	}
	if s.Flags&LongOnly != 0 {
		flags |= HelpLongOnly
	}
	if s.Flags&NoHelp != 0 {
		flags &^= HelpSeeAlso
		flags |= helpNoBuiltins
	}
	Help(s.Root, w, flags, s.Name)
	if s.Flags&NoExit != 0 {
		return
	}
	switch {
	case flags&HelpExitErr != 0:
		s.exitWith(ErrExitStatus)
	case flags&HelpExitOk != 0:
		s.exitWith(0)
	}
}

func (s *State) exitWith(code int) {
	if s.exited != nil {
		return
	}
	s.exited = &ExitError{Code: code}
	s.exit(code)
}
