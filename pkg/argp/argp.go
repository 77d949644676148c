// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argp

import (
	"errors"
	"fmt"
	"io"
)

// Reserved keys passed to a ParserFunc for lifecycle and positional events.
// They never collide with option keys, which must be non-zero and below
// KeyEnd.
const (
	KeyArg     = 0
	KeyEnd     = 0x1000001
	KeyNoArgs  = 0x1000002
	KeyInit    = 0x1000003
	KeySuccess = 0x1000004
	KeyError   = 0x1000005
	KeyFini    = 0x1000007
)

// Internal keys for the built-in options.
const (
	keyHelp    = '?'
	keyUsage   = -3
	keyVersion = 'V'
)

// ErrExitStatus is the exit code used when the engine itself rejects the
// command line (unknown option, missing value, ...).
var ErrExitStatus = 64

// ErrUnknown is returned by a ParserFunc for keys it does not handle.
var ErrUnknown = errors.New("argp: unknown key")

// Flags control a single Parse call.
type Flags uint

const (
	// ParseArgv0 treats argv[0] as an ordinary argument instead of the
	// program name.
	ParseArgv0 Flags = 0x01
	// NoErrs suppresses every diagnostic and every exit.
	NoErrs Flags = 0x02
	// NoHelp disables the built-in --help, --usage and --version options.
	NoHelp Flags = 0x10
	// NoExit keeps diagnostics but never terminates the process.
	NoExit Flags = 0x20
	// LongOnly lets a single dash introduce long options.
	LongOnly Flags = 0x40

	Silent = NoExit | NoErrs | NoHelp
)

// OptionFlags modify how a single Option is parsed and displayed.
type OptionFlags uint

const (
	// OptionArgOptional makes the value optional; it is then only taken
	// when attached (-nVAL, --name=VAL).
	OptionArgOptional OptionFlags = 0x1
	// OptionHidden omits the option from help and usage output.
	OptionHidden OptionFlags = 0x2
	// OptionAlias makes the entry another name for the preceding option.
	OptionAlias OptionFlags = 0x4
	// OptionDoc marks a documentation-only entry.
	OptionDoc OptionFlags = 0x8
	// OptionNoUsage omits the option from the usage line only.
	OptionNoUsage OptionFlags = 0x10
)

// Option describes one recognized option. A Key in the printable ASCII range
// is also the short option letter. An empty Arg means the option takes no
// value. An entry with no Name and no Key is a group header whose Doc is
// printed in the help output.
type Option struct {
	Name  string
	Key   int
	Arg   string
	Flags OptionFlags
	Doc   string
	Group int
}

func (o Option) String() string {
	switch {
	case o.Name != "":
		return "--" + o.Name
	case isShort(o.Key):
		return "-" + string(rune(o.Key))
	default:
		return fmt.Sprintf("key %d", o.Key)
	}
}

func (o Option) isHeader() bool {
	return o.Name == "" && o.Key == 0
}

func (o Option) isDoc() bool {
	return o.Flags&OptionDoc != 0 || o.isHeader()
}

// ParserFunc receives every parse event. arg is nil when the event carries
// no text. Returning ErrUnknown defers to the engine's default handling; any
// other error aborts the parse.
type ParserFunc func(key int, arg *string, state *State) error

// Argp is the option table and callback handed to Parse.
type Argp struct {
	Options []Option
	Parser  ParserFunc
	// ArgsDoc describes the positional arguments in usage lines. Each
	// newline starts an alternative usage line.
	ArgsDoc string
	// Doc is printed around the option list; text before a '\v' comes
	// before it, text after comes after it.
	Doc string
	// Version enables -V/--version when non-empty.
	Version string

	// Out and Err default to os.Stdout and os.Stderr.
	Out io.Writer
	Err io.Writer
	// Exit defaults to os.Exit.
	Exit func(code int)
}

func isShort(key int) bool {
	return key > ' ' && key < 0x7f
}
