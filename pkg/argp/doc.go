// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argp is an option-table driven command-line engine in the style of
// GNU argp. It splits argv into events and hands each one to a single
// callback, and it renders usage and help text from the same table.
//
// # Events
//
// For one call to Parse the callback sees:
//
//	KeyInit
//	<option key> / KeyArg   in argv order
//	KeyNoArgs               only when no positional argument was given
//	KeyEnd
//	KeySuccess or KeyError
//	KeyFini
//
// Returning ErrUnknown from the callback leaves an option event to the
// engine, which ignores it; for KeyArg it makes the argument an error.
//
// # Syntax
//
//   - Short options: -v, clustered -vx, values -nVALUE or -n VALUE
//   - Long options: --verbose, --count=5, --count 5, unambiguous prefixes
//   - "--" ends option processing; a lone "-" is a positional argument
//
// Unless NoHelp is set the engine answers -?/--help and --usage itself, and
// -V/--version when Argp.Version is set.
//
// # Diagnostics
//
// State.Error and State.Failure write "prog: message" to the error stream
// and may terminate the process through Argp.Exit. NoErrs silences them
// completely and NoExit keeps the messages but never exits.
package argp
