// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optparse binds command-line options to typed Go variables on top
// of the argp engine.
//
// Each option is registered once with a destination. The conversion is
// picked from the destination's type at registration, so parsing only runs
// the chosen converter:
//
//	var (
//	    count   int
//	    ratio   float64
//	    verbose bool
//	    tags    []string
//	    input   optparse.NamedFile
//	)
//
//	p := optparse.New(2) // exactly two positional arguments
//	optparse.Add(p, argp.Option{Name: "count", Key: 'n', Arg: "NUM", Doc: "How many"}, &count)
//	optparse.Add(p, argp.Option{Name: "ratio", Key: 'r', Arg: "R"}, &ratio)
//	optparse.Add(p, argp.Option{Name: "verbose", Key: 'v'}, &verbose)
//	optparse.AddList(p, argp.Option{Name: "tag", Key: 't', Arg: "T,..."}, &tags)
//	optparse.Add(p, argp.Option{Name: "input", Key: 'i', Arg: "FILE"}, &input)
//
//	if !p.Parse(os.Args, "SRC DST", "Copy things.") {
//	    os.Exit(1)
//	}
//	src, dst := p.Arguments()[0], p.Arguments()[1]
//
// # Supported Types
//
//   - integers of every size, in decimal, 0x hex or leading-0 octal
//   - float32, float64
//   - string, copied verbatim
//   - bool, set to true by the bare option
//   - *os.File and NamedFile, opened for reading
//   - Input, opened for reading with zstd content decompressed
//   - slices of any of the above via AddList, split on commas
//
// Named types over the basic kinds work too. AddFunc and AddCheck take a
// caller-supplied routine instead.
//
// # Failures
//
// A value that does not convert is reported as "prog: unable to interpret
// ..." and the engine exits with status 1, unless the NoExit or NoErrs flags
// are set, in which case Parse returns false. A wrong positional argument
// count is reported as "too few arguments given" or "too many arguments
// given" and Parse returns false without exiting. Err returns the structured
// cause.
package optparse
