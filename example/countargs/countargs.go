// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program countargs takes a -n/--count option and exactly two arguments.
//
//	$ countargs -n 5 a b
//	count=5 args=[a b]
//	$ countargs a
//	countargs: too few arguments given
//	Usage: countargs [-?] [-n NUM] [--count=NUM] [--help] [--usage] FIRST SECOND
package main

import (
	"fmt"
	"os"

	"github.com/yeetrun/argp/pkg/argp"
	"github.com/yeetrun/argp/pkg/optparse"
)

func main() {
	var count int
	p := optparse.New(2)
	optparse.Add(p, argp.Option{Name: "count", Key: 'n', Arg: "NUM", Doc: "Number to report"}, &count)
	if !p.Parse(os.Args, "FIRST SECOND", "Report a count and two arguments.") {
		os.Exit(1)
	}
	fmt.Printf("count=%d args=%v\n", count, p.Arguments())
}
