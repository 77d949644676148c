// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argpsum adds up numbers given as arguments, as option values and
// in input files.
//
// Defaults for any long option can be kept in a TOML or YAML file named by
// $ARGPSUM_DEFAULTS; arguments on the command line override them.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yeetrun/argp/pkg/argp"
	"github.com/yeetrun/argp/pkg/optfile"
	"github.com/yeetrun/argp/pkg/optparse"
)

const version = "argpsum 0.1.0"

const doc = "Add up NUMBERs, --add values and numbers read from --input files.\v" +
	"Input files hold one number per line; blank lines and lines starting with " +
	"'#' are skipped. zstd-compressed files are read transparently."

const keyMinCount = 0x100

var modes = []string{"sum", "mean", "min", "max"}

type config struct {
	scale     float64
	precision int
	minCount  uint
	mode      string
	label     string
	verbose   bool
	add       []int64
	inputs    []optparse.Input
}

func newParser(c *config) *optparse.Parser {
	p := optparse.New(optparse.Unlimited)
	p.Version = version

	p.AddDoc(argp.Option{Doc: "Input:"})
	optparse.AddList(p, argp.Option{Name: "add", Key: 'a', Arg: "N,...", Doc: "Also add the whole numbers N"}, &c.add)
	optparse.AddList(p, argp.Option{Name: "input", Key: 'i', Arg: "FILE,...", Doc: "Read numbers from FILE"}, &c.inputs)
	optparse.Add(p, argp.Option{Name: "min-count", Key: keyMinCount, Arg: "N", Doc: "Fail unless at least N numbers were given"}, &c.minCount)

	p.AddDoc(argp.Option{Doc: "Output:"})
	p.AddCheck(argp.Option{Name: "mode", Key: 'm', Arg: "MODE", Doc: "One of sum, mean, min or max (default sum)"}, func(s string) bool {
		if slices.Contains(modes, s) {
			c.mode = s
			return true
		}
		return false
	})
	optparse.Add(p, argp.Option{Name: "scale", Key: 's', Arg: "FACTOR", Doc: "Multiply the result by FACTOR"}, &c.scale)
	optparse.Add(p, argp.Option{Name: "precision", Key: 'p', Arg: "DIGITS", Doc: "Digits after the decimal point (default as needed)"}, &c.precision)
	optparse.Add(p, argp.Option{Name: "label", Key: 'l', Arg: "TEXT", Doc: "Print TEXT before the result"}, &c.label)
	optparse.Add(p, argp.Option{Name: "verbose", Key: 'v', Doc: "Describe what was read"}, &c.verbose)
	p.AddDoc(argp.Option{Name: "debug", Flags: argp.OptionAlias | argp.OptionHidden})
	return p
}

func main() {
	argv := os.Args
	if path := os.Getenv("ARGPSUM_DEFAULTS"); path != "" {
		defaults, err := optfile.Load(path)
		if err != nil {
			log.Fatalf("Failed to load defaults: %v", err)
		}
		argv = optfile.Prepend(argv, defaults)
	}
	os.Exit(run(argv, os.Stdout, os.Stderr, nil))
}

// run parses argv and prints the result, returning the exit status. exit is
// forwarded to the parser; nil selects os.Exit.
func run(argv []string, stdout, stderr io.Writer, exit func(int)) int {
	c := &config{scale: 1, precision: -1, mode: "sum"}
	p := newParser(c)
	p.Stdout = stdout
	p.Stderr = stderr
	p.Exit = exit
	defer func() {
		for _, in := range c.inputs {
			if in.IsOpen() {
				in.Close()
			}
		}
	}()
	if !p.Parse(argv, "[NUMBER...]", doc) {
		return 2
	}

	logf := func(format string, args ...any) {
		if c.verbose {
			fmt.Fprintf(stderr, "argpsum: "+format+"\n", args...)
		}
	}

	var nums []float64
	for _, a := range p.Arguments() {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fmt.Fprintf(stderr, "argpsum: invalid number %q\n", a)
			return 1
		}
		nums = append(nums, f)
	}
	for _, n := range c.add {
		nums = append(nums, float64(n))
	}
	for _, in := range c.inputs {
		got, err := readNumbers(in)
		if err != nil {
			fmt.Fprintf(stderr, "argpsum: %v\n", err)
			return 1
		}
		logf("read %d numbers from %s (compressed=%v)", len(got), in.Name, in.Compressed)
		nums = append(nums, got...)
	}
	if uint(len(nums)) < c.minCount {
		fmt.Fprintf(stderr, "argpsum: got %d numbers, want at least %d\n", len(nums), c.minCount)
		return 1
	}
	logf("%s of %d numbers", c.mode, len(nums))

	result := reduce(c.mode, nums) * c.scale
	out := strconv.FormatFloat(result, 'f', c.precision, 64)
	if c.label != "" {
		out = c.label + " " + out
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func readNumbers(in optparse.Input) ([]float64, error) {
	var nums []float64
	s := bufio.NewScanner(in)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid number %q", in.Name, line, text)
		}
		nums = append(nums, f)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", in.Name, err)
	}
	return nums, nil
}

func reduce(mode string, nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	switch mode {
	case "min":
		return slices.Min(nums)
	case "max":
		return slices.Max(nums)
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	if mode == "mean" {
		return sum / float64(len(nums))
	}
	return sum
}
