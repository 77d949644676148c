// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"

	"github.com/yeetrun/argp/pkg/argp"
	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// reservedKeys are delivered by the engine for lifecycle and positional
// events and can never name an option.
var reservedKeys = set.Of(
	argp.KeyArg,
	argp.KeyEnd,
	argp.KeyNoArgs,
	argp.KeyInit,
	argp.KeySuccess,
	argp.KeyError,
	argp.KeyFini,
)

// Add registers opt and stores its converted value in dst. The conversion
// is chosen from T: numbers are parsed, strings copied, bools set to true,
// *os.File, NamedFile and Input opened from the path.
//
// dst must stay valid for as long as p is used.
func Add[T Value](p *Parser, opt argp.Option, dst *T) {
	p.AddConverter(opt, convertTo(dst))
}

// AddList registers opt and appends every comma-separated element of its
// value to dst, converted with the rule for T.
func AddList[T Value](p *Parser, opt argp.Option, dst *[]T) {
	p.AddConverter(opt, convertList(dst))
}

// AddConverter registers opt with a caller-built converter. Registering a
// key again replaces both the option and its converter.
func (p *Parser) AddConverter(opt argp.Option, c Converter) {
	if reservedKeys.Contains(opt.Key) {
		panic(fmt.Sprintf("optparse: option %v uses reserved key %d", opt, opt.Key))
	}
	if c == nil {
		panic(fmt.Sprintf("optparse: nil converter for option %v", opt))
	}
	p.setOption(opt)
	mak.Set(&p.convert, opt.Key, c)
}

// AddFunc registers opt with fn; a non-nil error from fn fails the parse
// and its text is appended to the diagnostic.
func (p *Parser) AddFunc(opt argp.Option, fn func(arg string) error) {
	p.AddConverter(opt, func(arg *string) error {
		if err := fn(text(arg)); err != nil {
			return &ConversionError{Value: text(arg), Err: err}
		}
		return nil
	})
}

// AddCheck registers opt with a predicate; false fails the parse.
func (p *Parser) AddCheck(opt argp.Option, ok func(arg string) bool) {
	p.AddFunc(opt, func(arg string) error {
		if !ok(arg) {
			return ErrNotUsable
		}
		return nil
	})
}

// AddDoc adds a table entry without a converter: a group header, an
// OptionDoc line or an OptionAlias for the preceding option.
func (p *Parser) AddDoc(opt argp.Option) {
	p.options = append(p.options, opt)
}

func (p *Parser) setOption(opt argp.Option) {
	for i, o := range p.options {
		if o.Key == opt.Key && o.Flags&(argp.OptionAlias|argp.OptionDoc) == 0 {
			p.options[i] = opt
			return
		}
	}
	p.options = append(p.options, opt)
}

func (p *Parser) optionName(key int) string {
	for _, o := range p.options {
		if o.Key == key && o.Flags&argp.OptionAlias == 0 {
			return o.String()
		}
	}
	return argp.Option{Key: key}.String()
}
