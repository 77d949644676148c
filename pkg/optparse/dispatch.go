// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"

	"github.com/yeetrun/argp/pkg/argp"
)

// ExitConversion is the process exit status requested from the engine when
// an option value fails to convert.
const ExitConversion = 1

// handleEvent is the single callback given to the engine. The engine passes
// the owning Parser back as state.Input.
func handleEvent(key int, arg *string, state *argp.State) error {
	p, ok := state.Input.(*Parser)
	if !ok {
		return argp.ErrUnknown
	}
	return p.dispatch(key, arg, state)
}

func (p *Parser) dispatch(key int, arg *string, state *argp.State) error {
	switch key {
	case argp.KeyInit:
		p.args = []string{}
		p.arityErr = nil
		p.convErr = nil
	case argp.KeyArg:
		p.args = append(p.args, text(arg))
	case argp.KeyEnd:
		p.checkArity(state)
	case argp.KeyNoArgs, argp.KeySuccess, argp.KeyError, argp.KeyFini:
	default:
		conv, ok := p.convert[key]
		if !ok {
			return argp.ErrUnknown
		}
		if err := conv(arg); err != nil {
			cerr := p.attribute(key, arg, err)
			p.convErr = cerr
			state.Failure(ExitConversion, nil, "%v", cerr)
			return cerr
		}
	}
	return nil
}

// checkArity runs once per parse, after every option and positional event.
// A mismatch is reported but does not stop the engine; Parse turns it into
// a false result.
func (p *Parser) checkArity(state *argp.State) {
	if p.expected < 0 || len(p.args) == p.expected {
		return
	}
	p.arityErr = &ArityError{Expected: p.expected, Got: len(p.args)}
	state.Failure(0, nil, "%v", p.arityErr)
}

// attribute ties a converter failure to the option and raw text that
// caused it.
func (p *Parser) attribute(key int, arg *string, err error) *ConversionError {
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		cerr = &ConversionError{Value: text(arg), Err: err}
	}
	cerr.Key = key
	cerr.Option = p.optionName(key)
	cerr.Arg = text(arg)
	return cerr
}
