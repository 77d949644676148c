// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argp

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"tailscale.com/util/mak"
)

// entry is an option as the tokenizer sees it, with aliases resolved.
type entry struct {
	name     string
	key      int
	arg      string
	optional bool
}

func (e *entry) takesArg() bool {
	return e.arg != ""
}

type parser struct {
	argp   *Argp
	state  *State
	longs  []*entry
	shorts map[rune]*entry
	quoted bool
}

// Parse runs the option table in a over args and delivers events to
// a.Parser. Unless ParseArgv0 is set, args[0] is the program name and is not
// parsed. Events arrive as one KeyInit, then option and KeyArg events in
// argv order, KeyNoArgs when no positional argument was seen, KeyEnd,
// KeySuccess and finally KeyFini. When any step fails the engine sends
// KeyError and KeyFini and returns the failure.
func Parse(a *Argp, args []string, flags Flags, input any) error {
	p := newParser(a, args, flags, input)
	return p.run()
}

func newParser(a *Argp, args []string, flags Flags, input any) *parser {
	s := &State{
		Root:  a,
		Argv:  args,
		Flags: flags,
		Input: input,
		Out:   a.Out,
		Err:   a.Err,
		exit:  a.Exit,
	}
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Err == nil {
		s.Err = os.Stderr
	}
	if s.exit == nil {
		s.exit = os.Exit
	}
	switch {
	case flags&ParseArgv0 == 0 && len(args) > 0:
		s.Name = filepath.Base(args[0])
		s.Next = 1
	case len(os.Args) > 0:
		s.Name = filepath.Base(os.Args[0])
	}
	p := &parser{argp: a, state: s}
	p.compile()
	return p
}

func (p *parser) compile() {
	var last *entry
	add := func(e *entry) {
		if isShort(e.key) {
			mak.Set(&p.shorts, rune(e.key), e)
		}
		if e.name != "" {
			p.longs = append(p.longs, e)
		}
	}
	for _, o := range p.argp.Options {
		if o.isDoc() {
			continue
		}
		if o.Flags&OptionAlias != 0 && last != nil {
			add(&entry{name: o.Name, key: last.key, arg: last.arg, optional: last.optional})
			continue
		}
		last = &entry{name: o.Name, key: o.Key, arg: o.Arg, optional: o.Flags&OptionArgOptional != 0}
		add(last)
	}
	if p.state.Flags&NoHelp != 0 {
		return
	}
	for _, b := range builtinOptions(p.argp) {
		if _, taken := p.shorts[rune(b.Key)]; taken && isShort(b.Key) {
			b.Key = -b.Key
		}
		add(&entry{name: b.Name, key: b.Key, arg: b.Arg})
	}
}

func (p *parser) run() error {
	s := p.state
	if err := p.call(KeyInit, nil); err != nil {
		return p.fail(err)
	}
	for s.Next < len(s.Argv) {
		arg := s.Argv[s.Next]
		s.Next++
		var err error
		switch {
		case p.quoted || arg == "-" || !strings.HasPrefix(arg, "-"):
			err = p.positional(arg)
		case arg == "--":
			p.quoted = true
		case strings.HasPrefix(arg, "--"):
			err = p.long(arg[2:], "--")
		default:
			err = p.short(arg[1:])
		}
		if err != nil {
			return p.fail(err)
		}
	}
	if s.ArgNum == 0 {
		if err := p.call(KeyNoArgs, nil); err != nil {
			return p.fail(err)
		}
	}
	if err := p.call(KeyEnd, nil); err != nil {
		return p.fail(err)
	}
	if err := p.call(KeySuccess, nil); err != nil {
		return p.fail(err)
	}
	if err := p.call(KeyFini, nil); err != nil {
		return err
	}
	return nil
}

// call invokes the user callback. ErrUnknown is swallowed for every key
// except KeyArg, where it means the argument was rejected.
func (p *parser) call(key int, arg *string) error {
	var err error
	if p.argp.Parser != nil {
		err = p.argp.Parser(key, arg, p.state)
	} else if key == KeyArg {
		err = ErrUnknown
	}
	if p.state.exited != nil {
		return p.state.exited
	}
	if errors.Is(err, ErrUnknown) && key != KeyArg {
		return nil
	}
	return err
}

func (p *parser) fail(err error) error {
	if p.state.exited == nil {
		p.call(KeyError, nil)
	}
	if p.state.exited == nil {
		p.call(KeyFini, nil)
	}
	if p.state.exited != nil {
		return p.state.exited
	}
	return err
}

func (p *parser) positional(arg string) error {
	err := p.call(KeyArg, &arg)
	if errors.Is(err, ErrUnknown) {
		p.state.Error("too many arguments")
		if p.state.exited != nil {
			return p.state.exited
		}
		return &ExtraArgError{Arg: arg}
	}
	if err != nil {
		return err
	}
	p.state.ArgNum++
	return nil
}

// long handles "name", "name=value" after the leading dashes.
func (p *parser) long(body, dashes string) error {
	name, value, hasValue := strings.Cut(body, "=")
	e, err := p.lookupLong(name, dashes)
	if err != nil {
		return err
	}
	display := dashes + e.name
	var val *string
	switch {
	case hasValue && !e.takesArg():
		p.state.Error("option '%s' doesn't allow an argument", display)
		return p.abort(&UnexpectedValueError{Option: display, Value: value})
	case hasValue:
		val = &value
	case e.takesArg() && !e.optional:
		if p.state.Next >= len(p.state.Argv) {
			p.state.Error("option '%s' requires an argument", display)
			return p.abort(&MissingArgError{Option: display})
		}
		next := p.state.Argv[p.state.Next]
		p.state.Next++
		val = &next
	}
	return p.option(e, val)
}

func (p *parser) lookupLong(name, dashes string) (*entry, error) {
	var matches []*entry
	for _, e := range p.longs {
		if e.name == name {
			return e, nil
		}
		if strings.HasPrefix(e.name, name) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		p.state.Error("unrecognized option '%s%s'", dashes, name)
		return nil, p.abort(&UnknownOptionError{Option: dashes + name})
	}
	first := matches[0]
	for _, m := range matches[1:] {
		if m.key != first.key || m.arg != first.arg {
			var cands []string
			for _, c := range matches {
				cands = append(cands, "'"+dashes+c.name+"'")
			}
			p.state.Error("option '%s%s' is ambiguous; possibilities: %s", dashes, name, strings.Join(cands, " "))
			return nil, p.abort(&AmbiguousOptionError{Option: dashes + name, Candidates: cands})
		}
	}
	return first, nil
}

// short handles a cluster of short options after the leading dash.
func (p *parser) short(body string) error {
	if p.state.Flags&LongOnly != 0 && p.preferLong(body) {
		return p.long(body, "-")
	}
	for i := 0; i < len(body); {
		c, size := utf8.DecodeRuneInString(body[i:])
		i += size
		e := p.shorts[c]
		if e == nil {
			p.state.Error("invalid option -- '%c'", c)
			return p.abort(&UnknownOptionError{Option: "-" + string(c)})
		}
		if !e.takesArg() {
			if err := p.option(e, nil); err != nil {
				return err
			}
			continue
		}
		rest := body[i:]
		var val *string
		switch {
		case rest != "":
			val = &rest
		case e.optional:
		case p.state.Next < len(p.state.Argv):
			next := p.state.Argv[p.state.Next]
			p.state.Next++
			val = &next
		default:
			p.state.Error("option requires an argument -- '%c'", c)
			return p.abort(&MissingArgError{Option: "-" + string(c)})
		}
		return p.option(e, val)
	}
	return nil
}

// preferLong reports whether a LongOnly argument is read as a long option.
// A lone character that is a short option stays short.
func (p *parser) preferLong(body string) bool {
	if c, size := utf8.DecodeRuneInString(body); size == len(body) && p.shorts[c] != nil {
		return false
	}
	return p.hasLong(body)
}

func (p *parser) hasLong(body string) bool {
	name, _, _ := strings.Cut(body, "=")
	if name == "" {
		return false
	}
	for _, e := range p.longs {
		if strings.HasPrefix(e.name, name) {
			return true
		}
	}
	return false
}

func (p *parser) option(e *entry, val *string) error {
	switch e.key {
	case keyHelp, -keyHelp:
		if p.isBuiltin(e) {
			p.state.Help(p.state.Out, HelpStdHelp)
			return p.abortIfExited()
		}
	case keyUsage:
		p.state.Help(p.state.Out, HelpUsage|HelpExitOk)
		return p.abortIfExited()
	case keyVersion, -keyVersion:
		if p.isBuiltin(e) {
			if p.state.Out != nil {
				p.state.Out.Write([]byte(p.argp.Version + "\n"))
			}
			if p.state.Flags&NoExit == 0 {
				p.state.exitWith(0)
			}
			return p.abortIfExited()
		}
	}
	return p.call(e.key, val)
}

func (p *parser) isBuiltin(e *entry) bool {
	for _, b := range builtinOptions(p.argp) {
		if b.Name == e.name {
			return true
		}
	}
	return false
}

// abort prefers an exit recorded by a diagnostic over err.
func (p *parser) abort(err error) error {
	if p.state.exited != nil {
		return p.state.exited
	}
	return err
}

func (p *parser) abortIfExited() error {
	if p.state.exited != nil {
		return p.state.exited
	}
	return nil
}

func builtinOptions(a *Argp) []Option {
	opts := []Option{
		{Name: "help", Key: keyHelp, Doc: "Give this help list", Group: -1},
		{Name: "usage", Key: keyUsage, Doc: "Give a short usage message", Group: -1},
	}
	if a.Version != "" {
		opts = append(opts, Option{Name: "version", Key: keyVersion, Doc: "Print program version", Group: -1})
	}
	return opts
}
