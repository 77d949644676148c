// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type event struct {
	Key    int
	Arg    string
	HasArg bool
}

func ev(key int) event { return event{Key: key} }

func evArg(key int, arg string) event { return event{Key: key, Arg: arg, HasArg: true} }

func recorder(events *[]event) ParserFunc {
	return func(key int, arg *string, s *State) error {
		e := event{Key: key}
		if arg != nil {
			e.Arg, e.HasArg = *arg, true
		}
		*events = append(*events, e)
		return nil
	}
}

const keyColor = 300

func testOptions() []Option {
	return []Option{
		{Name: "count", Key: 'n', Arg: "NUM", Doc: "Number of items"},
		{Name: "verbose", Key: 'v', Doc: "Talk more"},
		{Name: "all", Key: 'a'},
		{Name: "level", Key: 'l', Arg: "N", Flags: OptionArgOptional},
		{Name: "color", Key: keyColor, Arg: "WHEN"},
		{Name: "colour", Flags: OptionAlias},
	}
}

func TestParse_Events(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []event
	}{
		{
			name: "options and positionals in argv order",
			args: []string{"prog", "-n", "5", "a", "--verbose", "b"},
			want: []event{ev(KeyInit), evArg('n', "5"), evArg(KeyArg, "a"), ev('v'), evArg(KeyArg, "b"), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "clustered short options with attached value",
			args: []string{"prog", "-van5"},
			want: []event{ev(KeyInit), ev('v'), ev('a'), evArg('n', "5"), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "long option with equals and unique prefix",
			args: []string{"prog", "--count=7", "--verb"},
			want: []event{ev(KeyInit), evArg('n', "7"), ev('v'), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "long option takes next argument even with a dash",
			args: []string{"prog", "--count", "-3"},
			want: []event{ev(KeyInit), evArg('n', "-3"), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "double dash ends options and lone dash is positional",
			args: []string{"prog", "-", "--", "-v", "--count"},
			want: []event{ev(KeyInit), evArg(KeyArg, "-"), evArg(KeyArg, "-v"), evArg(KeyArg, "--count"), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "optional argument is not taken from the next element",
			args: []string{"prog", "-l", "x", "-l2", "--level=3", "--level"},
			want: []event{ev(KeyInit), ev('l'), evArg(KeyArg, "x"), evArg('l', "2"), evArg('l', "3"), ev('l'), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "alias shares the key of the preceding option",
			args: []string{"prog", "--colour=auto", "--col", "never"},
			want: []event{ev(KeyInit), evArg(keyColor, "auto"), evArg(keyColor, "never"), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "empty command line",
			args: []string{"prog"},
			want: []event{ev(KeyInit), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []event
			a := &Argp{Options: testOptions(), Parser: recorder(&got), Err: &bytes.Buffer{}}
			if err := Parse(a, tt.args, NoExit, nil); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr any
		wantMsg string
	}{
		{
			name:    "unknown long option",
			args:    []string{"prog", "--bogus"},
			wantErr: &UnknownOptionError{},
			wantMsg: "prog: unrecognized option '--bogus'",
		},
		{
			name:    "unknown short option",
			args:    []string{"prog", "-x"},
			wantErr: &UnknownOptionError{},
			wantMsg: "prog: invalid option -- 'x'",
		},
		{
			name:    "missing long argument",
			args:    []string{"prog", "--count"},
			wantErr: &MissingArgError{},
			wantMsg: "prog: option '--count' requires an argument",
		},
		{
			name:    "missing short argument",
			args:    []string{"prog", "-vn"},
			wantErr: &MissingArgError{},
			wantMsg: "prog: option requires an argument -- 'n'",
		},
		{
			name:    "value for a flag",
			args:    []string{"prog", "--verbose=1"},
			wantErr: &UnexpectedValueError{},
			wantMsg: "prog: option '--verbose' doesn't allow an argument",
		},
		{
			name:    "ambiguous prefix",
			args:    []string{"prog", "--c=1"},
			wantErr: &AmbiguousOptionError{},
			wantMsg: "prog: option '--c' is ambiguous; possibilities: '--count' '--color' '--colour'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []event
			var stderr bytes.Buffer
			a := &Argp{Options: testOptions(), Parser: recorder(&got), Err: &stderr}
			err := Parse(a, tt.args, NoExit, nil)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			switch tt.wantErr.(type) {
			case *UnknownOptionError:
				var e *UnknownOptionError
				if !errors.As(err, &e) {
					t.Errorf("error = %T, want *UnknownOptionError", err)
				}
			case *MissingArgError:
				var e *MissingArgError
				if !errors.As(err, &e) {
					t.Errorf("error = %T, want *MissingArgError", err)
				}
			case *UnexpectedValueError:
				var e *UnexpectedValueError
				if !errors.As(err, &e) {
					t.Errorf("error = %T, want *UnexpectedValueError", err)
				}
			case *AmbiguousOptionError:
				var e *AmbiguousOptionError
				if !errors.As(err, &e) {
					t.Errorf("error = %T, want *AmbiguousOptionError", err)
				}
			}
			out := stderr.String()
			if !strings.Contains(out, tt.wantMsg+"\n") {
				t.Errorf("stderr = %q, want it to contain %q", out, tt.wantMsg)
			}
			if !strings.Contains(out, "Try 'prog --help' or 'prog --usage' for more information.") {
				t.Errorf("stderr = %q, want the --help hint", out)
			}
			last := got[len(got)-2:]
			if diff := cmp.Diff([]event{ev(KeyError), ev(KeyFini)}, last); diff != "" {
				t.Errorf("final events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_NoErrsIsQuiet(t *testing.T) {
	var stderr bytes.Buffer
	exited := false
	a := &Argp{
		Options: testOptions(),
		Parser:  func(int, *string, *State) error { return nil },
		Err:     &stderr,
		Exit:    func(int) { exited = true },
	}
	err := Parse(a, []string{"prog", "--bogus"}, NoErrs, nil)
	var unk *UnknownOptionError
	if !errors.As(err, &unk) {
		t.Fatalf("Parse() error = %v, want *UnknownOptionError", err)
	}
	if unk.Option != "--bogus" {
		t.Errorf("Option = %q, want %q", unk.Option, "--bogus")
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
	if exited {
		t.Error("Exit called with NoErrs set")
	}
}

func TestParse_ExitHook(t *testing.T) {
	var code = -1
	a := &Argp{
		Options: testOptions(),
		Parser:  func(int, *string, *State) error { return nil },
		Err:     &bytes.Buffer{},
		Exit:    func(c int) { code = c },
	}
	err := Parse(a, []string{"prog", "--bogus"}, 0, nil)
	var exit *ExitError
	if !errors.As(err, &exit) {
		t.Fatalf("Parse() error = %v, want *ExitError", err)
	}
	if exit.Code != ErrExitStatus || code != ErrExitStatus {
		t.Errorf("exit code = %d (hook %d), want %d", exit.Code, code, ErrExitStatus)
	}
}

func TestParse_CallbackErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	var got []event
	rec := recorder(&got)
	a := &Argp{
		Options: testOptions(),
		Parser: func(key int, arg *string, s *State) error {
			rec(key, arg, s)
			if key == 'v' {
				return boom
			}
			return nil
		},
	}
	err := Parse(a, []string{"prog", "-v", "later"}, NoExit, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Parse() error = %v, want %v", err, boom)
	}
	want := []event{ev(KeyInit), ev('v'), ev(KeyError), ev(KeyFini)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RejectedArgument(t *testing.T) {
	var stderr bytes.Buffer
	a := &Argp{
		Parser: func(key int, arg *string, s *State) error {
			if key == KeyArg {
				return ErrUnknown
			}
			return nil
		},
		Err: &stderr,
	}
	err := Parse(a, []string{"prog", "extra"}, NoExit, nil)
	var extra *ExtraArgError
	if !errors.As(err, &extra) || extra.Arg != "extra" {
		t.Fatalf("Parse() error = %v, want *ExtraArgError for %q", err, "extra")
	}
	if !strings.HasPrefix(stderr.String(), "prog: too many arguments\n") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestParse_UnhandledOptionIgnored(t *testing.T) {
	a := &Argp{
		Options: testOptions(),
		Parser: func(key int, arg *string, s *State) error {
			if key == KeyArg {
				return nil
			}
			return ErrUnknown
		},
	}
	if err := Parse(a, []string{"prog", "-v", "--count=2", "x"}, NoExit, nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
}

func TestParse_ParseArgv0(t *testing.T) {
	var got []event
	a := &Argp{Parser: recorder(&got)}
	if err := Parse(a, []string{"first", "second"}, ParseArgv0|NoExit, nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []event{ev(KeyInit), evArg(KeyArg, "first"), evArg(KeyArg, "second"), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_LongOnly(t *testing.T) {
	var got []event
	a := &Argp{Options: testOptions(), Parser: recorder(&got)}
	if err := Parse(a, []string{"prog", "-count=4", "-va"}, LongOnly|NoExit, nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []event{ev(KeyInit), evArg('n', "4"), ev('v'), ev('a'), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_LongOnlySingleLetter(t *testing.T) {
	opts := []Option{
		{Key: 'n', Arg: "N"},
		{Name: "name", Key: 'N', Arg: "NAME"},
		{Name: "quiet", Key: 300},
	}
	tests := []struct {
		name string
		args []string
		want []event
	}{
		{
			name: "registered short letter stays short",
			args: []string{"prog", "-n", "5"},
			want: []event{ev(KeyInit), evArg('n', "5"), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "longer prefix goes long",
			args: []string{"prog", "-na", "x"},
			want: []event{ev(KeyInit), evArg('N', "x"), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
		{
			name: "letter without short option goes long",
			args: []string{"prog", "-q"},
			want: []event{ev(KeyInit), ev(300), ev(KeyNoArgs), ev(KeyEnd), ev(KeySuccess), ev(KeyFini)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []event
			a := &Argp{Options: opts, Parser: recorder(&got)}
			if err := Parse(a, tt.args, LongOnly|NoExit, nil); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_StateInput(t *testing.T) {
	type ctx struct{ seen int }
	c := &ctx{}
	a := &Argp{
		Options: testOptions(),
		Parser: func(key int, arg *string, s *State) error {
			if key == 'v' {
				s.Input.(*ctx).seen++
			}
			return nil
		},
	}
	if err := Parse(a, []string{"prog", "-vv", "--verbose"}, NoExit, c); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.seen != 3 {
		t.Errorf("seen = %d, want 3", c.seen)
	}
}

func TestParse_Builtins(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantCode int
	}{
		{name: "help", args: []string{"prog", "--help"}, wantOut: "Usage: prog [OPTION...] FILE\n", wantCode: 0},
		{name: "short help", args: []string{"prog", "-?"}, wantOut: "  -?, --help", wantCode: 0},
		{name: "usage", args: []string{"prog", "--usage"}, wantOut: "[-n NUM]", wantCode: 0},
		{name: "version", args: []string{"prog", "-V"}, wantOut: "prog 1.2.3\n", wantCode: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			code := -1
			a := &Argp{
				Options: testOptions(),
				Parser:  func(int, *string, *State) error { return nil },
				ArgsDoc: "FILE",
				Version: "prog 1.2.3",
				Out:     &stdout,
				Exit:    func(c int) { code = c },
			}
			err := Parse(a, tt.args, 0, nil)
			var exit *ExitError
			if !errors.As(err, &exit) {
				t.Fatalf("Parse() error = %v, want *ExitError", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestParse_NoHelpDisablesBuiltins(t *testing.T) {
	a := &Argp{Options: testOptions(), Parser: func(int, *string, *State) error { return nil }, Err: &bytes.Buffer{}}
	err := Parse(a, []string{"prog", "--help"}, NoHelp|NoExit, nil)
	var unk *UnknownOptionError
	if !errors.As(err, &unk) {
		t.Fatalf("Parse() error = %v, want *UnknownOptionError", err)
	}
}

func TestState_Failure(t *testing.T) {
	tests := []struct {
		name     string
		flags    Flags
		status   int
		wantOut  string
		wantCode int
	}{
		{name: "message and exit", status: 3, wantOut: "prog: went wrong: cause\n", wantCode: 3},
		{name: "zero status never exits", status: 0, wantOut: "prog: went wrong: cause\n", wantCode: -1},
		{name: "no exit", flags: NoExit, status: 3, wantOut: "prog: went wrong: cause\n", wantCode: -1},
		{name: "no errs", flags: NoErrs, status: 3, wantOut: "", wantCode: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := -1
			s := &State{Name: "prog", Flags: tt.flags, Err: &stderr, exit: func(c int) { code = c }}
			s.Failure(tt.status, errors.New("cause"), "went %s", "wrong")
			if stderr.String() != tt.wantOut {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantOut)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}
