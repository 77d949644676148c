// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// listSep separates the elements of a list option value.
const listSep = ","

// Converter turns the raw text of one option into a committed value. arg is
// nil when the option was given without a value.
type Converter func(arg *string) error

// Value is the set of destination types with a built-in conversion.
type Value interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~string | ~bool |
		*os.File | NamedFile | Input
}

// NamedFile is an opened file together with the path it was opened from.
type NamedFile struct {
	File *os.File
	Name string
}

func text(arg *string) string {
	if arg == nil {
		return ""
	}
	return *arg
}

// convertTo builds the converter for a single-valued destination. Numeric
// destinations are left untouched on failure; file destinations always
// receive the result, which is their non-open form on failure.
func convertTo[T Value](dst *T) Converter {
	parse := parserFor[T]()
	switch any(dst).(type) {
	case **os.File, *NamedFile, *Input:
		return func(arg *string) error {
			v, err := parse(text(arg))
			*dst = v
			return err
		}
	}
	return func(arg *string) error {
		v, err := parse(text(arg))
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// convertList builds the converter for a list destination. Elements are
// appended as they convert; a failing element stops the conversion and
// leaves the elements before it in place.
func convertList[T Value](dst *[]T) Converter {
	parse := parserFor[T]()
	return func(arg *string) error {
		for _, piece := range splitList(text(arg)) {
			v, err := parse(piece)
			if err != nil {
				return err
			}
			*dst = append(*dst, v)
		}
		return nil
	}
}

// splitList splits s on listSep the way a line reader would: an empty
// string has no elements and a trailing separator does not add an empty
// one.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, listSep)
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// parserFor selects the conversion rule for T once, at registration.
func parserFor[T Value]() func(string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case *os.File:
		return func(s string) (T, error) {
			f, err := openFile(s)
			return any(f).(T), err
		}
	case NamedFile:
		return func(s string) (T, error) {
			f, err := openFile(s)
			return any(NamedFile{File: f, Name: s}).(T), err
		}
	case Input:
		return func(s string) (T, error) {
			in, err := openInput(s)
			return any(in).(T), err
		}
	}

	rt := reflect.TypeFor[T]()
	set := func(fn func(v reflect.Value)) T {
		var v T
		fn(reflect.ValueOf(&v).Elem())
		return v
	}
	switch rt.Kind() {
	case reflect.Float32, reflect.Float64:
		return func(s string) (T, error) {
			f, err := strconv.ParseFloat(s, rt.Bits())
			if err != nil {
				return zero, &ConversionError{Value: s, Err: numCause(err), kind: convDecimal}
			}
			return set(func(v reflect.Value) { v.SetFloat(f) }), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(s string) (T, error) {
			if !isCInteger(s) {
				return zero, &ConversionError{Value: s, Err: strconv.ErrSyntax, kind: convInteger}
			}
			i, err := strconv.ParseInt(s, 0, rt.Bits())
			if err != nil {
				return zero, &ConversionError{Value: s, Err: numCause(err), kind: convInteger}
			}
			return set(func(v reflect.Value) { v.SetInt(i) }), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(s string) (T, error) {
			if !isCInteger(s) {
				return zero, &ConversionError{Value: s, Err: strconv.ErrSyntax, kind: convInteger}
			}
			u, err := strconv.ParseUint(s, 0, rt.Bits())
			if err != nil {
				return zero, &ConversionError{Value: s, Err: numCause(err), kind: convInteger}
			}
			return set(func(v reflect.Value) { v.SetUint(u) }), nil
		}
	case reflect.String:
		return func(s string) (T, error) {
			return set(func(v reflect.Value) { v.SetString(s) }), nil
		}
	case reflect.Bool:
		// Presence is the value; any text is ignored.
		return func(string) (T, error) {
			return set(func(v reflect.Value) { v.SetBool(true) }), nil
		}
	}
	panic(fmt.Sprintf("optparse: unsupported destination type %s", rt))
}

// isCInteger reports whether s is written the way C base detection reads
// it: an optional sign, then decimal digits, octal digits after a leading 0,
// or hex digits after 0x. strconv's base 0 also takes 0b, 0o and '_'
// separators; those are rejected here.
func isCInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits := "0123456789"
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		digits = "0123456789abcdefABCDEF"
	}
	return s != "" && strings.Trim(s, digits) == ""
}

// numCause strips the strconv wrapper so messages read "invalid syntax"
// rather than repeating the input.
func numCause(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConversionError{Value: path, Err: err, kind: convFile}
	}
	return f, nil
}
