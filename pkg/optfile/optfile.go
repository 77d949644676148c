// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optfile reads option defaults from TOML or YAML files and turns
// them into command-line tokens.
//
// Top-level keys are long option names:
//
//	count = 5          -> --count=5
//	verbose = true     -> --verbose
//	quiet = false      -> (nothing)
//	tags = ["a", "b"]  -> --tags=a,b
//
// The tokens go in front of the real arguments with Prepend, so anything on
// the command line is seen later and wins for single-valued options.
package optfile

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a defaults file.
type Format int

const (
	Unknown Format = iota // not recognised
	TOML                  // BurntSushi/toml
	YAML                  // gopkg.in/yaml.v3
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return "unknown"
}

// Detect picks the format of data from the file name, falling back to
// trying each decoder. It writes nothing; callers decide what to report.
func Detect(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML
	case ".yaml", ".yml":
		return YAML
	}
	var m map[string]any
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err == nil {
		return TOML
	}
	if err := yaml.Unmarshal(data, &m); err == nil && m != nil {
		return YAML
	}
	return Unknown
}

// Load reads the defaults file at path and returns its tokens.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes data, named name for format detection and messages, and
// returns its tokens.
func Parse(name string, data []byte) ([]string, error) {
	values := map[string]any{}
	switch Detect(name, data) {
	case TOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unable to detect format of %s", name)
	}
	return Tokens(values)
}

// Tokens converts decoded defaults into long-option tokens, ordered by key.
func Tokens(values map[string]any) ([]string, error) {
	var out []string
	for _, name := range slices.Sorted(maps.Keys(values)) {
		toks, err := tokens(name, values[name])
		if err != nil {
			return nil, err
		}
		out = append(out, toks...)
	}
	return out, nil
}

func tokens(name string, v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if v {
			return []string{"--" + name}, nil
		}
		return nil, nil
	case []any:
		elems := make([]string, 0, len(v))
		for _, e := range v {
			s, err := scalar(e)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", name, err)
			}
			elems = append(elems, s)
		}
		return []string{"--" + name + "=" + strings.Join(elems, ",")}, nil
	}
	s, err := scalar(v)
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", name, err)
	}
	return []string{"--" + name + "=" + s}, nil
}

func scalar(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}

// Prepend returns argv with defaults inserted after the program name.
func Prepend(argv, defaults []string) []string {
	if len(argv) == 0 {
		return slices.Clone(defaults)
	}
	out := make([]string, 0, len(argv)+len(defaults))
	out = append(out, argv[0])
	out = append(out, defaults...)
	return append(out, argv[1:]...)
}
