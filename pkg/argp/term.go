// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argp

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
	"tailscale.com/types/lazy"
)

var colorEnv lazy.SyncValue[bool]

// colorAllowed reports whether the environment permits colour at all.
func colorAllowed() bool {
	return colorEnv.Get(func() bool {
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		t := os.Getenv("TERM")
		return t != "" && t != "dumb"
	})
}

func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// rightMargin is the help wrapping column for w: one less than the terminal
// width when w is a terminal, the classic 79 otherwise.
func rightMargin(w io.Writer) int {
	fd, ok := terminalFd(w)
	if !ok {
		return defaultRMargin
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= optDocCol+minDocColumnRoom {
		return defaultRMargin
	}
	return cols - 1
}

// diagPrefix renders "name:" for diagnostics, bold red on a colour
// terminal.
func diagPrefix(w io.Writer, name string) string {
	c := color.New(color.FgRed, color.Bold)
	if _, tty := terminalFd(w); tty && colorAllowed() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(name + ":")
}
