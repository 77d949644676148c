// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argp

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// HelpFlags select the sections written by Help.
type HelpFlags uint

const (
	HelpUsage      HelpFlags = 0x01 // long usage with every option bracketed
	HelpShortUsage HelpFlags = 0x02 // "Usage: prog [OPTION...] ARGS"
	HelpSeeAlso    HelpFlags = 0x04 // pointer to --help and --usage
	HelpLong       HelpFlags = 0x08 // option list
	HelpPreDoc     HelpFlags = 0x10 // Doc before '\v'
	HelpPostDoc    HelpFlags = 0x20 // Doc after '\v'
	HelpLongOnly   HelpFlags = 0x80 // show long options with a single dash
	HelpExitErr    HelpFlags = 0x100
	HelpExitOk     HelpFlags = 0x200

	HelpDoc      = HelpPreDoc | HelpPostDoc
	HelpStdErr   = HelpSeeAlso | HelpExitErr
	HelpStdUsage = HelpShortUsage | HelpSeeAlso | HelpExitErr
	HelpStdHelp  = HelpShortUsage | HelpLong | HelpExitOk | HelpDoc

	// helpNoBuiltins hides --help, --usage and --version; set when the
	// parse runs with NoHelp.
	helpNoBuiltins HelpFlags = 0x8000
)

// Layout columns, matching the classic argp defaults.
const (
	shortOptCol      = 2
	longOptCol       = 6
	optDocCol        = 29
	headerCol        = 1
	defaultRMargin   = 79
	minDocColumnRoom = 20
)

// Help writes the sections selected by flags for a to w. It never exits;
// see State.Help for the exiting variant.
func Help(a *Argp, w io.Writer, flags HelpFlags, name string) {
	if a == nil || w == nil {
		return
	}
	h := &helpWriter{
		argp:    a,
		name:    name,
		flags:   flags,
		rmargin: rightMargin(w),
	}
	io.WriteString(w, h.render())
}

type helpEntry struct {
	shorts   []rune
	longs    []string
	arg      string
	optional bool
	doc      string
	header   bool
	docOnly  bool
	hidden   bool
	noUsage  bool
	group    int
}

type helpWriter struct {
	argp    *Argp
	name    string
	flags   HelpFlags
	rmargin int
	b       strings.Builder
}

func (h *helpWriter) render() string {
	pre, post, _ := strings.Cut(h.argp.Doc, "\v")
	entries := h.entries()

	if h.flags&HelpUsage != 0 {
		h.longUsage(entries)
	}
	if h.flags&HelpShortUsage != 0 {
		h.shortUsage()
	}
	if h.flags&HelpPreDoc != 0 && pre != "" {
		h.paragraphs(pre, 0)
	}
	if h.flags&HelpLong != 0 {
		h.optionList(entries)
	}
	if h.flags&HelpPostDoc != 0 && post != "" {
		h.b.WriteString("\n")
		h.paragraphs(post, 0)
	}
	if h.flags&HelpSeeAlso != 0 {
		fmt.Fprintf(&h.b, "Try '%s --help' or '%s --usage' for more information.\n", h.name, h.name)
	}
	return h.b.String()
}

func (h *helpWriter) dashes() string {
	if h.flags&HelpLongOnly != 0 {
		return "-"
	}
	return "--"
}

// entries flattens the option table into help lines, folding aliases into
// the option they follow and ordering by group.
func (h *helpWriter) entries() []*helpEntry {
	var out []*helpEntry
	var last *helpEntry
	group := 0
	for _, o := range h.argp.Options {
		if o.isHeader() {
			if o.Group != 0 {
				group = o.Group
			} else {
				group++
			}
			out = append(out, &helpEntry{doc: o.Doc, header: true, group: group})
			last = nil
			continue
		}
		if o.Flags&OptionAlias != 0 && last != nil {
			if o.Flags&OptionHidden == 0 {
				last.add(o)
			}
			continue
		}
		g := o.Group
		if g == 0 {
			g = group
		} else {
			group = g
		}
		e := &helpEntry{
			arg:      o.Arg,
			optional: o.Flags&OptionArgOptional != 0,
			doc:      o.Doc,
			docOnly:  o.Flags&OptionDoc != 0,
			hidden:   o.Flags&OptionHidden != 0,
			noUsage:  o.Flags&OptionNoUsage != 0,
			group:    g,
		}
		e.add(o)
		out = append(out, e)
		last = e
	}
	if h.flags&helpNoBuiltins == 0 {
		for _, b := range builtinOptions(h.argp) {
			e := &helpEntry{doc: b.Doc, group: b.Group}
			e.add(b)
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b *helpEntry) int {
		return groupRank(a.group) - groupRank(b.group)
	})
	return out
}

func (e *helpEntry) add(o Option) {
	if e.docOnly {
		e.longs = append(e.longs, o.Name)
		return
	}
	if isShort(o.Key) {
		e.shorts = append(e.shorts, rune(o.Key))
	}
	if o.Name != "" {
		e.longs = append(e.longs, o.Name)
	}
}

// groupRank orders non-negative groups ascending, then negative groups
// ascending, so -1 comes last.
func groupRank(g int) int {
	if g >= 0 {
		return g
	}
	return 1<<20 + g
}

func (h *helpWriter) shortUsage() {
	lines := strings.Split(h.argp.ArgsDoc, "\n")
	for i, line := range lines {
		lead := "Usage:"
		if i > 0 {
			lead = "  or: "
		}
		s := fmt.Sprintf("%s %s [OPTION...]", lead, h.name)
		if line != "" {
			s += " " + line
		}
		h.b.WriteString(s + "\n")
	}
}

func (h *helpWriter) longUsage(entries []*helpEntry) {
	var flagRunes []rune
	var items []string
	dd := h.dashes()
	for _, e := range entries {
		if e.header || e.docOnly || e.hidden || e.noUsage {
			continue
		}
		for _, r := range e.shorts {
			switch {
			case e.arg == "":
				flagRunes = append(flagRunes, r)
			case e.optional:
				items = append(items, fmt.Sprintf("[-%c[%s]]", r, e.arg))
			default:
				items = append(items, fmt.Sprintf("[-%c %s]", r, e.arg))
			}
		}
	}
	var longs []string
	for _, e := range entries {
		if e.header || e.docOnly || e.hidden || e.noUsage {
			continue
		}
		for _, l := range e.longs {
			switch {
			case e.arg == "":
				longs = append(longs, fmt.Sprintf("[%s%s]", dd, l))
			case e.optional:
				longs = append(longs, fmt.Sprintf("[%s%s[=%s]]", dd, l, e.arg))
			default:
				longs = append(longs, fmt.Sprintf("[%s%s=%s]", dd, l, e.arg))
			}
		}
	}
	if len(flagRunes) > 0 {
		items = append([]string{"[-" + string(flagRunes) + "]"}, items...)
	}
	items = append(items, longs...)

	for i, line := range strings.Split(h.argp.ArgsDoc, "\n") {
		lead := "Usage:"
		if i > 0 {
			lead = "  or: "
		}
		words := append([]string(nil), items...)
		words = append(words, strings.Fields(line)...)
		h.wrapWords(lead+" "+h.name, words)
	}
}

// wrapWords writes prefix followed by words, breaking lines at the right
// margin and indenting continuations past the prefix.
func (h *helpWriter) wrapWords(prefix string, words []string) {
	indent := len(prefix) + 1
	col := len(prefix)
	h.b.WriteString(prefix)
	for _, w := range words {
		if col+1+len(w) > h.rmargin && col > indent {
			h.b.WriteString("\n" + strings.Repeat(" ", indent) + w)
			col = indent + len(w)
			continue
		}
		h.b.WriteString(" " + w)
		col += 1 + len(w)
	}
	h.b.WriteString("\n")
}

func (h *helpWriter) optionList(entries []*helpEntry) {
	dd := h.dashes()
	note := false
	prevGroup := 0
	first := true
	for _, e := range entries {
		if e.hidden {
			continue
		}
		if first || e.group != prevGroup || e.header {
			if !first || h.b.Len() > 0 {
				h.b.WriteString("\n")
			}
		}
		first = false
		prevGroup = e.group
		if e.header {
			if e.doc != "" {
				h.paragraphs(e.doc, headerCol)
			}
			continue
		}

		var parts []string
		for i, r := range e.shorts {
			p := "-" + string(r)
			if len(e.longs) == 0 && i == len(e.shorts)-1 && e.arg != "" {
				if e.optional {
					p += "[" + e.arg + "]"
				} else {
					p += " " + e.arg
				}
			}
			parts = append(parts, p)
		}
		for _, l := range e.longs {
			if e.docOnly {
				parts = append(parts, l)
				continue
			}
			p := dd + l
			if e.arg != "" {
				if e.optional {
					p += "[=" + e.arg + "]"
				} else {
					p += "=" + e.arg
				}
				if len(e.shorts) > 0 {
					note = true
				}
			}
			parts = append(parts, p)
		}

		line := strings.Repeat(" ", shortOptCol)
		if len(e.shorts) == 0 && !e.docOnly {
			line = strings.Repeat(" ", longOptCol)
		}
		line += strings.Join(parts, ", ")
		h.b.WriteString(line)
		if e.doc == "" {
			h.b.WriteString("\n")
			continue
		}
		if len(line) < optDocCol-1 {
			h.b.WriteString(strings.Repeat(" ", optDocCol-len(line)))
		} else {
			h.b.WriteString("\n" + strings.Repeat(" ", optDocCol))
		}
		h.b.WriteString(strings.Join(wrapText(e.doc, h.docWidth()), "\n"+strings.Repeat(" ", optDocCol)))
		h.b.WriteString("\n")
	}
	if note {
		h.b.WriteString("\n")
		h.paragraphs("Mandatory or optional arguments to long options are also mandatory or optional for any corresponding short options.", 0)
	}
}

func (h *helpWriter) docWidth() int {
	return max(h.rmargin-optDocCol, minDocColumnRoom)
}

// paragraphs wraps every line of text to the right margin at the given
// indent, keeping blank lines.
func (h *helpWriter) paragraphs(text string, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			h.b.WriteString("\n")
			continue
		}
		for _, l := range wrapText(line, h.rmargin-indent) {
			h.b.WriteString(pad + l + "\n")
		}
	}
}

// wrapText greedily breaks text into lines no longer than width, except
// for single words that are longer.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(lines, cur)
}
