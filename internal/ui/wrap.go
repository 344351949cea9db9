package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// rowWrapper lays styled text pieces into rows no wider than width. Rows
// break at any character; continuation rows start with indent blank columns.
// A width of zero or less never wraps.
type rowWrapper struct {
	bg     BgStyle
	width  int
	indent int

	rows []string
	cur  strings.Builder
	col  int
}

func newRowWrapper(bg BgStyle, width, indent int) *rowWrapper {
	if width > 0 && indent >= width {
		indent = 0
	}
	return &rowWrapper{bg: bg, width: width, indent: indent}
}

// write appends text rendered with render and returns the row (relative to
// this wrapper) where its first character landed.
func (w *rowWrapper) write(text string, render func(string) string) int {
	start := -1
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			w.cur.WriteString(render(run.String()))
			run.Reset()
		}
	}

	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		chunk := text[i : i+size]
		i += size

		cw := ansi.StringWidth(chunk)
		if w.width > 0 && w.col+cw > w.width && w.col > w.indent {
			flush()
			w.breakRow()
		}
		if start < 0 {
			start = len(w.rows)
		}
		run.WriteString(chunk)
		w.col += cw
	}
	flush()

	if start < 0 {
		start = len(w.rows)
	}
	return start
}

func (w *rowWrapper) breakRow() {
	w.rows = append(w.rows, w.line())
	w.cur.Reset()
	w.cur.WriteString(w.bg.Spaces(w.indent))
	w.col = w.indent
}

func (w *rowWrapper) line() string {
	if w.width <= 0 {
		return w.cur.String()
	}
	return w.bg.FillLine(ansi.Truncate(w.cur.String(), w.width, ""), w.width)
}

// finish returns all rows, including the one in progress.
func (w *rowWrapper) finish() []string {
	return append(w.rows, w.line())
}
