// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out text tables, either as aligned columns or
// inside a box-drawing grid.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them.
type Table struct {
	rows  [][]cell
	align []Align
}

type cell struct {
	value string
	align Align
	set   bool
}

// An Align positions a value within its column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Center:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	case Right:
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row. Without an explicit
// alignment the column's alignment is used.
func (t *Table) Cell(value string, align ...Align) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	if len(align) > 0 {
		c.align, c.set = align[0], true
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	return t
}

// Cells adds one cell per value to the current row.
func (t *Table) Cells(values ...string) *Table {
	for _, v := range values {
		t.Cell(v)
	}
	return t
}

// SetAlign sets the default alignment of column col. Columns are
// numbered from 0.
func (t *Table) SetAlign(col int, a Align) {
	for len(t.align) <= col {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
}

func (t *Table) alignment(col int, c cell) Align {
	if c.set {
		return c.align
	}
	if col < len(t.align) {
		return t.align[col]
	}
	return Left
}

func (t *Table) widths() []int {
	var ws []int
	for _, row := range t.rows {
		for i, c := range row {
			if i == len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}
	return ws
}

// Format writes t as aligned columns separated by two spaces.
// Trailing spaces are not printed.
func (t *Table) Format(w io.Writer) error {
	ws := t.widths()
	for _, row := range t.rows {
		var b strings.Builder
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(t.alignment(i, c).pad(c.value, ws[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// Box-drawing runes of a grid: left, fill, junction, right.
var (
	gridTop    = [4]string{"╒", "═", "╤", "╕"}
	gridMiddle = [4]string{"├", "─", "┼", "┤"}
	gridBottom = [4]string{"╘", "═", "╧", "╛"}
)

// FormatGrid writes t inside a box-drawing grid, with a rule between
// every two rows. Short rows are padded with empty cells.
func (t *Table) FormatGrid(w io.Writer) error {
	ws := t.widths()
	if len(ws) == 0 {
		return nil
	}
	rule := func(r [4]string) string {
		var b strings.Builder
		b.WriteString(r[0])
		for i, n := range ws {
			if i > 0 {
				b.WriteString(r[2])
			}
			b.WriteString(strings.Repeat(r[1], n+2))
		}
		b.WriteString(r[3])
		return b.String()
	}

	lines := []string{rule(gridTop)}
	for ri, row := range t.rows {
		if ri > 0 {
			lines = append(lines, rule(gridMiddle))
		}
		var b strings.Builder
		b.WriteString("│")
		for i, n := range ws {
			var c cell
			if i < len(row) {
				c = row[i]
			}
			b.WriteString(" " + t.alignment(i, c).pad(c.value, n) + " │")
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, rule(gridBottom))
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
