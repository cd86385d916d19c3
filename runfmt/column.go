// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"errors"
	"fmt"
	"strings"
)

// A Column identifies one field of a timing record.
type Column int

const (
	Size Column = iota
	Processes
	ReadTime
	LocalSortTime
	MergeTime // time spent sorting and merging, the compute time
	Elapsed
	User
	Sys

	numColumns
)

// NoColumn stands for an absent optional column.
const NoColumn Column = -1

var columnNames = [numColumns]string{
	Size:          "size",
	Processes:     "processes",
	ReadTime:      "read_time",
	LocalSortTime: "local_sort_time",
	MergeTime:     "merge_time",
	Elapsed:       "elapsed",
	User:          "user",
	Sys:           "sys",
}

// ErrUnknownColumn is returned when a column name is not part of the
// timing record schema.
var ErrUnknownColumn = errors.New("unknown column")

// String returns the header name of c.
func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return columnNames[c]
}

// Valid reports whether c is one of the known columns.
func (c Column) Valid() bool {
	return c >= 0 && c < numColumns
}

// ParseColumn returns the Column with the given header name.
func ParseColumn(name string) (Column, error) {
	for c, n := range columnNames {
		if n == name {
			return Column(c), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownColumn, name)
}

// ParseColumns parses each of names with ParseColumn.
func ParseColumns(names []string) ([]Column, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := ParseColumn(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// A Schema is the ordered list of columns in a timing file.
type Schema []Column

var (
	// CanonicalSchema is the layout written by Writer and by the
	// measurement runner.
	CanonicalSchema = Schema{Size, Processes, ReadTime, LocalSortTime, MergeTime, Elapsed, User, Sys}

	// LegacySchema is the older layout that did not track the
	// local sort phase. It is supported for reading only.
	LegacySchema = Schema{Size, Processes, ReadTime, MergeTime, Elapsed, User, Sys}
)

// Index returns the position of c in s, or -1.
func (s Schema) Index(c Column) int {
	for i, have := range s {
		if have == c {
			return i
		}
	}
	return -1
}

// Has reports whether s contains c.
func (s Schema) Has(c Column) bool {
	return s.Index(c) >= 0
}

// Header returns the header line for s, without a trailing newline.
func (s Schema) Header() string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.String()
	}
	return strings.Join(names, ";")
}

// Timings returns the columns of s that hold measured times, that is
// everything except the size and process count.
func (s Schema) Timings() Schema {
	var out Schema
	for _, c := range s {
		if c != Size && c != Processes {
			out = append(out, c)
		}
	}
	return out
}

// ParseSchema parses a ';'-separated header line.
func ParseSchema(header string) (Schema, error) {
	header = strings.TrimRight(header, "\r\n")
	cols, err := ParseColumns(strings.Split(header, ";"))
	if err != nil {
		return nil, err
	}
	seen := make(map[Column]bool)
	for _, c := range cols {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	return Schema(cols), nil
}
