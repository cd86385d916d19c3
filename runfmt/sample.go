// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runfmt reads and writes timing records of the sort
// benchmark harness.
//
// A timing record is one ';'-separated line describing a single
// repetition of a serial or parallel run:
//
//	size;processes;read_time;local_sort_time;merge_time;elapsed;user;sys
//
// The first fields are printed by the program under test and the last
// three (elapsed, user and system seconds) are appended by time(1).
// Older files omit local_sort_time; those are read with LegacySchema.
package runfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Sample is one repetition of one run. Samples are not modified
// after they are parsed.
type Sample struct {
	ProblemSize int // log2 of the number of sorted elements
	Workers     int // number of processes, 0 for the serial program

	ReadTime      float64 // seconds spent reading the input
	LocalSortTime float64 // seconds in the local sort phase, NaN if not reported
	ComputeTime   float64 // seconds spent sorting
	Elapsed       float64 // wall clock seconds reported by time(1)
	User          float64
	Sys           float64
}

// ComputePrecision is the number of decimal digits kept when the
// compute time is derived from the elapsed and read times.
const ComputePrecision = 6

// ErrMalformedRecord matches every *MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// A MalformedRecordError reports a timing line that does not fit the
// record schema.
type MalformedRecordError struct {
	FileName string // empty when parsing a single line
	Line     int
	Msg      string
}

func (e *MalformedRecordError) Error() string {
	if e.FileName == "" {
		return "malformed record: " + e.Msg
	}
	return fmt.Sprintf("%s:%d: malformed record: %s", e.FileName, e.Line, e.Msg)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Parse parses one raw timing line.
//
// A line has either 7 fields (size;processes;read;compute;elapsed;user;sys)
// or 8 fields (size;processes;read;local_sort;compute;elapsed;user;sys).
// For a parallel run with 8 fields the compute time is recomputed as
// elapsed minus read time, rounded to ComputePrecision digits. With 7
// fields the local sort time is NaN and the reported compute time is
// used as is.
func Parse(line string, parallel bool) (*Sample, error) {
	line = strings.TrimRight(line, "\r\n")
	f := strings.Split(line, ";")
	if len(f) != 7 && len(f) != 8 {
		return nil, &MalformedRecordError{Msg: fmt.Sprintf("got %d fields, want 7 or 8", len(f))}
	}

	var err error
	num := func(s string) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		return v
	}
	integer := func(s string) int {
		if err != nil {
			return 0
		}
		var v int
		v, err = strconv.Atoi(strings.TrimSpace(s))
		return v
	}

	s := &Sample{
		ProblemSize: integer(f[0]),
		Workers:     integer(f[1]),
		ReadTime:    num(f[2]),
	}
	if len(f) == 7 {
		s.LocalSortTime = math.NaN()
		s.ComputeTime = num(f[3])
		s.Elapsed, s.User, s.Sys = num(f[4]), num(f[5]), num(f[6])
	} else {
		s.LocalSortTime = num(f[3])
		s.ComputeTime = num(f[4])
		s.Elapsed, s.User, s.Sys = num(f[5]), num(f[6]), num(f[7])
		if parallel && err == nil {
			s.ComputeTime = roundTo(s.Elapsed-s.ReadTime, ComputePrecision)
		}
	}
	if err != nil {
		return nil, &MalformedRecordError{Msg: err.Error()}
	}
	return s, nil
}

// roundTo rounds x to digits decimal digits, using the exact binary
// value of x like strconv does.
func roundTo(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', digits, 64), 64)
	return v
}

// Format returns s in the 8-field record layout, terminated by a
// newline. A NaN local sort time is written as 0.
func (s *Sample) Format() string {
	var buf strings.Builder
	buf.WriteString(strconv.Itoa(s.ProblemSize))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(s.Workers))
	local := s.LocalSortTime
	if math.IsNaN(local) {
		local = 0
	}
	for _, v := range []float64{s.ReadTime, local, s.ComputeTime, s.Elapsed, s.User, s.Sys} {
		buf.WriteByte(';')
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte('\n')
	return buf.String()
}

func (s *Sample) String() string {
	return s.Format()
}

// Value returns the field of s identified by c.
func (s *Sample) Value(c Column) float64 {
	switch c {
	case Size:
		return float64(s.ProblemSize)
	case Processes:
		return float64(s.Workers)
	case ReadTime:
		return s.ReadTime
	case LocalSortTime:
		return s.LocalSortTime
	case MergeTime:
		return s.ComputeTime
	case Elapsed:
		return s.Elapsed
	case User:
		return s.User
	case Sys:
		return s.Sys
	}
	panic(fmt.Sprintf("unknown column %d", int(c)))
}
