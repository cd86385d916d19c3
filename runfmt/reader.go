// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// A Reader reads a timing file: a header line naming the columns
// followed by one record per repetition.
//
// Its API is modeled on bufio.Scanner. The Sample returned by Sample
// is owned by the caller.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	schema   Schema
	sample   *Sample
	err      error
}

// NewReader returns a Reader reading from r. fileName is used in
// error messages only.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{s: bufio.NewScanner(r), fileName: fileName}
}

// Schema returns the columns named by the header. It is nil until the
// first call to Scan.
func (r *Reader) Schema() Schema {
	return r.schema
}

// Scan advances to the next record and reports whether one was read.
// At EOF or on error it returns false and Err reports the error, if
// any.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		text := strings.TrimRight(r.s.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if r.schema == nil {
			schema, err := ParseSchema(text)
			if err != nil {
				r.err = fmt.Errorf("%s:%d: bad header: %w", r.fileName, r.line, err)
				return false
			}
			r.schema = schema
			continue
		}
		s, err := r.decode(text)
		if err != nil {
			r.err = err
			return false
		}
		r.sample = s
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Sample returns the record read by the last call to Scan.
func (r *Reader) Sample() *Sample {
	return r.sample
}

// Err returns the first error encountered by Scan.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) malformed(format string, args ...interface{}) error {
	return &MalformedRecordError{FileName: r.fileName, Line: r.line, Msg: fmt.Sprintf(format, args...)}
}

// decode parses a stored record according to the header. Stored
// records already carry the derived compute time, so nothing is
// recomputed here.
func (r *Reader) decode(text string) (*Sample, error) {
	f := strings.Split(text, ";")
	if len(f) != len(r.schema) {
		return nil, r.malformed("got %d fields, header has %d", len(f), len(r.schema))
	}
	s := &Sample{LocalSortTime: math.NaN()}
	for i, c := range r.schema {
		field := strings.TrimSpace(f[i])
		switch c {
		case Size, Processes:
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, r.malformed("column %s: %v", c, err)
			}
			if c == Size {
				s.ProblemSize = v
			} else {
				s.Workers = v
			}
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, r.malformed("column %s: %v", c, err)
		}
		switch c {
		case ReadTime:
			s.ReadTime = v
		case LocalSortTime:
			s.LocalSortTime = v
		case MergeTime:
			s.ComputeTime = v
		case Elapsed:
			s.Elapsed = v
		case User:
			s.User = v
		case Sys:
			s.Sys = v
		}
	}
	return s, nil
}

// A File is the content of one timing file.
type File struct {
	Name    string // base name of the file, e.g. "mpi_4_16.csv"
	Schema  Schema
	Samples []*Sample
}

// errNoHeader is returned for files without a header line.
var errNoHeader = errors.New("missing header")

// Read reads all records from r.
func Read(r io.Reader, name string) (*File, error) {
	rd := NewReader(r, name)
	f := &File{Name: filepath.Base(name)}
	for rd.Scan() {
		f.Samples = append(f.Samples, rd.Sample())
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	if rd.Schema() == nil {
		return nil, fmt.Errorf("%s: %w", name, errNoHeader)
	}
	f.Schema = rd.Schema()
	return f, nil
}

// ReadFile reads the timing file at path.
func ReadFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd, path)
}

// Column returns the values of c for every sample, in file order.
// It fails if the file's header does not include c.
func (f *File) Column(c Column) ([]float64, error) {
	if !f.Schema.Has(c) {
		return nil, fmt.Errorf("%s: no column %q", f.Name, c)
	}
	xs := make([]float64, len(f.Samples))
	for i, s := range f.Samples {
		xs[i] = s.Value(c)
	}
	return xs, nil
}
