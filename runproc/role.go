// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runproc classifies timing files by the run they describe
// and orders them.
//
// Timing files follow a naming convention: the serial baseline of an
// input of size 2^s is stored in "serial_<s>.csv" and a parallel run
// with p processes in "mpi_<p>_<s>.csv". The worker count of a run is
// always taken from its name, never from its position in a listing.
package runproc

import (
	"fmt"
	"regexp"
	"strconv"
)

// A Kind distinguishes the serial baseline from parallel runs.
type Kind int

const (
	Serial Kind = iota
	Parallel
)

// A Role is the part a timing file plays in a process-count sweep.
type Role struct {
	Kind    Kind
	Workers int // number of processes; 0 for Serial
}

func (r Role) String() string {
	if r.Kind == Serial {
		return "serial"
	}
	return fmt.Sprintf("mpi_%d", r.Workers)
}

// IsSerial reports whether r is the serial baseline.
func (r Role) IsSerial() bool {
	return r.Kind == Serial
}

// Default naming patterns.
const (
	DefaultFilePattern     = `(mpi_[0-9]+|serial)_[0-9]+\.csv`
	DefaultBaselinePattern = `serial_[0-9]+\.csv`
	DefaultWorkersPattern  = `mpi_([0-9]+)_`
)

// Patterns holds the compiled naming conventions. Patterns match at
// the start of a file name.
type Patterns struct {
	// File selects the timing files of a directory.
	File *regexp.Regexp
	// Baseline selects the serial baseline among them.
	Baseline *regexp.Regexp
	// Workers extracts the process count of a parallel run as its
	// first submatch.
	Workers *regexp.Regexp
}

// DefaultPatterns returns the standard naming conventions.
func DefaultPatterns() *Patterns {
	p, err := CompilePatterns(DefaultFilePattern, DefaultBaselinePattern, DefaultWorkersPattern)
	if err != nil {
		panic(err)
	}
	return p
}

// CompilePatterns compiles custom naming conventions. An empty string
// selects the default for that pattern.
func CompilePatterns(file, baseline, workers string) (*Patterns, error) {
	compile := func(what, expr, def string) (*regexp.Regexp, error) {
		if expr == "" {
			expr = def
		}
		re, err := regexp.Compile(`^(?:` + expr + `)`)
		if err != nil {
			return nil, fmt.Errorf("%s pattern: %w", what, err)
		}
		return re, nil
	}
	var p Patterns
	var err error
	if p.File, err = compile("file", file, DefaultFilePattern); err != nil {
		return nil, err
	}
	if p.Baseline, err = compile("baseline", baseline, DefaultBaselinePattern); err != nil {
		return nil, err
	}
	if p.Workers, err = compile("workers", workers, DefaultWorkersPattern); err != nil {
		return nil, err
	}
	if p.Workers.NumSubexp() < 1 {
		return nil, fmt.Errorf("workers pattern %q has no submatch", p.Workers)
	}
	return &p, nil
}

// IsBaseline reports whether name is the serial baseline file.
func (p *Patterns) IsBaseline(name string) bool {
	return p.Baseline.MatchString(name)
}

// Classify returns the role of the file called name. It reports false
// if name is neither the baseline nor a parallel run with a worker
// count.
func (p *Patterns) Classify(name string) (Role, bool) {
	if p.IsBaseline(name) {
		return Role{Kind: Serial}, true
	}
	m := p.Workers.FindStringSubmatch(name)
	if m == nil {
		return Role{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Role{}, false
	}
	return Role{Kind: Parallel, Workers: n}, true
}

var defaultPatterns = DefaultPatterns()

// ClassifyRole classifies name with the default naming conventions.
func ClassifyRole(name string) (Role, bool) {
	return defaultPatterns.Classify(name)
}
