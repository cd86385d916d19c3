// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/runmath"
	"github.com/mpisort/sortperf/runproc"
)

// ErrInsufficientData is returned for a directory with fewer than
// MinFiles timing files. There is nothing to compare in such a
// directory; callers normally skip it.
var ErrInsufficientData = errors.New("insufficient data")

// MinFiles is the number of timing files a directory needs to be
// aggregated: the baseline and at least one parallel run.
const MinFiles = 2

// An Aggregator reduces the timing files of sweep directories.
type Aggregator struct {
	// Patterns selects and classifies timing files. If nil, the
	// default naming conventions are used.
	Patterns *runproc.Patterns

	// Log receives per-file progress at debug level. If nil,
	// nothing is logged.
	Log logrus.FieldLogger
}

var discard = func() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}()

func (a *Aggregator) patterns() *runproc.Patterns {
	if a.Patterns == nil {
		return runproc.DefaultPatterns()
	}
	return a.Patterns
}

func (a *Aggregator) log() logrus.FieldLogger {
	if a.Log == nil {
		return discard
	}
	return a.Log
}

// Files returns the timing files in dir in natural order.
func (a *Aggregator) Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	p := a.patterns()
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") || !p.File.MatchString(name) {
			continue
		}
		names = append(names, name)
	}
	runproc.SortNatural(names)
	return names, nil
}

// Aggregate reduces every column in cols of every timing file in dir.
// The columns are validated before dir is read. If dir holds fewer
// than MinFiles timing files, Aggregate returns an error matching
// ErrInsufficientData. A malformed timing file, or one holding only
// its header, fails the whole directory.
func (a *Aggregator) Aggregate(dir string, cols []runfmt.Column) (*DataSet, error) {
	ds, err := NewDataSet(dir, cols)
	if err != nil {
		return nil, err
	}
	names, err := a.Files(dir)
	if err != nil {
		return nil, err
	}
	if len(names) < MinFiles {
		return nil, fmt.Errorf("%s: %d timing file(s): %w", dir, len(names), ErrInsufficientData)
	}

	p := a.patterns()
	log := a.log().WithField("dir", dir)
	for _, name := range names {
		role, ok := p.Classify(name)
		if !ok {
			return nil, fmt.Errorf("%s: cannot tell the role of %s", dir, name)
		}
		path := filepath.Join(dir, name)
		f, err := runfmt.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if len(f.Samples) == 0 {
			return nil, &runfmt.MalformedRecordError{FileName: path, Line: 2, Msg: "no repetitions"}
		}
		flog := log.WithFields(logrus.Fields{"file": name, "samples": len(f.Samples)})
		flog.Debug("reducing timing file")
		for _, c := range ds.Columns {
			xs, err := f.Column(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", dir, err)
			}
			sum := runmath.Summarize(xs)
			flog.WithField("column", c.String()).Trace(sum.String())
			if err := ds.Append(c, Metric{Label: name, Role: role, N: sum.N, Value: sum.Center}); err != nil {
				return nil, err
			}
		}
	}
	return ds, nil
}

// Aggregate reduces the timing files in dir with the given patterns.
// See Aggregator.Aggregate.
func Aggregate(dir string, cols []runfmt.Column, p *runproc.Patterns) (*DataSet, error) {
	a := &Aggregator{Patterns: p}
	return a.Aggregate(dir, cols)
}
