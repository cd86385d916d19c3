// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runstat aggregates the timing files of a sweep directory
// into reduced metrics and splits them into the serial baseline and
// the parallel runs.
package runstat

import (
	"fmt"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/runproc"
)

// A Metric is the reduced value of one column over all repetitions
// stored in one timing file.
type Metric struct {
	Label string       // timing file name, e.g. "mpi_4_16.csv"
	Role  runproc.Role // role derived from Label
	N     int          // number of repetitions reduced
	Value float64
}

// A Series is a sequence of Metrics for one column, one per timing
// file, in natural file order.
type Series []Metric

// Values returns the metric values of s.
func (s Series) Values() []float64 {
	vs := make([]float64, len(s))
	for i, m := range s {
		vs[i] = m.Value
	}
	return vs
}

// Labels returns the metric labels of s.
func (s Series) Labels() []string {
	ls := make([]string, len(s))
	for i, m := range s {
		ls[i] = m.Label
	}
	return ls
}

// A DataSet maps each tracked column of a directory to its Series.
// The set of columns is fixed when the DataSet is created.
type DataSet struct {
	// Dir is the directory the metrics were read from.
	Dir string

	// Columns lists the tracked columns in the order they were
	// requested.
	Columns []runfmt.Column

	series map[runfmt.Column]Series
}

// NewDataSet returns an empty DataSet tracking cols. It fails if a
// column is unknown or repeated.
func NewDataSet(dir string, cols []runfmt.Column) (*DataSet, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns requested")
	}
	ds := &DataSet{Dir: dir, series: make(map[runfmt.Column]Series, len(cols))}
	for _, c := range cols {
		if !c.Valid() {
			return nil, fmt.Errorf("%w %v", runfmt.ErrUnknownColumn, c)
		}
		if _, ok := ds.series[c]; ok {
			return nil, fmt.Errorf("column %q requested twice", c)
		}
		ds.series[c] = nil
		ds.Columns = append(ds.Columns, c)
	}
	return ds, nil
}

// Has reports whether ds tracks c.
func (ds *DataSet) Has(c runfmt.Column) bool {
	_, ok := ds.series[c]
	return ok
}

// Series returns the metrics of column c.
func (ds *DataSet) Series(c runfmt.Column) (Series, error) {
	s, ok := ds.series[c]
	if !ok {
		return nil, fmt.Errorf("%s: column %q not tracked", ds.Dir, c)
	}
	return s, nil
}

// Append adds m to the Series of column c.
func (ds *DataSet) Append(c runfmt.Column, m Metric) error {
	s, ok := ds.series[c]
	if !ok {
		return fmt.Errorf("%s: column %q not tracked", ds.Dir, c)
	}
	ds.series[c] = append(s, m)
	return nil
}

// Len returns the number of timing files aggregated into ds.
func (ds *DataSet) Len() int {
	if len(ds.Columns) == 0 {
		return 0
	}
	return len(ds.series[ds.Columns[0]])
}
