// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns the reduced metrics of a sweep directory into
// speedup tables and charts.
package report

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/runmath"
	"github.com/mpisort/sortperf/runproc"
	"github.com/mpisort/sortperf/runstat"
)

// A Table is the speedup table of one sweep directory.
type Table struct {
	// Dir is the directory the metrics came from.
	Dir string

	// TargetColumn is the column speedup is computed from. If
	// Summand is not runfmt.NoColumn, its values were added to
	// the target before splitting.
	TargetColumn, Summand runfmt.Column

	// Columns are the timing columns shown in every row.
	Columns []runfmt.Column

	// Target is the series speedup is computed from, after
	// summation.
	Target runstat.Series

	// Baseline is the target value of the serial run, or 0 if
	// there is none.
	Baseline float64

	// Rows holds the serial row, if any, followed by one row per
	// parallel run in file order.
	Rows []Row
}

// A Row is one configuration of a sweep directory.
type Row struct {
	Role      runproc.Role
	Label     string // timing file name
	Processes int    // 1 for the serial run

	// Values are the reduced values of Table.Columns.
	Values []float64

	Speedup, Efficiency float64
}

// A Composer builds Tables. The zero Composer uses the default
// baseline pattern.
type Composer struct {
	Baseline *regexp.Regexp
}

// ComposeTable builds the table of ds with the default baseline
// pattern. See Composer.Compose.
func ComposeTable(ds *runstat.DataSet, target, summand runfmt.Column) (*Table, error) {
	var c Composer
	return c.Compose(ds, target, summand)
}

// Compose builds the table of ds. If summand is not runfmt.NoColumn,
// the target series is replaced by its pointwise sum with the
// summand series before it is split. Speedup and efficiency of each
// parallel run are computed against the baseline with the process
// count taken from the run's file name.
func (c *Composer) Compose(ds *runstat.DataSet, target, summand runfmt.Column) (*Table, error) {
	baseline := c.Baseline
	if baseline == nil {
		baseline = runproc.DefaultPatterns().Baseline
	}

	t := &Table{
		Dir:          ds.Dir,
		TargetColumn: target,
		Summand:      summand,
		Columns:      runfmt.Schema(ds.Columns).Timings(),
	}
	if !runfmt.Schema(t.Columns).Has(target) {
		return nil, fmt.Errorf("%s: target %q is not a tracked timing column", ds.Dir, target)
	}
	series, err := ds.Series(target)
	if err != nil {
		return nil, err
	}
	if summand != runfmt.NoColumn {
		if !runfmt.Schema(t.Columns).Has(summand) {
			return nil, fmt.Errorf("%s: summand %q is not a tracked timing column", ds.Dir, summand)
		}
		extra, err := ds.Series(summand)
		if err != nil {
			return nil, err
		}
		if series, err = runstat.Sum(series, extra); err != nil {
			return nil, fmt.Errorf("%s: %w", ds.Dir, err)
		}
	}
	t.Target = series

	cols := make([]runstat.Series, len(t.Columns))
	for i, col := range t.Columns {
		if cols[i], err = ds.Series(col); err != nil {
			return nil, err
		}
		if len(cols[i]) != len(series) {
			return nil, fmt.Errorf("%s: column %s has %d metrics, target has %d", ds.Dir, col, len(cols[i]), len(series))
		}
	}
	row := func(i int) Row {
		r := Row{Role: series[i].Role, Label: series[i].Label, Values: make([]float64, len(cols))}
		for j, s := range cols {
			r.Values[j] = s[i].Value
		}
		return r
	}

	base := runstat.NotFound
	for i, m := range series {
		if baseline.MatchString(m.Label) {
			base = i
		}
	}
	if base != runstat.NotFound {
		t.Baseline = series[base].Value
		r := row(base)
		r.Processes = 1
		r.Speedup, r.Efficiency = 1, 1
		t.Rows = append(t.Rows, r)
	}
	for i, m := range series {
		if baseline.MatchString(m.Label) {
			continue
		}
		if m.Role.Workers < 1 {
			return nil, fmt.Errorf("%s: cannot tell the process count of %s", ds.Dir, m.Label)
		}
		r := row(i)
		r.Processes = m.Role.Workers
		r.Speedup, r.Efficiency = runmath.Ratio(t.Baseline, m.Value, m.Role.Workers)
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}

// Name returns the base name of the table's directory, e.g. "size_16".
func (t *Table) Name() string {
	return filepath.Base(t.Dir)
}

// TargetName names the target of t, e.g. "merge_time" or
// "merge_time+read_time".
func (t *Table) TargetName() string {
	if t.Summand == runfmt.NoColumn {
		return t.TargetColumn.String()
	}
	return t.TargetColumn.String() + "+" + t.Summand.String()
}

// Title returns the header title of column c, e.g. "Read time".
func Title(c runfmt.Column) string {
	s := strings.ReplaceAll(c.String(), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Header returns the header row of t.
func (t *Table) Header() []string {
	h := []string{"Version", "Processes"}
	for _, c := range t.Columns {
		h = append(h, Title(c))
	}
	return append(h, "Speedup", "Efficiency")
}

// Cells returns the header followed by one formatted row per Row.
// Numbers have five decimals; the serial row reports speedup and
// efficiency as 1.
func (t *Table) Cells() [][]string {
	cells := [][]string{t.Header()}
	for _, r := range t.Rows {
		label := "Parallel"
		if r.Role.IsSerial() {
			label = "Serial"
		}
		row := []string{label, fmt.Sprint(r.Processes)}
		for _, v := range r.Values {
			row = append(row, fmt.Sprintf("%.5f", v))
		}
		if r.Role.IsSerial() {
			row = append(row, "1", "1")
		} else {
			row = append(row, fmt.Sprintf("%.5f", r.Speedup), fmt.Sprintf("%.5f", r.Efficiency))
		}
		cells = append(cells, row)
	}
	return cells
}

// Sweep returns the process counts and speedups of t's parallel
// runs, preceded by the single-worker point (1, 1).
func (t *Table) Sweep() ([]int, []float64) {
	s0, _ := runmath.FirstPoint(t.Baseline)
	procs := []int{runmath.SentinelWorkers}
	speedups := []float64{s0}
	for _, r := range t.Rows {
		if r.Role.IsSerial() {
			continue
		}
		procs = append(procs, r.Processes)
		speedups = append(speedups, r.Speedup)
	}
	return procs, speedups
}

// TableFile returns the name of the table file of t with the given
// extension, e.g. "size_16_table_merge_time.csv".
func (t *Table) TableFile(ext string) string {
	return t.Name() + "_table_" + t.TargetName() + "." + ext
}

// ChartFile returns the name of the chart file of t, e.g.
// "size_16_merge_time.png".
func (t *Table) ChartFile() string {
	return t.Name() + "_" + t.TargetName() + ".png"
}
