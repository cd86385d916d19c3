// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep describes a benchmark sweep over cases, algorithm
// versions, input sizes and process counts, and walks the directory
// tree that holds its timing files.
package sweep

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/runproc"
)

// Config is the configuration of a sweep. A Config is a plain value;
// functions that take one never modify it.
type Config struct {
	// InputSizes are the log2 exponents of the input sizes.
	InputSizes []int `mapstructure:"input_sizes"`
	// ProcessCounts are the swept process counts. 0 stands for
	// the serial program.
	ProcessCounts []int `mapstructure:"process_counts"`
	// Versions are the algorithm versions of the parallel program.
	Versions []int `mapstructure:"versions"`
	// Cases is the number of local sort variants, numbered from 1.
	Cases int `mapstructure:"cases"`
	// Repetitions is the number of runs per configuration.
	Repetitions int `mapstructure:"repetitions"`

	// Naming conventions of timing files; empty selects the
	// default. See runproc.CompilePatterns.
	FilePattern     string `mapstructure:"file_pattern"`
	BaselinePattern string `mapstructure:"baseline_pattern"`
	WorkersPattern  string `mapstructure:"workers_pattern"`

	// Columns are the columns to aggregate.
	Columns []string `mapstructure:"columns"`
	// Target is the column speedup is computed from. Summand, if
	// set, is added to Target before splitting.
	Target  string `mapstructure:"target"`
	Summand string `mapstructure:"summand"`

	// Workers is the number of directories aggregated
	// concurrently.
	Workers int `mapstructure:"workers"`

	// Root is the directory holding the Case_<k> trees.
	Root string `mapstructure:"root"`
	// Inputs is the directory holding the input files.
	Inputs string `mapstructure:"inputs"`
	// Serial and MPI are the executables under test; MPIRun
	// launches the latter.
	Serial string `mapstructure:"serial"`
	MPI    string `mapstructure:"mpi"`
	MPIRun string `mapstructure:"mpirun"`
}

// Default returns the standard sweep: four input sizes from 2^16 to
// 2^20, the serial program and 2 to 16 processes, four versions, two
// cases and 100 repetitions.
func Default() Config {
	return Config{
		InputSizes:    []int{16, 18, 19, 20},
		ProcessCounts: []int{0, 2, 4, 8, 16},
		Versions:      []int{0, 1, 2, 3},
		Cases:         2,
		Repetitions:   100,
		Columns:       []string{"read_time", "local_sort_time", "merge_time", "elapsed", "user", "sys"},
		Target:        "merge_time",
		Workers:       runtime.NumCPU(),
		Root:          "measures",
		Inputs:        "data",
		Serial:        "build/executables/mergesort_serial",
		MPI:           "build/executables/mergesort_mpi",
		MPIRun:        "mpirun",
	}
}

// Load reads a YAML configuration file. Keys missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses YAML configuration data over the Default values and
// validates the result.
func Parse(data []byte) (Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}
	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every column name is known, that the target
// and summand are aggregated columns and that the patterns compile.
// It does no I/O.
func (c Config) Validate() error {
	if _, _, err := c.TargetColumns(); err != nil {
		return err
	}
	if _, err := c.Patterns(); err != nil {
		return err
	}
	if len(c.InputSizes) == 0 {
		return fmt.Errorf("no input sizes")
	}
	if len(c.ProcessCounts) == 0 {
		return fmt.Errorf("no process counts")
	}
	for _, p := range c.ProcessCounts {
		if p < 0 {
			return fmt.Errorf("negative process count %d", p)
		}
	}
	if c.Cases < 1 {
		return fmt.Errorf("cases must be at least 1, got %d", c.Cases)
	}
	if c.Repetitions < 1 {
		return fmt.Errorf("repetitions must be at least 1, got %d", c.Repetitions)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// ColumnList parses Columns.
func (c Config) ColumnList() ([]runfmt.Column, error) {
	cols, err := runfmt.ParseColumns(c.Columns)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns")
	}
	seen := make(map[runfmt.Column]bool)
	for _, col := range cols {
		if seen[col] {
			return nil, fmt.Errorf("column %q listed twice", col)
		}
		seen[col] = true
	}
	return cols, nil
}

// TargetColumns parses Target and Summand. summand is
// runfmt.NoColumn if no summand is configured. Both must be
// aggregated columns.
func (c Config) TargetColumns() (target, summand runfmt.Column, err error) {
	cols, err := c.ColumnList()
	if err != nil {
		return 0, 0, err
	}
	tracked := runfmt.Schema(cols)
	target, err = runfmt.ParseColumn(c.Target)
	if err != nil {
		return 0, 0, fmt.Errorf("target: %w", err)
	}
	if !tracked.Has(target) {
		return 0, 0, fmt.Errorf("target %q is not an aggregated column", target)
	}
	summand = runfmt.NoColumn
	if c.Summand != "" {
		summand, err = runfmt.ParseColumn(c.Summand)
		if err != nil {
			return 0, 0, fmt.Errorf("summand: %w", err)
		}
		if !tracked.Has(summand) {
			return 0, 0, fmt.Errorf("summand %q is not an aggregated column", summand)
		}
	}
	return target, summand, nil
}

// Patterns compiles the naming conventions.
func (c Config) Patterns() (*runproc.Patterns, error) {
	return runproc.CompilePatterns(c.FilePattern, c.BaselinePattern, c.WorkersPattern)
}
