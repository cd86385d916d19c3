// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner runs the sorting programs of a sweep under time(1)
// and records one timing line per repetition.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/sweep"
)

// TimeFormat makes time(1) append elapsed, user and system seconds
// to the program's own timing line.
const TimeFormat = ";%e;%U;%S"

// A Job is one configuration of a sweep: a program, its arguments and
// the timing file its repetitions go to.
type Job struct {
	Case    int // case directory number, from 1
	Version int
	Size    int // log2 of the number of elements
	Procs   int // 0 runs the serial program

	Input string // input file
	Out   string // timing file
}

// Parallel reports whether j runs the MPI program.
func (j Job) Parallel() bool {
	return j.Procs != 0
}

func (j Job) String() string {
	return fmt.Sprintf("case %d version %d size 2^%d procs %d", j.Case, j.Version, j.Size, j.Procs)
}

// Plan returns the jobs of the sweep c, case by case, then by
// version, size and process count.
func Plan(c sweep.Config) []Job {
	var jobs []Job
	for k := 1; k <= c.Cases; k++ {
		for _, v := range c.Versions {
			for _, s := range c.InputSizes {
				for _, p := range c.ProcessCounts {
					jobs = append(jobs, Job{
						Case:    k,
						Version: v,
						Size:    s,
						Procs:   p,
						Input:   filepath.Join(c.Inputs, sweep.InputName(s)),
						Out:     filepath.Join(sweep.SizeDir(c.Root, k, v, s), sweep.FileName(p, s)),
					})
				}
			}
		}
	}
	return jobs
}

// A Runner measures jobs.
type Runner struct {
	// Time is the time(1) executable.
	Time string
	// Serial and MPI are the programs under test. MPIRun launches
	// MPI.
	Serial, MPI, MPIRun string

	// Log receives progress. If nil, nothing is logged.
	Log logrus.FieldLogger

	// exec runs a command to completion and returns its combined
	// output.
	exec func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New returns a Runner for the programs of c.
func New(c sweep.Config, log logrus.FieldLogger) *Runner {
	return &Runner{
		Time:   "time",
		Serial: c.Serial,
		MPI:    c.MPI,
		MPIRun: c.MPIRun,
		Log:    log,
		exec:   combinedOutput,
	}
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Command returns the command line of j. The MPI program receives the
// case as a zero-based index.
func (r *Runner) Command(j Job) []string {
	n := strconv.Itoa(1 << uint(j.Size))
	argv := []string{r.Time, "-f", TimeFormat}
	if !j.Parallel() {
		return append(argv, r.Serial, j.Input, n)
	}
	return append(argv, r.MPIRun, "-np", strconv.Itoa(j.Procs), r.MPI, j.Input, n,
		strconv.Itoa(j.Version), strconv.Itoa(j.Case-1))
}

// Measure runs j once and parses its timing line. A failed run is
// returned as an error; it is not retried.
func (r *Runner) Measure(ctx context.Context, j Job) (*runfmt.Sample, error) {
	argv := r.Command(j)
	out, err := r.exec(ctx, argv[0], argv[1:]...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", j, err, strings.TrimSpace(string(out)))
	}
	s, err := runfmt.Parse(strings.ReplaceAll(string(out), "\n", ""), j.Parallel())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", j, err)
	}
	return s, nil
}

// Run measures every job reps times, writing each job's timing file
// with the canonical header. Directories are created as needed and
// existing timing files are replaced.
func (r *Runner) Run(ctx context.Context, jobs []Job, reps int) error {
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		log := r.log().WithFields(logrus.Fields{"job": i + 1, "of": len(jobs), "out": j.Out})
		log.Infof("measuring %s", j)
		if err := r.runJob(ctx, j, reps); err != nil {
			return err
		}
	}
	return nil
}

// runJob writes the timing file under a temporary name and moves it
// into place only once every repetition succeeded, so a failed job
// leaves any previous timing file untouched.
func (r *Runner) runJob(ctx context.Context, j Job, reps int) (err error) {
	if err := os.MkdirAll(filepath.Dir(j.Out), 0777); err != nil {
		return err
	}
	tmp := j.Out + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			err = os.Rename(tmp, j.Out)
		}
		if err != nil {
			os.Remove(tmp)
		}
	}()
	return r.measureTo(ctx, f, j, reps)
}

func (r *Runner) measureTo(ctx context.Context, w io.Writer, j Job, reps int) error {
	tw := runfmt.NewWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for rep := 0; rep < reps; rep++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := r.Measure(ctx, j)
		if err != nil {
			return err
		}
		if err := tw.Write(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) log() logrus.FieldLogger {
	if r.Log == nil {
		l := logrus.New()
		l.Out = io.Discard
		return l
	}
	return r.Log
}
