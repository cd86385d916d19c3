// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sortperf measures an MPI merge sort against its serial baseline and
// reports speedup and efficiency.
//
// Usage:
//
//	sortperf [-config sweep.yaml] [-root dir] [-verbose n] command [options]
//
// The commands are:
//
//	gen      write the random input files
//	measure  run every configuration of the sweep and record its timings
//	report   reduce the timings and write tables and charts
//
// A sweep is laid out as
//
//	<root>/Case_<k>/version_<v>/size_<s>/serial_<s>.csv
//	<root>/Case_<k>/version_<v>/size_<s>/mpi_<p>_<s>.csv
//
// with one line per repetition. The report command reduces each file
// column by column: it fits a normal distribution, drops the
// repetitions outside one standard deviation of the mean and averages
// the rest. For every size directory with a serial baseline and at
// least one parallel run it writes
//
//	size_<s>_table_<target>.csv   ';'-separated table
//	size_<s>_table_<target>.txt   text table
//	size_<s>_table_<target>.html  HTML table (-html)
//	size_<s>_<target>.png         speedup chart
//
// where target is the column speedup is computed from, merge_time by
// default. With -summand, the summand column is added to the target
// first.
//
// Reduced metrics can also be stored in a SQL database (-db), exposed
// as Prometheus gauges (-prom), written to InfluxDB (-influx) and the
// artifacts uploaded to Google Cloud Storage (-gcs).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/mpisort/sortperf/inputgen"
	"github.com/mpisort/sortperf/runner"
	"github.com/mpisort/sortperf/sweep"
)

var exit = os.Exit // replaced during testing

// cfg is the sweep configuration, loaded before any command runs.
var cfg sweep.Config

var log = logrus.StandardLogger()

var genCommand = cli.Command{
	Name:  "gen",
	Usage: "write the random input files",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "dir",
			Usage: "write input files to `dir` (default from configuration)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "random `seed`",
		},
	},
	Action: func(c *cli.Context) error {
		dir := c.String("dir")
		if dir == "" {
			dir = cfg.Inputs
		}
		paths, err := inputgen.WriteFiles(dir, cfg.InputSizes, c.Int64("seed"))
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.WithField("file", p).Info("wrote input file")
		}
		return nil
	},
}

var measureCommand = cli.Command{
	Name:  "measure",
	Usage: "run every configuration of the sweep and record its timings",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "reps",
			Usage: "run each configuration `n` times (default from configuration)",
		},
		cli.StringFlag{
			Name:  "time",
			Value: "time",
			Usage: "GNU time `executable`",
		},
	},
	Action: func(c *cli.Context) error {
		reps := c.Int("reps")
		if reps <= 0 {
			reps = cfg.Repetitions
		}
		r := runner.New(cfg, log)
		r.Time = c.String("time")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return r.Run(ctx, runner.Plan(cfg), reps)
	},
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sortperf"
	app.Usage = "measure and report the speedup of an MPI merge sort"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "load the sweep configuration from YAML `file`",
		},
		cli.StringFlag{
			Name:  "root",
			Usage: "measurement `dir` (default from configuration)",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: runtime.NumCPU(),
			Usage: "aggregate `n` directories concurrently",
		},
		cli.IntFlag{
			Name:  "verbose",
			Usage: "log `level`: 0 progress, 1 per file, 2 per column",
		},
	}
	app.Commands = []cli.Command{
		genCommand,
		measureCommand,
		reportCommand,
	}
	app.Before = func(c *cli.Context) error {
		switch v := c.Int("verbose"); {
		case v >= 2:
			log.SetLevel(logrus.TraceLevel)
		case v == 1:
			log.SetLevel(logrus.DebugLevel)
		default:
			log.SetLevel(logrus.InfoLevel)
		}
		var err error
		if path := c.String("config"); path != "" {
			cfg, err = sweep.Load(path)
		} else {
			cfg = sweep.Default()
		}
		if err != nil {
			return err
		}
		if root := c.String("root"); root != "" {
			cfg.Root = root
		}
		if c.IsSet("workers") {
			cfg.Workers = c.Int("workers")
		}
		return cfg.Validate()
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sortperf: %v\n", err)
		exit(1)
	}
}
