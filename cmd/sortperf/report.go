// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"google.golang.org/api/option"

	"github.com/mpisort/sortperf/export"
	"github.com/mpisort/sortperf/report"
	"github.com/mpisort/sortperf/runstat"
	"github.com/mpisort/sortperf/storage/db"
	"github.com/mpisort/sortperf/sweep"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mpisort/sortperf/storage/db/sqlite3"
)

// A dbFlag names a result database as driver:dsn.
type dbFlag struct {
	Driver, DSN string
}

func (f *dbFlag) Set(value string) error {
	i := strings.Index(value, ":")
	if i <= 0 {
		return fmt.Errorf("database %q is not driver:dsn", value)
	}
	f.Driver, f.DSN = value[:i], value[i+1:]
	return nil
}

func (f *dbFlag) String() string {
	if f.Driver == "" {
		return ""
	}
	return f.Driver + ":" + f.DSN
}

// reportOptions selects the artifacts and sinks of a report run.
type reportOptions struct {
	Target, Summand string

	Text, Grid, CSV, HTML, PNG bool
	Print                      io.Writer // if non-nil, tables are printed here too

	DB   dbFlag
	Prom string

	InfluxURL, InfluxToken, InfluxOrg, InfluxBucket string

	GCSBucket, GCSPrefix, GCSCredentials string
}

var reportDB dbFlag

var reportCommand = cli.Command{
	Name:  "report",
	Usage: "reduce the timings and write tables and charts",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "target", Usage: "compute speedup from `column` (default from configuration)"},
		cli.StringFlag{Name: "summand", Usage: "add `column` to the target before computing speedup"},
		cli.BoolTFlag{Name: "text", Usage: "write text tables"},
		cli.BoolTFlag{Name: "grid", Usage: "frame text tables with a grid"},
		cli.BoolTFlag{Name: "csv", Usage: "write CSV tables"},
		cli.BoolFlag{Name: "html", Usage: "write HTML tables"},
		cli.BoolTFlag{Name: "png", Usage: "write speedup charts"},
		cli.BoolFlag{Name: "print", Usage: "print tables to standard output"},
		cli.GenericFlag{Name: "db", Value: &reportDB, Usage: "store metrics in `driver:dsn`, e.g. sqlite3:results.db"},
		cli.StringFlag{Name: "prom", Usage: "write Prometheus gauges to textfile `path`"},
		cli.StringFlag{Name: "influx", Usage: "write rows to the InfluxDB server at `url`"},
		cli.StringFlag{Name: "influx-token", EnvVar: "INFLUX_TOKEN", Usage: "InfluxDB `token`"},
		cli.StringFlag{Name: "influx-org", Value: "sortperf", Usage: "InfluxDB `org`"},
		cli.StringFlag{Name: "influx-bucket", Value: "sortperf", Usage: "InfluxDB `bucket`"},
		cli.StringFlag{Name: "gcs", Usage: "upload artifacts to Cloud Storage `bucket`"},
		cli.StringFlag{Name: "gcs-prefix", Usage: "object name `prefix`"},
		cli.StringFlag{Name: "gcs-credentials", Usage: "service account credentials `file`"},
	},
	Action: func(c *cli.Context) error {
		opts := reportOptions{
			Target:         c.String("target"),
			Summand:        c.String("summand"),
			Text:           c.BoolT("text"),
			Grid:           c.BoolT("grid"),
			CSV:            c.BoolT("csv"),
			HTML:           c.Bool("html"),
			PNG:            c.BoolT("png"),
			DB:             reportDB,
			Prom:           c.String("prom"),
			InfluxURL:      c.String("influx"),
			InfluxToken:    c.String("influx-token"),
			InfluxOrg:      c.String("influx-org"),
			InfluxBucket:   c.String("influx-bucket"),
			GCSBucket:      c.String("gcs"),
			GCSPrefix:      c.String("gcs-prefix"),
			GCSCredentials: c.String("gcs-credentials"),
		}
		if c.Bool("print") {
			opts.Print = os.Stdout
		}
		return runReport(context.Background(), cfg, opts, log)
	},
}

// sinks are the optional destinations of a report run.
type sinks struct {
	db     *db.DB
	run    *db.Run
	gauges *export.Gauges
	influx *export.Influx
	bucket *export.Bucket
}

func openSinks(ctx context.Context, opts reportOptions) (s *sinks, err error) {
	s = new(sinks)
	defer func() {
		if err != nil {
			s.close()
		}
	}()
	if opts.DB.Driver != "" {
		if s.db, err = db.OpenSQL(opts.DB.Driver, opts.DB.DSN); err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if s.run, err = s.db.NewRun(ctx); err != nil {
			return nil, err
		}
	}
	if opts.Prom != "" {
		s.gauges = export.NewGauges()
	}
	if opts.InfluxURL != "" {
		s.influx = export.NewInflux(opts.InfluxURL, opts.InfluxToken, opts.InfluxOrg, opts.InfluxBucket)
	}
	if opts.GCSBucket != "" {
		var copts []option.ClientOption
		if opts.GCSCredentials != "" {
			copts = append(copts, option.WithCredentialsFile(opts.GCSCredentials))
		}
		if s.bucket, err = export.NewBucket(ctx, opts.GCSBucket, opts.GCSPrefix, copts...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *sinks) close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.influx != nil {
		s.influx.Close()
	}
	if s.bucket != nil {
		s.bucket.Close()
	}
}

// runReport reduces every size directory of the sweep c and writes
// its artifacts next to the timing files.
func runReport(ctx context.Context, c sweep.Config, opts reportOptions, log logrus.FieldLogger) error {
	if opts.Target != "" {
		c.Target = opts.Target
	}
	if opts.Summand != "" {
		c.Summand = opts.Summand
	}
	if err := c.Validate(); err != nil {
		return err
	}
	target, summand, _ := c.TargetColumns()
	patterns, _ := c.Patterns()

	dirs, err := sweep.Discover(c.Root, c)
	if err != nil {
		return err
	}
	log.WithField("dirs", len(dirs)).Info("aggregating timing files")
	sets, err := sweep.Walk(ctx, dirs, c, log)
	if err != nil {
		return err
	}

	s, err := openSinks(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close()

	composer := &report.Composer{Baseline: patterns.Baseline}
	now := time.Now()
	var artifacts []string
	for _, ds := range sets {
		tab, err := composer.Compose(ds, target, summand)
		if err != nil {
			return err
		}
		files, err := writeArtifacts(tab, opts, log)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, files...)
		log.WithFields(logrus.Fields{"dir": ds.Dir, "files": len(files)}).Info("wrote report")

		if err := s.publish(ctx, ds, tab, now); err != nil {
			return err
		}
	}

	if s.gauges != nil {
		if err := s.gauges.WriteTextfile(opts.Prom); err != nil {
			return err
		}
	}
	if s.bucket != nil {
		for _, f := range artifacts {
			name, err := s.bucket.UploadFile(ctx, c.Root, f)
			if err != nil {
				return err
			}
			log.WithField("object", name).Debug("uploaded artifact")
		}
	}
	if s.run != nil {
		log.WithField("run", s.run.ID).Info("stored metrics")
	}
	return nil
}

func (s *sinks) publish(ctx context.Context, ds *runstat.DataSet, tab *report.Table, now time.Time) error {
	if s.run != nil {
		if err := s.run.InsertDataSet(ctx, ds); err != nil {
			return fmt.Errorf("%s: %w", ds.Dir, err)
		}
	}
	if s.gauges != nil {
		s.gauges.Observe(tab)
	}
	if s.influx != nil {
		if err := s.influx.Write(ctx, tab, now); err != nil {
			return fmt.Errorf("%s: %w", ds.Dir, err)
		}
	}
	return nil
}

// writeArtifacts writes the selected tables and chart of tab into its
// directory and returns their paths. A chart that cannot be drawn,
// such as one with an infinite speedup, is skipped with a warning.
func writeArtifacts(tab *report.Table, opts reportOptions, log logrus.FieldLogger) ([]string, error) {
	var files []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(tab.Dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		files = append(files, path)
		return nil
	}
	text := func(w io.Writer) error { return tab.ToText(w, opts.Grid) }

	if opts.CSV {
		if err := write(tab.TableFile("csv"), tab.ToCSV); err != nil {
			return nil, err
		}
	}
	if opts.Text {
		if err := write(tab.TableFile("txt"), text); err != nil {
			return nil, err
		}
	}
	if opts.HTML {
		if err := write(tab.TableFile("html"), tab.ToHTML); err != nil {
			return nil, err
		}
	}
	if opts.PNG {
		var png bytes.Buffer
		if err := report.Chart(&png, tab.Name(), tab.Points()); err != nil {
			log.WithError(err).WithField("dir", tab.Dir).Warn("skipping chart")
		} else if err := write(tab.ChartFile(), func(w io.Writer) error {
			_, err := png.WriteTo(w)
			return err
		}); err != nil {
			return nil, err
		}
	}
	if opts.Print != nil {
		fmt.Fprintf(opts.Print, "%s\n", tab.Dir)
		if err := text(opts.Print); err != nil {
			return nil, err
		}
	}
	return files, nil
}
