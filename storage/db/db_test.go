// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/runproc"
	"github.com/mpisort/sortperf/runstat"
	. "github.com/mpisort/sortperf/storage/db"
	"github.com/mpisort/sortperf/storage/db/dbtest"
)

func dataSet(t *testing.T, dir string) *runstat.DataSet {
	t.Helper()
	ds, err := runstat.NewDataSet(dir, []runfmt.Column{runfmt.MergeTime, runfmt.ReadTime})
	if err != nil {
		t.Fatal(err)
	}
	add := func(c runfmt.Column, label string, role runproc.Role, v float64) {
		if err := ds.Append(c, runstat.Metric{Label: label, Role: role, N: 100, Value: v}); err != nil {
			t.Fatal(err)
		}
	}
	par := runproc.Role{Kind: runproc.Parallel, Workers: 2}
	ser := runproc.Role{Kind: runproc.Serial}
	add(runfmt.MergeTime, "mpi_2_16.csv", par, 2.5)
	add(runfmt.MergeTime, "serial_16.csv", ser, 4.75)
	add(runfmt.ReadTime, "mpi_2_16.csv", par, 0.125)
	add(runfmt.ReadTime, "serial_16.csv", ser, 0.25)
	return ds
}

func TestNewRun(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	// A new mock clock starts at the Unix epoch.
	mock := clock.NewMock()
	mock.Add(24*time.Hour + 500*time.Nanosecond)
	SetClock(db, mock)

	r1, err := db.NewRun(ctx)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	mock.Add(time.Hour)
	r2, err := db.NewRun(ctx)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if r1.ID == r2.ID {
		t.Errorf("runs share ID %q", r1.ID)
	}
	if want := time.Unix(86400, 0).UTC(); !r1.Started.Equal(want) {
		t.Errorf("Started = %v, want %v", r1.Started, want)
	}

	n, err := db.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountRuns = %d, want 2", n)
	}
	ids, err := db.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != r1.ID || ids[1] != r2.ID {
		t.Errorf("Runs = %v, want [%s %s]", ids, r1.ID, r2.ID)
	}
}

func TestInsertDataSet(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	r, err := db.NewRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{"Case_1/version_0/size_16", "Case_1/version_0/size_18"} {
		if err := r.InsertDataSet(ctx, dataSet(t, dir)); err != nil {
			t.Fatalf("InsertDataSet: %v", err)
		}
	}

	ms, err := db.Metrics(ctx, r.ID)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if len(ms) != 8 {
		t.Fatalf("got %d metrics, want 8", len(ms))
	}
	first := ms[0]
	if first.Dir != "Case_1/version_0/size_16" || first.Column != runfmt.MergeTime || first.Label != "mpi_2_16.csv" ||
		first.Role != (runproc.Role{Kind: runproc.Parallel, Workers: 2}) || first.N != 100 || first.Value != 2.5 {
		t.Errorf("first metric = %+v", first)
	}
	if m := ms[3]; m.Column != runfmt.ReadTime || !m.Role.IsSerial() || m.Value != 0.25 {
		t.Errorf("fourth metric = %+v", m)
	}
	if ms[7].Dir != "Case_1/version_0/size_18" {
		t.Errorf("last metric dir = %q", ms[7].Dir)
	}

	other, err := db.Metrics(ctx, "no-such-run")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("unknown run has %d metrics", len(other))
	}
}

func TestInsertDataSetUnknownRun(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	r, err := db.NewRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DBSQL(db).Exec("DELETE FROM Runs"); err != nil {
		t.Fatal(err)
	}
	if err := r.InsertDataSet(ctx, dataSet(t, "size_16")); err == nil {
		t.Error("InsertDataSet for a deleted run succeeded")
	}
	ms, err := db.Metrics(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 0 {
		t.Errorf("rolled back insert left %d metrics", len(ms))
	}
}

func TestInsertDataSetNonFinite(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	r, err := db.NewRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	ds := dataSet(t, "size_16")
	s, err := ds.Series(runfmt.ReadTime)
	if err != nil {
		t.Fatal(err)
	}
	s[1].Value = math.NaN()

	err = r.InsertDataSet(ctx, ds)
	if err == nil || !strings.Contains(err.Error(), "not a finite time") {
		t.Fatalf("InsertDataSet with a NaN metric: got %v, want finite time error", err)
	}
	ms, err := db.Metrics(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 0 {
		t.Errorf("rejected insert left %d metrics", len(ms))
	}
}
