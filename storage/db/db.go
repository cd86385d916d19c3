// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores the reduced metrics of sweep reports in a SQL
// database.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/benbjohnson/clock"
	uuid "github.com/satori/go.uuid"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/runproc"
	"github.com/mpisort/sortperf/runstat"
)

// DB is a high-level interface to a result database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql   *sql.DB // underlying database connection
	clock clock.Clock

	// prepared statements
	insertRun    *sql.Stmt
	insertMetric *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db, clock: clock.New()}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID VARCHAR(36) PRIMARY KEY,
	Started BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS Metrics (
	RunID VARCHAR(36) NOT NULL,
	Seq BIGINT NOT NULL,
	Dir VARCHAR(1024) NOT NULL,
	ColumnName VARCHAR(64) NOT NULL,
	Label VARCHAR(255) NOT NULL,
	Kind INTEGER NOT NULL,
	Workers INTEGER NOT NULL,
	N INTEGER NOT NULL,
	Value DOUBLE NOT NULL,
	PRIMARY KEY (RunID, Seq),
{{if not .sqlite3}}
	INDEX (Dir(100), ColumnName),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS MetricsDirColumn ON Metrics(Dir, ColumnName);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(RunID, Started) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertMetric, err = db.sql.Prepare("INSERT INTO Metrics(RunID, Seq, Dir, ColumnName, Label, Kind, Workers, N, Value) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Run is one report invocation. All metrics stored through a Run
// share its ID.
type Run struct {
	ID      string
	Started time.Time

	// seq is the sequence number of the next metric to insert.
	seq int64
	db  *DB
}

// NewRun records the start of a new report run.
func (db *DB) NewRun(ctx context.Context) (*Run, error) {
	r := &Run{
		ID:      uuid.NewV4().String(),
		Started: db.clock.Now().UTC().Truncate(time.Second),
		db:      db,
	}
	if _, err := db.insertRun.ExecContext(ctx, r.ID, r.Started.Unix()); err != nil {
		return nil, err
	}
	return r, nil
}

// InsertDataSet stores every metric of ds in a single transaction.
func (r *Run) InsertDataSet(ctx context.Context, ds *runstat.DataSet) (err error) {
	for _, c := range ds.Columns {
		s, err := ds.Series(c)
		if err != nil {
			return err
		}
		for _, m := range s {
			if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
				return fmt.Errorf("%s: %s of %s is %v, not a finite time", ds.Dir, c, m.Label, m.Value)
			}
		}
	}
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	seq := r.seq
	defer func() {
		if err != nil {
			tx.Rollback()
		} else if err = tx.Commit(); err == nil {
			r.seq = seq
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertMetric)
	for _, c := range ds.Columns {
		s, err := ds.Series(c)
		if err != nil {
			return err
		}
		for _, m := range s {
			if _, err := stmt.ExecContext(ctx, r.ID, seq, ds.Dir, c.String(), m.Label, int(m.Role.Kind), m.Role.Workers, m.N, m.Value); err != nil {
				return err
			}
			seq++
		}
	}
	return nil
}

// A StoredMetric is a metric read back from the database.
type StoredMetric struct {
	Dir    string
	Column runfmt.Column
	runstat.Metric
}

// Metrics returns the metrics stored by run runID in insertion
// order.
func (db *DB) Metrics(ctx context.Context, runID string) ([]StoredMetric, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Dir, ColumnName, Label, Kind, Workers, N, Value FROM Metrics WHERE RunID = ? ORDER BY Seq", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StoredMetric
	for rows.Next() {
		var (
			m    StoredMetric
			col  string
			kind int
		)
		if err := rows.Scan(&m.Dir, &col, &m.Label, &kind, &m.Role.Workers, &m.N, &m.Value); err != nil {
			return nil, err
		}
		if m.Column, err = runfmt.ParseColumn(col); err != nil {
			return nil, err
		}
		m.Role.Kind = runproc.Kind(kind)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Runs returns the IDs of all stored runs, oldest first.
func (db *DB) Runs(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID FROM Runs ORDER BY Started, RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountRuns returns the number of stored runs.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertMetric} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
