// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mpisort/sortperf/report"
	"github.com/mpisort/sortperf/sweep"
)

// Measurement is the InfluxDB measurement rows are written to.
const Measurement = "sortperf"

// A PointWriter writes points synchronously. The blocking write API
// of the InfluxDB client satisfies it.
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// Influx writes report rows to InfluxDB 2.
type Influx struct {
	w     PointWriter
	close func()
}

// NewInflux connects to the InfluxDB server at url and writes to
// bucket of org.
func NewInflux(url, token, org, bucket string) *Influx {
	client := influxdb2.NewClient(url, token)
	return &Influx{w: client.WriteAPIBlocking(org, bucket), close: client.Close}
}

// NewInfluxWriter returns an Influx writing through w.
func NewInfluxWriter(w PointWriter) *Influx {
	return &Influx{w: w}
}

// Points returns one point per row of t, stamped with ts. Directories
// that follow the sweep layout are tagged with their coordinates.
func Points(t *report.Table, ts time.Time) []*write.Point {
	tags := map[string]string{
		"dir":    t.Dir,
		"target": t.TargetName(),
	}
	if p, ok := sweep.ParsePoint(t.Dir); ok {
		tags["case"] = strconv.Itoa(p.Case)
		tags["version"] = strconv.Itoa(p.Version)
		tags["size"] = strconv.Itoa(p.Size)
	} else {
		tags["size"] = filepath.Base(t.Dir)
	}

	pts := make([]*write.Point, 0, len(t.Rows))
	for _, r := range t.Rows {
		rowTags := make(map[string]string, len(tags)+2)
		for k, v := range tags {
			rowTags[k] = v
		}
		rowTags["role"] = r.Role.String()
		rowTags["processes"] = strconv.Itoa(r.Processes)

		fields := map[string]interface{}{
			"speedup":    r.Speedup,
			"efficiency": r.Efficiency,
		}
		for i, c := range t.Columns {
			fields[c.String()] = r.Values[i]
		}
		pts = append(pts, influxdb2.NewPoint(Measurement, rowTags, fields, ts))
	}
	return pts
}

// Write writes the rows of t.
func (x *Influx) Write(ctx context.Context, t *report.Table, ts time.Time) error {
	pts := Points(t, ts)
	if len(pts) == 0 {
		return nil
	}
	return x.w.WritePoint(ctx, pts...)
}

// Close releases the client's resources.
func (x *Influx) Close() {
	if x.close != nil {
		x.close()
	}
}
