// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export publishes sweep reports to monitoring and storage
// services.
package export

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mpisort/sortperf/report"
)

// Gauges holds the Prometheus gauges of a report run. Each Gauges has
// its own registry.
type Gauges struct {
	Registry *prometheus.Registry

	speedup    *prometheus.GaugeVec
	efficiency *prometheus.GaugeVec
	reduced    *prometheus.GaugeVec
}

// NewGauges returns gauges registered with a fresh registry.
func NewGauges() *Gauges {
	labels := []string{"dir", "target", "role", "processes"}
	g := &Gauges{
		Registry: prometheus.NewRegistry(),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sortperf",
			Name:      "speedup",
			Help:      "Speedup of a parallel run over the serial baseline",
		}, labels),
		efficiency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sortperf",
			Name:      "efficiency",
			Help:      "Speedup divided by the process count",
		}, labels),
		reduced: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sortperf",
			Name:      "reduced_seconds",
			Help:      "Reduced timing of a run",
		}, []string{"dir", "column", "role", "processes"}),
	}
	g.Registry.MustRegister(g.speedup, g.efficiency, g.reduced)
	return g
}

// Observe sets the gauges for every row of t.
func (g *Gauges) Observe(t *report.Table) {
	for _, r := range t.Rows {
		role, procs := r.Role.String(), strconv.Itoa(r.Processes)
		g.speedup.WithLabelValues(t.Dir, t.TargetName(), role, procs).Set(r.Speedup)
		g.efficiency.WithLabelValues(t.Dir, t.TargetName(), role, procs).Set(r.Efficiency)
		for i, c := range t.Columns {
			g.reduced.WithLabelValues(t.Dir, c.String(), role, procs).Set(r.Values[i])
		}
	}
}

// WriteTextfile writes the gauges to path in the text format read by
// the node exporter's textfile collector.
func (g *Gauges) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, g.Registry)
}
