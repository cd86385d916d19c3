// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import "fmt"

// A Point is one point of a speedup chart.
type Point struct {
	Processes int
	Speedup   float64
}

// ComposePlotSeries pairs each process count with its speedup.
func ComposePlotSeries(procs []int, speedups []float64) ([]Point, error) {
	if len(procs) != len(speedups) {
		return nil, fmt.Errorf("%d process counts but %d speedups", len(procs), len(speedups))
	}
	pts := make([]Point, len(procs))
	for i, p := range procs {
		pts[i] = Point{Processes: p, Speedup: speedups[i]}
	}
	return pts, nil
}

// Points returns the chart points of t. See Table.Sweep.
func (t *Table) Points() []Point {
	pts, err := ComposePlotSeries(t.Sweep())
	if err != nil {
		panic(err) // Sweep returns equal lengths
	}
	return pts
}
