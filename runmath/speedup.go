// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runmath

// The first point of a process-count sweep stands for "no
// parallelism". Callers pass SentinelTime as the parallel time and
// SentinelWorkers as the worker count for that point.
const (
	SentinelWorkers = 1
	SentinelTime    = 1.0
)

// Compute returns the speedup of a parallel run over the baseline and
// its efficiency, as Ratio does.
//
// Called with the sentinel pair (SentinelTime, SentinelWorkers) it
// describes the first sweep point instead, reporting a neutral
// speedup of 1 and an efficiency of baseline/1. Measured runs should
// use Ratio, which has no such case.
func Compute(baseline, parallel float64, workers int) (speedup, efficiency float64) {
	if workers == SentinelWorkers && parallel == SentinelTime {
		return FirstPoint(baseline)
	}
	return Ratio(baseline, parallel, workers)
}

// FirstPoint returns the speedup and efficiency of the first point of
// a process-count sweep.
func FirstPoint(baseline float64) (speedup, efficiency float64) {
	return 1, baseline / SentinelTime
}

// Ratio returns
//
//	speedup    = baseline / parallel
//	efficiency = speedup / workers
//
// Division by a zero parallel time is not special-cased: the result
// is an infinity or NaN.
func Ratio(baseline, parallel float64, workers int) (speedup, efficiency float64) {
	speedup = baseline / parallel
	efficiency = speedup / float64(workers)
	return speedup, efficiency
}
