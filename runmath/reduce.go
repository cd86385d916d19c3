// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runmath reduces repeated timing measurements to a single
// robust estimate and derives speedup and efficiency from them.
package runmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// Fit fits a normal distribution to xs by maximum likelihood and
// returns its mean and standard deviation. The standard deviation is
// the population one (divided by n, not n-1).
func Fit(xs []float64) (mu, sigma float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.PopMeanStdDev(xs, nil)
}

// A Summary describes how a set of repeated measurements was reduced.
type Summary struct {
	N    int // number of measurements
	Kept int // measurements strictly within one standard deviation

	// Mean and StdDev are the parameters of the fitted normal
	// distribution.
	Mean, StdDev float64

	// Center is the reduced value: the mean of the kept
	// measurements, or Mean if none was kept.
	Center float64
}

func (s Summary) String() string {
	return fmt.Sprintf("mean=%g std=%g kept=%d/%d center=%g", s.Mean, s.StdDev, s.Kept, s.N, s.Center)
}

// Summarize reduces xs and reports the details. xs is not modified.
func Summarize(xs []float64) Summary {
	sum := Summary{N: len(xs)}
	if len(xs) == 0 {
		sum.Mean, sum.StdDev, sum.Center = math.NaN(), math.NaN(), math.NaN()
		return sum
	}

	// A constant column has nothing to trim, and summing it could
	// only add rounding error.
	if lo, hi := stats.Bounds(xs); lo == hi {
		sum.Kept = len(xs)
		sum.Mean, sum.Center = lo, lo
		return sum
	}

	sum.Mean, sum.StdDev = Fit(xs)
	lo, hi := sum.Mean-sum.StdDev, sum.Mean+sum.StdDev
	kept := make([]float64, 0, len(xs))
	for _, x := range xs {
		if lo < x && x < hi {
			kept = append(kept, x)
		}
	}
	sum.Kept = len(kept)
	if len(kept) == 0 {
		sum.Center = sum.Mean
	} else {
		sum.Center = stats.Mean(kept)
	}
	return sum
}

// Reduce returns a robust central estimate of xs: the mean of the
// values lying strictly within one standard deviation of the fitted
// mean. If no value does, it returns the fitted mean. Reduce is
// deterministic for a given order of xs and does not modify it.
func Reduce(xs []float64) float64 {
	return Summarize(xs).Center
}
