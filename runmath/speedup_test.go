// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runmath

import (
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	check := func(baseline, parallel float64, workers int, wantS, wantE float64) {
		t.Helper()
		s, e := Compute(baseline, parallel, workers)
		if s != wantS || e != wantE {
			t.Errorf("Compute(%v, %v, %v) = (%v, %v), want (%v, %v)", baseline, parallel, workers, s, e, wantS, wantE)
		}
	}
	check(10, 2, 4, 5, 1.25)
	check(8, 4, 2, 2, 1)
	check(3, 6, 16, 0.5, 0.03125)
	check(0, 2, 2, 0, 0)

	// The first sweep point.
	check(5, SentinelTime, SentinelWorkers, 1, 5)
	check(0, SentinelTime, SentinelWorkers, 1, 0)
}

func TestComputeDegenerate(t *testing.T) {
	s, e := Compute(10, 0, 4)
	if !math.IsInf(s, 1) || !math.IsInf(e, 1) {
		t.Errorf("Compute(10, 0, 4) = (%v, %v), want (+Inf, +Inf)", s, e)
	}
	s, e = Compute(0, 0, 4)
	if !math.IsNaN(s) || !math.IsNaN(e) {
		t.Errorf("Compute(0, 0, 4) = (%v, %v), want (NaN, NaN)", s, e)
	}
}

func TestRatio(t *testing.T) {
	// A measured single-process run that took exactly one second is
	// an ordinary ratio.
	s, e := Ratio(5, 1, 1)
	if s != 5 || e != 5 {
		t.Errorf("Ratio(5, 1, 1) = (%v, %v), want (5, 5)", s, e)
	}
	s, e = FirstPoint(5)
	if s != 1 || e != 5 {
		t.Errorf("FirstPoint(5) = (%v, %v), want (1, 5)", s, e)
	}
}
