// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runmath

import (
	"math"
	"reflect"
	"testing"
)

func TestReduceConstant(t *testing.T) {
	for _, v := range []float64{0, 0.1, 1.0 / 3, 12.345678, 1e-9} {
		xs := []float64{v, v, v, v, v, v, v}
		if got := Reduce(xs); got != v {
			t.Errorf("Reduce(%v x7) = %v, want exactly %v", v, got, v)
		}
	}
}

func TestReduceOutlier(t *testing.T) {
	xs := []float64{10, 10, 10, 10, 1000}
	got := Reduce(xs)
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("Reduce(%v) = %v, want 10", xs, got)
	}
}

func TestReduceTrims(t *testing.T) {
	// μ = 3, σ = sqrt(2); only 2, 3 and 4 lie within (1.59, 4.41).
	xs := []float64{5, 1, 4, 2, 3}
	sum := Summarize(xs)
	if sum.N != 5 || sum.Kept != 3 {
		t.Errorf("Summarize(%v) kept %d of %d, want 3 of 5", xs, sum.Kept, sum.N)
	}
	if sum.Mean != 3 || math.Abs(sum.StdDev-math.Sqrt2) > 1e-12 {
		t.Errorf("Summarize(%v) fit mean=%v std=%v, want 3, √2", xs, sum.Mean, sum.StdDev)
	}
	if sum.Center != 3 {
		t.Errorf("Summarize(%v).Center = %v, want 3", xs, sum.Center)
	}
	if want := []float64{5, 1, 4, 2, 3}; !reflect.DeepEqual(xs, want) {
		t.Errorf("Summarize modified its input: %v", xs)
	}
}

func TestReduceFallback(t *testing.T) {
	// Two distinct values sit exactly one standard deviation from
	// the mean, so neither is strictly inside the interval.
	xs := []float64{1, 3}
	sum := Summarize(xs)
	if sum.Kept != 0 {
		t.Errorf("Summarize(%v) kept %d, want 0", xs, sum.Kept)
	}
	if sum.Center != 2 {
		t.Errorf("Reduce(%v) = %v, want fitted mean 2", xs, sum.Center)
	}
}

func TestReduceDeterministic(t *testing.T) {
	xs := []float64{0.101, 0.103, 0.099, 0.2, 0.098, 0.102, 0.1, 0.097}
	first := Reduce(xs)
	for i := 0; i < 10; i++ {
		if got := Reduce(xs); math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("Reduce is not deterministic: %v then %v", first, got)
		}
	}
	if first > 0.11 {
		t.Errorf("Reduce(%v) = %v, outlier 0.2 not trimmed", xs, first)
	}
}

func TestReduceEmpty(t *testing.T) {
	if got := Reduce(nil); !math.IsNaN(got) {
		t.Errorf("Reduce(nil) = %v, want NaN", got)
	}
}
