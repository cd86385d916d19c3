// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import (
	"fmt"
	"regexp"
)

// NotFound is returned by BaselineIndex when no metric is the
// baseline.
const NotFound = -1

// Split separates s into the baseline value and the values of the
// other metrics, in order. The baseline is the metric whose label
// matches baseline; if none does, the baseline value is 0.
func Split(s Series, baseline *regexp.Regexp) (float64, []float64) {
	base, par := SplitMetrics(s, baseline)
	parallel := par.Values()
	if base == nil {
		return 0, parallel
	}
	return base.Value, parallel
}

// SplitMetrics is like Split but returns the metrics themselves. The
// baseline is nil if no label matches.
func SplitMetrics(s Series, baseline *regexp.Regexp) (*Metric, Series) {
	var base *Metric
	parallel := make(Series, 0, len(s))
	for i := range s {
		if baseline.MatchString(s[i].Label) {
			base = &s[i]
		} else {
			parallel = append(parallel, s[i])
		}
	}
	return base, parallel
}

// BaselineIndex returns the index of the first metric in s whose
// label matches baseline, or NotFound.
func BaselineIndex(s Series, baseline *regexp.Regexp) int {
	for i, m := range s {
		if baseline.MatchString(m.Label) {
			return i
		}
	}
	return NotFound
}

// Sum returns the pointwise sum of target and summand. Labels and
// roles are taken from target.
func Sum(target, summand Series) (Series, error) {
	if len(target) != len(summand) {
		return nil, fmt.Errorf("cannot sum series of lengths %d and %d", len(target), len(summand))
	}
	out := make(Series, len(target))
	for i, m := range target {
		m.Value += summand[i].Value
		out[i] = m
	}
	return out, nil
}
