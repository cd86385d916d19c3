// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"errors"
	"math"
	"testing"
)

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}

func sameSample(a, b *Sample) bool {
	return a.ProblemSize == b.ProblemSize && a.Workers == b.Workers &&
		sameFloat(a.ReadTime, b.ReadTime) && sameFloat(a.LocalSortTime, b.LocalSortTime) &&
		sameFloat(a.ComputeTime, b.ComputeTime) && sameFloat(a.Elapsed, b.Elapsed) &&
		sameFloat(a.User, b.User) && sameFloat(a.Sys, b.Sys)
}

func TestParse(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		line     string
		parallel bool
		want     *Sample
	}{
		{
			"16;0;0.012;0.034;0.05;0.04;0.01\n", false,
			&Sample{16, 0, 0.012, nan, 0.034, 0.05, 0.04, 0.01},
		},
		{
			// Seven fields in parallel mode take the reported
			// compute time.
			"16;4;0.012;0.034;0.05;0.04;0.01", true,
			&Sample{16, 4, 0.012, nan, 0.034, 0.05, 0.04, 0.01},
		},
		{
			// Eight fields in parallel mode derive the compute
			// time from elapsed and read time.
			"18;8;0.25;0.125;9.5;1.75;2.5;0.375\n", true,
			&Sample{18, 8, 0.25, 0.125, 1.5, 1.75, 2.5, 0.375},
		},
		{
			"18;8;0.1;0.05;0;0.3;0.5;0.2", true,
			&Sample{18, 8, 0.1, 0.05, 0.2, 0.3, 0.5, 0.2},
		},
		{
			// Stored serial records keep the reported compute
			// time.
			"20;0;0.5;0;3.25;4;3.5;0.5\n", false,
			&Sample{20, 0, 0.5, 0, 3.25, 4, 3.5, 0.5},
		},
	} {
		got, err := Parse(test.line, test.parallel)
		if err != nil {
			t.Errorf("Parse(%q, %v): %v", test.line, test.parallel, err)
			continue
		}
		if !sameSample(got, test.want) {
			t.Errorf("Parse(%q, %v):\ngot  %+v\nwant %+v", test.line, test.parallel, got, test.want)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, line := range []string{
		"16;0;0.1;0.2;0.3",
		"",
		"16;0;0.1;0.2;0.3;0.4;0.5;0.6;0.7",
		"16;0;x;0.2;0.3;0.4;0.5",
		"sixteen;0;0.1;0.2;0.3;0.4;0.5",
	} {
		for _, parallel := range []bool{false, true} {
			_, err := Parse(line, parallel)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("Parse(%q, %v): got error %v, want malformed record", line, parallel, err)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, test := range []struct {
		line     string
		parallel bool
	}{
		{"16;0;0.012;0.034;0.05;0.04;0.01", false},
		{"18;8;0.251234;0.125;9.5;1.7512345678;2.5;0.375", true},
		{"19;16;0.1;0.05;0;0.30000000000000004;0.5;0.2", true},
		{"20;0;0.5;0;3.25;4;3.5;0.5", false},
		{"20;2;1e-07;2e-06;3e-05;0.0004;0.005;0.06", true},
	} {
		first, err := Parse(test.line, test.parallel)
		if err != nil {
			t.Fatalf("Parse(%q): %v", test.line, err)
		}
		text := first.Format()
		second, err := Parse(text, test.parallel)
		if err != nil {
			t.Fatalf("Parse(Format(%q)) = Parse(%q): %v", test.line, text, err)
		}
		if math.IsNaN(first.LocalSortTime) {
			if second.LocalSortTime != 0 {
				t.Errorf("%q: NaN local sort time formatted as %v, want 0", test.line, second.LocalSortTime)
			}
			second.LocalSortTime = first.LocalSortTime
		}
		if !sameSample(first, second) {
			t.Errorf("round trip of %q:\nfirst  %+v\nsecond %+v", test.line, first, second)
		}
	}
}

func TestFormat(t *testing.T) {
	s := &Sample{16, 0, 0.5, math.NaN(), 1.25, 2, 1.5, 0.25}
	const want = "16;0;0.5;0;1.25;2;1.5;0.25\n"
	if got := s.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseColumn(t *testing.T) {
	for _, c := range CanonicalSchema {
		got, err := ParseColumn(c.String())
		if err != nil || got != c {
			t.Errorf("ParseColumn(%q) = %v, %v, want %v", c.String(), got, err, c)
		}
	}
	if _, err := ParseColumn("wall"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("ParseColumn(wall): got %v, want ErrUnknownColumn", err)
	}
}
