// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runproc

import (
	"sort"
	"strings"
)

// NaturalLess reports whether a sorts before b in natural order:
// runs of digits compare by numeric value and other runs compare
// lexically, so "mpi_2" < "mpi_16" and "version_2" < "version_10".
func NaturalLess(a, b string) bool {
	if c := naturalCompare(a, b); c != 0 {
		return c < 0
	}
	// The strings are equal in natural order but may still differ,
	// e.g. by leading zeros. Fall back to a comparison that is only
	// equal if the strings are.
	return a < b
}

// SortNatural sorts names in place using NaturalLess.
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})
}

func naturalCompare(a, b string) int {
	for len(a) > 0 && len(b) > 0 {
		var ca, cb string
		ca, a = nextChunk(a)
		cb, b = nextChunk(b)
		da, db := isDigit(ca[0]), isDigit(cb[0])
		var c int
		switch {
		case da && db:
			c = compareDigits(ca, cb)
		case da:
			// Numbers sort before text, as in a key where
			// they occupy the same position.
			c = -1
		case db:
			c = 1
		default:
			c = strings.Compare(ca, cb)
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(a) == len(b):
		return 0
	case len(a) == 0:
		return -1
	}
	return 1
}

// nextChunk splits s into its leading run of digits or non-digits
// and the rest.
func nextChunk(s string) (chunk, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two runs of ASCII digits by value without
// converting them, so arbitrarily long runs work.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
