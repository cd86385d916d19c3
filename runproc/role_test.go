// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runproc

import "testing"

func TestClassifyRole(t *testing.T) {
	for _, test := range []struct {
		name string
		want Role
		ok   bool
	}{
		{"serial_16.csv", Role{Kind: Serial}, true},
		{"mpi_2_16.csv", Role{Kind: Parallel, Workers: 2}, true},
		{"mpi_16_20.csv", Role{Kind: Parallel, Workers: 16}, true},
		{"notes.txt", Role{}, false},
		{"xmpi_2_16.csv", Role{}, false},
	} {
		got, ok := ClassifyRole(test.name)
		if got != test.want || ok != test.ok {
			t.Errorf("ClassifyRole(%q) = %v, %v, want %v, %v", test.name, got, ok, test.want, test.ok)
		}
	}
}

func TestRoleString(t *testing.T) {
	if s := (Role{Kind: Serial}).String(); s != "serial" {
		t.Errorf("serial role = %q", s)
	}
	if s := (Role{Kind: Parallel, Workers: 8}).String(); s != "mpi_8" {
		t.Errorf("parallel role = %q", s)
	}
}

func TestPatterns(t *testing.T) {
	p := DefaultPatterns()
	for name, want := range map[string]bool{
		"serial_16.csv":   true,
		"mpi_4_16.csv":    true,
		"mpi_4_16.csv.gz": true, // matched at the start, like the rest
		"mpi_x_16.csv":    false,
		"table_16.csv":    false,
		"16_table.csv":    false,
	} {
		if got := p.File.MatchString(name); got != want {
			t.Errorf("File.MatchString(%q) = %v, want %v", name, got, want)
		}
	}

	custom, err := CompilePatterns(`(omp_[0-9]+|seq)\.csv`, `seq\.csv`, `omp_([0-9]+)`)
	if err != nil {
		t.Fatal(err)
	}
	if r, ok := custom.Classify("omp_8.csv"); !ok || r.Workers != 8 {
		t.Errorf("custom Classify(omp_8.csv) = %v, %v", r, ok)
	}
	if r, ok := custom.Classify("seq.csv"); !ok || !r.IsSerial() {
		t.Errorf("custom Classify(seq.csv) = %v, %v", r, ok)
	}

	if _, err := CompilePatterns("", "", `mpi_[0-9]+`); err == nil {
		t.Errorf("workers pattern without submatch accepted")
	}
	if _, err := CompilePatterns("(", "", ""); err == nil {
		t.Errorf("invalid file pattern accepted")
	}
}
