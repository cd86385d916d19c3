// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mpisort/sortperf/runproc"
)

// The timing files of a sweep are laid out as
//
//	<root>/Case_<k>/version_<v>/size_<s>/serial_<s>.csv
//	<root>/Case_<k>/version_<v>/size_<s>/mpi_<p>_<s>.csv
//
// and the input files as <inputs>/2_<s>.

// CaseDir returns the directory of case k.
func CaseDir(root string, k int) string {
	return filepath.Join(root, fmt.Sprintf("Case_%d", k))
}

// VersionDir returns the directory of version v of case k.
func VersionDir(root string, k, v int) string {
	return filepath.Join(CaseDir(root, k), fmt.Sprintf("version_%d", v))
}

// SizeDir returns the directory holding the timing files of input
// size 2^s for version v of case k.
func SizeDir(root string, k, v, s int) string {
	return filepath.Join(VersionDir(root, k, v), fmt.Sprintf("size_%d", s))
}

// FileName returns the timing file name of a run with procs
// processes on an input of size 2^s. procs 0 is the serial run.
func FileName(procs, s int) string {
	if procs == 0 {
		return fmt.Sprintf("serial_%d.csv", s)
	}
	return fmt.Sprintf("mpi_%d_%d.csv", procs, s)
}

// InputName returns the name of the input file of size 2^s.
func InputName(s int) string {
	return fmt.Sprintf("2_%d", s)
}

// A Point locates a size directory in the sweep.
type Point struct {
	Case, Version, Size int
}

func (p Point) String() string {
	return fmt.Sprintf("Case_%d/version_%d/size_%d", p.Case, p.Version, p.Size)
}

// ParsePoint parses the last three elements of a size directory
// path. It reports false if dir does not follow the layout.
func ParsePoint(dir string) (Point, bool) {
	var p Point
	parts := strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/")
	if len(parts) < 3 {
		return p, false
	}
	parts = parts[len(parts)-3:]
	fields := []struct {
		prefix string
		dst    *int
	}{{"Case_", &p.Case}, {"version_", &p.Version}, {"size_", &p.Size}}
	for i, f := range fields {
		if !strings.HasPrefix(parts[i], f.prefix) {
			return p, false
		}
		n, err := strconv.Atoi(parts[i][len(f.prefix):])
		if err != nil {
			return p, false
		}
		*f.dst = n
	}
	return p, true
}

// Discover returns the size directories of the sweep rooted at root,
// in natural order. Case directories are numbered 1 through c.Cases;
// missing ones are skipped. Below them every version_* and size_*
// directory is taken.
func Discover(root string, c Config) ([]string, error) {
	var dirs []string
	for k := 1; k <= c.Cases; k++ {
		versions, err := subdirs(CaseDir(root, k), "version_")
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, v := range versions {
			sizes, err := subdirs(v, "size_")
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, sizes...)
		}
	}
	return dirs, nil
}

// subdirs returns the directories directly below dir whose names
// start with prefix, in natural order.
func subdirs(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	runproc.SortNatural(names)
	for i, name := range names {
		names[i] = filepath.Join(dir, name)
	}
	return names, nil
}
