// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpisort/sortperf/runfmt"
	"github.com/mpisort/sortperf/runstat"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("repetitions: 3\ntarget: elapsed\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Repetitions)
	assert.Equal(t, "elapsed", cfg.Target)
	assert.Equal(t, []int{16, 18, 19, 20}, cfg.InputSizes)
	assert.Equal(t, 2, cfg.Cases)
}

func TestParseOverridesLists(t *testing.T) {
	cfg, err := Parse([]byte("input_sizes: [10]\nprocess_counts: [\"0\", \"4\"]\ncolumns: [merge_time, read_time]\nsummand: read_time\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{10}, cfg.InputSizes)
	assert.Equal(t, []int{0, 4}, cfg.ProcessCounts)

	target, summand, err := cfg.TargetColumns()
	require.NoError(t, err)
	assert.Equal(t, runfmt.MergeTime, target)
	assert.Equal(t, runfmt.ReadTime, summand)
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name, yaml string
	}{
		{"unknown key", "colour: red\n"},
		{"unknown column", "columns: [merge_time, wall]\n"},
		{"duplicate column", "columns: [merge_time, merge_time]\n"},
		{"untracked target", "columns: [read_time]\n"},
		{"unknown summand", "summand: foo\n"},
		{"bad pattern", "file_pattern: \"(\"\n"},
		{"no workers", "workers: 0\n"},
		{"negative processes", "process_counts: [0, -2]\n"},
		{"not yaml", "[\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.yaml))
			assert.Error(t, err)
		})
	}
	_, err := Parse([]byte("columns: [wall]\n"))
	assert.True(t, errors.Is(err, runfmt.ErrUnknownColumn))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cases: 1\nroot: out\n"), 0666))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Cases)
	assert.Equal(t, "out", cfg.Root)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err), "got %v", err)
}

func TestLayout(t *testing.T) {
	assert.Equal(t, filepath.Join("m", "Case_2", "version_3", "size_18"), SizeDir("m", 2, 3, 18))
	assert.Equal(t, "serial_18.csv", FileName(0, 18))
	assert.Equal(t, "mpi_8_18.csv", FileName(8, 18))
	assert.Equal(t, "2_20", InputName(20))

	p, ok := ParsePoint(SizeDir("measures", 1, 0, 16))
	require.True(t, ok)
	assert.Equal(t, Point{Case: 1, Version: 0, Size: 16}, p)
	assert.Equal(t, "Case_1/version_0/size_16", p.String())

	for _, bad := range []string{"size_16", "a/b/c", "Case_1/version_x/size_16"} {
		_, ok := ParsePoint(bad)
		assert.False(t, ok, bad)
	}
}

const header = "size;processes;read_time;local_sort_time;merge_time;elapsed;user;sys\n"

func writeTiming(t *testing.T, dir, name, record string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0777))
	data := header + record + "\n" + record + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0666))
}

// tree builds a sweep with two versions. version_10 has a full size
// directory, version_2 a full one and one with only a baseline.
func tree(t *testing.T) string {
	root := t.TempDir()
	for _, v := range []int{10, 2} {
		dir := SizeDir(root, 1, v, 16)
		writeTiming(t, dir, FileName(0, 16), "16;0;0.1;0;4;4.1;4;0.1")
		writeTiming(t, dir, FileName(2, 16), "16;2;0.1;1;2;2.1;4;0.1")
	}
	writeTiming(t, SizeDir(root, 1, 2, 18), FileName(0, 18), "18;0;0.1;0;4;4.1;4;0.1")
	require.NoError(t, os.WriteFile(filepath.Join(VersionDir(root, 1, 2), "notes.txt"), nil, 0666))
	return root
}

func TestDiscover(t *testing.T) {
	root := tree(t)
	cfg := Default()
	dirs, err := Discover(root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		SizeDir(root, 1, 2, 16),
		SizeDir(root, 1, 2, 18),
		SizeDir(root, 1, 10, 16),
	}, dirs)
}

func TestWalk(t *testing.T) {
	root := tree(t)
	cfg := Default()
	cfg.Workers = 2
	dirs, err := Discover(root, cfg)
	require.NoError(t, err)

	sets, err := Walk(context.Background(), dirs, cfg, nil)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, SizeDir(root, 1, 2, 16), sets[0].Dir)
	assert.Equal(t, SizeDir(root, 1, 10, 16), sets[1].Dir)

	merge, err := sets[0].Series(runfmt.MergeTime)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, merge.Values())
}

func TestWalkError(t *testing.T) {
	root := tree(t)
	dir := SizeDir(root, 1, 2, 16)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName(4, 16)), []byte(header+"1;2;3\n"), 0666))
	cfg := Default()
	dirs, err := Discover(root, cfg)
	require.NoError(t, err)

	_, err = Walk(context.Background(), dirs, cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, runfmt.ErrMalformedRecord))
	assert.False(t, errors.Is(err, runstat.ErrInsufficientData))
}

func TestWalkCancelled(t *testing.T) {
	root := tree(t)
	cfg := Default()
	dirs, err := Discover(root, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Walk(ctx, dirs, cfg, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
