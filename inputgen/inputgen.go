// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inputgen writes the binary input files of a sweep: raw
// little-endian int32 values, uniformly distributed.
package inputgen

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/mpisort/sortperf/sweep"
)

// Generate writes n random int32 values in [math.MinInt32,
// math.MaxInt32) to w.
func Generate(w io.Writer, n int, rng *rand.Rand) error {
	bw := bufio.NewWriter(w)
	var buf [4]byte
	const span = int64(math.MaxInt32) - int64(math.MinInt32)
	for i := 0; i < n; i++ {
		v := int32(int64(math.MinInt32) + rng.Int63n(span))
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFiles writes one input file of 2^s values into dir for each
// size s, and returns their paths. The same seed produces the same
// files.
func WriteFiles(dir string, sizes []int, seed int64) ([]string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	var paths []string
	for _, s := range sizes {
		path := filepath.Join(dir, sweep.InputName(s))
		if err := writeFile(path, 1<<uint(s), rng); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, n int, rng *rand.Rand) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Generate(f, n, rng)
}
