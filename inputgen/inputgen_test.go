// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inputgen

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, 1000, rand.New(rand.NewSource(1))))
	require.Equal(t, 4000, buf.Len())

	vals := make([]int32, 1000)
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, vals))
	var neg, pos int
	for _, v := range vals {
		assert.NotEqual(t, int32(math.MaxInt32), v)
		if v < 0 {
			neg++
		} else {
			pos++
		}
	}
	// Both halves of the range are used.
	assert.Greater(t, neg, 400)
	assert.Greater(t, pos, 400)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	paths, err := WriteFiles(dir, []int{4, 6}, 42)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "2_4"), filepath.Join(dir, "2_6")}, paths)

	for i, size := range []int64{64, 256} {
		fi, err := os.Stat(paths[i])
		require.NoError(t, err)
		assert.Equal(t, size, fi.Size())
	}

	again, err := WriteFiles(t.TempDir(), []int{4, 6}, 42)
	require.NoError(t, err)
	for i := range paths {
		a, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		b, err := os.ReadFile(again[i])
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}
