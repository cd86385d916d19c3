// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"bytes"
	"io"
)

// A Writer writes timing records in the canonical layout.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	wroteHeader bool
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes s, preceded by the header line if this is the first
// record.
func (w *Writer) Write(s *Sample) error {
	if !w.wroteHeader {
		w.buf.WriteString(CanonicalSchema.Header())
		w.buf.WriteByte('\n')
		w.wroteHeader = true
	}
	w.buf.WriteString(s.Format())

	// Writes to the buffer can't fail, so only the flush is
	// checked.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// WriteHeader writes the header line if it has not been written yet.
// It is useful to create a file that will be appended to later.
func (w *Writer) WriteHeader() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	_, err := io.WriteString(w.w, CanonicalSchema.Header()+"\n")
	return err
}
