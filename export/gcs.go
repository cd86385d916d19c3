// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Bucket uploads report artifacts to a Google Cloud Storage bucket.
type Bucket struct {
	// Prefix is prepended to every object name.
	Prefix string

	// create opens the object for writing. Close on the result
	// reports whether the upload succeeded.
	create func(ctx context.Context, object, contentType string) io.WriteCloser
	close  func() error
}

// NewBucket returns a Bucket writing to the named bucket.
func NewBucket(ctx context.Context, name, prefix string, opts ...option.ClientOption) (*Bucket, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	h := client.Bucket(name)
	return &Bucket{
		Prefix: prefix,
		create: func(ctx context.Context, object, contentType string) io.WriteCloser {
			w := h.Object(object).NewWriter(ctx)
			w.ContentType = contentType
			return w
		},
		close: client.Close,
	}, nil
}

// NewBucketWriter returns a Bucket that creates objects with create.
func NewBucketWriter(prefix string, create func(ctx context.Context, object, contentType string) io.WriteCloser) *Bucket {
	return &Bucket{Prefix: prefix, create: create}
}

// ObjectName returns the object name of the artifact at file, which
// must be below root.
func (b *Bucket) ObjectName(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || len(rel) > 2 && rel[:3] == "../" {
		return "", fmt.Errorf("%s is not below %s", file, root)
	}
	return path.Join(b.Prefix, rel), nil
}

// Upload copies r to the object name.
func (b *Bucket) Upload(ctx context.Context, name string, r io.Reader) error {
	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w := b.create(ctx, name, ct)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

// UploadFile uploads the artifact at file, named relative to root.
func (b *Bucket) UploadFile(ctx context.Context, root, file string) (string, error) {
	name, err := b.ObjectName(root, file)
	if err != nil {
		return "", err
	}
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, b.Upload(ctx, name, f)
}

// Close releases the client's resources.
func (b *Bucket) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}
