// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bucket uploads charts, CSV files, and reports to a Google
// Cloud Storage bucket.
package bucket

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// An Uploader writes objects under a common prefix of a bucket.
type Uploader struct {
	Bucket *storage.BucketHandle
	// Prefix is prepended to every object name.
	Prefix string
}

// NewUploader returns an Uploader for bucket, and a function that
// closes the underlying client.
func NewUploader(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*Uploader, func() error, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return &Uploader{Bucket: client.Bucket(bucket), Prefix: prefix}, client.Close, nil
}

// ObjectName returns the object name for the file called name.
func (u *Uploader) ObjectName(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "/")
	if u.Prefix == "" {
		return path.Clean(name)
	}
	return path.Join(u.Prefix, name)
}

// ContentType returns the content type of the object name, based on
// its extension.
func ContentType(name string) string {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".svg":
		return "image/svg+xml"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}

// Upload writes the contents of r to the object for name. If reading
// r fails, the upload is abandoned and no object is written.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) error {
	obj := u.ObjectName(name)
	open := func(ctx context.Context) io.WriteCloser {
		w := u.Bucket.Object(obj).NewWriter(ctx)
		w.ContentType = ContentType(obj)
		return w
	}
	if err := upload(ctx, open, r); err != nil {
		return fmt.Errorf("uploading %s: %w", obj, err)
	}
	return nil
}

// upload copies r to the writer returned by open. The writer's
// context is cancelled before Close when the copy fails, which makes
// Close discard the object instead of committing it.
func upload(ctx context.Context, open func(context.Context) io.WriteCloser, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := open(ctx)
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		w.Close()
		return err
	}
	return w.Close()
}

// UploadFile uploads the local file at file under its base name and
// returns the object name.
func (u *Uploader) UploadFile(ctx context.Context, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	name := filepath.Base(file)
	return u.ObjectName(name), u.Upload(ctx, name, f)
}
