// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bucket

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestObjectName(t *testing.T) {
	for _, test := range []struct {
		prefix, name, want string
	}{
		{"", "PingPong_latency.pdf", "PingPong_latency.pdf"},
		{"runs/2023-10-01", "csv_run1_imb_PingPong.csv", "runs/2023-10-01/csv_run1_imb_PingPong.csv"},
		{"runs/", "/abs/report.html", "runs/abs/report.html"},
		{"", "a/../b.png", "b.png"},
	} {
		u := &Uploader{Prefix: test.prefix}
		if got := u.ObjectName(test.name); got != test.want {
			t.Errorf("ObjectName(%q) with prefix %q = %q, want %q", test.name, test.prefix, got, test.want)
		}
	}
}

func TestContentType(t *testing.T) {
	for name, want := range map[string]string{
		"a.csv":  "text/csv",
		"a.PDF":  "application/pdf",
		"a.svg":  "image/svg+xml",
		"a.png":  "image/png",
		"a.jpeg": "image/jpeg",
		"a.zzzq": "application/octet-stream",
		"README": "application/octet-stream",
	} {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}

// recordWriter records what was written and whether its context was
// cancelled when it was closed.
type recordWriter struct {
	ctx       context.Context
	buf       bytes.Buffer
	committed bool
}

func (w *recordWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *recordWriter) Close() error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	w.committed = true
	return nil
}

func TestUpload(t *testing.T) {
	var w *recordWriter
	open := func(ctx context.Context) io.WriteCloser {
		w = &recordWriter{ctx: ctx}
		return w
	}
	if err := upload(context.Background(), open, strings.NewReader(",bytes,latency\n")); err != nil {
		t.Fatal(err)
	}
	if !w.committed || w.buf.String() != ",bytes,latency\n" {
		t.Errorf("committed %v with %q", w.committed, w.buf.String())
	}

	bad := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(errors.New("read failed")))
	err := upload(context.Background(), open, bad)
	if err == nil || err.Error() != "read failed" {
		t.Errorf("upload error = %v, want read failed", err)
	}
	if w.committed {
		t.Errorf("truncated object was committed")
	}
}
