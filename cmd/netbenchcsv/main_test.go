// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/netbench/netbench/internal/diff"
)

func TestCSV(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := netbenchcsv(&stdout, &stderr, []string{"-bench", "PingPong", "testdata/pingpong.txt", "testdata/aborted.txt"})
	if err != nil {
		t.Fatal(err)
	}
	want := `,bytes,latency,bandwidth
0,1,0.21,4.76
1,2,0.22,9.09
2,4,0.25,16
`
	if d := diff.Diff(want, stdout.String()); d != "" {
		t.Errorf("wrong output; diff want got:\n%s", d)
	}
	if got := stderr.String(); !strings.Contains(got, "testdata/aborted.txt: aborted") {
		t.Errorf("stderr = %q, want report of aborted log", got)
	}
}

func TestSummary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := netbenchcsv(&stdout, &stderr, []string{"-bench", "PingPong", "-summary", "testdata/pingpong.txt"})
	if err != nil {
		t.Fatal(err)
	}
	got := stdout.String()
	for _, s := range []string{"PingPong testdata/pingpong.txt", "4B", "median", "geomean", "0.22"} {
		if !strings.Contains(got, s) {
			t.Errorf("summary does not contain %q:\n%s", s, got)
		}
	}
}

func TestHTML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := netbenchcsv(&stdout, &stderr, []string{"-bench", "PingPong", "-html", "testdata/pingpong.txt"})
	if err != nil {
		t.Fatal(err)
	}
	got := stdout.String()
	if !strings.HasPrefix(got, "<!doctype html>") || !strings.Contains(got, "<table class='netbench'>") {
		t.Errorf("bad HTML page:\n%s", got)
	}
}

func TestOut(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	err := netbenchcsv(&stdout, &stderr, []string{"-bench", "PingPong", "-out", dir, "testdata/pingpong.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected output %q", stdout.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "csv_pingpong.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), ",bytes,latency,bandwidth\n") {
		t.Errorf("csv_pingpong.csv = %q", data)
	}
}

func TestList(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := netbenchcsv(&stdout, &stderr, []string{"-list"}); err != nil {
		t.Fatal(err)
	}
	names := strings.Fields(stdout.String())
	if len(names) != 33 {
		t.Errorf("listed %d benchmarks, want 33", len(names))
	}
}

func TestUnknownBench(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := netbenchcsv(&stdout, &stderr, []string{"-bench", "Uniband", "testdata/pingpong.txt"})
	if err == nil || !strings.Contains(err.Error(), "Uniband") {
		t.Errorf("got %v, want error naming Uniband", err)
	}
}

func TestBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := netbenchcsv(&stdout, &stderr, []string{"-no-such-flag"})
	if err == nil || !strings.Contains(err.Error(), "no-such-flag") {
		t.Errorf("got error %v, want unknown flag", err)
	}
	if !strings.Contains(stderr.String(), "Usage: netbenchcsv") {
		t.Errorf("usage not printed:\n%s", stderr.String())
	}

	stderr.Reset()
	err = netbenchcsv(&stdout, &stderr, []string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: got %v, want flag.ErrHelp", err)
	}
}
