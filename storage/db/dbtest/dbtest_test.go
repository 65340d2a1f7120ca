// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbtest

import (
	"strings"
	"testing"
)

func TestDBName(t *testing.T) {
	for in, want := range map[string]string{
		"TestInsertLoad":         "TestInsertLoad",
		"TestParse/osu_latency":  "TestParse_osu_latency",
		"TestX/µs-case#01":       "TestX__s_case_01",
		strings.Repeat("a", 100): strings.Repeat("a", 40),
	} {
		if got := dbName(in); got != want {
			t.Errorf("dbName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewDB(t *testing.T) {
	d := NewDB(t)
	if d == nil {
		t.Fatal("NewDB returned nil")
	}
}
