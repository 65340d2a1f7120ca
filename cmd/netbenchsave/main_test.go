// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/netbench/netbench/pcvs"
	"github.com/netbench/netbench/storage/db"
)

const pingPongLog = `#---------------------------------------------------
# Benchmarking PingPong
# #processes = 2
#---------------------------------------------------
       #bytes #repetitions      t[usec]   Mbytes/sec
            0         1000         0.20         0.00
            1         1000         0.21         4.76
            2         1000         0.22         9.09
`

func writeSuite(t *testing.T, outputs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	raw := filepath.Join(dir, pcvs.RawDataDir)
	if err := os.Mkdir(raw, 0777); err != nil {
		t.Fatal(err)
	}
	var tests []interface{}
	for fq, out := range outputs {
		tests = append(tests, map[string]interface{}{
			"id":     map[string]interface{}{"te_name": "PingPong", "fq_name": fq},
			"data":   map[string]interface{}{"tags": []string{"imb"}},
			"result": map[string]interface{}{"output": base64.StdEncoding.EncodeToString([]byte(out))},
		})
	}
	data, err := json.Marshal(map[string]interface{}{"tests": tests})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(raw, "results.json"), data, 0666); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSaveSQLite(t *testing.T) {
	suite := writeSuite(t, map[string]string{
		"imb/PingPong_a": pingPongLog,
		"imb/PingPong_b": "no output\n",
	})
	dsn := filepath.Join(t.TempDir(), "netbench.db")
	var stdout, stderr bytes.Buffer
	err := netbenchsave(context.Background(), &stdout, &stderr, []string{"-v", "-db", "sqlite3", "-dsn", dsn, "base=" + suite})
	if err != nil {
		t.Fatalf("netbenchsave: %v\nstderr:\n%s", err, stderr.String())
	}
	if got := stdout.String(); got != "saved 1 tables\n" {
		t.Errorf("stdout = %q", got)
	}
	if !strings.Contains(stderr.String(), "PingPong_b: no header, skipping") {
		t.Errorf("stderr does not report the skipped test:\n%s", stderr.String())
	}

	d, err := db.OpenSQL("sqlite3", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	ctx := context.Background()
	metas, err := d.ListTables(ctx, "PingPong")
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 {
		t.Fatalf("stored %d tables, want 1", len(metas))
	}
	m := metas[0]
	if m.Suite != "base" || m.Procs != 2 || !strings.HasSuffix(m.Test, "imb_PingPong_a") {
		t.Errorf("meta = %+v", m)
	}
	_, tab, err := d.LoadTable(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	// The zero-size warm-up row is not stored.
	if tab.Len() != 2 {
		t.Fatalf("stored table has %d rows, want 2", tab.Len())
	}
	if got := tab.Column("bandwidth"); got[1] != 9.09 {
		t.Errorf("bandwidth = %v", got)
	}
}

func TestNoDestination(t *testing.T) {
	suite := writeSuite(t, map[string]string{"imb/PingPong": pingPongLog})
	var stdout, stderr bytes.Buffer
	err := netbenchsave(context.Background(), &stdout, &stderr, []string{suite})
	if err == nil || !strings.Contains(err.Error(), "no destination") {
		t.Errorf("got %v, want no destination error", err)
	}
}

func TestUploadDirNeedsBucket(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := netbenchsave(context.Background(), &stdout, &stderr, []string{"-upload-dir", t.TempDir(), "suite"})
	if err == nil || !strings.Contains(err.Error(), "-gcs") {
		t.Errorf("got %v, want complaint about -gcs", err)
	}
}

func TestBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := netbenchsave(context.Background(), &stdout, &stderr, []string{"-no-such-flag"})
	if err == nil || !strings.Contains(err.Error(), "no-such-flag") {
		t.Errorf("got error %v, want unknown flag", err)
	}
	if !strings.Contains(stderr.String(), "Usage: netbenchsave") {
		t.Errorf("usage not printed:\n%s", stderr.String())
	}

	stderr.Reset()
	err = netbenchsave(context.Background(), &stdout, &stderr, []string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: got %v, want flag.ErrHelp", err)
	}
}
