// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens throwaway table stores for tests.
//
// By default each test gets a private in-memory SQLite database. With
// -cloud, each test gets a fresh MySQL database on the Cloud SQL
// instance named by -cloudsql, which is dropped when the test ends.
package dbtest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"strings"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/netbench/netbench/storage/db"
	_ "github.com/netbench/netbench/storage/db/sqlite3"
)

var (
	cloud    = flag.Bool("cloud", false, "run database tests on Cloud SQL instead of in-memory SQLite")
	cloudsql = flag.String("cloudsql", "", "Cloud SQL `instance` for -cloud, as project:region:instance")
)

// NewDB returns an empty table store for t. It is closed, and any
// Cloud SQL database dropped, when t finishes.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	driver, dsn := "sqlite3", ":memory:"
	if *cloud {
		driver, dsn = "mysql", cloudDatabase(t)
	}
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		t.Fatalf("opening %s test database: %v", driver, err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	n, err := d.CountTables(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("new test database holds %d table(s)", n)
	}
	return d
}

// cloudDatabase creates a database on the -cloudsql instance and
// returns its DSN. The database is dropped during t's cleanup, after
// the store opened on it has been closed.
func cloudDatabase(t *testing.T) string {
	t.Helper()
	if *cloudsql == "" {
		t.Fatal("-cloud requires -cloudsql")
	}
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		t.Fatal(err)
	}
	name := fmt.Sprintf("netbench_%s_%s", dbName(t.Name()), hex.EncodeToString(suffix))

	server := fmt.Sprintf("root:@cloudsql(%s)/", *cloudsql)
	admin, err := sql.Open("mysql", server)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := admin.Exec("CREATE DATABASE `" + name + "`"); err != nil {
		admin.Close()
		t.Fatalf("creating %s: %v", name, err)
	}
	t.Logf("using Cloud SQL database %s", name)
	t.Cleanup(func() {
		defer admin.Close()
		if _, err := admin.Exec("DROP DATABASE `" + name + "`"); err != nil {
			t.Errorf("dropping %s: %v", name, err)
		}
	})
	return server + name
}

// dbName maps a test name to the characters MySQL allows in an
// unquoted identifier, keeping it short.
func dbName(test string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, test)
	if len(name) > 40 {
		name = name[:40]
	}
	return name
}
