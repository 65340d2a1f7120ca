// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Netbenchsave stores parsed network benchmark results.
//
// Usage:
//
//	netbenchsave [flags] suite...
//
// Each suite argument names a build directory, or label=directory, as
// for netbenchplot. Netbenchsave parses the log of every test and
// saves the resulting table to each configured destination:
//
//   - an SQL database, with -db and -dsn. The sqlite3 and mysql
//     drivers are supported.
//   - an InfluxDB bucket, with -influx, -influx-org, -influx-bucket,
//     and a token given directly by -influx-token or read from Secret
//     Manager by -influx-token-secret.
//   - a Google Cloud Storage bucket, with -gcs. Tables are uploaded as
//     csv_<test>.csv objects, along with every file in -upload-dir,
//     such as charts drawn by netbenchplot. Credentials come from
//     -credentials, -access-token, or the application defaults.
//
// Tests whose logs hold no data are reported and skipped.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/netbench/netbench/benchlog"
	"github.com/netbench/netbench/benchtab"
	"github.com/netbench/netbench/pcvs"
	"github.com/netbench/netbench/storage/bucket"
	"github.com/netbench/netbench/storage/db"
	"github.com/netbench/netbench/storage/influx"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/netbench/netbench/storage/db/sqlite3"
)

func main() {
	log.SetPrefix("netbenchsave: ")
	log.SetFlags(0)
	if err := netbenchsave(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// destinations holds the open sinks. Nil fields are not configured.
type destinations struct {
	db     *db.DB
	influx *influx.Writer
	bucket *bucket.Uploader

	closers []func() error
}

func (d *destinations) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func netbenchsave(ctx context.Context, w, wErr io.Writer, args []string) (err error) {
	flags := flag.NewFlagSet("netbenchsave", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), `Usage: netbenchsave [flags] suite...

Flags:
`)
		flags.PrintDefaults()
	}
	iterator := flags.String("iterator", "", "record the combination `key` of each test")
	verbose := flags.Bool("v", false, "print verbose log messages")
	dbDriver := flags.String("db", "", "save tables to an SQL database using `driver` (sqlite3 or mysql)")
	dsn := flags.String("dsn", "", "SQL data source `name`")
	influxURL := flags.String("influx", "", "save tables to the InfluxDB server at `url`")
	influxToken := flags.String("influx-token", "", "InfluxDB API `token`")
	influxSecret := flags.String("influx-token-secret", "", "read the InfluxDB token from Secret Manager `secret`")
	influxOrg := flags.String("influx-org", "", "InfluxDB `organization`")
	influxBucket := flags.String("influx-bucket", "", "InfluxDB `bucket`")
	gcs := flags.String("gcs", "", "upload CSV tables to Cloud Storage `bucket`")
	gcsPrefix := flags.String("gcs-prefix", "", "prepend `prefix` to uploaded object names")
	uploadDir := flags.String("upload-dir", "", "also upload every file in `dir` to the Cloud Storage bucket")
	credentials := flags.String("credentials", "", "read Cloud Storage credentials from `file`")
	accessToken := flags.String("access-token", "", "authenticate to Cloud Storage with OAuth2 `token`")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("no suites")
	}
	vlog := func(format string, args ...interface{}) {
		if *verbose {
			fmt.Fprintf(wErr, format+"\n", args...)
		}
	}
	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(wErr, format+"\n", args...)
	}

	var d destinations
	defer func() {
		if cerr := d.Close(); err == nil {
			err = cerr
		}
	}()
	if *dbDriver != "" {
		d.db, err = db.OpenSQL(*dbDriver, *dsn)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		d.closers = append(d.closers, d.db.Close)
	}
	if *influxURL != "" {
		token := *influxToken
		if *influxSecret != "" {
			if token, err = influx.TokenFromSecret(ctx, *influxSecret); err != nil {
				return err
			}
		}
		var closeInflux func()
		d.influx, closeInflux = influx.NewWriter(*influxURL, token, *influxOrg, *influxBucket)
		d.closers = append(d.closers, func() error { closeInflux(); return nil })
	}
	if *gcs != "" {
		var opts []option.ClientOption
		switch {
		case *credentials != "":
			opts = append(opts, option.WithCredentialsFile(*credentials))
		case *accessToken != "":
			opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: *accessToken})))
		}
		var closeBucket func() error
		d.bucket, closeBucket, err = bucket.NewUploader(ctx, *gcs, *gcsPrefix, opts...)
		if err != nil {
			return fmt.Errorf("opening bucket %s: %w", *gcs, err)
		}
		d.closers = append(d.closers, closeBucket)
	} else if *uploadDir != "" {
		return errors.New("-upload-dir requires -gcs")
	}
	if d.db == nil && d.influx == nil && d.bucket == nil {
		flags.Usage()
		return errors.New("no destination: need -db, -influx, or -gcs")
	}

	suites, err := pcvs.LoadAll(flags.Args(), pcvs.Options{Iterator: *iterator, Warn: warn})
	if err != nil {
		return err
	}
	p := benchlog.NewParser(benchlog.Standard())
	p.Warn = warn

	start := time.Now()
	saved := 0
	for _, s := range suites {
		for _, name := range s.Names() {
			if !p.Registry.Has(name) {
				return fmt.Errorf("%s: benchmark %s is not supported", s.Label, name)
			}
			for _, t := range s.Tests(name) {
				o, err := p.ParseString(name, t.Output)
				if err != nil {
					return fmt.Errorf("%s: %w", t.FQName, err)
				}
				if !o.OK() {
					warn("%s: %s, skipping", t.FQName, o.Status)
					continue
				}
				if err := d.save(ctx, s, t, o, start); err != nil {
					return fmt.Errorf("%s: %w", t.FQName, err)
				}
				vlog("saved %s (%d rows)", t.UName, o.Table.Len())
				saved++
			}
		}
	}

	if *uploadDir != "" {
		files, err := os.ReadDir(*uploadDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			if !f.Type().IsRegular() {
				continue
			}
			obj, err := d.bucket.UploadFile(ctx, filepath.Join(*uploadDir, f.Name()))
			if err != nil {
				return err
			}
			vlog("uploaded %s", obj)
		}
	}
	fmt.Fprintf(w, "saved %d tables\n", saved)
	return nil
}

func (d *destinations) save(ctx context.Context, s *pcvs.Suite, t *pcvs.Test, o *benchlog.Outcome, start time.Time) error {
	if d.db != nil {
		m := db.Meta{Suite: s.Label, Test: t.UName, Benchmark: t.Name, Procs: o.Procs}
		if _, err := d.db.InsertTable(ctx, m, o.Table); err != nil {
			return err
		}
	}
	if d.influx != nil {
		run := influx.Run{Suite: s.Label, Test: t.UName, Benchmark: t.Name, Procs: o.Procs, Time: start}
		if err := d.influx.Write(ctx, run, o.Table); err != nil {
			return err
		}
	}
	if d.bucket != nil {
		var buf bytes.Buffer
		if err := benchtab.WriteCSV(&buf, o.Table); err != nil {
			return err
		}
		if err := d.bucket.Upload(ctx, benchtab.CSVName(t.UName), &buf); err != nil {
			return err
		}
	}
	return nil
}
