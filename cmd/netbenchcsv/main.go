// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Netbenchcsv converts raw benchmark logs to CSV tables.
//
// Usage:
//
//	netbenchcsv -bench name [-summary | -html] [-out dir] [file...]
//	netbenchcsv -list
//
// Each input file should hold the output of one run of the benchmark
// called name, such as "pt2pt_osu_latency" or "PingPong". With no
// files, or with a file named "-", netbenchcsv reads standard input.
//
// By default, netbenchcsv writes one CSV table per input to standard
// output, separated by blank lines. The first CSV column is the row
// index, followed by the message size and the benchmark's metrics.
// With -out, each table is written to the file csv_<input>.csv in
// that directory instead.
//
// The -summary flag prints each table as aligned text followed by the
// minimum, median, mean, geometric mean, and maximum of every metric.
// The -html flag does the same as an HTML document.
//
// Logs that were aborted, or that hold no header for the benchmark,
// are reported on standard error and skipped.
//
// The -list flag prints the names of the supported benchmarks.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/netbench/netbench/benchlog"
	"github.com/netbench/netbench/benchreport"
	"github.com/netbench/netbench/benchtab"
)

func main() {
	log.SetPrefix("netbenchcsv: ")
	log.SetFlags(0)
	if err := netbenchcsv(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func netbenchcsv(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("netbenchcsv", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), `Usage: netbenchcsv -bench name [flags] [file...]

Flags:
`)
		flags.PrintDefaults()
	}
	bench := flags.String("bench", "", "parse logs of benchmark `name`")
	summary := flags.Bool("summary", false, "print text tables with summary statistics")
	html := flags.Bool("html", false, "print an HTML report with summary statistics")
	out := flags.String("out", "", "write CSV files into `dir`")
	list := flags.Bool("list", false, "list the supported benchmarks and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	reg := benchlog.Standard()
	if *list {
		for _, name := range reg.Names() {
			fmt.Fprintf(w, "%s\n", name)
		}
		return nil
	}
	if *bench == "" {
		flags.Usage()
		return fmt.Errorf("missing -bench")
	}

	p := benchlog.NewParser(reg)
	p.Warn = func(format string, args ...interface{}) {
		fmt.Fprintf(wErr, format+"\n", args...)
	}

	files := flags.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	var sections []benchreport.Section
	first := true
	for _, file := range files {
		t, err := parseFile(p, *bench, file, wErr)
		if err != nil {
			return err
		}
		if t == nil {
			continue
		}
		switch {
		case *summary || *html:
			sections = append(sections, benchreport.Section{Title: *bench + " " + file, Table: t})
		case *out != "":
			name := filepath.Join(*out, benchtab.CSVName(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))))
			var buf bytes.Buffer
			if err := benchtab.WriteCSV(&buf, t); err != nil {
				return err
			}
			if err := os.WriteFile(name, buf.Bytes(), 0666); err != nil {
				return err
			}
		default:
			if !first {
				fmt.Fprintf(w, "\n")
			}
			first = false
			if err := benchtab.WriteCSV(w, t); err != nil {
				return err
			}
		}
	}

	switch {
	case *html:
		return benchreport.FormatHTMLPage(w, sections)
	case *summary:
		return benchreport.FormatText(w, sections)
	}
	return nil
}

// parseFile parses the log in file. It returns a nil table for logs
// without data, after reporting why to wErr.
func parseFile(p *benchlog.Parser, bench, file string, wErr io.Writer) (*benchtab.Table, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	o, err := p.Parse(bench, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if !o.OK() {
		fmt.Fprintf(wErr, "%s: %s\n", file, o.Status)
		return nil, nil
	}
	if o.Tail == benchlog.Aborted {
		fmt.Fprintf(wErr, "%s: aborted after %d block(s)\n", file, len(o.Blocks))
	}
	return o.Table, nil
}
