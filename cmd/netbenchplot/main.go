// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Netbenchplot draws charts of network benchmark results.
//
// Usage:
//
//	netbenchplot [flags] suite...
//
// Each suite argument names a build directory whose rawdata
// subdirectory holds the result files of a test run. An argument of
// the form label=dir names the suite label in chart legends.
//
// In the default list mode, netbenchplot draws one chart for every
// benchmark of the first suite and every metric of that benchmark,
// such as PingPong_latency.pdf, with one line per test of every suite.
//
// In speedup mode, suites are taken in pairs. For each pair, the tests
// of each benchmark are matched up in order and the chart shows the
// ratio of the first suite's metric to the second's, in files such as
// PingPong_latency_speedup.pdf.
//
// The -csv flag also writes each plotted table to csv_<test>.csv in
// the output directory. The -html flag writes every table, with its
// summary statistics, to an HTML report.
//
// Tests whose logs were aborted, or hold no header for their
// benchmark, are reported and skipped. A test tagged with a benchmark
// netbenchplot does not know is an error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/netbench/netbench/benchlog"
	"github.com/netbench/netbench/benchplot"
	"github.com/netbench/netbench/benchreport"
	"github.com/netbench/netbench/benchtab"
	"github.com/netbench/netbench/pcvs"
	"gonum.org/v1/plot/vg"
)

func main() {
	log.SetPrefix("netbenchplot: ")
	log.SetFlags(0)
	if err := netbenchplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type config struct {
	mode     string
	iterator string
	labels   []string
	formats  []string
	out      string
	csv      bool
	html     string
	sel      map[string]bool
	opts     benchplot.Options
}

func netbenchplot(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("netbenchplot", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), `Usage: netbenchplot [flags] suite...

Each suite is a build directory or label=directory.

Flags:
`)
		flags.PrintDefaults()
	}
	mode := flags.String("mode", "list", "chart `mode`: list or speedup")
	iterator := flags.String("iterator", "", "label series by the combination `key`")
	labels := flags.String("labels", "", "comma-separated series `labels`, in plotting order")
	formats := flags.String("formats", "pdf", "comma-separated image `formats`: png, jpeg, pdf, svg, eps")
	out := flags.String("out", ".", "write charts into `dir`")
	csvFlag := flags.Bool("csv", false, "also write each plotted table as CSV")
	html := flags.String("html", "", "write an HTML report of all tables to `file`")
	sel := flags.String("select", "", "comma-separated benchmark `names` to chart (default all)")
	linear := flags.Bool("linear", false, "use linear axes")
	width := flags.Float64("width", 6.4, "chart width in `inches`")
	height := flags.Float64("height", 4.8, "chart height in `inches`")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("no suites")
	}
	cfg := &config{
		mode:     *mode,
		iterator: *iterator,
		labels:   splitList(*labels),
		formats:  splitList(*formats),
		out:      *out,
		csv:      *csvFlag,
		html:     *html,
		opts: benchplot.Options{
			Width:  vg.Length(*width) * vg.Inch,
			Height: vg.Length(*height) * vg.Inch,
			Linear: *linear,
		},
	}
	if names := splitList(*sel); len(names) > 0 {
		cfg.sel = make(map[string]bool)
		for _, name := range names {
			cfg.sel[name] = true
		}
	}
	if len(cfg.formats) == 0 {
		return errors.New("no image formats")
	}

	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(wErr, format+"\n", args...)
	}
	suites, err := pcvs.LoadAll(flags.Args(), pcvs.Options{Iterator: cfg.iterator, Warn: warn})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.out, 0777); err != nil {
		return err
	}

	p := benchlog.NewParser(benchlog.Standard())
	p.Warn = warn
	pl := &plotter{cfg: cfg, parser: p, w: w, warn: warn}
	switch cfg.mode {
	case "list":
		err = pl.list(suites)
	case "speedup":
		err = pl.speedup(suites)
	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}
	if err != nil {
		return err
	}
	if cfg.html != "" {
		return pl.writeHTML()
	}
	return nil
}

func splitList(s string) []string {
	var list []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			list = append(list, f)
		}
	}
	return list
}

type plotter struct {
	cfg    *config
	parser *benchlog.Parser
	w      io.Writer
	warn   func(format string, args ...interface{})

	// tables caches parsed tests by UName. A nil entry records a
	// test without data.
	tables   map[string]*benchtab.Table
	sections []benchreport.Section
	nseries  int
}

// table returns the parsed log of t, or nil if it holds no data.
func (pl *plotter) table(t *pcvs.Test) (*benchtab.Table, error) {
	if pl.tables == nil {
		pl.tables = make(map[string]*benchtab.Table)
	}
	if tab, ok := pl.tables[t.UName]; ok {
		return tab, nil
	}
	o, err := pl.parser.ParseString(t.Name, t.Output)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.FQName, err)
	}
	var tab *benchtab.Table
	if o.OK() {
		tab = o.Table
		if o.Tail == benchlog.Aborted {
			pl.warn("%s: aborted after %d block(s)", t.FQName, len(o.Blocks))
		}
	} else {
		pl.warn("%s: %s, skipping", t.FQName, o.Status)
	}
	pl.tables[t.UName] = tab
	if tab == nil {
		return nil, nil
	}
	if pl.cfg.html != "" {
		pl.sections = append(pl.sections, benchreport.Section{Title: t.UName, Table: tab})
	}
	if err := pl.writeCSV(t.UName, tab); err != nil {
		return nil, err
	}
	return tab, nil
}

// label returns the legend label of the next series.
func (pl *plotter) label(s *pcvs.Suite, t *pcvs.Test) string {
	n := pl.nseries
	pl.nseries++
	switch {
	case n < len(pl.cfg.labels):
		return pl.cfg.labels[n]
	case t.HasIter:
		return fmt.Sprintf("%s %s=%s", s.Label, pl.cfg.iterator, t.IterValue)
	case len(s.Tests(t.Name)) > 1:
		return s.Label + " " + t.FQName
	}
	return s.Label
}

func (pl *plotter) selected(name string) bool {
	return pl.cfg.sel == nil || pl.cfg.sel[name]
}

// list draws one chart per benchmark and metric of suites[0], with a
// series for every matching test of every suite.
func (pl *plotter) list(suites []*pcvs.Suite) error {
	reg := pl.parser.Registry
	for _, name := range suites[0].Names() {
		if !pl.selected(name) {
			continue
		}
		v, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		for _, metric := range v.Y {
			pl.nseries = 0
			fig := benchplot.NewFigure(name, v.Label(v.X[0]), v.Label(metric))
			for _, s := range suites {
				for _, t := range s.Tests(name) {
					tab, err := pl.table(t)
					if err != nil {
						return err
					}
					if tab == nil {
						continue
					}
					if err := fig.Add(pl.label(s, t), tab, v.X[0], metric); err != nil {
						return err
					}
				}
			}
			if err := pl.save(fig, name, metric, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// speedup draws, for each pair of suites, the ratio of the first
// suite's results to the second's.
func (pl *plotter) speedup(suites []*pcvs.Suite) error {
	if len(suites)%2 != 0 {
		return fmt.Errorf("speedup mode needs suites in pairs, have %d", len(suites))
	}
	reg := pl.parser.Registry
	for _, name := range suites[0].Names() {
		if !pl.selected(name) {
			continue
		}
		v, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		for _, metric := range v.Y {
			pl.nseries = 0
			fig := benchplot.NewFigure(name+" speedup", v.Label(v.X[0]), v.Label(metric)+" ratio")
			for i := 0; i < len(suites); i += 2 {
				a, b := suites[i], suites[i+1]
				ta, tb := a.Tests(name), b.Tests(name)
				if len(ta) != len(tb) {
					pl.warn("%s: %s has %d tests, %s has %d; comparing the first %d",
						name, a.Label, len(ta), b.Label, len(tb), min(len(ta), len(tb)))
				}
				for j := 0; j < len(ta) && j < len(tb); j++ {
					num, err := pl.table(ta[j])
					if err != nil {
						return err
					}
					den, err := pl.table(tb[j])
					if err != nil {
						return err
					}
					if num == nil || den == nil {
						continue
					}
					r, err := benchtab.Ratio(num, den, metric)
					if err != nil {
						pl.warn("%s / %s: %v", ta[j].FQName, tb[j].FQName, err)
						continue
					}
					if err := fig.Add(pl.label(a, ta[j]), r, v.X[0], metric); err != nil {
						return err
					}
					if err := pl.writeCSV(ta[j].UName+"_"+metric+"_speedup", r); err != nil {
						return err
					}
				}
			}
			if err := pl.save(fig, name, metric, "_speedup"); err != nil {
				return err
			}
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (pl *plotter) save(fig *benchplot.Figure, name, metric, suffix string) error {
	if fig.Len() == 0 {
		pl.warn("%s: no data for %s", name, metric)
		return nil
	}
	for _, format := range pl.cfg.formats {
		file := filepath.Join(pl.cfg.out, benchplot.FileName(name, metric, suffix, format))
		if err := fig.Save(file, pl.cfg.opts); err != nil {
			if errors.Is(err, benchplot.ErrNoData) {
				pl.warn("%s: nothing to plot for %s", name, metric)
				return nil
			}
			return err
		}
		fmt.Fprintf(pl.w, "%s\n", file)
	}
	return nil
}

func (pl *plotter) writeCSV(uname string, t *benchtab.Table) error {
	if !pl.cfg.csv {
		return nil
	}
	f, err := os.Create(filepath.Join(pl.cfg.out, benchtab.CSVName(uname)))
	if err != nil {
		return err
	}
	if err := benchtab.WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (pl *plotter) writeHTML() error {
	f, err := os.Create(pl.cfg.html)
	if err != nil {
		return err
	}
	if err := benchreport.FormatHTMLPage(f, pl.sections); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
