// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot draws benchmark tables as line charts.
//
// A Figure holds one metric of one benchmark. Each table added to it
// becomes a dashed series with its own color and marker, and both axes
// use a logarithmic scale when the data allows it.
package benchplot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/netbench/netbench/benchtab"
	"github.com/netbench/netbench/benchunit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Options control how a Figure is rendered.
type Options struct {
	// Width and Height give the image size. Zero means
	// DefaultWidth and DefaultHeight.
	Width, Height vg.Length

	// TickStep labels every TickStep'th message size on the x
	// axis. Zero means DefaultTickStep.
	TickStep int

	// Linear disables logarithmic axes.
	Linear bool
}

const (
	DefaultWidth    = 6.4 * vg.Inch
	DefaultHeight   = 4.8 * vg.Inch
	DefaultTickStep = 4
)

func (o Options) size() (w, h vg.Length) {
	w, h = o.Width, o.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return
}

// ErrNoData is returned by Plot when no series has a finite point.
var ErrNoData = errors.New("nothing to plot")

// A Series is one line of a Figure.
type Series struct {
	Label string
	// XCol names the column X came from.
	XCol string
	X, Y []float64
}

// A Figure collects the series of one chart.
type Figure struct {
	Title  string
	XLabel string
	YLabel string

	series []Series
}

// NewFigure returns an empty Figure.
func NewFigure(title, xLabel, yLabel string) *Figure {
	return &Figure{Title: title, XLabel: xLabel, YLabel: yLabel}
}

// Add adds columns x and y of t as a new series.
func (f *Figure) Add(label string, t *benchtab.Table, x, y string) error {
	if !t.Has(x) {
		return fmt.Errorf("series %s: no column %q", label, x)
	}
	if !t.Has(y) {
		return fmt.Errorf("series %s: no column %q", label, y)
	}
	f.series = append(f.series, Series{
		Label: label,
		XCol:  x,
		X:     append([]float64(nil), t.Column(x)...),
		Y:     append([]float64(nil), t.Column(y)...),
	})
	return nil
}

// Series returns the series added to f, in order.
func (f *Figure) Series() []Series {
	return f.series
}

// Len returns the number of series in f.
func (f *Figure) Len() int {
	return len(f.series)
}

// points returns the finite points of s. Ratios of empty
// measurements can be NaN or infinite and cannot be drawn.
func (s *Series) points() plotter.XYs {
	xys := make(plotter.XYs, 0, len(s.X))
	for i := range s.X {
		x, y := s.X[i], s.Y[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
	}
	return xys
}

// Plot builds the chart for f.
func (f *Figure) Plot(opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	var xs, ys extent
	var last *Series
	for i := range f.series {
		s := &f.series[i]
		xys := s.points()
		if len(xys) == 0 {
			continue
		}
		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Label, err)
		}
		st := styleOf(i)
		line.LineStyle.Color = st.color
		line.LineStyle.Dashes = dashes
		scatter.GlyphStyle.Color = st.color
		scatter.GlyphStyle.Shape = st.shape
		scatter.GlyphStyle.Radius = st.radius
		p.Add(line, scatter)
		p.Legend.Add(s.Label, line, scatter)

		for _, xy := range xys {
			xs.add(xy.X)
			ys.add(xy.Y)
		}
		last = s
	}
	if last == nil {
		return nil, fmt.Errorf("%s: %w", f.Title, ErrNoData)
	}

	if !opts.Linear && xs.positive() {
		xs.setLog(&p.X)
		p.X.Tick.Marker = decadeTicks{}
	}
	if !opts.Linear && ys.positive() {
		ys.setLog(&p.Y)
		p.Y.Tick.Marker = decadeTicks{}
	}
	if last.XCol == "bytes" {
		step := opts.TickStep
		if step == 0 {
			step = DefaultTickStep
		}
		var sizes []float64
		for _, xy := range last.points() {
			sizes = append(sizes, xy.X)
		}
		vals, labels := benchunit.SizeTicks(sizes, step)
		ticks := make(fixedTicks, len(vals))
		for i := range vals {
			ticks[i] = plot.Tick{Value: vals[i], Label: labels[i]}
		}
		p.X.Tick.Marker = ticks
	}
	return p, nil
}

// Save renders f to path. The image format is taken from the file
// extension: eps, jpg, jpeg, pdf, png, svg, tex, tif or tiff.
func (f *Figure) Save(path string, opts Options) error {
	p, err := f.Plot(opts)
	if err != nil {
		return err
	}
	w, h := opts.size()
	return p.Save(w, h, path)
}

// WriteTo renders f in the given format to w.
func (f *Figure) WriteTo(w io.Writer, format string, opts Options) error {
	p, err := f.Plot(opts)
	if err != nil {
		return err
	}
	width, height := opts.size()
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// FileName returns the file name of the chart of metric for
// benchmark, such as "PingPong_latency_speedup.pdf".
func FileName(benchmark, metric, suffix, format string) string {
	name := benchmark + "_" + metric + suffix + "." + strings.TrimPrefix(format, ".")
	return strings.ReplaceAll(name, "/", "_")
}

// extent tracks the range of the values on one axis.
type extent struct {
	min, max float64
	n        int
}

func (e *extent) add(v float64) {
	if e.n == 0 || v < e.min {
		e.min = v
	}
	if e.n == 0 || v > e.max {
		e.max = v
	}
	e.n++
}

func (e *extent) positive() bool {
	return e.n > 0 && e.min > 0
}

// setLog switches a to a logarithmic scale. A single distinct value
// is widened to a decade on each side, since a log axis cannot have
// an empty range.
func (e *extent) setLog(a *plot.Axis) {
	a.Scale = plot.LogScale{}
	if e.min == e.max {
		a.Min, a.Max = e.min/10, e.max*10
	}
}
