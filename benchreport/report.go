// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport renders benchmark tables with summary
// statistics as text or HTML.
package benchreport

import (
	"github.com/netbench/netbench/benchtab"
	"github.com/netbench/netbench/benchunit"
)

// A Section is one titled table of a report.
type Section struct {
	Title string
	Table *benchtab.Table
}

// statNames lists the summary rows shown under every table.
var statNames = []string{"min", "median", "mean", "geomean", "max"}

// A view is a Section with every cell formatted.
type view struct {
	Title   string
	Columns []string
	Rows    [][]string
	Stats   [][]string
}

func newView(s Section) view {
	t := s.Table
	v := view{Title: s.Title, Columns: t.Columns()}

	scalers := make([]func(float64) string, len(v.Columns))
	for i, col := range v.Columns {
		if benchunit.ClassOf(col) == benchunit.Binary {
			scalers[i] = benchunit.SizeLabel
		} else {
			scalers[i] = benchunit.FixedScale(t.Column(col)).Format
		}
	}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]string, len(row))
		for j, x := range row {
			cells[j] = scalers[j](x)
		}
		v.Rows = append(v.Rows, cells)
	}

	if t.Len() == 0 {
		return v
	}
	nindep := len(t.Indep())
	for _, name := range statNames {
		v.Stats = append(v.Stats, make([]string, len(v.Columns)))
		v.Stats[len(v.Stats)-1][0] = name
	}
	for j, col := range v.Columns {
		if j < nindep {
			continue
		}
		sum, _ := benchtab.Summarize(t, col)
		for k, x := range []float64{sum.Min, sum.Median, sum.Mean, sum.GeoMean, sum.Max} {
			v.Stats[k][j] = scalers[j](x)
		}
	}
	return v
}
