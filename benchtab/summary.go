// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Summary describes the distribution of one column of a table.
type Summary struct {
	Column string
	N      int

	Min, Max float64
	Mean     float64
	// GeoMean is NaN if any value is zero or negative.
	GeoMean float64
	Median  float64
	// StdDev is the sample standard deviation.
	StdDev float64
}

// Summarize computes a Summary of column col of t. It reports false if
// t has no such column or the column is empty.
func Summarize(t *Table, col string) (Summary, bool) {
	xs := t.Column(col)
	if len(xs) == 0 {
		return Summary{}, false
	}
	s := stats.Sample{Xs: xs}
	sum := Summary{Column: col, N: len(xs)}
	sum.Min, sum.Max = s.Bounds()
	sum.Mean = s.Mean()
	if sum.Min > 0 {
		sum.GeoMean = s.GeoMean()
	} else {
		sum.GeoMean = math.NaN()
	}
	sum.Median = s.Quantile(0.5)
	sum.StdDev = s.StdDev()
	return sum, true
}

// SummarizeAll summarizes every dependent column of t, in column order.
func SummarizeAll(t *Table) []Summary {
	var sums []Summary
	for _, col := range t.Dep() {
		if sum, ok := Summarize(t, col); ok {
			sums = append(sums, sum)
		}
	}
	return sums
}
