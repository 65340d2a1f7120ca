// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tab := pingTable([]float64{1, 4, 1}, []float64{2, 1, 2}, []float64{4, 2, -1})
	s, ok := Summarize(tab, "latency")
	if !ok {
		t.Fatal("Summarize reported no values")
	}
	near := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	if s.N != 3 || s.Column != "latency" {
		t.Errorf("got %+v", s)
	}
	near("Min", s.Min, 1)
	near("Max", s.Max, 4)
	near("Mean", s.Mean, 7.0/3)
	near("GeoMean", s.GeoMean, 2)
	near("Median", s.Median, 2)
	near("StdDev", s.StdDev, math.Sqrt(7.0/3))

	s, _ = Summarize(tab, "bandwidth")
	if !math.IsNaN(s.GeoMean) {
		t.Errorf("GeoMean with a negative value = %v, want NaN", s.GeoMean)
	}

	zero := pingTable([]float64{1, 3, 0}, []float64{2, 5, 2})
	if s, _ := Summarize(zero, "bandwidth"); !math.IsNaN(s.GeoMean) {
		t.Errorf("GeoMean with a zero value = %v, want NaN", s.GeoMean)
	}

	if _, ok := Summarize(tab, "avgtime"); ok {
		t.Errorf("Summarize of a missing column reported values")
	}
	if _, ok := Summarize(pingTable(), "latency"); ok {
		t.Errorf("Summarize of an empty column reported values")
	}
}

func TestSummarizeAll(t *testing.T) {
	tab := pingTable([]float64{1, 4, 1})
	sums := SummarizeAll(tab)
	if len(sums) != 2 || sums[0].Column != "latency" || sums[1].Column != "bandwidth" {
		t.Errorf("SummarizeAll = %+v", sums)
	}
	if len(SummarizeAll(pingTable())) != 0 {
		t.Errorf("SummarizeAll of an empty table returned summaries")
	}
}

func TestSummarizeMedianUnsorted(t *testing.T) {
	tab := pingTable([]float64{1, 9, 1}, []float64{2, 1, 1}, []float64{4, 5, 1}, []float64{8, 3, 1}, []float64{16, 7, 1})
	s, ok := Summarize(tab, "latency")
	if !ok {
		t.Fatal("Summarize reported no values")
	}
	if s.Median != 5 {
		t.Errorf("Median = %v, want 5", s.Median)
	}
	if col := tab.Column("latency"); col[0] != 9 || col[4] != 7 {
		t.Errorf("Summarize reordered the column: %v", col)
	}
}
