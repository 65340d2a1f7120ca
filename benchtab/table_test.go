// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"math"
	"reflect"
	"testing"
)

func TestTable(t *testing.T) {
	tab := New([]string{"bytes"}, []string{"latency", "bandwidth"})
	if got, want := tab.Columns(), []string{"bytes", "latency", "bandwidth"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if got, want := tab.Indep(), []string{"bytes"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indep() = %v, want %v", got, want)
	}
	if got, want := tab.Dep(), []string{"latency", "bandwidth"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Dep() = %v, want %v", got, want)
	}
	if tab.Len() != 0 {
		t.Errorf("new table has %d rows", tab.Len())
	}
	if tab.Column("latency") == nil {
		t.Errorf("empty column is nil")
	}
	if tab.Column("avgtime") != nil || tab.Has("avgtime") {
		t.Errorf("table reports a column it does not have")
	}

	tab.AppendRow(1, 0.5, 2)
	tab.AppendRow(2, 0.6, 3.5)
	if tab.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tab.Len())
	}
	if got, want := tab.Column("bandwidth"), []float64{2, 3.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("bandwidth = %v, want %v", got, want)
	}
	if got, want := tab.Row(1), []float64{2, 0.6, 3.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Row(1) = %v, want %v", got, want)
	}

	// Returned column lists are copies.
	tab.Columns()[0] = "x"
	if !tab.Has("bytes") || tab.Columns()[0] != "bytes" {
		t.Errorf("modifying Columns() result changed the table")
	}
}

func TestTablePanics(t *testing.T) {
	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		f()
	}
	mustPanic("duplicate column", func() { New([]string{"bytes"}, []string{"bytes"}) })
	mustPanic("short row", func() { New([]string{"bytes"}, []string{"latency"}).AppendRow(1) })
}

func TestClone(t *testing.T) {
	a := New([]string{"bytes"}, []string{"latency"})
	a.AppendRow(1, 0.5)
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatalf("clone differs from original")
	}
	b.AppendRow(2, 0.6)
	b.Column("latency")[0] = 9
	if a.Len() != 1 || a.Column("latency")[0] != 0.5 {
		t.Errorf("modifying clone changed original")
	}
}

func TestEqual(t *testing.T) {
	build := func(indep, dep []string, rows ...[]float64) *Table {
		t := New(indep, dep)
		for _, r := range rows {
			t.AppendRow(r...)
		}
		return t
	}
	x, y := []string{"bytes"}, []string{"latency"}
	base := build(x, y, []float64{1, 0.5}, []float64{2, math.NaN()})
	for _, test := range []struct {
		name string
		u    *Table
		want bool
	}{
		{"same", build(x, y, []float64{1, 0.5}, []float64{2, math.NaN()}), true},
		{"value", build(x, y, []float64{1, 0.5}, []float64{2, 0.7}), false},
		{"rows", build(x, y, []float64{1, 0.5}), false},
		{"names", build(x, []string{"avgtime"}, []float64{1, 0.5}, []float64{2, math.NaN()}), false},
		{"split", build(nil, []string{"bytes", "latency"}, []float64{1, 0.5}, []float64{2, math.NaN()}), false},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := base.Equal(test.u); got != test.want {
				t.Errorf("Equal = %v, want %v", got, test.want)
			}
		})
	}
}
