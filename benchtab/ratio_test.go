// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func pingTable(rows ...[]float64) *Table {
	t := New([]string{"bytes"}, []string{"latency", "bandwidth"})
	for _, r := range rows {
		t.AppendRow(r...)
	}
	return t
}

func TestRatioSelf(t *testing.T) {
	a := pingTable([]float64{1, 0.21, 4.76}, []float64{2, 0.22, 9.09}, []float64{4, 0.23, 17.39})
	r, err := Ratio(a, a, "latency")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := r.Column("latency"), []float64{1, 1, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("latency ratio = %v, want %v", got, want)
	}
	if got, want := r.Column("bytes"), a.Column("bytes"); !reflect.DeepEqual(got, want) {
		t.Errorf("bytes = %v, want %v", got, want)
	}
	// Other dependent columns come from the numerator.
	if got, want := r.Column("bandwidth"), a.Column("bandwidth"); !reflect.DeepEqual(got, want) {
		t.Errorf("bandwidth = %v, want %v", got, want)
	}
	if a.Column("latency")[0] != 0.21 {
		t.Errorf("Ratio modified its input")
	}
}

func TestRatio(t *testing.T) {
	a := pingTable([]float64{1, 4, 0}, []float64{2, 0, 0}, []float64{4, 3, 0})
	b := pingTable([]float64{1, 2, 0}, []float64{2, 0, 0}, []float64{4, 0, 0})
	r, err := Ratio(a, b, "latency")
	if err != nil {
		t.Fatal(err)
	}
	got := r.Column("latency")
	if got[0] != 2 || !math.IsNaN(got[1]) || !math.IsInf(got[2], 1) {
		t.Errorf("latency ratio = %v, want [2 NaN +Inf]", got)
	}
}

func TestRatioShape(t *testing.T) {
	a := pingTable([]float64{1, 0.2, 4}, []float64{2, 0.3, 8})
	coll := New([]string{"bytes"}, []string{"avgtime"})
	coll.AppendRow(1, 1)
	coll.AppendRow(2, 1)
	for _, test := range []struct {
		name string
		b    *Table
		col  string
	}{
		{"rows", pingTable([]float64{1, 0.2, 4}), "latency"},
		{"sizes", pingTable([]float64{1, 0.2, 4}, []float64{4, 0.3, 8}), "latency"},
		{"missing", coll, "latency"},
		{"independent", a, "bytes"},
		{"unknown", a, "avgtime"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Ratio(a, test.b, test.col)
			var se *ShapeError
			if !errors.As(err, &se) {
				t.Errorf("err = %v, want *ShapeError", err)
			}
		})
	}
}
