// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab holds parsed benchmark measurements as column
// oriented tables and provides the operations consumers apply to
// them: derived metrics, summaries, and CSV export.
//
// A Table has an ordered set of named columns of equal length. The
// leading columns are independent (usually the message size in
// bytes); the remaining columns are dependent measurements. Rows keep
// the order in which they were appended and are never re-sorted.
package benchtab

import (
	"fmt"
	"math"
)

// A Table is a set of equal-length numeric columns.
type Table struct {
	names  []string
	nindep int
	pos    map[string]int
	cols   [][]float64
}

// New returns an empty table with the given independent and
// dependent columns. Column names must be distinct.
func New(indep, dep []string) *Table {
	t := &Table{
		names:  make([]string, 0, len(indep)+len(dep)),
		nindep: len(indep),
		pos:    make(map[string]int),
	}
	for _, name := range append(append([]string(nil), indep...), dep...) {
		if _, ok := t.pos[name]; ok {
			panic(fmt.Sprintf("benchtab: duplicate column %q", name))
		}
		t.pos[name] = len(t.names)
		t.names = append(t.names, name)
	}
	t.cols = make([][]float64, len(t.names))
	for i := range t.cols {
		t.cols[i] = []float64{}
	}
	return t
}

// Columns returns all column names, independent columns first.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Indep returns the names of the independent columns.
func (t *Table) Indep() []string {
	return append([]string(nil), t.names[:t.nindep]...)
}

// Dep returns the names of the dependent columns.
func (t *Table) Dep() []string {
	return append([]string(nil), t.names[t.nindep:]...)
}

// Has reports whether t has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.pos[name]
	return ok
}

// Column returns the values of column name, or nil if there is no
// such column. The returned slice is shared with t and must not be
// modified.
func (t *Table) Column(name string) []float64 {
	i, ok := t.pos[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// AppendRow appends one row. vals must hold one value per column, in
// the order returned by Columns.
func (t *Table) AppendRow(vals ...float64) {
	if len(vals) != len(t.cols) {
		panic(fmt.Sprintf("benchtab: row has %d values, table has %d columns", len(vals), len(t.cols)))
	}
	for i, v := range vals {
		t.cols[i] = append(t.cols[i], v)
	}
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	row := make([]float64, len(t.cols))
	for j, col := range t.cols {
		row[j] = col[i]
	}
	return row
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	u := &Table{
		names:  append([]string(nil), t.names...),
		nindep: t.nindep,
		pos:    make(map[string]int, len(t.pos)),
		cols:   make([][]float64, len(t.cols)),
	}
	for k, v := range t.pos {
		u.pos[k] = v
	}
	for i, col := range t.cols {
		u.cols[i] = append([]float64{}, col...)
	}
	return u
}

// Equal reports whether t and u have the same columns, in the same
// order and split between independent and dependent, holding
// bit-identical values. NaNs compare equal to NaNs with the same bits.
func (t *Table) Equal(u *Table) bool {
	if t.nindep != u.nindep || len(t.names) != len(u.names) || t.Len() != u.Len() {
		return false
	}
	for i, name := range t.names {
		if u.names[i] != name {
			return false
		}
		for j, v := range t.cols[i] {
			if math.Float64bits(v) != math.Float64bits(u.cols[i][j]) {
				return false
			}
		}
	}
	return true
}
