// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"math"
)

// A ShapeError reports that two tables cannot be combined row by row.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return "benchtab: " + e.Msg
}

// Ratio returns a new table holding a's columns, except that column
// col is replaced by the element-wise quotient a[col]/b[col]. This is
// how speedups between two runs of the same benchmark are derived.
//
// a and b must have the same number of rows, the same independent
// columns, and identical values in those columns. col must be a
// dependent column of both tables.
//
// Division follows IEEE-754: x/0 is ±Inf and 0/0 is NaN. Callers that
// plot on a log scale should drop or clamp such rows.
func Ratio(a, b *Table, col string) (*Table, error) {
	if a.Len() != b.Len() {
		return nil, &ShapeError{fmt.Sprintf("row count mismatch: %d vs %d", a.Len(), b.Len())}
	}
	ai, bi := a.Indep(), b.Indep()
	if len(ai) != len(bi) {
		return nil, &ShapeError{fmt.Sprintf("independent columns differ: %v vs %v", ai, bi)}
	}
	for i, name := range ai {
		if bi[i] != name {
			return nil, &ShapeError{fmt.Sprintf("independent columns differ: %v vs %v", ai, bi)}
		}
		ax, bx := a.Column(name), b.Column(name)
		for j := range ax {
			if ax[j] != bx[j] && !(math.IsNaN(ax[j]) && math.IsNaN(bx[j])) {
				return nil, &ShapeError{fmt.Sprintf("row %d: %s %v vs %v", j, name, ax[j], bx[j])}
			}
		}
	}
	pa, ok := a.pos[col]
	if !ok || pa < a.nindep {
		return nil, &ShapeError{fmt.Sprintf("no dependent column %q in numerator", col)}
	}
	pb, ok := b.pos[col]
	if !ok || pb < b.nindep {
		return nil, &ShapeError{fmt.Sprintf("no dependent column %q in denominator", col)}
	}

	out := a.Clone()
	num, den := a.cols[pa], b.cols[pb]
	q := out.cols[pa]
	for j := range q {
		q[j] = num[j] / den[j]
	}
	return out, nil
}
