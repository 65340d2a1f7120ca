// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"strconv"

	"github.com/netbench/netbench/benchtab"
)

// A rowState is the result of reading one data row.
type rowState int

const (
	// rowOK means a row was decoded.
	rowOK rowState = iota
	// rowEndBlock means the line just read is not a data row.
	// The tools print no end-of-block marker, so this is also how
	// well-formed blocks end.
	rowEndBlock
	// rowEndStream means the log is exhausted.
	rowEndStream
)

// readRow reads lines until it decodes a data row into row, the block
// ends, or the stream ends. Rows whose leading independent value is
// zero are warm-up rows and are skipped.
//
// Independent columns must be integers; dependent columns may be any
// floating-point value.
func (v *Variant) readRow(l *Lines, row []float64) rowState {
next:
	for {
		toks, ok := l.Next()
		if !ok {
			return rowEndStream
		}
		if len(toks) == 0 {
			return rowEndBlock
		}
		for i, col := range v.X {
			f := v.Fields[col]
			if f >= len(toks) {
				return rowEndBlock
			}
			x, err := strconv.ParseInt(toks[f], 10, 64)
			if err != nil {
				return rowEndBlock
			}
			if i == 0 && x == 0 {
				continue next
			}
			row[i] = float64(x)
		}
		for i, col := range v.Y {
			f := v.Fields[col]
			if f >= len(toks) {
				return rowEndBlock
			}
			y, err := strconv.ParseFloat(toks[f], 64)
			if err != nil {
				return rowEndBlock
			}
			row[len(v.X)+i] = y
		}
		return rowOK
	}
}

// readBlock reads consecutive data rows into a new table. It reports
// whether the block ended with the stream.
func (v *Variant) readBlock(l *Lines) (t *benchtab.Table, eof bool) {
	t = benchtab.New(v.X, v.Y)
	row := make([]float64, len(v.X)+len(v.Y))
	for {
		switch v.readRow(l, row) {
		case rowOK:
			t.AppendRow(row...)
		case rowEndBlock:
			return t, false
		case rowEndStream:
			return t, true
		}
	}
}
