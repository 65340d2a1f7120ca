// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"io"

	"github.com/netbench/netbench/internal/texttab"
)

// FormatText writes a fixed-width text rendering of sections to w.
func FormatText(w io.Writer, sections []Section) error {
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
		v := newView(s)
		if _, err := fmt.Fprintf(w, "%s\n", v.Title); err != nil {
			return err
		}
		var tab texttab.Table
		tab.Row()
		for j, col := range v.Columns {
			tab.Cell(col, alignOf(j))
		}
		for j, row := range v.Rows {
			if j == 0 {
				tab.Rule()
			} else {
				tab.Row()
			}
			for k, cell := range row {
				tab.Cell(cell, alignOf(k))
			}
		}
		for j, row := range v.Stats {
			if j == 0 {
				tab.Rule()
			} else {
				tab.Row()
			}
			for k, cell := range row {
				tab.Cell(cell, alignOf(k))
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

func alignOf(col int) texttab.CellOption {
	if col == 0 {
		return texttab.Left
	}
	return texttab.Right
}
