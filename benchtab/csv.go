// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVName returns the file name used when exporting the table of the
// test instance with unique name uname.
func CSVName(uname string) string {
	return "csv_" + strings.ReplaceAll(uname, "/", "_") + ".csv"
}

// WriteCSV writes t to w as comma-separated values.
//
// The first record is the header: an empty cell for the row index
// followed by the column names. Each following record is the 0-based
// row index followed by the row's values, formatted with the fewest
// digits that read back to the same float64.
func WriteCSV(w io.Writer, t *Table) error {
	tab := make([][]string, 0, t.Len()+1)
	tab = append(tab, append([]string{""}, t.names...))
	for i := 0; i < t.Len(); i++ {
		rec := make([]string, 0, len(t.cols)+1)
		rec = append(rec, strconv.Itoa(i))
		for _, col := range t.cols {
			rec = append(rec, strof(col[i]))
		}
		tab = append(tab, rec)
	}
	csvw := csv.NewWriter(w)
	if err := csvw.WriteAll(tab); err != nil {
		return err
	}
	return csvw.Error()
}

// ReadCSV reads a table written by WriteCSV. The first column after
// the index becomes the independent column; the others are
// dependent.
func ReadCSV(r io.Reader) (*Table, error) {
	csvr := csv.NewReader(r)
	hdr, err := csvr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("benchtab: empty CSV input")
	} else if err != nil {
		return nil, err
	}
	if len(hdr) < 2 {
		return nil, fmt.Errorf("benchtab: CSV header has %d fields, want at least 2", len(hdr))
	}
	t := New(hdr[1:2], hdr[2:])
	row := make([]float64, len(hdr)-1)
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		for i, f := range rec[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				line, _ := csvr.FieldPos(i + 1)
				return nil, fmt.Errorf("benchtab: line %d: column %s: %w", line, hdr[i+1], err)
			}
			row[i] = v
		}
		t.AppendRow(row...)
	}
	return t, nil
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
