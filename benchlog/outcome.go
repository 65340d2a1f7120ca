// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"fmt"

	"github.com/netbench/netbench/benchtab"
)

// A Status tells how the scan for a benchmark header ended.
type Status int

const (
	// Parsed means a header was found and its data rows were read.
	// The table may still be empty.
	Parsed Status = iota
	// Aborted means the log reports that the benchmarked job
	// terminated abnormally before producing data.
	Aborted
	// NoHeader means the log ended before a complete benchmark
	// header was found.
	NoHeader
)

func (s Status) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Aborted:
		return "aborted"
	case NoHeader:
		return "no header"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// An Outcome is the result of parsing one raw log.
type Outcome struct {
	// Status is Parsed if a benchmark header was found. Otherwise
	// it says why there is no data, and Table is nil.
	Status Status

	// Name is the benchmark name announced by the log header.
	// It is empty unless Status is Parsed.
	Name string

	// Procs is the number of participating processes. The
	// point-to-point tools always run with two.
	Procs int

	// Table is the last completed block of rows.
	Table *benchtab.Table

	// Blocks holds every completed block whose header matched the
	// first one, in log order. Table is the last element.
	Blocks []*benchtab.Table

	// Tail is the status of the header scan that ended a
	// multi-block parse: NoHeader at the end of the log, Aborted if
	// a later run was aborted, or Parsed if the next block belongs
	// to a different benchmark or participant count. It is NoHeader
	// for single-block logs.
	Tail Status

	// Line is the number of the last line consumed.
	Line int

	// Err is the read error that ended the log early, if any.
	Err error
}

// OK reports whether o holds a table.
func (o *Outcome) OK() bool {
	return o.Status == Parsed && o.Table != nil
}
