// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"strconv"
	"strings"
)

// Tokens that drive the header scanners.
const (
	// simpleMarker identifies the header line of the
	// point-to-point tools, e.g. "# OSU MPI Latency Test v5.6".
	simpleMarker      = "OSU"
	simpleMarkerField = 1
	simpleNameField   = 3
	// Point-to-point tools always run between two processes.
	simpleProcs = 2

	// "# Benchmarking PingPong"
	benchmarkingMarker = "Benchmarking"
	// "# #processes = 2"
	procsField = 3
	// "#-----------"
	separatorPrefix = "#-"
)

// columnHeaders are the first tokens of the line that introduces the
// data rows of a multi-block benchmark.
var columnHeaders = map[string]bool{
	"#bytes":       true,
	"#repetitions": true,
}

type header struct {
	status Status
	name   string
	procs  int
}

// scanSimpleHeader advances l past the header of a point-to-point
// log. On success l is positioned just before the first data row.
func scanSimpleHeader(l *Lines) header {
	for {
		toks, ok := l.Next()
		if !ok {
			return header{status: NoHeader}
		}
		if len(toks) < 2 || toks[simpleMarkerField] != simpleMarker {
			continue
		}
		h := header{status: Parsed, procs: simpleProcs}
		if len(toks) > simpleNameField {
			h.name = toks[simpleNameField]
		}
		// Skip the units line.
		l.Next()
		return h
	}
}

// scanMultiHeader advances l past the next benchmark header of a
// multi-block log. On success l is positioned just before the first
// data row.
//
// Benchmarks that are announced but not registered are reported
// through p.Warn and skipped.
func (p *Parser) scanMultiHeader(l *Lines) header {
	var name string
	for name == "" {
		toks, ok := l.Next()
		if !ok {
			return header{status: NoHeader}
		}
		// The launcher banner "=   BAD TERMINATION OF ONE OF ..."
		// always has more than three tokens; checking the
		// second and third only needs three.
		if len(toks) >= 3 && toks[1] == "BAD" && toks[2] == "TERMINATION" {
			return header{status: Aborted}
		}
		if len(toks) != 3 || toks[1] != benchmarkingMarker {
			continue
		}
		if !p.Registry.Has(toks[2]) {
			p.warn("line %d: unsupported benchmark %s", l.Line(), toks[2])
			continue
		}
		name = toks[2]
	}

	toks, ok := l.Next()
	if !ok {
		return header{status: NoHeader}
	}
	if len(toks) <= procsField {
		p.warn("line %d: %s: missing process count", l.Line(), name)
		return header{status: NoHeader}
	}
	procs, err := strconv.Atoi(toks[procsField])
	if err != nil {
		p.warn("line %d: %s: bad process count %q", l.Line(), name, toks[procsField])
		return header{status: NoHeader}
	}

	// Skip to the separator, then to the column header line.
	for {
		toks, ok := l.Next()
		if !ok {
			return header{status: NoHeader}
		}
		if len(toks) == 1 && strings.HasPrefix(toks[0], separatorPrefix) {
			break
		}
	}
	for {
		toks, ok := l.Next()
		if !ok {
			return header{status: NoHeader}
		}
		if len(toks) > 0 && columnHeaders[toks[0]] {
			break
		}
	}
	return header{status: Parsed, name: name, procs: procs}
}
