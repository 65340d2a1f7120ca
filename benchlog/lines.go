// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bufio"
	"io"
	"strings"
)

// maxLineLen bounds the part of a log line that is tokenized. Benchmark
// tools print short lines, but MPI launchers can dump long environment
// listings into the same stream. Longer lines are truncated.
const maxLineLen = 1 << 20

// Lines reads a raw benchmark log one line at a time and splits each
// line into whitespace-separated tokens.
//
// Lines only moves forward. Once a line has been returned by Next it
// cannot be read again.
type Lines struct {
	r    *bufio.Reader
	buf  []byte
	line int
	err  error
}

// NewLines returns a Lines reading from r.
func NewLines(r io.Reader) *Lines {
	return &Lines{r: bufio.NewReader(r)}
}

// Next reads the next line and returns its tokens. Only the first
// maxLineLen bytes of a line are tokenized.
//
// At the end of the stream, or after a read error, Next returns
// nil, false. An empty or all-blank line returns an empty, non-nil
// slice and true, so callers can tell "no tokens" apart from "no
// line".
func (l *Lines) Next() ([]string, bool) {
	if l.err != nil {
		return nil, false
	}
	l.buf = l.buf[:0]
	for {
		frag, more, err := l.r.ReadLine()
		if err != nil {
			// Fragments of a line cut short by a failed
			// read are dropped.
			l.err = err
			return nil, false
		}
		if n := maxLineLen - len(l.buf); n > 0 {
			if len(frag) > n {
				frag = frag[:n]
			}
			l.buf = append(l.buf, frag...)
		}
		if !more {
			break
		}
	}
	l.line++
	toks := strings.Fields(string(l.buf))
	if toks == nil {
		toks = []string{}
	}
	return toks, true
}

// Line returns the 1-based number of the line most recently returned
// by Next, or 0 if Next has not returned a line yet.
func (l *Lines) Line() int {
	return l.line
}

// Err returns the first non-EOF error encountered while reading.
func (l *Lines) Err() error {
	if l.err == io.EOF {
		return nil
	}
	return l.err
}
