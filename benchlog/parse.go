// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/netbench/netbench/benchtab"
)

// A Parser turns raw benchmark logs into tables.
//
// A Parser holds no per-log state, so one Parser may parse many logs,
// including concurrently.
type Parser struct {
	// Registry resolves benchmark names. It must not be nil.
	Registry *Registry

	// Warn, if non-nil, is called for recoverable problems, such as
	// a log announcing a benchmark that is not registered. If nil,
	// warnings go to the standard logger.
	Warn func(format string, args ...interface{})
}

// NewParser returns a Parser using reg.
func NewParser(reg *Registry) *Parser {
	return &Parser{Registry: reg}
}

func (p *Parser) warn(format string, args ...interface{}) {
	if p.Warn != nil {
		p.Warn(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Parse parses the raw log r, which was produced by the benchmark
// called name.
//
// If name is not registered, Parse returns an *UnregisteredError and
// no Outcome. A log that was aborted, or that holds no recognizable
// header, is not an error: the Outcome's Status says so.
// If reading r fails, the log is treated as ending there and the
// Outcome's Err records the failure.
func (p *Parser) Parse(name string, r io.Reader) (*Outcome, error) {
	v, err := p.Registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	l := NewLines(r)
	var out *Outcome
	switch v.Grammar {
	case Simple:
		out = p.parseSimple(v, l)
	case MultiBlock:
		out = p.parseMulti(v, l)
	default:
		return nil, fmt.Errorf("benchmark %s: unknown grammar %v", v.Name, v.Grammar)
	}
	out.Line = l.Line()
	if err := l.Err(); err != nil {
		out.Err = fmt.Errorf("%s: line %d: %w", name, l.Line(), err)
		p.warn("%v", out.Err)
	}
	return out, nil
}

// ParseString is like Parse, but reads the log from a string.
func (p *Parser) ParseString(name, raw string) (*Outcome, error) {
	return p.Parse(name, strings.NewReader(raw))
}

func (p *Parser) parseSimple(v *Variant, l *Lines) *Outcome {
	h := scanSimpleHeader(l)
	out := &Outcome{Status: h.status, Name: h.name, Procs: h.procs, Tail: NoHeader}
	if h.status != Parsed {
		return out
	}
	t, _ := v.readBlock(l)
	out.Table = t
	out.Blocks = []*benchtab.Table{t}
	return out
}

func (p *Parser) parseMulti(v *Variant, l *Lines) *Outcome {
	h := p.scanMultiHeader(l)
	out := &Outcome{Status: h.status, Name: h.name, Procs: h.procs, Tail: h.status}
	if h.status != Parsed {
		return out
	}
	if h.name != v.Name {
		p.warn("line %d: log for %s announces %s", l.Line(), v.Name, h.name)
	}
	for {
		t, eof := v.readBlock(l)
		out.Blocks = append(out.Blocks, t)
		out.Table = t
		if eof {
			out.Tail = NoHeader
			return out
		}
		next := p.scanMultiHeader(l)
		out.Tail = next.status
		if next.status != Parsed {
			return out
		}
		if next.name != h.name || next.procs != h.procs {
			// A different benchmark or process count starts a
			// separate table, which this parse does not read.
			return out
		}
	}
}
