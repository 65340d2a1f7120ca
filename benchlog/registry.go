// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"errors"
	"fmt"
)

// A Grammar identifies how a benchmark tool lays out its output.
type Grammar int

const (
	// Simple is the layout of the point-to-point tools: a single
	// header line naming the benchmark, one units line, and a
	// single block of rows.
	Simple Grammar = iota
	// MultiBlock is the layout of the collective suite: each
	// benchmark run is announced by a "Benchmarking" banner and a
	// participant count, and the same benchmark may be repeated.
	MultiBlock
)

func (g Grammar) String() string {
	switch g {
	case Simple:
		return "Simple"
	case MultiBlock:
		return "MultiBlock"
	}
	return fmt.Sprintf("Grammar(%d)", int(g))
}

// A Variant describes one benchmark: the grammar of its log and the
// columns it produces.
type Variant struct {
	// Name is the benchmark name. It is the key tests are tagged
	// with and is unique within a Registry.
	Name string

	// Grammar selects the header scanner used for this variant.
	Grammar Grammar

	// X lists the independent columns, in order. Every variant
	// defined here has a single "bytes" column.
	X []string

	// Y lists the dependent columns, in order.
	Y []string

	// Labels maps each column name to its display label.
	Labels map[string]string

	// Fields maps each column name to the index of the token
	// holding its value in a data row.
	Fields map[string]int
}

// Columns returns the independent columns followed by the dependent
// columns.
func (v *Variant) Columns() []string {
	cols := make([]string, 0, len(v.X)+len(v.Y))
	cols = append(cols, v.X...)
	return append(cols, v.Y...)
}

// Label returns the display label of column col, or col itself if
// the variant has no label for it.
func (v *Variant) Label(col string) string {
	if l, ok := v.Labels[col]; ok {
		return l
	}
	return col
}

// Validate reports whether v is well formed.
func (v *Variant) Validate() error {
	if v.Name == "" {
		return errors.New("benchmark variant has no name")
	}
	if len(v.X) == 0 || len(v.Y) == 0 {
		return fmt.Errorf("benchmark %s: needs at least one independent and one dependent column", v.Name)
	}
	seen := make(map[string]bool)
	for _, col := range v.Columns() {
		if seen[col] {
			return fmt.Errorf("benchmark %s: column %s declared twice", v.Name, col)
		}
		seen[col] = true
		if _, ok := v.Fields[col]; !ok {
			return fmt.Errorf("benchmark %s: column %s has no token position", v.Name, col)
		}
		if _, ok := v.Labels[col]; !ok {
			return fmt.Errorf("benchmark %s: column %s has no label", v.Name, col)
		}
	}
	return nil
}

// ErrUnregistered is matched by errors.Is for every *UnregisteredError.
var ErrUnregistered = errors.New("benchmark not registered")

// An UnregisteredError reports a lookup of a benchmark name that no
// variant was registered under.
type UnregisteredError struct {
	Name string
}

func (e *UnregisteredError) Error() string {
	return fmt.Sprintf("benchmark not defined: %q", e.Name)
}

func (e *UnregisteredError) Is(target error) bool {
	return target == ErrUnregistered
}

// A DuplicateError reports a second registration of the same name.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("benchmark %q registered twice", e.Name)
}

// A Registry maps benchmark names to their variants.
//
// A Registry is populated once, typically at startup, and is then
// only read. Lookups are safe for concurrent use as long as no
// Register call runs at the same time.
type Registry struct {
	byName map[string]*Variant
	names  []string
}

// NewRegistry returns a Registry holding variants.
func NewRegistry(variants ...*Variant) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Variant)}
	for _, v := range variants {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Standard returns a new Registry holding every benchmark variant
// this package knows how to parse.
func Standard() *Registry {
	r, err := NewRegistry(standardVariants()...)
	if err != nil {
		// The static table is ours; a failure here is a bug.
		panic(err)
	}
	return r
}

// Register adds v to r. It fails if v is malformed or if another
// variant is already registered under v.Name.
func (r *Registry) Register(v *Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if _, ok := r.byName[v.Name]; ok {
		return &DuplicateError{v.Name}
	}
	r.byName[v.Name] = v
	r.names = append(r.names, v.Name)
	return nil
}

// Lookup returns the variant registered under name. If there is none,
// it returns an *UnregisteredError.
func (r *Registry) Lookup(name string) (*Variant, error) {
	v, ok := r.byName[name]
	if !ok {
		return nil, &UnregisteredError{name}
	}
	return v, nil
}

// Has reports whether a variant is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
