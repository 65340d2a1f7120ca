// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pcvs loads benchmark test suites from the raw result files
// of a PCVS build directory.
//
// A build directory holds a rawdata directory of JSON documents of
// the form
//
//	{"tests": [{
//		"id": {"te_name": "PingPong", "fq_name": "imb/PingPong", "comb": {"n_node": 2}},
//		"data": {"tags": ["imb", "pt2pt"]},
//		"result": {"output": "<base64 log>"}
//	}]}
//
// Each test's output is the raw log of one benchmark run.
package pcvs

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RawDataDir is the directory under a build directory that holds the
// result files.
const RawDataDir = "rawdata"

// skipNames lists benchmarks whose logs carry no message size column.
var skipNames = map[string]bool{
	"Barrier":  true,
	"Ibarrier": true,
}

// compilationTag marks build steps, which produce no benchmark log.
const compilationTag = "compilation"

// A Test is one benchmark run of a suite.
type Test struct {
	// Name is the benchmark name, such as "PingPong".
	Name string
	// FQName is the fully qualified test name.
	FQName string
	// UName is unique across suites: the rawdata directory and
	// FQName joined by "_", with every "/" replaced by "_".
	UName string
	Tags  []string

	// IterValue is the value of the iterator key in the test's
	// combination, if HasIter.
	IterValue string
	HasIter   bool

	// Output is the decoded raw log.
	Output string
	// File is the result file the test came from.
	File string
}

// A Suite is the set of tests loaded from one build directory.
type Suite struct {
	// Dir is the build directory.
	Dir string
	// Label identifies the suite in charts and reports.
	Label string

	tests map[string][]*Test
	names []string
}

// Options control Load.
type Options struct {
	// Iterator names the combination key whose value is recorded
	// in Test.IterValue.
	Iterator string

	// Warn, if non-nil, is called for tests that lack the
	// iterator key. If nil, warnings go to the standard logger.
	Warn func(format string, args ...interface{})
}

func (o *Options) warn(format string, args ...interface{}) {
	if o.Warn != nil {
		o.Warn(format, args...)
		return
	}
	log.Printf(format, args...)
}

// A RecordError reports a malformed test record.
type RecordError struct {
	File  string
	Index int // index of the test in the file's list
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: test %d: %v", e.File, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ErrNoTags is the error of a test record that carries no tags.
var ErrNoTags = errors.New("test is not tagged")

type record struct {
	ID struct {
		Name   string                     `json:"te_name"`
		FQName string                     `json:"fq_name"`
		Comb   map[string]json.RawMessage `json:"comb"`
	} `json:"id"`
	Data struct {
		Tags *[]string `json:"tags"`
	} `json:"data"`
	Result struct {
		Output string `json:"output"`
	} `json:"result"`
}

// Load reads every result file of the build directory dir.
//
// Tests of benchmarks without a size column and compilation steps are
// skipped. Tests of each benchmark are ordered by UName, descending.
func Load(dir string, opts Options) (*Suite, error) {
	raw := filepath.Join(dir, RawDataDir)
	ents, err := os.ReadDir(raw)
	if err != nil {
		return nil, err
	}
	s := &Suite{Dir: dir, Label: dir, tests: make(map[string][]*Test)}
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		if err := s.loadFile(raw, filepath.Join(raw, ent.Name()), &opts); err != nil {
			return nil, err
		}
	}
	for _, tests := range s.tests {
		sort.SliceStable(tests, func(i, j int) bool {
			return tests[i].UName > tests[j].UName
		})
	}
	return s, nil
}

func (s *Suite) loadFile(raw, path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc struct {
		Tests []record `json:"tests"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for i, rec := range doc.Tests {
		if skipNames[rec.ID.Name] {
			continue
		}
		if rec.Data.Tags == nil {
			return &RecordError{path, i, ErrNoTags}
		}
		tags := *rec.Data.Tags
		if contains(tags, compilationTag) {
			continue
		}
		out, err := base64.StdEncoding.DecodeString(rec.Result.Output)
		if err != nil {
			return &RecordError{path, i, fmt.Errorf("decoding output: %w", err)}
		}
		t := &Test{
			Name:   rec.ID.Name,
			FQName: rec.ID.FQName,
			UName:  strings.ReplaceAll(raw+"_"+rec.ID.FQName, "/", "_"),
			Tags:   tags,
			Output: string(out),
			File:   path,
		}
		if v, ok := rec.ID.Comb[opts.Iterator]; ok {
			t.IterValue, t.HasIter = combValue(v), true
		} else if opts.Iterator != "" {
			opts.warn("%s: test %s has no iterator %s", path, t.Name, opts.Iterator)
		}
		if _, ok := s.tests[t.Name]; !ok {
			s.names = append(s.names, t.Name)
		}
		s.tests[t.Name] = append(s.tests[t.Name], t)
	}
	return nil
}

// combValue returns a combination value as text. Strings are
// unquoted; numbers keep their JSON spelling.
func combValue(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Names returns the benchmark names of s in the order they were
// first seen.
func (s *Suite) Names() []string {
	return append([]string(nil), s.names...)
}

// Tests returns the tests of benchmark name, ordered by UName,
// descending.
func (s *Suite) Tests(name string) []*Test {
	return s.tests[name]
}

// Len returns the number of tests in s.
func (s *Suite) Len() int {
	n := 0
	for _, tests := range s.tests {
		n += len(tests)
	}
	return n
}
