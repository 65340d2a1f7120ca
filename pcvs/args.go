// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcvs

import (
	"fmt"
	"strings"
)

// LoadAll loads the build directories named by args. Each argument is
// either a directory or label=directory; the label names the suite in
// charts. Unlabeled directories given more than once are told apart
// by appending "#N" to their labels.
func LoadAll(args []string, opts Options) ([]*Suite, error) {
	type input struct {
		dir, label string
		labeled    bool
	}
	var inputs []input
	count := make(map[string]int)
	for _, arg := range args {
		in := input{dir: arg, label: arg}
		if i := strings.Index(arg, "="); i >= 0 {
			in = input{dir: arg[i+1:], label: arg[:i], labeled: true}
		} else {
			count[arg]++
		}
		inputs = append(inputs, in)
	}
	seen := make(map[string]int)
	var suites []*Suite
	for _, in := range inputs {
		if !in.labeled && count[in.dir] > 1 {
			in.label = fmt.Sprintf("%s#%d", in.dir, seen[in.dir])
			seen[in.dir]++
		}
		s, err := Load(in.dir, opts)
		if err != nil {
			return nil, err
		}
		s.Label = in.label
		suites = append(suites, s)
	}
	return suites, nil
}
