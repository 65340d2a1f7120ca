// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcvs

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type testRec struct {
	name, fq string
	comb     map[string]interface{}
	tags     []string // nil means no tags
	output   string
}

func (r testRec) json() map[string]interface{} {
	data := map[string]interface{}{}
	if r.tags != nil {
		data["tags"] = r.tags
	}
	return map[string]interface{}{
		"id":     map[string]interface{}{"te_name": r.name, "fq_name": r.fq, "comb": r.comb},
		"data":   data,
		"result": map[string]interface{}{"output": base64.StdEncoding.EncodeToString([]byte(r.output))},
	}
}

// writeSuite creates a build directory with one result file per
// element of files.
func writeSuite(t *testing.T, files ...[]testRec) string {
	t.Helper()
	dir := t.TempDir()
	raw := filepath.Join(dir, RawDataDir)
	if err := os.Mkdir(raw, 0777); err != nil {
		t.Fatal(err)
	}
	for i, recs := range files {
		var tests []interface{}
		for _, r := range recs {
			tests = append(tests, r.json())
		}
		data, err := json.Marshal(map[string]interface{}{"tests": tests})
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(raw, fmt.Sprintf("list_of_results_%d.json", i)), data, 0666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

var tags = []string{"imb"}

func TestLoad(t *testing.T) {
	dir := writeSuite(t,
		[]testRec{
			{"PingPong", "imb/PingPong_n2", map[string]interface{}{"n_node": 2}, tags, "log a"},
			{"Barrier", "imb/Barrier", nil, tags, "skipped"},
			{"PingPong", "imb/PingPong_n4", map[string]interface{}{"n_node": 4}, tags, "log b"},
			{"PingPong", "imb/build", nil, []string{"imb", "compilation"}, ""},
		},
		[]testRec{
			{"Allreduce", "imb/Allreduce", map[string]interface{}{"n_node": "two"}, tags, "log c"},
			{"Ibarrier", "imb/Ibarrier", nil, nil, "skipped before the tag check"},
		},
	)
	var warns []string
	s, err := Load(dir, Options{
		Iterator: "n_node",
		Warn:     func(f string, args ...interface{}) { warns = append(warns, fmt.Sprintf(f, args...)) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.Names(), []string{"PingPong", "Allreduce"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings %q", warns)
	}

	pp := s.Tests("PingPong")
	if len(pp) != 2 {
		t.Fatalf("got %d PingPong tests, want 2", len(pp))
	}
	// Descending UName order puts n4 first.
	if pp[0].Output != "log b" || pp[1].Output != "log a" {
		t.Errorf("PingPong outputs = %q, %q", pp[0].Output, pp[1].Output)
	}
	wantU := strings.ReplaceAll(filepath.Join(dir, RawDataDir)+"_imb/PingPong_n4", "/", "_")
	if pp[0].UName != wantU {
		t.Errorf("UName = %q, want %q", pp[0].UName, wantU)
	}
	if !pp[0].HasIter || pp[0].IterValue != "4" {
		t.Errorf("iterator = %q %v, want 4", pp[0].IterValue, pp[0].HasIter)
	}
	ar := s.Tests("Allreduce")
	if len(ar) != 1 || ar[0].IterValue != "two" || !reflect.DeepEqual(ar[0].Tags, tags) {
		t.Errorf("Allreduce tests = %+v", ar)
	}
	if s.Tests("Barrier") != nil || s.Tests("Ibarrier") != nil {
		t.Errorf("barrier tests were loaded")
	}
}

func TestLoadMissingIterator(t *testing.T) {
	dir := writeSuite(t, []testRec{{"PingPong", "imb/PingPong", nil, tags, "log"}})
	var warns []string
	s, err := Load(dir, Options{
		Iterator: "n_node",
		Warn:     func(f string, args ...interface{}) { warns = append(warns, fmt.Sprintf(f, args...)) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 1 || !strings.Contains(warns[0], "no iterator n_node") {
		t.Errorf("warnings = %q", warns)
	}
	if tt := s.Tests("PingPong"); len(tt) != 1 || tt[0].HasIter {
		t.Errorf("tests = %+v", tt)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := writeSuite(t, []testRec{{"PingPong", "imb/PingPong", nil, nil, "log"}})
	_, err := Load(dir, Options{})
	var re *RecordError
	if !errors.As(err, &re) || re.Index != 0 || !errors.Is(err, ErrNoTags) {
		t.Errorf("err = %v, want RecordError for missing tags", err)
	}

	dir = writeSuite(t)
	if err := os.WriteFile(filepath.Join(dir, RawDataDir, "bad.json"), []byte("{"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, Options{}); err == nil {
		t.Errorf("loading malformed JSON succeeded")
	}

	if _, err := Load(t.TempDir(), Options{}); err == nil {
		t.Errorf("loading a directory without %s succeeded", RawDataDir)
	}
}

func TestLoadAll(t *testing.T) {
	a := writeSuite(t, []testRec{{"PingPong", "imb/PingPong", nil, tags, "a"}})
	b := writeSuite(t, []testRec{{"PingPong", "imb/PingPong", nil, tags, "b"}})
	suites, err := LoadAll([]string{"4nic=" + a, b, a, a}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, s := range suites {
		labels = append(labels, s.Label)
	}
	want := []string{"4nic", b, a + "#0", a + "#1"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %q, want %q", labels, want)
	}
	if suites[0].Dir != a || suites[0].Tests("PingPong")[0].Output != "a" {
		t.Errorf("labeled suite loaded from %s", suites[0].Dir)
	}
}
