// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/binbench/binbench/common/log"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestBuilderFactorizes(t *testing.T) {
	b := NewBuilder("m")
	for _, row := range [][2]string{{"c1", "binB"}, {"c2", "binA"}, {"c3", "binB"}, {"c4", "7"}} {
		if !b.Add(row[0], row[1]) {
			t.Fatalf("Add(%q) rejected", row[0])
		}
	}
	if b.Add("c2", "binC") {
		t.Fatal("duplicate item accepted")
	}
	p := b.Partition()
	if want := []int{0, 1, 0, 2}; !reflect.DeepEqual(p.Labels, want) {
		t.Errorf("labels = %v, want %v", p.Labels, want)
	}
	if want := []string{"binB", "binA", "7"}; !reflect.DeepEqual(p.Raw, want) {
		t.Errorf("raw = %v, want %v", p.Raw, want)
	}
	if l, ok := p.Label("c3"); !ok || l != 0 {
		t.Errorf("Label(c3) = %d, %v", l, ok)
	}
	if _, ok := p.Label("c9"); ok {
		t.Errorf("Label(c9) found")
	}
}

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name   string
		data   string
		opts   Options
		items  []string
		labels []int
	}{
		{
			name:   "plain",
			data:   "c1,5\nc2,3\nc3,5\n",
			opts:   Options{MaxMalformed: 0.1},
			items:  []string{"c1", "c2", "c3"},
			labels: []int{0, 1, 0},
		},
		{
			name:   "header",
			data:   "contig,bin\nc1,x\nc2,x\n",
			opts:   Options{Header: true},
			items:  []string{"c1", "c2"},
			labels: []int{0, 0},
		},
		{
			name:   "tab",
			data:   "g1|c1\tb\ng2|c1\ta\n",
			opts:   Options{Comma: '\t'},
			items:  []string{"g1|c1", "g2|c1"},
			labels: []int{0, 1},
		},
		{
			name:   "sparse malformed rows",
			data:   "c1,a\nc2,a\nc3,b\nc4\nc5,b\nc6,c\nc7,c\nc8,d\nc9,d\nc10,e\nc11,e\n",
			opts:   Options{MaxMalformed: 0.1},
			items:  []string{"c1", "c2", "c3", "c5", "c6", "c7", "c8", "c9", "c10", "c11"},
			labels: []int{0, 0, 1, 1, 2, 2, 3, 3, 4, 4},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(test.name, " ", "_")+".csv", test.data)
			p, err := (&CSVSource{Name: "m", Path: path, Options: test.opts}).Load()
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(p.Items, test.items) {
				t.Errorf("items = %v, want %v", p.Items, test.items)
			}
			if !reflect.DeepEqual(p.Labels, test.labels) {
				t.Errorf("labels = %v, want %v", p.Labels, test.labels)
			}
		})
	}
}

func TestCSVSourceMalformed(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name string
		data string
		max  float64
		bad  int
		line int
	}{
		{"all malformed", "c1;a\nc2;b\n", 1, 2, 1},
		{"above threshold", "c1,a\nc2,a,extra\nc3,b\n,b\n", 0.1, 2, 2},
		{"duplicates", "c1,a\nc1,b\n", 0.1, 1, 2},
	} {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(test.name, " ", "_")+".csv", test.data)
			_, err := (&CSVSource{Name: "m", Path: path, Options: Options{MaxMalformed: test.max}}).Load()
			var merr *MalformedError
			if !errors.As(err, &merr) {
				t.Fatalf("expected *MalformedError, got %v", err)
			}
			if merr.Bad != test.bad || merr.Line != test.line {
				t.Errorf("bad rows, first line = %d, %d; want %d, %d", merr.Bad, merr.Line, test.bad, test.line)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "vamb.csv", "c1,1\n")

	src, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := src.(*CSVSource); !ok || s.Name != "vamb" {
		t.Errorf("Open(%q) = %#v, want CSVSource named vamb", path, src)
	}

	src, err = Open("VAMB v4="+path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := src.(*CSVSource); !ok || s.Name != "VAMB v4" || s.Path != path {
		t.Errorf("Open(named) = %#v", src)
	}

	missing := filepath.Join(dir, "missing.csv")
	_, err = Open(missing, Options{})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Path != missing {
		t.Fatalf("expected *NotFoundError for %s, got %v", missing, err)
	}
}

func TestFastaBinSource(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "metabat2")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "bin.2.fa", ">c3\nACGT\n>c1 dup\nAC\n")
	writeFile(t, dir, "bin.1.fa", ">c1\nACGT\n>c2\nAC\n")
	writeFile(t, dir, "notes.txt", "not a bin\n")

	src, err := Open(dir, Options{Universe: []string{"c1", "c2", "c3", "c4"}})
	if err != nil {
		t.Fatal(err)
	}
	p, err := src.Load()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"c1", "c2", "c3", "c4"}; !reflect.DeepEqual(p.Items, want) {
		t.Errorf("items = %v, want %v", p.Items, want)
	}
	if want := []int{0, 0, 1, 2}; !reflect.DeepEqual(p.Labels, want) {
		t.Errorf("labels = %v, want %v", p.Labels, want)
	}
	if want := []string{"bin.1", "bin.2", "2"}; !reflect.DeepEqual(p.Raw, want) {
		t.Errorf("raw = %v, want %v", p.Raw, want)
	}
}

func TestFromItemIDs(t *testing.T) {
	items := []string{"g2|c1", "g1|c1", "g2|c2", "orphan"}
	p := FromItemIDs("truth", items, "|")
	if want := []int{0, 1, 0, 2}; !reflect.DeepEqual(p.Labels, want) {
		t.Errorf("labels = %v, want %v", p.Labels, want)
	}
	if want := []string{"g2", "g1", "orphan"}; !reflect.DeepEqual(p.Raw, want) {
		t.Errorf("raw = %v, want %v", p.Raw, want)
	}

	// The separator is configuration, not a hard-coded convention.
	p = FromItemIDs("truth", []string{"g1_c1", "g1_c2", "g2_c1"}, "_")
	if want := []int{0, 0, 1}; !reflect.DeepEqual(p.Labels, want) {
		t.Errorf("labels with '_' = %v, want %v", p.Labels, want)
	}
}

func TestComplete(t *testing.T) {
	b := NewBuilder("m")
	b.Add("c2", "1")
	b.Add("c4", "0")
	p := Complete(b.Partition(), []string{"c1", "c2", "c3", "c4"})
	if want := []string{"c2", "c4", "c1", "c3"}; !reflect.DeepEqual(p.Items, want) {
		t.Errorf("items = %v, want %v", p.Items, want)
	}
	// The singleton for c1 gets code 2, whose natural label "2" is free;
	// c3 gets code 3.
	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(p.Labels, want) {
		t.Errorf("labels = %v, want %v", p.Labels, want)
	}
	if p.NumClusters() != 4 {
		t.Errorf("clusters = %d, want 4", p.NumClusters())
	}
}

func TestRestrict(t *testing.T) {
	b := NewBuilder("m")
	for _, r := range [][2]string{{"a", "x"}, {"b", "y"}, {"c", "z"}, {"d", "y"}} {
		b.Add(r[0], r[1])
	}
	p := Restrict(b.Partition(), func(item string) bool { return item != "a" })
	if want := []string{"b", "c", "d"}; !reflect.DeepEqual(p.Items, want) {
		t.Errorf("items = %v, want %v", p.Items, want)
	}
	if want := []int{0, 1, 0}; !reflect.DeepEqual(p.Labels, want) {
		t.Errorf("labels = %v, want %v", p.Labels, want)
	}
	if want := []string{"y", "z"}; !reflect.DeepEqual(p.Raw, want) {
		t.Errorf("raw = %v, want %v", p.Raw, want)
	}
}

func TestReconcile(t *testing.T) {
	truth := NewBuilder("truth")
	for _, r := range [][2]string{{"d", "g2"}, {"a", "g1"}, {"b", "g1"}, {"c", "g2"}} {
		truth.Add(r[0], r[1])
	}
	m1 := NewBuilder("m1")
	for _, r := range [][2]string{{"a", "x"}, {"b", "y"}, {"c", "y"}, {"d", "x"}, {"e", "x"}} {
		m1.Add(r[0], r[1])
	}
	m2 := NewBuilder("m2")
	for _, r := range [][2]string{{"c", "1"}, {"b", "1"}, {"d", "2"}} {
		m2.Add(r[0], r[1])
	}
	ds, err := Reconcile(truth.Partition(), []*Partition{m1.Partition(), m2.Partition()})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"d", "b", "c"}; !reflect.DeepEqual(ds.Items, want) {
		t.Errorf("items = %v, want %v", ds.Items, want)
	}
	if want := []int{0, 1, 0}; !reflect.DeepEqual(ds.Truth, want) {
		t.Errorf("truth = %v, want %v", ds.Truth, want)
	}
	if want := [][]int{{0, 1, 1}, {1, 0, 0}}; !reflect.DeepEqual(ds.Labels, want) {
		t.Errorf("labels = %v, want %v", ds.Labels, want)
	}

	sub := ds.Subset([]int{2, 0})
	if want := []string{"c", "d"}; !reflect.DeepEqual(sub.Items, want) {
		t.Errorf("subset items = %v, want %v", sub.Items, want)
	}
	if want := [][]int{{1, 0}, {0, 1}}; !reflect.DeepEqual(sub.Labels, want) {
		t.Errorf("subset labels = %v, want %v", sub.Labels, want)
	}
}

func TestReconcileNoOverlap(t *testing.T) {
	truth := NewBuilder("truth")
	truth.Add("x", "0")
	truth.Add("y", "0")
	pred := NewBuilder("pred")
	pred.Add("p", "0")
	pred.Add("q", "1")
	ds, err := Reconcile(truth.Partition(), []*Partition{pred.Partition()})
	var noe *NoOverlapError
	if !errors.As(err, &noe) {
		t.Fatalf("expected *NoOverlapError, got %v (dataset %v)", err, ds)
	}
	if ds != nil {
		t.Errorf("got a dataset alongside the error: %+v", ds)
	}
}

func TestReconcileDuplicateNames(t *testing.T) {
	truth := NewBuilder("truth")
	truth.Add("a", "0")
	m := NewBuilder("m")
	m.Add("a", "0")
	p := m.Partition()
	if _, err := Reconcile(truth.Partition(), []*Partition{p, p}); err == nil {
		t.Fatal("expected duplicate name error")
	}
}
