// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binstats

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/binbench/binbench/partition"
)

func TestSummarize(t *testing.T) {
	ds := &partition.Dataset{
		Items: []string{"a1", "a2", "a3", "b1", "b2", "c1", "d1"},
		//            A  A  A  B  B  C  D
		Truth:   []int{0, 0, 0, 1, 1, 2, 3},
		Methods: []string{"m"},
		Labels: [][]int{
			// bin 0: A A A (perfect), bin 1: B (homogeneous, partial),
			// bin 2: B C (mixed), bin 3: D (perfect singleton)
			{0, 0, 0, 1, 2, 2, 3},
		},
	}
	got := Summarize(ds)
	want := []Summary{{
		Method:        "m",
		True:          4,
		TrueNS:        2,
		Pred:          4,
		PredNS:        2,
		Homogeneous:   3,
		HomogeneousNS: 1,
		Perfect:       2,
		PerfectNS:     1,
		MeanBinSize:   1.75,
		MaxBinSize:    3,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize:\n got %+v\nwant %+v", got, want)
	}
}

func TestSummarizeIdentity(t *testing.T) {
	truth := []int{0, 0, 1, 2, 2, 2}
	ds := &partition.Dataset{
		Items:   []string{"a", "b", "c", "d", "e", "f"},
		Truth:   truth,
		Methods: []string{"copy", "lumped"},
		Labels:  [][]int{truth, {0, 0, 0, 0, 0, 0}},
	}
	s := Summarize(ds)
	if c := s[0]; c.Perfect != c.True || c.PerfectNS != c.TrueNS || c.Homogeneous != c.Pred {
		t.Errorf("a copy of the truth should be all perfect bins: %+v", c)
	}
	if l := s[1]; l.Pred != 1 || l.Homogeneous != 0 || l.MaxBinSize != 6 || l.MeanBinSize != 6 {
		t.Errorf("one bin holding everything: %+v", l)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, ',', []Summary{{Method: "m", True: 2, Pred: 3, MeanBinSize: 1.5, MaxBinSize: 2}})
	if err != nil {
		t.Fatal(err)
	}
	want := "method,n_true,n_true_ns,n_pred,n_pred_ns,n_homogeneous,n_homogeneous_ns,n_perfect,n_perfect_ns,mean_bin_size,max_bin_size\n" +
		"m,2,0,3,0,0,0,0,0,1.5,2\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV:\n%s\nwant:\n%s", got, want)
	}
}
