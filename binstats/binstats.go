// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binstats counts how many predicted bins recover a truth cluster.
package binstats

import (
	"encoding/csv"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/binbench/binbench/partition"
)

// Summary describes the bins of one method against the truth.
//
// The _ns variants only count clusters holding more than one item.
type Summary struct {
	Method string

	True, TrueNS int
	Pred, PredNS int

	// Homogeneous bins hold items of a single truth cluster.
	Homogeneous, HomogeneousNS int

	// Perfect bins are homogeneous and hold the whole truth cluster.
	Perfect, PerfectNS int

	MeanBinSize float64
	MaxBinSize  int
}

// Summarize returns one Summary per method of ds, in method order.
func Summarize(ds *partition.Dataset) []Summary {
	trueSizes := sizes(ds.Truth)
	out := make([]Summary, len(ds.Methods))
	for m, pred := range ds.Labels {
		out[m] = summarize(ds.Methods[m], ds.Truth, pred, trueSizes)
	}
	return out
}

func summarize(method string, truth, pred []int, trueSizes map[int]int) Summary {
	s := Summary{Method: method, True: len(trueSizes)}
	for _, n := range trueSizes {
		if n > 1 {
			s.TrueNS++
		}
	}

	type bin struct {
		size  int
		truth int
		mixed bool
	}
	bins := make(map[int]*bin)
	for i, p := range pred {
		b, ok := bins[p]
		if !ok {
			b = &bin{truth: truth[i]}
			bins[p] = b
		}
		b.size++
		if truth[i] != b.truth {
			b.mixed = true
		}
	}

	s.Pred = len(bins)
	if len(bins) == 0 {
		return s
	}
	binSizes := make([]float64, 0, len(bins))
	for _, b := range bins {
		binSizes = append(binSizes, float64(b.size))
		ns := b.size > 1
		if ns {
			s.PredNS++
		}
		if b.mixed {
			continue
		}
		s.Homogeneous++
		perfect := b.size == trueSizes[b.truth]
		if perfect {
			s.Perfect++
		}
		if ns {
			s.HomogeneousNS++
			if perfect {
				s.PerfectNS++
			}
		}
	}
	s.MeanBinSize = stat.Mean(binSizes, nil)
	s.MaxBinSize = int(floats.Max(binSizes))
	return s
}

func sizes(labels []int) map[int]int {
	n := make(map[int]int)
	for _, l := range labels {
		n[l]++
	}
	return n
}

// Header lists the columns written by WriteCSV.
var Header = []string{
	"method",
	"n_true", "n_true_ns",
	"n_pred", "n_pred_ns",
	"n_homogeneous", "n_homogeneous_ns",
	"n_perfect", "n_perfect_ns",
	"mean_bin_size", "max_bin_size",
}

// Row formats s in Header order.
func (s *Summary) Row() []string {
	row := []string{s.Method}
	for _, n := range []int{s.True, s.TrueNS, s.Pred, s.PredNS, s.Homogeneous, s.HomogeneousNS, s.Perfect, s.PerfectNS} {
		row = append(row, strconv.Itoa(n))
	}
	return append(row, strconv.FormatFloat(s.MeanBinSize, 'g', -1, 64), strconv.Itoa(s.MaxBinSize))
}

// WriteCSV writes summaries as delimited text with a header row.
func WriteCSV(w io.Writer, comma rune, summaries []Summary) error {
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := range summaries {
		if err := cw.Write(summaries[i].Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
