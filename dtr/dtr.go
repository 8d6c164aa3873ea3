// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtr orders the contigs of a bin using direct terminal repeats.
//
// A genome assembled into several contigs whose first and last contig share
// a repeated sequence at their outer ends (a direct terminal repeat, as
// found in many phage genomes) can be laid out by putting the contig that
// starts with the repeat first and the contig that ends with it last.
package dtr

import (
	"fmt"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/seq/linear"
)

// Params bound the repeats that are accepted.
type Params struct {
	// MinSize is the shortest accepted alignment.
	MinSize int

	// MaxSize is the number of bases cut from each contig end.
	MaxSize int

	// MinIdentity is the smallest accepted fraction of identical aligned
	// positions.
	MinIdentity float64
}

// DefaultParams are the parameters used by the merge command.
var DefaultParams = Params{MinSize: 10, MaxSize: 300, MinIdentity: 0.95}

// Local alignment scores over alphabet.DNAgapped, indexed "-acgt".
var scoring = align.SW{
	{0, -5, -5, -5, -5},
	{-5, 1, -3, -3, -3},
	{-5, -3, 1, -3, -3},
	{-5, -3, -3, 1, -3},
	{-5, -3, -3, -3, 1},
}

type end int

const (
	start end = iota
	stop
)

// window is one extremity of a contig.
type window struct {
	contig int
	end    end
	seq    *linear.Seq
}

// cut returns the first and last size bases of s, or all of s if it is
// shorter, prepared for alignment.
func cut(s *linear.Seq, size int) (head, tail *linear.Seq) {
	n := s.Len()
	if size < n {
		n = size
	}
	return prepare(s.Seq[:n]), prepare(s.Seq[s.Len()-n:])
}

// prepare copies l into a sequence over alphabet.DNAgapped. Bases other
// than ACGT are turned into gaps, which never score as a match.
func prepare(l alphabet.Letters) *linear.Seq {
	out := make(alphabet.Letters, len(l))
	for i, c := range l {
		switch c {
		case 'a', 'c', 'g', 't':
			out[i] = c
		case 'A', 'C', 'G', 'T':
			out[i] = c + 'a' - 'A'
		default:
			out[i] = '-'
		}
	}
	return linear.NewSeq("", out, alphabet.DNAgapped)
}

// Hit is a local alignment between two contig windows.
type Hit struct {
	// RefStart, RefEnd, QueryStart and QueryEnd are zero-based, half-open
	// coordinates within the reference and query windows.
	RefStart, RefEnd     int
	QueryStart, QueryEnd int

	// Length counts aligned columns including gaps.
	Length int

	// Matches counts columns with identical bases. Columns pairing two
	// ambiguous bases are not matches.
	Matches int
}

// Identity returns the fraction of identical columns.
func (h Hit) Identity() float64 {
	if h.Length == 0 {
		return 0
	}
	return float64(h.Matches) / float64(h.Length)
}

// Align returns the best local alignment of query against ref.
func Align(ref, query *linear.Seq) (Hit, bool, error) {
	aln, err := scoring.Align(ref, query)
	if err != nil {
		return Hit{}, false, err
	}
	if len(aln) == 0 {
		return Hit{}, false, nil
	}
	first := aln[0].Features()
	last := aln[len(aln)-1].Features()
	h := Hit{
		RefStart:   first[0].Start(),
		RefEnd:     last[0].End(),
		QueryStart: first[1].Start(),
		QueryEnd:   last[1].End(),
	}
	for _, p := range aln {
		h.Length += columns(p)
		f := p.Features()
		if f[0].Len() == 0 || f[1].Len() == 0 {
			continue
		}
		for i := 0; i < f[0].Len(); i++ {
			if r := ref.Seq[f[0].Start()+i]; r != '-' && r == query.Seq[f[1].Start()+i] {
				h.Matches++
			}
		}
	}
	return h, true, nil
}

func columns(p feat.Pair) int {
	f := p.Features()
	if n := f[1].Len(); n > f[0].Len() {
		return n
	}
	return f[0].Len()
}

// accept reports whether h is long and similar enough.
func (p Params) accept(h Hit) bool {
	return h.Length >= p.MinSize && h.Identity() >= p.MinIdentity
}

// Find looks for a direct terminal repeat between two distinct contigs of
// seqs. It returns the indices of the contig to put first and of the
// contig to put last.
//
// Windows are tried in contig order, start window before end window, and
// the first accepted hit wins. The end window of contig a matching the
// start window of contig b, with the alignment running to the last base of
// a's window and from the first base of b's window, puts b first and a
// last. A start window of a matching the end window of b the same way puts
// a first and b last.
func Find(seqs []*linear.Seq, p Params) (first, last int, ok bool, err error) {
	if p.MaxSize < 1 {
		return 0, 0, false, fmt.Errorf("window size must be positive, got %d", p.MaxSize)
	}
	windows := make([]window, 0, 2*len(seqs))
	for i, s := range seqs {
		head, tail := cut(s, p.MaxSize)
		windows = append(windows, window{i, start, head}, window{i, stop, tail})
	}
	for _, q := range windows {
		if q.seq.Len() < p.MinSize {
			continue
		}
		for _, h := range windows {
			if h.contig == q.contig || h.end == q.end || h.seq.Len() < p.MinSize {
				continue
			}
			switch q.end {
			case stop:
				// q's end against h's start.
				hit, found, err := Align(q.seq, h.seq)
				if err != nil {
					return 0, 0, false, err
				}
				if found && p.accept(hit) && hit.QueryStart == 0 && hit.RefEnd == q.seq.Len() {
					return h.contig, q.contig, true, nil
				}
			case start:
				// q's start against h's end.
				hit, found, err := Align(h.seq, q.seq)
				if err != nil {
					return 0, 0, false, err
				}
				if found && p.accept(hit) && hit.QueryStart == 0 && hit.RefEnd == h.seq.Len() {
					return q.contig, h.contig, true, nil
				}
			}
		}
	}
	return 0, 0, false, nil
}

// Order returns seqs with the contigs found by Find moved to the front and
// back. The other contigs keep their relative order. If no repeat is
// found, seqs is returned unchanged.
func Order(seqs []*linear.Seq, p Params) ([]*linear.Seq, bool, error) {
	if len(seqs) < 2 {
		return seqs, false, nil
	}
	first, last, ok, err := Find(seqs, p)
	if err != nil || !ok {
		return seqs, false, err
	}
	out := make([]*linear.Seq, 0, len(seqs))
	out = append(out, seqs[first])
	for i, s := range seqs {
		if i != first && i != last {
			out = append(out, s)
		}
	}
	return append(out, seqs[last]), true, nil
}
