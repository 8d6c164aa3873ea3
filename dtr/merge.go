// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"

	"github.com/binbench/binbench/common/log"
	"github.com/binbench/binbench/contig"
	"github.com/binbench/binbench/partition"
)

// Complete restricts the assignment to the contigs of seqs and puts every
// unassigned contig in a bin of its own.
func Complete(seqs []*linear.Seq, assignment *partition.Partition) *partition.Partition {
	ids := make([]string, len(seqs))
	known := make(map[string]bool, len(seqs))
	for i, s := range seqs {
		ids[i] = s.ID
		known[s.ID] = true
	}
	kept := partition.Restrict(assignment, func(item string) bool { return known[item] })
	if dropped := assignment.Len() - kept.Len(); dropped > 0 {
		log.Printf("%d assigned contigs of %s are not in the FASTA file, ignoring them", dropped, assignment.Name)
	}
	return partition.Complete(kept, ids)
}

// Merge writes one FASTA record per bin of the completed assignment to
// fasta, concatenating the contigs of the bin in file order, except that
// contigs sharing a direct terminal repeat are placed first and last. The
// completed assignment is written to table as "contig,bin_id" rows.
//
// Bin ids are the label codes of the completed assignment. Assigned
// contigs missing from seqs are dropped first and the remaining labels
// renumbered in order of first appearance, so ids may differ from those of
// the full assignment.
func Merge(seqs []*linear.Seq, assignment *partition.Partition, p Params, fasta, table io.Writer) error {
	full := Complete(seqs, assignment)
	bins := make([][]*linear.Seq, full.NumClusters())
	for _, s := range seqs {
		// Every contig is assigned after completion.
		code, _ := full.Label(s.ID)
		bins[code] = append(bins[code], s)
	}

	w := contig.NewWriter(fasta)
	var ordered int
	for id, members := range bins {
		if len(members) == 0 {
			continue
		}
		members, found, err := Order(members, p)
		if err != nil {
			return fmt.Errorf("bin %d: %w", id, err)
		}
		if found {
			ordered++
			log.Printf("bin %d: direct terminal repeat found for %s and %s", id, members[0].ID, members[len(members)-1].ID)
		}
		var letters alphabet.Letters
		for _, s := range members {
			letters = append(letters, s.Seq...)
		}
		if err := w.Write(fmt.Sprintf("bin_%d", id), fmt.Sprintf("size=%d", len(members)), letters); err != nil {
			return err
		}
	}
	log.Printf("merged %d contigs into %d bins, %d ordered by a terminal repeat", len(seqs), len(bins), ordered)

	cw := csv.NewWriter(table)
	if err := cw.Write([]string{"contig", "bin_id"}); err != nil {
		return err
	}
	for _, s := range seqs {
		code, _ := full.Label(s.ID)
		if err := cw.Write([]string{s.ID, strconv.Itoa(code)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
