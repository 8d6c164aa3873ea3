// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/binbench/binbench/common"
	"github.com/binbench/binbench/common/fileutil"
	"github.com/binbench/binbench/common/log"
	"github.com/binbench/binbench/contig"
	"github.com/binbench/binbench/dtr"
	"github.com/binbench/binbench/partition"
)

const (
	mergeLongDesc = `Concatenate the contigs of each bin into one sequence. Contigs that no bin
holds become bins of their own. Within a bin, two contigs sharing a direct
terminal repeat are placed first and last.

Writes <prefix>-merged.fasta and the completed assignment
<prefix>-complete.csv.`
	mergeUsage = `Usage: %s merge [flags] -fasta contigs.fa -bins bins.csv
`
)

type mergeCmd struct {
	commonFlags
	fasta   string
	bins    string
	prefix  string
	minSize int
	maxSize int
	minID   float64
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "Merges the contigs of each bin into one sequence." }
func (*mergeCmd) PrintUsage(w io.Writer, base string) {
	fmt.Fprintln(w, mergeLongDesc)
	fmt.Fprint(w, common.ConfigHelp)
	fmt.Fprintln(w)
	fmt.Fprintf(w, mergeUsage, base)
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	c.commonFlags.setFlags(f)
	f.StringVar(&c.fasta, "fasta", "", "contig FASTA file")
	f.StringVar(&c.bins, "bins", "", "bin assignment table")
	f.StringVar(&c.prefix, "prefix", "", "output path prefix (default: stem of -bins)")
	f.IntVar(&c.minSize, "min-dtr-size", 0, "minimum aligned length of a terminal repeat (overrides the configuration)")
	f.IntVar(&c.maxSize, "max-dtr-size", 0, "number of bases cut from each contig end (overrides the configuration)")
	f.Float64Var(&c.minID, "min-dtr-id", 0, "minimum identity of a terminal repeat (overrides the configuration)")
}

func (c *mergeCmd) Run(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}
	if c.fasta == "" || c.bins == "" {
		return fmt.Errorf("both -fasta and -bins are required")
	}
	cfg, err := c.setup()
	if err != nil {
		return err
	}
	if c.minSize != 0 {
		cfg.Merge.MinDTRSize = c.minSize
	}
	if c.maxSize != 0 {
		cfg.Merge.MaxDTRSize = c.maxSize
	}
	if c.minID != 0 {
		cfg.Merge.MinDTRIdentity = c.minID
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := options(cfg)
	if err != nil {
		return err
	}

	if err := partition.CheckExists(c.fasta); err != nil {
		return err
	}
	seqs, err := contig.ReadFastaFile(c.fasta)
	if err != nil {
		return err
	}
	src, err := partition.Open(c.bins, opts)
	if err != nil {
		return err
	}
	assignment, err := src.Load()
	if err != nil {
		return err
	}
	log.Printf("read %d contigs and %d assignments", len(seqs), assignment.Len())

	prefix := c.prefix
	if prefix == "" {
		prefix = fileutil.Stem(c.bins)
	}
	params := dtr.Params{
		MinSize:     cfg.Merge.MinDTRSize,
		MaxSize:     cfg.Merge.MaxDTRSize,
		MinIdentity: cfg.Merge.MinDTRIdentity,
	}
	var table strings.Builder
	err = writeOutput(prefix+"-merged.fasta", func(w io.Writer) error {
		return dtr.Merge(seqs, assignment, params, w, &table)
	})
	if err != nil {
		return err
	}
	return writeOutput(prefix+"-complete.csv", func(w io.Writer) error {
		_, err := io.WriteString(w, table.String())
		return err
	})
}
