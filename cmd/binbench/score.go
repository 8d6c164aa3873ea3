// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/binbench/binbench/common"
	"github.com/binbench/binbench/common/log"
	"github.com/binbench/binbench/contig"
	"github.com/binbench/binbench/metric"
	"github.com/binbench/binbench/partition"
	"github.com/binbench/binbench/report"
)

const (
	scoreLongDesc = `Score binnings against a ground truth. For each binning, counts the contig
pairs that both partitions put together (TP), apart (TN), or that only the
binning (FP) or only the truth (FN) puts together, and computes clustering
metrics over the contigs shared by all inputs.

With -fasta or -lengths, scores are also reported within quantile buckets
of contig length.`
	scoreUsage = `Usage: %s score [flags] -bins a.csv[,b.csv...]
`
)

type scoreCmd struct {
	inputFlags
	metrics csvFlag
	fasta   string
	lengths string
	strata  int
	name    string
	procs   int
}

func (*scoreCmd) Name() string     { return "score" }
func (*scoreCmd) Synopsis() string { return "Scores binnings against a ground truth." }
func (*scoreCmd) PrintUsage(w io.Writer, base string) {
	fmt.Fprintln(w, scoreLongDesc)
	fmt.Fprintf(w, "\nAvailable metrics:\n  %s\n", strings.Join(metric.Names(), "\n  "))
	fmt.Fprint(w, common.ConfigHelp)
	fmt.Fprintln(w)
	fmt.Fprintf(w, scoreUsage, base)
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.setFlags(f)
	f.Var(&c.metrics, "metrics", "comma-separated list of metrics to report (overrides the configuration)")
	f.StringVar(&c.fasta, "fasta", "", "contig FASTA file giving the lengths to stratify by")
	f.StringVar(&c.lengths, "lengths", "", "\"contig,length\" table giving the lengths to stratify by")
	f.IntVar(&c.strata, "strata", 0, "number of length quantile buckets (overrides the configuration)")
	f.StringVar(&c.name, "name", "", "dataset name added as a column (overrides the configuration)")
	f.IntVar(&c.procs, "procs", 0, "number of binnings scored concurrently (overrides the configuration)")
}

func (c *scoreCmd) Run(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}
	if c.fasta != "" && c.lengths != "" {
		return fmt.Errorf("-fasta and -lengths are mutually exclusive")
	}
	cfg, err := c.setup()
	if err != nil {
		return err
	}
	if len(c.metrics) != 0 {
		cfg.Score.Metrics = c.metrics
	}
	if c.strata != 0 {
		cfg.Score.Strata = c.strata
	}
	if c.name != "" {
		cfg.Score.Name = c.name
	}
	if c.procs != 0 {
		cfg.Score.Procs = c.procs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	metrics, err := metric.LookupAll(cfg.Score.Metrics)
	if err != nil {
		return err
	}

	ds, err := c.dataset(cfg)
	if err != nil {
		return err
	}
	log.Printf("scoring %d binnings on %d shared contigs", len(ds.Methods), ds.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ev := &report.Evaluator{Metrics: metrics, Procs: cfg.Score.Procs}
	table := &report.Table{Metrics: cfg.Score.Metrics, Dataset: cfg.Score.Name}
	table.Records, err = ev.Evaluate(ctx, ds)
	if err != nil {
		return err
	}
	if c.fasta != "" || c.lengths != "" {
		// Global records keep an empty stratum and render as "all".
		lengths, err := c.loadLengths(cfg)
		if err != nil {
			return err
		}
		strata, err := report.QuantileStrata(ds.Items, lengths, cfg.Score.Strata)
		if err != nil {
			return err
		}
		recs, err := ev.EvaluateStrata(ctx, ds, strata)
		if err != nil {
			return err
		}
		table.Stratified = true
		table.Records = append(table.Records, recs...)
	}

	comma, err := common.ParseDelimiter(cfg.Input.Delimiter)
	if err != nil {
		return err
	}
	return writeOutput(c.output, func(w io.Writer) error {
		if c.output == "" {
			return table.WriteText(w)
		}
		return table.WriteCSV(w, comma)
	})
}

func (c *scoreCmd) loadLengths(cfg *common.ConfigFile) (map[string]int, error) {
	if c.fasta != "" {
		if err := partition.CheckExists(c.fasta); err != nil {
			return nil, err
		}
		return contig.Lengths(c.fasta)
	}
	if err := partition.CheckExists(c.lengths); err != nil {
		return nil, err
	}
	comma, err := common.ParseDelimiter(cfg.Input.Delimiter)
	if err != nil {
		return nil, err
	}
	return contig.LengthTable(c.lengths, comma)
}
