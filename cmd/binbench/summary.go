// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/binbench/binbench/binstats"
	"github.com/binbench/binbench/common"
)

const (
	summaryLongDesc = `Summarise the bins of each binning: how many truth clusters and bins there
are, how many bins hold a single truth cluster (homogeneous) and how many
hold a whole one (perfect). Columns suffixed _ns ignore singletons.`
	summaryUsage = `Usage: %s summary [flags] -bins a.csv[,b.csv...]
`
)

type summaryCmd struct {
	inputFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "Counts homogeneous and perfect bins." }
func (*summaryCmd) PrintUsage(w io.Writer, base string) {
	fmt.Fprintln(w, summaryLongDesc)
	fmt.Fprint(w, common.ConfigHelp)
	fmt.Fprintln(w)
	fmt.Fprintf(w, summaryUsage, base)
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.setFlags(f)
}

func (c *summaryCmd) Run(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}
	cfg, err := c.setup()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ds, err := c.dataset(cfg)
	if err != nil {
		return err
	}
	comma, err := common.ParseDelimiter(cfg.Input.Delimiter)
	if err != nil {
		return err
	}
	summaries := binstats.Summarize(ds)
	return writeOutput(c.output, func(w io.Writer) error {
		return binstats.WriteCSV(w, comma, summaries)
	})
}
