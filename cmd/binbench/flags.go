// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/binbench/binbench/common"
	"github.com/binbench/binbench/common/log"
	"github.com/binbench/binbench/partition"
)

// stdout receives tables when no output file is given.
var stdout io.Writer = os.Stdout

type csvFlag []string

func (c *csvFlag) String() string {
	return strings.Join([]string(*c), ",")
}

func (c *csvFlag) Set(input string) error {
	*c = strings.Split(input, ",")
	return nil
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	config    string
	delimiter string
	header    bool
	quiet     bool
	trace     bool
}

func (c *commonFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "", "TOML configuration file (see above)")
	f.StringVar(&c.delimiter, "delimiter", "", "field delimiter of input tables, a single character or \"tab\" (overrides the configuration)")
	f.BoolVar(&c.header, "header", false, "whether input tables start with a header row to skip (overrides the configuration)")
	f.BoolVar(&c.quiet, "quiet", false, "whether to suppress activity output on stderr")
	f.BoolVar(&c.trace, "trace", false, "whether to print the invocation as a shell command line on stderr")
}

// setup applies the logging flags and returns the configuration with
// command line overrides of the [input] table applied.
func (c *commonFlags) setup() (*common.ConfigFile, error) {
	log.SetActivityLog(!c.quiet)
	log.SetCommandTrace(c.trace)
	log.TraceInvocation(os.Args)

	cfg, err := common.LoadConfig(c.config)
	if err != nil {
		return nil, err
	}
	if c.delimiter != "" {
		cfg.Input.Delimiter = c.delimiter
	}
	if c.header {
		cfg.Input.Header = true
	}
	return cfg, nil
}

func options(cfg *common.ConfigFile) (partition.Options, error) {
	comma, err := common.ParseDelimiter(cfg.Input.Delimiter)
	if err != nil {
		return partition.Options{}, err
	}
	return partition.Options{
		Comma:        comma,
		Header:       cfg.Input.Header,
		MaxMalformed: cfg.Input.MaxMalformed,
	}, nil
}

// inputFlags select the truth and binnings to compare.
type inputFlags struct {
	commonFlags
	bins      csvFlag
	truth     string
	separator string
	output    string
}

func (c *inputFlags) setFlags(f *flag.FlagSet) {
	c.commonFlags.setFlags(f)
	f.Var(&c.bins, "bins", "comma-separated list of binnings, each a table or a directory of FASTA bins, optionally prefixed by \"name=\"")
	f.StringVar(&c.truth, "truth", "", "ground truth table (default: derived from contig ids)")
	f.StringVar(&c.separator, "sep", "", "truth label separator in contig ids when no -truth is given (overrides the configuration)")
	f.StringVar(&c.output, "o", "", "output file (default: standard output)")
}

func (c *inputFlags) setup() (*common.ConfigFile, error) {
	cfg, err := c.commonFlags.setup()
	if err != nil {
		return nil, err
	}
	if c.separator != "" {
		cfg.Input.TruthSeparator = c.separator
	}
	return cfg, nil
}

// dataset loads the truth and every binning and reconciles them.
func (c *inputFlags) dataset(cfg *common.ConfigFile) (*partition.Dataset, error) {
	if len(c.bins) == 0 {
		return nil, fmt.Errorf("no binning given, use -bins")
	}
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}

	var truth *partition.Partition
	if c.truth != "" {
		src, err := partition.Open(c.truth, opts)
		if err != nil {
			return nil, fmt.Errorf("truth: %w", err)
		}
		if truth, err = src.Load(); err != nil {
			return nil, fmt.Errorf("truth: %w", err)
		}
		opts.Universe = truth.Items
		log.Printf("loaded truth %s: %d contigs in %d clusters", truth.Name, truth.Len(), truth.NumClusters())
	}

	preds := make([]*partition.Partition, 0, len(c.bins))
	for _, arg := range c.bins {
		src, err := partition.Open(arg, opts)
		if err != nil {
			return nil, err
		}
		p, err := src.Load()
		if err != nil {
			return nil, err
		}
		log.Printf("loaded %s: %d contigs in %d bins", p.Name, p.Len(), p.NumClusters())
		preds = append(preds, p)
	}

	if truth == nil {
		src := &partition.IDSource{Name: "truth", Items: preds[0].Items, Separator: cfg.Input.TruthSeparator}
		if truth, err = src.Load(); err != nil {
			return nil, err
		}
	}
	return partition.Reconcile(truth, preds)
}

// writeOutput calls write on the file at path, or on stdout if path is
// empty.
func writeOutput(path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	log.Printf("wrote %s", path)
	return nil
}
