// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subcommands dispatches a command line to one of a set of named
// subcommands, each with its own flags.
package subcommands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/binbench/binbench/common"
	"github.com/binbench/binbench/common/log"
)

const (
	usageHeader = `binbench %s: contig binning benchmark tools

`
	usageTop = `binbench compares the output of contig binning tools against a ground truth.
It reports pairwise co-clustering counts (TP, TN, FP, FN) and clustering
metrics per method, summarises bins, and post-processes bin assignments.

All tables are written to standard output unless an output file is given;
activity is logged to standard error.

Usage: %s <subcommand> [subcommand flags] [subcommand args]

Subcommands:
`
)

// Command is a subcommand with its own flags.
type Command interface {
	Name() string
	Synopsis() string
	PrintUsage(w io.Writer, base string)
	SetFlags(f *flag.FlagSet)
	Run(args []string) error
}

// Set is a group of subcommands sharing one program name.
type Set struct {
	// Base is the program name shown in usage messages.
	Base string

	// Out receives usage and flag parsing messages.
	Out io.Writer

	cmds []Command
}

// NewSet returns an empty set writing usage messages to out.
func NewSet(base string, out io.Writer) *Set {
	return &Set{Base: base, Out: out}
}

// Default is the set used by Register and Run.
var Default = NewSet(filepath.Base(os.Args[0]), os.Stderr)

// Register adds cmd to the default set.
func Register(cmd Command) { Default.Register(cmd) }

// Run runs the default set on args, the command line without the program
// name, and returns the process exit status.
func Run(args []string) int { return Default.Run(args) }

// Register adds cmd to s.
func (s *Set) Register(cmd Command) {
	s.cmds = append(s.cmds, cmd)
}

func (s *Set) lookup(name string) Command {
	for _, c := range s.cmds {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (s *Set) usage() {
	fmt.Fprintf(s.Out, usageHeader, common.Version)
	fmt.Fprintf(s.Out, usageTop, s.Base)
	tw := tabwriter.NewWriter(s.Out, 0, 8, 2, ' ', 0)
	for _, c := range s.cmds {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Name(), c.Synopsis())
	}
	tw.Flush()
}

// flags returns a fresh flag set bound to cmd.
func (s *Set) flags(cmd Command) *flag.FlagSet {
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	f.SetOutput(s.Out)
	cmd.SetFlags(f)
	f.Usage = func() {
		fmt.Fprintf(s.Out, usageHeader, common.Version)
		cmd.PrintUsage(s.Out, s.Base)
		f.PrintDefaults()
	}
	return f
}

// Run parses args, the command line without the program name, and runs
// the subcommand it names. It returns 0 on success or when help was
// asked for, and 1 on a usage error or when the subcommand fails.
func (s *Set) Run(args []string) int {
	if len(args) == 0 {
		s.usage()
		return 1
	}
	name, rest := args[0], args[1:]
	if name == "help" {
		if len(rest) > 0 {
			if cmd := s.lookup(rest[0]); cmd != nil {
				s.flags(cmd).Usage()
				return 0
			}
		}
		s.usage()
		return 0
	}
	cmd := s.lookup(name)
	if cmd == nil {
		fmt.Fprintf(s.Out, "unknown subcommand: %q\n\n", name)
		s.usage()
		return 1
	}
	f := s.flags(cmd)
	if err := f.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if err := cmd.Run(f.Args()); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}
