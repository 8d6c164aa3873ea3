// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Binbench compares contig binnings against a ground truth.
package main

import (
	"os"

	"github.com/binbench/binbench/cli/subcommands"
)

func main() {
	subcommands.Register(&scoreCmd{})
	subcommands.Register(&summaryCmd{})
	subcommands.Register(&mergeCmd{})
	os.Exit(subcommands.Run(os.Args[1:]))
}
