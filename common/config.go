// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

const Version = "v0.3.0"

const ConfigHelp = `
The optional configuration file (-config) is TOML with three tables. Every
field is optional; flags given on the command line take precedence.

[input]
        delimiter: field delimiter of partition files, a single character or
                   "tab" (default ",")
           header: whether partition files start with a header row to skip
                   (default false)
  truth-separator: when no truth file is given, the truth label of an item
                   is the part of its id before this separator (default "|")
    max-malformed: fraction of malformed rows tolerated before a partition
                   file is rejected; tolerated rows are skipped with a
                   warning (default 0.1)

[score]
          metrics: clustering metrics to report (default
                   ["adjusted_rand_score", "homogeneity_score",
                   "completeness_score"])
           strata: number of contig length quantile buckets used when a
                   length source is given (default 5)
            procs: number of methods evaluated concurrently (default 1)
             name: dataset name added as a column to the table (optional)

[merge]
     min-dtr-size: minimum aligned length of a direct terminal repeat
                   (default 10)
     max-dtr-size: number of bases cut from each contig end (default 300)
       min-dtr-id: minimum identity of a direct terminal repeat (default 0.95)

A configuration for tab-separated CAMISIM outputs might look like:

[input]
  delimiter = "tab"
  truth-separator = "|"

[score]
  metrics = ["adjusted_rand_score", "v_measure_score"]
  procs = 4
`

type ConfigFile struct {
	Input InputConfig `toml:"input"`
	Score ScoreConfig `toml:"score"`
	Merge MergeConfig `toml:"merge"`
}

type InputConfig struct {
	Delimiter      string  `toml:"delimiter"`
	Header         bool    `toml:"header"`
	TruthSeparator string  `toml:"truth-separator"`
	MaxMalformed   float64 `toml:"max-malformed"`
}

type ScoreConfig struct {
	Metrics []string `toml:"metrics"`
	Strata  int      `toml:"strata"`
	Procs   int      `toml:"procs"`
	Name    string   `toml:"name"`
}

type MergeConfig struct {
	MinDTRSize     int     `toml:"min-dtr-size"`
	MaxDTRSize     int     `toml:"max-dtr-size"`
	MinDTRIdentity float64 `toml:"min-dtr-id"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *ConfigFile {
	return &ConfigFile{
		Input: InputConfig{
			Delimiter:      ",",
			TruthSeparator: "|",
			MaxMalformed:   0.1,
		},
		Score: ScoreConfig{
			Metrics: []string{"adjusted_rand_score", "homogeneity_score", "completeness_score"},
			Strata:  5,
			Procs:   1,
		},
		Merge: MergeConfig{
			MinDTRSize:     10,
			MaxDTRSize:     300,
			MinDTRIdentity: 0.95,
		},
	}
}

// LoadConfig reads the TOML file at path on top of DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (*ConfigFile, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		names := make([]string, 0, len(keys))
		for _, k := range keys {
			names = append(names, k.String())
		}
		return nil, fmt.Errorf("unknown fields in %q: %s", path, strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *ConfigFile) Validate() error {
	if _, err := ParseDelimiter(c.Input.Delimiter); err != nil {
		return err
	}
	if c.Input.MaxMalformed < 0 || c.Input.MaxMalformed > 1 {
		return fmt.Errorf("max-malformed must be within [0, 1], got %v", c.Input.MaxMalformed)
	}
	if c.Score.Strata < 1 {
		return fmt.Errorf("strata must be positive, got %d", c.Score.Strata)
	}
	if c.Score.Procs < 1 {
		return fmt.Errorf("procs must be positive, got %d", c.Score.Procs)
	}
	if c.Merge.MinDTRSize < 1 || c.Merge.MaxDTRSize < c.Merge.MinDTRSize {
		return fmt.Errorf("need 0 < min-dtr-size <= max-dtr-size, got %d and %d", c.Merge.MinDTRSize, c.Merge.MaxDTRSize)
	}
	if c.Merge.MinDTRIdentity <= 0 || c.Merge.MinDTRIdentity > 1 {
		return fmt.Errorf("min-dtr-id must be within (0, 1], got %v", c.Merge.MinDTRIdentity)
	}
	return nil
}

// ParseDelimiter converts a delimiter setting to the rune used to split
// partition files.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "":
		return ',', nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
