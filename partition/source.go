// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/binbench/binbench/common/fileutil"
	"github.com/binbench/binbench/common/log"
	"github.com/binbench/binbench/contig"
)

// maxWarnings bounds the number of malformed rows reported one by one.
const maxWarnings = 10

// Source loads a partition. Each binning tool output format is a Source.
type Source interface {
	Load() (*Partition, error)
}

// Options control how partition files are parsed.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Header indicates that the first row is a header and is skipped.
	Header bool

	// MaxMalformed is the largest tolerated fraction of malformed rows.
	// Tolerated rows are skipped with a warning.
	MaxMalformed float64

	// Universe, if not nil, is the set of items every FASTA bin directory
	// is completed to: items outside all bins become singletons.
	Universe []string
}

// Open returns the Source for arg, which is a path optionally prefixed by
// "name=" to set the partition name. Without a name, the partition is named
// after the file stem. A directory is read as one FASTA file per bin.
func Open(arg string, opts Options) (Source, error) {
	name, path := "", arg
	if ok, _ := fileutil.FileExists(arg); !ok {
		if i := strings.Index(arg, "="); i > 0 {
			name, path = arg[:i], arg[i+1:]
		}
	}
	if err := CheckExists(path); err != nil {
		return nil, err
	}
	if name == "" {
		name = fileutil.Stem(path)
	}
	if fileutil.IsDir(path) {
		return &FastaBinSource{Name: name, Dir: path, Universe: opts.Universe}, nil
	}
	return &CSVSource{Name: name, Path: path, Options: opts}, nil
}

// CSVSource reads delimited "item,label" rows.
//
// Rows that do not hold exactly two fields, have an empty item or repeat
// an item are malformed. They are skipped with a warning unless every row
// is malformed or their fraction exceeds MaxMalformed, in which case Load
// fails with a *MalformedError.
type CSVSource struct {
	Name string
	Path string
	Options
}

func (s *CSVSource) Load() (*Partition, error) {
	f, err := os.Open(s.Path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: s.Path}
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.read(f)
}

func (s *CSVSource) read(in io.Reader) (*Partition, error) {
	r := csv.NewReader(in)
	if s.Comma != 0 {
		r.Comma = s.Comma
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	b := NewBuilder(s.Name)
	var (
		total, bad int
		first      int
		header     = s.Header
	)
	malformed := func(line int, why string) {
		bad++
		if first == 0 {
			first = line
		}
		if bad <= maxWarnings {
			log.Warnf("%s:%d: skipping row: %s", s.Path, line, why)
		}
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			total++
			malformed(perr.StartLine, perr.Err.Error())
			continue
		} else if err != nil {
			return nil, fmt.Errorf("reading %q: %w", s.Path, err)
		}
		line, _ := r.FieldPos(0)
		if header {
			header = false
			continue
		}
		total++
		switch {
		case len(rec) != 2:
			malformed(line, fmt.Sprintf("%d fields, want 2", len(rec)))
		case rec[0] == "":
			malformed(line, "empty item")
		case !b.Add(rec[0], rec[1]):
			malformed(line, fmt.Sprintf("duplicate item %q", rec[0]))
		}
	}
	if bad > maxWarnings {
		log.Warnf("%s: %d more malformed rows skipped", s.Path, bad-maxWarnings)
	}
	if bad > 0 && (bad == total || float64(bad) > s.MaxMalformed*float64(total)) {
		return nil, &MalformedError{Path: s.Path, Bad: bad, Total: total, Line: first}
	}
	return b.Partition(), nil
}

// FastaBinSource reads a directory holding one FASTA file per bin, as
// written by MetaBAT2. Each sequence is assigned to the bin named after the
// stem of its file. Files are read in lexical order; a sequence found in
// several files stays in the first.
type FastaBinSource struct {
	Name string
	Dir  string

	// Universe, if not nil, lists items that are assigned to singletons
	// when no bin holds them.
	Universe []string
}

var fastaExts = map[string]bool{".fa": true, ".fasta": true, ".fna": true}

func (s *FastaBinSource) Load() (*Partition, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: s.Dir}
	} else if err != nil {
		return nil, err
	}
	b := NewBuilder(s.Name)
	var files int
	for _, e := range entries {
		if e.IsDir() || !fastaExts[filepath.Ext(e.Name())] {
			continue
		}
		files++
		path := filepath.Join(s.Dir, e.Name())
		seqs, err := contig.ReadFastaFile(path)
		if err != nil {
			return nil, err
		}
		label := fileutil.Stem(path)
		for _, sq := range seqs {
			if !b.Add(sq.ID, label) {
				log.Warnf("%s: %s already binned, ignoring", path, sq.ID)
			}
		}
	}
	log.Printf("%s: read %d bins from %s", s.Name, files, s.Dir)
	p := b.Partition()
	if s.Universe != nil {
		p = Complete(p, s.Universe)
	}
	return p, nil
}

// IDSource derives a partition from item ids, see FromItemIDs.
type IDSource struct {
	Name      string
	Items     []string
	Separator string
}

func (s *IDSource) Load() (*Partition, error) {
	log.Printf("deriving %s labels from item ids: label is the id prefix before %q", s.Name, s.Separator)
	return FromItemIDs(s.Name, s.Items, s.Separator), nil
}
