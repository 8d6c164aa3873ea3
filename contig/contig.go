// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package contig reads and writes contig sequences and lengths.
package contig

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// lineWidth is the sequence line width of written FASTA files.
const lineWidth = 60

// ReadFasta returns the sequences of r in file order. Sequence ids are
// the first word of each header line.
func ReadFasta(r io.Reader) ([]*linear.Seq, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	var seqs []*linear.Seq
	for sc.Next() {
		seqs = append(seqs, sc.Seq().(*linear.Seq))
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return seqs, nil
}

// ReadFastaFile is ReadFasta on the file at path.
func ReadFastaFile(path string) ([]*linear.Seq, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	seqs, err := ReadFasta(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return seqs, nil
}

// Lengths maps every sequence id of the FASTA file at path to its length.
func Lengths(path string) (map[string]int, error) {
	seqs, err := ReadFastaFile(path)
	if err != nil {
		return nil, err
	}
	lengths := make(map[string]int, len(seqs))
	for _, s := range seqs {
		lengths[s.ID] = s.Len()
	}
	return lengths, nil
}

// LengthTable reads "id,length" rows from the file at path. Rows whose
// length field is not an integer are rejected, except for a leading
// header row.
func LengthTable(path string, comma rune) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	if comma != 0 {
		r.Comma = comma
	}
	r.FieldsPerRecord = 2
	r.ReuseRecord = true
	lengths := make(map[string]int)
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%s:%d: bad length %q", path, line, rec[1])
		}
		lengths[rec[0]] = n
	}
	return lengths, nil
}

// Writer writes sequences as FASTA.
type Writer struct {
	w *fasta.Writer
}

// NewWriter returns a Writer wrapping lines at lineWidth bases.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: fasta.NewWriter(w, lineWidth)}
}

// Write writes one record with header ">id desc".
func (w *Writer) Write(id, desc string, letters alphabet.Letters) error {
	s := linear.NewSeq(id, letters, alphabet.DNA)
	s.Desc = desc
	_, err := w.w.Write(s)
	return err
}
