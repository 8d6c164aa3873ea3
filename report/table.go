// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Table is a method by metric table.
type Table struct {
	// Metrics are the metric names, aligned with Record.Scores.
	Metrics []string

	// Stratified adds a stratum column.
	Stratified bool

	// Dataset, if set, is added as a last column.
	Dataset string

	Records []Record
}

// Header returns the column names.
func (t *Table) Header() []string {
	h := []string{"method"}
	if t.Stratified {
		h = append(h, "stratum")
	}
	h = append(h, "TP", "TN", "FP", "FN")
	h = append(h, t.Metrics...)
	if t.Dataset != "" {
		h = append(h, "dataset")
	}
	return h
}

// Rows returns the formatted records.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.Records))
	for _, r := range t.Records {
		row := []string{r.Method}
		if t.Stratified {
			stratum := r.Stratum
			if stratum == "" {
				stratum = "all"
			}
			row = append(row, stratum)
		}
		for _, c := range []int64{r.Counts.TP, r.Counts.TN, r.Counts.FP, r.Counts.FN} {
			row = append(row, strconv.FormatInt(c, 10))
		}
		for _, s := range r.Scores {
			row = append(row, FormatFloat(s))
		}
		if t.Dataset != "" {
			row = append(row, t.Dataset)
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the header and rows as delimited text.
func (t *Table) WriteCSV(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows()); err != nil {
		return err
	}
	return cw.Error()
}

// WriteText writes the table with aligned columns for reading on a
// terminal.
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(t.Header(), "\t")+"\t")
	for _, row := range t.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}

// FormatFloat formats f with the fewest digits that read back to f.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
