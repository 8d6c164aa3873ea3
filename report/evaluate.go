// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report scores the methods of a dataset and emits the results as
// a table.
package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/binbench/binbench/common/log"
	"github.com/binbench/binbench/metric"
	"github.com/binbench/binbench/pairs"
	"github.com/binbench/binbench/partition"
)

// Record holds the scores of one method, optionally within one stratum of
// the items.
type Record struct {
	Method  string
	Stratum string
	Items   int
	Counts  pairs.Counts

	// Scores are aligned with the metrics of the Evaluator.
	Scores []float64
}

// Evaluator scores every method of a dataset.
type Evaluator struct {
	Metrics []metric.ClusteringMetric

	// Procs bounds the number of methods scored concurrently.
	// Values below 1 mean 1.
	Procs int
}

// Evaluate returns one record per method of ds, in method order.
func (e *Evaluator) Evaluate(ctx context.Context, ds *partition.Dataset) ([]Record, error) {
	return e.evaluate(ctx, ds, "")
}

// EvaluateStrata scores every method within each stratum. Strata without
// items are skipped. Records are ordered by stratum, then by method.
func (e *Evaluator) EvaluateStrata(ctx context.Context, ds *partition.Dataset, strata []Stratum) ([]Record, error) {
	var records []Record
	for _, s := range strata {
		if len(s.Index) == 0 {
			log.Printf("stratum %s holds no item, skipping", s.Label)
			continue
		}
		recs, err := e.evaluate(ctx, ds.Subset(s.Index), s.Label)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (e *Evaluator) evaluate(ctx context.Context, ds *partition.Dataset, stratum string) ([]Record, error) {
	procs := e.Procs
	if procs < 1 {
		procs = 1
	}
	records := make([]Record, len(ds.Methods))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(procs)
	for m := range ds.Methods {
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			records[m] = e.score(ds, m, stratum)
			log.Printf("scored %s on %d items%s in %s", ds.Methods[m], ds.Len(), inStratum(stratum), time.Since(start).Round(time.Millisecond))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (e *Evaluator) score(ds *partition.Dataset, m int, stratum string) Record {
	pred := ds.Labels[m]
	r := Record{
		Method:  ds.Methods[m],
		Stratum: stratum,
		Items:   ds.Len(),
		Counts:  pairs.Count(ds.Truth, pred),
		Scores:  make([]float64, len(e.Metrics)),
	}
	for i, mt := range e.Metrics {
		r.Scores[i] = mt.Score(ds.Truth, pred)
	}
	return r
}

func inStratum(stratum string) string {
	if stratum == "" {
		return ""
	}
	return " in stratum " + stratum
}
