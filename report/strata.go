// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/binbench/binbench/common/log"
)

// labelPrecision is the number of decimals kept in stratum labels.
const labelPrecision = 3

// Stratum is a named subset of the items of a dataset.
type Stratum struct {
	Label string

	// Index holds positions in the dataset's item list, ascending.
	Index []int
}

// QuantileStrata splits items into at most q buckets of contig length.
//
// Bucket edges are the k/q quantiles, k = 0..q, of all lengths given, not
// only those of items, so that strata are comparable across datasets that
// share contigs. Quantiles interpolate linearly between order statistics
// at rank p*(n-1), as pandas.qcut does. Equal edges are merged. The first
// bucket is closed, [e0, e1]; the others are (e[k-1], e[k]]. Labels use
// interval notation with the lowest edge lowered by 0.001, for example
// "(0.999, 3.0]" and "(3.0, 5.0]". Items with no known length are left out
// of every stratum.
func QuantileStrata(items []string, lengths map[string]int, q int) ([]Stratum, error) {
	if q < 1 {
		return nil, fmt.Errorf("need at least one stratum, got %d", q)
	}
	if len(lengths) == 0 {
		return nil, fmt.Errorf("no contig lengths to stratify by")
	}
	all := make([]float64, 0, len(lengths))
	for _, l := range lengths {
		all = append(all, float64(l))
	}
	sort.Float64s(all)

	edges := []float64{all[0]}
	for k := 1; k <= q; k++ {
		e := quantile(all, k, q)
		if e > edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	if len(edges) == 1 {
		// All lengths are equal: one closed bucket.
		edges = append(edges, edges[0])
	}

	strata := make([]Stratum, len(edges)-1)
	for k := range strata {
		left := edges[k]
		if k == 0 {
			left -= math.Pow10(-labelPrecision)
		}
		strata[k].Label = "(" + formatEdge(left) + ", " + formatEdge(edges[k+1]) + "]"
	}
	var missing int
	for i, item := range items {
		l, ok := lengths[item]
		if !ok {
			missing++
			continue
		}
		// Index of the first edge >= l, so l falls in (edges[k-1], edges[k]].
		k := sort.SearchFloat64s(edges, float64(l))
		if k == 0 {
			k = 1
		} else if k == len(edges) {
			k--
		}
		strata[k-1].Index = append(strata[k-1].Index, i)
	}
	if missing > 0 {
		log.Warnf("%d of %d items have no known length and are left out of the strata", missing, len(items))
	}
	return strata, nil
}

// quantile returns the k/q quantile of the sorted values x, interpolating
// linearly between x[lo] and x[lo+1] at rank h = k*(n-1)/q.
func quantile(x []float64, k, q int) float64 {
	h := float64(k*(len(x)-1)) / float64(q)
	lo := int(math.Floor(h))
	if lo+1 >= len(x) {
		return x[len(x)-1]
	}
	return x[lo] + (h-float64(lo))*(x[lo+1]-x[lo])
}

// formatEdge rounds v to labelPrecision decimals, or to that many
// significant digits when |v| < 1, and prints it the way Python prints a
// float.
func formatEdge(v float64) string {
	if v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
		digits := labelPrecision
		if whole, frac := math.Modf(v); whole == 0 {
			digits = -int(math.Floor(math.Log10(math.Abs(frac)))) - 1 + labelPrecision
		}
		p := math.Pow10(digits)
		v = math.Round(v*p) / p
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
