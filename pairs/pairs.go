// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pairs counts how two clusterings of the same items agree on
// pairs of items.
//
// For every unordered pair {i, j} of distinct items, the truth either
// places both items in one cluster or not, and so does the prediction.
// The four outcomes are counted as
//
//	TP: same in truth, same in prediction
//	TN: different in truth, different in prediction
//	FP: different in truth, same in prediction
//	FN: same in truth, different in prediction
//
// so that TP+TN+FP+FN = n(n-1)/2.
package pairs

import "fmt"

// Counts is the pair confusion table of a prediction against a truth.
type Counts struct {
	TP, TN, FP, FN int64
}

// Total returns the number of pairs counted.
func (c Counts) Total() int64 {
	return c.TP + c.TN + c.FP + c.FN
}

// Transpose returns the counts obtained by swapping truth and prediction.
func (c Counts) Transpose() Counts {
	return Counts{TP: c.TP, TN: c.TN, FP: c.FN, FN: c.FP}
}

// RandIndex returns the fraction of pairs on which truth and prediction
// agree. It is 1 when there are no pairs.
func (c Counts) RandIndex() float64 {
	total := c.Total()
	if total == 0 {
		return 1
	}
	return float64(c.TP+c.TN) / float64(total)
}

// AdjustedRandIndex returns the Rand index corrected for chance, as in
// Hubert and Arabie (1985). It is 1 for identical clusterings, including
// when there are fewer than two items, and 0 in expectation for random
// ones.
func (c Counts) AdjustedRandIndex() float64 {
	if c.FP == 0 && c.FN == 0 {
		return 1
	}
	// Products of pair counts overflow int64 from about 10^5 items.
	tp, tn, fp, fn := float64(c.TP), float64(c.TN), float64(c.FP), float64(c.FN)
	return 2 * (tp*tn - fn*fp) / ((tp+fn)*(fn+tn) + (tp+fp)*(fp+tn))
}

func (c Counts) String() string {
	return fmt.Sprintf("TP=%d TN=%d FP=%d FN=%d", c.TP, c.TN, c.FP, c.FN)
}

// choose2 returns n(n-1)/2.
func choose2(n int64) int64 {
	return n * (n - 1) / 2
}

type cell[T comparable] struct {
	truth, pred T
}

// Count returns the pair confusion table of pred against truth, where
// truth[i] and pred[i] are the cluster labels of item i. Labels are only
// compared for equality within one clustering.
//
// Count runs in time linear in the number of items: TP is the number of
// pairs inside the cells of the cross-tabulation of the two labelings, and
// the other counts follow from the pairs inside the truth clusters and
// inside the predicted clusters.
//
// Count panics if truth and pred differ in length.
func Count[T comparable](truth, pred []T) Counts {
	if len(truth) != len(pred) {
		panic(fmt.Sprintf("pairs: %d truth labels but %d predicted labels", len(truth), len(pred)))
	}
	n := int64(len(truth))
	if n < 2 {
		return Counts{}
	}

	cells := make(map[cell[T]]int64)
	truthSizes := make(map[T]int64)
	predSizes := make(map[T]int64)
	for i := range truth {
		cells[cell[T]{truth[i], pred[i]}]++
		truthSizes[truth[i]]++
		predSizes[pred[i]]++
	}

	var tp, sameTruth, samePred int64
	for _, k := range cells {
		tp += choose2(k)
	}
	for _, k := range truthSizes {
		sameTruth += choose2(k)
	}
	for _, k := range predSizes {
		samePred += choose2(k)
	}
	c := Counts{
		TP: tp,
		FN: sameTruth - tp,
		FP: samePred - tp,
	}
	c.TN = choose2(n) - c.TP - c.FN - c.FP
	return c
}
