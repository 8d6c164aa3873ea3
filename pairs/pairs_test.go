// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairs

import (
	"math"
	"math/rand"
	"testing"
)

// countPairwise enumerates all pairs. It is the reference Count must
// agree with.
func countPairwise[T comparable](truth, pred []T) Counts {
	var c Counts
	for i := range truth {
		for j := i + 1; j < len(truth); j++ {
			sameTruth := truth[i] == truth[j]
			samePred := pred[i] == pred[j]
			switch {
			case sameTruth && samePred:
				c.TP++
			case !sameTruth && !samePred:
				c.TN++
			case !sameTruth && samePred:
				c.FP++
			default:
				c.FN++
			}
		}
	}
	return c
}

func randomLabels(rng *rand.Rand, n, k int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = rng.Intn(k)
	}
	return labels
}

func constant(n, v int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = v
	}
	return labels
}

func distinct(n int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}
	return labels
}

func TestCountExample(t *testing.T) {
	// Items a, b, c, d. By hand:
	// (a,b) TP, (a,c) FP, (a,d) TN, (b,c) FP, (b,d) TN, (c,d) FN.
	truth := []int{0, 0, 1, 1}
	pred := []int{0, 0, 0, 1}
	want := Counts{TP: 1, TN: 2, FP: 2, FN: 1}
	if got := Count(truth, pred); got != want {
		t.Fatalf("Count = %v, want %v", got, want)
	}
	if got := countPairwise(truth, pred); got != want {
		t.Fatalf("countPairwise = %v, want %v", got, want)
	}
}

func TestCountMatchesPairwise(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	type labeling struct {
		name        string
		truth, pred []int
	}
	tests := []labeling{
		{"empty", nil, nil},
		{"single", []int{3}, []int{7}},
		{"all same", constant(50, 1), constant(50, 4)},
		{"all distinct", distinct(50), distinct(50)},
		{"same vs distinct", constant(40, 0), distinct(40)},
		{"distinct vs same", distinct(40), constant(40, 0)},
	}
	for i := 0; i < 200; i++ {
		n := rng.Intn(120)
		tests = append(tests, labeling{
			name:  "random",
			truth: randomLabels(rng, n, 1+rng.Intn(10)),
			pred:  randomLabels(rng, n, 1+rng.Intn(10)),
		})
	}
	for _, test := range tests {
		got := Count(test.truth, test.pred)
		want := countPairwise(test.truth, test.pred)
		if got != want {
			t.Errorf("%s (n=%d): Count = %v, pairwise = %v", test.name, len(test.truth), got, want)
		}
		n := int64(len(test.truth))
		if total := got.Total(); total != n*(n-1)/2 {
			t.Errorf("%s (n=%d): total = %d, want %d", test.name, n, total, n*(n-1)/2)
		}
	}
}

func TestCountSmall(t *testing.T) {
	for _, n := range []int{0, 1} {
		if got := Count(distinct(n), constant(n, 0)); got != (Counts{}) {
			t.Errorf("n=%d: Count = %v, want zero counts", n, got)
		}
	}
}

func TestCountSymmetry(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		n := rng.Intn(80)
		truth := randomLabels(rng, n, 1+rng.Intn(6))
		pred := randomLabels(rng, n, 1+rng.Intn(6))
		c := Count(truth, pred)
		if swapped := Count(pred, truth); swapped != c.Transpose() {
			t.Fatalf("Count(pred, truth) = %v, want %v", swapped, c.Transpose())
		}
	}
}

func TestCountDegenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		n := 2 + rng.Intn(60)
		pred := randomLabels(rng, n, 1+rng.Intn(8))

		// One truth cluster: every pair is truth-same.
		c := Count(constant(n, 9), pred)
		if c.FP != 0 || c.TN != 0 {
			t.Fatalf("single truth cluster: %v, want FP=TN=0", c)
		}
		// One predicted cluster: every pair is predicted-same.
		c = Count(pred, constant(n, 9))
		if c.FN != 0 || c.TN != 0 {
			t.Fatalf("single predicted cluster: %v, want FN=TN=0", c)
		}
	}
}

func TestCountRenamedLabels(t *testing.T) {
	truth := []string{"g1", "g1", "g2", "g3", "g2", "g3", "g3"}
	pred := []string{"bin_7", "bin_7", "bin_1", "bin_0", "bin_1", "bin_0", "bin_0"}
	c := Count(truth, pred)
	if c.FP != 0 || c.FN != 0 {
		t.Fatalf("renamed labels: %v, want FP=FN=0", c)
	}
	if c.TP != 1+1+3 {
		t.Errorf("TP = %d, want 5", c.TP)
	}
	if ari := c.AdjustedRandIndex(); ari != 1 {
		t.Errorf("ARI = %v, want 1", ari)
	}
	if ri := c.RandIndex(); ri != 1 {
		t.Errorf("Rand index = %v, want 1", ri)
	}
}

func TestAdjustedRandIndex(t *testing.T) {
	for _, test := range []struct {
		truth, pred []int
		want        float64
	}{
		{[]int{0, 0, 1, 1}, []int{0, 0, 1, 1}, 1},
		{[]int{0, 0, 1, 1}, []int{1, 1, 0, 0}, 1},
		{[]int{0, 0, 1, 1}, []int{0, 0, 1, 2}, 4.0 / 7},
		{[]int{0, 0, 1, 2}, []int{0, 0, 1, 1}, 4.0 / 7},
		{[]int{0, 0, 1, 1}, []int{0, 1, 0, 1}, -0.5},
		{[]int{0, 0, 0, 0}, []int{0, 1, 2, 3}, 0},
		{nil, nil, 1},
	} {
		got := Count(test.truth, test.pred).AdjustedRandIndex()
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("ARI(%v, %v) = %v, want %v", test.truth, test.pred, got, test.want)
		}
	}
}

func TestCountLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Count([]int{0, 1}, []int{0})
}

func BenchmarkCount(b *testing.B) {
	rng := rand.New(rand.NewSource(4))
	truth := randomLabels(rng, 100000, 500)
	pred := randomLabels(rng, 100000, 800)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Count(truth, pred)
	}
}
