// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metric provides external clustering comparison metrics under the
// names scikit-learn gives them.
package metric

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/binbench/binbench/pairs"
)

// ClusteringMetric scores a predicted labeling against a truth labeling of
// the same items. Both slices must have equal length.
type ClusteringMetric interface {
	Name() string
	Score(truth, pred []int) float64
}

// Func adapts a function to a ClusteringMetric.
type Func struct {
	name string
	fn   func(truth, pred []int) float64
}

// NewFunc returns a metric called name that scores with fn.
func NewFunc(name string, fn func(truth, pred []int) float64) *Func {
	return &Func{name: name, fn: fn}
}

func (f *Func) Name() string                    { return f.name }
func (f *Func) Score(truth, pred []int) float64 { return f.fn(truth, pred) }

// Default lists the metrics reported when none are requested.
var Default = []string{"adjusted_rand_score", "homogeneity_score", "completeness_score"}

var registry = map[string]ClusteringMetric{}

func register(m ClusteringMetric) {
	registry[m.Name()] = m
}

func init() {
	register(NewFunc("adjusted_rand_score", AdjustedRand))
	register(NewFunc("rand_score", Rand))
	register(NewFunc("homogeneity_score", Homogeneity))
	register(NewFunc("completeness_score", Completeness))
	register(NewFunc("v_measure_score", VMeasure))
}

// Names returns the names of all known metrics, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the metric called name.
func Lookup(name string) (ClusteringMetric, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// LookupAll resolves names in order.
func LookupAll(names []string) ([]ClusteringMetric, error) {
	ms := make([]ClusteringMetric, 0, len(names))
	for _, name := range names {
		m, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// AdjustedRand returns the adjusted Rand index of pred against truth.
func AdjustedRand(truth, pred []int) float64 {
	return pairs.Count(truth, pred).AdjustedRandIndex()
}

// Rand returns the unadjusted Rand index of pred against truth.
func Rand(truth, pred []int) float64 {
	return pairs.Count(truth, pred).RandIndex()
}

// Homogeneity is 1 when every predicted cluster holds items of a single
// truth cluster.
func Homogeneity(truth, pred []int) float64 {
	h, _ := homogeneityCompleteness(truth, pred)
	return h
}

// Completeness is 1 when all items of a truth cluster share a predicted
// cluster.
func Completeness(truth, pred []int) float64 {
	_, c := homogeneityCompleteness(truth, pred)
	return c
}

// VMeasure is the harmonic mean of homogeneity and completeness.
func VMeasure(truth, pred []int) float64 {
	h, c := homogeneityCompleteness(truth, pred)
	if h+c == 0 {
		return 0
	}
	return 2 * h * c / (h + c)
}

// homogeneityCompleteness follows Rosenberg and Hirschberg (2007):
// homogeneity is I(C;K)/H(C) and completeness is I(C;K)/H(K), with C the
// truth and K the prediction. A zero entropy gives a score of 1.
func homogeneityCompleteness(truth, pred []int) (h, c float64) {
	t := newContingency(truth, pred)
	if t.n == 0 {
		return 1, 1
	}
	hc := stat.Entropy(t.truthP)
	hk := stat.Entropy(t.predP)
	mi := math.Max(hc+hk-stat.Entropy(t.jointP), 0)
	h, c = 1, 1
	if hc != 0 {
		h = math.Min(mi/hc, 1)
	}
	if hk != 0 {
		c = math.Min(mi/hk, 1)
	}
	return h, c
}

// contingency holds the joint and marginal label distributions of two
// labelings as probabilities.
type contingency struct {
	n                     int
	truthP, predP, jointP []float64
}

func newContingency(truth, pred []int) *contingency {
	if len(truth) != len(pred) {
		panic(fmt.Sprintf("metric: %d truth labels but %d predicted labels", len(truth), len(pred)))
	}
	type cell struct{ t, p int }
	joint := make(map[cell]int)
	tc := make(map[int]int)
	pc := make(map[int]int)
	for i := range truth {
		joint[cell{truth[i], pred[i]}]++
		tc[truth[i]]++
		pc[pred[i]]++
	}
	n := float64(len(truth))
	probs := func(counts []int) []float64 {
		// Sorting makes the floating point sums independent of map order.
		sort.Ints(counts)
		p := make([]float64, len(counts))
		for i, k := range counts {
			p[i] = float64(k) / n
		}
		return p
	}
	values := func(m map[int]int) []int {
		v := make([]int, 0, len(m))
		for _, k := range m {
			v = append(v, k)
		}
		return v
	}
	jv := make([]int, 0, len(joint))
	for _, k := range joint {
		jv = append(jv, k)
	}
	return &contingency{
		n:      len(truth),
		truthP: probs(values(tc)),
		predP:  probs(values(pc)),
		jointP: probs(jv),
	}
}
