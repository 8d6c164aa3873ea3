// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import "fmt"

// Dataset holds a truth partition and the partitions of several methods
// over one common list of items. All label slices are aligned with Items.
type Dataset struct {
	Items   []string
	Truth   []int
	Methods []string
	Labels  [][]int
}

// Reconcile restricts truth and preds to the items they all assign. Items
// keep the order of truth. It fails with a *NoOverlapError if no item is
// shared and rejects methods with duplicate names.
func Reconcile(truth *Partition, preds []*Partition) (*Dataset, error) {
	seen := make(map[string]bool, len(preds))
	for _, p := range preds {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate method name %q", p.Name)
		}
		seen[p.Name] = true
	}

	ds := &Dataset{
		Methods: make([]string, len(preds)),
		Labels:  make([][]int, len(preds)),
	}
	for m, p := range preds {
		ds.Methods[m] = p.Name
	}
	pos := make([]int, len(preds))
outer:
	for i, item := range truth.Items {
		for m, p := range preds {
			j, ok := p.index[item]
			if !ok {
				continue outer
			}
			pos[m] = j
		}
		ds.Items = append(ds.Items, item)
		ds.Truth = append(ds.Truth, truth.Labels[i])
		for m, p := range preds {
			ds.Labels[m] = append(ds.Labels[m], p.Labels[pos[m]])
		}
	}
	if len(ds.Items) == 0 {
		names := []string{truth.Name}
		for _, p := range preds {
			names = append(names, p.Name)
		}
		return nil, &NoOverlapError{Names: names}
	}
	return ds, nil
}

// Len returns the number of common items.
func (ds *Dataset) Len() int { return len(ds.Items) }

// Subset returns the dataset restricted to the items at indices idx, in
// that order.
func (ds *Dataset) Subset(idx []int) *Dataset {
	sub := &Dataset{
		Items:   make([]string, len(idx)),
		Truth:   make([]int, len(idx)),
		Methods: ds.Methods,
		Labels:  make([][]int, len(ds.Labels)),
	}
	for k, i := range idx {
		sub.Items[k] = ds.Items[i]
		sub.Truth[k] = ds.Truth[i]
	}
	for m, labels := range ds.Labels {
		sub.Labels[m] = make([]int, len(idx))
		for k, i := range idx {
			sub.Labels[m][k] = labels[i]
		}
	}
	return sub
}
