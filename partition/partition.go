// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package partition loads cluster assignments of contigs and restricts
// them to a common set of items.
//
// Raw cluster labels are opaque strings. They are re-encoded to small
// integers in order of first appearance, so two partitions can be compared
// by label equality only.
package partition

import (
	"fmt"
	"strings"
)

// Partition assigns every item to a cluster.
type Partition struct {
	// Name identifies the partition in reports, usually a method name.
	Name string

	// Items are the item ids in source order.
	Items []string

	// Labels are the cluster codes of Items, assigned in order of first
	// appearance starting at 0.
	Labels []int

	// Raw holds the original label of each code.
	Raw []string

	index map[string]int
}

// Builder accumulates (item, label) pairs into a Partition.
type Builder struct {
	p     *Partition
	codes map[string]int
}

// NewBuilder returns a Builder for an empty partition called name.
func NewBuilder(name string) *Builder {
	return &Builder{
		p: &Partition{
			Name:  name,
			index: make(map[string]int),
		},
		codes: make(map[string]int),
	}
}

// Add assigns item to the cluster labelled label. It reports false, and
// changes nothing, if item was already added.
func (b *Builder) Add(item, label string) bool {
	if _, ok := b.p.index[item]; ok {
		return false
	}
	code, ok := b.codes[label]
	if !ok {
		code = len(b.p.Raw)
		b.codes[label] = code
		b.p.Raw = append(b.p.Raw, label)
	}
	b.p.index[item] = len(b.p.Items)
	b.p.Items = append(b.p.Items, item)
	b.p.Labels = append(b.p.Labels, code)
	return true
}

// Partition returns the accumulated partition. The Builder must not be
// used afterwards.
func (b *Builder) Partition() *Partition {
	p := b.p
	b.p = nil
	return p
}

// Len returns the number of items.
func (p *Partition) Len() int { return len(p.Items) }

// NumClusters returns the number of distinct labels.
func (p *Partition) NumClusters() int { return len(p.Raw) }

// Label returns the cluster code of item.
func (p *Partition) Label(item string) (int, bool) {
	i, ok := p.index[item]
	if !ok {
		return 0, false
	}
	return p.Labels[i], true
}

// Has reports whether item is assigned.
func (p *Partition) Has(item string) bool {
	_, ok := p.index[item]
	return ok
}

// Complete returns a copy of p in which every item of items that p does
// not assign is placed in a new singleton cluster. New clusters are added
// in the order of items and are labelled with their code.
func Complete(p *Partition, items []string) *Partition {
	b := NewBuilder(p.Name)
	for i, item := range p.Items {
		b.Add(item, p.Raw[p.Labels[i]])
	}
	next := p.NumClusters()
	for _, item := range items {
		if p.Has(item) {
			continue
		}
		// Raw labels of existing clusters might collide with a bare
		// code, so singleton labels are disambiguated.
		label := fmt.Sprint(next)
		for {
			if _, taken := b.codes[label]; !taken {
				break
			}
			label = "singleton:" + label
		}
		b.Add(item, label)
		next++
	}
	return b.Partition()
}

// Restrict returns a copy of p holding only the items for which keep
// returns true. Codes are reassigned in p's item order.
func Restrict(p *Partition, keep func(item string) bool) *Partition {
	b := NewBuilder(p.Name)
	for i, item := range p.Items {
		if keep(item) {
			b.Add(item, p.Raw[p.Labels[i]])
		}
	}
	return b.Partition()
}

// FromItemIDs derives a partition from the item ids themselves: the label
// of an item is the part of its id before the first occurrence of sep, or
// the whole id if sep does not occur. CAMISIM-style ids such as
// "genome12|contig_3" carry their source genome this way.
//
// This is a naming convention of the simulated data, not a property of the
// items; callers must state it when they rely on it.
func FromItemIDs(name string, items []string, sep string) *Partition {
	b := NewBuilder(name)
	for _, item := range items {
		label := item
		if sep != "" {
			if i := strings.Index(item, sep); i >= 0 {
				label = item[:i]
			}
		}
		b.Add(item, label)
	}
	return b.Partition()
}
