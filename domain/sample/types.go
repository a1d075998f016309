// Package sample holds the grouped-sample data model shared by the
// variance engines. A GroupedDataset is built once per analysis call
// from raw rows and discarded afterwards; nothing here is cached.
package sample

import (
	"sort"
)

// Group is a category label with its ordered numeric samples.
// Immutable once built: Samples returns a copy.
type Group struct {
	label   string
	samples []float64
}

// NewGroup builds a Group from a label and its samples.
func NewGroup(label string, samples []float64) Group {
	owned := make([]float64, len(samples))
	copy(owned, samples)
	return Group{label: label, samples: owned}
}

// Label returns the category label.
func (g Group) Label() string { return g.label }

// Size returns the retained sample count.
func (g Group) Size() int { return len(g.samples) }

// Samples returns a copy of the ordered samples.
func (g Group) Samples() []float64 {
	out := make([]float64, len(g.samples))
	copy(out, g.samples)
	return out
}

// GroupedDataset maps category labels to sample groups. Keys are
// unique; insertion order is irrelevant. Every contained group has
// strictly more samples than the extractor's min_sample_size.
type GroupedDataset struct {
	groups map[string]Group
}

// NewGroupedDataset builds a dataset from already-filtered groups.
func NewGroupedDataset(groups []Group) GroupedDataset {
	m := make(map[string]Group, len(groups))
	for _, g := range groups {
		m[g.label] = g
	}
	return GroupedDataset{groups: m}
}

// GroupCount returns the number of retained categories.
func (d GroupedDataset) GroupCount() int { return len(d.groups) }

// TotalSamples returns the total observation count across groups.
func (d GroupedDataset) TotalSamples() int {
	n := 0
	for _, g := range d.groups {
		n += len(g.samples)
	}
	return n
}

// Group returns the group for a label, if present.
func (d GroupedDataset) Group(label string) (Group, bool) {
	g, ok := d.groups[label]
	return g, ok
}

// Labels returns category labels sorted lexicographically, so that
// pairwise comparisons come out in a stable order.
func (d GroupedDataset) Labels() []string {
	labels := make([]string, 0, len(d.groups))
	for label := range d.groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Groups returns the groups in lexicographic label order.
func (d GroupedDataset) Groups() []Group {
	labels := d.Labels()
	out := make([]Group, 0, len(labels))
	for _, label := range labels {
		out = append(out, d.groups[label])
	}
	return out
}
