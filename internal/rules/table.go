package rules

import "sort"

// Table maps rule identifiers to their entries. Tables are treated as
// immutable values: every operation returns a new table.
type Table map[string]Entry

// Clone returns a copy of t. Entry options are shared.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for id, e := range t {
		out[id] = e
	}
	return out
}

// DeepClone returns a copy of t that shares no option values with t.
func (t Table) DeepClone() Table {
	out := make(Table, len(t))
	for id, e := range t {
		out[id] = e.Clone()
	}
	return out
}

// Overlay returns a copy of t in which every entry of delta replaces the
// entry with the same identifier.
func (t Table) Overlay(delta Table) Table {
	out := make(Table, len(t)+len(delta))
	for id, e := range t {
		out[id] = e
	}
	for id, e := range delta {
		out[id] = e
	}
	return out
}

// Get returns the entry for id.
func (t Table) Get(id string) (Entry, bool) {
	e, ok := t[id]
	return e, ok
}

// IDs returns the identifiers of t in sorted order.
func (t Table) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
