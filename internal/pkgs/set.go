// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package pkgs

import (
	"slices"
	"sort"
)

// RawEntry is one package of a raw snapshot as reported by the build graph.
type RawEntry struct {
	// Attr is the attribute path of the package within its group, e.g.
	// "hello" for packages.x86_64-linux.hello.
	Attr        string
	Name        string
	Description string
}

// RawSnapshot maps a group label (system) to the raw entries of that group.
type RawSnapshot map[string][]RawEntry

// Shadowed describes a raw entry that was dropped because an earlier entry of
// the same group resolved to the same identity key.
type Shadowed struct {
	Group string
	Key   string
	// Attr is the dropped entry, Kept is the entry that owns the key.
	Attr string
	Kept string
}

// Group holds the packages of one system keyed by identity.
type Group struct {
	Label string
	keys  []string
	pkgs  map[string]Package
}

// Set is an immutable snapshot of packages partitioned by group.
type Set struct {
	groups   map[string]*Group
	labels   []string
	shadowed []Shadowed
}

// NewSet builds a Set from a raw snapshot.
//
// Groups without entries are left out, so a group that lost all of its
// packages compares as a removed group. Within a group, entries are visited in
// ascending attribute order and the first entry for an identity key wins; the
// others are reported by Shadowed.
func NewSet(raw RawSnapshot) *Set {
	s := &Set{groups: make(map[string]*Group)}

	for label, entries := range raw {
		if len(entries) == 0 {
			continue
		}

		sorted := slices.Clone(entries)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Attr < sorted[j].Attr
		})

		g := &Group{Label: label, pkgs: make(map[string]Package, len(sorted))}
		owners := make(map[string]string, len(sorted))
		for _, e := range sorted {
			p := Identify(e.Name, e.Description)
			key := p.Key()
			if owner, exists := owners[key]; exists {
				s.shadowed = append(s.shadowed, Shadowed{Group: label, Key: key, Attr: e.Attr, Kept: owner})
				continue
			}
			owners[key] = e.Attr
			g.pkgs[key] = p
			g.keys = append(g.keys, key)
		}
		sort.Strings(g.keys)

		s.groups[label] = g
		s.labels = append(s.labels, label)
	}

	sort.Strings(s.labels)
	sort.SliceStable(s.shadowed, func(i, j int) bool {
		if s.shadowed[i].Group != s.shadowed[j].Group {
			return s.shadowed[i].Group < s.shadowed[j].Group
		}
		return s.shadowed[i].Attr < s.shadowed[j].Attr
	})

	return s
}

// Groups returns the group labels in ascending order.
func (s *Set) Groups() []string {
	return slices.Clone(s.labels)
}

// Group returns the group with the given label.
func (s *Set) Group(label string) (*Group, bool) {
	g, ok := s.groups[label]
	return g, ok
}

// Has reports whether the set contains a group with the given label.
func (s *Set) Has(label string) bool {
	_, ok := s.groups[label]
	return ok
}

// Len returns the number of groups.
func (s *Set) Len() int {
	return len(s.labels)
}

// Total returns the number of packages across all groups.
func (s *Set) Total() int {
	total := 0
	for _, g := range s.groups {
		total += g.Len()
	}
	return total
}

// Shadowed returns the entries dropped as duplicates during construction.
func (s *Set) Shadowed() []Shadowed {
	return slices.Clone(s.shadowed)
}

// Keys returns the identity keys of the group in ascending order.
func (g *Group) Keys() []string {
	return slices.Clone(g.keys)
}

// Get returns the package with the given identity key.
func (g *Group) Get(key string) (Package, bool) {
	p, ok := g.pkgs[key]
	return p, ok
}

// Len returns the number of packages in the group.
func (g *Group) Len() int {
	return len(g.keys)
}
