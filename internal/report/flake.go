// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nurctl/nurctl/internal/differ"
	"github.com/nurctl/nurctl/internal/pkgs"
)

// Arch is the rendered change listing of one group present in both snapshots.
type Arch struct {
	Name    string `json:"name" yaml:"name"`
	Changes `yaml:",inline"`
	// Total is the number of packages in the new snapshot's group.
	Total int `json:"total" yaml:"total"`
}

// FlakeStats summarises a flake report.
type FlakeStats struct {
	AddedPkgs    int `json:"added_pkgs" yaml:"added_pkgs"`
	UpdatedPkgs  int `json:"updated_pkgs" yaml:"updated_pkgs"`
	RemovedPkgs  int `json:"removed_pkgs" yaml:"removed_pkgs"`
	Pkgs         int `json:"pkgs" yaml:"pkgs"`
	AddedArchs   int `json:"added_archs" yaml:"added_archs"`
	RemovedArchs int `json:"removed_archs" yaml:"removed_archs"`
	Archs        int `json:"archs" yaml:"archs"`
}

// FlakeDocument is the report of a flake snapshot diff.
type FlakeDocument struct {
	Title        string     `json:"title,omitempty" yaml:"title,omitempty"`
	PerArch      bool       `json:"per_arch" yaml:"per_arch"`
	Stats        FlakeStats `json:"stats" yaml:"stats"`
	Archs        []Arch     `json:"archs" yaml:"archs"`
	AddedArchs   []string   `json:"added_archs" yaml:"added_archs"`
	RemovedArchs []string   `json:"removed_archs" yaml:"removed_archs"`
	// Aggregate is set when PerArch is false.
	Aggregate *Changes `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
}

// packageLine renders "name: version", or "raw: unparsable" for an opaque
// package.
func packageLine(p pkgs.Package) string {
	return p.Key() + ": " + pkgs.VersionString(p)
}

// NewFlake builds the report document of sd.
func NewFlake(sd *differ.SnapshotDiff, opts Options) *FlakeDocument {
	doc := &FlakeDocument{
		Title:        opts.Title,
		PerArch:      opts.PerArch,
		Archs:        []Arch{},
		AddedArchs:   append([]string{}, sd.AddedGroups...),
		RemovedArchs: append([]string{}, sd.RemovedGroups...),
	}

	for _, label := range sd.Labels() {
		gd, _ := sd.Group(label)

		a := Arch{
			Name:  label,
			Total: gd.Total,
			Changes: Changes{
				Added:   make([]string, 0, len(gd.Added)),
				Updated: make([]string, 0, len(gd.Updated)),
				Removed: make([]string, 0, len(gd.Removed)),
			},
		}
		for _, p := range gd.Added {
			a.Added = append(a.Added, packageLine(p))
		}
		for _, u := range gd.Updated {
			a.Updated = append(a.Updated, u.Comparison.Text)
		}
		for _, p := range gd.Removed {
			a.Removed = append(a.Removed, packageLine(p))
		}
		doc.Archs = append(doc.Archs, a)

		doc.Stats.AddedPkgs += len(a.Added)
		doc.Stats.UpdatedPkgs += len(a.Updated)
		doc.Stats.RemovedPkgs += len(a.Removed)
		doc.Stats.Pkgs += a.Total
	}

	doc.Stats.AddedArchs = len(doc.AddedArchs)
	doc.Stats.RemovedArchs = len(doc.RemovedArchs)
	doc.Stats.Archs = sd.TotalGroups

	if !opts.PerArch {
		doc.Aggregate = aggregate(doc.Archs)
	}

	return doc
}

// aggregate lists every arch's lines in a single listing, one line per arch
// and entry, each annotated with its arch. Lines keep diff order.
func aggregate(archs []Arch) *Changes {
	flatten := func(pick func(Arch) []string) []string {
		out := []string{}
		for _, a := range archs {
			for _, l := range pick(a) {
				out = append(out, fmt.Sprintf("%s (%s)", l, a.Name))
			}
		}
		return out
	}

	return &Changes{
		Added:   flatten(func(a Arch) []string { return a.Added }),
		Updated: flatten(func(a Arch) []string { return a.Updated }),
		Removed: flatten(func(a Arch) []string { return a.Removed }),
	}
}

// Markdown renders the document.
func (d *FlakeDocument) Markdown() string {
	var sb strings.Builder

	sb.WriteString(heading(d.Title) + "\n")
	generatedBy(&sb)

	sb.WriteString("### Stats\n")
	if d.PerArch {
		sb.WriteString("#### By Arch\n")
		for _, a := range d.Archs {
			fmt.Fprintf(&sb, "##### %s\nAdded: %d\nUpdated: %d\nRemoved: %d\nTotal: %d\n\n",
				a.Name, len(a.Added), len(a.Updated), len(a.Removed), a.Total)
		}
	}
	s := d.Stats
	fmt.Fprintf(&sb, "#### Totals\n"+
		"Added Pkgs: %d\nUpdated Pkgs: %d\nRemoved Pkgs: %d\nPkgs: %d\n"+
		"Added Archs: %d\nRemoved Archs: %d\nArchs: %d\n\n",
		s.AddedPkgs, s.UpdatedPkgs, s.RemovedPkgs, s.Pkgs,
		s.AddedArchs, s.RemovedArchs, s.Archs)

	sb.WriteString("### Arch Changes\n")
	section(&sb, 4, "Added", d.AddedArchs)
	section(&sb, 4, "Removed", d.RemovedArchs)

	sb.WriteString("### Pkg Changes\n")
	if d.Aggregate != nil {
		section(&sb, 4, "Added", d.Aggregate.Added)
		section(&sb, 4, "Updated", d.Aggregate.Updated)
		section(&sb, 4, "Removed", d.Aggregate.Removed)
		return sb.String()
	}
	for _, a := range d.Archs {
		fmt.Fprintf(&sb, "#### %s\n", a.Name)
		section(&sb, 5, "Added", a.Added)
		section(&sb, 5, "Updated", a.Updated)
		section(&sb, 5, "Removed", a.Removed)
	}
	return sb.String()
}

// Summary returns the stats as table rows: one per arch and a closing total.
func (d *FlakeDocument) Summary() (headers []string, rows [][]string) {
	headers = []string{"arch", "added", "updated", "removed", "total"}
	for _, a := range d.Archs {
		rows = append(rows, []string{a.Name,
			strconv.Itoa(len(a.Added)), strconv.Itoa(len(a.Updated)),
			strconv.Itoa(len(a.Removed)), strconv.Itoa(a.Total)})
	}
	s := d.Stats
	rows = append(rows, []string{"(all)",
		strconv.Itoa(s.AddedPkgs), strconv.Itoa(s.UpdatedPkgs),
		strconv.Itoa(s.RemovedPkgs), strconv.Itoa(s.Pkgs)})
	return headers, rows
}
