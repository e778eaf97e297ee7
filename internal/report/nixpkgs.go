// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nurctl/nurctl/internal/changelog"
)

// NixpkgsStats summarises a nixpkgs report.
type NixpkgsStats struct {
	Added      int `json:"added" yaml:"added"`
	Updated    int `json:"updated" yaml:"updated"`
	Removed    int `json:"removed" yaml:"removed"`
	Unparsable int `json:"unparsable" yaml:"unparsable"`
}

// NixpkgsDocument is the report of the change messages between two nixpkgs
// revisions.
type NixpkgsDocument struct {
	Title   string       `json:"title,omitempty" yaml:"title,omitempty"`
	Base    string       `json:"base" yaml:"base"`
	Head    string       `json:"head" yaml:"head"`
	Stats   NixpkgsStats `json:"stats" yaml:"stats"`
	Changes `yaml:",inline"`
	// Unparsable is only filled when requested.
	Unparsable []string `json:"unparsable,omitempty" yaml:"unparsable,omitempty"`

	showUnparsable bool
}

// NewNixpkgs builds the report document of events. Added and removed names
// keep their first occurrence; update lines are deduplicated and sorted.
func NewNixpkgs(events []changelog.Event, base, head string, opts Options) *NixpkgsDocument {
	var added, updated, removed, unparsable []string
	for _, e := range events {
		switch e := e.(type) {
		case changelog.Added:
			added = append(added, e.Name)
		case changelog.Removed:
			removed = append(removed, e.Name)
		case changelog.Updated:
			updated = append(updated, e.Name+": "+e.Change)
		case changelog.Unparsable:
			unparsable = append(unparsable, e.Raw)
		}
	}

	updated = dedup(updated)
	slices.Sort(updated)

	doc := &NixpkgsDocument{
		Title: opts.Title,
		Base:  base,
		Head:  head,
		Changes: Changes{
			Added:   dedup(added),
			Updated: updated,
			Removed: dedup(removed),
		},
		showUnparsable: opts.ShowUnparsable,
	}
	if opts.ShowUnparsable {
		doc.Unparsable = append([]string{}, unparsable...)
	}

	doc.Stats = NixpkgsStats{
		Added:      len(doc.Added),
		Updated:    len(doc.Updated),
		Removed:    len(doc.Removed),
		Unparsable: len(unparsable),
	}
	return doc
}

// Markdown renders the document.
func (d *NixpkgsDocument) Markdown() string {
	var sb strings.Builder

	title := d.Title
	if title == "" {
		title = "nixpkgs"
	}
	sb.WriteString(heading(title) + "\n")
	fmt.Fprintf(&sb, "Hash: `%s -> %s`\n", d.Base, d.Head)
	generatedBy(&sb)

	fmt.Fprintf(&sb, "### Stats\nPkgs Added: %d\nPkg Updates: %d\nPkgs Removed: %d\nUnparsable: %d\n\n",
		d.Stats.Added, d.Stats.Updated, d.Stats.Removed, d.Stats.Unparsable)

	section(&sb, 3, "Added", d.Added)
	section(&sb, 3, "Updated", d.Updated)
	section(&sb, 3, "Removed", d.Removed)
	if d.showUnparsable {
		section(&sb, 3, "Unparsable", d.Unparsable)
	}
	return sb.String()
}

// Summary returns the stats as a single table row.
func (d *NixpkgsDocument) Summary() (headers []string, rows [][]string) {
	headers = []string{"base", "head", "added", "updated", "removed", "unparsable"}
	rows = [][]string{{d.Base, d.Head,
		strconv.Itoa(d.Stats.Added), strconv.Itoa(d.Stats.Updated),
		strconv.Itoa(d.Stats.Removed), strconv.Itoa(d.Stats.Unparsable)}}
	return headers, rows
}
