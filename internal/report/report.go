// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"
)

// Generator is the name shown in report headings.
const Generator = "nurctl"

// Options control what a report contains.
type Options struct {
	// Title is appended to the report heading when set.
	Title string
	// PerArch lists changes per group. When false a single listing merges
	// identical lines across groups.
	PerArch bool
	// ShowUnparsable lists change messages that could not be classified.
	ShowUnparsable bool
}

// Changes holds rendered list lines per category.
type Changes struct {
	Added   []string `json:"added" yaml:"added"`
	Updated []string `json:"updated" yaml:"updated"`
	Removed []string `json:"removed" yaml:"removed"`
}

func heading(title string) string {
	if title == "" {
		return "## " + Generator + " report"
	}
	return fmt.Sprintf("## %s report - %s", Generator, title)
}

func generatedBy(sb *strings.Builder) {
	fmt.Fprintf(sb, "Generated by `%s`.\n\n", Generator)
}

// list writes one " - line" per entry, or None.
func list(sb *strings.Builder, lines []string) {
	if len(lines) == 0 {
		sb.WriteString("None\n")
		return
	}
	for _, l := range lines {
		fmt.Fprintf(sb, " - %s\n", l)
	}
}

// section writes a heading followed by its list and a blank line.
func section(sb *strings.Builder, level int, title string, lines []string) {
	fmt.Fprintf(sb, "%s %s\n", strings.Repeat("#", level), title)
	list(sb, lines)
	sb.WriteString("\n")
}

// dedup drops repeated lines, keeping the first occurrence.
func dedup(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := []string{}
	for _, l := range lines {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
