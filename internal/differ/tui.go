// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nurctl/nurctl/internal/source"
)

// ErrNoSelection is returned when the picker is quit without choosing two
// commits.
var ErrNoSelection = errors.New("no revisions selected")

// SelectRevisions lets the user pick two commits from items, which are
// expected newest first. It returns the older pick as base and the newer as
// head.
func SelectRevisions(items []source.Commit) (base, head source.Commit, err error) {
	p := tea.NewProgram(model{items: items})
	m, err := p.Run()
	if err != nil {
		return base, head, fmt.Errorf("picker failed: %w", err)
	}

	base, head, ok := m.(model).revisions()
	if !ok {
		return base, head, ErrNoSelection
	}
	return base, head, nil
}

type model struct {
	items    []source.Commit
	cursor   int
	selected []int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.selected = nil
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if len(m.items) == 0 {
				break
			}
			if i := slices.Index(m.selected, m.cursor); i >= 0 {
				m.selected = slices.Delete(slices.Clone(m.selected), i, i+1)
			} else if len(m.selected) < 2 {
				m.selected = append(slices.Clone(m.selected), m.cursor)
			}
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString("Select two revisions:\n\n")
	for i, c := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if slices.Contains(m.selected, i) {
			mark = "x"
		}

		subject := c.Subject
		if r := []rune(subject); len(r) > 60 { //nolint:mnd
			subject = string(r[:57]) + "..."
		}
		fmt.Fprintf(&sb, "%s [%s] %s %-14s %s\n", cursor, mark, c.Short(), humanize.Time(c.Time), subject)
	}
	sb.WriteString("\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n")
	return sb.String()
}

// revisions orders the two picks by list position. A higher index is older.
func (m model) revisions() (base, head source.Commit, ok bool) {
	if len(m.selected) != 2 {
		return base, head, false
	}
	lo, hi := min(m.selected[0], m.selected[1]), max(m.selected[0], m.selected[1])
	return m.items[hi], m.items[lo], true
}
