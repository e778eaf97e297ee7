// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"

	"github.com/nurctl/nurctl/internal/config"
)

// Summarizer is a report that can be shown as a stats table.
type Summarizer interface {
	Summary() (headers []string, rows [][]string)
}

// ColorMode resolves a --color value of "always", "never" or "auto" against
// the terminal state of f.
func ColorMode(mode string, f *os.File) bool {
	switch mode {
	case "always", "true":
		return true
	case "never", "false":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// TableWriter renders the summary of s as a borderless table. Rows are
// ordered by sortSpec when set (see SortRows).
func TableWriter(s Summarizer, sortSpec string, colored bool, padding int, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	headers, rows := s.Summary()
	if len(rows) == 0 {
		return
	}
	SortRows(headers, rows, sortSpec)

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if colored {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(padding)
			}

			return style
		}).
		Headers(headers...).
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering. Unset colors
// fall back to defaults picked for the terminal's background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
