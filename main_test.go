// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nurctl/nurctl/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"nurctl", "flake"},
			expected: []string{"nurctl", "flake"},
		},
		{
			name:     "no duplicates",
			args:     []string{"nurctl", "flake", "--output", "md", "--summary", "a", "b"},
			expected: []string{"nurctl", "flake", "--output", "md", "--summary", "a", "b"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"nurctl", "flake", "--output", "json", "--summary", "--output", "yaml"},
			expected: []string{"nurctl", "flake", "--summary", "--output", "yaml"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"nurctl", "flake", "--summary", "--raw-diff", "--summary"},
			expected: []string{"nurctl", "flake", "--raw-diff", "--summary"},
		},
		{
			name:     "boolean flag does not swallow a ref",
			args:     []string{"nurctl", "flake", "--summary", "github:a", "--summary", "github:b"},
			expected: []string{"nurctl", "flake", "github:a", "--summary", "github:b"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"nurctl", "flake", "--output=json", "--summary", "--output=yaml"},
			expected: []string{"nurctl", "flake", "--summary", "--output=yaml"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"nurctl", "flake", "--output=json", "--output", "md"},
			expected: []string{"nurctl", "flake", "--output", "md"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"nurctl", "nixpkgs", "--repo", "/a", "--title", "x", "--repo", "/b", "--title", "y"},
			expected: []string{"nurctl", "nixpkgs", "--repo", "/b", "--title", "y"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"nurctl", "flake", "github:a", "--output", "json", "--output", "md"},
			expected: []string{"nurctl", "flake", "github:a", "--output", "md"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"nurctl", "flake", "-o", "json", "-o", "md"},
			expected: []string{"nurctl", "flake", "-o", "md"},
		},
		{
			name:     "dash is a value",
			args:     []string{"nurctl", "flake", "--out", "report.md", "--out", "-"},
			expected: []string{"nurctl", "flake", "--out", "-"},
		},
		{
			name:     "bool flag with equals syntax",
			args:     []string{"nurctl", "flake", "--per-arch", "--per-arch=false"},
			expected: []string{"nurctl", "flake", "--per-arch=false"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"nurctl", "flake", "--title", "a", "--title", "b", "--title", "c"},
			expected: []string{"nurctl", "flake", "--title", "c"},
		},
		{
			name:     "terminator stops processing",
			args:     []string{"nurctl", "flake", "--title", "a", "--", "--title", "b"},
			expected: []string{"nurctl", "flake", "--title", "a", "--", "--title", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"nurctl", "flake", "--alpha", "--beta", "--gamma"}
	result := deduplicateFlags(args)
	expected := []string{"nurctl", "flake", "--alpha", "--beta", "--gamma"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestInjectConfigSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		insertIdx int
		configVal []string
		expected  []string
	}{
		{
			name:      "empty config returns args unchanged",
			args:      []string{"nurctl", "flake", "--summary"},
			insertIdx: 2,
			configVal: nil,
			expected:  []string{"nurctl", "flake", "--summary"},
		},
		{
			name:      "single entry injected",
			args:      []string{"nurctl", "flake", "--summary"},
			insertIdx: 2,
			configVal: []string{"--no-cache"},
			expected:  []string{"nurctl", "flake", "--no-cache", "--summary"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"nurctl", "flake", "--summary"},
			insertIdx: 2,
			configVal: []string{"--output json"},
			expected:  []string{"nurctl", "flake", "--output", "json", "--summary"},
		},
		{
			name:      "insert at index 3",
			args:      []string{"nurctl", "flake", "github:a", "--summary"},
			insertIdx: 3,
			configVal: []string{"--no-cache"},
			expected:  []string{"nurctl", "flake", "github:a", "--no-cache", "--summary"},
		},
		{
			name:      "complex multi-word entries",
			args:      []string{"nurctl", "nixpkgs"},
			insertIdx: 2,
			configVal: []string{"--repo ~/src/nixpkgs", "--limit 20"},
			expected:  []string{"nurctl", "nixpkgs", "--repo", "~/src/nixpkgs", "--limit", "20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := injectConfigSet(tt.args, tt.configVal, tt.insertIdx)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("injectConfigSet() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestProcessCommandArgs(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "nurctl.yaml")
	body := "flake:\n" +
		"  defaults:\n    - --output md\n    - --summary\n" +
		"  weekly:\n    - --title Weekly\n    - --out s3://reports/nur.md\n"
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(cfg); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "defaults injected and overridden",
			args:     []string{"nurctl", "flake", "--output", "json", "a", "b"},
			expected: []string{"nurctl", "flake", "--summary", "--output", "json", "a", "b"},
		},
		{
			name:     "named set",
			args:     []string{"nurctl", "flake", "a", "b", "@weekly"},
			expected: []string{"nurctl", "flake", "a", "b", "--title", "Weekly", "--out", "s3://reports/nur.md"},
		},
		{
			name:     "unknown set dropped",
			args:     []string{"nurctl", "flake", "@monthly", "a", "b"},
			expected: []string{"nurctl", "flake", "a", "b"},
		},
		{
			name:     "completion untouched",
			args:     []string{"nurctl", "completion", "@weekly"},
			expected: []string{"nurctl", "completion", "@weekly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := processCommandArgs(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("processCommandArgs(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	if got := handleNakedCommand([]string{"nurctl"}); !reflect.DeepEqual(got, []string{"nurctl", "--help"}) {
		t.Errorf("got %v", got)
	}
	if got := handleNakedCommand([]string{"nurctl", "flake"}); !reflect.DeepEqual(got, []string{"nurctl", "flake"}) {
		t.Errorf("got %v", got)
	}
}
