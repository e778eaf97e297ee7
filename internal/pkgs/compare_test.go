// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package pkgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		before     Package
		after      Package
		changed    bool
		text       string
		detail     *ChangeDetail
		comparable bool
	}{
		{
			name:       "opaque unchanged",
			before:     Identify("hello", ""),
			after:      Identify("hello", ""),
			comparable: true,
		},
		{
			name:       "identified unchanged",
			before:     Identify("foo-1.0.0", "A"),
			after:      Identify("foo-1.0.0", "A"),
			comparable: true,
		},
		{
			name:       "version bump",
			before:     Identify("foo-1.0.0", ""),
			after:      Identify("foo-1.1.0", ""),
			changed:    true,
			text:       "foo: 1.0.0 -> 1.1.0",
			detail:     &ChangeDetail{Version: true},
			comparable: true,
		},
		{
			name:       "description only",
			before:     Identify("foo-1.0", "old"),
			after:      Identify("foo-1.0", "new"),
			changed:    true,
			text:       "foo: 1.0 -> 1.0, description changed",
			detail:     &ChangeDetail{Description: true},
			comparable: true,
		},
		{
			name:       "description gained",
			before:     Identify("foo-1.0", ""),
			after:      Identify("foo-1.1", "now documented"),
			changed:    true,
			text:       "foo: 1.0 -> 1.1, description changed",
			detail:     &ChangeDetail{Version: true, Description: true},
			comparable: true,
		},
		{
			name:       "became unparsable",
			before:     Identify("foo-1.0", ""),
			after:      OpaquePackage{Raw: "foo"},
			changed:    true,
			text:       "foo: 1.0 -> unparsable",
			comparable: true,
		},
		{
			name:       "became parsable",
			before:     Identify("foo", ""),
			after:      Identify("foo-2.0", "x"),
			changed:    true,
			text:       "foo: unparsable -> 2.0",
			comparable: true,
		},
		{
			name:   "identified names differ",
			before: Identify("foo-1.0", ""),
			after:  Identify("bar-1.0", ""),
		},
		{
			name:   "opaque names differ",
			before: Identify("foo", ""),
			after:  Identify("bar", ""),
		},
		{
			name:   "mixed names differ",
			before: Identify("foo", ""),
			after:  Identify("bar-1.0", ""),
		},
		{
			name:   "mixed names differ reversed",
			before: Identify("bar-1.0", ""),
			after:  Identify("foo", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Compare(tt.before, tt.after)
			require.Equal(t, tt.comparable, ok)
			if !ok {
				assert.Equal(t, Comparison{}, c)
				return
			}

			assert.Equal(t, tt.changed, c.Changed)
			assert.Equal(t, tt.text, c.Text)
			assert.Equal(t, tt.detail, c.Detail)
		})
	}
}

func TestCompare_OpaqueVersionChange(t *testing.T) {
	c, ok := Compare(Identify("linux-6.6.8-rt18", ""), Identify("linux-6.6.9-rt19", ""))
	require.True(t, ok)
	assert.True(t, c.Changed)
	assert.Equal(t, "linux: 6.6.8-rt18 -> 6.6.9-rt19", c.Text)
	require.NotNil(t, c.Detail)
	assert.True(t, c.Detail.Version)
	assert.False(t, c.Detail.Description)
}
