// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two package sets group by group. Diff classifies
// every identity key as added, removed, updated or unchanged and reports
// groups present on only one side. RawDiff shows a structural diff of the
// underlying JSON documents and SelectRevisions is a small terminal picker
// for choosing the two revisions to compare.
package differ
