// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report turns a snapshot diff or a list of change events into a
// document. Documents are plain data, so they can be emitted as JSON or YAML
// as well as rendered to markdown. Every count in a document is taken from
// the length of the list it summarises.
package report
