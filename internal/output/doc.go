// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders report documents as markdown, json or yaml and
// writes them to stdout, a file or an S3 object. It also draws the summary
// table shown with --summary.
package output
