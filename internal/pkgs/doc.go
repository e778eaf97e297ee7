// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package pkgs turns loosely structured package names and version strings into
// typed, comparable records and groups them by system into a Set.
//
// Names that do not follow the <name>-<version> convention, and versions that
// do not follow the dotted numeric convention, are never rejected. They are
// kept verbatim in the Opaque variants so that they remain visible in reports.
package pkgs
