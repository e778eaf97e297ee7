// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows what a report covers.
//
// Filters are specified as key-operator-target expressions and can be
// combined using a configurable delimiter (default: comma, override with
// NURCTL_FILTER_DELIM). All expressions must match for a candidate to be kept.
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains substring (supports negation with !@)
//   - / : regular expression match (supports negation with !/)
//
// A key without an operator keeps candidates whose field is not empty.
//
// Flake packages expose arch, attr, name, version and description:
//
//   - "name^python3" : packages whose name starts with python3
//   - "arch=x86_64-linux" : only the x86_64-linux system
//   - "description" : packages that have a description
//
// Change-log events expose name, action (init, drop, update, unparsable),
// change and raw:
//
//   - "action!=unparsable"
//   - "name/^(rust|go)-"
package filters
