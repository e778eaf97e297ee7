// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package changelog classifies nixpkgs-style commit subjects such as
// "hello: 2.12 -> 2.12.1", "foo: init at 1.0" or "[Backport] bar: drop".
package changelog
