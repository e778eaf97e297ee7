// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source retrieves raw snapshots: package listings of flakes through
// `nix flake show` and change messages of a nixpkgs checkout through
// `git log`. Output of pinned refs is cached on disk.
package source
