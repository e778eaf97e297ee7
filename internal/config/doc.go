// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for nurctl's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/nurctl.yaml or $HOME/.config/nurctl.yaml
//   - Windows: %APPDATA%/nurctl.yaml
//
// NURCTL_CFG_FILE overrides the location. Keys are looked up first beneath
// the running command's name and then at the top level, so
//
//	title: NUR
//	flake:
//	  title: My NUR
//
// gives "My NUR" to `nurctl flake` and "NUR" to every other command.
package config
