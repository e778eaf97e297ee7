// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other nurctl packages to avoid import cycles.

package version

import (
	"fmt"
	"runtime/debug"
)

var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}()

// Banner is the one-line answer to --version.
func Banner() string {
	return fmt.Sprintf("nurctl %s", Version)
}
