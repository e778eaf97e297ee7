// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseRepoDir resolves a --repo value to an absolute directory. A leading ~
// is replaced with the user's home directory. It returns an error if the fs
// entry does not exist, is empty or is not a directory.
func ParseRepoDir(repo string) (string, error) {

	if repo == "" {
		return "", os.ErrInvalid
	}

	dir := repo
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}

	// Relative paths hang off the CWD.
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return filepath.Clean(dir), nil
}
