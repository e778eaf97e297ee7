// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"

	"github.com/nurctl/nurctl/internal/config"
	"github.com/nurctl/nurctl/internal/output"
	"github.com/nurctl/nurctl/internal/source"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context and the starting working directory, plus the
// collaborators commands reach the outside world through.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string

	// Runner executes nix and git. Nil means source.ExecRunner.
	Runner source.Runner
	// Objects stores s3:// destinations. Nil means a real S3 client is built
	// on demand.
	Objects output.ObjectWriter
	// Stdout and Stderr default to the process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}
