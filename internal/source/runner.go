// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nurctl/nurctl/internal/log"
)

// Runner runs an external program and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run implements Runner. A non-zero exit is returned as an error carrying the
// program's stderr.
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	log.Debugf("exec: dir=%s cmd=%s %s", dir, name, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}

	log.Debugf("exec: %s returned %s", name, humanize.Bytes(uint64(stdout.Len())))
	return stdout.Bytes(), nil
}
