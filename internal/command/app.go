// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/nurctl/nurctl/internal/config"
	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/meta"
)

// InitApp builds the root command.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the nurctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	// A missing config file is fine, flags fall back to env and defaults.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
		cfg = config.Config
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := newApp(meta)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

func newApp(meta meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "nurctl",
		Usage: "NUR and nixpkgs package change reports",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "nurctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		flakeCommandBuilder(meta),
		nixpkgsCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	return app
}
