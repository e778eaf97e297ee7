// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nurctl/nurctl/internal/changelog"
	"github.com/nurctl/nurctl/internal/differ"
	"github.com/nurctl/nurctl/internal/filters"
	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/meta"
	"github.com/nurctl/nurctl/internal/report"
	"github.com/nurctl/nurctl/internal/source"
	"github.com/nurctl/nurctl/internal/util"
)

// selectRevisions is swapped out in tests.
var selectRevisions = differ.SelectRevisions

// nixpkgsCommandAction is the action handler for the "nixpkgs" subcommand. It
// reads the commit subjects between two revisions of a nixpkgs checkout,
// classifies them and emits the report.
func nixpkgsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	repo, err := util.ParseRepoDir(cmd.String("repo"))
	if err != nil {
		return fmt.Errorf("%w: --repo %q: %v", source.ErrNoRepo, cmd.String("repo"), err)
	}

	ctx, cancel := withTimeout(ctx, cmd)
	defer cancel()

	f := newFetcher(cmd, m)

	var base, head string
	args := cmd.Args().Slice()
	switch {
	case cmd.Bool("pick") && len(args) == 0:
		commits, err := f.RecentCommits(ctx, repo, cmd.Int("limit"))
		if err != nil {
			return err
		}
		b, h, err := selectRevisions(commits)
		if err != nil {
			return err
		}
		base, head = b.Hash, h.Hash
	case len(args) == 2: //nolint:mnd
		base, head = args[0], args[1]
	default:
		return usageError(cmd)
	}
	log.Debugf("range: %s..%s", base, head)

	subjects, err := f.Subjects(ctx, repo, base, head)
	if err != nil {
		return err
	}

	opts := reportOptions(cmd)
	opts.ShowUnparsable = cmd.Bool("show-unparsable")

	events := filters.FilterEvents(changelog.ParseAll(subjects), cmd.String("filter"))
	doc := report.NewNixpkgs(events, base, head, opts)
	if n := doc.Stats.Unparsable; n > 0 && !opts.ShowUnparsable {
		log.Infof("%d commit subjects could not be classified, use --show-unparsable to list them", n)
	}

	return emitReport(ctx, cmd, m, doc)
}

// nixpkgsCommandBuilder constructs the cli.Command for "nixpkgs", wiring
// metadata, flags, and action handlers.
func nixpkgsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "nixpkgs",
		Usage:     "package changes between two nixpkgs revisions",
		UsageText: "nurctl nixpkgs <base> <head> --repo DIR [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "number of recent commits offered by --pick",
				Value:   50,
				Validator: func(value int) error {
					return FlagValidators(value, LimitValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "pick",
				Usage:       "choose base and head interactively",
				HideDefault: true,
			},
			NewRepoFlag("nixpkgs", meta.Config.Source),
			&cli.BoolFlag{
				Name:        "show-unparsable",
				Usage:       "list commit subjects that could not be classified",
				HideDefault: true,
			},
			newNoCacheFlag(),
			newTimeoutFlag(),
		}, NewGlobalFlags("nixpkgs", meta.Config.Source)...),
		Action: nixpkgsCommandAction,
	}
}
