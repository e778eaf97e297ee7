// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nurctl/nurctl/internal/differ"
	"github.com/nurctl/nurctl/internal/filters"
	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/meta"
	"github.com/nurctl/nurctl/internal/pkgs"
	"github.com/nurctl/nurctl/internal/report"
	"github.com/nurctl/nurctl/internal/source"
)

// flakeCommandAction is the action handler for the "flake" subcommand. It
// fetches both flake snapshots, diffs their package sets and emits the
// report.
func flakeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	args := cmd.Args().Slice()
	if len(args) != 2 { //nolint:mnd
		return usageError(cmd)
	}
	oldRef, newRef := args[0], args[1]

	ctx, cancel := withTimeout(ctx, cmd)
	defer cancel()

	oldDoc, newDoc, err := newFetcher(cmd, m).FetchFlakes(ctx, oldRef, newRef)
	if err != nil {
		return err
	}

	if cmd.Bool("raw-diff") {
		if _, err := differ.RawDiff(oldDoc, newDoc, "packages", colored(cmd, m), stderr(m)); err != nil {
			return err
		}
	}

	spec := cmd.String("filter")
	before, err := snapshot(oldDoc, oldRef, spec)
	if err != nil {
		return err
	}
	after, err := snapshot(newDoc, newRef, spec)
	if err != nil {
		return err
	}

	sd, err := differ.Diff(before, after)
	if err != nil {
		return err
	}
	if sd.Empty() {
		log.Infof("no package changes between %s and %s", oldRef, newRef)
	}

	opts := reportOptions(cmd)
	opts.PerArch = cmd.Bool("per-arch")

	return emitReport(ctx, cmd, m, report.NewFlake(sd, opts))
}

// snapshot decodes a flake show document into a package set narrowed by the
// filter spec, warning about attributes hidden behind a duplicate identity.
func snapshot(doc []byte, ref string, spec string) (*pkgs.Set, error) {
	raw, err := source.DecodeFlakeShow(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}

	set := pkgs.NewSet(filters.FilterSnapshot(raw, spec))
	for _, s := range set.Shadowed() {
		log.WithFields(map[string]any{
			"ref":  ref,
			"arch": s.Group,
			"key":  s.Key,
			"kept": s.Kept,
		}).Warnf("attribute %s shadowed", s.Attr)
	}
	log.Debugf("%s: groups=%d packages=%d", ref, set.Len(), set.Total())

	return set, nil
}

// flakeCommandBuilder constructs the cli.Command for "flake", wiring metadata,
// flags, and action handlers.
func flakeCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "flake",
		Usage:     "package changes between two flake revisions",
		UsageText: "nurctl flake <old-ref> <new-ref> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			withConfigBool("flake", meta.Config.Source, &cli.BoolFlag{
				Name:  "per-arch",
				Usage: "list changes per architecture instead of one merged listing",
				Value: true,
			}),
			&cli.BoolFlag{
				Name:        "raw-diff",
				Usage:       "print a structural diff of the packages JSON to stderr",
				HideDefault: true,
			},
			newNoCacheFlag(),
			newTimeoutFlag(),
		}, NewGlobalFlags("flake", meta.Config.Source)...),
		Action: flakeCommandAction,
	}
}
