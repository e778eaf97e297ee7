// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nurctl/nurctl/internal/aws"
	"github.com/nurctl/nurctl/internal/cacheutil"
	"github.com/nurctl/nurctl/internal/config"
	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/meta"
	"github.com/nurctl/nurctl/internal/output"
	"github.com/nurctl/nurctl/internal/report"
	"github.com/nurctl/nurctl/internal/source"
)

// Report is what the report commands hand to emitReport.
type Report interface {
	output.Document
	output.Summarizer
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// stderr returns the writer diagnostics go to.
func stderr(m meta.Meta) io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}

// colored resolves --color against the stderr stream.
func colored(cmd *cli.Command, m meta.Meta) bool {
	f, _ := stderr(m).(*os.File)
	return output.ColorMode(cmd.String("color"), f)
}

// withTimeout applies --timeout to ctx. The returned cancel func must always
// be called.
func withTimeout(ctx context.Context, cmd *cli.Command) (context.Context, context.CancelFunc) {
	if d := cmd.Duration("timeout"); d > 0 {
		log.Debugf("timeout: %s", d)
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// newFetcher builds the source.Fetcher for a command, honouring --no-cache
// and the nix/git binaries named in the config.
func newFetcher(cmd *cli.Command, m meta.Meta) *source.Fetcher {
	nix, _ := config.GetString("nix", "nix")
	git, _ := config.GetString("git", "git")

	opts := []source.Option{
		source.WithCache(useCache(cmd.Bool("no-cache"))),
		source.WithNix(nix),
		source.WithGit(git),
	}
	if m.Runner != nil {
		opts = append(opts, source.WithRunner(m.Runner))
	}

	if hours, _ := config.GetInt("cache.clean", 0); hours > 0 {
		if err := cacheutil.Purge(hours); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}

	return source.NewFetcher(opts...)
}

// useCache reports whether fetches may use the cache: --no-cache wins over
// the cache.enabled config key, which defaults to true.
func useCache(noCache bool) bool {
	if noCache {
		return false
	}
	enabled, err := config.GetBool("cache.enabled", true)
	if err != nil {
		log.WithError(err).Warnf("ignoring cache.enabled")
		return true
	}
	return enabled
}

// newSink returns the output.Sink for --out. An S3 client is only created
// for s3:// destinations.
func newSink(ctx context.Context, cmd *cli.Command, m meta.Meta) (output.Sink, error) {
	sink := output.Sink{Stdout: m.Stdout, Objects: m.Objects}

	if _, _, ok := output.ParseS3URL(cmd.String("out")); !ok || sink.Objects != nil {
		return sink, nil
	}

	var opts []aws.Option
	if profile, _ := config.GetString("s3.profile", ""); profile != "" {
		opts = append(opts, aws.WithProfile(profile))
	}
	if region, _ := config.GetString("s3.region", ""); region != "" {
		opts = append(opts, aws.WithRegion(region))
	}
	endpoint, _ := config.GetString("s3.endpoint", os.Getenv("NURCTL_S3_ENDPOINT"))

	up, err := aws.NewS3Uploader(ctx, endpoint, opts...)
	if err != nil {
		return sink, err
	}
	sink.Objects = up
	return sink, nil
}

// reportOptions collects the report.Options common to every command.
func reportOptions(cmd *cli.Command) report.Options {
	return report.Options{
		Title: cmd.String("title"),
	}
}

// emitReport renders doc per --output, writes it to --out and, with
// --summary, prints the stats table.
func emitReport(ctx context.Context, cmd *cli.Command, m meta.Meta, doc Report) error {
	format := cmd.String("output")
	data, err := output.Render(doc, format)
	if err != nil {
		return err
	}

	sink, err := newSink(ctx, cmd, m)
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, cmd.String("out"), data, format); err != nil {
		return err
	}

	if cmd.Bool("summary") {
		output.TableWriter(doc, cmd.String("sort"), colored(cmd, m), 2, stderr(m)) //nolint:mnd
	}

	return nil
}

// usageError reports a wrong positional argument count.
func usageError(cmd *cli.Command) error {
	return fmt.Errorf("usage: %s", cmd.UsageText)
}
