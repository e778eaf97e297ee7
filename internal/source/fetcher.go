// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"regexp"

	"github.com/nurctl/nurctl/internal/cacheutil"
	"github.com/nurctl/nurctl/internal/log"
)

// Fetcher retrieves raw snapshots through a Runner.
type Fetcher struct {
	runner Runner
	nix    string
	git    string
	cache  bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRunner replaces the default ExecRunner.
func WithRunner(r Runner) Option {
	return func(f *Fetcher) {
		f.runner = r
	}
}

// WithCache enables or disables the on-disk cache for pinned refs.
func WithCache(enabled bool) Option {
	return func(f *Fetcher) {
		f.cache = enabled
	}
}

// WithNix sets the nix binary.
func WithNix(bin string) Option {
	return func(f *Fetcher) {
		if bin != "" {
			f.nix = bin
		}
	}
}

// WithGit sets the git binary.
func WithGit(bin string) Option {
	return func(f *Fetcher) {
		if bin != "" {
			f.git = bin
		}
	}
}

// NewFetcher returns a Fetcher running nix and git from PATH with the cache
// enabled.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		runner: ExecRunner{},
		nix:    "nix",
		git:    "git",
		cache:  true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var (
	fullHash    = regexp.MustCompile(`^[0-9a-f]{40}$`)
	pinnedFlake = regexp.MustCompile(`(?:^|[/=])[0-9a-f]{40}(?:$|[/&?])`)
)

// IsPinned reports whether a flake reference names an exact revision, either
// as a path segment (github:owner/repo/<rev>) or as a rev= attribute.
func IsPinned(ref string) bool {
	return pinnedFlake.MatchString(ref)
}

// IsFullHash reports whether rev is a full 40 character commit hash.
func IsFullHash(rev string) bool {
	return fullHash.MatchString(rev)
}

// cached returns the output for key, running produce and storing its result
// when the key is cacheable and not yet present.
func (f *Fetcher) cached(ctx context.Context, subdirs []string, key string, cacheable bool, produce func(context.Context) ([]byte, error)) ([]byte, error) {
	useCache := f.cache && cacheable
	if useCache {
		if e, ok := cacheutil.Read(subdirs, key); ok {
			return e.Data, nil
		}
	}

	out, err := produce(ctx)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := cacheutil.Write(subdirs, key, out); err != nil {
			log.WithError(err).Warnf("failed to cache %s", key)
		}
	}
	return out, nil
}
