// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/pkgs"
)

// ErrMalformedSnapshot is returned when flake show output does not have the
// expected packages.<system>.<attr>.name shape.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// FlakeShow returns the JSON package listing of a flake reference.
func (f *Fetcher) FlakeShow(ctx context.Context, ref string) ([]byte, error) {
	return f.cached(ctx, []string{"flake"}, ref, IsPinned(ref), func(ctx context.Context) ([]byte, error) {
		out, err := f.runner.Run(ctx, "", f.nix,
			"flake", "show", "--legacy", "--json", "--quiet", "--all-systems", ref)
		if err != nil {
			return nil, fmt.Errorf("failed to show flake %s: %w", ref, err)
		}
		return out, nil
	})
}

// FetchFlakes shows the before and after references concurrently.
func (f *Fetcher) FetchFlakes(ctx context.Context, before, after string) ([]byte, []byte, error) {
	var docs [2][]byte

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range []string{before, after} {
		g.Go(func() error {
			doc, err := f.FlakeShow(gctx, ref)
			if err != nil {
				return err
			}
			log.Debugf("flake %s: %s", ref, humanize.Bytes(uint64(len(doc))))
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return docs[0], docs[1], nil
}

// DecodeFlakeShow extracts the package listing from flake show output. Each
// system becomes a group of (attr, name, description) entries. Outputs other
// than packages are ignored.
func DecodeFlakeShow(doc []byte) (pkgs.RawSnapshot, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedSnapshot)
	}

	packages := gjson.GetBytes(doc, "packages")
	if !packages.IsObject() {
		return nil, fmt.Errorf("%w: no packages object", ErrMalformedSnapshot)
	}

	raw := pkgs.RawSnapshot{}
	var err error
	packages.ForEach(func(system, attrs gjson.Result) bool {
		if !attrs.IsObject() {
			err = fmt.Errorf("%w: packages.%s is not an object", ErrMalformedSnapshot, system.String())
			return false
		}

		entries := []pkgs.RawEntry{}
		attrs.ForEach(func(attr, value gjson.Result) bool {
			name := value.Get("name")
			if name.Type != gjson.String {
				err = fmt.Errorf("%w: packages.%s.%s has no name", ErrMalformedSnapshot, system.String(), attr.String())
				return false
			}
			entries = append(entries, pkgs.RawEntry{
				Attr:        attr.String(),
				Name:        name.String(),
				Description: value.Get("description").String(),
			})
			return true
		})
		if err != nil {
			return false
		}

		raw[system.String()] = entries
		log.Tracef("system %s: %d packages", system.String(), len(entries))
		return true
	})
	if err != nil {
		return nil, err
	}

	return raw, nil
}
