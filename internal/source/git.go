// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nurctl/nurctl/internal/log"
)

// Commit is one entry of a repository's history.
type Commit struct {
	Hash    string
	Time    time.Time
	Subject string
}

// Short returns the abbreviated hash.
func (c Commit) Short() string {
	if len(c.Hash) > 12 { //nolint:mnd
		return c.Hash[:12]
	}
	return c.Hash
}

// ErrNoRepo is returned when the repository directory is unset or missing.
var ErrNoRepo = errors.New("no repository")

func checkRepo(repo string) error {
	if repo == "" {
		return fmt.Errorf("%w: repository path is empty", ErrNoRepo)
	}
	if fi, err := os.Stat(repo); err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoRepo, repo)
	}
	return nil
}

// Subjects returns the subject line of every commit reachable from head but
// not from base, in git log order.
func (f *Fetcher) Subjects(ctx context.Context, repo, base, head string) ([]string, error) {
	if err := checkRepo(repo); err != nil {
		return nil, err
	}

	key := base + ".." + head
	pinned := IsFullHash(base) && IsFullHash(head)
	subdirs := []string{"git", filepath.Base(repo)}

	out, err := f.cached(ctx, subdirs, key, pinned, func(ctx context.Context) ([]byte, error) {
		out, err := f.runner.Run(ctx, "", f.git, "-C", repo, "log", "--format=%s", key)
		if err != nil {
			return nil, fmt.Errorf("failed to read history %s: %w", key, err)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	var subjects []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			subjects = append(subjects, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history %s: %w", key, err)
	}

	log.Debugf("history %s: %d commits", key, len(subjects))
	return subjects, nil
}

// RecentCommits returns up to limit commits ending at HEAD, newest first.
func (f *Fetcher) RecentCommits(ctx context.Context, repo string, limit int) ([]Commit, error) {
	if err := checkRepo(repo); err != nil {
		return nil, err
	}

	out, err := f.runner.Run(ctx, "", f.git,
		"-C", repo, "log", "-n", strconv.Itoa(limit), "--format=%H%x09%ct%x09%s")
	if err != nil {
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}
	return parseCommits(out)
}

// parseCommits reads hash<TAB>unix-time<TAB>subject lines.
func parseCommits(out []byte) ([]Commit, error) {
	var commits []Commit
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "\t", 3) //nolint:mnd
		if len(parts) != 3 {                   //nolint:mnd
			return nil, fmt.Errorf("unexpected log line: %q", line)
		}
		secs, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad commit time in %q: %w", line, err)
		}

		commits = append(commits, Commit{
			Hash:    parts[0],
			Time:    time.Unix(secs, 0).UTC(),
			Subject: parts[2],
		})
	}
	return commits, sc.Err()
}
