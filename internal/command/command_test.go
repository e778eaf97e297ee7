// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurctl/nurctl/internal/config"
	"github.com/nurctl/nurctl/internal/meta"
	"github.com/nurctl/nurctl/internal/report"
	"github.com/nurctl/nurctl/internal/source"
)

// fakeRunner answers with the output registered for the last argument.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

func (r *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))

	last := args[len(args)-1]
	if err, ok := r.errs[last]; ok {
		return nil, err
	}
	return []byte(r.outputs[last]), nil
}

// fakeObjects records uploads.
type fakeObjects struct {
	bucket, key, contentType string
	body                     []byte
}

func (f *fakeObjects) PutObject(_ context.Context, bucket, key string, body []byte, contentType string) error {
	f.bucket, f.key, f.body, f.contentType = bucket, key, body, contentType
	return nil
}

const showOld = `{
  "packages": {
    "x86_64-linux": {
      "foo": {"name": "foo-1.0.0", "type": "derivation"},
      "bar": {"name": "bar-0.1", "type": "derivation"}
    },
    "i686-linux": {
      "foo": {"name": "foo-1.0.0", "type": "derivation"}
    }
  }
}`

const showNew = `{
  "packages": {
    "x86_64-linux": {
      "foo": {"name": "foo-1.1.0", "type": "derivation"},
      "baz": {"name": "baz-2.0", "type": "derivation"}
    },
    "aarch64-darwin": {
      "foo": {"name": "foo-1.1.0", "type": "derivation"}
    }
  }
}`

// isolate points config and cache at test-owned locations.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("NURCTL_CACHE", "false")
	t.Setenv("NURCTL_CFG_FILE", filepath.Join("testdata", "nurctl.yaml"))
	t.Cleanup(func() { config.Config = config.Type{} })
}

type harness struct {
	runner  *fakeRunner
	objects *fakeObjects
	stdout  bytes.Buffer
	stderr  bytes.Buffer
}

func newHarness() *harness {
	return &harness{
		runner: &fakeRunner{outputs: map[string]string{
			"github:me/nur/old": showOld,
			"github:me/nur/new": showNew,
		}},
		objects: &fakeObjects{},
	}
}

func (h *harness) meta() meta.Meta {
	return meta.Meta{
		Runner:  h.runner,
		Objects: h.objects,
		Stdout:  &h.stdout,
		Stderr:  &h.stderr,
	}
}

func TestFlakeCommand_MarkdownToStdout(t *testing.T) {
	isolate(t)
	h := newHarness()

	cmd := flakeCommandBuilder(h.meta())
	err := cmd.Run(context.Background(), []string{"flake", "--title", "My NUR", "github:me/nur/old", "github:me/nur/new"})
	require.NoError(t, err)

	md := h.stdout.String()
	assert.True(t, strings.HasPrefix(md, "## nurctl report - My NUR\n"), md)
	assert.Contains(t, md, "foo: 1.0.0 -> 1.1.0")
	assert.Contains(t, md, "baz: 2.0")
	assert.Contains(t, md, "bar: 0.1")
	assert.Contains(t, md, "aarch64-darwin")
	assert.Contains(t, md, "i686-linux")
	assert.Empty(t, h.stderr.String())

	require.Len(t, h.runner.calls, 2)
	for _, c := range h.runner.calls {
		assert.Equal(t, []string{"nix", "flake", "show", "--legacy", "--json", "--quiet", "--all-systems"}, c[:7])
	}
}

func TestFlakeCommand_JSONToFile(t *testing.T) {
	isolate(t)
	h := newHarness()
	out := filepath.Join(t.TempDir(), "reports", "nur.json")

	cmd := flakeCommandBuilder(h.meta())
	err := cmd.Run(context.Background(), []string{"flake",
		"--output", "json", "--out", out, "--per-arch=false",
		"github:me/nur/old", "github:me/nur/new"})
	require.NoError(t, err)
	assert.Empty(t, h.stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc report.FlakeDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.False(t, doc.PerArch)
	assert.Equal(t, 1, doc.Stats.AddedPkgs)
	assert.Equal(t, 1, doc.Stats.UpdatedPkgs)
	assert.Equal(t, 1, doc.Stats.RemovedPkgs)
	assert.Equal(t, []string{"aarch64-darwin"}, doc.AddedArchs)
	assert.Equal(t, []string{"i686-linux"}, doc.RemovedArchs)
	require.NotNil(t, doc.Aggregate)
}

func TestFlakeCommand_ConfigFileFlags(t *testing.T) {
	isolate(t)
	h := newHarness()
	m := h.meta()
	m.Config.Source = filepath.Join("testdata", "nurctl.yaml")
	out := filepath.Join(t.TempDir(), "nur.json")

	err := flakeCommandBuilder(m).Run(context.Background(), []string{"flake",
		"--output", "json", "--out", out, "github:me/nur/old", "github:me/nur/new"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc report.FlakeDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "NUR", doc.Title)
	assert.False(t, doc.PerArch)
}

func TestFlakeCommand_S3(t *testing.T) {
	isolate(t)
	h := newHarness()

	cmd := flakeCommandBuilder(h.meta())
	err := cmd.Run(context.Background(), []string{"flake",
		"--output", "yaml", "--out", "s3://reports/nur/weekly.yaml",
		"github:me/nur/old", "github:me/nur/new"})
	require.NoError(t, err)

	assert.Equal(t, "reports", h.objects.bucket)
	assert.Equal(t, "nur/weekly.yaml", h.objects.key)
	assert.Equal(t, "application/yaml", h.objects.contentType)
	assert.Contains(t, string(h.objects.body), "added_archs:")
}

func TestFlakeCommand_SummaryAndRawDiff(t *testing.T) {
	isolate(t)
	h := newHarness()

	cmd := flakeCommandBuilder(h.meta())
	err := cmd.Run(context.Background(), []string{"flake",
		"--summary", "--raw-diff", "--color", "never",
		"github:me/nur/old", "github:me/nur/new"})
	require.NoError(t, err)

	e := h.stderr.String()
	assert.Contains(t, e, "x86_64-linux")
	assert.Contains(t, e, "(all)")
	assert.Contains(t, e, "foo-1.1.0")
}

func TestFlakeCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		setup func(h *harness)
		errIs error
		want  string
	}{
		{
			name: "one ref",
			args: []string{"flake", "github:me/nur/old"},
			want: "usage: nurctl flake",
		},
		{
			name: "malformed snapshot",
			args: []string{"flake", "github:me/nur/old", "github:me/nur/new"},
			setup: func(h *harness) {
				h.runner.outputs["github:me/nur/new"] = `{"legacyPackages": {}}`
			},
			errIs: source.ErrMalformedSnapshot,
			want:  "github:me/nur/new",
		},
		{
			name: "nix fails",
			args: []string{"flake", "github:me/nur/old", "github:me/nur/new"},
			setup: func(h *harness) {
				h.runner.errs = map[string]error{"github:me/nur/old": errors.New("boom")}
			},
			want: "boom",
		},
		{
			name: "bad output format",
			args: []string{"flake", "--output", "html", "github:me/nur/old", "github:me/nur/new"},
			want: "must be one of",
		},
		{
			name: "bad s3 destination",
			args: []string{"flake", "--out", "s3://bucket/", "github:me/nur/old", "github:me/nur/new"},
			want: "s3://bucket/key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			h := newHarness()
			if tt.setup != nil {
				tt.setup(h)
			}

			err := flakeCommandBuilder(h.meta()).Run(context.Background(), tt.args)
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

const (
	base = "0123456789abcdef0123456789abcdef01234567"
	head = "89abcdef0123456789abcdef0123456789abcdef"
)

func nixpkgsHarness() *harness {
	h := newHarness()
	h.runner.outputs = map[string]string{
		base + ".." + head: "hello: 2.12 -> 2.12.1\n" +
			"python3Packages.foo: init at 1.0\n" +
			"[Backport release-24.05] bar: drop\n" +
			"treewide: format\n" +
			"hello: 2.12 -> 2.12.1 (#12345)\n",
	}
	return h
}

func TestNixpkgsCommand(t *testing.T) {
	isolate(t)
	h := nixpkgsHarness()
	repo := t.TempDir()

	err := nixpkgsCommandBuilder(h.meta()).Run(context.Background(), []string{"nixpkgs",
		"--repo", repo, "--show-unparsable", base, head})
	require.NoError(t, err)

	md := h.stdout.String()
	assert.Contains(t, md, "Hash: `"+base+" -> "+head+"`")
	assert.Contains(t, md, "Pkgs Added: 1\nPkg Updates: 1\nPkgs Removed: 1\nUnparsable: 1\n")
	assert.Contains(t, md, "### Added\n - python3Packages.foo\n")
	assert.Contains(t, md, "### Removed\n - bar\n")
	assert.Contains(t, md, "### Unparsable\n - treewide: format\n")

	require.Len(t, h.runner.calls, 1)
	assert.Equal(t, []string{"git", "-C", repo, "log", "--format=%s", base + ".." + head}, h.runner.calls[0])
}

func TestNixpkgsCommand_Pick(t *testing.T) {
	isolate(t)
	h := nixpkgsHarness()
	now := time.Now().Unix()
	h.runner.outputs["--format=%H%x09%ct%x09%s"] = strings.Join([]string{
		head + "\t" + strconv.FormatInt(now, 10) + "\thello: 2.12 -> 2.12.1",
		base + "\t" + strconv.FormatInt(now-60, 10) + "\tbar: drop",
	}, "\n") + "\n"

	var offered int
	orig := selectRevisions
	selectRevisions = func(items []source.Commit) (source.Commit, source.Commit, error) {
		offered = len(items)
		return items[1], items[0], nil
	}
	t.Cleanup(func() { selectRevisions = orig })

	err := nixpkgsCommandBuilder(h.meta()).Run(context.Background(), []string{"nixpkgs",
		"--repo", t.TempDir(), "--pick", "--limit", "2"})
	require.NoError(t, err)

	assert.Equal(t, 2, offered)
	assert.Contains(t, h.stdout.String(), base+" -> "+head)
	assert.Contains(t, h.runner.calls[0], "2")
}

func TestNixpkgsCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  func(repo string) []string
		errIs error
		want  string
	}{
		{
			name:  "no repo",
			args:  func(string) []string { return []string{"nixpkgs", base, head} },
			errIs: source.ErrNoRepo,
		},
		{
			name: "repo is a file",
			args: func(repo string) []string {
				f := filepath.Join(repo, "file")
				_ = os.WriteFile(f, nil, 0o600)
				return []string{"nixpkgs", "--repo", f, base, head}
			},
			errIs: source.ErrNoRepo,
		},
		{
			name: "one revision",
			args: func(repo string) []string { return []string{"nixpkgs", "--repo", repo, base} },
			want: "usage: nurctl nixpkgs",
		},
		{
			name: "bad limit",
			args: func(repo string) []string {
				return []string{"nixpkgs", "--repo", repo, "--pick", "--limit", "0"}
			},
			want: "at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("NURCTL_REPO", "")
			h := nixpkgsHarness()

			err := nixpkgsCommandBuilder(h.meta()).Run(context.Background(), tt.args(t.TempDir()))
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteCompletion(t *testing.T) {
	tests := []struct {
		shell   string
		wantOut string
		wantErr string
	}{
		{shell: "bash", wantOut: "complete -F _nurctl nurctl"},
		{shell: "zsh", wantOut: "#compdef nurctl"},
		{shell: "fish", wantErr: "usage: nurctl completion"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out, errOut bytes.Buffer
			require.NoError(t, writeCompletion(&out, &errOut, tt.shell))
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Empty(t, out.String())
				assert.Contains(t, errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestInitApp(t *testing.T) {
	isolate(t)

	app, err := InitApp(context.Background(), []string{"nurctl", "flake", "a", "b"})
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"flake", "nixpkgs", "completion"}, names)
	assert.Equal(t, "flake", config.Config.Namespace)

	title, err := config.GetString("title")
	require.NoError(t, err)
	assert.Equal(t, "NUR", title)

	for _, c := range app.Commands {
		for i := 1; i < len(c.Flags); i++ {
			assert.LessOrEqual(t, c.Flags[i-1].Names()[0], c.Flags[i].Names()[0])
		}
	}
}

func TestUseCache(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]interface{}
		noCache bool
		want    bool
	}{
		{"default", map[string]interface{}{"title": "x"}, false, true},
		{"no-cache flag", map[string]interface{}{"title": "x"}, true, false},
		{"config disables", map[string]interface{}{"cache": map[string]interface{}{"enabled": false}}, false, false},
		{"config enables, flag wins", map[string]interface{}{"cache": map[string]interface{}{"enabled": true}}, true, false},
		{"wrong type falls back", map[string]interface{}{"cache": map[string]interface{}{"enabled": "no"}}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			config.Config = config.Type{Data: tt.data}
			assert.Equal(t, tt.want, useCache(tt.noCache))
		})
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, FlagValidators("md", OutputValidator))
	assert.Error(t, FlagValidators("text", OutputValidator))
	assert.NoError(t, FlagValidators("auto", ColorValidator))
	assert.Error(t, FlagValidators("yes", ColorValidator))
	assert.NoError(t, FlagValidators("-", OutValidator))
	assert.NoError(t, FlagValidators("report.md", OutValidator))
	assert.NoError(t, FlagValidators("s3://b/k.md", OutValidator))
	assert.Error(t, FlagValidators("s3://b", OutValidator))
	assert.NoError(t, FlagValidators(1, LimitValidator))
	assert.Error(t, FlagValidators(0, LimitValidator))
}

func TestFilterFlag(t *testing.T) {
	isolate(t)

	t.Run("flake", func(t *testing.T) {
		h := newHarness()
		err := flakeCommandBuilder(h.meta()).Run(context.Background(), []string{"flake",
			"--filter", "name=foo", "github:me/nur/old", "github:me/nur/new"})
		require.NoError(t, err)

		md := h.stdout.String()
		assert.Contains(t, md, "foo: 1.0.0 -> 1.1.0")
		assert.NotContains(t, md, "baz")
		assert.NotContains(t, md, "bar")
	})

	t.Run("nixpkgs", func(t *testing.T) {
		h := nixpkgsHarness()
		err := nixpkgsCommandBuilder(h.meta()).Run(context.Background(), []string{"nixpkgs",
			"--repo", t.TempDir(), "--filter", "action=init", base, head})
		require.NoError(t, err)

		assert.Contains(t, h.stdout.String(), "Pkgs Added: 1\nPkg Updates: 0\nPkgs Removed: 0\nUnparsable: 0\n")
	})
}
