// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders the per-command markdown and man pages of nurctl from
// docs/templates/nurctl.yaml. Usage: go run ./tools/docsgen docs
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
	Common      Common       `yaml:"common"`
}

type Common struct {
	Flags []Flag `yaml:"flags"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

// Output is one rendered artifact per subcommand.
type Output struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) != 2 { //nolint:mnd
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs dir>")
		os.Exit(1)
	}
	if err := run(os.Args[1], getVersion(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(docs string, version string, progress io.Writer) error {
	config, err := load(filepath.Join(docs, "templates", "nurctl.yaml"))
	if err != nil {
		return err
	}

	outputs := []Output{
		{Template: "nurctl.md.tmpl", Folder: "commands", Suffix: ".md"},
		{Template: "nurctl.man.tmpl", Folder: filepath.Join("man", "share", "man1"), Prefix: "nurctl-", Suffix: ".1"},
	}

	date := time.Now().Format("January 2, 2006")
	for _, sub := range config.Subcommands {
		data := TemplateData{
			Subcommand: withCommonFlags(sub, config.Common.Flags),
			Date:       date,
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, o := range outputs {
			folder := filepath.Join(docs, o.Folder)
			if err := os.MkdirAll(folder, 0o755); err != nil { //nolint:mnd
				return err
			}
			target := filepath.Join(folder, o.Prefix+sub.ID+o.Suffix)
			fmt.Fprintln(progress, "Generating", target)

			if err := render(filepath.Join(docs, "templates", o.Template), target, data); err != nil {
				return err
			}
		}
	}
	return nil
}

func load(path string) (Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, nil
}

// withCommonFlags returns sub with the common flags merged in, sorted by ID.
func withCommonFlags(sub Subcommand, common []Flag) Subcommand {
	merged := append(slices.Clone(common), sub.Flags...)
	slices.SortStableFunc(merged, func(a, b Flag) int {
		return strings.Compare(a.ID, b.ID)
	})
	sub.Flags = merged
	return sub
}

func render(tmplPath string, target string, data TemplateData) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return err
	}

	file, err := os.Create(target)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
