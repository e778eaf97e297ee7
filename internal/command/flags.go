// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/nurctl/nurctl/internal/output"
)

// newNoCacheFlag constructs the --no-cache flag.
func newNoCacheFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "no-cache",
		Usage: "bypass the snapshot and log cache",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NURCTL_NO_CACHE"),
		),
		HideDefault: true,
	}
}

// newTimeoutFlag constructs the --timeout flag.
func newTimeoutFlag() *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "give up on external commands after this long (0 waits forever)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NURCTL_TIMEOUT"),
		),
	}
}

// NewGlobalFlags returns the flags shared by the report commands. When cfg
// names a config file, string flags also read "<ns>.<flag>" and "<flag>" from
// it.
func NewGlobalFlags(ns string, cfg string) (flags []cli.Flag) {
	flags = []cli.Flag{
		withConfig(ns, cfg, &cli.StringFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "colored text output: auto, always or never",
			Value:   "auto",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NURCTL_COLOR"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, ColorValidator)
			},
		}),
		withConfig(ns, cfg, &cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply before reporting",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NURCTL_FILTER"),
			),
		}),
		withConfig(ns, cfg, &cli.StringFlag{
			Name:    "out",
			Aliases: []string{"O"},
			Usage:   "where to write the report: -, a file or s3://bucket/key",
			Value:   "-",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NURCTL_OUT"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, OutValidator)
			},
		}),
		withConfig(ns, cfg, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   output.Formats[0],
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NURCTL_OUTPUT"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		withConfig(ns, cfg, &cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of summary columns to sort by, - prefix for descending",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NURCTL_SORT"),
			),
		}),
		&cli.BoolFlag{
			Name:        "summary",
			Usage:       "print a stats table to stderr",
			HideDefault: true,
		},
		withConfig(ns, cfg, &cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "title appended to the report heading",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NURCTL_TITLE"),
			),
		}),
	}

	return
}

// NewRepoFlag constructs the --repo flag naming a local nixpkgs checkout.
func NewRepoFlag(ns string, cfg string) *cli.StringFlag {
	return withConfig(ns, cfg, &cli.StringFlag{
		Name:    "repo",
		Aliases: []string{"r"},
		Usage:   "local nixpkgs git checkout",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NURCTL_REPO"),
		),
	})
}

// withConfig adds config file sources when cfg is set.
func withConfig(ns string, cfg string, flag *cli.StringFlag) *cli.StringFlag {
	if cfg == "" {
		return flag
	}
	return NameSpacedValueChainFlagFromConfigFile(ns, cfg, flag)
}

// withConfigBool is withConfig for boolean flags.
func withConfigBool(ns string, cfg string, flag *cli.BoolFlag) *cli.BoolFlag {
	if cfg == "" {
		return flag
	}
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, cfg, flag.Name)...)
	return flag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, path, flag.Name)...)
	return flag
}

// configSources returns the "<ns>.<name>" and "<name>" yaml sources of path.
func configSources(ns string, path string, name string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	}
}
