// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/nurctl/nurctl/internal/meta"
)

const bashCompletionScript = `# bash completion for nurctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_nurctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "flake nixpkgs completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --no-cache --out -O --output -o --sort -s --summary --timeout --title -t"

    case "$cmd" in
        flake)
            local opts="$common --per-arch --raw-diff"
            ;;
        nixpkgs)
            local opts="$common --limit -l --pick --repo -r --show-unparsable"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "md json yaml" -- "$cur") )
            return 0
            ;;
        --color|-c)
            COMPREPLY=( $(compgen -W "auto always never" -- "$cur") )
            return 0
            ;;
        --repo|-r)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
        --out|-O)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
    return 0
}

complete -F _nurctl nurctl
`

const zshCompletionScript = `#compdef nurctl

_nurctl() {
  local -a cmds
  cmds=(
    'flake:package changes between two flake revisions'
    'nixpkgs:package changes between two nixpkgs revisions'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[colored text output]:mode:(auto always never)'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--no-cache[bypass the snapshot and log cache]'
  '(-O --out)'{-O,--out}'[where to write the report]:file:_files'
  '(-o --output)'{-o,--output}'[output format]:format:(md json yaml)'
  '(-s --sort)'{-s,--sort}'[summary columns to sort by]:columns'
  '--summary[print a stats table]'
  '--timeout[give up on external commands after this long]:duration'
  '(-t --title)'{-t,--title}'[report title]:title'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'nurctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    flake)
      _arguments -C \
        $common \
        '--per-arch[list changes per architecture]' \
        '--raw-diff[print a structural diff of the packages JSON]' \
        '1:old flake ref' \
        '2:new flake ref'
      ;;
    nixpkgs)
      _arguments -C \
        $common \
        '(-l --limit)'{-l,--limit}'[commits offered by --pick]:limit' \
        '--pick[choose base and head interactively]' \
        '(-r --repo)'{-r,--repo}'[local nixpkgs checkout]:repo:_directories' \
        '--show-unparsable[list unclassified commit subjects]' \
        '1:base revision' \
        '2:head revision'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _nurctl nurctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	out := m.Stdout
	if out == nil {
		out = os.Stdout
	}

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	return writeCompletion(out, stderr(m), shell)
}

func writeCompletion(out io.Writer, errOut io.Writer, shell string) error {
	switch shell {
	case "bash":
		fmt.Fprint(out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(out, zshCompletionScript)
	default:
		fmt.Fprintln(errOut, "usage: nurctl completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "nurctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
