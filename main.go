// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nurctl/nurctl/internal/cacheutil"
	"github.com/nurctl/nurctl/internal/command"
	"github.com/nurctl/nurctl/internal/config"
	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Banner())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)
		return args
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the flags stored under
// "<command>.<set>" in the config. Without an explicit @set the
// "<command>.defaults" entries are injected right after the command, so
// anything on the command line overrides them once duplicates are dropped.
func processSetOnly(args []string) []string {
	if len(args) < 2 { //nolint:mnd
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			at := idx + i
			rest := append([]string{}, args[:at]...)
			rest = append(rest, args[at+1:]...)
			entries, err := config.GetStringSlice(args[1] + "." + a[1:])
			if err != nil {
				log.Warnf("no argument set %s for %s", a, args[1])
			}
			return injectConfigSet(rest, entries, at)
		}
	}

	entries, _ := config.GetStringSlice(args[1] + ".defaults")
	return injectConfigSet(args, entries, idx)
}

// injectConfigSet splits each entry on whitespace and inserts the resulting
// arguments at insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// argUnit is a positional argument or a flag together with its value.
type argUnit struct {
	flag   string
	tokens []string
}

// boolFlags never take a separate value.
var boolFlags = map[string]bool{
	"--help":            true,
	"--no-cache":        true,
	"--per-arch":        true,
	"--pick":            true,
	"--raw-diff":        true,
	"--show-unparsable": true,
	"--summary":         true,
	"--version":         true,
}

// isFlag reports whether tok looks like a flag. A lone "-" is a value (stdout).
func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "-") && tok != "-"
}

// deduplicateFlags keeps the last occurrence of every repeated flag after the
// command. A flag written without = takes the following token as its value
// unless it is a known boolean flag or that token is itself a flag. Everything after "--" is kept as is.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 { //nolint:mnd
		return args
	}

	var (
		units []argUnit
		tail  []string
	)
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		switch {
		case tok == "--":
			tail = rest[i:]
			i = len(rest)
		case !isFlag(tok):
			units = append(units, argUnit{tokens: []string{tok}})
		default:
			name, _, hasValue := strings.Cut(tok, "=")
			u := argUnit{flag: name, tokens: []string{tok}}
			if !hasValue && !boolFlags[name] && i+1 < len(rest) && !isFlag(rest[i+1]) {
				u.tokens = append(u.tokens, rest[i+1])
				i++
			}
			units = append(units, u)
		}
	}

	last := map[string]int{}
	for i, u := range units {
		if u.flag != "" {
			last[u.flag] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.flag != "" && last[u.flag] != i {
			continue
		}
		out = append(out, u.tokens...)
	}
	return append(out, tail...)
}
