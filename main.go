// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/resfilter/internal/cacheutil"
	"github.com/tfctl/resfilter/internal/command"
	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/log"
	"github.com/tfctl/resfilter/internal/util"
	"github.com/tfctl/resfilter/internal/version"
)

var ctx = context.Background()

// repeatableFlags may appear more than once and are never deduplicated.
var repeatableFlags = map[string]bool{
	"-p": true, "--property": true,
	"-D": true, "--define": true,
	"-q": true, "--query": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Describe())
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
		args = processOtherArgs(args)
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		return deduplicateFlags(args)
	}
}

// processOtherArgs makes sure a RootDir follows the command, inserting the
// CWD when the first argument is a flag, an @set or missing. Anything else is
// left for InitApp to validate.
func processOtherArgs(args []string) []string {
	rootDir, _ := os.Getwd()
	switch {
	case len(args) == 2:
		args = append(args, rootDir)
	case strings.HasPrefix(args[2], "-") || strings.HasPrefix(args[2], "@"):
		args = append(args[:2], append([]string{rootDir}, args[2:]...)...)
	default:
		if _, _, err := util.ParseRootDir(args[2]); err != nil {
			log.Debugf("rootDir not parsed: arg=%s err=%v", args[2], err)
		}
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}
	if hours, _ := config.GetInt("cache.clean", 0); hours > 0 {
		if err := cacheutil.Purge(hours); err != nil {
			log.Debugf("cache purge err: err=%v", err)
		}
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

// processSetOnly expands a named argument set from the config file. An
// explicit @set argument is replaced by "<command>.<set>". Without one,
// "<command>.defaults" is injected right after the RootDir so that anything
// on the command line follows it and wins after deduplication.
func processSetOnly(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			set := args[i][1:]
			args = append(args[:i], args[i+1:]...)
			return injectConfigSet(args, args[1]+"."+set, i)
		}
	}

	return injectConfigSet(args, args[1]+".defaults", min(3, len(args))) //nolint:mnd
}

// injectConfigSet inserts the whitespace-split entries of the config string
// slice at key into args at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, _ := config.GetStringSlice(key, nil)
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}
	log.Debugf("config set injected: key=%s args=%v", key, expanded)

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag after the
// command. A flag written without "=" takes the following argument as its
// value when that argument is not itself a flag. Repeatable flags and
// positional arguments are kept as given.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 { //nolint:mnd
		return append([]string{}, args...)
	}

	var (
		groups [][]string
		names  []string
	)
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, []string{a})
			names = append(names, "")
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		group := []string{a}
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			group = append(group, args[i+1])
			i++
		}
		groups = append(groups, group)
		names = append(names, name)
	}

	last := map[string]int{}
	for i, name := range names {
		if name != "" && !repeatableFlags[name] {
			last[name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, group := range groups {
		if name := names[i]; name != "" && !repeatableFlags[name] && last[name] != i {
			continue
		}
		out = append(out, group...)
	}
	return out
}
