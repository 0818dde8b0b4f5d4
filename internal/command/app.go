// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/log"
	"github.com/tfctl/resfilter/internal/meta"
	"github.com/tfctl/resfilter/internal/util"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the resfilter
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	config.Config.Namespace = ns
	cfg, err := config.Load()
	if err != nil {
		// Running without a config file is normal.
		log.Debugf("config not loaded: %v", err)
		cfg = config.Type{Namespace: ns}
		config.Config = cfg
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	// See if the arg immediately following the command might be a directory.
	// This is determined by whether or not it begins with - or --. If it does,
	// it's a flag and the CWD is the project directory. If it's not, we assume
	// we have a dir[::profiles] spec and need to parse it more. Completion
	// takes a plain positional argument (bash or zsh) instead.
	if ns != "completion" && len(args) > 2 && !strings.HasPrefix(args[2], "-") {
		if wd, profiles, err := util.ParseRootDir(args[2]); err == nil {
			meta.RootDir = wd
			meta.Profiles = profiles
		} else {
			return nil, fmt.Errorf("failed to parse rootDir (%s): %w", args[2], err)
		}
	} else {
		meta.RootDir = sd
	}

	app := &cli.Command{
		Name:  "resfilter",
		Usage: "Resource Filtering Request",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "resfilter version info",
				HideDefault: true,
			},
		},
		// --property and --define values may themselves contain commas.
		DisableSliceFlagSeparator: true,
	}

	app.Commands = append(app.Commands,
		showCommandBuilder(meta),
		diffCommandBuilder(meta),
		inspectCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
