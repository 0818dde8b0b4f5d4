// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/inspect"
	"github.com/tfctl/resfilter/internal/log"
	"github.com/tfctl/resfilter/internal/meta"
	"github.com/tfctl/resfilter/internal/store"
)

// runConsole starts the interactive console. Tests replace it.
var runConsole = inspect.Run

func inspectCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "inspect"

	var doc []byte
	if from := cmd.String("from"); from != "" {
		st, err := store.New(ctx, from)
		if err != nil {
			return err
		}
		if doc, err = st.Load(ctx); err != nil {
			return err
		}
	} else {
		_, raw, err := snapshotRequest(ctx, cmd, m.RootDirSpec, m.StartingDir, true)
		if err != nil {
			return err
		}
		doc = raw
	}

	// Queries given on the command line are answered without the console.
	if queries := cmd.StringSlice("query"); len(queries) > 0 {
		w := writer(cmd)
		for _, q := range queries {
			fmt.Fprintln(w, inspect.Evaluate(doc, q))
		}
		return nil
	}

	return runConsole(doc, inspect.Evaluate(doc, "coordinates"))
}

func inspectCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "inspect",
		Usage:     "explore the filtering request interactively",
		UsageText: "resfilter inspect [RootDir[::profile,...]] [--query EXPR ...] [options]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "answer a query and exit, repeatable",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "inspect a saved request file or s3:// object",
			},
		},
		Action:   inspectCommandAction,
		Meta:     meta,
		NoOutput: true,
	}).Build()
}
