// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/filtering"
	"github.com/tfctl/resfilter/internal/log"
	"github.com/tfctl/resfilter/internal/meta"
	"github.com/tfctl/resfilter/internal/output"
	"github.com/tfctl/resfilter/internal/store"
)

// showDefaultAttrs are the request fields reported without --attrs.
var showDefaultAttrs = []string{
	"project.artifactId:artifact",
	"effectiveFilters:filters",
	"encoding",
	"escapeString",
	"escapeWindowsPaths",
	"injectProjectBuildFilters",
	"projectStartExpressions",
	"delimiters.#.token:delimiters",
	"additionalProperties",
}

func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "show"

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(filtering.Snapshot{})) {
		return nil
	}

	req, raw, err := snapshotRequest(ctx, cmd, m.RootDirSpec, m.StartingDir, true)
	if err != nil {
		return err
	}

	if loc := cmd.String("save"); loc != "" {
		st, err := store.New(ctx, loc)
		if err != nil {
			return err
		}
		if err := st.Save(ctx, raw); err != nil {
			return err
		}
		log.Infof("request saved to %s", st)
	}

	opts := output.OptionsFromCommand(cmd)
	opts.Header = req.Project().Coordinates()
	if err := output.SliceDiceSpit(raw, BuildAttrs(cmd, showDefaultAttrs...), opts, writer(cmd)); err != nil {
		return fmt.Errorf("failed to render request: %w", err)
	}
	return nil
}

func showCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "show",
		Usage:     "show the filtering request for a project",
		UsageText: "resfilter show [RootDir[::profile,...]] [options]",
		Flags: []cli.Flag{
			newSchemaFlag(),
			&cli.StringFlag{
				Name:  "save",
				Usage: "also write the request to a file or s3:// object",
			},
		},
		Action: showCommandAction,
		Meta:   meta,
	}).Build()
}
