// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/resfilter/internal/build"
	"github.com/tfctl/resfilter/internal/cacheutil"
	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/filtering"
	"github.com/tfctl/resfilter/internal/filters"
	"github.com/tfctl/resfilter/internal/log"
	"github.com/tfctl/resfilter/internal/meta"
	"github.com/tfctl/resfilter/internal/util"
)

// sourceEncodingProperty is the project property --encoding falls back to.
const sourceEncodingProperty = "project.build.sourceEncoding"

// AssembleRequest loads the project at spec.RootDir, activates spec.Profiles
// and builds a filtering request from the command's request flags.
func AssembleRequest(ctx context.Context, cmd *cli.Command, spec meta.RootDirSpec, startingDir string) (*filtering.Request, error) {
	project, err := build.LoadProject(spec.RootDir)
	if err != nil {
		return nil, err
	}
	if err := project.Activate(spec.Profiles...); err != nil {
		log.Warnf("%v", err)
	}
	project.Build.Filters = filters.Resolve(project.BaseDir, project.Build.Filters)

	execRoot := startingDir
	if execRoot == "" {
		execRoot = project.BaseDir
	}
	session := build.NewSession(execRoot, spec.Profiles, build.ParseProperties(cmd.StringSlice("define")))

	fs := filters.Resolve(project.BaseDir, filters.BuildFilters(cmd.String("filters")))

	encoding := cmd.String("encoding")
	if encoding == "" {
		encoding = project.Properties[sourceEncodingProperty]
	}

	req := filtering.NewRequestFor(project, fs, encoding, session)
	req.SetEscapeString(cmd.String("escape-string"))
	req.SetEscapeWindowsPaths(cmd.Bool("escape-windows-paths"))
	req.SetInjectProjectBuildFilters(cmd.Bool("inject-build-filters"))

	if cmd.IsSet("delimiters") {
		req.SetDelimiters(filtering.ParseDelimiters(cmd.String("delimiters")))
	}
	if cmd.IsSet("start-expressions") {
		req.SetProjectStartExpressions(util.SplitList(cmd.String("start-expressions"), ","))
	}

	// Config properties sit below the ones given with --property.
	base, _ := config.GetStringMap("properties", map[string]string{})
	if props := build.Properties(base).Merge(build.ParseProperties(cmd.StringSlice("property"))); props != nil {
		req.SetAdditionalProperties(props)
	}

	log.Debugf("request assembled: project=%s filters=%d delimiters=%s",
		project.Coordinates(), len(req.EffectiveFilters()), req.Delimiters())

	return req, nil
}

// snapshotRequest assembles the request and renders it as JSON. Unless
// caching is off the result is also stored as the latest request for the
// project and profiles.
func snapshotRequest(ctx context.Context, cmd *cli.Command, spec meta.RootDirSpec, startingDir string, cache bool) (*filtering.Request, []byte, error) {
	req, err := AssembleRequest(ctx, cmd, spec, startingDir)
	if err != nil {
		return nil, nil, err
	}

	raw, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if cache && !cmd.Bool("no-cache") {
		key := cacheutil.SnapshotKey(req.Project().BaseDir, spec.Profiles)
		if err := cacheutil.Write(cacheutil.SnapshotDir, key, raw); err != nil {
			log.Warnf("failed to cache request: %v", err)
		}
	}

	return req, raw, nil
}
