// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/resfilter/internal/cacheutil"
	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/differ"
	"github.com/tfctl/resfilter/internal/log"
	"github.com/tfctl/resfilter/internal/meta"
	"github.com/tfctl/resfilter/internal/store"
	"github.com/tfctl/resfilter/internal/util"
)

// selectSnapshots is the picker used by --pick. Tests replace it.
var selectSnapshots = differ.SelectSnapshots

func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "diff"

	w := writer(cmd)
	ignore := util.SplitList(cmd.String("ignore"), ",")
	coloring := cmd.Bool("color") && isTTY(w)

	if cmd.Bool("pick") {
		return pickAndDiff(cmd, w, ignore, coloring)
	}

	req, current, err := snapshotRequest(ctx, cmd, m.RootDirSpec, m.StartingDir, false)
	if err != nil {
		return err
	}

	var previous []byte
	if against := cmd.String("against"); against != "" {
		previous, err = loadBaseline(ctx, cmd, against, m.StartingDir)
		if err != nil {
			return err
		}
	} else {
		if cmd.Bool("no-cache") {
			return errors.New("--no-cache needs --against to compare with")
		}
		key := cacheutil.SnapshotKey(req.Project().BaseDir, m.Profiles)
		entry, ok := cacheutil.Read(cacheutil.SnapshotDir, key)
		if !ok {
			return fmt.Errorf("no cached request for %s, run show first", key)
		}
		log.Debugf("baseline from cache: %s (%s)", key, humanize.Time(entry.ModTime))
		previous = entry.Data
	}

	_, err = differ.Diff(w, previous, current, ignore, coloring)
	return err
}

// loadBaseline resolves --against. A project directory, optionally followed by
// ::profiles, is assembled with the current flags. Anything else is a stored
// snapshot.
func loadBaseline(ctx context.Context, cmd *cli.Command, against string, startingDir string) ([]byte, error) {
	if dir, profiles, err := util.ParseRootDir(against); err == nil {
		spec := meta.RootDirSpec{RootDir: dir, Profiles: profiles}
		_, raw, err := snapshotRequest(ctx, cmd, spec, startingDir, false)
		return raw, err
	}

	st, err := store.New(ctx, against)
	if err != nil {
		return nil, err
	}
	return st.Load(ctx)
}

// pickAndDiff offers every cached request and compares the two picked.
func pickAndDiff(cmd *cli.Command, w io.Writer, ignore []string, coloring bool) error {
	entries, err := cacheutil.List(cacheutil.SnapshotDir)
	if err != nil {
		return err
	}

	choices := make([]differ.Choice, 0, len(entries))
	for _, e := range entries {
		choices = append(choices, differ.Choice{Label: snapshotLabel(e), Data: e.Data})
	}

	picked, err := selectSnapshots(choices)
	if err != nil {
		return err
	}
	if picked == nil {
		log.Debug("picker cancelled")
		return nil
	}

	_, err = differ.Diff(w, picked[0].Data, picked[1].Data, ignore, coloring)
	return err
}

// snapshotLabel describes a cached request as coordinates, profiles and age.
func snapshotLabel(e *cacheutil.Entry) string {
	coords := strings.Join([]string{
		gjson.GetBytes(e.Data, "project.groupId").String(),
		gjson.GetBytes(e.Data, "project.artifactId").String(),
		gjson.GetBytes(e.Data, "project.version").String(),
	}, ":")

	label := coords
	var profiles []string
	for _, p := range gjson.GetBytes(e.Data, "session.activeProfiles").Array() {
		profiles = append(profiles, p.String())
	}
	if len(profiles) > 0 {
		label += "::" + strings.Join(profiles, ",")
	}
	return label + "  (" + humanize.Time(e.ModTime) + ")"
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare the filtering request with a previous one",
		UsageText: "resfilter diff [RootDir[::profile,...]] [--against LOCATION | --pick] [options]",
		Flags: append(NewDiffFlags("diff", meta.Config.Source),
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color the differences",
			},
		),
		Action:   diffCommandAction,
		Meta:     meta,
		NoOutput: true,
	}).Build()
}
