// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/resfilter/internal/config"
)

// RootDirSpec holds the resolved project directory and the profiles named
// after its "::" separator.
type RootDirSpec struct {
	RootDir  string
	Profiles []string
}

// Meta contains runtime metadata shared by commands: CLI arguments, loaded
// configuration, context, the resolved project directory spec and the
// working directory resfilter started in.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	RootDirSpec
	StartingDir string
}
