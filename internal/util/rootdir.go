// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseRootDir parses a "dir[::profile,...]" spec and returns the absolute
// project directory and the profiles to activate, in the order given. It
// returns an error if the dir is empty, does not exist or is not a directory.
func ParseRootDir(rootDir string) (string, []string, error) {
	if rootDir == "" {
		return "", nil, os.ErrInvalid
	}

	dirPart, profilePart, _ := strings.Cut(rootDir, "::")
	if dirPart == "" {
		dirPart = "."
	}

	dir, err := filepath.Abs(dirPart)
	if err != nil {
		return "", nil, err
	}

	if r, err := os.Stat(dir); err != nil {
		return "", nil, err
	} else if !r.IsDir() {
		return "", nil, os.ErrInvalid
	}

	return dir, SplitList(profilePart, ","), nil
}

// SplitList splits s on sep, trims each element and drops empty ones. It
// returns nil when nothing is left.
func SplitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
