// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"time"
)

// Session is the build invocation context a filtering request runs in.
type Session struct {
	ExecutionRootDir string     `json:"executionRootDir"`
	StartTime        time.Time  `json:"startTime"`
	ActiveProfiles   []string   `json:"activeProfiles,omitempty"`
	UserProperties   Properties `json:"userProperties,omitempty"`
}

// NewSession returns a session rooted at rootDir that started now.
func NewSession(rootDir string, profiles []string, userProps Properties) *Session {
	return &Session{
		ExecutionRootDir: rootDir,
		StartTime:        time.Now().UTC().Truncate(time.Second),
		ActiveProfiles:   profiles,
		UserProperties:   userProps,
	}
}
