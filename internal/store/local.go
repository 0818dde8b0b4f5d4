// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local keeps a snapshot in a file.
type Local struct {
	Path string
}

// NewLocal returns a Local store for path, made absolute.
func NewLocal(path string) (*Local, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &Local{Path: abs}, nil
}

// Load reads the snapshot file.
func (l *Local) Load(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return b, nil
}

// Save writes the snapshot file, creating parent directories as needed.
func (l *Local) Save(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(l.Path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (l *Local) String() string {
	return l.Path
}
