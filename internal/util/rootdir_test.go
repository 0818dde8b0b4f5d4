// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRootDir(t *testing.T) {
	tests := []struct {
		name         string
		setupDir     func(t *testing.T) (spec string, wantDir string)
		wantProfiles []string
		wantErr      bool
		errIs        error
	}{
		{
			name: "absolute_path_no_profiles",
			setupDir: func(t *testing.T) (string, string) {
				d := t.TempDir()
				return d, d
			},
		},
		{
			name: "absolute_path_with_profiles",
			setupDir: func(t *testing.T) (string, string) {
				d := t.TempDir()
				return d + "::prod, ci ,", d
			},
			wantProfiles: []string{"prod", "ci"},
		},
		{
			name: "relative_path",
			setupDir: func(t *testing.T) (string, string) {
				d := t.TempDir()
				oldCwd, err := os.Getwd()
				if err != nil {
					t.Fatalf("failed to get cwd: %v", err)
				}
				if err := os.Chdir(filepath.Dir(d)); err != nil {
					t.Fatalf("failed to chdir: %v", err)
				}
				t.Cleanup(func() { _ = os.Chdir(oldCwd) })
				return filepath.Base(d), d
			},
		},
		{
			name: "profiles_only_means_cwd",
			setupDir: func(t *testing.T) (string, string) {
				d := t.TempDir()
				oldCwd, err := os.Getwd()
				if err != nil {
					t.Fatalf("failed to get cwd: %v", err)
				}
				if err := os.Chdir(d); err != nil {
					t.Fatalf("failed to chdir: %v", err)
				}
				t.Cleanup(func() { _ = os.Chdir(oldCwd) })
				cwd, _ := os.Getwd()
				return "::dev", cwd
			},
			wantProfiles: []string{"dev"},
		},
		{
			name: "empty",
			setupDir: func(t *testing.T) (string, string) {
				return "", ""
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name: "not_a_directory",
			setupDir: func(t *testing.T) (string, string) {
				f := filepath.Join(t.TempDir(), "file")
				if err := os.WriteFile(f, []byte("x"), 0o600); err != nil {
					t.Fatalf("failed to write file: %v", err)
				}
				return f, ""
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name: "missing",
			setupDir: func(t *testing.T) (string, string) {
				return filepath.Join(t.TempDir(), "nope"), ""
			},
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, wantDir := tt.setupDir(t)

			dir, profiles, err := ParseRootDir(spec)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}

			assert.NoError(t, err)
			assert.True(t, filepath.IsAbs(dir))
			assert.Equal(t, filepath.Clean(wantDir), dir)
			assert.Equal(t, tt.wantProfiles, profiles)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("", ","))
	assert.Nil(t, SplitList(" , ", ","))
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b", ","))
	assert.Equal(t, []string{"a,b", "c"}, SplitList("a,b;c", ";"))
}
