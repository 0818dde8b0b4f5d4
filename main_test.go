// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/resfilter/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"resfilter", "show"},
			expected: []string{"resfilter", "show"},
		},
		{
			name:     "no duplicates",
			args:     []string{"resfilter", "show", "--output", "text", "--titles"},
			expected: []string{"resfilter", "show", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"resfilter", "show", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"resfilter", "show", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"resfilter", "show", "--titles", "--debug", "--titles"},
			expected: []string{"resfilter", "show", "--debug", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"resfilter", "show", "--output=json", "--titles", "--output=text"},
			expected: []string{"resfilter", "show", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"resfilter", "show", "--output=json", "--output", "text"},
			expected: []string{"resfilter", "show", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"resfilter", "show", "--encoding", "UTF-8", "--filters", "a", "--encoding", "UTF-16", "--filters", "b"},
			expected: []string{"resfilter", "show", "--encoding", "UTF-16", "--filters", "b"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"resfilter", "show", "/path/to/project", "--output", "json", "--output", "text"},
			expected: []string{"resfilter", "show", "/path/to/project", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"resfilter", "show", "-o", "json", "-o", "text"},
			expected: []string{"resfilter", "show", "-o", "text"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"resfilter", "show", "--color", "--no-color"},
			expected: []string{"resfilter", "show", "--color", "--no-color"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"resfilter", "show", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"resfilter", "show", "--output", "c"},
		},
		{
			name:     "flag at end with no value treated as boolean",
			args:     []string{"resfilter", "show", "--titles", "--debug", "--titles"},
			expected: []string{"resfilter", "show", "--debug", "--titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"resfilter", "show", "--alpha", "--beta", "--gamma"}
	result := deduplicateFlags(args)
	expected := []string{"resfilter", "show", "--alpha", "--beta", "--gamma"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	// Positional args after flags should be preserved.
	args := []string{"resfilter", "show", "--output", "json", "/path", "--output", "text"}
	result := deduplicateFlags(args)
	expected := []string{"resfilter", "show", "/path", "--output", "text"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlags_Repeatable(t *testing.T) {
	args := []string{"resfilter", "show", "/p", "-p", "a=1", "--output", "json", "-p", "b=2", "-D", "x", "--define", "y=z", "--output", "text"}
	assert.Equal(t,
		[]string{"resfilter", "show", "/p", "-p", "a=1", "-p", "b=2", "-D", "x", "--define", "y=z", "--output", "text"},
		deduplicateFlags(args))
}

func TestDeduplicateFlags_EmptyValue(t *testing.T) {
	args := []string{"resfilter", "show", "/p", "-d", "@", "-d", ""}
	assert.Equal(t, []string{"resfilter", "show", "/p", "-d", ""}, deduplicateFlags(args))
}

// useConfig points the config at a temp file holding content.
func useConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resfilter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(config.FileEnvVar, path)
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestInjectConfigSet(t *testing.T) {
	useConfig(t, `show:
  defaults:
    - --titles
  prod:
    - --output json
    - -p env=prod
  single: --padding 4
`)

	tests := []struct {
		name      string
		args      []string
		key       string
		insertIdx int
		expected  []string
	}{
		{
			name:      "missing key returns args unchanged",
			args:      []string{"resfilter", "show", "--color"},
			key:       "show.nope",
			insertIdx: 2,
			expected:  []string{"resfilter", "show", "--color"},
		},
		{
			name:      "single entry injected",
			args:      []string{"resfilter", "show", "--color"},
			key:       "show.defaults",
			insertIdx: 2,
			expected:  []string{"resfilter", "show", "--titles", "--color"},
		},
		{
			name:      "multi-word entries split",
			args:      []string{"resfilter", "show", "/path/to/project", "--color"},
			key:       "show.prod",
			insertIdx: 3,
			expected:  []string{"resfilter", "show", "/path/to/project", "--output", "json", "-p", "env=prod", "--color"},
		},
		{
			name:      "scalar value",
			args:      []string{"resfilter", "show"},
			key:       "show.single",
			insertIdx: 2,
			expected:  []string{"resfilter", "show", "--padding", "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injectConfigSet(tt.args, tt.key, tt.insertIdx))
		})
	}
}

func TestProcessSetOnly(t *testing.T) {
	useConfig(t, `show:
  defaults:
    - --titles
  prod:
    - --output json
`)

	assert.Equal(t,
		[]string{"resfilter", "show", "/p", "--output", "json", "--color"},
		processSetOnly([]string{"resfilter", "show", "/p", "@prod", "--color"}))

	assert.Equal(t,
		[]string{"resfilter", "show", "/p", "--titles", "--color"},
		processSetOnly([]string{"resfilter", "show", "/p", "--color"}))

	assert.Equal(t,
		[]string{"resfilter", "diff", "/p"},
		processSetOnly([]string{"resfilter", "diff", "/p"}))

	assert.Equal(t, []string{"resfilter", "--help"}, processSetOnly([]string{"resfilter", "--help"}))
}

func TestProcessOtherArgs(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, []string{"resfilter", "show", wd}, processOtherArgs([]string{"resfilter", "show"}))
	assert.Equal(t, []string{"resfilter", "show", wd, "-o", "json"}, processOtherArgs([]string{"resfilter", "show", "-o", "json"}))
	assert.Equal(t, []string{"resfilter", "show", ".::prod"}, processOtherArgs([]string{"resfilter", "show", ".::prod"}))
	assert.Equal(t, []string{"resfilter", "show", "nope"}, processOtherArgs([]string{"resfilter", "show", "nope"}))
	assert.Equal(t, []string{"resfilter", "show", wd, "@prod"}, processOtherArgs([]string{"resfilter", "show", "@prod"}))
}

func TestProcessCommandArgs(t *testing.T) {
	useConfig(t, "show:\n  defaults:\n    - --output yaml\n")
	wd, err := os.Getwd()
	require.NoError(t, err)

	// The command line wins over the defaults set.
	got := processCommandArgs([]string{"resfilter", "show", "--output", "json"})
	assert.Equal(t, []string{"resfilter", "show", wd, "--output", "json"}, got)

	got = processCommandArgs([]string{"resfilter", "completion", "bash"})
	assert.Equal(t, []string{"resfilter", "completion", "bash"}, got)
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"resfilter", "--help"}, handleNakedCommand([]string{"resfilter"}))
	assert.Equal(t, []string{"resfilter", "show"}, handleNakedCommand([]string{"resfilter", "show"}))
}

func TestHandleVersion(t *testing.T) {
	assert.True(t, handleVersion([]string{"resfilter", "--version"}))
	assert.True(t, handleVersion([]string{"resfilter", "show", "-v"}))
	assert.False(t, handleVersion([]string{"resfilter", "show"}))
}
