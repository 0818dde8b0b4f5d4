// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useCacheDir points the cache at a fresh temp dir with caching on.
func useCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(DirEnvVar, dir)
	t.Setenv(EnabledEnvVar, "1")
	return dir
}

func TestDir_WithEnv(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv(DirEnvVar, customDir)

	result, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

func TestDir_FallsBackToUserCacheDir(t *testing.T) {
	t.Setenv(DirEnvVar, "")

	result, ok := Dir()

	// Depends on the system, but a resolved dir must be absolute.
	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "resfilter", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
		{"FALSE", false},
		{" 0 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnabledEnvVar, tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv(EnabledEnvVar, "0")
		base, ok, err := EnsureBaseDir()
		assert.False(t, ok)
		assert.Empty(t, base)
		assert.NoError(t, err)
	})

	t.Run("creates nested", func(t *testing.T) {
		cacheDir := filepath.Join(t.TempDir(), "cache", "nested")
		t.Setenv(DirEnvVar, cacheDir)
		t.Setenv(EnabledEnvVar, "1")

		base, ok, err := EnsureBaseDir()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, cacheDir, base)
		assert.DirExists(t, cacheDir)
	})
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "/proj", SnapshotKey("/proj", nil))
	assert.Equal(t, "/proj::prod,ci", SnapshotKey("/proj", []string{"prod", "ci"}))
	assert.NotEqual(t, SnapshotKey("/proj", []string{"prod", "ci"}), SnapshotKey("/proj", []string{"ci", "prod"}))
}

func TestEntryPath(t *testing.T) {
	dir := useCacheDir(t)

	path, exists := EntryPath(SnapshotDir, "my-key")
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(dir, "snapshots", encodeKey("my-key")), path)

	require.NoError(t, Write(SnapshotDir, "my-key", []byte("{}")))
	_, exists = EntryPath(SnapshotDir, "my-key")
	assert.True(t, exists)
}

func TestReadWrite(t *testing.T) {
	dir := useCacheDir(t)
	data := []byte(`{"encoding":"UTF-8"}` + "\n")

	_, found := Read(SnapshotDir, "/proj")
	assert.False(t, found)

	require.NoError(t, Write(SnapshotDir, "/proj", data))

	entry, found := Read(SnapshotDir, "/proj")
	require.True(t, found)
	assert.Equal(t, "/proj", entry.Key)
	assert.Equal(t, encodeKey("/proj"), entry.EncodedKey)
	assert.Equal(t, filepath.Join(dir, "snapshots", entry.EncodedKey), entry.Path)
	assert.Equal(t, data, entry.Data)
	assert.False(t, entry.ModTime.IsZero())

	info, err := os.Stat(entry.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// No temp files are left behind.
	files, err := os.ReadDir(filepath.Join(dir, "snapshots"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestWrite_Overwrites(t *testing.T) {
	useCacheDir(t)

	require.NoError(t, Write(nil, "k", []byte("old")))
	require.NoError(t, Write(nil, "k", []byte("new")))

	entry, found := Read(nil, "k")
	require.True(t, found)
	assert.Equal(t, []byte("new"), entry.Data)
}

func TestReadWrite_Disabled(t *testing.T) {
	dir := useCacheDir(t)
	t.Setenv(EnabledEnvVar, "false")

	assert.NoError(t, Write(SnapshotDir, "k", []byte("x")))
	assert.NoDirExists(t, filepath.Join(dir, "snapshots"))

	entry, found := Read(SnapshotDir, "k")
	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestPurge(t *testing.T) {
	dir := useCacheDir(t)

	oldPath := filepath.Join(dir, "old.json")
	recentPath := filepath.Join(dir, "sub", "recent.json")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Dir(recentPath), 0o755))
	require.NoError(t, os.WriteFile(recentPath, []byte("recent"), 0o600))

	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	// Disabled with zero hours.
	assert.NoError(t, Purge(0))
	assert.FileExists(t, oldPath)

	assert.NoError(t, Purge(1))
	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, recentPath)
}

func TestPurge_MissingBaseDir(t *testing.T) {
	t.Setenv(DirEnvVar, filepath.Join(t.TempDir(), "missing"))
	assert.NoError(t, Purge(1))
}

func TestList(t *testing.T) {
	dir := useCacheDir(t)

	entries, err := List(SnapshotDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, Write(SnapshotDir, "/old", []byte("old")))
	require.NoError(t, Write(SnapshotDir, "/new", []byte("new")))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "snapshots", encodeKey("/old")), past, past))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshots", ".tmp-123"), []byte("partial"), 0o600))

	entries, err = List(SnapshotDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []byte("new"), entries[0].Data)
	assert.Equal(t, []byte("old"), entries[1].Data)
	assert.Equal(t, encodeKey("/old"), entries[1].EncodedKey)
	assert.Empty(t, entries[1].Key)
}

func TestList_Disabled(t *testing.T) {
	useCacheDir(t)
	require.NoError(t, Write(SnapshotDir, "k", []byte("x")))
	t.Setenv(EnabledEnvVar, "0")

	entries, err := List(SnapshotDir)
	assert.NoError(t, err)
	assert.Nil(t, entries)
}
