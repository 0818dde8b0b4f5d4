// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tfctl/resfilter/internal/log"
)

// DelimEnvVar overrides the separator used by BuildFilters.
const DelimEnvVar = "RESFILTER_FILTER_DELIM"

// BuildFilters parses a filter list specification into filter source paths.
// Entries are trimmed and blank entries dropped. Order and duplicates are
// kept as given.
func BuildFilters(spec string) []string {
	// Don't prealloc because we don't know what len will be.
	//nolint:prealloc
	var filters []string

	// If there are no filters specified, go home early.
	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for paths that contain
	// commas.
	delim := ","
	if d, ok := os.LookupEnv(DelimEnvVar); ok && d != "" {
		delim = d
	}

	for _, entry := range strings.Split(spec, delim) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		filters = append(filters, entry)
	}

	log.Debugf("filters built: spec=%q filters=%v", spec, filters)
	return filters
}

// BuildFiltersFrom flattens several specs, as produced by a repeatable flag,
// into a single list.
func BuildFiltersFrom(specs []string) []string {
	var filters []string
	for _, spec := range specs {
		filters = append(filters, BuildFilters(spec)...)
	}
	return filters
}

// Resolve makes relative filter paths absolute against baseDir. Filters that
// do not exist are kept and reported at warn level; whether a missing filter
// is fatal is the filtering engine's decision, not ours.
func Resolve(baseDir string, filters []string) []string {
	if filters == nil {
		return nil
	}

	resolved := make([]string, 0, len(filters))
	for _, f := range filters {
		p := f
		if !filepath.IsAbs(p) && baseDir != "" {
			p = filepath.Join(baseDir, p)
		}
		p = filepath.Clean(p)

		if info, err := os.Stat(p); err != nil {
			log.Warnf("filter not found: %s", p)
		} else if info.IsDir() {
			log.Warnf("filter is a directory: %s", p)
		}

		resolved = append(resolved, p)
	}
	return resolved
}
