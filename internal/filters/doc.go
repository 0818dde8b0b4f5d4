// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters parses and resolves filter source lists.
//
// A filter is a property file whose entries feed placeholder resolution
// during resource filtering. Filters are given on the command line or in
// configuration as a delimited list (default: comma):
//
//   - "src/main/filters/default.properties"
//   - "default.properties, prod.properties"
//
// Set RESFILTER_FILTER_DELIM when a path contains commas.
//
// Relative entries are resolved against the project base directory. Missing
// files are reported but never dropped, and duplicates are preserved, since
// filter order decides which value wins when the engine loads them.
package filters
