// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filtering holds the request handed to a resource-filtering engine.
//
// A Request aggregates everything a filtering pass needs before it runs: the
// project and session it belongs to, the filter property files, the resource
// encoding, the escape configuration, the placeholder delimiters and any extra
// properties. It performs no filtering itself. A Request is built once per
// filtering invocation, adjusted through its setters by the calling build
// step, read by the engine and then dropped. It is not safe for concurrent
// mutation.
//
// Defaults:
//
//   - delimiters: ${*} and @
//   - project start expressions: pom, project
//   - escape windows paths: true
//   - inject project build filters: false
//
// The delimiter set is never empty. Setting a nil or empty set resets it to
// ${*} alone.
//
// Two accessor pairs are aliases over a single field: FileFilters mirrors
// Filters, and EscapedBackslashesInFilePath mirrors EscapeWindowsPaths.
package filtering
