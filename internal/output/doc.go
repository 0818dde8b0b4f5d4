// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output selects, sorts and emits request snapshot attributes as a
// text table, JSON, YAML or the raw snapshot.
package output
