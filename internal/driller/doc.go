// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves bracket-indexed paths, such as
// "delimiters[0].begin", against a request snapshot.
package driller
