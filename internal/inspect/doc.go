// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package inspect is an interactive console for querying a request snapshot
// with gjson paths and HCL function expressions.
package inspect
