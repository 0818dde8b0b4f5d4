// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store saves and loads request snapshots at a named location: a
// local file or an s3://bucket/key object.
package store
