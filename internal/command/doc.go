// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for resfilter. It wires flags,
// validators, request assembly, actions, and shell completion for subcommands.
package command
