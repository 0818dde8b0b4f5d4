// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for resfilter's user
// configuration. The configuration is a YAML document, located by
// RESFILTER_CFG_FILE or in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/resfilter.yaml or $HOME/.config/resfilter.yaml
//   - macOS: $HOME/Library/Application Support/resfilter.yaml
//   - Windows: %AppData%/resfilter.yaml
//
// Keys may be namespaced by subcommand. With Namespace "show", a lookup of
// "encoding" tries "show.encoding" before "encoding".
package config
