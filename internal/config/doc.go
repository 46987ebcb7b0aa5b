// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for deskchat.
//
// Configuration lives in a TOML file with sensible defaults, environment
// variable overrides, and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (DESKCHAT_*)
//   - ~/.deskchat/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or use the thread-safe global instance:
//
//	cfg := config.Global()
//
// A Watcher can reload the global instance when the config file changes on
// disk, so a running session picks up edits without a restart.
package config
