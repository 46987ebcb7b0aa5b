// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// AGENT MODE INFO TYPE
// =============================================================================

// ModeInfo describes a backend agent mode. Modes trade answer latency
// against how much verification the warehouse agent performs before it
// commits to a result.
type ModeInfo struct {
	// Name is the identifier sent to the backend in the agentMode field.
	Name string `json:"name"`

	// Summary is a one-line description for pickers and help text.
	Summary string `json:"summary"`

	// Latency categorizes expected response time: "fast", "moderate",
	// or "slow".
	Latency string `json:"latency"`

	// Default marks the mode used when none is configured.
	Default bool `json:"default"`
}

// =============================================================================
// MODE REGISTRY
// =============================================================================

// Modes is the registry of agent modes the backend accepts.
var Modes = map[string]ModeInfo{
	"balanced": {
		Name:    "Balanced",
		Summary: "Reasonable speed with spot checks on generated SQL",
		Latency: "moderate",
		Default: true,
	},
	"precise": {
		Name:    "Precise",
		Summary: "Slower, verifies row counts and aggregates before answering",
		Latency: "slow",
	},
	"creative": {
		Name:    "Creative",
		Summary: "Fast exploratory answers, best for ad hoc questions",
		Latency: "fast",
	},
}

// GetMode looks up a mode by name, case-insensitively. Returns the
// Balanced mode when the name is unknown.
func GetMode(name string) ModeInfo {
	if info, ok := Modes[strings.ToLower(name)]; ok {
		return info
	}
	return Modes["balanced"]
}

// IsValidMode reports whether a mode name is known, case-insensitively.
func IsValidMode(name string) bool {
	_, ok := Modes[strings.ToLower(name)]
	return ok
}

// DefaultMode returns the mode used when none is configured.
func DefaultMode() ModeInfo {
	for _, info := range Modes {
		if info.Default {
			return info
		}
	}
	return Modes["balanced"]
}

// ModeNames returns the canonical mode names in sorted order, for help
// text and validation messages.
func ModeNames() []string {
	names := make([]string, 0, len(Modes))
	for _, info := range Modes {
		names = append(names, info.Name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a display string for the mode, e.g.
// "Precise: verifies row counts and aggregates before answering (slow)".
func (m ModeInfo) Describe() string {
	return fmt.Sprintf("%s: %s (%s)", m.Name, lowerFirst(m.Summary), m.Latency)
}

// lowerFirst lowercases the first rune of a string.
func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = []rune(strings.ToLower(string(runes[0])))[0]
	return string(runes)
}
