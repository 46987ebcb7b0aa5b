// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
version = "1.0.0"

[backend]
url = "http://desk-assistant:9000"
agent_mode = "Precise"
timeout_secs = 30

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Backend.URL != "http://desk-assistant:9000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.AgentMode != "Precise" {
		t.Errorf("Backend.AgentMode = %q", cfg.Backend.AgentMode)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("Backend.TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
	// Unset fields fall back to defaults.
	if cfg.Backend.MaxRetries != 3 {
		t.Errorf("Backend.MaxRetries = %d, want default 3", cfg.Backend.MaxRetries)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad url", func(c *Config) { c.Backend.URL = "not a url" }, false},
		{"bad agent mode", func(c *Config) { c.Backend.AgentMode = "Reckless" }, false},
		{"timeout too large", func(c *Config) { c.Backend.TimeoutSecs = 9999 }, false},
		{"retries zero", func(c *Config) { c.Backend.MaxRetries = 0 }, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, false},
		{"lowercase mode ok", func(c *Config) { c.Backend.AgentMode = "balanced" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
			if !tc.valid && err == nil {
				t.Error("Validate = nil, want error")
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DESKCHAT_BACKEND_URL", "http://override:8080")
	t.Setenv("DESKCHAT_THEME", "auto")
	t.Setenv("DESKCHAT_NO_HISTORY", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://override:8080" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want disabled via env")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.AgentMode = "Creative"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Backend.AgentMode != "Creative" {
		t.Errorf("round-trip AgentMode = %q", loaded.Backend.AgentMode)
	}
}

// Global(), SetGlobal(), and ReloadGlobal() must be safe under concurrent
// use. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	write := func(mode string) {
		content := "[backend]\nagent_mode = \"" + mode + "\"\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
	write("Balanced")

	loaded := make(chan *Config, 1)
	w, err := NewWatcherForPath(path, func(cfg *Config) {
		select {
		case loaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcherForPath: %v", err)
	}
	defer w.Close()

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	write("Precise")

	select {
	case cfg := <-loaded:
		if cfg.Backend.AgentMode != "Precise" {
			t.Errorf("reloaded AgentMode = %q", cfg.Backend.AgentMode)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reloaded")
	}
}
