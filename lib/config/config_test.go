// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fastcontrol.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("default base URL = %q", cfg.API.BaseURL)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
environment: production
api:
  base_url: https://api.fastcontrol.example
  timeout: 10s
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Environment != Production {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.API.BaseURL != "https://api.fastcontrol.example" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("timeout = %v", cfg.RequestTimeout())
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: staging
api:
  base_url: http://localhost:8000
staging:
  api:
    base_url: https://staging.fastcontrol.example
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.BaseURL != "https://staging.fastcontrol.example" {
		t.Errorf("staging override not applied: %q", cfg.API.BaseURL)
	}
	// Non-matching sections must not apply.
	if cfg.API.Timeout != "30s" {
		t.Errorf("timeout = %q, want default", cfg.API.Timeout)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("FC_API_HOST", "api.interno")
	path := writeConfig(t, `
api:
  base_url: http://${FC_API_HOST}:8000
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.BaseURL != "http://api.interno:8000" {
		t.Errorf("expansion failed: %q", cfg.API.BaseURL)
	}
}

func TestExpandVariableDefault(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://${FC_UNSET_HOST:-localhost}:8000
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("default expansion failed: %q", cfg.API.BaseURL)
	}
}

func TestValidateErrors(t *testing.T) {
	cfg := Default()
	cfg.Environment = "laboratory"
	cfg.API.BaseURL = ""
	cfg.API.Timeout = "pronto"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
}

func TestLoadWithoutEnvVar(t *testing.T) {
	t.Setenv("FASTCONTROL_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL == "" {
		t.Error("expected default base URL")
	}
}
