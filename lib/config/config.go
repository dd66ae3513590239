// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the FastControl
// console.
//
// Configuration is loaded from a single file specified by:
//   - FASTCONTROL_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. The console also runs
// with no config file at all: it is a client, and the built-in
// defaults plus the --api-url flag are enough for development use.
//
// The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for the FastControl console.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// API configures the connection to the FastControl REST API.
	API APIConfig `yaml:"api"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	API *APIConfig `yaml:"api,omitempty"`
}

// APIConfig configures the connection to the FastControl REST API.
type APIConfig struct {
	// BaseURL is the base URL of the API (e.g., "http://localhost:8000").
	// All endpoint paths are relative to it.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each individual HTTP request. Parsed as a Go
	// duration string (e.g., "30s").
	Timeout string `yaml:"timeout"`
}

// Default returns the default configuration. These defaults are a
// complete working configuration for a local development API; the
// config file overrides them where present.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
	}
}

// Load loads configuration from the FASTCONTROL_CONFIG environment
// variable, falling back to built-in defaults when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("FASTCONTROL_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values. The only expansion performed is
// ${VAR} and ${VAR:-default} substitution for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching the
// configured environment on top of the base values.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil || overrides.API == nil {
		return
	}

	if overrides.API.BaseURL != "" {
		c.API.BaseURL = overrides.API.BaseURL
	}
	if overrides.API.Timeout != "" {
		c.API.Timeout = overrides.API.Timeout
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.API.BaseURL = expandVars(c.API.BaseURL, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	}

	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequestTimeout returns the parsed per-request timeout. Call Validate
// first; an unparseable value falls back to 30 seconds here.
func (c *Config) RequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return timeout
}
