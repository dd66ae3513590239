// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/fastcontrol/console/lib/api"
)

// PingCommand returns the API reachability check command.
func PingCommand() *Command {
	var configPath string
	var apiURL string

	return &Command{
		Name:    "ping",
		Summary: "Check that the API is reachable",
		Description: `Call the API's unauthenticated status endpoint and print the
service message. Exits 1 when the API cannot be reached, so the
command works as a health check in scripts.`,
		Usage: "fastcontrol ping [flags]",
		Examples: []Example{
			{
				Description: "Check the configured API",
				Command:     "fastcontrol ping",
			},
			{
				Description: "Check a specific deployment",
				Command:     "fastcontrol ping --api-url https://staging.fastcontrol.example",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ping", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "path to the configuration file")
			flagSet.StringVar(&apiURL, "api-url", "", "override the API base URL")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			return runPing(configPath, apiURL)
		},
	}
}

func runPing(configPath, apiURL string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	logger := NewCommandLogger().With("command", "ping")

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		return Validation("invalid API configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	message, err := client.Ping(ctx)
	if err != nil {
		logger.Error("api unreachable", "url", cfg.API.BaseURL, "error", err)
		fmt.Fprintf(os.Stderr, "%s: unreachable (%v)\n", cfg.API.BaseURL, err)
		return &ExitError{Code: 1}
	}

	fmt.Printf("%s: %s\n", cfg.API.BaseURL, message)
	return nil
}
