// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/fastcontrol/console/lib/api"
	"github.com/fastcontrol/console/lib/config"
	"github.com/fastcontrol/console/lib/consoleui"
)

// ConsoleCommand returns the interactive console command.
func ConsoleCommand() *Command {
	var configPath string
	var apiURL string
	var logOutput string

	return &Command{
		Name:    "console",
		Summary: "Open the interactive admin console",
		Description: `Open the FastControl admin console: log in against the API,
manage user accounts, and navigate the production modules.

The API base URL comes from the configuration file (see --config and
the FASTCONTROL_CONFIG environment variable); --api-url overrides it
for one run.`,
		Usage: "fastcontrol console [flags]",
		Examples: []Example{
			{
				Description: "Open the console against the configured API",
				Command:     "fastcontrol console",
			},
			{
				Description: "Point at a staging API for one session",
				Command:     "fastcontrol console --api-url https://staging.fastcontrol.example",
			},
			{
				Description: "Keep a JSON log of background errors for debugging",
				Command:     "fastcontrol console --log-output /tmp/fastcontrol.log",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "path to the configuration file")
			flagSet.StringVar(&apiURL, "api-url", "", "override the API base URL")
			flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			return runConsole(configPath, apiURL, logOutput)
		},
	}
}

// runConsole wires the API client, session store, and TUI together
// and runs the program until the operator quits.
//
// Background logging (from the API client) is routed through a
// TUILogHandler that displays warnings and errors in the status bar
// instead of writing to stderr (which would corrupt the alt-screen
// display). An optional file logger captures all records to a JSONL
// file for post-mortem debugging.
func runConsole(configPath, apiURL, logOutput string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return Validation("the console needs an interactive terminal")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	tuiHandler := consoleui.NewTUILogHandler(slog.LevelWarn)

	var logger *slog.Logger
	if logOutput != "" {
		fileHandler, fileCloser, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return Validation("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer fileCloser()
		logger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	} else {
		logger = slog.New(tuiHandler)
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		return Validation("invalid API configuration: %w", err)
	}

	store := &consoleui.Store{}
	defer store.Logout()

	model := consoleui.NewModel(consoleui.Config{
		Service:        consoleui.APIService{Client: client},
		Store:          store,
		RequestTimeout: cfg.RequestTimeout(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// loadConfig loads and validates the configuration, honoring an
// explicit --config path over the environment variable.
func loadConfig(configPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, Validation("cannot load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openFileLogHandler opens a JSON file handler for --log-output.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
