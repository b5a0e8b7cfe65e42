package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ironsheep/colorimetry-mcp/internal/server"
	"github.com/spf13/cobra"
)

const logLevelEnv = "COLORIMETRY_MCP_LOG_LEVEL"

// setupLogging routes server logs to stderr; stdout carries the protocol.
func setupLogging(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("log-level")
	if name == "" {
		name = os.Getenv(logLevelEnv)
	}

	level, enabled, err := parseLevel(name)
	if err != nil {
		return err
	}
	if !enabled {
		server.SetLogger(nil)
		return nil
	}
	server.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// parseLevel resolves a log level name. The boolean is false for "off".
func parseLevel(name string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "", "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	case "off", "none", "silent":
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("unknown log level %q", name)
}
