package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "colorimetry-mcp",
	Short: "MCP server for color conversion and image adjustment",
	Long: `colorimetry-mcp serves color conversion, image adjustment, morphology and
pixel inspection tools over the MCP protocol on stdin/stdout.

Run without a subcommand to start the server. The subcommands run the same
operations once from the command line.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runServe,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off (env "+logLevelEnv+", default warn)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
