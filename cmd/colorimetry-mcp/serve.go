package main

import (
	"github.com/ironsheep/colorimetry-mcp/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdin/stdout (the default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := server.New(server.WithVersion(Version))
	return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
