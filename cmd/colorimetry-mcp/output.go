package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// addFormatFlag registers the --format flag shared by the commands that
// print results.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "auto", "Output format: text, json or auto (text on a terminal, JSON otherwise)")
}

// wantJSON resolves --format for the command's output stream.
func wantJSON(cmd *cobra.Command) (bool, error) {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return true, nil
	case "text":
		return false, nil
	case "auto", "":
		return !isTerminal(cmd.OutOrStdout()), nil
	}
	return false, fmt.Errorf("unknown output format %q", format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
