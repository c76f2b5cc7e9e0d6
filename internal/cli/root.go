// Package cli implements the docxtree command line.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "docxtree",
	Short: "Convert Word documents into JSON content trees",
	Long: `docxtree reads a .docx file and writes its body as a JSON tree of typed
nodes: paragraphs and headings with their styling, tables, page and line
breaks, and images extracted to an asset directory.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every processed element")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which the mcp command
// serves until cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newLogger returns a text logger on w; verbose enables debug events.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
