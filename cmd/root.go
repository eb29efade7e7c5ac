package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/iksnae/codehist/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codehist",
	Short: "Extract and analyze GitHub Copilot chat history",
	Long: `Extract, search, and export GitHub Copilot chat history from VS Code.

codehist discovers session files under VS Code's workspaceStorage (both the
current chat-session format and the legacy chat-editing-session format),
normalizes them into one model, and lets you inspect or export the result.

Quick Start:
  codehist list                       # List all sessions
  codehist stats                      # Show statistics
  codehist search "error handling"    # Search message content
  codehist export --format md         # Export a Markdown report

For detailed usage, see: https://github.com/iksnae/codehist`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom storage root (overrides OS defaults)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// resolveRoots returns the storage roots to scan: the --storage override
// when given, otherwise the OS defaults.
func resolveRoots() ([]string, error) {
	if storagePath != "" {
		return []string{storagePath}, nil
	}
	return internal.StorageRoots()
}

// discoverWorkspace runs a full discovery pass over the resolved roots
func discoverWorkspace(ctx context.Context) (*internal.WorkspaceData, error) {
	roots, err := resolveRoots()
	if err != nil {
		return nil, err
	}
	return internal.NewDiscovery().DiscoverAll(ctx, roots)
}
