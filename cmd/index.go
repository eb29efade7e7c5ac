package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/codehist/internal"
	"github.com/iksnae/codehist/internal/index"
	"github.com/spf13/cobra"
)

var indexDBPath string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain a local search index",
	Long: `Build and query a SQLite full-text index over discovered sessions.

The index is derived data: rebuild it at any time with 'index build'.`,
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build or refresh the search index",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := discoverWorkspace(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		db, err := index.Open(indexDBPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := db.IndexWorkspace(data); err != nil {
			return fmt.Errorf("indexing failed: %w", err)
		}

		sessions, messages, err := db.Count()
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d session(s), %d message(s) into %s\n", sessions, messages, indexDBPath)
		return nil
	},
}

var indexSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(indexDBPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		hits, err := db.Search(args[0], 50)
		if err != nil {
			return err
		}

		if len(hits) == 0 {
			fmt.Printf("No matches for %q\n", args[0])
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%d match(es) for %q", len(hits), args[0])))
		fmt.Println()
		for _, hit := range hits {
			fmt.Printf("%s %s %s\n",
				idStyle.Render(shortID(hit.SessionID)),
				hit.Role,
				dateStyle.Render(hit.Timestamp),
			)
			fmt.Printf("  %s\n\n", hit.Snippet)
		}
		return nil
	},
}

// defaultIndexPath places the index next to the user's other dotfiles,
// falling back to the working directory when home is unresolvable.
func defaultIndexPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		internal.LogDebug("Cannot resolve home directory: %v", err)
		return "codehist-index.db"
	}
	return filepath.Join(home, ".codehist", "index.db")
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.PersistentFlags().StringVar(&indexDBPath, "db", defaultIndexPath(), "Index database path")
}
