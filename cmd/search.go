package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iksnae/codehist/internal"
	"github.com/spf13/cobra"
)

var (
	searchCaseSensitive bool
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search message content",
	Long: `Search all message contents for a substring.

Reports the first occurrence per message, with up to 100 characters of
context on each side of the match.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		data, err := discoverWorkspace(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		results := internal.SearchContent(data, query, searchCaseSensitive)

		if searchJSON {
			dicts := make([]map[string]any, 0, len(results))
			for i := range results {
				dicts = append(dicts, results[i].ToDict())
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(dicts)
		}

		if len(results) == 0 {
			fmt.Printf("No matches for %q\n", query)
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%d match(es) for %q", len(results), query)))
		fmt.Println()
		for _, result := range results {
			fmt.Printf("%s %s %s\n",
				idStyle.Render(shortID(result.SessionID)),
				result.Role,
				dateStyle.Render(result.Timestamp),
			)
			fmt.Printf("  %s\n\n", result.Context)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Match case exactly")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
}
