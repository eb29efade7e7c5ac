package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/codehist/internal"
	"github.com/iksnae/codehist/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	exportSearch string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export chat history to file",
	Long: `Export all discovered chat history to a single document.

The document carries the normalized chat data, computed statistics, and
(when --search is given) search results. Formats: json, md, csv, yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		data, err := discoverWorkspace(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		internal.LogInfo("Found %d chat sessions", len(data.ChatSessions))

		stats := internal.Statistics(data)

		var results []internal.SearchResult
		if exportSearch != "" {
			results = internal.SearchContent(data, exportSearch, false)
			if results == nil {
				results = []internal.SearchResult{}
			}
			internal.LogInfo("Found %d matches for %q", len(results), exportSearch)
		}

		doc := export.BuildDocument(data, stats, results)

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("codehist_export.%s", exporter.Extension())
		}

		file, err := os.Create(out)
		if err != nil {
			return &internal.ExportError{Format: exportFormat, Path: out, Err: err}
		}

		if err := exporter.Export(doc, file); err != nil {
			_ = file.Close()
			return &internal.ExportError{Format: exportFormat, Path: out, Err: err}
		}
		if err := file.Close(); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: out, Err: err}
		}

		fmt.Printf("Chat data saved to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, md, csv, yaml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file path")
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "Attach search results for this query")
}
