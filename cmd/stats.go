package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/iksnae/codehist/internal"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about available chat data",
	Long:  `Compute session, message, and date-range statistics over all discovered sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := discoverWorkspace(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		if len(data.ChatSessions) == 0 {
			fmt.Println("No chat sessions found.")
			return nil
		}

		stats := internal.Statistics(data)

		fmt.Println(titleStyle.Render("GitHub Copilot Chat Statistics"))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Total sessions\t%d\n", stats.TotalSessions)
		fmt.Fprintf(w, "Total messages\t%d\n", stats.TotalMessages)
		if !stats.Earliest.IsZero() {
			fmt.Fprintf(w, "Earliest\t%s\n", dateStyle.Render(stats.Earliest.Format("2006-01-02 15:04")))
			fmt.Fprintf(w, "Latest\t%s\n", dateStyle.Render(stats.Latest.Format("2006-01-02 15:04")))
		}
		for sessionType, n := range stats.SessionTypes {
			fmt.Fprintf(w, "Sessions [%s]\t%d\n", sessionType, n)
		}
		for messageType, n := range stats.MessageTypes {
			fmt.Fprintf(w, "Messages [%s]\t%d\n", messageType, n)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
