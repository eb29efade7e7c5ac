package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sessions",
	Long:  `List all discovered chat sessions with their type, message count, and timestamp.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := discoverWorkspace(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		if len(data.ChatSessions) == 0 {
			fmt.Println("No chat sessions found. Make sure VS Code is installed and you have used Copilot chat.")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(data.ChatSessions))))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION ID\tTYPE\tMESSAGES\tTIMESTAMP")
		for _, session := range data.ChatSessions {
			sessionType, _ := session.Metadata["type"].(string)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				idStyle.Render(shortID(session.SessionID)),
				sessionType,
				countStyle.Render(fmt.Sprintf("%d", len(session.Messages))),
				dateStyle.Render(session.Timestamp.Format("2006-01-02 15:04")),
			)
		}
		return w.Flush()
	},
}

// shortID truncates session ids for display
func shortID(id string) string {
	if id == "" {
		return "(none)"
	}
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func init() {
	rootCmd.AddCommand(listCmd)
}
