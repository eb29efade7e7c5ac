package export

import (
	"fmt"
	"io"
	"time"
)

// Report limits keep the summary readable for large workspaces
const (
	markdownMaxSessions = 10
	markdownMaxMessages = 3
	markdownMaxContent  = 500
	markdownMaxResults  = 20
)

// MarkdownExporter renders the document as a human-readable summary
// report rather than a full dump.
type MarkdownExporter struct{}

// Export writes the document as Markdown
func (e *MarkdownExporter) Export(doc *Document, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# GitHub Copilot Chat History\n\n")
	_, _ = fmt.Fprintf(w, "**Export Date:** %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	e.writeStatistics(w, doc.Statistics)
	e.writeSessions(w, doc.ChatData)
	e.writeSearchResults(w, doc.SearchResults)

	return nil
}

func (e *MarkdownExporter) writeStatistics(w io.Writer, stats map[string]any) {
	if len(stats) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "## Summary\n\n")
	_, _ = fmt.Fprintf(w, "- **Total Sessions:** %d\n", getInt(stats, "total_sessions"))
	_, _ = fmt.Fprintf(w, "- **Total Messages:** %d\n", getInt(stats, "total_messages"))

	dateRange := getMap(stats, "date_range")
	if earliest := getString(dateRange, "earliest"); earliest != "" {
		_, _ = fmt.Fprintf(w, "- **Date Range:** %s to %s\n", earliest, getString(dateRange, "latest"))
	}
	_, _ = fmt.Fprintf(w, "\n")
}

func (e *MarkdownExporter) writeSessions(w io.Writer, chatData map[string]any) {
	sessions := getList(chatData, "chat_sessions")
	if len(sessions) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "## Chat Sessions\n\n")
	for i, raw := range sessions {
		if i >= markdownMaxSessions {
			_, _ = fmt.Fprintf(w, "... and %d more sessions\n", len(sessions)-markdownMaxSessions)
			break
		}
		session, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		_, _ = fmt.Fprintf(w, "### Session %d: %s\n\n", i+1, truncate(getString(session, "session_id"), 8))
		_, _ = fmt.Fprintf(w, "- **Agent:** %s\n", getString(session, "agent"))
		_, _ = fmt.Fprintf(w, "- **Timestamp:** %s\n", getString(session, "timestamp"))

		messages := getList(session, "messages")
		_, _ = fmt.Fprintf(w, "- **Messages:** %d\n\n", len(messages))

		for j, rawMsg := range messages {
			if j >= markdownMaxMessages {
				_, _ = fmt.Fprintf(w, "... and %d more messages\n\n", len(messages)-markdownMaxMessages)
				break
			}
			message, ok := rawMsg.(map[string]any)
			if !ok {
				continue
			}
			_, _ = fmt.Fprintf(w, "#### Message %d (%s)\n\n", j+1, getString(message, "role"))

			content := getString(message, "content")
			if len(content) > markdownMaxContent {
				content = content[:markdownMaxContent] + "... [TRUNCATED]"
			}
			_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", content)
		}
	}
}

func (e *MarkdownExporter) writeSearchResults(w io.Writer, results []map[string]any) {
	if len(results) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "## Search Results\n\n")
	for i, result := range results {
		if i >= markdownMaxResults {
			_, _ = fmt.Fprintf(w, "... and %d more matches\n", len(results)-markdownMaxResults)
			break
		}
		_, _ = fmt.Fprintf(w, "### Match %d\n\n", i+1)
		_, _ = fmt.Fprintf(w, "- **Session:** %s\n", truncate(getString(result, "session_id"), 8))
		_, _ = fmt.Fprintf(w, "- **Role:** %s\n\n", getString(result, "role"))
		_, _ = fmt.Fprintf(w, "**Context:**\n\n```\n%s\n```\n\n", getString(result, "context"))
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
