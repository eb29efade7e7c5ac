package internal

import (
	"strings"
	"time"
)

// searchContextChars is the number of characters kept on each side of a
// match when extracting context.
const searchContextChars = 100

// Stats summarizes a WorkspaceData in a single pass
type Stats struct {
	TotalSessions int
	TotalMessages int
	SessionTypes  map[string]int
	MessageTypes  map[string]int
	AgentActivity map[string]int
	Earliest      time.Time
	Latest        time.Time
}

// Statistics computes aggregate statistics over the workspace. The date
// range spans the union of all session and message timestamps.
func Statistics(data *WorkspaceData) *Stats {
	stats := &Stats{
		TotalSessions: len(data.ChatSessions),
		SessionTypes:  map[string]int{},
		MessageTypes:  map[string]int{},
		AgentActivity: map[string]int{},
	}

	observe := func(t time.Time) {
		if stats.Earliest.IsZero() || t.Before(stats.Earliest) {
			stats.Earliest = t
		}
		if stats.Latest.IsZero() || t.After(stats.Latest) {
			stats.Latest = t
		}
	}

	for _, session := range data.ChatSessions {
		sessionType := "unknown"
		if t, ok := session.Metadata["type"].(string); ok && t != "" {
			sessionType = t
		}
		stats.SessionTypes[sessionType]++
		stats.AgentActivity[session.Agent]++
		observe(session.Timestamp)

		for i := range session.Messages {
			message := &session.Messages[i]
			stats.TotalMessages++

			messageType := message.Role
			if t, ok := message.Metadata["type"].(string); ok && t != "" {
				messageType = t
			}
			stats.MessageTypes[messageType]++
			observe(message.Timestamp)
		}
	}

	return stats
}

// ToDict renders the statistics as the generic mapping attached to export
// documents under the "statistics" key.
func (s *Stats) ToDict() map[string]any {
	var earliest, latest any
	if !s.Earliest.IsZero() {
		earliest = formatTimestamp(s.Earliest)
	}
	if !s.Latest.IsZero() {
		latest = formatTimestamp(s.Latest)
	}
	return map[string]any{
		"total_sessions": s.TotalSessions,
		"total_messages": s.TotalMessages,
		"session_types":  countsToDict(s.SessionTypes),
		"message_types":  countsToDict(s.MessageTypes),
		"agent_activity": countsToDict(s.AgentActivity),
		"date_range": map[string]any{
			"earliest": earliest,
			"latest":   latest,
		},
	}
}

func countsToDict(counts map[string]int) map[string]any {
	out := make(map[string]any, len(counts))
	for key, n := range counts {
		out[key] = n
	}
	return out
}

// SearchResult is one substring match. Only the first occurrence within a
// message is reported.
type SearchResult struct {
	SessionID     string
	MessageID     string
	Role          string
	Timestamp     string
	MatchPosition int
	Context       string
	FullContent   string
	Metadata      map[string]any
}

// ToDict renders the result as the generic mapping attached to export
// documents under the "search_results" key.
func (r *SearchResult) ToDict() map[string]any {
	var id any
	if r.MessageID != "" {
		id = r.MessageID
	}
	return map[string]any{
		"session_id":     r.SessionID,
		"message_id":     id,
		"role":           r.Role,
		"timestamp":      r.Timestamp,
		"match_position": r.MatchPosition,
		"context":        r.Context,
		"full_content":   r.FullContent,
		"metadata":       orEmptyMap(r.Metadata),
	}
}

// SearchContent performs a substring search across all message contents.
// When caseSensitive is false both query and content are lowercased before
// comparison; the untouched content still travels in FullContent. Results
// follow workspace traversal order, one per matching message.
func SearchContent(data *WorkspaceData, query string, caseSensitive bool) []SearchResult {
	needle := query
	if !caseSensitive {
		needle = strings.ToLower(query)
	}

	var results []SearchResult
	for _, session := range data.ChatSessions {
		for i := range session.Messages {
			message := &session.Messages[i]

			haystack := message.Content
			if !caseSensitive {
				haystack = strings.ToLower(message.Content)
			}

			matchPos := strings.Index(haystack, needle)
			if matchPos < 0 {
				continue
			}

			contextStart := matchPos - searchContextChars
			if contextStart < 0 {
				contextStart = 0
			}
			contextEnd := matchPos + len(needle) + searchContextChars
			if contextEnd > len(haystack) {
				contextEnd = len(haystack)
			}

			results = append(results, SearchResult{
				SessionID:     session.SessionID,
				MessageID:     message.ID,
				Role:          message.Role,
				Timestamp:     formatTimestamp(message.Timestamp),
				MatchPosition: matchPos,
				Context:       haystack[contextStart:contextEnd],
				FullContent:   message.Content,
				Metadata:      message.Metadata,
			})
		}
	}

	return results
}
