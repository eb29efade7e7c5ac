package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// rawEditingSession mirrors the legacy editing-session state.json schema.
// These sessions record file-editing working sets, not conversational text.
type rawEditingSession struct {
	Version             any               `json:"version"`
	SessionID           string            `json:"sessionId"`
	LinearHistory       []rawHistoryEntry `json:"linearHistory"`
	LinearHistoryIndex  any               `json:"linearHistoryIndex"`
	InitialFileContents []any             `json:"initialFileContents"`
	RecentSnapshot      map[string]any    `json:"recentSnapshot"`
}

type rawHistoryEntry struct {
	RequestID  string `json:"requestId"`
	WorkingSet []any  `json:"workingSet"`
	Entries    []any  `json:"entries"`
}

// EditingSessionParser parses legacy editing-session state.json files
// (workspaceStorage/*/chatEditingSessions/*/state.json)
type EditingSessionParser struct{}

// NewEditingSessionParser creates a new EditingSessionParser
func NewEditingSessionParser() *EditingSessionParser {
	return &EditingSessionParser{}
}

// Parse reads one state.json file and converts it to a ChatSession of
// synthetic system messages, one per linear-history entry. Returns nil on
// any failure; the failure is logged and the file skipped.
func (p *EditingSessionParser) Parse(path string) *ChatSession {
	data, err := os.ReadFile(path)
	if err != nil {
		LogError("%v", &SourceReadError{Path: path, Op: "open", Err: err})
		return nil
	}

	var raw rawEditingSession
	if err := json.Unmarshal(data, &raw); err != nil {
		LogError("%v", &SourceReadError{Path: path, Op: "parse", Err: err})
		return nil
	}

	// This schema carries no session-creation timestamp.
	timestamp := fileModTime(path)

	var messages []Message
	for i, entry := range raw.LinearHistory {
		requestID := entry.RequestID
		if requestID == "" {
			requestID = fmt.Sprintf("request_%d", i)
		}

		content := fmt.Sprintf("Chat editing session with %d files in working set", len(entry.WorkingSet))
		if len(entry.Entries) > 0 {
			content += fmt.Sprintf(" and %d entries", len(entry.Entries))
		}

		messages = append(messages, Message{
			ID:        requestID,
			Role:      RoleSystem,
			Content:   content,
			Timestamp: timestamp,
			Metadata: map[string]any{
				"workingSet": orEmptyList(entry.WorkingSet),
				"entries":    orEmptyList(entry.Entries),
				"type":       "editing_session",
			},
		})
	}

	if len(raw.RecentSnapshot) > 0 {
		snapshotFiles := 0
		if workingSet, ok := raw.RecentSnapshot["workingSet"].([]any); ok {
			snapshotFiles = len(workingSet)
		}
		messages = append(messages, Message{
			ID:        fmt.Sprintf("snapshot_%s", raw.SessionID),
			Role:      RoleSystem,
			Content:   fmt.Sprintf("Recent snapshot with %d files", snapshotFiles),
			Timestamp: timestamp,
			Metadata: map[string]any{
				"recentSnapshot": raw.RecentSnapshot,
				"type":           "snapshot",
			},
		})
	}

	session := &ChatSession{
		Agent:     AgentLabel,
		Timestamp: timestamp,
		Messages:  messages,
		SessionID: raw.SessionID,
		Metadata: map[string]any{
			"version":             raw.Version,
			"linearHistoryIndex":  raw.LinearHistoryIndex,
			"initialFileContents": orEmptyList(raw.InitialFileContents),
			"recentSnapshot":      orEmptyMap(raw.RecentSnapshot),
			"type":                SessionTypeEditing,
			"source_file":         path,
		},
	}

	LogInfo("Parsed chat editing session %s with %d entries", raw.SessionID, len(messages))
	return session
}
