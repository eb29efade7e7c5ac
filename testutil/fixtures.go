// Package testutil provides fixture builders that materialize synthetic
// VS Code storage trees for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteJSONFixture writes data as JSON to path, creating parent dirs
func WriteJSONFixture(t *testing.T, path string, data map[string]any) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

// WriteChatSessionFile writes a live-session fixture under
// root/workspaceStorage/<wsHash>/chatSessions/<name>.json
func WriteChatSessionFile(t *testing.T, root, wsHash, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(root, "workspaceStorage", wsHash, "chatSessions", name+".json")
	WriteJSONFixture(t, path, data)
	return path
}

// WriteEditingSessionFile writes a legacy editing-session fixture under
// root/workspaceStorage/<wsHash>/chatEditingSessions/<sessionDir>/state.json
func WriteEditingSessionFile(t *testing.T, root, wsHash, sessionDir string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(root, "workspaceStorage", wsHash, "chatEditingSessions", sessionDir, "state.json")
	WriteJSONFixture(t, path, data)
	return path
}

// SampleChatSession builds a live-session payload with the given number
// of request/response pairs
func SampleChatSession(sessionID string, requests int) map[string]any {
	reqs := make([]any, 0, requests)
	for i := 0; i < requests; i++ {
		reqs = append(reqs, map[string]any{
			"requestId":  fmt.Sprintf("req-%d", i),
			"responseId": fmt.Sprintf("resp-%d", i),
			"message":    map[string]any{"text": fmt.Sprintf("question %d", i)},
			"response":   map[string]any{"value": fmt.Sprintf("answer %d", i)},
			"modelId":    "gpt-test",
		})
	}
	return map[string]any{
		"version":           1,
		"sessionId":         sessionID,
		"creationDate":      "2024-01-01T00:00:00Z",
		"lastMessageDate":   "2024-01-01T01:00:00Z",
		"requesterUsername": "dev",
		"responderUsername": "GitHub Copilot",
		"requests":          reqs,
	}
}

// SampleEditingSession builds a legacy editing-session payload with the
// given number of linearHistory entries and an optional snapshot
func SampleEditingSession(sessionID string, entries int, withSnapshot bool) map[string]any {
	history := make([]any, 0, entries)
	for i := 0; i < entries; i++ {
		history = append(history, map[string]any{
			"requestId":  fmt.Sprintf("edit-req-%d", i),
			"workingSet": []any{"a.go", "b.go"},
			"entries":    []any{map[string]any{"file": "a.go"}},
		})
	}
	data := map[string]any{
		"version":            1,
		"sessionId":          sessionID,
		"linearHistory":      history,
		"linearHistoryIndex": entries,
	}
	if withSnapshot {
		data["recentSnapshot"] = map[string]any{
			"workingSet": []any{"a.go", "b.go", "c.go"},
		}
	}
	return data
}

// CreateMockStorageRoot builds a storage root containing one live session
// and one editing session, returning the root path
func CreateMockStorageRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	WriteChatSessionFile(t, root, "ws-hash-1", "session-abc", SampleChatSession("session-abc", 2))
	WriteEditingSessionFile(t, root, "ws-hash-1", "edit-1", SampleEditingSession("edit-1", 1, true))
	return root
}
