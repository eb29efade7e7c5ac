package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSessionFile(t *testing.T, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	encoded, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func chatSessionFixture(sessionID string, requests int) map[string]any {
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
		"version":      1,
		"sessionId":    sessionID,
		"creationDate": "2024-01-01T00:00:00Z",
		"requests":     reqs,
	}
}

func TestParseChatSessionPairs(t *testing.T) {
	// N requests with both user text and a response yield exactly 2N
	// messages, alternating user/assistant within each request pair.
	const n = 3
	path := writeSessionFile(t, "s1.json", chatSessionFixture("s1", n))

	session := NewChatSessionParser().Parse(path)
	if session == nil {
		t.Fatal("Parse returned nil for valid session")
	}

	if len(session.Messages) != 2*n {
		t.Fatalf("Messages length = %d, want %d", len(session.Messages), 2*n)
	}
	for i := 0; i < n; i++ {
		user := session.Messages[2*i]
		assistant := session.Messages[2*i+1]
		if user.Role != RoleUser {
			t.Errorf("message %d Role = %q, want user", 2*i, user.Role)
		}
		if assistant.Role != RoleAssistant {
			t.Errorf("message %d Role = %q, want assistant", 2*i+1, assistant.Role)
		}
		if user.ID != fmt.Sprintf("req-%d", i) {
			t.Errorf("user message ID = %q, want req-%d", user.ID, i)
		}
		if assistant.ID != fmt.Sprintf("resp-%d", i) {
			t.Errorf("assistant message ID = %q, want resp-%d", assistant.ID, i)
		}
	}
}

func TestParseChatSessionTimestamp(t *testing.T) {
	path := writeSessionFile(t, "s1.json", chatSessionFixture("s1", 1))

	session := NewChatSessionParser().Parse(path)
	if session == nil {
		t.Fatal("Parse returned nil")
	}

	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !session.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", session.Timestamp, want)
	}
	// The schema carries no per-message timestamps: the session timestamp
	// is applied uniformly.
	for i, msg := range session.Messages {
		if !msg.Timestamp.Equal(want) {
			t.Errorf("message %d Timestamp = %v, want %v", i, msg.Timestamp, want)
		}
	}
}

func TestParseChatSessionMalformedTimestampFallsBackToMtime(t *testing.T) {
	data := chatSessionFixture("s1", 1)
	data["creationDate"] = "not-a-date"
	path := writeSessionFile(t, "s1.json", data)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	session := NewChatSessionParser().Parse(path)
	if session == nil {
		t.Fatal("Parse returned nil")
	}
	if !session.Timestamp.Equal(info.ModTime()) {
		t.Errorf("Timestamp = %v, want file mtime %v", session.Timestamp, info.ModTime())
	}
}

func TestParseChatSessionIDFallsBackToFileName(t *testing.T) {
	data := chatSessionFixture("", 1)
	delete(data, "sessionId")
	path := writeSessionFile(t, "fallback-name.json", data)

	session := NewChatSessionParser().Parse(path)
	if session == nil {
		t.Fatal("Parse returned nil")
	}
	if session.SessionID != "fallback-name" {
		t.Errorf("SessionID = %q, want %q", session.SessionID, "fallback-name")
	}
}

func TestParseChatSessionResponseShapes(t *testing.T) {
	tests := []struct {
		name     string
		response any
		want     string
	}{
		{"value field", map[string]any{"value": "from value"}, "from value"},
		{"text field", map[string]any{"text": "from text"}, "from text"},
		{"content field", map[string]any{"content": "from content"}, "from content"},
		{"value wins over text", map[string]any{"value": "v", "text": "t"}, "v"},
		{"bare string", "bare response", "bare response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := map[string]any{
				"sessionId":    "s1",
				"creationDate": "2024-01-01T00:00:00Z",
				"requests": []any{map[string]any{
					"requestId":  "r1",
					"responseId": "a1",
					"message":    map[string]any{"text": "q"},
					"response":   tt.response,
				}},
			}
			path := writeSessionFile(t, "s1.json", data)

			session := NewChatSessionParser().Parse(path)
			if session == nil {
				t.Fatal("Parse returned nil")
			}
			if len(session.Messages) != 2 {
				t.Fatalf("Messages length = %d, want 2", len(session.Messages))
			}
			if got := session.Messages[1].Content; got != tt.want {
				t.Errorf("assistant Content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseChatSessionSkipsEmptyResponses(t *testing.T) {
	data := map[string]any{
		"sessionId":    "s1",
		"creationDate": "2024-01-01T00:00:00Z",
		"requests": []any{
			map[string]any{
				"requestId": "r1",
				"message":   map[string]any{"text": "no answer yet"},
			},
			map[string]any{
				"requestId": "r2",
				"message":   map[string]any{"text": "empty answer"},
				"response":  map[string]any{"value": ""},
			},
		},
	}
	path := writeSessionFile(t, "s1.json", data)

	session := NewChatSessionParser().Parse(path)
	if session == nil {
		t.Fatal("Parse returned nil")
	}
	if len(session.Messages) != 2 {
		t.Fatalf("Messages length = %d, want 2 user messages only", len(session.Messages))
	}
	for i, msg := range session.Messages {
		if msg.Role != RoleUser {
			t.Errorf("message %d Role = %q, want user", i, msg.Role)
		}
	}
}

func TestParseChatSessionMetadata(t *testing.T) {
	path := writeSessionFile(t, "s1.json", chatSessionFixture("s1", 2))

	session := NewChatSessionParser().Parse(path)
	if session == nil {
		t.Fatal("Parse returned nil")
	}

	if got := session.Metadata["type"]; got != SessionTypeChat {
		t.Errorf("metadata type = %v, want %q", got, SessionTypeChat)
	}
	if got := session.Metadata["source_file"]; got != path {
		t.Errorf("metadata source_file = %v, want %q", got, path)
	}
	if got := session.Metadata["total_requests"]; got != 2 {
		t.Errorf("metadata total_requests = %v, want 2", got)
	}
	if session.Agent != AgentLabel {
		t.Errorf("Agent = %q, want %q", session.Agent, AgentLabel)
	}

	user := session.Messages[0]
	if got := user.Metadata["type"]; got != "user_request" {
		t.Errorf("user metadata type = %v, want user_request", got)
	}
	if got := user.Metadata["modelId"]; got != "gpt-test" {
		t.Errorf("user metadata modelId = %v, want gpt-test", got)
	}
	assistant := session.Messages[1]
	if got := assistant.Metadata["type"]; got != "assistant_response" {
		t.Errorf("assistant metadata type = %v, want assistant_response", got)
	}
}

func TestParseChatSessionInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if session := NewChatSessionParser().Parse(path); session != nil {
		t.Error("Parse should return nil for invalid JSON")
	}
	if session := NewChatSessionParser().Parse(filepath.Join(t.TempDir(), "missing.json")); session != nil {
		t.Error("Parse should return nil for a missing file")
	}
}
