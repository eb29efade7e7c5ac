package internal

import (
	"time"
)

// AgentLabel identifies the assistant that produced all sessions handled
// by this tool.
const AgentLabel = "GitHub Copilot"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a single turn in a chat session
type Message struct {
	ID        string         `json:"id,omitempty"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ChatSession represents one conversation with the assistant, produced
// from exactly one source file
type ChatSession struct {
	Agent     string         `json:"agent"`
	Timestamp time.Time      `json:"timestamp"`
	Messages  []Message      `json:"messages"`
	Workspace string         `json:"workspace,omitempty"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// WorkspaceData aggregates every session discovered across storage roots
type WorkspaceData struct {
	Agent         string         `json:"agent"`
	Version       string         `json:"version,omitempty"`
	WorkspacePath string         `json:"workspace_path,omitempty"`
	ChatSessions  []*ChatSession `json:"chat_sessions"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ToDict converts the message to the generic mapping form consumed by
// export sinks. Timestamps are rendered as ISO-8601 strings.
func (m *Message) ToDict() map[string]any {
	var id any
	if m.ID != "" {
		id = m.ID
	}
	return map[string]any{
		"id":        id,
		"role":      m.Role,
		"content":   m.Content,
		"timestamp": formatTimestamp(m.Timestamp),
		"metadata":  orEmptyMap(m.Metadata),
	}
}

// MessageFromDict creates a Message from its mapping form. Missing or
// malformed fields degrade to defaults rather than failing: role defaults
// to "user", timestamp to the current time.
func MessageFromDict(data map[string]any) Message {
	return Message{
		ID:        dictString(data, "id"),
		Role:      dictStringDefault(data, "role", RoleUser),
		Content:   dictString(data, "content"),
		Timestamp: dictTimestamp(data, "timestamp"),
		Metadata:  dictMap(data, "metadata"),
	}
}

// ToDict converts the session to the generic mapping form
func (s *ChatSession) ToDict() map[string]any {
	messages := make([]any, 0, len(s.Messages))
	for i := range s.Messages {
		messages = append(messages, s.Messages[i].ToDict())
	}
	var workspace any
	if s.Workspace != "" {
		workspace = s.Workspace
	}
	return map[string]any{
		"agent":      s.Agent,
		"timestamp":  formatTimestamp(s.Timestamp),
		"messages":   messages,
		"workspace":  workspace,
		"session_id": s.SessionID,
		"metadata":   orEmptyMap(s.Metadata),
	}
}

// ChatSessionFromDict creates a ChatSession from its mapping form.
// Agent defaults to "unknown" when absent.
func ChatSessionFromDict(data map[string]any) *ChatSession {
	session := &ChatSession{
		Agent:     dictStringDefault(data, "agent", "unknown"),
		Timestamp: dictTimestamp(data, "timestamp"),
		Workspace: dictString(data, "workspace"),
		SessionID: dictString(data, "session_id"),
		Metadata:  dictMap(data, "metadata"),
	}
	if raw, ok := data["messages"].([]any); ok {
		session.Messages = make([]Message, 0, len(raw))
		for _, entry := range raw {
			if m, ok := entry.(map[string]any); ok {
				session.Messages = append(session.Messages, MessageFromDict(m))
			}
		}
	}
	return session
}

// ToDict converts the workspace data to the generic mapping form. This is
// the sole interchange contract with export sinks:
// {agent, version, workspace_path, chat_sessions, metadata}.
func (w *WorkspaceData) ToDict() map[string]any {
	sessions := make([]any, 0, len(w.ChatSessions))
	for _, s := range w.ChatSessions {
		sessions = append(sessions, s.ToDict())
	}
	var version any
	if w.Version != "" {
		version = w.Version
	}
	var workspacePath any
	if w.WorkspacePath != "" {
		workspacePath = w.WorkspacePath
	}
	return map[string]any{
		"agent":          w.Agent,
		"version":        version,
		"workspace_path": workspacePath,
		"chat_sessions":  sessions,
		"metadata":       orEmptyMap(w.Metadata),
	}
}

// WorkspaceDataFromDict creates a WorkspaceData from its mapping form
func WorkspaceDataFromDict(data map[string]any) *WorkspaceData {
	workspace := &WorkspaceData{
		Agent:         dictStringDefault(data, "agent", "unknown"),
		Version:       dictString(data, "version"),
		WorkspacePath: dictString(data, "workspace_path"),
		Metadata:      dictMap(data, "metadata"),
	}
	if raw, ok := data["chat_sessions"].([]any); ok {
		workspace.ChatSessions = make([]*ChatSession, 0, len(raw))
		for _, entry := range raw {
			if m, ok := entry.(map[string]any); ok {
				workspace.ChatSessions = append(workspace.ChatSessions, ChatSessionFromDict(m))
			}
		}
	}
	return workspace
}

// formatTimestamp renders a timestamp as ISO-8601 with sub-second
// precision preserved, so round-trips are lossless.
func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// parseISOTimestamp parses an ISO-8601 string, accepting a trailing Z as
// UTC offset and timestamps without a zone designator.
func parseISOTimestamp(value string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dictString(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func dictStringDefault(data map[string]any, key, fallback string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func dictMap(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// dictTimestamp resolves a timestamp value that may be an ISO string or a
// numeric epoch in seconds, falling back to the current time.
func dictTimestamp(data map[string]any, key string) time.Time {
	switch v := data[key].(type) {
	case string:
		if t, ok := parseISOTimestamp(v); ok {
			return t
		}
	case float64:
		sec := int64(v)
		nsec := int64((v - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec)
	case int64:
		return time.Unix(v, 0)
	case int:
		return time.Unix(int64(v), 0)
	}
	return time.Now()
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
