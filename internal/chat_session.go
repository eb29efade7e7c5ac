package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rawChatSession mirrors the live-session on-disk schema. Fields the
// adapter does not capture are ignored, which keeps parsing forward
// compatible with additive schema changes.
type rawChatSession struct {
	Version           any              `json:"version"`
	SessionID         string           `json:"sessionId"`
	CreationDate      string           `json:"creationDate"`
	LastMessageDate   string           `json:"lastMessageDate"`
	RequesterUsername string           `json:"requesterUsername"`
	ResponderUsername string           `json:"responderUsername"`
	InitialLocation   string           `json:"initialLocation"`
	IsImported        bool             `json:"isImported"`
	CustomTitle       string           `json:"customTitle"`
	Requests          []rawChatRequest `json:"requests"`
}

type rawChatRequest struct {
	RequestID  string `json:"requestId"`
	ResponseID string `json:"responseId"`
	Message    struct {
		Text string `json:"text"`
	} `json:"message"`
	Response          json.RawMessage `json:"response"`
	Agent             map[string]any  `json:"agent"`
	VariableData      map[string]any  `json:"variableData"`
	ModelID           string          `json:"modelId"`
	Result            map[string]any  `json:"result"`
	Followups         []any           `json:"followups"`
	IsCanceled        bool            `json:"isCanceled"`
	ContentReferences []any           `json:"contentReferences"`
	CodeCitations     []any           `json:"codeCitations"`
	Timestamp         any             `json:"timestamp"`
}

// ChatSessionParser parses live-session JSON files
// (workspaceStorage/*/chatSessions/*.json)
type ChatSessionParser struct{}

// NewChatSessionParser creates a new ChatSessionParser
func NewChatSessionParser() *ChatSessionParser {
	return &ChatSessionParser{}
}

// Parse reads one live-session file and converts it to a ChatSession.
// Returns nil on any failure; the failure is logged and the file skipped.
func (p *ChatSessionParser) Parse(path string) *ChatSession {
	data, err := os.ReadFile(path)
	if err != nil {
		LogError("%v", &SourceReadError{Path: path, Op: "open", Err: err})
		return nil
	}

	var raw rawChatSession
	if err := json.Unmarshal(data, &raw); err != nil {
		LogError("%v", &SourceReadError{Path: path, Op: "parse", Err: err})
		return nil
	}

	sessionID := raw.SessionID
	if sessionID == "" {
		sessionID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// The schema carries no per-message timestamps: one resolved session
	// timestamp is used uniformly for every message.
	timestamp := resolveSessionTimestamp(raw.CreationDate, path)

	var messages []Message
	for _, request := range raw.Requests {
		if request.Message.Text != "" {
			messages = append(messages, Message{
				ID:        request.RequestID,
				Role:      RoleUser,
				Content:   request.Message.Text,
				Timestamp: timestamp,
				Metadata: map[string]any{
					"type":         "user_request",
					"agent":        orEmptyMap(request.Agent),
					"variableData": orEmptyMap(request.VariableData),
					"modelId":      request.ModelID,
				},
			})
		}

		responseText := extractResponseText(request.Response)
		if responseText != "" {
			messages = append(messages, Message{
				ID:        request.ResponseID,
				Role:      RoleAssistant,
				Content:   responseText,
				Timestamp: timestamp,
				Metadata: map[string]any{
					"type":              "assistant_response",
					"result":            orEmptyMap(request.Result),
					"followups":         orEmptyList(request.Followups),
					"isCanceled":        request.IsCanceled,
					"contentReferences": orEmptyList(request.ContentReferences),
					"codeCitations":     orEmptyList(request.CodeCitations),
					"requestTimestamp":  request.Timestamp,
				},
			})
		}
	}

	session := &ChatSession{
		Agent:     AgentLabel,
		Timestamp: timestamp,
		Messages:  messages,
		SessionID: sessionID,
		Metadata: map[string]any{
			"version":           raw.Version,
			"requesterUsername": raw.RequesterUsername,
			"responderUsername": raw.ResponderUsername,
			"initialLocation":   raw.InitialLocation,
			"creationDate":      raw.CreationDate,
			"lastMessageDate":   raw.LastMessageDate,
			"isImported":        raw.IsImported,
			"customTitle":       raw.CustomTitle,
			"type":              SessionTypeChat,
			"source_file":       path,
			"total_requests":    len(raw.Requests),
		},
	}

	LogInfo("Parsed chat session %s with %d messages", sessionID, len(messages))
	return session
}

// resolveSessionTimestamp parses an ISO-8601 creation date, falling back
// to the file's modification time on absence or parse failure.
func resolveSessionTimestamp(creationDate, path string) time.Time {
	if creationDate != "" {
		if t, ok := parseISOTimestamp(creationDate); ok {
			return t
		}
		LogDebug("Unparseable creationDate %q in %s, using file mtime", creationDate, path)
	}
	return fileModTime(path)
}

// extractResponseText resolves the response payload, which may appear as
// {value: ...}, {text: ...}, {content: ...} (checked in that order) or a
// bare string.
func extractResponseText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ""
	}

	switch v := decoded.(type) {
	case map[string]any:
		for _, key := range []string{"value", "text", "content"} {
			if text, ok := v[key].(string); ok {
				return text
			}
		}
	case string:
		return v
	}
	return ""
}

// fileModTime returns the file's modification time, or the current time
// when the file cannot be stat'ed.
func fileModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}

func orEmptyList(list []any) []any {
	if list == nil {
		return []any{}
	}
	return list
}
