package export

import (
	"testing"
	"time"

	"github.com/iksnae/codehist/internal"
)

func sampleWorkspace() *internal.WorkspaceData {
	ts := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	return &internal.WorkspaceData{
		Agent:         internal.AgentLabel,
		WorkspacePath: "/home/dev/.config/Code/User",
		ChatSessions: []*internal.ChatSession{
			{
				Agent:     internal.AgentLabel,
				SessionID: "session-1",
				Timestamp: ts,
				Metadata:  map[string]any{"type": internal.SessionTypeChat},
				Messages: []internal.Message{
					{ID: "m1", Role: internal.RoleUser, Content: "how do I test this?", Timestamp: ts},
					{ID: "m2", Role: internal.RoleAssistant, Content: "use the testing package", Timestamp: ts},
				},
			},
			{
				Agent:     internal.AgentLabel,
				SessionID: "session-2",
				Timestamp: ts.Add(time.Hour),
				Metadata:  map[string]any{"type": internal.SessionTypeEditing},
			},
		},
	}
}

func sampleDocument(withSearch bool) *Document {
	data := sampleWorkspace()
	stats := internal.Statistics(data)
	var results []internal.SearchResult
	if withSearch {
		results = internal.SearchContent(data, "testing", false)
	}
	return BuildDocument(data, stats, results)
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format    string
		extension string
		wantErr   bool
	}{
		{"json", "json", false},
		{"md", "md", false},
		{"markdown", "md", false},
		{"csv", "csv", false},
		{"yaml", "yaml", false},
		{"parquet", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		exporter, err := NewExporter(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewExporter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			continue
		}
		if err == nil && exporter.Extension() != tt.extension {
			t.Errorf("NewExporter(%q).Extension() = %q, want %q", tt.format, exporter.Extension(), tt.extension)
		}
	}
}

func TestDocumentToDict(t *testing.T) {
	doc := sampleDocument(true)
	dict := doc.ToDict()

	if _, ok := dict["chat_data"]; !ok {
		t.Error("ToDict() should contain chat_data")
	}
	if _, ok := dict["statistics"]; !ok {
		t.Error("ToDict() should contain statistics")
	}
	if _, ok := dict["search_results"]; !ok {
		t.Error("ToDict() should contain search_results when a search was run")
	}

	noSearch := sampleDocument(false).ToDict()
	if _, ok := noSearch["search_results"]; ok {
		t.Error("ToDict() should omit search_results when no search was run")
	}
}
