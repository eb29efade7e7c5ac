package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/iksnae/codehist/internal"
)

func indexedWorkspace() *internal.WorkspaceData {
	ts := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
	return &internal.WorkspaceData{
		Agent: internal.AgentLabel,
		ChatSessions: []*internal.ChatSession{
			{
				Agent:     internal.AgentLabel,
				SessionID: "session-1",
				Timestamp: ts,
				Metadata: map[string]any{
					"type":        internal.SessionTypeChat,
					"source_file": "/roots/a/session-1.json",
				},
				Messages: []internal.Message{
					{ID: "m1", Role: internal.RoleUser, Content: "explain goroutine leaks", Timestamp: ts},
					{ID: "m2", Role: internal.RoleAssistant, Content: "a goroutine leaks when it blocks forever", Timestamp: ts},
				},
			},
		},
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestIndexWorkspaceAndSearch(t *testing.T) {
	db := openTestDB(t)

	if err := db.IndexWorkspace(indexedWorkspace()); err != nil {
		t.Fatalf("IndexWorkspace() error = %v", err)
	}

	sessions, messages, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if sessions != 1 || messages != 2 {
		t.Errorf("Count() = %d/%d, want 1/2", sessions, messages)
	}

	hits, err := db.Search("goroutine", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits length = %d, want 2", len(hits))
	}
	for _, hit := range hits {
		if hit.SessionID != "session-1" {
			t.Errorf("hit SessionID = %q, want session-1", hit.SessionID)
		}
	}
}

func TestIndexWorkspaceIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	data := indexedWorkspace()

	if err := db.IndexWorkspace(data); err != nil {
		t.Fatalf("first IndexWorkspace() error = %v", err)
	}
	if err := db.IndexWorkspace(data); err != nil {
		t.Fatalf("second IndexWorkspace() error = %v", err)
	}

	sessions, messages, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	// re-indexing replaces rows rather than duplicating them
	if sessions != 1 || messages != 2 {
		t.Errorf("Count() = %d/%d after re-index, want 1/2", sessions, messages)
	}
}

func TestIndexKeepsDuplicateSessionIDsFromDifferentFiles(t *testing.T) {
	db := openTestDB(t)
	data := indexedWorkspace()

	dup := *data.ChatSessions[0]
	dup.Metadata = map[string]any{
		"type":        internal.SessionTypeChat,
		"source_file": "/roots/b/session-1.json",
	}
	data.ChatSessions = append(data.ChatSessions, &dup)

	if err := db.IndexWorkspace(data); err != nil {
		t.Fatalf("IndexWorkspace() error = %v", err)
	}

	sessions, _, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if sessions != 2 {
		t.Errorf("sessions = %d, want 2 (same id, different files)", sessions)
	}
}

func TestSearchNoMatches(t *testing.T) {
	db := openTestDB(t)
	if err := db.IndexWorkspace(indexedWorkspace()); err != nil {
		t.Fatal(err)
	}

	hits, err := db.Search("nonexistent", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits length = %d, want 0", len(hits))
	}
}
